package http

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

// graphqlArgs maps query arguments onto the REST parameter names so both
// surfaces share one validator.
var graphqlArgs = map[string]string{
	"minPrice":  domain.ParamMinPrice,
	"maxPrice":  domain.ParamMaxPrice,
	"keyword":   domain.ParamKeyword,
	"openNow":   domain.ParamOpenNow,
	"type":      domain.ParamType,
	"lat":       domain.ParamLat,
	"lng":       domain.ParamLng,
	"rankBy":    domain.ParamRankBy,
	"pageToken": domain.ParamPageToken,
}

// buildSchema creates the GraphQL schema wired to the restaurant service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lng": &graphql.Field{Type: graphql.Float},
		},
	})

	summaryFields := func() graphql.Fields {
		return graphql.Fields{
			"place_id":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":            &graphql.Field{Type: graphql.String},
			"rating":          &graphql.Field{Type: graphql.Float},
			"photo_reference": &graphql.Field{Type: graphql.String},
			"location":        &graphql.Field{Type: geoPointType},
		}
	}

	restaurantType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Restaurant",
		Fields: summaryFields(),
	})

	detailFields := summaryFields()
	detailFields["formatted_address"] = &graphql.Field{Type: graphql.String}
	detailFields["formatted_phone_number"] = &graphql.Field{Type: graphql.String}
	detailFields["website"] = &graphql.Field{Type: graphql.String}
	detailFields["open_now"] = &graphql.Field{Type: graphql.Boolean}
	detailFields["weekday_text"] = &graphql.Field{Type: graphql.NewList(graphql.String)}
	detailType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "RestaurantDetail",
		Fields: detailFields,
	})

	pageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RestaurantPage",
		Fields: graphql.Fields{
			"results":         &graphql.Field{Type: graphql.NewList(restaurantType)},
			"next_page_token": &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"restaurants": &graphql.Field{
				Type:        pageType,
				Description: "Search restaurants near a location",
				Args: graphql.FieldConfigArgument{
					"minPrice":  &graphql.ArgumentConfig{Type: graphql.Int},
					"maxPrice":  &graphql.ArgumentConfig{Type: graphql.Int},
					"keyword":   &graphql.ArgumentConfig{Type: graphql.String},
					"openNow":   &graphql.ArgumentConfig{Type: graphql.Boolean},
					"type":      &graphql.ArgumentConfig{Type: graphql.String},
					"lat":       &graphql.ArgumentConfig{Type: graphql.Float},
					"lng":       &graphql.ArgumentConfig{Type: graphql.Float},
					"rankBy":    &graphql.ArgumentConfig{Type: graphql.String},
					"pageToken": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					res, err := deps.Restaurants.Search(p.Context, argsToQuery(p.Args))
					if err != nil {
						return nil, err
					}
					items := make([]map[string]interface{}, 0, len(res.Items))
					for i := range res.Items {
						items = append(items, summaryMap(&res.Items[i]))
					}
					return map[string]interface{}{
						"results":         items,
						"next_page_token": res.ContinuationToken,
					}, nil
				},
			},
			"restaurant": &graphql.Field{
				Type:        detailType,
				Description: "Get restaurant details by place ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					d, err := deps.Restaurants.GetByID(p.Context, id)
					if err != nil {
						return nil, err
					}
					m := summaryMap(&d.RestaurantSummary)
					m["formatted_address"] = d.Address
					m["formatted_phone_number"] = d.Phone
					m["website"] = d.Website
					if d.OpenNow != nil {
						m["open_now"] = *d.OpenNow
					}
					m["weekday_text"] = d.WeeklyHours
					return m, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

func argsToQuery(args map[string]interface{}) url.Values {
	q := url.Values{}
	for arg, param := range graphqlArgs {
		switch v := args[arg].(type) {
		case string:
			q.Set(param, v)
		case int:
			q.Set(param, strconv.Itoa(v))
		case float64:
			q.Set(param, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			q.Set(param, strconv.FormatBool(v))
		}
	}
	return q
}

func summaryMap(s *domain.RestaurantSummary) map[string]interface{} {
	m := map[string]interface{}{
		"place_id":        s.PlaceID,
		"name":            s.Name,
		"photo_reference": s.PhotoReference,
	}
	if s.Rating != nil {
		m["rating"] = *s.Rating
	}
	if s.Location != nil {
		m["location"] = map[string]interface{}{"lat": s.Location.Lat, "lng": s.Location.Lng}
	}
	return m
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "bad_request", "invalid request body", err.Error())
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})
		if result.HasErrors() {
			LoggerFromCtx(c.UserContext()).Warn("graphql errors", "count", len(result.Errors), "first", result.Errors[0].Message)
		}

		return c.JSON(result)
	}
}
