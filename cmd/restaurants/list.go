package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samirrijal/restofinder/internal/core/domain"
	"github.com/samirrijal/restofinder/internal/frontend"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Search restaurants and print the accumulated list",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listKeyword  string
	listType     string
	listRankBy   string
	listOpenNow  bool
	listMinPrice int
	listMaxPrice int
	listNear     string
	listPages    int
	listHover    string
)

// nearLocation resolves --near. It fails when the flag is unset, which turns
// nearby mode back off.
var nearLocation = frontend.LocationFunc(func(context.Context) (domain.GeoPoint, error) {
	return parseLatLng(listNear)
})

func init() {
	f := listCmd.Flags()
	f.StringVar(&listKeyword, "keyword", "", "free-text keyword")
	f.StringVar(&listType, "type", frontend.DefaultType, "place type")
	f.StringVar(&listRankBy, "rank-by", string(frontend.DefaultRankBy), "prominence or distance")
	f.BoolVar(&listOpenNow, "open-now", false, "only places open now")
	f.IntVar(&listMinPrice, "min-price", -1, "lowest price level, 0-4")
	f.IntVar(&listMaxPrice, "max-price", -1, "highest price level, 0-4")
	f.StringVar(&listNear, "near", "", "search around lat,lng ranked by distance")
	f.IntVar(&listPages, "pages", 1, "number of pages to load (max 3 upstream)")
	f.StringVar(&listHover, "highlight", "", "place id to mark in the map summary")
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s := newSession()

	changes := []frontend.FilterChange{
		frontend.SetKeyword(listKeyword),
		frontend.SetType(listType),
		frontend.SetRankBy(domain.RankBy(listRankBy)),
		frontend.SetOpenNow(listOpenNow),
	}
	if listMinPrice >= 0 {
		changes = append(changes, frontend.SetMinPrice{Level: &listMinPrice})
	}
	if listMaxPrice >= 0 {
		changes = append(changes, frontend.SetMaxPrice{Level: &listMaxPrice})
	}
	s.Filters().Apply(changes...)

	var origin *domain.GeoPoint
	if listNear != "" {
		// SetNearby fetches page one itself.
		if err := s.SetNearby(ctx, true); err != nil {
			return err
		}
		origin = s.Filters().Options().Location
	} else if err := s.Start(ctx); err != nil {
		return err
	}

	for i := 1; i < listPages; i++ {
		fetched, err := s.LoadMore(ctx)
		if err != nil {
			return err
		}
		if !fetched {
			break
		}
	}

	printList(s, origin)
	return nil
}

func printList(s *frontend.Session, origin *domain.GeoPoint) {
	items := s.Results().Items()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tRATING\tDISTANCE\tPLACE ID")
	for i, it := range items {
		rating := "-"
		if it.Rating != nil {
			rating = strconv.FormatFloat(*it.Rating, 'f', 1, 64)
		}
		dist := "-"
		if origin != nil {
			if d, ok := frontend.DistanceMeters(*origin, it); ok {
				dist = fmt.Sprintf("%.0fm", d)
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, it.Name, rating, dist, it.PlaceID)
	}
	_ = w.Flush()

	markers := s.Markers(listHover)
	if b, ok := frontend.FitBounds(markers); ok {
		c := frontend.Center(b)
		fmt.Printf("\n%d on map, center %.5f,%.5f, bounds [%.5f,%.5f]-[%.5f,%.5f]\n",
			len(markers), c.Lat, c.Lng, b.MinLat, b.MinLng, b.MaxLat, b.MaxLng)
	}
	if tok := s.Results().Token(); tok != "" {
		fmt.Println("more results available, rerun with --pages to load them")
	}
}

func parseLatLng(s string) (domain.GeoPoint, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return domain.GeoPoint{}, errors.New("expected lat,lng")
	}
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("latitude: %w", err)
	}
	ln, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("longitude: %w", err)
	}
	if la < -90 || la > 90 || ln < -180 || ln > 180 {
		return domain.GeoPoint{}, fmt.Errorf("coordinates out of range: %g,%g", la, ln)
	}
	return domain.GeoPoint{Lat: la, Lng: ln}, nil
}
