package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

var showCmd = &cobra.Command{
	Use:   "show <place-id>",
	Short: "Print the details of one restaurant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newSession().Restaurant(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printDetail(d)
		return nil
	},
}

func printDetail(d *domain.RestaurantDetail) {
	fmt.Println(d.Name)
	if d.Rating != nil {
		fmt.Println("Rating: ", strconv.FormatFloat(*d.Rating, 'f', 1, 64))
	}
	if d.Address != "" {
		fmt.Println("Address:", d.Address)
	}
	if d.Phone != "" {
		fmt.Println("Phone:  ", d.Phone)
	}
	if d.Website != "" {
		fmt.Println("Website:", d.Website)
	}
	if d.OpenNow != nil {
		if *d.OpenNow {
			fmt.Println("Open now")
		} else {
			fmt.Println("Closed now")
		}
	}
	for _, line := range d.WeeklyHours {
		fmt.Println("  ", line)
	}
	if d.Location != nil {
		fmt.Printf("Location: %.6f,%.6f\n", d.Location.Lat, d.Location.Lng)
	}
}
