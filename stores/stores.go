// Package stores backs the store locator: a fixed list of retail locations
// ordered by distance from the shopper.
package stores

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/proteuswear/storefront-api/models"
)

var locations = []models.Store{
	{
		ID:         1,
		Name:       "Proteus Flagship - MG Road",
		Address:    "12, MG Road, Bangalore, Karnataka 560001",
		Phone:      "+91 80 4567 8901",
		Hours:      "10:00 AM - 9:00 PM",
		Lat:        12.9716,
		Lng:        77.5946,
		DistanceKm: 2.3,
	},
	{
		ID:         2,
		Name:       "Proteus - Indiranagar",
		Address:    "100 Feet Road, Indiranagar, Bangalore 560038",
		Phone:      "+91 80 4567 8902",
		Hours:      "10:00 AM - 9:00 PM",
		Lat:        12.9784,
		Lng:        77.6408,
		DistanceKm: 4.7,
	},
	{
		ID:         3,
		Name:       "Proteus - Phoenix Mall",
		Address:    "Phoenix MarketCity, Whitefield, Bangalore 560066",
		Phone:      "+91 80 4567 8903",
		Hours:      "11:00 AM - 10:00 PM",
		Lat:        12.9973,
		Lng:        77.6961,
		DistanceKm: 8.2,
	},
	{
		ID:         4,
		Name:       "Proteus - Koramangala",
		Address:    "80 Feet Road, Koramangala, Bangalore 560034",
		Phone:      "+91 80 4567 8904",
		Hours:      "10:00 AM - 9:00 PM",
		Lat:        12.9352,
		Lng:        77.6245,
		DistanceKm: 5.1,
	},
	{
		ID:         5,
		Name:       "Proteus - UB City",
		Address:    "UB City Mall, Vittal Mallya Road, Bangalore 560001",
		Phone:      "+91 80 4567 8905",
		Hours:      "10:00 AM - 10:00 PM",
		Lat:        12.9712,
		Lng:        77.5964,
		DistanceKm: 3.5,
	},
}

// Nearest returns the store list sorted ascending by distance. The returned
// slice is a copy; callers may reorder it freely.
func Nearest() []models.Store {
	out := make([]models.Store, len(locations))
	copy(out, locations)
	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

// DirectionsURL builds the Google Maps directions link for a store.
func DirectionsURL(s models.Store) string {
	return fmt.Sprintf(
		"https://www.google.com/maps/dir/?api=1&destination=%g,%g&destination_place_id=%s",
		s.Lat, s.Lng, url.QueryEscape(s.Address))
}
