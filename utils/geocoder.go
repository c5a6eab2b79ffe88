package utils

import (
	"context"
	"fmt"

	"github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/google"
	"github.com/codingsince1985/geo-golang/openstreetmap"

	"restaurant-api/models"
)

// Geocoder resolves a free-text address into a Location. Lookup failures are
// tolerated by callers: a restaurant is stored without location enrichment.
type Geocoder interface {
	Lookup(ctx context.Context, address string) (*models.Location, error)
}

// GeoService geocodes addresses through a provider from geo-golang.
type GeoService struct {
	geocoder geo.Geocoder
}

// NewGeoService returns a geocoder backed by Google when an API key is
// supplied, OpenStreetMap otherwise.
func NewGeoService(googleAPIKey string) *GeoService {
	if googleAPIKey != "" {
		return &GeoService{geocoder: google.Geocoder(googleAPIKey)}
	}
	return &GeoService{geocoder: openstreetmap.Geocoder()}
}

// Lookup forward-geocodes the address for coordinates, then reverse-geocodes
// them for the normalized address components.
func (g *GeoService) Lookup(_ context.Context, address string) (*models.Location, error) {
	loc, err := g.geocoder.Geocode(address)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}
	if loc == nil {
		return nil, fmt.Errorf("geocode %q: no result", address)
	}

	location := &models.Location{
		Type:        "Point",
		Coordinates: []float64{loc.Lng, loc.Lat},
	}

	addr, err := g.geocoder.ReverseGeocode(loc.Lat, loc.Lng)
	if err != nil || addr == nil {
		// Coordinates alone are still useful.
		return location, nil
	}

	location.FormattedAddress = addr.FormattedAddress
	location.Country = addr.Country
	location.City = addr.City
	location.StreetName = addr.Street
	location.StreetNumber = addr.HouseNumber
	location.Zipcode = addr.Postcode
	return location, nil
}
