package domain

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

const (
	maxStreetLen     = 100
	maxCityLen       = 50
	maxStateLen      = 50
	maxPostalCodeLen = 20
	maxCountryLen    = 50
	maxEircodeLen    = 10
)

// Resolver turns a free-text address into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, address string) (Coordinates, error)
}

type Address struct {
	ID              uuid.UUID   `json:"Id" bson:"id"`
	Street          string      `json:"Street" bson:"street"`
	City            string      `json:"City" bson:"city"`
	StateOrProvince string      `json:"StateOrProvince" bson:"state_or_province"`
	PostalCode      string      `json:"PostalCode" bson:"postal_code"`
	Country         string      `json:"Country" bson:"country"`
	Eircode         string      `json:"Eircode" bson:"eircode"`
	Coordinates     Coordinates `json:"Coordinates" bson:"coordinates"`
}

// NewAddress validates the address fields and returns an address placed at the
// default coordinates. Call UpdateCoordinates to geocode it.
func NewAddress(street, city, stateOrProvince, postalCode, country, eircode string) (*Address, error) {
	a := &Address{
		Street:          street,
		City:            city,
		StateOrProvince: stateOrProvince,
		PostalCode:      postalCode,
		Country:         country,
		Eircode:         eircode,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	a.ID = uuid.New()
	a.Coordinates = DefaultCoordinates()
	return a, nil
}

// Validate checks field presence and length bounds.
func (a *Address) Validate() error {
	if err := requireText("Street", a.Street, maxStreetLen); err != nil {
		return err
	}
	if err := requireText("City", a.City, maxCityLen); err != nil {
		return err
	}
	if err := optionalText("StateOrProvince", a.StateOrProvince, maxStateLen); err != nil {
		return err
	}
	if err := requireText("PostalCode", a.PostalCode, maxPostalCodeLen); err != nil {
		return err
	}
	if err := requireText("Country", a.Country, maxCountryLen); err != nil {
		return err
	}
	return optionalText("Eircode", a.Eircode, maxEircodeLen)
}

// FullAddress composes the geocoding query: eircode first when present, then
// street, city, state, postal code and country.
func (a *Address) FullAddress() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.Eircode, a.Street, a.City, a.StateOrProvince, a.PostalCode, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// UpdateCoordinates geocodes the address. On resolver failure the current
// coordinates are kept and false is returned.
func (a *Address) UpdateCoordinates(ctx context.Context, resolver Resolver) bool {
	if resolver == nil {
		return false
	}
	coords, err := resolver.Resolve(ctx, a.FullAddress())
	if err != nil {
		return false
	}
	a.Coordinates = coords
	return true
}
