package domain

import "math"

const earthRadiusKm = 6371.0

// Dublin city centre. Addresses start here until they are geocoded.
const (
	DefaultLatitude  = 53.3498
	DefaultLongitude = -6.2603
)

// Coordinates is a latitude/longitude pair in degrees. Ranges are not validated.
type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// DefaultCoordinates returns the reference city centre.
func DefaultCoordinates() Coordinates {
	return Coordinates{Latitude: DefaultLatitude, Longitude: DefaultLongitude}
}

// Distance returns the great-circle distance between a and b in kilometers
// using the haversine formula.
func Distance(a, b Coordinates) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)
	lat1Rad := toRadians(a.Latitude)
	lat2Rad := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// DistanceTo is a convenience wrapper around Distance.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	return Distance(c, other)
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
