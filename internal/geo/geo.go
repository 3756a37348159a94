// Package geo provides the great-circle distance primitive used by the
// nearest-station queries.
package geo

import "math"

// EarthRadiusKm is the spherical earth radius used for all distance
// calculations.
const EarthRadiusKm = 6371.0

// Point is a geographic coordinate in signed decimal degrees.
// Latitude is in [-90, 90], longitude in [-180, 180].
type Point struct {
	Lat float64
	Lng float64
}

// Distance returns the haversine great-circle distance between two points
// in kilometers. Identical points return 0.
func Distance(p1, p2 Point) float64 {
	lat1 := deg2rad(p1.Lat)
	lon1 := deg2rad(p1.Lng)
	lat2 := deg2rad(p2.Lat)
	lon2 := deg2rad(p2.Lng)

	u := math.Sin((lat2 - lat1) / 2)
	v := math.Sin((lon2 - lon1) / 2)
	return 2.0 * EarthRadiusKm * math.Asin(math.Sqrt(u*u+math.Cos(lat1)*math.Cos(lat2)*v*v))
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180
}
