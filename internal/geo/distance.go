// Package geo provides great-circle distance and spatial indexing for bridge coordinates.
package geo

import "math"

// EarthRadiusKM is the mean Earth radius used by every distance calculation.
const EarthRadiusKM = 6371.0

// Distance returns the haversine distance in kilometers between (lat1, lon1)
// and (lat2, lon2), rounded to the nearest meter. Inputs are degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := phi2 - phi1
	dLambda := radians(lon2) - radians(lon1)

	h := math.Pow(math.Sin(dPhi/2), 2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)

	return Round(2*EarthRadiusKM*math.Asin(math.Min(1, math.Sqrt(h))), 3)
}

// Round rounds v to the given number of decimal places, halves away from zero.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
