// Package geodesy projects points on a spherical Earth.
package geodesy

import "math"

// EarthRadiusM is the mean Earth radius used for every projection.
const EarthRadiusM = 6371e3

// Point is a WGS84 longitude/latitude pair in degrees.
type Point struct {
	Lon float64
	Lat float64
}

// NormalizeBearing maps any finite angle into [0, 360).
func NormalizeBearing(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	if m >= 360 {
		m = 0
	}
	return m
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }

// DestinationPoint returns the point reached by travelling distanceM metres
// from (lon, lat) along the initial bearing bearingDeg (0 = north, clockwise).
// The returned longitude is not wrapped into [-180, 180].
func DestinationPoint(lon, lat, bearingDeg, distanceM float64) (float64, float64) {
	delta := distanceM / EarthRadiusM
	theta := degToRad(bearingDeg)

	phi1 := degToRad(lat)
	lambda1 := degToRad(lon)

	sinPhi1, cosPhi1 := math.Sincos(phi1)
	sinDelta, cosDelta := math.Sincos(delta)
	sinTheta, cosTheta := math.Sincos(theta)

	sinPhi2 := sinPhi1*cosDelta + cosPhi1*sinDelta*cosTheta
	phi2 := math.Asin(sinPhi2)
	y := sinTheta * sinDelta * cosPhi1
	x := cosDelta - sinPhi1*sinPhi2
	lambda2 := lambda1 + math.Atan2(y, x)

	return radToDeg(lambda2), radToDeg(phi2)
}

// Destination is DestinationPoint for a Point.
func (p Point) Destination(bearingDeg, distanceM float64) Point {
	lon, lat := DestinationPoint(p.Lon, p.Lat, bearingDeg, distanceM)
	return Point{Lon: lon, Lat: lat}
}

// Distance is the haversine great-circle distance in metres.
func Distance(lon1, lat1, lon2, lat2 float64) float64 {
	phi1, phi2 := degToRad(lat1), degToRad(lat2)
	dPhi := phi2 - phi1
	dLambda := degToRad(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * EarthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
