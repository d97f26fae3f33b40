package geo

import "math"

const (
	earthRadiusKm = 6371.0

	WalkingSpeedKmh = 5.0
	DrivingSpeedKmh = 25.0 // carnival traffic
)

// HaversineKm is the great circle distance between two points.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

type Estimate struct {
	DistanceKm     float64 `json:"distanceKm"`
	WalkingMinutes int     `json:"walkingMinutes"`
	DrivingMinutes int     `json:"drivingMinutes"`
}

func Estimated(lat1, lng1, lat2, lng2 float64) Estimate {
	km := HaversineKm(lat1, lng1, lat2, lng2)
	return Estimate{
		DistanceKm:     math.Round(km*100) / 100,
		WalkingMinutes: minutesAt(km, WalkingSpeedKmh),
		DrivingMinutes: minutesAt(km, DrivingSpeedKmh),
	}
}

func minutesAt(km, speedKmh float64) int {
	return int(math.Ceil(km / speedKmh * 60))
}

func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Bounds returns the lat/lng box enclosing a radius around a point. ok is
// false when the box would wrap a pole or the antimeridian.
func Bounds(lat, lng, radiusKm float64) (minLat, maxLat, minLng, maxLng float64, ok bool) {
	dLat := radiusKm / earthRadiusKm * 180 / math.Pi
	minLat, maxLat = lat-dLat, lat+dLat
	if minLat < -90 || maxLat > 90 {
		return 0, 0, 0, 0, false
	}
	dLng := dLat / math.Cos(toRad(lat))
	minLng, maxLng = lng-dLng, lng+dLng
	if minLng < -180 || maxLng > 180 {
		return 0, 0, 0, 0, false
	}
	return minLat, maxLat, minLng, maxLng, true
}
