package service

import (
	"math"

	"github.com/tripsentry/tripsentry/module/core/domain"
)

const earthRadiusKm = 6371

// distanceKm is the haversine great-circle distance between two coordinates.
func distanceKm(a, b domain.Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// nearestWaypoint returns the planned location closest to p and its distance
// in kilometers. An empty waypoint list yields (nil, +Inf). Ties keep the
// first waypoint in iteration order.
func nearestWaypoint(p domain.Coordinate, waypoints []domain.PlannedLocation) (*domain.PlannedLocation, float64) {
	var nearest *domain.PlannedLocation
	minDist := math.Inf(1)

	for i := range waypoints {
		if d := distanceKm(p, waypoints[i].Coordinate); d < minDist {
			minDist = d
			nearest = &waypoints[i]
		}
	}
	return nearest, minDist
}
