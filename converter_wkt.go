package shp2xodr

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTLinestring returns WKT representation of LineString
func PrepareWKTLinestring(line orb.LineString) string {
	return wkt.MarshalString(line)
}

// PrepareWKTPoint returns WKT representation of Point
func PrepareWKTPoint(pt orb.Point) string {
	return wkt.MarshalString(pt)
}

// RoadsToWKT returns WKT representation of every road's plan-view geometry, sampled
// with given step (meters). Keyed by road ID
func RoadsToWKT(network *RoadNetwork, step float64) map[string]string {
	result := make(map[string]string, len(network.Roads))
	for _, road := range network.Roads {
		result[road.RoadID] = PrepareWKTLinestring(sampleSegments(road.PlanView, step))
	}
	return result
}
