package shp2xodr

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(line orb.LineString) string {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].X(), line[i].Y()}
	}
	b, err := geojson.NewLineStringGeometry(pts2d).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt orb.Point) string {
	b, err := geojson.NewPointGeometry([]float64{pt.X(), pt.Y()}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// RoadsToGeoJSON returns a GeoJSON feature collection with every road's plan-view
// geometry sampled with given step (meters)
func RoadsToGeoJSON(network *RoadNetwork, step float64) (string, error) {
	collection := geojson.NewFeatureCollection()
	for _, road := range network.Roads {
		sampled := sampleSegments(road.PlanView, step)
		pts2d := make([][]float64, len(sampled))
		for i := range sampled {
			pts2d[i] = []float64{sampled[i].X(), sampled[i].Y()}
		}
		feature := geojson.NewLineStringFeature(pts2d)
		feature.SetProperty("road_id", road.RoadID)
		feature.SetProperty("length", road.Length)
		feature.SetProperty("lanes", len(road.Lanes))
		collection.AddFeature(feature)
	}
	b, err := collection.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
