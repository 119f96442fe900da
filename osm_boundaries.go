package shp2xodr

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

const earthR = 20037508.34

// epsg4326To3857 projects longitude/latitude to planar meters (Web Mercator)
func epsg4326To3857(lon, lat float64) (float64, float64) {
	x := lon * earthR / 180
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * earthR / 180
	return x, y
}

func lineToPlanar(line orb.LineString) orb.LineString {
	planar := make(orb.LineString, len(line))
	for i, pt := range line {
		x, y := epsg4326To3857(pt.Lon(), pt.Lat())
		planar[i] = orb.Point{x, y}
	}
	return planar
}

// SynthesizeBoundariesFromOSM builds lane boundary pairs out of OSM way centerlines:
// every way passing the configured highway filter is projected to planar meters and
// offset half a lane width to each side. The left boundary gets index "0" (the
// canonical centerline convention), the right one "1". Useful for generating lane-level
// fixtures where no surveyed lane shapefile exists.
//
// File should have PBF (Protocolbuffer Binary Format) extension according to
// https://github.com/paulmach/osm
func SynthesizeBoundariesFromOSM(fileName string, cfg *Config, verbose bool) ([]LaneBoundary, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer f.Close()

	scannerWays := osmpbf.New(context.Background(), f, 4)
	defer scannerWays.Close()

	type wayRecord struct {
		id       int64
		nodes    osm.WayNodes
		width    float64
		maxspeed float64
	}

	ways := []wayRecord{}
	nodesSeen := make(map[osm.NodeID]struct{})

	if verbose {
		fmt.Printf("Scanning ways...")
	}
	st := time.Now()
	for scannerWays.Scan() {
		obj := scannerWays.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		tagMap := way.TagMap()
		tag, ok := tagMap["highway"]
		if !ok {
			continue
		}
		if !cfg.CheckHighwayTag(tag) {
			continue
		}
		record := wayRecord{
			id:    int64(way.ID),
			nodes: make(osm.WayNodes, len(way.Nodes)),
			width: cfg.DefaultLaneWidth,
		}
		copy(record.nodes, way.Nodes)
		if v, ok := tagMap["width"]; ok {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && parsed > 0 {
				record.width = parsed
			}
		}
		if v, ok := tagMap["maxspeed"]; ok {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				record.maxspeed = parsed
			}
		}
		ways = append(ways, record)
		for _, node := range record.nodes {
			nodesSeen[node.ID] = struct{}{}
		}
	}
	if scannerWays.Err() != nil {
		return nil, errors.Wrap(scannerWays.Err(), "Scanner error on Ways")
	}
	if verbose {
		fmt.Printf("Done in %v\n\tWays: %d\n", time.Since(st), len(ways))
	}

	// Seek file to start
	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking")
	}
	scannerNodes := osmpbf.New(context.Background(), f, 4)
	defer scannerNodes.Close()

	if verbose {
		fmt.Printf("Scanning nodes...")
	}
	st = time.Now()
	nodes := make(map[osm.NodeID]orb.Point)
	for scannerNodes.Scan() {
		obj := scannerNodes.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := nodesSeen[node.ID]; ok {
			delete(nodesSeen, node.ID)
			nodes[node.ID] = orb.Point{node.Lon, node.Lat}
		}
	}
	if scannerNodes.Err() != nil {
		return nil, errors.Wrap(scannerNodes.Err(), "Scanner error on Nodes")
	}
	if verbose {
		fmt.Printf("Done in %v\n\tNodes: %d\n", time.Since(st), len(nodes))
	}

	if verbose {
		fmt.Printf("Synthesizing boundaries...")
	}
	st = time.Now()
	boundaries := []LaneBoundary{}
	for _, way := range ways {
		centerline := make(orb.LineString, 0, len(way.nodes))
		missing := false
		for _, wayNode := range way.nodes {
			pt, ok := nodes[wayNode.ID]
			if !ok {
				missing = true
				break
			}
			centerline = append(centerline, pt)
		}
		if missing || len(centerline) < 2 {
			continue
		}
		planar := lineToPlanar(centerline)
		roadID := fmt.Sprintf("%d", way.id)
		attributes := BoundaryAttributes{Width: way.width, SpeedLimit: way.maxspeed, RoadType: "urban"}
		boundaries = append(boundaries,
			LaneBoundary{
				RoadID:     roadID,
				Index:      "0",
				Geom:       offsetCurve(planar, way.width/2.0),
				Attributes: attributes,
			},
			LaneBoundary{
				RoadID:     roadID,
				Index:      "1",
				Geom:       offsetCurve(planar, -way.width/2.0),
				Attributes: attributes,
			},
		)
	}
	if verbose {
		fmt.Printf("Done in %v\n\tBoundaries: %d\n", time.Since(st), len(boundaries))
	}
	if len(boundaries) == 0 {
		return nil, errors.New("No way produced boundaries")
	}
	translateToLocalOrigin(boundaries)
	return boundaries, nil
}
