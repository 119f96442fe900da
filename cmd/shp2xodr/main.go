package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/lanekit/shp2xodr"
)

var (
	fileName       = flag.String("file", "lanes.shp", "Filename of input file: *.shp with lane boundary polylines or *.osm.pbf for synthesized boundaries")
	out            = flag.String("out", "roads.xodr", "Filename of output OpenDRIVE file")
	tolerance      = flag.Float64("tolerance", 0.1, "Douglas-Peucker simplification tolerance (meters)")
	useArcs        = flag.Bool("arcs", false, "Fit arcs over curved ranges instead of chained lines")
	curveThreshold = flag.Float64("curve-threshold", 10.0, "Heading change per vertex (degrees) flagging a curved range")
	widthThreshold = flag.Float64("width-threshold", 0.1, "Width variation (meters) separating constant and variable width lanes")
	minLength      = flag.Float64("min-length", 1.0, "Minimal boundary/road length (meters)")
	laneWidth      = flag.Float64("lane-width", 3.5, "Default lane width (meters) where input carries none")
	tagStr         = flag.String("tags", "motorway,trunk,primary,secondary,tertiary,residential,unclassified", "Set of needed highway tags for OSM input (separated by commas)")
	geomFormat     = flag.String("geomf", "", "Debug dump of converted reference lines. Expected values: wkt / geojson (empty for no dump)")
	verbose        = flag.Bool("verbose", true, "Print progress")
)

func main() {
	flag.Parse()

	cfg := shp2xodr.NewDefaultConfig()
	cfg.Tolerance = *tolerance
	cfg.UseArcFitting = *useArcs
	cfg.CurveDetectionThreshold = *curveThreshold * math.Pi / 180.0
	cfg.WidthVariationThreshold = *widthThreshold
	cfg.MinRoadLength = *minLength
	cfg.DefaultLaneWidth = *laneWidth
	cfg.HighwayTags = strings.Split(*tagStr, ",")

	var boundaries []shp2xodr.LaneBoundary
	var err error
	switch strings.ToLower(filepath.Ext(*fileName)) {
	case ".shp":
		boundaries, err = shp2xodr.LoadBoundariesFromShapefile(*fileName, cfg, *verbose)
	case ".pbf":
		boundaries, err = shp2xodr.SynthesizeBoundariesFromOSM(*fileName, cfg, *verbose)
	default:
		fmt.Printf("Unsupported input extension: '%s'. Expected *.shp or *.osm.pbf\n", *fileName)
		return
	}
	if err != nil {
		fmt.Println(err)
		return
	}

	network, err := shp2xodr.ConvertRoadNetwork(boundaries, nil, cfg, *verbose)
	if err != nil {
		fmt.Println(err)
		return
	}

	name := strings.TrimSuffix(filepath.Base(*out), filepath.Ext(*out))
	if err := shp2xodr.ExportToXODR(network, name, *out); err != nil {
		fmt.Println(err)
		return
	}

	switch strings.ToLower(*geomFormat) {
	case "":
	case "wkt":
		dumpName := *out + ".wkt"
		lines := []string{}
		for roadID, geom := range shp2xodr.RoadsToWKT(network, 1.0) {
			lines = append(lines, fmt.Sprintf("%s;%s", roadID, geom))
		}
		if err := os.WriteFile(dumpName, []byte(strings.Join(lines, "\n")), 0644); err != nil {
			fmt.Println(err)
			return
		}
	case "geojson":
		dumpName := *out + ".geojson"
		dump, err := shp2xodr.RoadsToGeoJSON(network, 1.0)
		if err != nil {
			fmt.Println(err)
			return
		}
		if err := os.WriteFile(dumpName, []byte(dump), 0644); err != nil {
			fmt.Println(err)
			return
		}
	default:
		fmt.Printf("Unknown geometry dump format: '%s'\n", *geomFormat)
		return
	}

	if *verbose {
		fmt.Printf("Converted %d of %d roads, total length %.2f m\n",
			network.Stats.OutputRoads, network.Stats.InputRoads, network.Stats.TotalLength)
	}
}
