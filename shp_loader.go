package shp2xodr

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Attribute field names recognized in the DBF part of a shapefile, matched
// case-insensitively. The first present candidate wins
var (
	roadIDFields = []string{"road_id", "roadid", "road", "rid"}
	indexFields  = []string{"index", "idx", "lane_index", "boundary"}
	widthFields  = []string{"width", "lane_width"}
	speedFields  = []string{"speed", "speed_limit", "maxspeed"}
	typeFields   = []string{"type", "road_type"}
)

func findField(fields []shp.Field, candidates []string) int {
	for i := range fields {
		name := strings.ToLower(strings.TrimRight(fields[i].String(), "\x00"))
		for _, candidate := range candidates {
			if name == candidate {
				return i
			}
		}
	}
	return -1
}

func parseFloatAttribute(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return parsed
}

// LoadBoundariesFromShapefile reads lane boundary polylines from given shapefile.
// Coordinates are expected to be planar already (meters); they are translated to a
// local origin so geometry starts near (0, 0). Records with less than 2 points are
// skipped with a warning. Boundaries shorter than the configured minimum are dropped
func LoadBoundariesFromShapefile(fileName string, cfg *Config, verbose bool) ([]LaneBoundary, error) {
	reader, err := shp.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer reader.Close()

	fields := reader.Fields()
	roadIDField := findField(fields, roadIDFields)
	indexField := findField(fields, indexFields)
	widthField := findField(fields, widthFields)
	speedField := findField(fields, speedFields)
	typeField := findField(fields, typeFields)

	if verbose {
		fmt.Printf("Scanning shapes...")
	}
	st := time.Now()

	boundaries := []LaneBoundary{}
	perRoadCounter := make(map[string]int)
	skipped := 0
	for reader.Next() {
		row, shape := reader.Shape()
		polyline, ok := shape.(*shp.PolyLine)
		if !ok {
			skipped++
			continue
		}
		geom := make(orb.LineString, 0, len(polyline.Points))
		for _, pt := range polyline.Points {
			geom = append(geom, orb.Point{pt.X, pt.Y})
		}
		if len(geom) < 2 {
			if verbose {
				fmt.Printf("\tWarning. Record %d has %d points, skipping\n", row, len(geom))
			}
			skipped++
			continue
		}

		roadID := fmt.Sprintf("%d", row)
		if roadIDField >= 0 {
			roadID = strings.TrimSpace(reader.ReadAttribute(row, roadIDField))
		}
		index := ""
		if indexField >= 0 {
			index = strings.TrimSpace(reader.ReadAttribute(row, indexField))
		}
		if index == "" {
			// No index attribute: order boundaries by appearance within the road
			index = strconv.Itoa(perRoadCounter[roadID])
		}
		perRoadCounter[roadID]++

		attributes := BoundaryAttributes{}
		if widthField >= 0 {
			attributes.Width = parseFloatAttribute(reader.ReadAttribute(row, widthField))
		}
		if speedField >= 0 {
			attributes.SpeedLimit = parseFloatAttribute(reader.ReadAttribute(row, speedField))
		}
		if typeField >= 0 {
			attributes.RoadType = strings.TrimSpace(reader.ReadAttribute(row, typeField))
		}

		boundaries = append(boundaries, LaneBoundary{
			RoadID:     roadID,
			Index:      index,
			Geom:       geom,
			Attributes: attributes,
		})
	}
	if reader.Err() != nil {
		return nil, errors.Wrap(reader.Err(), "Reader error on shapes")
	}
	if verbose {
		fmt.Printf("Done in %v\n\tBoundaries: %d\n\tSkipped records: %d\n", time.Since(st), len(boundaries), skipped)
	}
	if len(boundaries) == 0 {
		return nil, errors.New("Shapefile contains no usable polylines")
	}

	translateToLocalOrigin(boundaries)

	filtered := boundaries[:0]
	for _, boundary := range boundaries {
		if lineLength(boundary.Geom) < cfg.MinRoadLength {
			continue
		}
		filtered = append(filtered, boundary)
	}
	if verbose && len(filtered) != len(boundaries) {
		fmt.Printf("\tFiltered %d boundaries shorter than %f m\n", len(boundaries)-len(filtered), cfg.MinRoadLength)
	}
	return filtered, nil
}

// translateToLocalOrigin shifts all boundaries so the minimum corner of the common
// bounding box becomes (0, 0). Large projected coordinates lose precision downstream
func translateToLocalOrigin(boundaries []LaneBoundary) {
	if len(boundaries) == 0 {
		return
	}
	minX := boundaries[0].Geom[0].X()
	minY := boundaries[0].Geom[0].Y()
	for _, boundary := range boundaries {
		for _, pt := range boundary.Geom {
			if pt.X() < minX {
				minX = pt.X()
			}
			if pt.Y() < minY {
				minY = pt.Y()
			}
		}
	}
	for _, boundary := range boundaries {
		for i := range boundary.Geom {
			boundary.Geom[i] = orb.Point{boundary.Geom[i].X() - minX, boundary.Geom[i].Y() - minY}
		}
	}
}
