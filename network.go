package shp2xodr

import (
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// Positional slack allowed between consecutive propagated segments in production runs
const pipelineContinuityEps = 1e-3

// RoadLink declares that ToRoadID follows FromRoadID (shared contact point).
// Links come from the external connection data of the source format
type RoadLink struct {
	FromRoadID string
	ToRoadID   string
}

// ConversionStats summarizes one conversion run
type ConversionStats struct {
	InputRoads  int
	OutputRoads int
	TotalLength float64
	Warnings    []string
}

// RoadNetwork is the converted road network ready for serialization
type RoadNetwork struct {
	Roads []*RoadGeometry
	Stats ConversionStats
}

func (stats *ConversionStats) warn(verbose bool, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	stats.Warnings = append(stats.Warnings, message)
	if verbose {
		fmt.Printf("\tWarning. %s\n", message)
	}
}

// groupBoundaries splits boundaries by road identifier. Returns groups and sorted road IDs
func groupBoundaries(boundaries []LaneBoundary) (map[string][]LaneBoundary, []string) {
	byRoad := make(map[string][]LaneBoundary)
	for _, boundary := range boundaries {
		byRoad[boundary.RoadID] = append(byRoad[boundary.RoadID], boundary)
	}
	roadIDs := make([]string, 0, len(byRoad))
	for roadID := range byRoad {
		roadIDs = append(roadIDs, roadID)
	}
	sort.Strings(roadIDs)
	return byRoad, roadIDs
}

// applyRoadLinks fills predecessor/successor road IDs of every group.
// Links referencing unknown roads are dropped
func applyRoadLinks(groups map[string]*RoadSurfaceGroup, links []RoadLink) {
	for _, link := range links {
		from, fromOk := groups[link.FromRoadID]
		to, toOk := groups[link.ToRoadID]
		if !fromOk || !toOk {
			continue
		}
		from.Successors = append(from.Successors, to.RoadID)
		to.Predecessors = append(to.Predecessors, from.RoadID)
	}
}

// ConvertRoadNetwork runs the whole pipeline: boundaries are grouped per road, paired
// into lane surfaces, reshaped for cross-road consistency, and every road gets its
// reference line resolved and converted into line/arc segments.
//
// Per-road failures (malformed boundaries, missing pairs) are isolated: a bad road is
// reported in the stats and skipped, the rest of the batch continues. A continuity
// violation after conversion is a defect in the converter itself and aborts the run
func ConvertRoadNetwork(boundaries []LaneBoundary, links []RoadLink, cfg *Config, verbose bool) (*RoadNetwork, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "Bad configuration")
	}

	network := &RoadNetwork{}
	byRoad, roadIDs := groupBoundaries(boundaries)
	network.Stats.InputRoads = len(roadIDs)

	if verbose {
		fmt.Printf("Building lane surfaces...")
	}
	st := time.Now()
	groups := make(map[string]*RoadSurfaceGroup, len(roadIDs))
	surfacesTotal := 0
	for _, roadID := range roadIDs {
		surfaces := buildLaneSurfaces(roadID, byRoad[roadID], cfg, verbose)
		if len(surfaces) == 0 {
			network.Stats.warn(verbose, "Road %s: no lane surfaces could be built", roadID)
			continue
		}
		groups[roadID] = &RoadSurfaceGroup{RoadID: roadID, Surfaces: surfaces}
		surfacesTotal += len(surfaces)
	}
	if verbose {
		fmt.Printf("Done in %v\n\tRoads: %d\n\tLane surfaces: %d\n", time.Since(st), len(groups), surfacesTotal)
	}
	if len(groups) == 0 {
		return nil, errors.New("No road produced any lane surface")
	}

	// The connection index must be complete before the first adjustment: adjustments
	// read unadjusted neighbor poses
	applyRoadLinks(groups, links)
	connections := buildRoadConnections(groups)

	if verbose {
		fmt.Printf("Adjusting connection consistency...")
	}
	st = time.Now()
	for _, group := range groups {
		adjusted := make([]*LaneSurface, len(group.Surfaces))
		for i, surface := range group.Surfaces {
			adjusted[i] = adjustSurface(surface, connections.Incoming(group.RoadID), connections.Outgoing(group.RoadID))
		}
		group.Surfaces = adjusted
	}
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	if verbose {
		fmt.Printf("Converting reference lines...")
	}
	st = time.Now()
	for _, roadID := range roadIDs {
		group, ok := groups[roadID]
		if !ok {
			continue
		}
		referenceLine, err := resolveReferenceLine(group, cfg)
		if err != nil {
			network.Stats.warn(verbose, "Road %s: %s", roadID, err.Error())
			continue
		}
		segments, err := convertGeometry(referenceLine, cfg, verbose)
		if err != nil {
			network.Stats.warn(verbose, "Road %s: %s", roadID, err.Error())
			continue
		}
		if err := validateContinuity(segments, pipelineContinuityEps); err != nil {
			return nil, errors.Wrapf(err, "Road %s", roadID)
		}
		road := assembleRoad(group, referenceLine, segments)
		if road.Length < cfg.MinRoadLength {
			network.Stats.warn(verbose, "Road %s: length %f is below minimum %f", roadID, road.Length, cfg.MinRoadLength)
			continue
		}
		network.Roads = append(network.Roads, road)
		network.Stats.TotalLength += road.Length
	}
	network.Stats.OutputRoads = len(network.Roads)
	if verbose {
		fmt.Printf("Done in %v\n\tOutput roads: %d\n\tTotal length: %f m\n", time.Since(st), network.Stats.OutputRoads, network.Stats.TotalLength)
	}

	if len(network.Roads) == 0 {
		return nil, errors.New("No road survived conversion")
	}
	return network, nil
}
