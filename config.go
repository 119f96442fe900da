package shp2xodr

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Config enumerates every recognized conversion option explicitly
type Config struct {
	// Tolerance is the Douglas-Peucker simplification tolerance (meters)
	Tolerance float64
	// UseArcFitting enables curve detection and arc fitting; otherwise every
	// geometry consists of line segments only
	UseArcFitting bool
	// CurveDetectionThreshold is the per-vertex heading change (radians) above
	// which a vertex counts towards a curved range
	CurveDetectionThreshold float64
	// MinCurveRunLength is the minimum number of consecutive turning vertices
	// for a range to be flagged as curved
	MinCurveRunLength int
	// WidthVariationThreshold separates constant-width lane surfaces from
	// variable-width ones (meters)
	WidthVariationThreshold float64
	// MinRoadLength filters out boundaries shorter than this (meters)
	MinRoadLength float64
	// DefaultLaneWidth is used where input attributes carry no width (meters)
	DefaultLaneWidth float64
	// SparsePointCount and the two boost factors control adaptive resampling:
	// boundaries with fewer points than SparsePointCount are resampled at
	// BoostSparse times the source density, denser ones at BoostDense times.
	// Sparse inputs lose curve shape in the midpoint line otherwise
	SparsePointCount int
	BoostSparse      int
	BoostDense       int
	// HighwayTags filters OSM ways for boundary synthesis
	HighwayTags []string
}

// NewDefaultConfig returns configuration matching common lane-level survey data
func NewDefaultConfig() *Config {
	return &Config{
		Tolerance:               0.1,
		UseArcFitting:           false,
		CurveDetectionThreshold: math.Pi / 18.0, // 10 degrees
		MinCurveRunLength:       2,
		WidthVariationThreshold: 0.1,
		MinRoadLength:           1.0,
		DefaultLaneWidth:        3.5,
		SparsePointCount:        10,
		BoostSparse:             10,
		BoostDense:              2,
		HighwayTags:             []string{"motorway", "trunk", "primary", "secondary", "tertiary", "residential", "unclassified"},
	}
}

// Validate checks option values before a conversion run
func (cfg *Config) Validate() error {
	if cfg.Tolerance < 0 {
		return errors.New("tolerance must be non-negative")
	}
	if cfg.CurveDetectionThreshold <= 0 {
		return errors.New("curve detection threshold must be positive")
	}
	if cfg.MinCurveRunLength < 1 {
		return errors.New("minimum curve run length must be at least 1")
	}
	if cfg.WidthVariationThreshold <= 0 {
		return errors.New("width variation threshold must be positive")
	}
	if cfg.DefaultLaneWidth <= 0 {
		return errors.New("default lane width must be positive")
	}
	if cfg.SparsePointCount < 2 || cfg.BoostSparse < 1 || cfg.BoostDense < 1 {
		return errors.New("bad resampling parameters")
	}
	return nil
}

// CheckHighwayTag checks if incoming OSM tag is represented in configuration
func (cfg *Config) CheckHighwayTag(tag string) bool {
	for i := range cfg.HighwayTags {
		if cfg.HighwayTags[i] == tag {
			return true
		}
	}
	return false
}

func (cfg *Config) String() string {
	return fmt.Sprintf(`
Conversion parameters:
	tolerance: %f
	use_arc_fitting: %t
	curve_detection_threshold: %f
	min_curve_run_length: %d
	width_variation_threshold: %f
	min_road_length: %f
	default_lane_width: %f
	resampling: sparse below %d points, boost x%d / x%d
	highway_tags: '%s'
	`,
		cfg.Tolerance,
		cfg.UseArcFitting,
		cfg.CurveDetectionThreshold,
		cfg.MinCurveRunLength,
		cfg.WidthVariationThreshold,
		cfg.MinRoadLength,
		cfg.DefaultLaneWidth,
		cfg.SparsePointCount,
		cfg.BoostSparse,
		cfg.BoostDense,
		strings.Join(cfg.HighwayTags, ","),
	)
}
