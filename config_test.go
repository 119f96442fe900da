package shp2xodr

import (
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default configuration should be valid, but got: %s", err.Error())
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	bad := []func(cfg *Config){
		func(cfg *Config) { cfg.Tolerance = -0.5 },
		func(cfg *Config) { cfg.CurveDetectionThreshold = 0.0 },
		func(cfg *Config) { cfg.MinCurveRunLength = 0 },
		func(cfg *Config) { cfg.WidthVariationThreshold = 0.0 },
		func(cfg *Config) { cfg.DefaultLaneWidth = -3.5 },
		func(cfg *Config) { cfg.SparsePointCount = 1 },
		func(cfg *Config) { cfg.BoostSparse = 0 },
	}
	for i, spoil := range bad {
		cfg := NewDefaultConfig()
		spoil(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("Case %d: spoiled configuration should fail validation", i)
		}
	}
}

func TestCheckHighwayTag(t *testing.T) {
	cfg := NewDefaultConfig()
	if !cfg.CheckHighwayTag("primary") {
		t.Errorf("Tag 'primary' should be accepted")
	}
	if cfg.CheckHighwayTag("footway") {
		t.Errorf("Tag 'footway' should be rejected")
	}
}
