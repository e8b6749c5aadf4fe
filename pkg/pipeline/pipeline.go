// Package pipeline provides the core layout pipeline for pcbforge.
//
// This package implements the complete place → classify → route → check
// sequence used by the CLI. Centralizing it keeps behavior identical no
// matter which command triggers a run and gives caching one home.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Place: optimize component positions against total wirelength
//  2. Classify: group connections into nets, attach rules, order by priority
//  3. Route: A* route every connection in priority order, committing each
//     accepted trace before the next is attempted
//  4. Check: run the design rule checker over the finished geometry
//
// Stage order is load-bearing: placement finishes before any routing
// begins, and each committed trace is visible to every later routing call.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Method: "anneal", Seed: 7}
//	result, err := runner.Execute(ctx, design, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	layout := result.Layout
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pcbforge/pcbforge/pkg/board"
	"github.com/pcbforge/pcbforge/pkg/drc"
	"github.com/pcbforge/pcbforge/pkg/place"
	"github.com/pcbforge/pcbforge/pkg/route"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultMethod is the placement strategy used when none is chosen.
	DefaultMethod = string(place.MethodAnneal)

	// DefaultSeed makes unseeded runs reproducible rather than random.
	DefaultSeed = int64(42)

	// DefaultLayers is the number of copper layers.
	DefaultLayers = 1

	// DefaultObstacleClearance is the penalized band around component
	// bodies, in millimeters.
	DefaultObstacleClearance = 0.5
)

// ValidMethods is the set of supported placement strategies.
var ValidMethods = map[string]bool{
	string(place.MethodAnneal): true,
	string(place.MethodForce):  true,
	string(place.MethodBoth):   true,
	string(place.MethodGrid):   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization so runs can be reproduced.
type Options struct {
	// Placement options
	Method       string `json:"method,omitempty"`
	Iterations   int    `json:"iterations,omitempty"`
	Seed         int64  `json:"seed,omitempty"`
	SkipOptimize bool   `json:"skip_optimize,omitempty"` // keep input positions as-is

	// Routing options
	GridResolution float64 `json:"grid_resolution,omitempty"`
	Layers         int     `json:"layers,omitempty"`

	// Check options
	RulesPath string `json:"rules_path,omitempty"`
	SkipDRC   bool   `json:"skip_drc,omitempty"`

	// Refresh bypasses all caches.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	Rules  *drc.Rules  `json:"-"` // preloaded rules take precedence over RulesPath

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Method == "" {
		o.Method = DefaultMethod
	}
	if !ValidMethods[o.Method] {
		return fmt.Errorf("invalid method: %q (must be one of: anneal, force, both, grid)", o.Method)
	}
	if o.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative (got %d)", o.Iterations)
	}
	if o.GridResolution == 0 {
		o.GridResolution = route.DefaultResolution
	}
	if o.GridResolution < 0 {
		return fmt.Errorf("grid resolution must be positive (got %v)", o.GridResolution)
	}
	if o.Layers == 0 {
		o.Layers = DefaultLayers
	}
	if o.Layers < 0 {
		return fmt.Errorf("layer count must be positive (got %d)", o.Layers)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Rules == nil {
		if o.RulesPath != "" {
			rules, err := drc.LoadRules(o.RulesPath)
			if err != nil {
				return err
			}
			o.Rules = &rules
		} else {
			rules := drc.DefaultRules()
			o.Rules = &rules
		}
	}

	o.validated = true
	return nil
}

// =============================================================================
// Result Types
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the finished board artifact.
	Layout *board.Layout

	// Report is the DRC outcome, nil when the check stage was skipped.
	Report *drc.Report

	// Placement carries the optimizer's cost trace, nil when placement
	// was skipped or served from cache.
	Placement *place.Result

	// DesignHash is the content hash of the input design.
	DesignHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ComponentCount  int
	NetCount        int
	ConnectionCount int

	RoutedCount   int // connections with a found grid path
	FallbackCount int // connections realized as direct lines
	SkippedCount  int // connections that could not be realized at all

	WirelengthBefore float64 // mm, placement cost before optimization
	WirelengthAfter  float64

	PlaceTime time.Duration
	RouteTime time.Duration
	CheckTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlacementHit bool // placement came from cache
	LayoutHit    bool // full routed layout came from cache
}
