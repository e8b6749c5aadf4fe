package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pcbforge/pcbforge/pkg/board"
	"github.com/pcbforge/pcbforge/pkg/cache"
	"github.com/pcbforge/pcbforge/pkg/drc"
	"github.com/pcbforge/pcbforge/pkg/nets"
	"github.com/pcbforge/pcbforge/pkg/observability"
	"github.com/pcbforge/pcbforge/pkg/place"
	"github.com/pcbforge/pcbforge/pkg/route"
)

// maxMeanderPasses bounds length matching per differential pair. A shallow
// zig-zag on a long segment can add less than requested, so each pass
// re-measures before meandering again.
const maxMeanderPasses = 5

// Runner executes the layout pipeline with optional caching.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a pipeline runner. Nil arguments get safe defaults:
// a no-op cache, the standard keyer, and the default logger.
func NewRunner(c cache.Cache, k cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: k, Logger: logger}
}

// applyLogger fills in the runner's logger when options carry none.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Execute runs the full pipeline: placement, net classification, routing,
// and design rule check. The design is mutated in place by bounds inference
// and by the placement stage.
func (r *Runner) Execute(ctx context.Context, design *board.Design, opts Options) (*Result, error) {
	if design == nil {
		return nil, fmt.Errorf("design must not be nil")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := design.InferBounds(); err != nil {
		return nil, err
	}
	if err := design.Validate(); err != nil {
		return nil, err
	}

	designJSON, err := json.Marshal(design)
	if err != nil {
		return nil, fmt.Errorf("hashing design: %w", err)
	}
	result := &Result{DesignHash: cache.Hash(designJSON)}
	result.Stats.ComponentCount = len(design.Components)
	result.Stats.ConnectionCount = len(design.Connections)

	layoutKey, err := r.layoutKey(result.DesignHash, &opts)
	if err != nil {
		return nil, err
	}

	// Full layout cache: a hit skips placement and routing entirely. The
	// check stage still runs because rules are part of the key and the
	// report is cheap.
	if !opts.Refresh {
		if data, hit, cerr := r.Cache.Get(ctx, layoutKey); cerr == nil && hit {
			var layout board.Layout
			if json.Unmarshal(data, &layout) == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				opts.Logger.Debug("layout cache hit", "key", layoutKey)
				result.Layout = &layout
				result.CacheInfo.LayoutHit = true
			}
		}
	}

	if result.Layout == nil {
		observability.Cache().OnCacheMiss(ctx, "layout")

		placed, err := r.placeStage(ctx, design, &opts, result)
		if err != nil {
			return nil, err
		}

		layout, err := r.routeStage(ctx, design, placed, &opts, result)
		if err != nil {
			return nil, err
		}
		result.Layout = layout

		if data, merr := json.Marshal(layout); merr == nil {
			_ = r.Cache.Set(ctx, layoutKey, data, cache.LayoutTTL)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	if !opts.SkipDRC {
		start := time.Now()
		observability.Pipeline().OnCheckStart(ctx, len(result.Layout.Tracks), len(result.Layout.Pads))
		result.Report = drc.Check(result.Layout, *opts.Rules)
		result.Stats.CheckTime = time.Since(start)
		observability.Pipeline().OnCheckComplete(ctx, result.Report.Total, result.Stats.CheckTime, nil)
		opts.Logger.Info("design rule check finished",
			"violations", result.Report.Total, "passed", result.Report.Passed)
	}

	return result, nil
}

// layoutKey derives the full-layout cache key, folding the active rules in
// so a rules change invalidates cached layouts.
func (r *Runner) layoutKey(designHash string, opts *Options) (string, error) {
	rulesJSON, err := json.Marshal(opts.Rules)
	if err != nil {
		return "", fmt.Errorf("hashing rules: %w", err)
	}
	return r.Keyer.LayoutKey(designHash, cache.LayoutKeyOpts{
		Method:     opts.Method,
		Iterations: opts.Iterations,
		Seed:       opts.Seed,
		Resolution: opts.GridResolution,
		Layers:     opts.Layers,
		RulesHash:  cache.Hash(rulesJSON),
	}), nil
}

// =============================================================================
// Placement Stage
// =============================================================================

// placeStage optimizes component positions, serving from cache when the
// same design and options were placed before. It returns the placed
// components and updates the design so routing sees the final positions.
func (r *Runner) placeStage(ctx context.Context, design *board.Design, opts *Options, result *Result) ([]board.Component, error) {
	opt := place.New(design)

	if opts.SkipOptimize {
		placed := append([]board.Component(nil), design.Components...)
		wl := opt.WireLength(placed)
		result.Stats.WirelengthBefore = wl
		result.Stats.WirelengthAfter = wl
		return placed, nil
	}

	start := time.Now()
	observability.Pipeline().OnPlaceStart(ctx, opts.Method, len(design.Components))

	key := r.Keyer.PlacementKey(result.DesignHash, cache.PlacementKeyOpts{
		Method:     opts.Method,
		Iterations: opts.Iterations,
		Seed:       opts.Seed,
	})

	var placed []board.Component
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached []board.Component
			if json.Unmarshal(data, &cached) == nil && len(cached) == len(design.Components) {
				observability.Cache().OnCacheHit(ctx, "placement")
				opts.Logger.Debug("placement cache hit", "key", key)
				placed = cached
				result.CacheInfo.PlacementHit = true
			}
		}
	}

	if placed == nil {
		observability.Cache().OnCacheMiss(ctx, "placement")
		rng := rand.New(rand.NewSource(opts.Seed))
		pr := opt.Run(place.Method(opts.Method), opts.Iterations, rng)
		placed = pr.Components
		result.Placement = pr
		result.Stats.WirelengthBefore = pr.Initial
		result.Stats.WirelengthAfter = pr.Final

		if len(pr.Trace) > 0 {
			s := pr.Summarize()
			opts.Logger.Debug("annealing cost trace",
				"mean", fmt.Sprintf("%.1fmm", s.Mean),
				"stddev", fmt.Sprintf("%.1fmm", s.StdDev))
		}

		if data, err := json.Marshal(placed); err == nil {
			_ = r.Cache.Set(ctx, key, data, cache.PlacementTTL)
			observability.Cache().OnCacheSet(ctx, "placement", len(data))
		}
	} else {
		result.Stats.WirelengthBefore = opt.WireLength(design.Components)
		result.Stats.WirelengthAfter = opt.WireLength(placed)
	}

	design.Components = placed
	result.Stats.PlaceTime = time.Since(start)
	observability.Pipeline().OnPlaceComplete(ctx, opts.Method, result.Stats.WirelengthAfter, result.Stats.PlaceTime, nil)
	opts.Logger.Info("placement finished",
		"method", opts.Method,
		"wirelength_before", fmt.Sprintf("%.1fmm", result.Stats.WirelengthBefore),
		"wirelength_after", fmt.Sprintf("%.1fmm", result.Stats.WirelengthAfter))
	return placed, nil
}

// =============================================================================
// Routing Stage
// =============================================================================

// routeStage classifies connections into nets and routes them in priority
// order on a shared obstacle grid. Every accepted trace is committed to the
// grid before the next connection is attempted. Connections with no grid
// path degrade to direct straight-line traces rather than failing the run.
func (r *Runner) routeStage(ctx context.Context, design *board.Design, placed []board.Component, opts *Options, result *Result) (*board.Layout, error) {
	start := time.Now()

	mgr := nets.NewManager()
	mgr.Build(design.Connections)
	result.Stats.NetCount = len(mgr.Nets())
	observability.Pipeline().OnRouteStart(ctx, result.Stats.NetCount, len(design.Connections))

	grid, err := route.NewMultiLayerGrid(design.Board.Width, design.Board.Height, opts.GridResolution, opts.Layers)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*board.Component, len(placed))
	for i := range placed {
		c := &placed[i]
		byName[c.Name] = c
		w, h := footprintExtent(c)
		grid.AddObstacle(c.Position.X-w/2, c.Position.Y-h/2, w, h, DefaultObstacleClearance)
	}

	layout := &board.Layout{
		RunID:      uuid.NewString(),
		Design:     design.Name,
		Board:      design.Board,
		Components: placed,
		Drills:     design.Drills,
		HasOutline: true,
	}

	pads := newPadTable()
	connIndex := 0
	for _, net := range mgr.RoutingOrder() {
		for _, conn := range net.Connections {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			from := byName[conn.From.Component]
			to := byName[conn.To.Component]
			if from == nil || to == nil {
				opts.Logger.Warn("skipping connection with unknown component",
					"from", conn.From, "to", conn.To)
				result.Stats.SkippedCount++
				continue
			}

			fromPad := pads.resolve(from, conn.From.Pin)
			toPad := pads.resolve(to, conn.To.Pin)
			fromPad.Net = net.Name
			toPad.Net = net.Name

			preferred := connIndex % opts.Layers
			connIndex++

			rt := board.Route{
				Connection: conn,
				Net:        net.Name,
				Class:      string(net.Class),
				TrackWidth: net.Rule.TrackWidth,
			}
			path, layer, rerr := grid.Route(fromPad.Position, toPad.Position, preferred)
			if rerr != nil {
				opts.Logger.Warn("no grid path, falling back to direct trace",
					"net", net.Name, "from", conn.From, "to", conn.To)
				rt.Path = board.Path{fromPad.Position, toPad.Position}
				rt.Layer = preferred
				rt.Fallback = true
				result.Stats.FallbackCount++
			} else {
				// Route already simplified the path at its default tolerance.
				rt.Path = path
				rt.Layer = layer
				grid.MarkTrace(layer, rt.Path, net.Rule.TrackWidth)
				result.Stats.RoutedCount++
			}
			layout.Routes = append(layout.Routes, rt)
		}
	}

	for _, pair := range mgr.Pairs() {
		r.matchPairLengths(layout, grid, pair, opts.Logger)
	}

	layout.Pads = pads.list()
	layout.Tracks = buildTracks(layout.Routes)

	result.Stats.RouteTime = time.Since(start)
	observability.Pipeline().OnRouteComplete(ctx, result.Stats.RoutedCount, result.Stats.FallbackCount, result.Stats.RouteTime, nil)
	opts.Logger.Info("routing finished",
		"routed", result.Stats.RoutedCount,
		"fallback", result.Stats.FallbackCount,
		"skipped", result.Stats.SkippedCount)
	return layout, nil
}

// matchPairLengths equalizes the routed lengths of a differential pair by
// repeatedly meandering the shorter member's longest route until the
// mismatch is within tolerance or the pass budget runs out. The grid is
// updated so the added copper stays visible to later length matching.
func (r *Runner) matchPairLengths(layout *board.Layout, grid *route.MultiLayerGrid, pair nets.Pair, logger *log.Logger) {
	for pass := 0; pass < maxMeanderPasses; pass++ {
		lenP := netRoutedLength(layout, pair.Positive)
		lenN := netRoutedLength(layout, pair.Negative)
		if lenP == 0 || lenN == 0 {
			return
		}
		diff := math.Abs(lenP - lenN)
		if diff <= pair.MaxMismatch {
			if pass > 0 {
				logger.Debug("length-matched differential pair",
					"pair", pair.Positive+"/"+pair.Negative,
					"passes", pass,
					"mismatch", fmt.Sprintf("%.3fmm", diff))
			}
			return
		}

		shorter := pair.Positive
		if lenN < lenP {
			shorter = pair.Negative
		}
		idx := longestRouteIndex(layout, shorter)
		if idx < 0 {
			return
		}

		rt := &layout.Routes[idx]
		rt.Path = nets.AddMeander(rt.Path, diff)
		grid.MarkTrace(rt.Layer, rt.Path, rt.TrackWidth)
	}

	residual := math.Abs(netRoutedLength(layout, pair.Positive) - netRoutedLength(layout, pair.Negative))
	if residual > pair.MaxMismatch {
		logger.Warn("differential pair still mismatched after length matching",
			"pair", pair.Positive+"/"+pair.Negative,
			"mismatch", fmt.Sprintf("%.2fmm", residual))
	}
}

// netRoutedLength sums the path lengths of every route on a net.
func netRoutedLength(layout *board.Layout, net string) float64 {
	var total float64
	for i := range layout.Routes {
		if layout.Routes[i].Net == net {
			total += layout.Routes[i].Path.Length()
		}
	}
	return total
}

// longestRouteIndex returns the index of the net's longest route, or -1.
func longestRouteIndex(layout *board.Layout, net string) int {
	idx, best := -1, -1.0
	for i := range layout.Routes {
		rt := &layout.Routes[i]
		if rt.Net != net {
			continue
		}
		if l := rt.Path.Length(); l > best {
			idx, best = i, l
		}
	}
	return idx
}

// buildTracks flattens route paths into straight copper segments.
func buildTracks(routes []board.Route) []board.Track {
	var tracks []board.Track
	for _, rt := range routes {
		for i := 0; i < len(rt.Path)-1; i++ {
			tracks = append(tracks, board.Track{
				Net:   rt.Net,
				Width: rt.TrackWidth,
				Layer: rt.Layer,
				Start: rt.Path[i],
				End:   rt.Path[i+1],
			})
		}
	}
	return tracks
}
