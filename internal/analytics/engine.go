package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/model"
)

// FactSource supplies filtered order-fact records. It is the engine's view
// of the warehouse store.
type FactSource interface {
	FetchOrderFacts(ctx context.Context, filter model.FilterSpec) ([]model.OrderFact, error)
}

// Engine runs analyzers against facts fetched from a source. All analyzers
// invoked for one call share a single fetched snapshot, so results are
// filter-consistent even without snapshot isolation upstream.
type Engine struct {
	source FactSource
	cfg    config.AnalyticsConfig
	now    func() time.Time
}

// NewEngine creates an Engine. Returns nil if source is nil.
func NewEngine(source FactSource, cfg config.AnalyticsConfig) *Engine {
	if source == nil {
		return nil
	}
	return &Engine{source: source, cfg: cfg, now: time.Now}
}

// Config returns the thresholds the engine analyzes with.
func (e *Engine) Config() config.AnalyticsConfig {
	return e.cfg
}

func (e *Engine) fetch(ctx context.Context, filter model.FilterSpec) ([]model.OrderFact, error) {
	start := time.Now()
	facts, err := e.source.FetchOrderFacts(ctx, filter)
	if err != nil {
		return nil, eris.Wrap(err, "analytics: fetch order facts")
	}
	zap.L().Debug("analytics: facts fetched",
		zap.Int("records", len(facts)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return facts, nil
}

// PriceAnomalies fetches facts and runs the anomaly detector.
func (e *Engine) PriceAnomalies(ctx context.Context, filter model.FilterSpec) ([]model.PriceAnomaly, error) {
	facts, err := e.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return DetectPriceAnomalies(facts, e.cfg), nil
}

// SupplierRisk fetches facts and runs the risk scorer.
func (e *Engine) SupplierRisk(ctx context.Context, filter model.FilterSpec) ([]model.SupplierRisk, error) {
	facts, err := e.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ScoreSupplierRisk(facts, e.cfg), nil
}

// DeliveryForecast fetches facts and runs the delivery-time forecaster.
func (e *Engine) DeliveryForecast(ctx context.Context, filter model.FilterSpec) ([]model.DeliveryForecast, error) {
	facts, err := e.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ForecastDeliveryTimes(facts, e.cfg), nil
}

// PartAssociations fetches facts and runs the co-occurrence miner.
func (e *Engine) PartAssociations(ctx context.Context, filter model.FilterSpec) ([]model.PartAssociation, error) {
	facts, err := e.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return MinePartAssociations(facts, e.cfg), nil
}

// SupplierSegments fetches facts and runs the segmentation engine.
func (e *Engine) SupplierSegments(ctx context.Context, filter model.FilterSpec) ([]model.SupplierSegment, error) {
	facts, err := e.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return SegmentSuppliers(facts, e.cfg), nil
}

// Trends fetches facts and runs the weekly trend engine.
func (e *Engine) Trends(ctx context.Context, filter model.FilterSpec) ([]model.WeeklyTrend, error) {
	facts, err := e.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return WeeklyTrends(facts, e.now(), e.cfg), nil
}

// AutomationImpact fetches facts and runs the automation analyzer.
func (e *Engine) AutomationImpact(ctx context.Context, filter model.FilterSpec) ([]model.AutomationImpact, error) {
	facts, err := e.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return AnalyzeAutomationImpact(facts), nil
}

// Cancellations fetches facts and runs the cancellation analyzer.
func (e *Engine) Cancellations(ctx context.Context, filter model.FilterSpec) (*model.CancellationAnalysis, error) {
	facts, err := e.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return AnalyzeCancellations(facts, e.cfg), nil
}

// ClaimComplexity fetches facts and runs the complexity scorer.
func (e *Engine) ClaimComplexity(ctx context.Context, filter model.FilterSpec) ([]model.ClaimComplexity, error) {
	facts, err := e.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ScoreClaimComplexity(facts, e.cfg), nil
}

// WorkshopDemand fetches facts and runs the demand analyzer.
func (e *Engine) WorkshopDemand(ctx context.Context, filter model.FilterSpec) ([]model.WorkshopDemand, error) {
	facts, err := e.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return AnalyzeWorkshopDemand(facts, e.now(), e.cfg), nil
}

// Summary fetches facts and computes the headline counters.
func (e *Engine) Summary(ctx context.Context, filter model.FilterSpec) (*model.Summary, error) {
	facts, err := e.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return Summarize(facts, e.cfg), nil
}

// Dashboard bundles every analyzer's output for one snapshot. Analyzers
// that timed out or were cancelled report under Errors; the rest of the
// dashboard is still usable.
type Dashboard struct {
	Summary          *model.Summary              `json:"summary,omitempty"`
	PriceAnomalies   []model.PriceAnomaly        `json:"price_anomalies,omitempty"`
	SupplierRisk     []model.SupplierRisk        `json:"supplier_risk,omitempty"`
	DeliveryForecast []model.DeliveryForecast    `json:"delivery_prediction,omitempty"`
	PartAssociations []model.PartAssociation     `json:"part_cooccurrence,omitempty"`
	SupplierSegments []model.SupplierSegment     `json:"supplier_clusters,omitempty"`
	Trends           []model.WeeklyTrend         `json:"trends,omitempty"`
	AutomationImpact []model.AutomationImpact    `json:"automation_impact,omitempty"`
	Cancellations    *model.CancellationAnalysis `json:"cancellation_analysis,omitempty"`
	ClaimComplexity  []model.ClaimComplexity     `json:"claim_complexity,omitempty"`
	WorkshopDemand   []model.WorkshopDemand      `json:"workshop_demand,omitempty"`
	Errors           map[string]string           `json:"errors,omitempty"`
}

// Dashboard fetches one snapshot and fans every analyzer out over it
// concurrently, each under its own timeout so a slow analyzer cannot block
// the rest. The fetch itself failing is a hard error: every analyzer needs
// the same source.
func (e *Engine) Dashboard(ctx context.Context, filter model.FilterSpec) (*Dashboard, error) {
	facts, err := e.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(e.cfg.AnalyzerTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	dash := &Dashboard{}
	var mu sync.Mutex
	abandoned := make(map[string]bool)

	// commit publishes an analyzer's result unless its slot was abandoned
	// by a timeout; a late goroutine must not write into a dashboard the
	// caller is already reading.
	commit := func(name string, assign func()) {
		mu.Lock()
		defer mu.Unlock()
		if !abandoned[name] {
			assign()
		}
	}
	fail := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		abandoned[name] = true
		if dash.Errors == nil {
			dash.Errors = make(map[string]string)
		}
		dash.Errors[name] = err.Error()
		zap.L().Warn("analytics: analyzer failed", zap.String("analyzer", name), zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	run := func(name string, fn func()) {
		g.Go(func() error {
			done := make(chan struct{})
			go func() {
				defer close(done)
				fn()
			}()
			select {
			case <-done:
			case <-time.After(timeout):
				fail(name, eris.Errorf("analytics: %s timed out after %s", name, timeout))
			case <-gctx.Done():
				fail(name, eris.Wrapf(gctx.Err(), "analytics: %s cancelled", name))
			}
			return nil
		})
	}

	run("summary", func() {
		v := Summarize(facts, e.cfg)
		commit("summary", func() { dash.Summary = v })
	})
	run("price_anomalies", func() {
		v := DetectPriceAnomalies(facts, e.cfg)
		commit("price_anomalies", func() { dash.PriceAnomalies = v })
	})
	run("supplier_risk", func() {
		v := ScoreSupplierRisk(facts, e.cfg)
		commit("supplier_risk", func() { dash.SupplierRisk = v })
	})
	run("delivery_prediction", func() {
		v := ForecastDeliveryTimes(facts, e.cfg)
		commit("delivery_prediction", func() { dash.DeliveryForecast = v })
	})
	run("part_cooccurrence", func() {
		v := MinePartAssociations(facts, e.cfg)
		commit("part_cooccurrence", func() { dash.PartAssociations = v })
	})
	run("supplier_clusters", func() {
		v := SegmentSuppliers(facts, e.cfg)
		commit("supplier_clusters", func() { dash.SupplierSegments = v })
	})
	run("trends", func() {
		v := WeeklyTrends(facts, e.now(), e.cfg)
		commit("trends", func() { dash.Trends = v })
	})
	run("automation_impact", func() {
		v := AnalyzeAutomationImpact(facts)
		commit("automation_impact", func() { dash.AutomationImpact = v })
	})
	run("cancellation_analysis", func() {
		v := AnalyzeCancellations(facts, e.cfg)
		commit("cancellation_analysis", func() { dash.Cancellations = v })
	})
	run("claim_complexity", func() {
		v := ScoreClaimComplexity(facts, e.cfg)
		commit("claim_complexity", func() { dash.ClaimComplexity = v })
	})
	run("workshop_demand", func() {
		v := AnalyzeWorkshopDemand(facts, e.now(), e.cfg)
		commit("workshop_demand", func() { dash.WorkshopDemand = v })
	})

	_ = g.Wait()

	zap.L().Info("analytics: dashboard computed",
		zap.Int("records", len(facts)),
		zap.Int("analyzer_errors", len(dash.Errors)),
	)
	return dash, nil
}
