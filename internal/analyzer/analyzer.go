package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/bmoura/tempotrack/internal/core/constants"
	"github.com/bmoura/tempotrack/internal/core/model"
	"github.com/bmoura/tempotrack/internal/data/parser"
	"github.com/bmoura/tempotrack/internal/data/snapshot"
	"github.com/bmoura/tempotrack/internal/data/source"
	"github.com/bmoura/tempotrack/internal/engine"
	"github.com/bmoura/tempotrack/internal/presentation/formatter"
	"github.com/bmoura/tempotrack/internal/util"
)

type Config struct {
	Source          string
	CacheDir        string
	RefreshInterval time.Duration
	Timezone        string
	OutputFormat    string

	// BoundaryHour is the hour at which a cycle day rolls over. Zero
	// means plain calendar days.
	BoundaryHour int

	// From/To bound the report in cycle dates (2006-01-02). When From
	// is empty the window is the last Days cycle dates ending at the
	// newest event.
	From string
	To   string
	Days int

	Limit int

	// Similarity parameters.
	KeyCategory      string
	ToleranceMinutes float64
	// CutoffMinutes is the elapsed-minutes mark inside the cycle at
	// which cycles are compared. Zero derives it from the current time.
	CutoffMinutes float64
	// Categories to project; empty means every category seen in the
	// similar cycles' history.
	Categories []string
}

type Analyzer struct {
	config    *Config
	source    source.Source
	snapshot  *snapshot.Store
	parser    *parser.Parser
	formatter formatter.Formatter
	location  *time.Location
}

// dataset is the parsed, range-filtered input every report starts from.
type dataset struct {
	events  []model.Event
	quality model.QualityReport
	from    model.Date
	to      model.Date
}

func New(config *Config) (*Analyzer, error) {
	loc := util.GetTimeProvider().Location()

	store, err := snapshot.NewStore(config.CacheDir, config.RefreshInterval)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	f, err := formatter.New(config.OutputFormat)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		config:    config,
		source:    source.New(config.Source),
		snapshot:  store,
		parser:    parser.NewParser(loc),
		formatter: f,
		location:  loc,
	}, nil
}

// Report produces the per-cycle totals, daily means and day-period
// distribution for the configured window.
func (a *Analyzer) Report(ctx context.Context) error {
	ds, err := a.load(ctx)
	if err != nil {
		return err
	}

	aggStart := time.Now()
	totals := engine.SumWholeByCycle(ds.events, a.config.BoundaryHour, ds.from, ds.to)
	means := engine.MeanPerCycle(ds.events, a.config.BoundaryHour)
	periods := engine.PeriodDistribution(ds.events)
	util.LogDebugf("Phase 4 - Aggregation duration: %v, buckets: %d", time.Since(aggStart), len(totals))

	report := &formatter.DailyReport{
		From:         ds.from.String(),
		To:           ds.to.String(),
		BoundaryHour: a.config.BoundaryHour,
		Quality:      qualitySummary(ds.quality),
	}
	for _, t := range totals {
		report.Rows = append(report.Rows, formatter.DailyRow{
			Date:     t.Bucket.Date.String(),
			Category: t.Category,
			Minutes:  t.Minutes,
			Count:    t.Count,
		})
	}
	for _, m := range means {
		report.Means = append(report.Means, formatter.MeanRow{
			Category:    m.Category,
			MeanMinutes: m.MeanMinutes,
			Periods:     m.Periods,
		})
	}
	for _, p := range periods {
		report.Periods = append(report.Periods, formatter.PeriodRow{
			Category:      p.Category,
			Period:        p.Period,
			Count:         p.Count,
			MinMinutes:    p.MinMinutes,
			MedianMinutes: p.MedianMinutes,
			MeanMinutes:   p.MeanMinutes,
			MaxMinutes:    p.MaxMinutes,
		})
	}

	if a.config.Limit > 0 && len(report.Rows) > a.config.Limit {
		util.LogDebugf("Applying result limit: %d -> %d", len(report.Rows), a.config.Limit)
		report.Rows = report.Rows[len(report.Rows)-a.config.Limit:]
	}

	return a.formatter.Daily(report)
}

// Heatmap produces the minutes-per-hour-of-day grid. Events are split
// at hour boundaries first so a 23:50 to 00:10 event credits ten
// minutes to each side of midnight.
func (a *Analyzer) Heatmap(ctx context.Context) error {
	ds, err := a.load(ctx)
	if err != nil {
		return err
	}

	segStart := time.Now()
	segmenter := engine.Segmenter{Width: engine.WidthHour}
	segments := segmenter.SegmentAll(ds.events)
	rows := engine.HourlyHeatmap(segments)
	util.LogDebugf("Phase 4 - Segmentation duration: %v, segments: %d", time.Since(segStart), len(segments))

	report := &formatter.HeatmapReport{From: ds.from.String(), To: ds.to.String()}
	for _, r := range rows {
		report.Rows = append(report.Rows, formatter.HeatmapRow{Category: r.Category, Minutes: r.Minutes})
	}
	return a.formatter.Heatmap(report)
}

// Similar finds historical cycles whose key-category cumulative total at
// the cutoff resembles the current cycle's, then projects the remainder
// of today from what those cycles did after the same mark.
func (a *Analyzer) Similar(ctx context.Context) error {
	ds, err := a.load(ctx)
	if err != nil {
		return err
	}

	matchStart := time.Now()
	boundary := a.config.BoundaryHour
	cycles := engine.GroupByCycle(ds.events, boundary)

	now := util.GetTimeProvider().Now()
	current := engine.CycleDate(now, boundary)

	cutoff := a.config.CutoffMinutes
	if cutoff <= 0 {
		cutoff = now.Sub(engine.CycleStart(current, boundary, a.location)).Minutes()
	}

	matcher := engine.Matcher{BoundaryHour: boundary, Location: a.location}
	today := matcher.CumulativeAtCutoff(current, cycles[current], a.config.KeyCategory, cutoff)

	// The current cycle is still in progress; it is the probe, never
	// part of the history it is compared against.
	delete(cycles, current)

	records := matcher.FindSimilar(cycles, a.config.KeyCategory, today, a.config.ToleranceMinutes, cutoff)
	projection := matcher.Project(cycles, records, cutoff, a.config.Categories)
	util.LogDebugf("Phase 4 - Similarity matching duration: %v, similar cycles: %d",
		time.Since(matchStart), len(records))

	report := &formatter.SimilarityReport{
		KeyCategory:      a.config.KeyCategory,
		CurrentCycle:     current.String(),
		TodayValue:       today,
		ToleranceMinutes: a.config.ToleranceMinutes,
		CutoffMinutes:    cutoff,
	}
	for _, r := range records {
		report.Records = append(report.Records, formatter.SimilarityRow{
			CycleDate:        r.CycleDate.String(),
			KeyCategoryTotal: r.KeyCategoryTotal,
			Difference:       r.Difference,
		})
	}
	for _, s := range projection.Stats {
		report.Stats = append(report.Stats, formatter.ProjectionRow{
			Category:    s.Category,
			MinMinutes:  s.MinMinutes,
			MeanMinutes: s.MeanMinutes,
			MaxMinutes:  s.MaxMinutes,
		})
	}
	for _, rem := range projection.Remaining {
		report.Remaining = append(report.Remaining, formatter.RemainingRow{
			CycleDate: rem.CycleDate.String(),
			Start:     rem.Start.In(a.location).Format("15:04"),
			End:       rem.End.In(a.location).Format("15:04"),
			Category:  rem.Category,
			Label:     rem.Label,
			Minutes:   rem.DurationMinutes,
		})
	}

	return a.formatter.Similarity(report)
}

// Watch re-runs run whenever the underlying source file changes. It
// only applies to local file sources; remote sources rely on the
// snapshot refresh interval instead.
func (a *Analyzer) Watch(ctx context.Context, run func() error) error {
	path, ok := a.source.LocalPath()
	if !ok {
		return fmt.Errorf("watch requires a local file source, got %s", a.source.ID())
	}

	watcher, err := source.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer watcher.Close()

	util.LogInfof("Watching %s for changes", path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-watcher.Changes():
			// The file changed, so the snapshot is stale.
			if err := a.snapshot.Clear(); err != nil {
				util.LogWarnf("Failed to clear snapshot cache: %v", err)
			}
			if err := run(); err != nil {
				util.LogErrorf("Refresh failed: %v", err)
			}
		}
	}
}

// load fetches (or reuses) the raw data, parses it and applies the
// configured date window.
func (a *Analyzer) load(ctx context.Context) (*dataset, error) {
	startTime := time.Now()

	// Phase 1: snapshot lookup.
	fetchStart := time.Now()
	data, hit := a.snapshot.Get(a.source.ID())
	if hit {
		util.LogDebugf("Phase 1 - Snapshot hit for %s", a.source.ID())
	} else {
		var err error
		data, err = a.source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", a.source.ID(), err)
		}
		if err := a.snapshot.Set(a.source.ID(), data); err != nil {
			util.LogWarnf("Failed to store snapshot for %s: %v", a.source.ID(), err)
		}
	}
	util.LogDebugf("Phase 1 - Data fetch duration: %v, bytes: %d", time.Since(fetchStart), len(data))

	// Phase 2: parse.
	parseStart := time.Now()
	events, quality, err := a.parser.Parse(data)
	if err != nil {
		return nil, err
	}
	util.LogDebugf("Phase 2 - Parse duration: %v, accepted %d of %d rows",
		time.Since(parseStart), quality.Accepted, quality.TotalRows)

	if len(events) == 0 {
		return nil, fmt.Errorf("%s has no usable rows: %w", a.source.ID(), model.ErrNoData)
	}

	// Phase 3: date window.
	filterStart := time.Now()
	from, to, err := a.resolveWindow(events)
	if err != nil {
		return nil, err
	}
	filtered := filterByCycleDate(events, a.config.BoundaryHour, from, to)
	util.LogDebugf("Phase 3 - Date filtering duration: %v, %d -> %d events",
		time.Since(filterStart), len(events), len(filtered))

	if len(filtered) == 0 {
		return nil, fmt.Errorf("no events between %s and %s: %w", from, to, model.ErrNoData)
	}

	util.LogDebugf("Data load total duration: %v", time.Since(startTime))
	return &dataset{events: filtered, quality: quality, from: from, to: to}, nil
}

// resolveWindow turns the From/To/Days configuration into a concrete
// cycle-date range. Without an explicit From, the window is the last
// Days cycle dates anchored at the newest event in the data.
func (a *Analyzer) resolveWindow(events []model.Event) (model.Date, model.Date, error) {
	var from, to model.Date

	if a.config.To != "" {
		parsed, err := model.ParseDate(a.config.To)
		if err != nil {
			return from, to, fmt.Errorf("invalid --to date: %w", err)
		}
		to = parsed
	}
	if a.config.From != "" {
		parsed, err := model.ParseDate(a.config.From)
		if err != nil {
			return from, to, fmt.Errorf("invalid --from date: %w", err)
		}
		from = parsed
		if to.IsZero() {
			to = newestCycleDate(events, a.config.BoundaryHour)
		}
		if to.Before(from) {
			return from, to, fmt.Errorf("window end %s precedes start %s", to, from)
		}
		return from, to, nil
	}

	if to.IsZero() {
		to = newestCycleDate(events, a.config.BoundaryHour)
	}
	days := a.config.Days
	if days <= 0 {
		days = constants.DefaultLookbackDays
	}
	from = to.AddDays(-(days - 1))
	// Clamp the lookback to the data so short datasets don't report
	// a tail of all-zero days.
	if oldest := oldestCycleDate(events, a.config.BoundaryHour); from.Before(oldest) {
		from = oldest
	}
	return from, to, nil
}

func newestCycleDate(events []model.Event, boundaryHour int) model.Date {
	var newest model.Date
	for _, ev := range events {
		d := engine.CycleDate(ev.Start, boundaryHour)
		if newest.IsZero() || newest.Before(d) {
			newest = d
		}
	}
	return newest
}

func oldestCycleDate(events []model.Event, boundaryHour int) model.Date {
	var oldest model.Date
	for _, ev := range events {
		d := engine.CycleDate(ev.Start, boundaryHour)
		if oldest.IsZero() || d.Before(oldest) {
			oldest = d
		}
	}
	return oldest
}

func filterByCycleDate(events []model.Event, boundaryHour int, from, to model.Date) []model.Event {
	var filtered []model.Event
	for _, ev := range events {
		d := engine.CycleDate(ev.Start, boundaryHour)
		if !d.Before(from) && !d.After(to) {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

func qualitySummary(q model.QualityReport) formatter.QualitySummary {
	return formatter.QualitySummary{
		TotalRows:          q.TotalRows,
		Accepted:           q.Accepted,
		MalformedTimestamp: q.MalformedTimestamp,
		MissingCategory:    q.MissingCategory,
		InvertedInterval:   q.InvertedInterval,
		DurationMismatch:   q.DurationMismatch,
	}
}
