package analyzer

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/penwyp/go-project-panel/internal/config"
	"github.com/penwyp/go-project-panel/internal/core/model"
	"github.com/penwyp/go-project-panel/internal/core/timeline"
	"github.com/penwyp/go-project-panel/internal/data/filter"
	"github.com/penwyp/go-project-panel/internal/presentation/formatter"
	"github.com/penwyp/go-project-panel/internal/util"
)

// Pipeline turns a loaded dataset and filter criteria into a report. It holds
// no per-request state and is safe for concurrent use.
type Pipeline struct {
	builder *timeline.TimelineBuilder
	options timeline.LayoutOptions
}

func NewPipeline(cfg *config.Config) (*Pipeline, error) {
	assigner, err := cfg.Assigner()
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		builder: timeline.NewTimelineBuilder(assigner, cfg.ProgressPolicy()),
		options: cfg.LayoutOptions(),
	}, nil
}

// Report filters the dataset, tallies KPIs and composes the timeline. A
// selection without usable dates yields a report with a nil Layout.
func (p *Pipeline) Report(ds *model.Dataset, criteria filter.Criteria) (*formatter.Report, error) {
	report := &formatter.Report{}
	var records []model.ProjectRecord
	if ds != nil {
		report.Source = ds.Path
		report.SnapshotID = ds.SnapshotID
		report.Columns = ds.Columns
		records = ds.Records
	}

	report.Records = filter.Apply(records, criteria)
	report.KPIs = filter.ComputeKPIs(report.Records)

	rows, dropped := p.builder.BuildRows(report.Records)
	report.Dropped = dropped

	layout, err := timeline.Compose(rows, p.options)
	switch {
	case err == nil:
		report.Layout = layout
	case goerr.HasTag(err, model.ErrTagEmptyDataset):
		util.LogDebug("No rows with dates for current selection", util.F("records", len(report.Records)))
	default:
		return nil, err
	}
	return report, nil
}
