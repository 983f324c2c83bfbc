package server

import (
	"html/template"
	"net/url"

	"github.com/penwyp/go-project-panel/internal/core/model"
	"github.com/penwyp/go-project-panel/internal/data/filter"
	"github.com/penwyp/go-project-panel/internal/presentation/chart"
	"github.com/penwyp/go-project-panel/internal/presentation/formatter"
	"github.com/penwyp/go-project-panel/internal/util"
)

const pageTitle = "PAINEL EXECUTIVO - MAPA"

type optionView struct {
	Value    string
	Selected bool
}

type filterView struct {
	Name    string
	Label   string
	Options []optionView
}

type pageData struct {
	Title      string
	Source     string
	LoadedAt   string
	Filters    []filterView
	Cards      []filter.KPICard
	Chart      template.HTML
	ChartEmpty bool
	Message    string
	Headers    []string
	Rows       [][]string
}

func newPageData(ds *model.Dataset, report *formatter.Report, query url.Values) *pageData {
	data := &pageData{
		Title:      pageTitle,
		Source:     ds.Path,
		LoadedAt:   util.GetTimeProvider().Format(ds.LoadedAt, "02/01/2006 15:04:05"),
		Cards:      report.KPIs.Cards(),
		ChartEmpty: report.Layout == nil,
		Message:    chart.EmptyMessage,
		Headers:    report.DetailHeaders(),
	}

	// Choices come from the whole spreadsheet so a selection never hides itself
	options := filter.Options(ds.Records)
	for _, field := range filter.Fields {
		selected := make(map[string]bool)
		for _, v := range filter.NewCriteria(func(key string) []string { return query[key] })[field] {
			selected[v] = true
		}
		view := filterView{Name: string(field), Label: field.Label()}
		for _, v := range options[field] {
			view.Options = append(view.Options, optionView{Value: v, Selected: selected[v]})
		}
		data.Filters = append(data.Filters, view)
	}

	for i := range report.Records {
		data.Rows = append(data.Rows, formatter.DetailRow(&report.Records[i], data.Headers))
	}
	return data
}
