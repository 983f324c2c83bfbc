package server

import (
	"html/template"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/m-mizutani/goerr/v2"

	"github.com/penwyp/go-project-panel/internal/core/model"
	"github.com/penwyp/go-project-panel/internal/data/filter"
	"github.com/penwyp/go-project-panel/internal/presentation/chart"
	"github.com/penwyp/go-project-panel/internal/presentation/formatter"
	"github.com/penwyp/go-project-panel/internal/util"
)

type projectsResponse struct {
	SnapshotID string                `json:"snapshot_id"`
	Count      int                   `json:"count"`
	Records    []model.ProjectRecord `json:"records"`
}

type kpisResponse struct {
	filter.KPIs
	Cards []filter.KPICard `json:"cards"`
}

// load returns the current dataset and the report for the request's filters
func (s *Server) load(r *http.Request) (*model.Dataset, *formatter.Report, error) {
	result, err := s.datasets.Get(s.file)
	if err != nil {
		return nil, nil, err
	}
	query := r.URL.Query()
	criteria := filter.NewCriteria(func(key string) []string { return query[key] })

	report, err := s.pipeline.Report(result.Dataset, criteria)
	if err != nil {
		return nil, nil, err
	}
	return result.Dataset, report, nil
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	_, report, err := s.load(r)
	if err != nil {
		writeError(w, err)
		return
	}
	records := report.Records
	if records == nil {
		records = []model.ProjectRecord{}
	}
	writeJSON(w, http.StatusOK, projectsResponse{
		SnapshotID: report.SnapshotID,
		Count:      len(records),
		Records:    records,
	})
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	_, report, err := s.load(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kpisResponse{KPIs: report.KPIs, Cards: report.KPIs.Cards()})
}

// handleOptions lists choices from the whole spreadsheet, ignoring filters
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	result, err := s.datasets.Get(s.file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filter.Options(result.Dataset.Records))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	_, report, err := s.load(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chart.NewSpec(report.Layout))
}

func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	_, report, err := s.load(r)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(chart.RenderSVG(report.Layout, s.svg))); err != nil {
		util.LogError("Failed to write chart", util.F("error", err.Error()))
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ds, report, err := s.load(r)
	if err != nil {
		writeError(w, err)
		return
	}

	data := newPageData(ds, report, r.URL.Query())
	// RenderSVG escapes every text node it writes
	data.Chart = template.HTML(chart.RenderSVG(report.Layout, s.svg))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		util.LogError("Failed to render page", util.F("error", err.Error()))
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "go-project-panel",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		util.LogError("Failed to encode response", util.F("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		util.LogError("Failed to write response", util.F("error", err.Error()))
	}
}

// writeError maps tagged errors to status codes
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if goerr.HasTag(err, model.ErrTagDatasetNotFound) {
		status = http.StatusServiceUnavailable
	}

	util.LogError("Request failed", util.F("status", status), util.F("error", err.Error()))
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
