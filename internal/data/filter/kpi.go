package filter

import (
	"github.com/penwyp/go-project-panel/internal/core/model"
)

// KPIs are the headline counts shown above the chart
type KPIs struct {
	Total      int `json:"total"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Paused     int `json:"paused"`
	Internal   int `json:"internal"`
	External   int `json:"external"`
}

// KPICard is one labelled indicator
type KPICard struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

func ComputeKPIs(records []model.ProjectRecord) KPIs {
	k := KPIs{Total: len(records)}
	for i := range records {
		switch records[i].Status {
		case model.StatusInProgress:
			k.InProgress++
		case model.StatusCompleted:
			k.Completed++
		case model.StatusPaused:
			k.Paused++
		}
		switch records[i].Type {
		case model.TypeInternal:
			k.Internal++
		case model.TypeExternal:
			k.External++
		}
	}
	return k
}

// Cards returns the indicators in display order
func (k KPIs) Cards() []KPICard {
	return []KPICard{
		{Label: "Total de Projetos", Value: k.Total},
		{Label: model.StatusInProgress, Value: k.InProgress},
		{Label: model.StatusCompleted, Value: k.Completed},
		{Label: model.StatusPaused, Value: k.Paused},
		{Label: "Internos", Value: k.Internal},
		{Label: "Externos", Value: k.External},
	}
}
