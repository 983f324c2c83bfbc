package formatter

import (
	"time"

	"github.com/penwyp/go-project-panel/internal/core/timeline"
	"github.com/penwyp/go-project-panel/internal/util"
)

func formatDate(t *time.Time) string {
	if s := util.FormatDatePtr(t); s != "" {
		return s
	}
	return "-"
}

func formatProgress(p float64) string {
	return util.FormatPercent(timeline.NormalizeProgress(p))
}
