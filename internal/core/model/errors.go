package model

import "github.com/m-mizutani/goerr/v2"

// Error tags shared by the timeline core and the data layer
var (
	ErrTagInvalidColorFormat = goerr.NewTag("invalid_color_format")
	ErrTagInvalidDateRange   = goerr.NewTag("invalid_date_range")
	ErrTagEmptyDataset       = goerr.NewTag("empty_dataset")
	ErrTagInvalidRange       = goerr.NewTag("invalid_range")

	ErrTagDatasetNotFound   = goerr.NewTag("dataset_not_found")
	ErrTagUnsupportedFormat = goerr.NewTag("unsupported_format")
	ErrTagInvalidConfig     = goerr.NewTag("invalid_config")
)
