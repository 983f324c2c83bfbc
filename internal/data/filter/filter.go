// Package filter narrows a dataset by the dashboard's multi-select fields and
// tallies the headline indicators.
package filter

import (
	"sort"
	"strings"

	"github.com/penwyp/go-project-panel/internal/core/model"
)

// Field identifies a filterable column
type Field string

const (
	FieldSecretariat Field = "secretaria"
	FieldType        Field = "tipo"
	FieldSubtype     Field = "subtipo"
	FieldProject     Field = "projeto"
	FieldStatus      Field = "situacao"
)

// Fields lists the filter fields in form order
var Fields = []Field{FieldSecretariat, FieldType, FieldSubtype, FieldProject, FieldStatus}

// Label is the form caption of the field
func (f Field) Label() string {
	switch f {
	case FieldSecretariat:
		return "Secretaria"
	case FieldType:
		return "Tipo"
	case FieldSubtype:
		return "Subtipo"
	case FieldProject:
		return "Projeto"
	case FieldStatus:
		return "Situação"
	}
	return string(f)
}

// Value extracts the field from a record
func (f Field) Value(r *model.ProjectRecord) string {
	switch f {
	case FieldSecretariat:
		return r.Secretariat
	case FieldType:
		return r.Type
	case FieldSubtype:
		return r.Subtype
	case FieldProject:
		return r.Name
	case FieldStatus:
		return r.Status
	}
	return ""
}

// Criteria holds the selected values per field. A field with no selected
// values does not filter; fields are combined with AND.
type Criteria map[Field][]string

// NewCriteria reads criteria from a lookup such as url.Values. Each value is
// one selected option and is kept whole, commas included.
func NewCriteria(lookup func(key string) []string) Criteria {
	c := make(Criteria)
	for _, f := range Fields {
		for _, v := range lookup(string(f)) {
			if v = strings.TrimSpace(v); v != "" {
				c[f] = append(c[f], v)
			}
		}
	}
	return c
}

// IsEmpty reports whether no field is constrained
func (c Criteria) IsEmpty() bool {
	for _, values := range c {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

// Matches reports whether the record passes every constrained field
func (c Criteria) Matches(r *model.ProjectRecord) bool {
	for field, values := range c {
		if len(values) == 0 {
			continue
		}
		if !contains(values, field.Value(r)) {
			return false
		}
	}
	return true
}

// Apply returns the records matching c, in their original order
func Apply(records []model.ProjectRecord, c Criteria) []model.ProjectRecord {
	if c.IsEmpty() {
		return records
	}
	out := make([]model.ProjectRecord, 0, len(records))
	for i := range records {
		if c.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// Options returns sorted unique non-empty values per field
func Options(records []model.ProjectRecord) map[Field][]string {
	seen := make(map[Field]map[string]struct{}, len(Fields))
	for _, f := range Fields {
		seen[f] = make(map[string]struct{})
	}
	for i := range records {
		for _, f := range Fields {
			if v := f.Value(&records[i]); v != "" {
				seen[f][v] = struct{}{}
			}
		}
	}

	options := make(map[Field][]string, len(Fields))
	for f, set := range seen {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		options[f] = values
	}
	return options
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
