package dto

import (
	"fmt"
	"sort"
	"strings"
)

// Creator is a validated create payload that builds a new model.
type Creator[T any] interface {
	NewModel() T
}

// Patcher is a partial update payload; nil fields leave the model untouched.
type Patcher[T any] interface {
	ApplyTo(*T)
}

// ListQuery is the parsed query string of a list request.
type ListQuery struct {
	Filters   map[string]string
	Query     string
	StartDate string
	EndDate   string
	Skip      int
	Limit     int
}

// Key is a canonical form of the query, stable across parameter order.
func (q ListQuery) Key() string {
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s&", k, q.Filters[k])
	}
	fmt.Fprintf(&b, "q=%s&start=%s&end=%s&skip=%d&limit=%d", strings.ToLower(q.Query), q.StartDate, q.EndDate, q.Skip, q.Limit)
	return b.String()
}

// SetCoverRequest selects or clears (null) an entity's cover image.
type SetCoverRequest struct {
	ImageID *uint `json:"image_id"`
}

func activeOrDefault(p *bool) bool {
	if p == nil {
		return true
	}
	return *p
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setUint(dst *uint, src *uint) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// setRef copies an optional foreign key; zero clears it.
func setRef(dst **uint, src *uint) {
	if src == nil {
		return
	}
	if *src == 0 {
		*dst = nil
		return
	}
	v := *src
	*dst = &v
}
