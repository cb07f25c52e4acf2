package access

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"care_scheduler_backend/pkg/utils"
)

// Filter holds caller-supplied refinements. Zero values mean "not supplied".
type Filter struct {
	StartDate  string
	EndDate    string
	EmployeeID *uuid.UUID
	TemplateID *uuid.UUID
}

// FilterError reports a malformed query parameter.
type FilterError struct {
	Param   string
	Message string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Message)
}

// ParseFilter reads start_date, end_date, employee_id and template_id from query parameters.
func ParseFilter(params url.Values) (Filter, error) {
	var f Filter
	if v := params.Get("start_date"); v != "" {
		d, err := utils.ParseDate(v)
		if err != nil {
			return Filter{}, &FilterError{Param: "start_date", Message: err.Error()}
		}
		f.StartDate = d
	}
	if v := params.Get("end_date"); v != "" {
		d, err := utils.ParseDate(v)
		if err != nil {
			return Filter{}, &FilterError{Param: "end_date", Message: err.Error()}
		}
		f.EndDate = d
	}
	if v := params.Get("employee_id"); v != "" {
		id, err := utils.ParseUUID(v)
		if err != nil {
			return Filter{}, &FilterError{Param: "employee_id", Message: err.Error()}
		}
		f.EmployeeID = &id
	}
	if v := params.Get("template_id"); v != "" {
		id, err := utils.ParseUUID(v)
		if err != nil {
			return Filter{}, &FilterError{Param: "template_id", Message: err.Error()}
		}
		f.TemplateID = &id
	}
	return f, nil
}

// IsEmpty reports whether no refinement was supplied.
func (f Filter) IsEmpty() bool {
	return f.StartDate == "" && f.EndDate == "" && f.EmployeeID == nil && f.TemplateID == nil
}

// Criteria translates a filter into the conditions that apply to kind.
// Parameters that do not apply to kind are ignored.
func Criteria(kind Kind, f Filter) []Condition {
	var conds []Condition
	switch kind {
	case KindShift:
		if f.StartDate != "" {
			conds = append(conds, Gte(FieldShiftDate, f.StartDate))
		}
		if f.EndDate != "" {
			conds = append(conds, Lte(FieldShiftDate, f.EndDate))
		}
		if f.EmployeeID != nil {
			conds = append(conds, Eq(FieldEmployee, *f.EmployeeID))
		}
	case KindAbsence:
		// Interval overlap with [start_date, end_date].
		if f.StartDate != "" {
			conds = append(conds, Gte(FieldEndDate, f.StartDate))
		}
		if f.EndDate != "" {
			conds = append(conds, Lte(FieldStartDate, f.EndDate))
		}
		if f.EmployeeID != nil {
			conds = append(conds, Eq(FieldEmployee, *f.EmployeeID))
		}
	case KindTemplateShift:
		if f.TemplateID != nil {
			conds = append(conds, Eq(FieldTemplate, *f.TemplateID))
		}
	}
	return conds
}

// Query is a visibility scope narrowed by criteria.
type Query struct {
	Scope    Scope
	Criteria []Condition
}

// NewQuery composes the actor's visibility with the caller's filter.
func NewQuery(actor Actor, kind Kind, f Filter) Query {
	return Query{Scope: Visibility(actor, kind), Criteria: Criteria(kind, f)}
}

// Unrestricted matches every row. Used for internal lookups that are not on behalf of an actor.
func Unrestricted() Query {
	return Query{Scope: All()}
}

func (q Query) Matches(row Row) bool {
	if !q.Scope.Matches(row) {
		return false
	}
	for _, c := range q.Criteria {
		if !c.Matches(row) {
			return false
		}
	}
	return true
}

// ApplyFilters narrows set by the filter criteria for kind, preserving order.
// The result is always a subset of set.
func ApplyFilters[T any](set []T, kind Kind, f Filter, rowOf func(T) Row) []T {
	return Select(set, Query{Scope: All(), Criteria: Criteria(kind, f)}, rowOf)
}

// VisibleSet returns the members of all the actor may read that pass the filter, preserving order.
func VisibleSet[T any](all []T, actor Actor, kind Kind, f Filter, rowOf func(T) Row) []T {
	return Select(all, NewQuery(actor, kind, f), rowOf)
}

// Select keeps the members of set matching q, preserving order.
func Select[T any](set []T, q Query, rowOf func(T) Row) []T {
	out := make([]T, 0, len(set))
	for _, item := range set {
		if q.Matches(rowOf(item)) {
			out = append(out, item)
		}
	}
	return out
}
