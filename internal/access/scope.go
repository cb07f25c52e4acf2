package access

import (
	"fmt"

	"github.com/google/uuid"
)

// Op is a comparison operator.
type Op int

const (
	OpEq Op = iota
	OpGte
	OpLte
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "="
	case OpGte:
		return ">="
	case OpLte:
		return "<="
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Condition compares one row field to a value.
type Condition struct {
	Field Field
	Op    Op
	Value any
}

// Eq matches rows whose field equals v.
func Eq(f Field, v any) Condition { return Condition{Field: f, Op: OpEq, Value: v} }

// Gte matches rows whose field is at least v.
func Gte(f Field, v any) Condition { return Condition{Field: f, Op: OpGte, Value: v} }

// Lte matches rows whose field is at most v.
func Lte(f Field, v any) Condition { return Condition{Field: f, Op: OpLte, Value: v} }

// Matches reports whether the row satisfies the condition. A missing field never matches.
func (c Condition) Matches(row Row) bool {
	got, ok := row[c.Field]
	if !ok {
		return false
	}
	switch c.Op {
	case OpEq:
		return got == c.Value
	case OpGte, OpLte:
		g, ok1 := got.(string)
		v, ok2 := c.Value.(string)
		if !ok1 || !ok2 {
			return false
		}
		if c.Op == OpGte {
			return g >= v
		}
		return g <= v
	}
	return false
}

// Scope is a visibility predicate: everything, nothing, or the union of its conditions.
type Scope struct {
	all   bool
	anyOf []Condition
}

// All is the scope containing every row.
func All() Scope { return Scope{all: true} }

// None is the empty scope.
func None() Scope { return Scope{} }

// AnyOf returns the union of conds. With no conditions it is None.
func AnyOf(conds ...Condition) Scope {
	return Scope{anyOf: append([]Condition(nil), conds...)}
}

// IsAll reports whether the scope is unrestricted.
func (s Scope) IsAll() bool { return s.all }

// IsNone reports whether the scope matches no row.
func (s Scope) IsNone() bool { return !s.all && len(s.anyOf) == 0 }

// Conditions returns the union members. Empty for All and None.
func (s Scope) Conditions() []Condition {
	return append([]Condition(nil), s.anyOf...)
}

// Matches reports whether the row lies in the scope.
func (s Scope) Matches(row Row) bool {
	if s.all {
		return true
	}
	for _, c := range s.anyOf {
		if c.Matches(row) {
			return true
		}
	}
	return false
}

// Visibility returns the base set of rows of kind the actor may read.
func Visibility(actor Actor, kind Kind) Scope {
	if actor.IsAdmin() {
		return All()
	}

	switch kind {
	case KindFederalState, KindClient, KindAbsence:
		return All()

	case KindRegion:
		if actor.RegionID == nil {
			return None()
		}
		return AnyOf(Eq(FieldID, *actor.RegionID))

	case KindProfile:
		conds := []Condition{Eq(FieldID, actor.ID)}
		if actor.RegionID != nil {
			conds = append(conds, Eq(FieldRegion, *actor.RegionID))
		}
		return AnyOf(conds...)

	case KindShift:
		conds := []Condition{Eq(FieldEmployee, actor.ID)}
		if actor.RegionID != nil {
			conds = append(conds, Eq(FieldRegion, *actor.RegionID))
		}
		conds = append(conds,
			Eq(FieldOpenShift, true),
			Eq(FieldSeekingReplacement, true),
		)
		return AnyOf(conds...)

	case KindWeeklyTemplate:
		return AnyOf(Eq(FieldEmployee, actor.ID))

	case KindTemplateShift:
		return AnyOf(Eq(FieldTemplateOwner, actor.ID))
	}
	return None()
}

// CanRead reports whether the actor may see the row.
func CanRead(actor Actor, kind Kind, row Row) bool {
	return Visibility(actor, kind).Matches(row)
}

// OwnerFor resolves the owner of a new template or absence: employees always own what they create.
func OwnerFor(actor Actor, requested *uuid.UUID) uuid.UUID {
	if actor.IsAdmin() && requested != nil {
		return *requested
	}
	return actor.ID
}
