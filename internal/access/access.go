// Package access decides what an authenticated actor may see and change.
//
// Visibility is expressed as a Scope (a union of row conditions) and caller
// refinements as Criteria (an intersection). Both can be evaluated against an
// in-memory Row or rendered to a SQL WHERE fragment, so the PostgreSQL and
// in-memory stores enforce identical rules.
package access

import (
	"github.com/google/uuid"

	"care_scheduler_backend/internal/models"
)

// Kind names a resource type.
type Kind string

const (
	KindFederalState   Kind = "federal-state"
	KindRegion         Kind = "region"
	KindProfile        Kind = "profile"
	KindClient         Kind = "client"
	KindShift          Kind = "shift"
	KindWeeklyTemplate Kind = "weekly-template"
	KindTemplateShift  Kind = "template-shift"
	KindAbsence        Kind = "absence"
)

// Kinds lists every resource kind.
var Kinds = []Kind{
	KindFederalState, KindRegion, KindProfile, KindClient,
	KindShift, KindWeeklyTemplate, KindTemplateShift, KindAbsence,
}

// Action is an operation on a resource.
type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actions lists every action.
var Actions = []Action{ActionList, ActionRead, ActionCreate, ActionUpdate, ActionDelete}

// Actor is the authenticated caller.
type Actor struct {
	ID       uuid.UUID
	Role     models.Role
	RegionID *uuid.UUID
	IsActive bool
}

// ActorFromUser builds the actor context for a stored user.
func ActorFromUser(u models.User) Actor {
	a := Actor{ID: u.ID, Role: u.Role, IsActive: u.IsActive}
	if u.RegionID != nil {
		region := *u.RegionID
		a.RegionID = &region
	}
	return a
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	switch a.Role {
	case models.RoleAdmin:
		return true
	case models.RoleEmployee:
		return false
	}
	return false
}
