package access

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrPermissionDenied is returned when an authenticated actor may not perform an action.
var ErrPermissionDenied = errors.New("permission denied")

// Decision is the outcome of a write check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(format string, args ...any) Decision {
	return Decision{Reason: fmt.Sprintf(format, args...)}
}

// Err returns nil for an allowed decision, otherwise an error wrapping ErrPermissionDenied.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrPermissionDenied, d.Reason)
}

// CanWrite decides whether the actor may perform action on target. target
// describes the existing record for update and delete, and the record about
// to be created (owner, parent template) for create. It may be nil when the
// kind needs no target.
func CanWrite(actor Actor, kind Kind, action Action, target Row) Decision {
	if actor.IsAdmin() {
		return allow()
	}

	switch action {
	case ActionList:
		return allow()
	case ActionRead:
		if CanRead(actor, kind, target) {
			return allow()
		}
		return deny("%s is not visible to this user", kind)
	}

	switch kind {
	case KindFederalState, KindRegion, KindClient:
		return deny("only admins can %s %ss", action, kind)

	case KindProfile:
		if action == ActionUpdate && refEquals(target, FieldID, actor.ID) {
			return allow()
		}
		switch action {
		case ActionCreate:
			return deny("only admins can create users")
		case ActionDelete:
			return deny("only admins can delete users")
		}
		return deny("you can only update your own profile")

	case KindShift:
		switch action {
		case ActionCreate:
			return allow()
		case ActionUpdate:
			if refEquals(target, FieldEmployee, actor.ID) || flagSet(target, FieldOpenShift) || flagSet(target, FieldSeekingReplacement) {
				return allow()
			}
			return deny("you can only update your own shifts or claim open shifts")
		case ActionDelete:
			// Claiming open or seeking shifts is an update. Deleting stays with the owner.
			if refEquals(target, FieldEmployee, actor.ID) {
				return allow()
			}
			return deny("you can only delete your own shifts")
		}

	case KindWeeklyTemplate, KindAbsence:
		if action == ActionCreate {
			return allow()
		}
		if refEquals(target, FieldEmployee, actor.ID) {
			return allow()
		}
		return deny("you can only %s your own %ss", action, kind)

	case KindTemplateShift:
		if refEquals(target, FieldTemplateOwner, actor.ID) {
			return allow()
		}
		return deny("you can only %s shifts of your own templates", action)
	}
	return deny("unsupported %s on %s", action, kind)
}

// CanChangePrivilegedProfileFields guards role, region, active flag and sort order.
func CanChangePrivilegedProfileFields(actor Actor) Decision {
	if actor.IsAdmin() {
		return allow()
	}
	return deny("only admins can change role, region, active state or sort order")
}

// CanManageUsers guards provisioning: creating accounts and issuing temporary passwords.
func CanManageUsers(actor Actor) Decision {
	if actor.IsAdmin() {
		return allow()
	}
	return deny("only admins can manage user accounts")
}

func refEquals(row Row, f Field, id uuid.UUID) bool {
	if row == nil {
		return false
	}
	got, ok := row[f].(uuid.UUID)
	return ok && got == id
}

func flagSet(row Row, f Field) bool {
	if row == nil {
		return false
	}
	v, ok := row[f].(bool)
	return ok && v
}
