package services

import (
	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/metrics"
	"care_scheduler_backend/pkg/utils"
)

// authorize asks the policy for a write decision and records denials.
func authorize(actor access.Actor, kind access.Kind, action access.Action, target access.Row) error {
	return enforce(actor, kind, action, access.CanWrite(actor, kind, action, target))
}

func enforce(actor access.Actor, kind access.Kind, action access.Action, d access.Decision) error {
	if d.Allowed {
		return nil
	}
	metrics.ObserveAccessDenied(string(kind), string(action))
	utils.LogWarn("Access denied", map[string]interface{}{
		"actor_id": actor.ID.String(),
		"kind":     string(kind),
		"action":   string(action),
		"reason":   d.Reason,
	})
	return d.Err()
}

// visible loads one record through get and hides it unless the actor may read it.
func visible[T any](actor access.Actor, kind access.Kind, id uuid.UUID, get func(uuid.UUID) (*T, error), rowOf func(T) access.Row) (*T, error) {
	item, err := get(id)
	if err != nil {
		return nil, mapRepoError(err, "id")
	}
	if !access.CanRead(actor, kind, rowOf(*item)) {
		return nil, ErrNotFound
	}
	return item, nil
}
