package services

import (
	"encoding/json"

	"github.com/google/uuid"
)

// OptionalID distinguishes an absent JSON field from an explicit null in partial updates.
type OptionalID struct {
	Set   bool
	Value *uuid.UUID
}

// UnmarshalJSON is only called when the key is present.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// SetTo returns an OptionalID that assigns id (nil clears).
func SetTo(id *uuid.UUID) OptionalID {
	return OptionalID{Set: true, Value: id}
}

// apply overwrites dst when the field was supplied.
func (o OptionalID) apply(dst **uuid.UUID) {
	if o.Set {
		*dst = o.Value
	}
}
