package access

import (
	"github.com/google/uuid"

	"care_scheduler_backend/internal/models"
)

// Field is a row attribute that policy and filters can test.
type Field string

const (
	FieldID                 Field = "id"
	FieldEmployee           Field = "employee"
	FieldRegion             Field = "region"
	FieldOpenShift          Field = "open_shift"
	FieldSeekingReplacement Field = "seeking_replacement"
	FieldTemplate           Field = "template"
	FieldTemplateOwner      Field = "template_owner"
	FieldShiftDate          Field = "shift_date"
	FieldStartDate          Field = "start_date"
	FieldEndDate            Field = "end_date"
)

// Row holds the attributes of one record. Values are uuid.UUID for
// references, bool for flags and YYYY-MM-DD strings for dates. A nil
// reference is represented by an absent key.
type Row map[Field]any

func (r Row) setRef(f Field, id *uuid.UUID) {
	if id != nil {
		r[f] = *id
	}
}

// FederalStateRow projects a federal state for policy checks.
func FederalStateRow(fs models.FederalState) Row {
	return Row{FieldID: fs.ID}
}

// RegionRow projects a region for policy checks.
func RegionRow(region models.Region) Row {
	return Row{FieldID: region.ID}
}

// ProfileRow projects a user profile with its region.
func ProfileRow(u models.User) Row {
	row := Row{FieldID: u.ID}
	row.setRef(FieldRegion, u.RegionID)
	return row
}

// ClientRow projects a client for policy checks.
func ClientRow(c models.Client) Row {
	return Row{FieldID: c.ID}
}

// ShiftRow projects a shift with its owner, region, flags and date.
func ShiftRow(s models.Shift) Row {
	row := Row{
		FieldID:                 s.ID,
		FieldOpenShift:          s.OpenShift,
		FieldSeekingReplacement: s.SeekingReplacement,
		FieldShiftDate:          s.ShiftDate,
	}
	row.setRef(FieldEmployee, s.EmployeeID)
	row.setRef(FieldRegion, s.RegionID)
	return row
}

// WeeklyTemplateRow projects a weekly template with its owner.
func WeeklyTemplateRow(t models.WeeklyTemplate) Row {
	return Row{FieldID: t.ID, FieldEmployee: t.EmployeeID}
}

// TemplateShiftRow projects a template shift with its parent template and that template's owner.
func TemplateShiftRow(ts models.TemplateShift) Row {
	return Row{
		FieldID:            ts.ID,
		FieldTemplate:      ts.TemplateID,
		FieldTemplateOwner: ts.TemplateEmployeeID,
	}
}

// AbsenceRow projects an absence with its owner and date range.
func AbsenceRow(a models.Absence) Row {
	return Row{
		FieldID:        a.ID,
		FieldEmployee:  a.EmployeeID,
		FieldStartDate: a.StartDate,
		FieldEndDate:   a.EndDate,
	}
}

// OwnerRow describes a record that does not exist yet but will be owned by employeeID.
func OwnerRow(employeeID uuid.UUID) Row {
	return Row{FieldEmployee: employeeID}
}

// TemplateOwnerRow describes a template shift about to be added to a template owned by employeeID.
func TemplateOwnerRow(templateID, employeeID uuid.UUID) Row {
	return Row{FieldTemplate: templateID, FieldTemplateOwner: employeeID}
}
