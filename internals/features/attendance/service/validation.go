// file: internals/features/attendance/service/validation.go
package service

import (
	"fmt"
	"strings"

	m "attendku_backend/internals/features/attendance/model"
	"attendku_backend/internals/helpers/dbtime"
)

// NormalizeSubjectID: trim + uppercase.
func NormalizeSubjectID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// DurationBetween validates start/end "HH:MM" and returns the span in minutes.
func DurationBetween(start, end string) (int, error) {
	if !dbtime.IsValidHHMM(start) || !dbtime.IsValidHHMM(end) {
		return 0, ErrInvalidTime
	}
	d := dbtime.MustMinutes(end) - dbtime.MustMinutes(start)
	if d <= 0 {
		return 0, ErrEndBeforeStart
	}
	return d, nil
}

func ValidateSlot(s m.TimetableSlot) error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	if !dbtime.IsValidHHMM(s.StartTime) {
		return ErrInvalidTime
	}
	if s.DurationMinutes <= 0 {
		return ErrEndBeforeStart
	}
	if s.StartMinutes()+s.DurationMinutes > 24*60 {
		return fmt.Errorf("%w: kelas melewati tengah malam", ErrInvalidTime)
	}
	return nil
}

// FindSlotConflict returns the first slot on the same day overlapping candidate, skipping itself.
func FindSlotConflict(candidate m.TimetableSlot, slots []m.TimetableSlot) (m.TimetableSlot, bool) {
	for _, s := range slots {
		if s.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(s) {
			return s, true
		}
	}
	return m.TimetableSlot{}, false
}

// ValidateOverride checks the type-dependent fields.
func ValidateOverride(o m.SlotOverride) error {
	if !dbtime.IsValidDate(o.Date) {
		return ErrInvalidDate
	}
	switch o.Type {
	case m.OverrideCancelled, m.OverrideModified:
		if strings.TrimSpace(o.OriginalSlotID) == "" {
			return fmt.Errorf("%w: originalSlotId wajib untuk %s", ErrInvalidInput, o.Type)
		}
		if o.DurationMinutes != nil && *o.DurationMinutes <= 0 {
			return ErrEndBeforeStart
		}
	case m.OverrideAdded:
		if o.SubjectID == "" {
			return fmt.Errorf("%w: subjectId wajib", ErrInvalidInput)
		}
		if !dbtime.IsValidHHMM(o.StartTime) {
			return ErrInvalidTime
		}
		if o.DurationMinutes == nil || *o.DurationMinutes <= 0 {
			return ErrEndBeforeStart
		}
	default:
		return fmt.Errorf("%w: type override %q", ErrInvalidInput, o.Type)
	}
	return nil
}
