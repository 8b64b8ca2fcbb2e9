// file: internals/features/attendance/dto/slot_dto.go
package dto

import (
	m "attendku_backend/internals/features/attendance/model"
	repo "attendku_backend/internals/features/attendance/repository"
)

/* =========================
   Timetable slot
========================= */

type CreateSlotRequest struct {
	SubjectID string `json:"subjectId" validate:"required"`
	DayOfWeek *int   `json:"dayOfWeek" validate:"required,gte=0,lte=6"`
	StartTime string `json:"startTime" validate:"required,hhmm"`
	EndTime   string `json:"endTime" validate:"required,hhmm"`
	Room      string `json:"room" validate:"omitempty,max=40"`
}

func (r CreateSlotRequest) ToInput() repo.SlotInput {
	return repo.SlotInput{
		SubjectID: r.SubjectID,
		DayOfWeek: *r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Room:      r.Room,
	}
}

type PatchSlotRequest struct {
	DayOfWeek *int    `json:"dayOfWeek" validate:"omitempty,gte=0,lte=6"`
	StartTime *string `json:"startTime" validate:"omitempty,hhmm"`
	EndTime   *string `json:"endTime" validate:"omitempty,hhmm"`
	Room      *string `json:"room" validate:"omitempty,max=40"`
}

func (r PatchSlotRequest) ToPatch() repo.SlotPatch {
	return repo.SlotPatch{
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Room:      trimPtr(r.Room),
	}
}

/* =========================
   Overrides
========================= */

type CreateOverrideRequest struct {
	Date            string  `json:"date" validate:"required,ymd"`
	Type            string  `json:"type" validate:"required,oneof=cancelled modified added"`
	OriginalSlotID  string  `json:"originalSlotId" validate:"required_unless=Type added"`
	SubjectID       string  `json:"subjectId" validate:"required_if=Type added"`
	StartTime       string  `json:"startTime" validate:"required_if=Type added,omitempty,hhmm"`
	DurationMinutes *int    `json:"durationMinutes" validate:"required_if=Type added,omitempty,gt=0,lte=1440"`
	Room            *string `json:"room" validate:"omitempty,max=40"`
	Reason          string  `json:"reason" validate:"omitempty,max=200"`
}

func (r CreateOverrideRequest) ToModel() m.SlotOverride {
	return m.SlotOverride{
		Date:            r.Date,
		Type:            m.OverrideType(r.Type),
		OriginalSlotID:  r.OriginalSlotID,
		SubjectID:       r.SubjectID,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Room:            trimPtr(r.Room),
		Reason:          r.Reason,
	}
}

// CancelSessionRequest: shortcut untuk override "cancelled".
type CancelSessionRequest struct {
	SlotID string `json:"slotId" validate:"required"`
	Date   string `json:"date" validate:"required,ymd"`
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

func (r CancelSessionRequest) ToModel() m.SlotOverride {
	return m.SlotOverride{Date: r.Date, Type: m.OverrideCancelled, OriginalSlotID: r.SlotID, Reason: r.Reason}
}

type RescheduleRequest struct {
	SlotID          string  `json:"slotId" validate:"required"`
	FromDate        string  `json:"fromDate" validate:"required,ymd"`
	ToDate          string  `json:"toDate" validate:"required,ymd"`
	StartTime       string  `json:"startTime" validate:"required,hhmm"`
	DurationMinutes int     `json:"durationMinutes" validate:"gte=0,lte=1440"`
	Room            *string `json:"room" validate:"omitempty,max=40"`
}

func (r RescheduleRequest) ToInput() repo.RescheduleInput {
	return repo.RescheduleInput{
		SlotID:          r.SlotID,
		FromDate:        r.FromDate,
		ToDate:          r.ToDate,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Room:            r.Room,
	}
}

/* =========================
   Holidays
========================= */

type CreateHolidayRequest struct {
	Date string `json:"date" validate:"required,ymd"`
	Name string `json:"name" validate:"omitempty,max=120"`
}
