// file: internals/features/attendance/model/timetable_model.go
package model

import (
	"fmt"
	"strings"
	"time"

	"attendku_backend/internals/helpers/dbtime"
)

/* =========================================================
   Base slot (jadwal mingguan berulang)
========================================================= */

type TimetableSlot struct {
	ID              string    `json:"id"`
	SubjectID       string    `json:"subjectId"`
	DayOfWeek       int       `json:"dayOfWeek"` // 0=Senin .. 6=Minggu
	StartTime       string    `json:"startTime"` // "HH:MM"
	DurationMinutes int       `json:"durationMinutes"`
	Room            string    `json:"room"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SlotID: SUBJECT-dow-HHMM
func SlotID(subjectID string, dow int, startTime string) string {
	return fmt.Sprintf("%s-%d-%s", subjectID, dow, strings.ReplaceAll(startTime, ":", ""))
}

// StartMinutes / EndMinutes: menit sejak 00:00; -1 kalau StartTime rusak.
func (s TimetableSlot) StartMinutes() int { return dbtime.MustMinutes(s.StartTime) }

func (s TimetableSlot) EndMinutes() int {
	start := s.StartMinutes()
	if start < 0 {
		return -1
	}
	return start + s.DurationMinutes
}

// Overlaps: same day and [start,end) intersects.
func (s TimetableSlot) Overlaps(o TimetableSlot) bool {
	if s.DayOfWeek != o.DayOfWeek {
		return false
	}
	as, ae := s.StartMinutes(), s.EndMinutes()
	bs, be := o.StartMinutes(), o.EndMinutes()
	if as < 0 || bs < 0 {
		return false
	}
	return as < be && ae > bs
}

/* =========================================================
   Override per tanggal
========================================================= */

type OverrideType string

const (
	OverrideCancelled OverrideType = "cancelled"
	OverrideModified  OverrideType = "modified"
	OverrideAdded     OverrideType = "added"
)

func (t OverrideType) Valid() bool {
	switch t {
	case OverrideCancelled, OverrideModified, OverrideAdded:
		return true
	}
	return false
}

type SlotOverride struct {
	ID             string       `json:"id"`
	Date           string       `json:"date"` // "YYYY-MM-DD"
	Type           OverrideType `json:"type"`
	OriginalSlotID string       `json:"originalSlotId,omitempty"`

	// modified: hanya field yang terisi yang menggantikan
	// added: SubjectID, StartTime, DurationMinutes wajib
	SubjectID       string  `json:"subjectId,omitempty"`
	StartTime       string  `json:"startTime,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Room            *string `json:"room,omitempty"`
	Reason          string  `json:"reason,omitempty"`
}

// IsCompleteAddition: an added override can only produce a session with subject, start and a positive duration.
func (o SlotOverride) IsCompleteAddition() bool {
	return o.Type == OverrideAdded &&
		o.SubjectID != "" &&
		dbtime.IsValidHHMM(o.StartTime) &&
		o.DurationMinutes != nil && *o.DurationMinutes > 0
}

/* =========================================================
   Hasil resolver
========================================================= */

type EffectiveSlot struct {
	SlotID          string       `json:"slotId"` // base slot id, atau id override "added"
	SubjectID       string       `json:"subjectId"`
	Date            string       `json:"date"`
	StartTime       string       `json:"startTime"`
	DurationMinutes int          `json:"durationMinutes"`
	Room            string       `json:"room"`
	IsOverridden    bool         `json:"isOverridden"`
	OverrideType    OverrideType `json:"overrideType,omitempty"`
	OverrideID      string       `json:"overrideId,omitempty"`
}

func (e EffectiveSlot) Key() LogKey { return LogKey{SlotID: e.SlotID, Date: e.Date} }

func (e EffectiveSlot) Hours() float64 { return float64(e.DurationMinutes) / 60 }

// EndsAt: local instant the session ends; ok=false for malformed date/time.
func (e EffectiveSlot) EndsAt(loc *time.Location) (time.Time, bool) {
	tod, err := dbtime.Parse(e.StartTime)
	if err != nil {
		return time.Time{}, false
	}
	start, ok := dbtime.CombineDateAndTod(e.Date, tod, loc)
	if !ok {
		return time.Time{}, false
	}
	return start.Add(time.Duration(e.DurationMinutes) * time.Minute), true
}
