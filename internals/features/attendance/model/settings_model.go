// file: internals/features/attendance/model/settings_model.go
package model

import (
	"encoding/json"
	"strings"

	"attendku_backend/internals/helpers/dbtime"
)

// UnmarkedPolicy: cara menghitung sesi lampau yang belum ditandai.
type UnmarkedPolicy string

const (
	UnmarkedAsAbsent  UnmarkedPolicy = "absent" // default
	UnmarkedAsPresent UnmarkedPolicy = "present"
	UnmarkedIgnored   UnmarkedPolicy = "ignore"
)

func ParseUnmarkedPolicy(s string) (UnmarkedPolicy, bool) {
	switch UnmarkedPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", UnmarkedAsAbsent:
		return UnmarkedAsAbsent, true
	case UnmarkedAsPresent:
		return UnmarkedAsPresent, true
	case UnmarkedIgnored:
		return UnmarkedIgnored, true
	}
	return UnmarkedAsAbsent, false
}

const DefaultSemesterDays = 150

type Settings struct {
	SemesterStartDate      string         `json:"semesterStartDate"`
	SemesterWeeks          int            `json:"semesterWeeks,omitempty"`
	SemesterEndDate        string         `json:"semesterEndDate,omitempty"`
	MinAttendanceThreshold float64        `json:"minAttendanceThreshold"`
	UnmarkedPolicy         UnmarkedPolicy `json:"unmarkedPolicy,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		SemesterStartDate:      "2026-01-02",
		SemesterEndDate:        "2026-05-30",
		MinAttendanceThreshold: 0.8,
		UnmarkedPolicy:         UnmarkedAsAbsent,
	}
}

// SemesterEnd: explicit end date, else start + weeks, else start + 150 days.
func (s Settings) SemesterEnd() string {
	if dbtime.IsValidDate(s.SemesterEndDate) {
		return s.SemesterEndDate
	}
	if s.SemesterWeeks > 0 {
		return dbtime.CalculateSemesterEndDate(s.SemesterStartDate, s.SemesterWeeks)
	}
	return dbtime.AddDays(s.SemesterStartDate, DefaultSemesterDays)
}

// Threshold clamps into [0,1].
func (s Settings) Threshold() float64 {
	switch {
	case s.MinAttendanceThreshold < 0:
		return 0
	case s.MinAttendanceThreshold > 1:
		return 1
	}
	return s.MinAttendanceThreshold
}

func (s Settings) Policy() UnmarkedPolicy {
	p, _ := ParseUnmarkedPolicy(string(s.UnmarkedPolicy))
	return p
}

// UnmarshalJSON juga menerima field lama "minAttendance" (dari export versi awal).
func (s *Settings) UnmarshalJSON(b []byte) error {
	type plain Settings
	aux := struct {
		*plain
		MinAttendance *float64 `json:"minAttendance,omitempty"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if s.MinAttendanceThreshold == 0 && aux.MinAttendance != nil {
		s.MinAttendanceThreshold = *aux.MinAttendance
	}
	return nil
}
