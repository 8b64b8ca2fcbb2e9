package service

import (
	"time"

	m "attendku_backend/internals/features/attendance/model"
)

// 2026-01-05 is a Monday.
const (
	mon1 = "2026-01-05"
	wed1 = "2026-01-07"
	mon2 = "2026-01-12"
	wed2 = "2026-01-14"
	mon3 = "2026-01-19"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }
func ts() time.Time         { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

func slot(id, subject string, dow int, start string, dur int) m.TimetableSlot {
	return m.TimetableSlot{
		ID:              id,
		SubjectID:       subject,
		DayOfWeek:       dow,
		StartTime:       start,
		DurationMinutes: dur,
		Room:            "R-" + id,
		CreatedAt:       ts(),
		UpdatedAt:       ts(),
	}
}

func cancel(id, date, target string) m.SlotOverride {
	return m.SlotOverride{ID: id, Date: date, Type: m.OverrideCancelled, OriginalSlotID: target}
}

func added(id, date, subject, start string, dur int) m.SlotOverride {
	return m.SlotOverride{ID: id, Date: date, Type: m.OverrideAdded, SubjectID: subject, StartTime: start, DurationMinutes: intp(dur), Room: strp("LAB")}
}

func logFor(slotID, date, subject string, status m.AttendanceStatus) m.AttendanceLog {
	return m.NewAttendanceLog(m.LogKey{SlotID: slotID, Date: date}, subject, status, m.SourceManual, ts())
}

func baseSnapshot() m.Snapshot {
	return m.Snapshot{
		Subjects: []m.Subject{
			{ID: "ATSA", Name: "Applied Time Series Analysis", CreatedAt: ts()},
			{ID: "AI", Name: "Artificial Intelligence", CreatedAt: ts()},
		},
		Slots: []m.TimetableSlot{
			slot("ATSA-0-1000", "ATSA", 0, "10:00", 60),
			slot("ATSA-2-0900", "ATSA", 2, "09:00", 90),
			slot("AI-0-0800", "AI", 0, "08:00", 60),
		},
		Settings: m.Settings{
			SemesterStartDate:      mon1,
			SemesterWeeks:          2,
			MinAttendanceThreshold: 0.8,
		},
	}
}
