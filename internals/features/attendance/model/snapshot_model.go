// file: internals/features/attendance/model/snapshot_model.go
package model

import "time"

// Snapshot: seluruh state in-memory, input immutable untuk semua fungsi core.
type Snapshot struct {
	Subjects  []Subject       `json:"subjects"`
	Slots     []TimetableSlot `json:"slots"`
	Logs      []AttendanceLog `json:"attendanceLogs"`
	Overrides []SlotOverride  `json:"slotOverrides"`
	Holidays  []Holiday       `json:"holidays"`
	Settings  Settings        `json:"settings"`
}

func (s Snapshot) FindSubject(id string) (Subject, bool) {
	for _, sub := range s.Subjects {
		if sub.ID == id {
			return sub, true
		}
	}
	return Subject{}, false
}

func (s Snapshot) FindSlot(id string) (TimetableSlot, bool) {
	for _, sl := range s.Slots {
		if sl.ID == id {
			return sl, true
		}
	}
	return TimetableSlot{}, false
}

// LogIndex: key → log (last one wins if the input somehow carries duplicates).
func (s Snapshot) LogIndex() map[LogKey]AttendanceLog {
	idx := make(map[LogKey]AttendanceLog, len(s.Logs))
	for _, l := range s.Logs {
		idx[l.Key()] = l
	}
	return idx
}

// ExportBundle: format file export/import.
type ExportBundle struct {
	Subjects       []Subject       `json:"subjects"`
	Slots          []TimetableSlot `json:"slots"`
	AttendanceLogs []AttendanceLog `json:"attendanceLogs"`
	SlotOverrides  []SlotOverride  `json:"slotOverrides"`
	Settings       Settings        `json:"settings"`
	ExportedAt     time.Time       `json:"exportedAt"`
	Holidays       []Holiday       `json:"holidays,omitempty"`
}

func (s Snapshot) Export(at time.Time) ExportBundle {
	return ExportBundle{
		Subjects:       s.Subjects,
		Slots:          s.Slots,
		AttendanceLogs: s.Logs,
		SlotOverrides:  s.Overrides,
		Settings:       s.Settings,
		ExportedAt:     at,
		Holidays:       s.Holidays,
	}
}

func (b ExportBundle) Snapshot() Snapshot {
	return Snapshot{
		Subjects:  b.Subjects,
		Slots:     b.Slots,
		Logs:      b.AttendanceLogs,
		Overrides: b.SlotOverrides,
		Holidays:  b.Holidays,
		Settings:  b.Settings,
	}
}
