// file: internals/features/attendance/model/attendance_log_model.go
package model

import "time"

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

type AttendanceSource string

const (
	SourceManual AttendanceSource = "manual"
	SourceAuto   AttendanceSource = "auto"
)

// LogKey: identitas log, maksimal satu log per (slot, tanggal).
type LogKey struct {
	SlotID string
	Date   string
}

func (k LogKey) String() string { return k.SlotID + "-" + k.Date }

type AttendanceLog struct {
	ID        string           `json:"id"`
	Date      string           `json:"date"`
	SubjectID string           `json:"subjectId"`
	SlotID    string           `json:"slotId"`
	Status    AttendanceStatus `json:"status"`
	Source    AttendanceSource `json:"source,omitempty"`
	MarkedAt  time.Time        `json:"markedAt"`
}

func (l AttendanceLog) Key() LogKey { return LogKey{SlotID: l.SlotID, Date: l.Date} }

// NewAttendanceLog fills the derived id from the key.
func NewAttendanceLog(key LogKey, subjectID string, status AttendanceStatus, source AttendanceSource, at time.Time) AttendanceLog {
	return AttendanceLog{
		ID:        key.String(),
		Date:      key.Date,
		SubjectID: subjectID,
		SlotID:    key.SlotID,
		Status:    status,
		Source:    source,
		MarkedAt:  at,
	}
}
