// file: internals/features/attendance/dto/attendance_dto.go
package dto

import (
	m "attendku_backend/internals/features/attendance/model"
	repo "attendku_backend/internals/features/attendance/repository"
)

type MarkAttendanceRequest struct {
	SlotID    string `json:"slotId" validate:"required"`
	SubjectID string `json:"subjectId"` // kosong → diambil dari jadwal
	Date      string `json:"date" validate:"required,ymd"`
	Status    string `json:"status" validate:"required,oneof=present absent"`
}

func (r MarkAttendanceRequest) ToInput() repo.MarkInput {
	return repo.MarkInput{
		SlotID:    r.SlotID,
		SubjectID: r.SubjectID,
		Date:      r.Date,
		Status:    m.AttendanceStatus(r.Status),
	}
}

// ListAttendanceQuery: ?subject_id&from&to&status&source
type ListAttendanceQuery struct {
	SubjectID string `query:"subject_id"`
	From      string `query:"from" validate:"omitempty,ymd"`
	To        string `query:"to" validate:"omitempty,ymd"`
	Status    string `query:"status" validate:"omitempty,oneof=present absent"`
	Source    string `query:"source" validate:"omitempty,oneof=manual auto"`
}

func (q ListAttendanceQuery) Match(l m.AttendanceLog) bool {
	switch {
	case q.SubjectID != "" && l.SubjectID != q.SubjectID:
		return false
	case q.From != "" && l.Date < q.From:
		return false
	case q.To != "" && l.Date > q.To:
		return false
	case q.Status != "" && string(l.Status) != q.Status:
		return false
	case q.Source != "" && string(l.Source) != q.Source:
		return false
	}
	return true
}

type UpdateSettingsRequest struct {
	SemesterStartDate      *string  `json:"semesterStartDate" validate:"omitempty,ymd"`
	SemesterWeeks          *int     `json:"semesterWeeks" validate:"omitempty,gte=0,lte=60"`
	SemesterEndDate        *string  `json:"semesterEndDate"`
	MinAttendanceThreshold *float64 `json:"minAttendanceThreshold" validate:"omitempty,gt=0,lte=1"`
	UnmarkedPolicy         *string  `json:"unmarkedPolicy" validate:"omitempty,unmarked_policy"`
}

func (r UpdateSettingsRequest) ToPatch() repo.SettingsPatch {
	return repo.SettingsPatch{
		SemesterStartDate:      r.SemesterStartDate,
		SemesterWeeks:          r.SemesterWeeks,
		SemesterEndDate:        r.SemesterEndDate,
		MinAttendanceThreshold: r.MinAttendanceThreshold,
		UnmarkedPolicy:         r.UnmarkedPolicy,
	}
}
