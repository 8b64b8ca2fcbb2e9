// file: internals/features/attendance/model/subject_model.go
package model

import "time"

type Subject struct {
	ID          string    `json:"id"` // kode singkat, uppercase, immutable
	Name        string    `json:"name"`
	Professor   string    `json:"professor,omitempty"`
	DefaultRoom string    `json:"defaultRoom,omitempty"`
	// 0 = tanpa batas jumlah pertemuan
	LectureLimit int       `json:"lectureLimit,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
