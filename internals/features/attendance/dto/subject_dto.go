// file: internals/features/attendance/dto/subject_dto.go
package dto

import (
	"strings"

	repo "attendku_backend/internals/features/attendance/repository"
)

type CreateSubjectRequest struct {
	ID           string `json:"id" validate:"required,max=16"`
	Name         string `json:"name" validate:"required,max=120"`
	Professor    string `json:"professor" validate:"omitempty,max=120"`
	DefaultRoom  string `json:"defaultRoom" validate:"omitempty,max=40"`
	LectureLimit int    `json:"lectureLimit" validate:"gte=0,lte=500"`
}

func (r CreateSubjectRequest) ToInput() repo.SubjectInput {
	return repo.SubjectInput{
		ID:           r.ID,
		Name:         r.Name,
		Professor:    r.Professor,
		DefaultRoom:  r.DefaultRoom,
		LectureLimit: r.LectureLimit,
	}
}

type PatchSubjectRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=120"`
	Professor    *string `json:"professor" validate:"omitempty,max=120"`
	DefaultRoom  *string `json:"defaultRoom" validate:"omitempty,max=40"`
	LectureLimit *int    `json:"lectureLimit" validate:"omitempty,gte=0,lte=500"`
}

func (r PatchSubjectRequest) ToPatch() repo.SubjectPatch {
	return repo.SubjectPatch{
		Name:         trimPtr(r.Name),
		Professor:    trimPtr(r.Professor),
		DefaultRoom:  trimPtr(r.DefaultRoom),
		LectureLimit: r.LectureLimit,
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
