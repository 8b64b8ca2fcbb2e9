package timetable

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	m "attendku_backend/internals/features/attendance/model"
)

//go:embed subjects.json
var subjectsJSON []byte

//go:embed slots.json
var slotsJSON []byte

type SubjectSeed struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DefaultRoom string `json:"defaultRoom"`
}

type SlotSeed struct {
	SubjectID       string `json:"subjectId"`
	DayOfWeek       int    `json:"dayOfWeek"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Room            string `json:"room"`
}

// Load: contoh jadwal semester (mata kuliah + slot mingguan).
// Durasi kosong → 60 menit, ruang kosong → defaultRoom mata kuliah.
func Load(now time.Time) ([]m.Subject, []m.TimetableSlot, error) {
	var subs []SubjectSeed
	if err := json.Unmarshal(subjectsJSON, &subs); err != nil {
		return nil, nil, fmt.Errorf("decode subjects seed: %w", err)
	}
	var slots []SlotSeed
	if err := json.Unmarshal(slotsJSON, &slots); err != nil {
		return nil, nil, fmt.Errorf("decode slots seed: %w", err)
	}

	rooms := make(map[string]string, len(subs))
	subjects := make([]m.Subject, 0, len(subs))
	for _, s := range subs {
		rooms[s.ID] = s.DefaultRoom
		subjects = append(subjects, m.Subject{ID: s.ID, Name: s.Name, DefaultRoom: s.DefaultRoom, CreatedAt: now})
	}

	out := make([]m.TimetableSlot, 0, len(slots))
	for _, s := range slots {
		if _, ok := rooms[s.SubjectID]; !ok {
			return nil, nil, fmt.Errorf("slot seed untuk mata kuliah %q tidak dikenal", s.SubjectID)
		}
		dur := s.DurationMinutes
		if dur <= 0 {
			dur = 60
		}
		room := s.Room
		if room == "" {
			room = rooms[s.SubjectID]
		}
		out = append(out, m.TimetableSlot{
			ID:              m.SlotID(s.SubjectID, s.DayOfWeek, s.StartTime),
			SubjectID:       s.SubjectID,
			DayOfWeek:       s.DayOfWeek,
			StartTime:       s.StartTime,
			DurationMinutes: dur,
			Room:            room,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return subjects, out, nil
}
