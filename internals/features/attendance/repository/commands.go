// file: internals/features/attendance/repository/commands.go
package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	m "attendku_backend/internals/features/attendance/model"
	svc "attendku_backend/internals/features/attendance/service"
	"attendku_backend/internals/constants"
	"attendku_backend/internals/helpers/dbtime"
)

/* =========================================================
   Subjects
========================================================= */

type SubjectInput struct {
	ID           string
	Name         string
	Professor    string
	DefaultRoom  string
	LectureLimit int
}

type SubjectPatch struct {
	Name         *string
	Professor    *string
	DefaultRoom  *string
	LectureLimit *int
}

func (r *StateRepository) AddSubject(ctx context.Context, in SubjectInput) (m.Subject, error) {
	sub := m.Subject{
		ID:           svc.NormalizeSubjectID(in.ID),
		Name:         strings.TrimSpace(in.Name),
		Professor:    strings.TrimSpace(in.Professor),
		DefaultRoom:  strings.TrimSpace(in.DefaultRoom),
		LectureLimit: in.LectureLimit,
		CreatedAt:    r.clock(),
	}
	if sub.ID == "" || sub.Name == "" {
		return m.Subject{}, fmt.Errorf("%w: kode dan nama mata kuliah wajib diisi", svc.ErrInvalidInput)
	}
	if sub.LectureLimit < 0 {
		return m.Subject{}, fmt.Errorf("%w: lectureLimit tidak boleh negatif", svc.ErrInvalidInput)
	}
	err := r.mutate(ctx, []string{constants.KeySubjects}, func(s *m.Snapshot) error {
		if _, exists := s.FindSubject(sub.ID); exists {
			return svc.ErrDuplicateSubject
		}
		s.Subjects = append(s.Subjects, sub)
		return nil
	})
	return sub, err
}

func (r *StateRepository) UpdateSubject(ctx context.Context, id string, p SubjectPatch) (m.Subject, error) {
	id = svc.NormalizeSubjectID(id)
	var out m.Subject
	err := r.mutate(ctx, []string{constants.KeySubjects}, func(s *m.Snapshot) error {
		for i := range s.Subjects {
			if s.Subjects[i].ID != id {
				continue
			}
			sub := s.Subjects[i]
			if p.Name != nil {
				name := strings.TrimSpace(*p.Name)
				if name == "" {
					return fmt.Errorf("%w: nama tidak boleh kosong", svc.ErrInvalidInput)
				}
				sub.Name = name
			}
			if p.Professor != nil {
				sub.Professor = strings.TrimSpace(*p.Professor)
			}
			if p.DefaultRoom != nil {
				sub.DefaultRoom = strings.TrimSpace(*p.DefaultRoom)
			}
			if p.LectureLimit != nil {
				if *p.LectureLimit < 0 {
					return fmt.Errorf("%w: lectureLimit tidak boleh negatif", svc.ErrInvalidInput)
				}
				sub.LectureLimit = *p.LectureLimit
			}
			s.Subjects[i] = sub
			out = sub
			return nil
		}
		return svc.ErrUnknownSubject
	})
	return out, err
}

// DeleteSubject removes the subject with its slots, overrides and logs.
func (r *StateRepository) DeleteSubject(ctx context.Context, id string) error {
	id = svc.NormalizeSubjectID(id)
	keys := []string{constants.KeySubjects, constants.KeySlots, constants.KeySlotOverrides, constants.KeyAttendance}
	return r.mutate(ctx, keys, func(s *m.Snapshot) error {
		if _, ok := s.FindSubject(id); !ok {
			return svc.ErrUnknownSubject
		}
		s.Subjects = filter(s.Subjects, func(x m.Subject) bool { return x.ID != id })

		gone := map[string]struct{}{}
		s.Slots = filter(s.Slots, func(x m.TimetableSlot) bool {
			if x.SubjectID == id {
				gone[x.ID] = struct{}{}
				return false
			}
			return true
		})
		s.Overrides = filter(s.Overrides, func(o m.SlotOverride) bool {
			if o.SubjectID == id {
				return false
			}
			_, dead := gone[o.OriginalSlotID]
			return !dead
		})
		s.Logs = filter(s.Logs, func(l m.AttendanceLog) bool { return l.SubjectID != id })
		return nil
	})
}

/* =========================================================
   Slots
========================================================= */

type SlotInput struct {
	SubjectID string
	DayOfWeek int
	StartTime string
	EndTime   string
	Room      string
}

func (r *StateRepository) AddSlot(ctx context.Context, in SlotInput) (m.TimetableSlot, error) {
	subjectID := svc.NormalizeSubjectID(in.SubjectID)
	dur, err := svc.DurationBetween(in.StartTime, in.EndTime)
	if err != nil {
		return m.TimetableSlot{}, err
	}
	now := r.clock()
	sl := m.TimetableSlot{
		ID:              m.SlotID(subjectID, in.DayOfWeek, in.StartTime),
		SubjectID:       subjectID,
		DayOfWeek:       in.DayOfWeek,
		StartTime:       in.StartTime,
		DurationMinutes: dur,
		Room:            strings.TrimSpace(in.Room),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := svc.ValidateSlot(sl); err != nil {
		return m.TimetableSlot{}, err
	}

	err = r.mutate(ctx, []string{constants.KeySlots}, func(s *m.Snapshot) error {
		sub, ok := s.FindSubject(subjectID)
		if !ok {
			return svc.ErrUnknownSubject
		}
		if sl.Room == "" {
			sl.Room = sub.DefaultRoom
		}
		if _, dup := s.FindSlot(sl.ID); dup {
			return fmt.Errorf("%w: slot %s sudah ada", svc.ErrConflict, sl.ID)
		}
		if other, clash := svc.FindSlotConflict(sl, s.Slots); clash {
			return fmt.Errorf("%w (%s %s)", svc.ErrSlotConflict, other.SubjectID, other.StartTime)
		}
		s.Slots = append(s.Slots, sl)
		return nil
	})
	return sl, err
}

type SlotPatch struct {
	DayOfWeek *int
	StartTime *string
	EndTime   *string
	Room      *string
}

// UpdateSlot keeps the slot id stable so existing logs stay attached.
func (r *StateRepository) UpdateSlot(ctx context.Context, id string, p SlotPatch) (m.TimetableSlot, error) {
	var out m.TimetableSlot
	err := r.mutate(ctx, []string{constants.KeySlots}, func(s *m.Snapshot) error {
		for i := range s.Slots {
			if s.Slots[i].ID != id {
				continue
			}
			sl := s.Slots[i]
			if p.DayOfWeek != nil {
				sl.DayOfWeek = *p.DayOfWeek
			}
			if p.StartTime != nil || p.EndTime != nil {
				start := sl.StartTime
				end := dbtime.FromMinutes(sl.EndMinutes()).String()
				if p.StartTime != nil {
					start = *p.StartTime
				}
				if p.EndTime != nil {
					end = *p.EndTime
				}
				dur, err := svc.DurationBetween(start, end)
				if err != nil {
					return err
				}
				sl.StartTime, sl.DurationMinutes = start, dur
			}
			if p.Room != nil {
				sl.Room = strings.TrimSpace(*p.Room)
			}
			if err := svc.ValidateSlot(sl); err != nil {
				return err
			}
			if other, clash := svc.FindSlotConflict(sl, s.Slots); clash {
				return fmt.Errorf("%w (%s %s)", svc.ErrSlotConflict, other.SubjectID, other.StartTime)
			}
			sl.UpdatedAt = r.clock()
			s.Slots[i] = sl
			out = sl
			return nil
		}
		return svc.ErrNotFound
	})
	return out, err
}

func (r *StateRepository) DeleteSlot(ctx context.Context, id string) error {
	return r.mutate(ctx, []string{constants.KeySlots, constants.KeySlotOverrides}, func(s *m.Snapshot) error {
		if _, ok := s.FindSlot(id); !ok {
			return svc.ErrNotFound
		}
		s.Slots = filter(s.Slots, func(x m.TimetableSlot) bool { return x.ID != id })
		s.Overrides = filter(s.Overrides, func(o m.SlotOverride) bool {
			return o.Type == m.OverrideAdded || o.OriginalSlotID != id
		})
		return nil
	})
}

/* =========================================================
   Overrides
========================================================= */

func (r *StateRepository) AddOverride(ctx context.Context, o m.SlotOverride) (m.SlotOverride, error) {
	o.SubjectID = svc.NormalizeSubjectID(o.SubjectID)
	if o.ID == "" {
		o.ID = r.newID()
	}
	if err := svc.ValidateOverride(o); err != nil {
		return m.SlotOverride{}, err
	}
	err := r.mutate(ctx, []string{constants.KeySlotOverrides}, func(s *m.Snapshot) error {
		if o.Type == m.OverrideAdded {
			if _, ok := s.FindSubject(o.SubjectID); !ok {
				return svc.ErrUnknownSubject
			}
		}
		for _, ex := range s.Overrides {
			if ex.ID == o.ID {
				return fmt.Errorf("%w: override %s sudah ada", svc.ErrConflict, o.ID)
			}
		}
		s.Overrides = append(s.Overrides, o)
		return nil
	})
	return o, err
}

type RescheduleInput struct {
	SlotID    string // base slot atau id override "added"
	FromDate  string
	ToDate    string
	StartTime string
	// 0 = pakai durasi asal
	DurationMinutes int
	Room            *string
}

// Reschedule cancels a session on FromDate and adds it on ToDate, as one write.
func (r *StateRepository) Reschedule(ctx context.Context, in RescheduleInput) (cancelled, moved m.SlotOverride, err error) {
	if !dbtime.IsValidDate(in.FromDate) || !dbtime.IsValidDate(in.ToDate) {
		return cancelled, moved, svc.ErrInvalidDate
	}
	if !dbtime.IsValidHHMM(in.StartTime) {
		return cancelled, moved, svc.ErrInvalidTime
	}
	err = r.mutate(ctx, []string{constants.KeySlotOverrides}, func(s *m.Snapshot) error {
		var src *m.EffectiveSlot
		for _, es := range svc.GetEffectiveSlots(in.FromDate, s.Slots, s.Overrides) {
			if es.SlotID == in.SlotID {
				es := es
				src = &es
				break
			}
		}
		if src == nil {
			return fmt.Errorf("%w: sesi %s tidak ada di %s", svc.ErrNotFound, in.SlotID, in.FromDate)
		}
		dur := src.DurationMinutes
		if in.DurationMinutes > 0 {
			dur = in.DurationMinutes
		}
		room := src.Room
		if in.Room != nil {
			room = strings.TrimSpace(*in.Room)
		}

		cancelled = m.SlotOverride{ID: r.newID(), Date: in.FromDate, Type: m.OverrideCancelled, OriginalSlotID: in.SlotID, Reason: "reschedule"}
		moved = m.SlotOverride{
			ID:              r.newID(),
			Date:            in.ToDate,
			Type:            m.OverrideAdded,
			OriginalSlotID:  in.SlotID,
			SubjectID:       src.SubjectID,
			StartTime:       in.StartTime,
			DurationMinutes: &dur,
			Room:            &room,
			Reason:          "reschedule",
		}
		if err := svc.ValidateOverride(moved); err != nil {
			return err
		}
		s.Overrides = append(s.Overrides, cancelled, moved)
		return nil
	})
	return cancelled, moved, err
}

func (r *StateRepository) DeleteOverride(ctx context.Context, id string) error {
	return r.mutate(ctx, []string{constants.KeySlotOverrides}, func(s *m.Snapshot) error {
		before := len(s.Overrides)
		s.Overrides = filter(s.Overrides, func(o m.SlotOverride) bool { return o.ID != id })
		if len(s.Overrides) == before {
			return svc.ErrNotFound
		}
		return nil
	})
}

/* =========================================================
   Holidays
========================================================= */

// AddHoliday upserts by date.
func (r *StateRepository) AddHoliday(ctx context.Context, date, name string) (m.Holiday, error) {
	if !dbtime.IsValidDate(date) {
		return m.Holiday{}, svc.ErrInvalidDate
	}
	h := m.Holiday{Date: date, Name: strings.TrimSpace(name)}
	err := r.mutate(ctx, []string{constants.KeyHolidays}, func(s *m.Snapshot) error {
		s.Holidays = filter(s.Holidays, func(x m.Holiday) bool { return x.Date != date })
		s.Holidays = append(s.Holidays, h)
		sort.Slice(s.Holidays, func(i, j int) bool { return s.Holidays[i].Date < s.Holidays[j].Date })
		return nil
	})
	return h, err
}

func (r *StateRepository) RemoveHoliday(ctx context.Context, date string) error {
	return r.mutate(ctx, []string{constants.KeyHolidays}, func(s *m.Snapshot) error {
		before := len(s.Holidays)
		s.Holidays = filter(s.Holidays, func(x m.Holiday) bool { return x.Date != date })
		if len(s.Holidays) == before {
			return svc.ErrNotFound
		}
		return nil
	})
}

/* =========================================================
   Attendance
========================================================= */

type MarkInput struct {
	SlotID    string
	SubjectID string
	Date      string
	Status    m.AttendanceStatus
}

// MarkAttendance replaces any log for (slot, date).
func (r *StateRepository) MarkAttendance(ctx context.Context, in MarkInput) (m.AttendanceLog, error) {
	if !dbtime.IsValidDate(in.Date) {
		return m.AttendanceLog{}, svc.ErrInvalidDate
	}
	if !in.Status.Valid() {
		return m.AttendanceLog{}, fmt.Errorf("%w: status %q", svc.ErrInvalidInput, in.Status)
	}
	if strings.TrimSpace(in.SlotID) == "" {
		return m.AttendanceLog{}, fmt.Errorf("%w: slotId wajib", svc.ErrInvalidInput)
	}
	key := m.LogKey{SlotID: in.SlotID, Date: in.Date}
	subjectID := svc.NormalizeSubjectID(in.SubjectID)

	var out m.AttendanceLog
	err := r.mutate(ctx, []string{constants.KeyAttendance}, func(s *m.Snapshot) error {
		if subjectID == "" {
			subjectID = subjectOfSession(s, key)
		}
		if _, ok := s.FindSubject(subjectID); !ok {
			return svc.ErrUnknownSubject
		}
		out = m.NewAttendanceLog(key, subjectID, in.Status, m.SourceManual, r.clock())
		s.Logs = filter(s.Logs, func(l m.AttendanceLog) bool { return l.Key() != key })
		s.Logs = append(s.Logs, out)
		return nil
	})
	return out, err
}

func subjectOfSession(s *m.Snapshot, key m.LogKey) string {
	for _, es := range svc.GetEffectiveSlots(key.Date, s.Slots, s.Overrides) {
		if es.SlotID == key.SlotID {
			return es.SubjectID
		}
	}
	if sl, ok := s.FindSlot(key.SlotID); ok {
		return sl.SubjectID
	}
	return ""
}

func (r *StateRepository) UnmarkAttendance(ctx context.Context, key m.LogKey) error {
	return r.mutate(ctx, []string{constants.KeyAttendance}, func(s *m.Snapshot) error {
		before := len(s.Logs)
		s.Logs = filter(s.Logs, func(l m.AttendanceLog) bool { return l.Key() != key })
		if len(s.Logs) == before {
			return svc.ErrNotFound
		}
		return nil
	})
}

// ApplyAutoAttendance plans and writes the sweep under the same lock as user marks.
func (r *StateRepository) ApplyAutoAttendance(ctx context.Context, now time.Time, opts svc.SweepOptions) ([]m.AttendanceLog, error) {
	var created []m.AttendanceLog
	err := r.mutate(ctx, []string{constants.KeyAttendance}, func(s *m.Snapshot) error {
		created = svc.PlanAutoAttendance(now, *s, opts)
		if len(created) == 0 {
			return errNoChange
		}
		s.Logs = append(s.Logs, created...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

/* =========================================================
   Settings
========================================================= */

type SettingsPatch struct {
	SemesterStartDate      *string
	SemesterWeeks          *int
	SemesterEndDate        *string
	MinAttendanceThreshold *float64
	UnmarkedPolicy         *string
}

func (r *StateRepository) UpdateSettings(ctx context.Context, p SettingsPatch) (m.Settings, error) {
	var out m.Settings
	err := r.mutate(ctx, []string{constants.KeySettings}, func(s *m.Snapshot) error {
		set := s.Settings
		if p.SemesterStartDate != nil {
			if !dbtime.IsValidDate(*p.SemesterStartDate) {
				return svc.ErrInvalidDate
			}
			set.SemesterStartDate = *p.SemesterStartDate
		}
		if p.SemesterWeeks != nil {
			if *p.SemesterWeeks < 0 {
				return fmt.Errorf("%w: semesterWeeks", svc.ErrInvalidInput)
			}
			set.SemesterWeeks = *p.SemesterWeeks
		}
		if p.SemesterEndDate != nil {
			if *p.SemesterEndDate != "" && !dbtime.IsValidDate(*p.SemesterEndDate) {
				return svc.ErrInvalidDate
			}
			set.SemesterEndDate = *p.SemesterEndDate
		}
		if p.MinAttendanceThreshold != nil {
			v := *p.MinAttendanceThreshold
			if v <= 0 || v > 1 {
				return fmt.Errorf("%w: minAttendanceThreshold harus di (0,1]", svc.ErrInvalidInput)
			}
			set.MinAttendanceThreshold = v
		}
		if p.UnmarkedPolicy != nil {
			pol, ok := m.ParseUnmarkedPolicy(*p.UnmarkedPolicy)
			if !ok {
				return fmt.Errorf("%w: unmarkedPolicy %q", svc.ErrInvalidInput, *p.UnmarkedPolicy)
			}
			set.UnmarkedPolicy = pol
		}
		if end := set.SemesterEnd(); end != "" && end < set.SemesterStartDate {
			return svc.ErrEndBeforeStart
		}
		s.Settings = set
		out = set
		return nil
	})
	return out, err
}

/* =========================================================
   Export / import
========================================================= */

func (r *StateRepository) Export() m.ExportBundle {
	return r.Snapshot().Export(r.clock())
}

// Import replaces the whole state with the bundle in one atomic write.
func (r *StateRepository) Import(ctx context.Context, b m.ExportBundle) (m.Snapshot, error) {
	next := cloneSnapshot(b.Snapshot())
	seen := map[string]struct{}{}
	for i := range next.Subjects {
		id := svc.NormalizeSubjectID(next.Subjects[i].ID)
		if id == "" {
			return m.Snapshot{}, fmt.Errorf("%w: subject tanpa id", svc.ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return m.Snapshot{}, fmt.Errorf("%w: %s", svc.ErrDuplicateSubject, id)
		}
		seen[id] = struct{}{}
		next.Subjects[i].ID = id
	}
	// referensi ikut dinormalisasi supaya slot & log tetap terhubung ke subject
	for i := range next.Slots {
		next.Slots[i].SubjectID = svc.NormalizeSubjectID(next.Slots[i].SubjectID)
	}
	for i := range next.Overrides {
		if next.Overrides[i].SubjectID != "" {
			next.Overrides[i].SubjectID = svc.NormalizeSubjectID(next.Overrides[i].SubjectID)
		}
	}
	for i := range next.Logs {
		next.Logs[i].SubjectID = svc.NormalizeSubjectID(next.Logs[i].SubjectID)
	}
	for _, sl := range next.Slots {
		if err := svc.ValidateSlot(sl); err != nil {
			return m.Snapshot{}, fmt.Errorf("slot %s: %w", sl.ID, err)
		}
	}
	normalize(&next)

	keys := []string{
		constants.KeySubjects, constants.KeySlots, constants.KeyAttendance,
		constants.KeySlotOverrides, constants.KeyHolidays, constants.KeySettings,
	}
	err := r.mutate(ctx, keys, func(s *m.Snapshot) error {
		*s = next
		return nil
	})
	if err != nil {
		return m.Snapshot{}, err
	}
	return r.Snapshot(), nil
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
