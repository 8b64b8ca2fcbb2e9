// file: internals/features/attendance/service/resolver.go
package service

import (
	"sort"

	m "attendku_backend/internals/features/attendance/model"
	"attendku_backend/internals/helpers/dbtime"
)

/* =========================================================
   Resolver: jadwal efektif untuk satu tanggal
========================================================= */

// GetEffectiveSlots merges the weekly timetable with the overrides of one date.
// Order of passes: cancel, modify (list order, later wins), add; result sorted by start time.
// Inputs are never mutated.
func GetEffectiveSlots(date string, baseSlots []m.TimetableSlot, overrides []m.SlotOverride) []m.EffectiveSlot {
	out := make([]m.EffectiveSlot, 0)
	dow := dbtime.DayOfWeekOfDate(date)
	if dow < 0 {
		return out
	}

	todays := overridesOn(date, overrides)

	removed := make(map[string]struct{})
	for _, o := range todays {
		if o.Type == m.OverrideCancelled && o.OriginalSlotID != "" {
			removed[o.OriginalSlotID] = struct{}{}
		}
	}

	for _, s := range baseSlots {
		if s.DayOfWeek != dow {
			continue
		}
		if _, gone := removed[s.ID]; gone {
			continue
		}
		out = append(out, m.EffectiveSlot{
			SlotID:          s.ID,
			SubjectID:       s.SubjectID,
			Date:            date,
			StartTime:       s.StartTime,
			DurationMinutes: s.DurationMinutes,
			Room:            s.Room,
		})
	}

	for _, o := range todays {
		if o.Type != m.OverrideModified || o.OriginalSlotID == "" {
			continue
		}
		for i := range out {
			if out[i].SlotID != o.OriginalSlotID {
				continue
			}
			if o.DurationMinutes != nil && *o.DurationMinutes > 0 {
				out[i].DurationMinutes = *o.DurationMinutes
			}
			if o.Room != nil {
				out[i].Room = *o.Room
			}
			out[i].IsOverridden = true
			out[i].OverrideType = m.OverrideModified
			out[i].OverrideID = o.ID
		}
	}

	for _, o := range todays {
		if !o.IsCompleteAddition() {
			continue
		}
		if _, gone := removed[o.ID]; gone {
			continue
		}
		room := ""
		if o.Room != nil {
			room = *o.Room
		}
		out = append(out, m.EffectiveSlot{
			SlotID:          o.ID,
			SubjectID:       o.SubjectID,
			Date:            date,
			StartTime:       o.StartTime,
			DurationMinutes: *o.DurationMinutes,
			Room:            room,
			IsOverridden:    true,
			OverrideType:    m.OverrideAdded,
			OverrideID:      o.ID,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}

func overridesOn(date string, overrides []m.SlotOverride) []m.SlotOverride {
	var todays []m.SlotOverride
	for _, o := range overrides {
		if o.Date == date {
			todays = append(todays, o)
		}
	}
	return todays
}

/* =========================================================
   Holiday
========================================================= */

func FindHoliday(date string, holidays []m.Holiday) (m.Holiday, bool) {
	for _, h := range holidays {
		if h.Date == date {
			return h, true
		}
	}
	return m.Holiday{}, false
}

func IsHoliday(date string, holidays []m.Holiday) bool {
	_, ok := FindHoliday(date, holidays)
	return ok
}

// EffectiveSlotsForDay: kosong kalau libur, selain itu hasil resolver.
func EffectiveSlotsForDay(date string, slots []m.TimetableSlot, overrides []m.SlotOverride, holidays []m.Holiday) []m.EffectiveSlot {
	if IsHoliday(date, holidays) {
		return []m.EffectiveSlot{}
	}
	return GetEffectiveSlots(date, slots, overrides)
}

/* =========================================================
   Day view (halaman "hari ini")
========================================================= */

type ScheduledSession struct {
	m.EffectiveSlot
	SubjectName string           `json:"subjectName"`
	Professor   string           `json:"professor,omitempty"`
	Log         *m.AttendanceLog `json:"log,omitempty"`
}

type DayView struct {
	Date      string             `json:"date"`
	DayOfWeek int                `json:"dayOfWeek"`
	Holiday   *m.Holiday         `json:"holiday,omitempty"`
	Sessions  []ScheduledSession `json:"sessions"`
}

// DaySchedule: sesi efektif + log + nama matkul; matkul yang sudah mencapai
// batas pertemuan sebelum tanggal ini disembunyikan.
func DaySchedule(date string, snap m.Snapshot) DayView {
	view := DayView{Date: date, DayOfWeek: dbtime.DayOfWeekOfDate(date), Sessions: []ScheduledSession{}}
	if h, ok := FindHoliday(date, snap.Holidays); ok {
		view.Holiday = &h
		return view
	}

	idx := snap.LogIndex()
	limited := make(map[string]bool)
	for _, es := range GetEffectiveSlots(date, snap.Slots, snap.Overrides) {
		sub, ok := snap.FindSubject(es.SubjectID)
		if !ok {
			continue
		}
		reached, seen := limited[sub.ID]
		if !seen {
			reached = HasReachedLectureLimit(sub, snap, date)
			limited[sub.ID] = reached
		}
		if reached {
			continue
		}
		ss := ScheduledSession{EffectiveSlot: es, SubjectName: sub.Name, Professor: sub.Professor}
		if l, ok := idx[es.Key()]; ok {
			l := l
			ss.Log = &l
		}
		view.Sessions = append(view.Sessions, ss)
	}
	return view
}
