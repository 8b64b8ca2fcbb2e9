// file: internals/features/attendance/service/projector.go
package service

import (
	m "attendku_backend/internals/features/attendance/model"
	"attendku_backend/internals/helpers/dbtime"
)

// ProjectSemesterCount counts the sessions of one subject over
// [startDate, min(endDate, untilDate)]: base slots minus cancellations plus
// additions minus cancellations. Holidays are not consulted here.
// Unparseable bounds or an inverted range give 0.
func ProjectSemesterCount(subjectID string, baseSlots []m.TimetableSlot, overrides []m.SlotOverride, startDate, endDate string, untilDate *string) int {
	end := endDate
	if untilDate != nil && dbtime.IsValidDate(*untilDate) && dbtime.IsValidDate(endDate) {
		end = dbtime.MinDate(endDate, *untilDate)
	}

	byDate := make(map[string][]m.SlotOverride)
	for _, o := range overrides {
		byDate[o.Date] = append(byDate[o.Date], o)
	}

	var weekly [7][]string
	for _, s := range baseSlots {
		if s.SubjectID == subjectID && s.DayOfWeek >= 0 && s.DayOfWeek < 7 {
			weekly[s.DayOfWeek] = append(weekly[s.DayOfWeek], s.ID)
		}
	}

	total := 0
	dbtime.EachDate(startDate, end, func(date string, dow int) bool {
		todays := byDate[date]
		cancelled := make(map[string]struct{})
		for _, o := range todays {
			if o.Type == m.OverrideCancelled && o.OriginalSlotID != "" {
				cancelled[o.OriginalSlotID] = struct{}{}
			}
		}
		for _, id := range weekly[dow] {
			if _, gone := cancelled[id]; !gone {
				total++
			}
		}
		for _, o := range todays {
			if o.SubjectID != subjectID || !o.IsCompleteAddition() {
				continue
			}
			if _, gone := cancelled[o.ID]; !gone {
				total++
			}
		}
		return true
	})
	return total
}

// CountActualLectures walks the same range through the resolver, so holidays
// and every override kind apply.
func CountActualLectures(subjectID string, slots []m.TimetableSlot, overrides []m.SlotOverride, holidays []m.Holiday, startDate, endDate string) int {
	n := 0
	dbtime.EachDate(startDate, endDate, func(date string, _ int) bool {
		for _, es := range EffectiveSlotsForDay(date, slots, overrides, holidays) {
			if es.SubjectID == subjectID {
				n++
			}
		}
		return true
	})
	return n
}

// HasReachedLectureLimit: lectureLimit > 0 dan jumlah pertemuan sejak awal
// semester sampai H-1 sudah >= limit.
func HasReachedLectureLimit(subject m.Subject, snap m.Snapshot, date string) bool {
	if subject.LectureLimit <= 0 {
		return false
	}
	prev := dbtime.AddDays(date, -1)
	if prev == "" {
		return false
	}
	held := CountActualLectures(subject.ID, snap.Slots, snap.Overrides, snap.Holidays, snap.Settings.SemesterStartDate, prev)
	return held >= subject.LectureLimit
}
