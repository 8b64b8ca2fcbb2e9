// file: internals/features/attendance/service/sweeper.go
package service

import (
	"time"

	m "attendku_backend/internals/features/attendance/model"
	"attendku_backend/internals/helpers/dbtime"
)

type SweepOptions struct {
	Window   time.Duration // seberapa jauh ke belakang (default 7 hari)
	Grace    time.Duration // jeda setelah kelas selesai (default 6 jam)
	Location *time.Location
}

func DefaultSweepOptions() SweepOptions {
	return SweepOptions{
		Window: 7 * 24 * time.Hour,
		Grace:  6 * time.Hour,
	}
}

// PlanAutoAttendance returns the "present" logs the sweep would create:
// sessions in [max(now-window, semesterStart), min(today, semesterEnd)] that
// ended more than Grace ago and have no log yet. Holidays and sessions of
// unknown subjects are skipped. Pure; the caller persists.
func PlanAutoAttendance(now time.Time, snap m.Snapshot, opts SweepOptions) []m.AttendanceLog {
	loc := opts.Location
	if loc == nil {
		loc = dbtime.Location()
	}
	if opts.Window <= 0 {
		opts.Window = DefaultSweepOptions().Window
	}
	if opts.Grace < 0 {
		opts.Grace = 0
	}
	now = now.In(loc)
	cutoff := now.Add(-opts.Grace)

	start := dbtime.FormatLocalDate(now.Add(-opts.Window))
	if dbtime.IsValidDate(snap.Settings.SemesterStartDate) {
		start = dbtime.MaxDate(start, snap.Settings.SemesterStartDate)
	}
	end := dbtime.FormatLocalDate(now)
	if semEnd := snap.Settings.SemesterEnd(); dbtime.IsValidDate(semEnd) {
		end = dbtime.MinDate(end, semEnd)
	}

	known := make(map[string]struct{}, len(snap.Subjects))
	for _, s := range snap.Subjects {
		known[s.ID] = struct{}{}
	}
	existing := snap.LogIndex()

	var planned []m.AttendanceLog
	dbtime.EachDate(start, end, func(date string, _ int) bool {
		for _, es := range EffectiveSlotsForDay(date, snap.Slots, snap.Overrides, snap.Holidays) {
			if _, ok := known[es.SubjectID]; !ok {
				continue
			}
			key := es.Key()
			if _, done := existing[key]; done {
				continue
			}
			endsAt, ok := es.EndsAt(loc)
			if !ok || !endsAt.Before(cutoff) {
				continue
			}
			l := m.NewAttendanceLog(key, es.SubjectID, m.StatusPresent, m.SourceAuto, now)
			existing[key] = l
			planned = append(planned, l)
		}
		return true
	})
	return planned
}
