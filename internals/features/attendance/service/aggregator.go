// file: internals/features/attendance/service/aggregator.go
package service

import (
	"math"

	m "attendku_backend/internals/features/attendance/model"
	"attendku_backend/internals/helpers/dbtime"
)

/* =========================================================
   Ringkasan dari log saja
========================================================= */

type AttendanceSummary struct {
	Present          int     `json:"present"`
	Total            int     `json:"total"`
	Percentage       float64 `json:"percentage"`
	IsBelowThreshold bool    `json:"isBelowThreshold"`
}

// ComputeAttendance: tanpa log sama sekali dianggap 100%.
func ComputeAttendance(logs []m.AttendanceLog, subjectID string, minAttendance float64) AttendanceSummary {
	var sum AttendanceSummary
	for _, l := range logs {
		if l.SubjectID != subjectID {
			continue
		}
		sum.Total++
		if l.Status == m.StatusPresent {
			sum.Present++
		}
	}
	sum.Percentage = 100
	if sum.Total > 0 {
		sum.Percentage = float64(sum.Present) / float64(sum.Total) * 100
	}
	sum.IsBelowThreshold = sum.Percentage < minAttendance*100
	return sum
}

/* =========================================================
   Statistik per matkul sepanjang semester
========================================================= */

type SubjectStats struct {
	SubjectID             string  `json:"subjectId"`
	TotalClasses          int     `json:"totalClasses"`
	AttendedClasses       int     `json:"attendedClasses"`
	AbsentClasses         int     `json:"absentClasses"`
	UnmarkedClasses       int     `json:"unmarkedClasses"`
	TotalHours            float64 `json:"totalHours"`
	AttendedHours         float64 `json:"attendedHours"`
	Percentage            float64 `json:"percentage"`
	ProjectedTotalClasses int     `json:"projectedTotalClasses"`
	ProjectedTotalHours   float64 `json:"projectedTotalHours"`
	ProjectedAbsentHours  float64 `json:"projectedAbsentHours"`
}

// CalculateSubjectStats walks the whole semester. Sessions on or before today
// are classified by their log; unmarked past sessions follow the settings policy.
func CalculateSubjectStats(subject m.Subject, snap m.Snapshot, today string) SubjectStats {
	st := SubjectStats{SubjectID: subject.ID}
	policy := snap.Settings.Policy()
	idx := snap.LogIndex()

	dbtime.EachDate(snap.Settings.SemesterStartDate, snap.Settings.SemesterEnd(), func(date string, _ int) bool {
		for _, es := range EffectiveSlotsForDay(date, snap.Slots, snap.Overrides, snap.Holidays) {
			if es.SubjectID != subject.ID {
				continue
			}
			h := es.Hours()
			st.ProjectedTotalClasses++
			st.ProjectedTotalHours += h
			if date > today {
				continue
			}

			l, marked := idx[es.Key()]
			switch {
			case marked && l.Status == m.StatusPresent:
				st.countPast(h)
				st.AttendedClasses++
				st.AttendedHours += h
			case marked:
				st.countPast(h)
				st.AbsentClasses++
				st.ProjectedAbsentHours += h
			default:
				st.UnmarkedClasses++
				switch policy {
				case m.UnmarkedIgnored:
				case m.UnmarkedAsPresent:
					st.countPast(h)
					st.AttendedClasses++
					st.AttendedHours += h
				default:
					st.countPast(h)
					st.ProjectedAbsentHours += h
				}
			}
		}
		return true
	})

	st.Percentage = 100
	if st.TotalHours > 0 {
		st.Percentage = st.AttendedHours / st.TotalHours * 100
	}
	return st
}

func (st *SubjectStats) countPast(h float64) {
	st.TotalClasses++
	st.TotalHours += h
}

func CalculateAllStats(snap m.Snapshot, today string) map[string]SubjectStats {
	out := make(map[string]SubjectStats, len(snap.Subjects))
	for _, sub := range snap.Subjects {
		out[sub.ID] = CalculateSubjectStats(sub, snap, today)
	}
	return out
}

/* =========================================================
   Safe to miss
========================================================= */

type SafeToMissInfo struct {
	TotalProjected int `json:"totalProjected"`
	MinRequired    int `json:"minRequired"`
	MaxMissable    int `json:"maxMissable"`
	AlreadyMissed  int `json:"alreadyMissed"`
	// negatif = jatah bolos sudah terlewati
	SafeToMiss int `json:"safeToMiss"`
}

// float noise guard: 0.7*10 must not ceil to 8
const ceilEpsilon = 1e-9

// SafeToMiss: minRequired = ceil(total*threshold - 1e-9). Beda dari ceil polos:
// 0.7*10 = 7.000000000000001 menghasilkan 7, bukan 8.
func SafeToMiss(totalProjected int, threshold float64, summary AttendanceSummary) SafeToMissInfo {
	minRequired := int(math.Ceil(float64(totalProjected)*threshold - ceilEpsilon))
	if minRequired < 0 {
		minRequired = 0
	}
	maxMissable := totalProjected - minRequired
	missed := summary.Total - summary.Present
	return SafeToMissInfo{
		TotalProjected: totalProjected,
		MinRequired:    minRequired,
		MaxMissable:    maxMissable,
		AlreadyMissed:  missed,
		SafeToMiss:     maxMissable - missed,
	}
}

/* =========================================================
   Report gabungan (dipakai controller & CLI)
========================================================= */

type SubjectReport struct {
	Subject m.Subject         `json:"subject"`
	Summary AttendanceSummary `json:"summary"`
	Budget  SafeToMissInfo    `json:"safeToMiss"`
	Stats   SubjectStats      `json:"stats"`
}

func BuildSubjectReport(subject m.Subject, snap m.Snapshot, today string) SubjectReport {
	set := snap.Settings
	summary := ComputeAttendance(snap.Logs, subject.ID, set.Threshold())
	total := ProjectSemesterCount(subject.ID, snap.Slots, snap.Overrides, set.SemesterStartDate, set.SemesterEnd(), nil)
	return SubjectReport{
		Subject: subject,
		Summary: summary,
		Budget:  SafeToMiss(total, set.Threshold(), summary),
		Stats:   CalculateSubjectStats(subject, snap, today),
	}
}

func BuildAllReports(snap m.Snapshot, today string) []SubjectReport {
	out := make([]SubjectReport, 0, len(snap.Subjects))
	for _, sub := range snap.Subjects {
		out = append(out, BuildSubjectReport(sub, snap, today))
	}
	return out
}

// ProjectionPoint: jumlah sesi kumulatif s/d tanggal tertentu.
type ProjectionPoint struct {
	Until string `json:"until"`
	Count int    `json:"count"`
}

// WeeklyProjection: cumulative projected count at the end of each semester week.
func WeeklyProjection(subjectID string, snap m.Snapshot) []ProjectionPoint {
	set := snap.Settings
	end := set.SemesterEnd()
	out := []ProjectionPoint{}
	for wk := 1; ; wk++ {
		until := dbtime.CalculateSemesterEndDate(set.SemesterStartDate, wk)
		if until == "" || end == "" {
			break
		}
		last := until >= end
		if last {
			until = end
		}
		u := until
		out = append(out, ProjectionPoint{
			Until: until,
			Count: ProjectSemesterCount(subjectID, snap.Slots, snap.Overrides, set.SemesterStartDate, end, &u),
		})
		if last {
			break
		}
	}
	return out
}
