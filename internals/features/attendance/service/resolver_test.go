package service

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "attendku_backend/internals/features/attendance/model"
	"attendku_backend/internals/helpers/dbtime"
)

func ids(es []m.EffectiveSlot) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.SlotID)
	}
	return out
}

func TestGetEffectiveSlots_NoOverridesIsWeekdayFilterSorted(t *testing.T) {
	slots := []m.TimetableSlot{
		slot("A", "X", 0, "10:00", 60),
		slot("B", "Y", 0, "08:00", 60),
		slot("C", "X", 1, "09:00", 60),
		slot("D", "Z", 6, "07:30", 45),
	}

	for _, date := range []string{mon1, "2026-01-06", "2026-01-11", wed1} {
		dow := dbtime.DayOfWeekOfDate(date)
		var want []m.TimetableSlot
		for _, s := range slots {
			if s.DayOfWeek == dow {
				want = append(want, s)
			}
		}
		sort.SliceStable(want, func(i, j int) bool { return want[i].StartTime < want[j].StartTime })

		got := GetEffectiveSlots(date, slots, nil)
		require.Len(t, got, len(want), date)
		for i := range want {
			assert.Equal(t, want[i].ID, got[i].SlotID)
			assert.Equal(t, want[i].DurationMinutes, got[i].DurationMinutes)
			assert.Equal(t, want[i].Room, got[i].Room)
			assert.False(t, got[i].IsOverridden)
			assert.Equal(t, date, got[i].Date)
		}
	}
	assert.Equal(t, []string{"B", "A"}, ids(GetEffectiveSlots(mon1, slots, nil)))
}

func TestGetEffectiveSlots_CancelOnlyThatDate(t *testing.T) {
	slots := []m.TimetableSlot{slot("A", "X", 0, "10:00", 60), slot("B", "Y", 0, "08:00", 60)}
	ovs := []m.SlotOverride{cancel("c1", mon1, "A")}

	assert.Equal(t, []string{"B"}, ids(GetEffectiveSlots(mon1, slots, ovs)))
	assert.Equal(t, []string{"B", "A"}, ids(GetEffectiveSlots(mon2, slots, ovs)))
}

func TestGetEffectiveSlots_IdempotentAndDoesNotMutate(t *testing.T) {
	slots := []m.TimetableSlot{slot("A", "X", 0, "10:00", 60), slot("B", "Y", 0, "08:00", 60)}
	ovs := []m.SlotOverride{
		{ID: "m1", Date: mon1, Type: m.OverrideModified, OriginalSlotID: "A", Room: strp("B-201"), DurationMinutes: intp(120)},
		added("a1", mon1, "X", "07:00", 30),
	}
	slotsCopy := append([]m.TimetableSlot(nil), slots...)
	ovsCopy := append([]m.SlotOverride(nil), ovs...)

	first := GetEffectiveSlots(mon1, slots, ovs)
	second := GetEffectiveSlots(mon1, slots, ovs)

	assert.Equal(t, first, second)
	assert.Equal(t, slotsCopy, slots)
	assert.Equal(t, ovsCopy, ovs)
	assert.Equal(t, 60, slots[0].DurationMinutes)
}

func TestGetEffectiveSlots_AddedThenCancelledIsGone(t *testing.T) {
	ovs := []m.SlotOverride{
		added("extra-1", wed1, "X", "13:00", 60),
		cancel("c-extra", wed1, "extra-1"),
	}
	assert.Empty(t, GetEffectiveSlots(wed1, nil, ovs))

	// cancellation on another date does not touch it
	ovs[1].Date = wed2
	got := GetEffectiveSlots(wed1, nil, ovs)
	require.Len(t, got, 1)
	assert.Equal(t, "extra-1", got[0].SlotID)
}

func TestGetEffectiveSlots_ModificationsApplyInOrder(t *testing.T) {
	slots := []m.TimetableSlot{slot("A", "X", 0, "10:00", 60)}
	ovs := []m.SlotOverride{
		{ID: "m1", Date: mon1, Type: m.OverrideModified, OriginalSlotID: "A", DurationMinutes: intp(90), Room: strp("R1")},
		{ID: "m2", Date: mon1, Type: m.OverrideModified, OriginalSlotID: "A", Room: strp("R2")},
	}
	got := GetEffectiveSlots(mon1, slots, ovs)
	require.Len(t, got, 1)
	assert.Equal(t, 90, got[0].DurationMinutes)
	assert.Equal(t, "R2", got[0].Room)
	assert.True(t, got[0].IsOverridden)
	assert.Equal(t, m.OverrideModified, got[0].OverrideType)
	assert.Equal(t, "m2", got[0].OverrideID)
}

func TestGetEffectiveSlots_UnknownTargetsIgnored(t *testing.T) {
	slots := []m.TimetableSlot{slot("A", "X", 0, "10:00", 60)}
	ovs := []m.SlotOverride{
		cancel("c1", mon1, "ghost"),
		{ID: "m1", Date: mon1, Type: m.OverrideModified, OriginalSlotID: "ghost", Room: strp("nowhere")},
	}
	got := GetEffectiveSlots(mon1, slots, ovs)
	require.Len(t, got, 1)
	assert.Equal(t, "R-A", got[0].Room)
	assert.False(t, got[0].IsOverridden)
}

func TestGetEffectiveSlots_IncompleteAdditionSkipped(t *testing.T) {
	ovs := []m.SlotOverride{
		{ID: "a1", Date: mon1, Type: m.OverrideAdded, SubjectID: "X", StartTime: "10:00"},
		{ID: "a2", Date: mon1, Type: m.OverrideAdded, StartTime: "10:00", DurationMinutes: intp(60)},
	}
	assert.Empty(t, GetEffectiveSlots(mon1, nil, ovs))
}

func TestGetEffectiveSlots_RescheduleMondayToWednesday(t *testing.T) {
	slots := []m.TimetableSlot{slot("ATSA-0-1000", "ATSA", 0, "10:00", 90)}
	ovs := []m.SlotOverride{
		cancel("c1", mon1, "ATSA-0-1000"),
		{ID: "r1", Date: wed1, Type: m.OverrideAdded, OriginalSlotID: "ATSA-0-1000", SubjectID: "ATSA", StartTime: "14:00", DurationMinutes: intp(90)},
	}

	for _, es := range GetEffectiveSlots(mon1, slots, ovs) {
		assert.NotEqual(t, "ATSA", es.SubjectID)
	}

	wed := GetEffectiveSlots(wed1, slots, ovs)
	require.Len(t, wed, 1)
	assert.Equal(t, "ATSA", wed[0].SubjectID)
	assert.Equal(t, m.OverrideAdded, wed[0].OverrideType)
	assert.Equal(t, 90, wed[0].DurationMinutes)
	assert.Equal(t, "r1", wed[0].SlotID)
}

func TestGetEffectiveSlots_BadDate(t *testing.T) {
	got := GetEffectiveSlots("2026-13-01", []m.TimetableSlot{slot("A", "X", 0, "10:00", 60)}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEffectiveSlotsForDay_Holiday(t *testing.T) {
	slots := []m.TimetableSlot{slot("A", "X", 0, "10:00", 60)}
	ovs := []m.SlotOverride{added("a1", mon1, "X", "13:00", 60)}
	hol := []m.Holiday{{Date: mon1, Name: "Libur"}}

	assert.Empty(t, EffectiveSlotsForDay(mon1, slots, ovs, hol))
	assert.Len(t, EffectiveSlotsForDay(mon2, slots, ovs, hol), 1)
	assert.True(t, IsHoliday(mon1, hol))
	assert.False(t, IsHoliday(mon2, hol))
}

func TestDaySchedule(t *testing.T) {
	snap := baseSnapshot()
	snap.Logs = []m.AttendanceLog{logFor("AI-0-0800", mon1, "AI", m.StatusAbsent)}

	view := DaySchedule(mon1, snap)
	require.Len(t, view.Sessions, 2)
	assert.Equal(t, "AI", view.Sessions[0].SubjectID)
	require.NotNil(t, view.Sessions[0].Log)
	assert.Equal(t, m.StatusAbsent, view.Sessions[0].Log.Status)
	assert.Nil(t, view.Sessions[1].Log)
	assert.Equal(t, "Applied Time Series Analysis", view.Sessions[1].SubjectName)

	snap.Holidays = []m.Holiday{{Date: mon1, Name: "Tahun Baru Imlek"}}
	view = DaySchedule(mon1, snap)
	require.NotNil(t, view.Holiday)
	assert.Empty(t, view.Sessions)
}
