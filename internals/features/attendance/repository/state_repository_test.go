package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "attendku_backend/internals/features/attendance/model"
	svc "attendku_backend/internals/features/attendance/service"
	"attendku_backend/internals/constants"
	database "attendku_backend/internals/databases"
)

var fixedNow = time.Date(2026, 1, 12, 20, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*StateRepository, *database.BoltStore) {
	t.Helper()
	store, err := database.OpenBoltStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	n := 0
	repo := NewStateRepository(store,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("ov-%d", n) }),
	)
	require.NoError(t, repo.Load(context.Background()))
	return repo, store
}

func seedBasic(t *testing.T, repo *StateRepository) {
	t.Helper()
	ctx := context.Background()
	_, err := repo.UpdateSettings(ctx, SettingsPatch{
		SemesterStartDate: ptr("2026-01-01"),
		SemesterEndDate:   ptr("2026-05-30"),
	})
	require.NoError(t, err)
	_, err = repo.AddSubject(ctx, SubjectInput{ID: "ai", Name: "Artificial Intelligence", DefaultRoom: "C-101"})
	require.NoError(t, err)
	_, err = repo.AddSlot(ctx, SlotInput{SubjectID: "AI", DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"})
	require.NoError(t, err)
}

func ptr[T any](v T) *T { return &v }

func TestAddSubject(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	sub, err := repo.AddSubject(ctx, SubjectInput{ID: "  atsa ", Name: " Time Series ", Professor: "Dr. R"})
	require.NoError(t, err)
	assert.Equal(t, "ATSA", sub.ID)
	assert.Equal(t, "Time Series", sub.Name)
	assert.Equal(t, fixedNow, sub.CreatedAt)

	_, err = repo.AddSubject(ctx, SubjectInput{ID: "ATSA", Name: "Again"})
	assert.ErrorIs(t, err, svc.ErrDuplicateSubject)

	_, err = repo.AddSubject(ctx, SubjectInput{ID: "X", Name: "  "})
	assert.ErrorIs(t, err, svc.ErrInvalidInput)

	assert.Len(t, repo.Snapshot().Subjects, 1)
}

func TestAddSlot(t *testing.T) {
	repo, _ := newRepo(t)
	seedBasic(t, repo)
	ctx := context.Background()

	snap := repo.Snapshot()
	require.Len(t, snap.Slots, 1)
	sl := snap.Slots[0]
	assert.Equal(t, "AI-0-0800", sl.ID)
	assert.Equal(t, 60, sl.DurationMinutes)
	assert.Equal(t, "C-101", sl.Room)

	_, err := repo.AddSlot(ctx, SlotInput{SubjectID: "NOPE", DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00"})
	assert.ErrorIs(t, err, svc.ErrUnknownSubject)

	_, err = repo.AddSlot(ctx, SlotInput{SubjectID: "AI", DayOfWeek: 0, StartTime: "08:30", EndTime: "09:30"})
	assert.ErrorIs(t, err, svc.ErrSlotConflict)

	_, err = repo.AddSlot(ctx, SlotInput{SubjectID: "AI", DayOfWeek: 9, StartTime: "08:30", EndTime: "09:30"})
	assert.ErrorIs(t, err, svc.ErrInvalidDayOfWeek)

	_, err = repo.AddSlot(ctx, SlotInput{SubjectID: "AI", DayOfWeek: 1, StartTime: "10:00", EndTime: "09:00"})
	assert.ErrorIs(t, err, svc.ErrEndBeforeStart)

	_, err = repo.AddSlot(ctx, SlotInput{SubjectID: "AI", DayOfWeek: 1, StartTime: "8:00", EndTime: "09:00"})
	assert.ErrorIs(t, err, svc.ErrInvalidTime)

	up, err := repo.UpdateSlot(ctx, "AI-0-0800", SlotPatch{EndTime: ptr("09:45"), Room: ptr("LAB")})
	require.NoError(t, err)
	assert.Equal(t, 105, up.DurationMinutes)
	assert.Equal(t, "LAB", up.Room)
	assert.Equal(t, "AI-0-0800", up.ID)
}

func TestMarkAttendance_LastWriteWins(t *testing.T) {
	repo, _ := newRepo(t)
	seedBasic(t, repo)
	ctx := context.Background()

	_, err := repo.MarkAttendance(ctx, MarkInput{SlotID: "AI-0-0800", Date: "2026-01-05", Status: m.StatusPresent})
	require.NoError(t, err)
	l, err := repo.MarkAttendance(ctx, MarkInput{SlotID: "AI-0-0800", Date: "2026-01-05", Status: m.StatusAbsent})
	require.NoError(t, err)
	assert.Equal(t, "AI", l.SubjectID)
	assert.Equal(t, "AI-0-0800-2026-01-05", l.ID)

	logs := repo.Snapshot().Logs
	require.Len(t, logs, 1)
	assert.Equal(t, m.StatusAbsent, logs[0].Status)
	assert.Equal(t, m.SourceManual, logs[0].Source)

	require.NoError(t, repo.UnmarkAttendance(ctx, l.Key()))
	assert.Empty(t, repo.Snapshot().Logs)
	assert.ErrorIs(t, repo.UnmarkAttendance(ctx, l.Key()), svc.ErrNotFound)

	_, err = repo.MarkAttendance(ctx, MarkInput{SlotID: "AI-0-0800", Date: "2026-01-05", Status: "late"})
	assert.ErrorIs(t, err, svc.ErrInvalidInput)
}

func TestAutoAttendance_NeverOverwritesAndIsIdempotent(t *testing.T) {
	repo, _ := newRepo(t)
	seedBasic(t, repo)
	ctx := context.Background()

	_, err := repo.MarkAttendance(ctx, MarkInput{SlotID: "AI-0-0800", Date: "2026-01-05", Status: m.StatusAbsent})
	require.NoError(t, err)

	opts := svc.DefaultSweepOptions()
	opts.Location = time.UTC
	created, err := repo.ApplyAutoAttendance(ctx, fixedNow, opts)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "2026-01-12", created[0].Date)

	again, err := repo.ApplyAutoAttendance(ctx, fixedNow, opts)
	require.NoError(t, err)
	assert.Empty(t, again)

	logs := repo.Snapshot().Logs
	require.Len(t, logs, 2)
	idx := repo.Snapshot().LogIndex()
	assert.Equal(t, m.StatusAbsent, idx[m.LogKey{SlotID: "AI-0-0800", Date: "2026-01-05"}].Status)
}

func TestLoad_RoundTripAndCorruptFallback(t *testing.T) {
	repo, store := newRepo(t)
	seedBasic(t, repo)
	ctx := context.Background()
	_, err := repo.AddHoliday(ctx, "2026-01-19", "Libur")
	require.NoError(t, err)

	reloaded := NewStateRepository(store)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, repo.Snapshot(), reloaded.Snapshot())

	require.NoError(t, store.PutRaw(constants.KeySlots, []byte("[{broken")))
	require.NoError(t, reloaded.Load(ctx))
	snap := reloaded.Snapshot()
	assert.Empty(t, snap.Slots)
	assert.Len(t, snap.Subjects, 1)
	assert.Len(t, snap.Holidays, 1)
}

func TestLoad_EmptyStoreUsesDefaults(t *testing.T) {
	repo, _ := newRepo(t)
	snap := repo.Snapshot()
	assert.Equal(t, m.DefaultSettings(), snap.Settings)
	assert.NotNil(t, snap.Subjects)
	assert.NotNil(t, snap.Logs)
}

type failingStore struct {
	database.Store
}

func (failingStore) PutMany(context.Context, map[string]any) error {
	return errors.New("disk full")
}

func TestMutate_PersistFailureKeepsState(t *testing.T) {
	repo, store := newRepo(t)
	seedBasic(t, repo)
	before := repo.Snapshot()

	broken := NewStateRepository(failingStore{Store: store})
	require.NoError(t, broken.Load(context.Background()))

	_, err := broken.AddSubject(context.Background(), SubjectInput{ID: "NEW", Name: "New"})
	var pe *PersistError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Keys, constants.KeySubjects)
	assert.Equal(t, before.Subjects, broken.Snapshot().Subjects)
}

func TestReschedule(t *testing.T) {
	repo, _ := newRepo(t)
	seedBasic(t, repo)
	ctx := context.Background()

	c, moved, err := repo.Reschedule(ctx, RescheduleInput{
		SlotID: "AI-0-0800", FromDate: "2026-01-05", ToDate: "2026-01-07", StartTime: "13:00",
	})
	require.NoError(t, err)
	assert.Equal(t, m.OverrideCancelled, c.Type)
	assert.Equal(t, m.OverrideAdded, moved.Type)
	assert.Equal(t, "AI-0-0800", moved.OriginalSlotID)
	require.NotNil(t, moved.DurationMinutes)
	assert.Equal(t, 60, *moved.DurationMinutes)
	assert.Equal(t, "C-101", *moved.Room)

	snap := repo.Snapshot()
	assert.Empty(t, svc.GetEffectiveSlots("2026-01-05", snap.Slots, snap.Overrides))
	wed := svc.GetEffectiveSlots("2026-01-07", snap.Slots, snap.Overrides)
	require.Len(t, wed, 1)
	assert.Equal(t, moved.ID, wed[0].SlotID)

	// moving the moved session again cancels the added override by its own id
	_, moved2, err := repo.Reschedule(ctx, RescheduleInput{
		SlotID: moved.ID, FromDate: "2026-01-07", ToDate: "2026-01-08", StartTime: "09:00",
	})
	require.NoError(t, err)
	snap = repo.Snapshot()
	assert.Empty(t, svc.GetEffectiveSlots("2026-01-07", snap.Slots, snap.Overrides))
	thu := svc.GetEffectiveSlots("2026-01-08", snap.Slots, snap.Overrides)
	require.Len(t, thu, 1)
	assert.Equal(t, moved2.ID, thu[0].SlotID)

	_, _, err = repo.Reschedule(ctx, RescheduleInput{SlotID: "AI-0-0800", FromDate: "2026-01-06", ToDate: "2026-01-07", StartTime: "13:00"})
	assert.ErrorIs(t, err, svc.ErrNotFound)
}

func TestAddOverride(t *testing.T) {
	repo, _ := newRepo(t)
	seedBasic(t, repo)
	ctx := context.Background()

	o, err := repo.AddOverride(ctx, m.SlotOverride{Date: "2026-01-09", Type: m.OverrideAdded, SubjectID: "ai", StartTime: "10:00", DurationMinutes: ptr(30)})
	require.NoError(t, err)
	assert.Equal(t, "ov-1", o.ID)
	assert.Equal(t, "AI", o.SubjectID)

	_, err = repo.AddOverride(ctx, m.SlotOverride{Date: "2026-01-09", Type: m.OverrideAdded, SubjectID: "ZZ", StartTime: "10:00", DurationMinutes: ptr(30)})
	assert.ErrorIs(t, err, svc.ErrUnknownSubject)

	require.NoError(t, repo.DeleteOverride(ctx, o.ID))
	assert.ErrorIs(t, repo.DeleteOverride(ctx, o.ID), svc.ErrNotFound)
}

func TestDeleteSubjectCascades(t *testing.T) {
	repo, _ := newRepo(t)
	seedBasic(t, repo)
	ctx := context.Background()

	_, err := repo.MarkAttendance(ctx, MarkInput{SlotID: "AI-0-0800", Date: "2026-01-05", Status: m.StatusPresent})
	require.NoError(t, err)
	_, err = repo.AddOverride(ctx, m.SlotOverride{Date: "2026-01-05", Type: m.OverrideCancelled, OriginalSlotID: "AI-0-0800"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteSubject(ctx, "ai"))
	snap := repo.Snapshot()
	assert.Empty(t, snap.Subjects)
	assert.Empty(t, snap.Slots)
	assert.Empty(t, snap.Logs)
	assert.Empty(t, snap.Overrides)

	assert.ErrorIs(t, repo.DeleteSubject(ctx, "ai"), svc.ErrUnknownSubject)
}

func TestHolidays(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.AddHoliday(ctx, "2026-03-20", "Nyepi")
	require.NoError(t, err)
	_, err = repo.AddHoliday(ctx, "2026-01-01", "Tahun Baru")
	require.NoError(t, err)
	_, err = repo.AddHoliday(ctx, "2026-03-20", "Hari Raya Nyepi")
	require.NoError(t, err)

	hs := repo.Snapshot().Holidays
	require.Len(t, hs, 2)
	assert.Equal(t, "2026-01-01", hs[0].Date)
	assert.Equal(t, "Hari Raya Nyepi", hs[1].Name)

	_, err = repo.AddHoliday(ctx, "20-03-2026", "")
	assert.ErrorIs(t, err, svc.ErrInvalidDate)
	require.NoError(t, repo.RemoveHoliday(ctx, "2026-01-01"))
	assert.ErrorIs(t, repo.RemoveHoliday(ctx, "2026-01-01"), svc.ErrNotFound)
}

func TestUpdateSettings(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	set, err := repo.UpdateSettings(ctx, SettingsPatch{
		SemesterStartDate: ptr("2026-01-05"),
		SemesterEndDate:   ptr(""),
		SemesterWeeks:     ptr(15),
		UnmarkedPolicy:    ptr("ignore"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-04-19", set.SemesterEnd())
	assert.Equal(t, m.UnmarkedIgnored, set.UnmarkedPolicy)

	_, err = repo.UpdateSettings(ctx, SettingsPatch{MinAttendanceThreshold: ptr(1.5)})
	assert.ErrorIs(t, err, svc.ErrInvalidInput)
	_, err = repo.UpdateSettings(ctx, SettingsPatch{UnmarkedPolicy: ptr("maybe")})
	assert.ErrorIs(t, err, svc.ErrInvalidInput)
	_, err = repo.UpdateSettings(ctx, SettingsPatch{SemesterEndDate: ptr("2025-12-01")})
	assert.ErrorIs(t, err, svc.ErrEndBeforeStart)
}

func TestExportImport(t *testing.T) {
	repo, _ := newRepo(t)
	seedBasic(t, repo)
	ctx := context.Background()
	_, err := repo.MarkAttendance(ctx, MarkInput{SlotID: "AI-0-0800", Date: "2026-01-05", Status: m.StatusPresent})
	require.NoError(t, err)

	bundle := repo.Export()
	assert.Equal(t, fixedNow, bundle.ExportedAt)

	other, _ := newRepo(t)
	snap, err := other.Import(ctx, bundle)
	require.NoError(t, err)
	assert.Equal(t, repo.Snapshot(), snap)

	bad := bundle
	bad.Subjects = append([]m.Subject{}, bundle.Subjects...)
	bad.Subjects = append(bad.Subjects, m.Subject{ID: "ai", Name: "dup"})
	_, err = other.Import(ctx, bad)
	assert.ErrorIs(t, err, svc.ErrDuplicateSubject)
}

func TestFirstLaunch(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	first, err := repo.IsFirstLaunch(ctx)
	require.NoError(t, err)
	assert.True(t, first)

	require.NoError(t, repo.Seed(ctx, []m.Subject{{ID: "AI", Name: "AI"}}, nil))
	first, err = repo.IsFirstLaunch(ctx)
	require.NoError(t, err)
	assert.False(t, first)
	assert.Len(t, repo.Snapshot().Subjects, 1)
}

func TestImport_NormalizesSubjectReferences(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	bundle := m.ExportBundle{
		Subjects: []m.Subject{{ID: " atsa", Name: "Time Series"}},
		Slots: []m.TimetableSlot{
			{ID: "atsa-0-1000", SubjectID: "atsa", DayOfWeek: 0, StartTime: "10:00", DurationMinutes: 90},
		},
		AttendanceLogs: []m.AttendanceLog{
			m.NewAttendanceLog(m.LogKey{SlotID: "atsa-0-1000", Date: "2026-01-05"}, "atsa", m.StatusAbsent, m.SourceManual, fixedNow),
		},
		SlotOverrides: []m.SlotOverride{
			{ID: "ov-x", Type: m.OverrideAdded, Date: "2026-01-07", SubjectID: "atsa", StartTime: "13:00", DurationMinutes: ptr(60)},
		},
		Settings: m.Settings{SemesterStartDate: "2026-01-05", SemesterWeeks: 15, MinAttendanceThreshold: 0.8},
	}

	snap, err := repo.Import(ctx, bundle)
	require.NoError(t, err)
	require.Len(t, snap.Subjects, 1)
	assert.Equal(t, "ATSA", snap.Subjects[0].ID)
	assert.Equal(t, "ATSA", snap.Slots[0].SubjectID)
	assert.Equal(t, "ATSA", snap.Logs[0].SubjectID)
	assert.Equal(t, "ATSA", snap.Overrides[0].SubjectID)
	assert.Equal(t, "atsa-0-1000", snap.Slots[0].ID)

	assert.Equal(t, 16, svc.ProjectSemesterCount("ATSA", snap.Slots, snap.Overrides,
		snap.Settings.SemesterStartDate, snap.Settings.SemesterEnd(), nil))
	sum := svc.ComputeAttendance(snap.Logs, "ATSA", 0.8)
	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, 0, sum.Present)
}
