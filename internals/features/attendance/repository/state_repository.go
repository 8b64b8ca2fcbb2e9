// file: internals/features/attendance/repository/state_repository.go
package repository

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	m "attendku_backend/internals/features/attendance/model"
	"attendku_backend/internals/constants"
	database "attendku_backend/internals/databases"
)

// errNoChange: mutasi tidak mengubah apa pun, skip persist.
var errNoChange = errors.New("no change")

// StateRepository memegang snapshot in-memory dan menserialisasi semua
// siklus baca-ubah-simpan. Store ditulis dulu, baru snapshot di-swap.
type StateRepository struct {
	store database.Store

	mu   sync.Mutex
	snap m.Snapshot

	clock func() time.Time
	newID func() string
}

type Option func(*StateRepository)

func WithClock(fn func() time.Time) Option {
	return func(r *StateRepository) { r.clock = fn }
}

func WithIDGenerator(fn func() string) Option {
	return func(r *StateRepository) { r.newID = fn }
}

func NewStateRepository(store database.Store, opts ...Option) *StateRepository {
	r := &StateRepository{
		store: store,
		snap:  emptySnapshot(),
		clock: time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func emptySnapshot() m.Snapshot {
	return m.Snapshot{
		Subjects:  []m.Subject{},
		Slots:     []m.TimetableSlot{},
		Logs:      []m.AttendanceLog{},
		Overrides: []m.SlotOverride{},
		Holidays:  []m.Holiday{},
		Settings:  m.DefaultSettings(),
	}
}

/* =========================================================
   Load
========================================================= */

// Load reads every collection. A key that is missing or holds malformed
// JSON falls back to its empty/default value; only store failures error.
func (r *StateRepository) Load(ctx context.Context) error {
	next := emptySnapshot()

	loaders := []struct {
		key string
		out any
	}{
		{constants.KeySubjects, &next.Subjects},
		{constants.KeySlots, &next.Slots},
		{constants.KeyAttendance, &next.Logs},
		{constants.KeySlotOverrides, &next.Overrides},
		{constants.KeyHolidays, &next.Holidays},
		{constants.KeySettings, &next.Settings},
	}
	for _, l := range loaders {
		found, err := r.store.Get(ctx, l.key, l.out)
		if err != nil && !found {
			return err
		}
		if err != nil {
			log.Printf("[STATE] ⚠️ data rusak di %s, dipakai nilai kosong: %v", l.key, err)
			resetTarget(&next, l.key)
		}
	}
	normalize(&next)

	r.mu.Lock()
	r.snap = next
	r.mu.Unlock()
	return nil
}

func resetTarget(s *m.Snapshot, key string) {
	def := emptySnapshot()
	switch key {
	case constants.KeySubjects:
		s.Subjects = def.Subjects
	case constants.KeySlots:
		s.Slots = def.Slots
	case constants.KeyAttendance:
		s.Logs = def.Logs
	case constants.KeySlotOverrides:
		s.Overrides = def.Overrides
	case constants.KeyHolidays:
		s.Holidays = def.Holidays
	case constants.KeySettings:
		s.Settings = def.Settings
	}
}

// normalize: nil → slice kosong, settings tanpa tanggal mulai → default,
// log duplikat per key → yang terakhir menang.
func normalize(s *m.Snapshot) {
	if s.Subjects == nil {
		s.Subjects = []m.Subject{}
	}
	if s.Slots == nil {
		s.Slots = []m.TimetableSlot{}
	}
	if s.Overrides == nil {
		s.Overrides = []m.SlotOverride{}
	}
	if s.Holidays == nil {
		s.Holidays = []m.Holiday{}
	}
	s.Logs = dedupeLogs(s.Logs)

	def := m.DefaultSettings()
	if s.Settings.SemesterStartDate == "" {
		s.Settings.SemesterStartDate = def.SemesterStartDate
		if s.Settings.SemesterEndDate == "" && s.Settings.SemesterWeeks == 0 {
			s.Settings.SemesterEndDate = def.SemesterEndDate
		}
	}
	if s.Settings.MinAttendanceThreshold <= 0 || s.Settings.MinAttendanceThreshold > 1 {
		s.Settings.MinAttendanceThreshold = def.MinAttendanceThreshold
	}
	s.Settings.UnmarkedPolicy = s.Settings.Policy()
}

func dedupeLogs(logs []m.AttendanceLog) []m.AttendanceLog {
	out := make([]m.AttendanceLog, 0, len(logs))
	pos := make(map[m.LogKey]int, len(logs))
	for _, l := range logs {
		if l.SlotID == "" || l.Date == "" {
			continue
		}
		l.ID = l.Key().String()
		if i, ok := pos[l.Key()]; ok {
			out[i] = l
			continue
		}
		pos[l.Key()] = len(out)
		out = append(out, l)
	}
	return out
}

/* =========================================================
   Snapshot & mutate
========================================================= */

// Snapshot returns a copy; callers may keep it.
func (r *StateRepository) Snapshot() m.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneSnapshot(r.snap)
}

func (r *StateRepository) Now() time.Time { return r.clock() }

func cloneSnapshot(s m.Snapshot) m.Snapshot {
	return m.Snapshot{
		Subjects:  append([]m.Subject{}, s.Subjects...),
		Slots:     append([]m.TimetableSlot{}, s.Slots...),
		Logs:      append([]m.AttendanceLog{}, s.Logs...),
		Overrides: append([]m.SlotOverride{}, s.Overrides...),
		Holidays:  append([]m.Holiday{}, s.Holidays...),
		Settings:  s.Settings,
	}
}

// mutate runs fn on a working copy under the lock, persists the touched keys,
// and only then swaps the in-memory snapshot.
func (r *StateRepository) mutate(ctx context.Context, keys []string, fn func(s *m.Snapshot) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	work := cloneSnapshot(r.snap)
	if err := fn(&work); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}

	entries := make(map[string]any, len(keys))
	for _, k := range keys {
		entries[k] = valueFor(&work, k)
	}
	if err := r.store.PutMany(ctx, entries); err != nil {
		log.Printf("[STATE] ❌ gagal persist %v: %v", keys, err)
		return &PersistError{Keys: keys, Err: err}
	}
	r.snap = work
	return nil
}

func valueFor(s *m.Snapshot, key string) any {
	switch key {
	case constants.KeySubjects:
		return s.Subjects
	case constants.KeySlots:
		return s.Slots
	case constants.KeyAttendance:
		return s.Logs
	case constants.KeySlotOverrides:
		return s.Overrides
	case constants.KeyHolidays:
		return s.Holidays
	case constants.KeySettings:
		return s.Settings
	}
	return nil
}

// PersistError: penulisan ke store gagal; state in-memory tidak berubah.
type PersistError struct {
	Keys []string
	Err  error
}

func (e *PersistError) Error() string { return "persist: " + e.Err.Error() }
func (e *PersistError) Unwrap() error { return e.Err }

/* =========================================================
   First launch
========================================================= */

func (r *StateRepository) IsFirstLaunch(ctx context.Context) (bool, error) {
	var launched bool
	found, err := r.store.Get(ctx, constants.KeyFirstLaunch, &launched)
	if err != nil && !found {
		return false, err
	}
	return !found || !launched, nil
}

// Seed replaces subjects and slots and raises the first-launch flag.
func (r *StateRepository) Seed(ctx context.Context, subjects []m.Subject, slots []m.TimetableSlot) error {
	if err := r.mutate(ctx, []string{constants.KeySubjects, constants.KeySlots, constants.KeySettings}, func(s *m.Snapshot) error {
		s.Subjects = append([]m.Subject{}, subjects...)
		s.Slots = append([]m.TimetableSlot{}, slots...)
		return nil
	}); err != nil {
		return err
	}
	return r.MarkLaunched(ctx)
}

func (r *StateRepository) MarkLaunched(ctx context.Context) error {
	return r.store.Put(ctx, constants.KeyFirstLaunch, true)
}
