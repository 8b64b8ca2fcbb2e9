package seeds

import (
	"context"
	"log"

	repo "attendku_backend/internals/features/attendance/repository"
	"attendku_backend/internals/seeds/timetable"
)

type Options struct {
	SampleData     bool   // SEED_ON_FIRST_LAUNCH
	UnmarkedPolicy string // UNMARKED_POLICY, kosong = default settings
}

// RunFirstLaunchSeed jalan sekali saja (flag firstLaunch): set kebijakan awal
// lalu isi contoh jadwal kalau diminta dan state masih kosong.
func RunFirstLaunchSeed(ctx context.Context, r *repo.StateRepository, o Options) error {
	first, err := r.IsFirstLaunch(ctx)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}
	if o.UnmarkedPolicy != "" {
		if _, err := r.UpdateSettings(ctx, repo.SettingsPatch{UnmarkedPolicy: &o.UnmarkedPolicy}); err != nil {
			return err
		}
	}
	if !o.SampleData || len(r.Snapshot().Subjects) > 0 {
		log.Println("[SEED] ℹ️ first launch, data contoh dilewati")
		return r.MarkLaunched(ctx)
	}

	subjects, slots, err := timetable.Load(r.Now())
	if err != nil {
		return err
	}
	if err := r.Seed(ctx, subjects, slots); err != nil {
		return err
	}
	log.Printf("[SEED] 🌱 %d mata kuliah & %d jadwal contoh dimuat", len(subjects), len(slots))
	return nil
}
