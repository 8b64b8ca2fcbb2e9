// file: internals/features/attendance/scheduler/auto_attendance.go
package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"attendku_backend/internals/configs"
	m "attendku_backend/internals/features/attendance/model"
	"attendku_backend/internals/features/attendance/metrics"
	repo "attendku_backend/internals/features/attendance/repository"
	svc "attendku_backend/internals/features/attendance/service"
)

const (
	TriggerStartup    = "startup"
	TriggerInterval   = "interval"
	TriggerForeground = "foreground"
	TriggerManual     = "manual"
)

// AutoAttendance menjalankan sweep: saat start, tiap interval, dan
// setiap kali Trigger dipanggil (mis. app kembali ke foreground).
type AutoAttendance struct {
	Repo     *repo.StateRepository
	Options  svc.SweepOptions
	Interval time.Duration

	kick chan string
	once sync.Once
}

func NewAutoAttendance(r *repo.StateRepository, opts svc.SweepOptions, interval time.Duration) *AutoAttendance {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AutoAttendance{
		Repo:     r,
		Options:  opts,
		Interval: interval,
		kick:     make(chan string, 1),
	}
}

// RunOnce: satu sweep sinkron. Dipakai loop & endpoint manual.
func (a *AutoAttendance) RunOnce(ctx context.Context, trigger string) ([]m.AttendanceLog, error) {
	start := time.Now()
	added, err := a.Repo.ApplyAutoAttendance(ctx, a.Repo.Now(), a.Options)
	metrics.SweepDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SweepRuns.WithLabelValues(trigger, "error").Inc()
		var pe *repo.PersistError
		if errors.As(err, &pe) {
			metrics.PersistFailures.Inc()
		}
		log.Printf("[AUTO-ATTENDANCE ERROR] trigger=%s: %v", trigger, err)
		return nil, err
	}

	metrics.SweepRuns.WithLabelValues(trigger, "ok").Inc()
	for _, l := range added {
		metrics.AttendanceMarks.WithLabelValues(string(l.Source), string(l.Status)).Inc()
	}
	if len(added) > 0 {
		log.Printf("[AUTO-ATTENDANCE] trigger=%s %d sesi ditandai otomatis", trigger, len(added))
	}
	return added, nil
}

// Trigger minta sweep secepatnya; non-blocking, request ganda digabung.
func (a *AutoAttendance) Trigger(reason string) {
	select {
	case a.kick <- reason:
	default:
	}
}

// Start menjalankan loop di goroutine sendiri sampai ctx selesai.
func (a *AutoAttendance) Start(ctx context.Context) {
	a.once.Do(func() {
		go a.loop(ctx)
	})
}

func (a *AutoAttendance) loop(ctx context.Context) {
	log.Printf("[AUTO-ATTENDANCE] scheduler aktif (interval=%s, grace=%s, window=%s)",
		a.Interval, a.Options.Grace, a.Options.Window)

	_, _ = a.RunOnce(ctx, TriggerStartup)

	t := time.NewTicker(a.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[AUTO-ATTENDANCE] scheduler berhenti")
			return
		case <-t.C:
			_, _ = a.RunOnce(ctx, TriggerInterval)
		case reason := <-a.kick:
			_, _ = a.RunOnce(ctx, reason)
		}
	}
}

// OptionsFromEnv: SWEEP_INTERVAL (durasi Go), SWEEP_GRACE_HOURS, SWEEP_WINDOW_DAYS.
func OptionsFromEnv(loc *time.Location) (svc.SweepOptions, time.Duration) {
	opts := svc.DefaultSweepOptions()
	opts.Grace = time.Duration(configs.GetEnvInt("SWEEP_GRACE_HOURS", 6)) * time.Hour
	opts.Window = time.Duration(configs.GetEnvInt("SWEEP_WINDOW_DAYS", 7)) * 24 * time.Hour
	opts.Location = loc
	return opts, configs.GetEnvDuration("SWEEP_INTERVAL", time.Minute)
}
