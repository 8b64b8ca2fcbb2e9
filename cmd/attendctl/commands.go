package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"attendku_backend/internals/configs"
	database "attendku_backend/internals/databases"
	m "attendku_backend/internals/features/attendance/model"
	repo "attendku_backend/internals/features/attendance/repository"
	"attendku_backend/internals/features/attendance/scheduler"
	svc "attendku_backend/internals/features/attendance/service"
	"attendku_backend/internals/helpers/dbtime"
)

type cliEnv struct {
	boltPath string
	tz       string
	now      func() time.Time

	store database.Store
	repo  *repo.StateRepository
	loc   *time.Location
}

// open: --bolt menimpa STORE_DRIVER/BOLT_PATH.
func (e *cliEnv) open(ctx context.Context) error {
	tz := e.tz
	if tz == "" {
		tz = configs.AppTimezone
	}
	e.loc = dbtime.SetLocation(tz)

	var err error
	if e.boltPath != "" {
		e.store, err = database.OpenBoltStore(e.boltPath)
	} else {
		e.store, err = database.OpenStore()
	}
	if err != nil {
		return err
	}
	e.repo = repo.NewStateRepository(e.store, repo.WithClock(e.now))
	return e.repo.Load(ctx)
}

func (e *cliEnv) close() {
	if e.store != nil {
		_ = e.store.Close()
	}
}

func (e *cliEnv) today() string {
	return dbtime.FormatLocalDate(e.now().In(e.loc))
}

// execute membangun root command, menjalankannya, lalu selalu menutup store.
func execute(ctx context.Context, out io.Writer, now func() time.Time, args []string) error {
	env := &cliEnv{now: now}
	defer env.close()
	root := newRootCmd(env, out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(env *cliEnv, out io.Writer) *cobra.Command {

	root := &cobra.Command{
		Use:           "attendctl",
		Short:         "Attendance tracker maintenance CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.open(cmd.Context())
		},
	}
	root.Version = appVersion
	root.SetVersionTemplate("attendctl v{{.Version}}\n")
	root.SetOut(out)
	root.PersistentFlags().StringVar(&env.boltPath, "bolt", "", "Path file bolt (default: STORE_DRIVER/BOLT_PATH)")
	root.PersistentFlags().StringVar(&env.tz, "tz", "", "Zona waktu IANA (default APP_TIMEZONE)")

	root.AddCommand(
		newSweepCmd(env, out),
		newScheduleCmd(env, out),
		newStatsCmd(env, out),
		newMarkCmd(env, out),
		newExportCmd(env, out),
		newImportCmd(env, out),
	)
	return root
}

func newSweepCmd(env *cliEnv, out io.Writer) *cobra.Command {
	var graceH, windowD int
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Tandai hadir otomatis sesi lampau yang belum ditandai",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := svc.SweepOptions{
				Window:   time.Duration(windowD) * 24 * time.Hour,
				Grace:    time.Duration(graceH) * time.Hour,
				Location: env.loc,
			}
			added, err := scheduler.NewAutoAttendance(env.repo, opts, 0).RunOnce(cmd.Context(), scheduler.TriggerManual)
			if err != nil {
				return err
			}
			for _, l := range added {
				fmt.Fprintf(out, "auto  %s  %-6s %s\n", l.Date, l.SubjectID, l.SlotID)
			}
			fmt.Fprintf(out, "%d sesi ditandai\n", len(added))
			return nil
		},
	}
	cmd.Flags().IntVar(&graceH, "grace", 6, "Jam setelah kelas selesai sebelum ditandai")
	cmd.Flags().IntVar(&windowD, "window", 7, "Jumlah hari ke belakang yang diperiksa")
	return cmd
}

func newScheduleCmd(env *cliEnv, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule [YYYY-MM-DD]",
		Short: "Tampilkan jadwal efektif satu hari (default hari ini)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := env.today()
			if len(args) == 1 {
				date = args[0]
			}
			if !dbtime.IsValidDate(date) {
				return svc.ErrInvalidDate
			}
			day := svc.DaySchedule(date, env.repo.Snapshot())
			if day.Holiday != nil {
				fmt.Fprintf(out, "%s libur: %s\n", date, day.Holiday.Name)
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "JAM\tMK\tRUANG\tDURASI\tSTATUS")
			for _, s := range day.Sessions {
				status := "-"
				if s.Log != nil {
					status = string(s.Log.Status)
				}
				if s.IsOverridden {
					status += " (" + string(s.OverrideType) + ")"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%dm\t%s\n", s.StartTime, s.SubjectID, s.Room, s.DurationMinutes, status)
			}
			return tw.Flush()
		},
	}
}

func newStatsCmd(env *cliEnv, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [SUBJECT]",
		Short: "Ringkasan presensi & jatah bolos per mata kuliah",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := env.repo.Snapshot()
			reports := svc.BuildAllReports(snap, env.today())
			if len(args) == 1 {
				sub, ok := snap.FindSubject(svc.NormalizeSubjectID(args[0]))
				if !ok {
					return svc.ErrUnknownSubject
				}
				reports = []svc.SubjectReport{svc.BuildSubjectReport(sub, snap, env.today())}
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "MK\tHADIR\tTOTAL\tPERSEN\tJAM\tAMAN BOLOS")
			for _, r := range reports {
				flag := ""
				if r.Summary.IsBelowThreshold {
					flag = " ⚠"
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%%s\t%.1f/%.1f\t%d\n",
					r.Subject.ID, r.Summary.Present, r.Summary.Total, r.Summary.Percentage, flag,
					r.Stats.AttendedHours, r.Stats.TotalHours, r.Budget.SafeToMiss)
			}
			return tw.Flush()
		},
	}
}

func newMarkCmd(env *cliEnv, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "mark SLOT_ID YYYY-MM-DD present|absent",
		Short: "Tandai presensi satu sesi (menimpa log lama)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := env.repo.MarkAttendance(cmd.Context(), repo.MarkInput{
				SlotID: args[0],
				Date:   args[1],
				Status: m.AttendanceStatus(strings.ToLower(args[2])),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s → %s\n", l.SubjectID, l.Key(), l.Status)
			return nil
		},
	}
}

func newExportCmd(env *cliEnv, out io.Writer) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Tulis bundle export (JSON) ke file atau stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(env.repo.Export(), "", "  ")
			if err != nil {
				return err
			}
			if file == "" || file == "-" {
				_, err = out.Write(append(data, '\n'))
				return err
			}
			return os.WriteFile(file, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&file, "out", "o", "", "File tujuan (default stdout)")
	return cmd
}

func newImportCmd(env *cliEnv, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Ganti seluruh data dengan isi bundle export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var b m.ExportBundle
			if err := json.Unmarshal(raw, &b); err != nil {
				return fmt.Errorf("file impor tidak valid: %w", err)
			}
			snap, err := env.repo.Import(cmd.Context(), b)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "diimpor: %d mata kuliah, %d jadwal, %d log, %d override, %d libur\n",
				len(snap.Subjects), len(snap.Slots), len(snap.Logs), len(snap.Overrides), len(snap.Holidays))
			return nil
		},
	}
}
