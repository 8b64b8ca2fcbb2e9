package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"attendku_backend/internals/configs"
	database "attendku_backend/internals/databases"
	"attendku_backend/internals/features/attendance/controller"
	"attendku_backend/internals/features/attendance/dto"
	repo "attendku_backend/internals/features/attendance/repository"
	"attendku_backend/internals/features/attendance/scheduler"
	helper "attendku_backend/internals/helpers"
	"attendku_backend/internals/helpers/dbtime"
	"attendku_backend/internals/helpers/oss"
	middlewares "attendku_backend/internals/middlewares"
	routes "attendku_backend/internals/route"
	"attendku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	loc := dbtime.SetLocation(configs.AppTimezone)
	log.Printf("🕒 Zona waktu: %s", loc)

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ErrorHandler:          helper.FromFiberError,
		BodyLimit:             8 * 1024 * 1024, // bundle impor bisa besar
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 store (bolt / postgres) + load state
	store, err := database.OpenStore()
	if err != nil {
		log.Fatalf("❌ Gagal membuka store: %v", err)
	}
	state := repo.NewStateRepository(store)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := state.Load(bootCtx); err != nil {
		log.Fatalf("❌ Gagal memuat state: %v", err)
	}
	if err := seeds.RunFirstLaunchSeed(bootCtx, state, seeds.Options{
		SampleData:     configs.GetEnvBool("SEED_ON_FIRST_LAUNCH", true),
		UnmarkedPolicy: configs.GetEnv("UNMARKED_POLICY"),
	}); err != nil {
		log.Printf("⚠️ Seed first launch gagal: %v", err)
	}

	// ☁️ backup B2 (opsional)
	var backup oss.Uploader
	if b2, err := oss.InitB2FromEnv(bootCtx); err == nil {
		backup = b2
		log.Println("✅ Backup B2 aktif")
	} else if !errors.Is(err, oss.ErrNotConfigured) {
		log.Printf("⚠️ B2 tidak bisa dipakai: %v", err)
	}
	bootCancel()

	// ⏱ scheduler setelah state siap
	runCtx, stopScheduler := context.WithCancel(context.Background())
	sweepOpts, interval := scheduler.OptionsFromEnv(loc)
	sweeper := scheduler.NewAutoAttendance(state, sweepOpts, interval)
	sweeper.Start(runCtx)

	// ✅ Routes
	ctl := controller.NewAttendanceController(state, dto.NewValidator(), sweeper, backup)
	routes.SetupRoutes(app, store, ctl)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup store
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopScheduler()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if err := store.Close(); err != nil {
		log.Printf("⚠️ Gagal menutup store: %v", err)
	}
}
