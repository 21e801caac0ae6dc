package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/google/uuid"

	"dsr_faste_backend/internals/configs"
	database "dsr_faste_backend/internals/databases"
	peminjamanModel "dsr_faste_backend/internals/features/peminjaman/model"
	authModel "dsr_faste_backend/internals/features/users/auth/model"
	scheduler "dsr_faste_backend/internals/features/users/auth/scheduler"
	helper "dsr_faste_backend/internals/helpers"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
	middlewares "dsr_faste_backend/internals/middlewares"
	routes "dsr_faste_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR proxy
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals("reqid", id)
		start := time.Now()
		// batas total request (DSR API punya timeout sendiri yang lebih pendek)
		ctx, cancel := context.WithTimeout(c.Context(), configs.DSRAPITimeout+5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB (token blacklist + jejak aksi)
	database.ConnectDB()
	database.TunePool()
	database.AutoMigrate(&authModel.TokenBlacklist{}, &peminjamanModel.PeminjamanActionLogModel{})

	// ⏱ scheduler setelah DB siap
	cleanup, err := scheduler.StartBlacklistCleanupScheduler(database.DB, configs.CleanupCron, configs.BlacklistTTLDays)
	if err != nil {
		log.Printf("[ERROR] Scheduler cleanup tidak jalan (CLEANUP_CRON=%q): %v", configs.CleanupCron, err)
	}

	// 🌐 DSR API
	api := dsrapi.NewClient(configs.DSRAPIURL, configs.DSRAPITimeout)

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, api)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", configs.Port)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + stop cron + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if cleanup != nil {
		<-cleanup.Stop().Done()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
