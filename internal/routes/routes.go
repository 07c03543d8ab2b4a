package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/blexpay/backoffice/internal/account"
	"github.com/blexpay/backoffice/internal/auth"
	"github.com/blexpay/backoffice/internal/config"
	"github.com/blexpay/backoffice/internal/dashboard"
	"github.com/blexpay/backoffice/internal/history"
	"github.com/blexpay/backoffice/internal/ledger"
	"github.com/blexpay/backoffice/internal/middleware"
	"github.com/blexpay/backoffice/internal/notification"
	"github.com/blexpay/backoffice/internal/report"
	"github.com/blexpay/backoffice/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.Dev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Storage: Postgres when available, in-memory fallbacks for dev.
	var ledgerStore ledger.Store
	var walletRepo wallet.Repository
	var accountRepo account.Repository
	var dashboardStore dashboard.Store
	if d.DB != nil {
		ledgerStore = ledger.NewPostgresStore(d.DB)
		walletRepo = wallet.NewPostgresRepository(d.DB)
		accountRepo = account.NewPostgresRepository(d.DB)
		dashboardStore = dashboard.NewPostgresStore(d.DB)
	} else {
		ledgerStore = ledger.NewInMemory()
		walletRepo = wallet.NewMemoryRepository()
		accountRepo = account.NewMemoryRepository()
		dashboardStore = dashboard.NewMemoryStore()
	}

	var sessions auth.SessionStore
	if d.Cache != nil {
		sessions = auth.NewRedisSessionStore(d.Cache, d.Cfg.SessionTTL)
	} else {
		sessions = auth.NewMemorySessionStore()
	}

	// Services and handlers
	engine := ledger.NewEngine(ledgerStore)
	notifier := notification.NewLoggerNotifier(d.Logger)
	historySvc := history.NewService(ledgerStore)
	reportSvc := report.NewService(walletRepo, engine, notifier)
	accountSvc := account.NewService(accountRepo, walletRepo)
	dashboardSvc := dashboard.NewService(dashboardStore)
	authSvc := auth.NewService(d.Cfg, sessions)

	historyHandler := history.NewHandler(historySvc)
	reportHandler := report.NewHandler(reportSvc)
	accountHandler := account.NewHandler(accountSvc)
	dashboardHandler := dashboard.NewHandler(dashboardSvc)
	authHandler := auth.NewHandler(authSvc, d.Cfg.SessionTTL)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	protected := api.Group("", middleware.RequireSession(authSvc))
	RegisterAccountRoutes(protected, accountHandler)
	RegisterHistoryRoutes(protected, historyHandler)
	RegisterReportRoutes(protected, reportHandler)
	RegisterDashboardRoutes(protected, dashboardHandler)

	return nil
}
