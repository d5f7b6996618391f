// Package app assembles the bot from its parts: config, logger, prediction
// client, result cache, and the Telegram runtime wiring.
package app

import (
	"fmt"

	"nationbot/core/logger"
	tg "nationbot/core/telegram"
	"nationbot/core/telegram/router"
	"nationbot/internal/bot"
	"nationbot/internal/config"
	"nationbot/internal/nationalize"
	"nationbot/internal/resultcache"
)

// App is the fully wired application.
type App struct {
	cfg *config.Config
	svc *bot.Service
	reg *tg.Registry
}

// Bootstrap initializes logging, builds the services, and registers handlers.
func Bootstrap(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	if err := logger.InitLogger(cfg.CoreConfig()); err != nil {
		return nil, fmt.Errorf("app: logger init failed: %w", err)
	}

	client := nationalize.NewClient(nationalize.Options{
		BaseURL: cfg.Nationalize.BaseURL,
		APIKey:  cfg.Nationalize.APIKey,
		Timeout: cfg.Nationalize.Timeout(),
	})

	cache := resultcache.New(resultcache.Options{
		TTL:        cfg.Cache.TTL(),
		MaxEntries: cfg.Cache.MaxEntries,
	})

	svc, err := bot.New(bot.Options{
		Predictor:      client,
		Cache:          cache,
		PredictTimeout: cfg.Nationalize.Timeout(),
	})
	if err != nil {
		return nil, err
	}

	reg := tg.NewRegistry()
	if err := bot.Register(reg, svc); err != nil {
		return nil, fmt.Errorf("app: handler registration failed: %w", err)
	}

	return &App{cfg: cfg, svc: svc, reg: reg}, nil
}

// TelegramRunOptions builds the routing table and middleware chain for the runner.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	if a == nil || a.cfg == nil {
		return tg.RunOptions{}, fmt.Errorf("app: not bootstrapped")
	}

	core := a.cfg.CoreConfig()

	routes := router.CommandRoutes(a.reg, router.CommandRouteOptions{
		AdminID:       core.Telegram.AdminID,
		OnAdminReject: a.svc.RejectNonAdmin,
	})
	routes = append(routes, router.TextRoutes(a.reg, router.TextOptions{
		UnknownDocument: a.svc.HandleDocument,
	})...)
	routes = append(routes, router.CallbackRoute(a.reg, router.CallbackOptions{}))

	return tg.RunOptions{
		Config:      core,
		Registry:    a.reg,
		Middlewares: tg.DefaultMiddlewares(core, nil),
		Routes:      routes,
	}, nil
}
