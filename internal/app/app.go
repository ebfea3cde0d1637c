// Package app assembles the storefront: storage, cache, services, dialogue
// state, and the Telegram adapter.
package app

import (
	"context"
	"fmt"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/shopbot/core/bootstrap"
	"github.com/m3rciful/shopbot/core/logger"
	coretelegram "github.com/m3rciful/shopbot/core/telegram"
	"github.com/m3rciful/shopbot/core/telegram/router"
	"github.com/m3rciful/shopbot/core/telegram/state"
	"github.com/m3rciful/shopbot/internal/bot"
	"github.com/m3rciful/shopbot/internal/cache"
	"github.com/m3rciful/shopbot/internal/config"
	"github.com/m3rciful/shopbot/internal/conversation"
	"github.com/m3rciful/shopbot/internal/repository"
	"github.com/m3rciful/shopbot/internal/service"
)

// App holds the assembled application.
type App struct {
	cfg     *config.Config
	db      *sqlx.DB
	cache   *cache.Catalog
	dialogs state.Manager
	bot     *bot.Bot
}

// Bootstrap initializes infrastructure and wires all layers together.
func Bootstrap(cfg *config.Config) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	catalogCache, err := cache.New(context.Background(), cfg.Redis)
	if err != nil {
		// The cache is an accelerator, not a dependency; run without it.
		logger.Cache.Warn("cache disabled",
			slog.String("event", "init"),
			slog.String("err", err.Error()),
		)
		catalogCache = nil
	}

	store := repository.NewStore(res.DB)
	access := service.NewAccess(cfg.Core.Telegram.AdminIDs)
	catalogSvc := service.NewCatalog(store, catalogCache, access)
	cartSvc := service.NewCart(store, store)
	ordersSvc := service.NewOrders(store, access)

	dialogs := state.NewMemoryManager(cfg.Shop.DialogTTL)
	shop := conversation.New(catalogSvc, cartSvc, ordersSvc, access, dialogs)

	return &App{
		cfg:     cfg,
		db:      res.DB,
		cache:   catalogCache,
		dialogs: dialogs,
		bot:     bot.New(shop, access),
	}, nil
}

// TelegramRunOptions builds the bot runtime configuration.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	if a.bot == nil {
		return coretelegram.RunOptions{}, fmt.Errorf("app: bootstrap not completed")
	}

	reg := a.bot.Registry()
	coreCfg := a.cfg.CoreConfig()

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminIDs: coreCfg.Telegram.AdminIDs,
		OnAdminReject: func(c tele.Context) error {
			return c.Send("You do not have access to this function.")
		},
	})
	routes = append(routes, router.TextRoutes(a.dialogs, reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return coretelegram.RunOptions{
		Config:      coreCfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(coreCfg, nil),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			if err := a.cache.Close(); err != nil {
				logger.Cache.Warn("cache close failed",
					slog.String("event", "shutdown"),
					slog.String("err", err.Error()),
				)
			}
			return a.db.Close()
		},
	}, nil
}
