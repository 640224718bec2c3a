package di

import (
	"context"
	"log/slog"

	broadcastService "github.com/filterbotio/autofilter-bot/internal/modules/broadcast/service"
	directoryService "github.com/filterbotio/autofilter-bot/internal/modules/directory/service"
	filterService "github.com/filterbotio/autofilter-bot/internal/modules/filter/service"
	matchService "github.com/filterbotio/autofilter-bot/internal/modules/match/service"
	"github.com/filterbotio/autofilter-bot/internal/shared/config"
	"github.com/filterbotio/autofilter-bot/internal/storage"
	httpServer "github.com/filterbotio/autofilter-bot/internal/transport/http"
	telegramTransport "github.com/filterbotio/autofilter-bot/internal/transport/telegram"
	"github.com/go-telegram/bot"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Service names for dependency injection
const (
	ServiceConfig           = "config"
	ServiceStorage          = "storage"
	ServiceFilterService    = "filter-service"
	ServiceDirectoryService = "directory-service"
	ServiceMatchService     = "match-service"
	ServiceBroadcastService = "broadcast-service"
	ServiceTelegramHandler  = "telegram-handler"
	ServiceHTTPServer       = "http-server"
	ServiceBot              = "bot"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Storage Backend
	do.Provide(injector, func(i do.Injector) (storage.Backend, error) {
		cfg := do.MustInvoke[*config.Config](i)
		backend, err := storage.Open(context.Background(), slog.Default(), cfg.MongoURL, cfg.MongoDatabase, cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to open storage backend").Wrap(err)
		}
		return backend, nil
	})

	// Register Filter Service
	do.Provide(injector, func(i do.Injector) (*filterService.Service, error) {
		backend := do.MustInvoke[storage.Backend](i)
		return filterService.New(backend), nil
	})

	// Register Directory Service
	do.Provide(injector, func(i do.Injector) (*directoryService.Service, error) {
		backend := do.MustInvoke[storage.Backend](i)
		return directoryService.New(backend), nil
	})

	// Register Telegram Courier
	do.Provide(injector, func(i do.Injector) (*telegramTransport.Courier, error) {
		return telegramTransport.NewCourier(), nil
	})

	// Register Match Service
	do.Provide(injector, func(i do.Injector) (*matchService.Service, error) {
		filters := do.MustInvoke[*filterService.Service](i)
		directory := do.MustInvoke[*directoryService.Service](i)
		courier := do.MustInvoke[*telegramTransport.Courier](i)
		return matchService.New(filters, directory, courier, slog.Default()), nil
	})

	// Register Broadcast Service
	do.Provide(injector, func(i do.Injector) (*broadcastService.Service, error) {
		directory := do.MustInvoke[*directoryService.Service](i)
		courier := do.MustInvoke[*telegramTransport.Courier](i)
		return broadcastService.New(directory, courier, slog.Default()), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegramTransport.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		filters := do.MustInvoke[*filterService.Service](i)
		directory := do.MustInvoke[*directoryService.Service](i)
		matcher := do.MustInvoke[*matchService.Service](i)
		broadcaster := do.MustInvoke[*broadcastService.Service](i)
		return telegramTransport.New(cfg, filters, directory, matcher, broadcaster, slog.Default()), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		directory := do.MustInvoke[*directoryService.Service](i)
		filters := do.MustInvoke[*filterService.Service](i)
		server := httpServer.New(cfg, directory, filters)
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Register Bot (needs to be initialized after handlers are ready)
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegramTransport.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(handler.HandleUpdate),
		}
		if cfg.TelegramAPIURL != "" {
			opts = append(opts, bot.WithServerURL(cfg.TelegramAPIURL))
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		// Register bot commands
		handler.RegisterCommands(b)

		// Replies and broadcasts go out through the courier once the bot exists
		courier := do.MustInvoke[*telegramTransport.Courier](i)
		courier.SetBot(b)

		return b, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx := context.Background()

	// Shutdown bot if it exists
	if b, err := do.Invoke[*bot.Bot](injector); err == nil && b != nil {
		b.Close(ctx)
	}

	// Close storage if it exists
	if backend, err := do.Invoke[storage.Backend](injector); err == nil && backend != nil {
		if err := backend.Close(ctx); err != nil {
			slog.Error("failed to close storage backend", "error", err)
		}
	}

	return nil
}
