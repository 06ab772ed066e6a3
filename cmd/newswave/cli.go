package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/jessevdk/go-flags"

	"newswave/internal/config"
	"newswave/internal/infra/newsapi"
	"newswave/internal/infra/sessionstore"
	"newswave/internal/infra/summarizer"
	"newswave/internal/observability/logging"
	"newswave/internal/observability/metrics"
	"newswave/internal/repository"
	"newswave/internal/usecase/article"
	"newswave/internal/usecase/auth"
	"newswave/internal/usecase/publisher"
	"newswave/internal/usecase/subscription"
)

// cli holds what every command shares. The app is built on first use so
// that "--help" works without configuration.
type cli struct {
	opts   globalOptions
	ctx    context.Context
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// Overrides for tests.
	cfg        *config.Config
	store      repository.SessionRepository
	httpClient *http.Client

	app *app
}

type app struct {
	cfg       *config.Config
	store     repository.SessionRepository
	auth      *auth.Controller
	subs      *subscription.Store
	articles  *article.Service
	directory *publisher.Service
}

func (c *cli) newParser(inShell bool) *flags.Parser {
	var data any = &c.opts
	if inShell {
		// Global options only apply when the process starts.
		data = &struct{}{}
	}
	p := flags.NewParser(data, flags.HelpFlag|flags.PassDoubleDash)
	p.Name = "newswave"

	mustAdd(p, "login", "Create an account and log in", &loginCmd{cli: c})
	mustAdd(p, "logout", "Log out and forget the stored session", &logoutCmd{cli: c})
	mustAdd(p, "whoami", "Show the current session", &whoamiCmd{cli: c})
	mustAdd(p, "publishers", "List publishers", &publishersCmd{cli: c})
	mustAdd(p, "publisher", "Show one publisher and its articles", &publisherCmd{cli: c})
	mustAdd(p, "subscribe", "Follow a publisher", &subscribeCmd{cli: c})
	mustAdd(p, "unsubscribe", "Stop following a publisher", &unsubscribeCmd{cli: c})
	mustAdd(p, "subscriptions", "List publishers followed in this session", &subscriptionsCmd{cli: c})
	mustAdd(p, "feed", "Show the subscriber feed", &feedCmd{cli: c})
	mustAdd(p, "articles", "Show your own articles", &articlesCmd{cli: c})
	mustAdd(p, "publish", "Publish an article", &publishCmd{cli: c})
	mustAdd(p, "summarize", "Summarize article content", &summarizeCmd{cli: c})
	if !inShell {
		mustAdd(p, "shell", "Run commands interactively in one session", &shellCmd{cli: c})
	}
	return p
}

func mustAdd(p *flags.Parser, name, short string, data any) {
	if _, err := p.AddCommand(name, short, "", data); err != nil {
		panic(err)
	}
}

// application builds the app on first call.
func (c *cli) application() (*app, error) {
	if c.app != nil {
		return c.app, nil
	}

	cfg := c.cfg
	if cfg == nil {
		loaded, err := config.Load(config.LoadOptions{ConfigFile: c.opts.Config, EnvFile: c.opts.EnvFile})
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	level := cfg.Log.Level
	if c.opts.Verbose {
		level = "debug"
	}
	logger := logging.New(logging.Options{Level: level, Format: cfg.Log.Format, Writer: c.errOut})
	slog.SetDefault(logger)
	c.ctx = logging.WithLogger(c.ctx, logger)

	gwOpts := []newsapi.Option{newsapi.WithLogger(logger)}
	if c.httpClient != nil {
		gwOpts = append(gwOpts, newsapi.WithHTTPClient(c.httpClient))
	}
	gateway, err := newsapi.New(newsapi.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		RateLimit:      cfg.API.RateLimit,
		Burst:          cfg.API.Burst,
		CircuitBreaker: cfg.API.CircuitBreaker,
	}, gwOpts...)
	if err != nil {
		return nil, err
	}

	sum, err := summarizer.New(summarizer.Config{
		Provider:       cfg.Summarizer.Provider,
		APIKey:         cfg.Summarizer.APIKey(),
		Model:          cfg.Summarizer.Model,
		CharacterLimit: cfg.Summarizer.CharacterLimit,
		Timeout:        cfg.Summarizer.Timeout,
	}, summarizer.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	store := c.store
	if store == nil {
		store = c.openStore(cfg, logger)
	}

	controller := auth.NewController(gateway, store, logger)
	controller.Hydrate(c.ctx)

	c.app = &app{
		cfg:   cfg,
		store: store,
		auth:  controller,
		subs:  subscription.NewStore(gateway, controller, logger),
		articles: &article.Service{
			Gateway:          gateway,
			Sessions:         controller,
			Summarizer:       sum,
			DefaultFeedCount: cfg.Feed.DefaultCount,
			Logger:           logger,
		},
		directory: &publisher.Service{
			Gateway:     gateway,
			Concurrency: cfg.Directory.Concurrency,
			Logger:      logger,
		},
	}
	return c.app, nil
}

// openStore opens the sqlite session store, falling back to memory so the
// client keeps working for the lifetime of the process.
func (c *cli) openStore(cfg *config.Config, logger *slog.Logger) repository.SessionRepository {
	db, err := sessionstore.Open(c.ctx, cfg.Session.DBPath, logger)
	if err != nil {
		logger.Warn("session store unavailable, session will not survive restart",
			slog.String("path", cfg.Session.DBPath),
			slog.Any("error", err))
		return sessionstore.NewMemory()
	}
	return db
}

func (c *cli) close() {
	if c.app == nil {
		return
	}
	logger := logging.FromContext(c.ctx)
	if path := c.app.cfg.MetricsFile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			logger.Warn("failed to write metrics", slog.Any("error", err))
		}
	}
	if closer, ok := c.app.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("failed to close session store", slog.Any("error", err))
		}
	}
}
