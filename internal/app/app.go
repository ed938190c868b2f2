package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/adapter/marketapi"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/config"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/console"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/session"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/typeahead"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/pkg/ctxutil"
)

// App holds one wired admin session.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Client  *marketapi.Client
	Session *session.Session
	Search  *typeahead.Engine

	closeLog func() error
}

// New loads configuration and wires the client and engines. Logs go to the
// configured file, or to fallback when none is set.
func New(fallback io.Writer) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	out, closeLog, err := openLog(cfg.Log, fallback)
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}
	a := Wire(cfg, NewLogger(out, cfg.Log))
	a.closeLog = closeLog
	return a, nil
}

// Wire builds the engines from an already loaded configuration.
func Wire(cfg *config.Config, logger *slog.Logger) *App {
	client := marketapi.New(cfg.API, logger)

	search := typeahead.New(logger, client, typeahead.Options{
		Debounce:    cfg.Typeahead.Debounce,
		MinChars:    cfg.Typeahead.MinChars,
		RecentLimit: cfg.Typeahead.RecentLimit,
		SearchLimit: cfg.Typeahead.SearchLimit,
		Popular:     cfg.Typeahead.Popular,
		CacheSize:   cfg.Typeahead.CacheSize,
		CacheTTL:    cfg.Typeahead.CacheTTL,
	})
	if len(cfg.Typeahead.Recent) > 0 {
		search.SetRecents(cfg.Typeahead.Recent)
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Client:  client,
		Session: session.New(logger, client, cfg.Listing.PageSize),
		Search:  search,
	}
}

// Context tags ctx with a fresh session id so every request of this run
// can be correlated in the service logs.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxutil.WithSessionID(ctx, uuid.New())
}

// Close abandons pending typeahead lookups, waits for background
// refreshes and closes the log file.
func (a *App) Close() {
	a.Search.Close()
	a.Session.Wait()
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

// Run is the console entry point. It opens the default collection and
// hands the terminal to the console until the user quits.
func Run(ctx context.Context) error {
	// The terminal belongs to the console; logs go to a file or nowhere.
	a, err := New(io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx = a.Context(ctx)
	sid, _ := ctxutil.SessionIDFromCtx(ctx)

	a.Logger.Info("starting console",
		slog.String("version", BuildVersion()),
		slog.String("log_level", a.Config.Log.Level),
		slog.String("session_id", sid.String()),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("app.Run: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("app.Run: init screen: %w", err)
	}
	defer screen.Fini()

	// A failed first load is shown as a notice; the console still starts.
	_ = a.Session.Start(ctx, domain.Collection(a.Config.Listing.DefaultCollection), nil)

	return console.New(a.Logger, screen, a.Session, a.Search).Run(ctx)
}
