package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/newscheck/internal/client/api"
	"github.com/dmitrijs2005/newscheck/internal/client/banner"
	"github.com/dmitrijs2005/newscheck/internal/client/config"
	"github.com/dmitrijs2005/newscheck/internal/client/controller"
	"github.com/dmitrijs2005/newscheck/internal/client/history"
	"github.com/dmitrijs2005/newscheck/internal/client/repositories/session"
	"github.com/dmitrijs2005/newscheck/internal/client/storage"
	"github.com/dmitrijs2005/newscheck/internal/logging"
)

// App wires the controller to a terminal. It owns the stdin reader and the
// session database handle, and it plays the navigation and confirmation
// boundaries for the controller.
type App struct {
	config *config.Config
	ctrl   *controller.Controller
	log    logging.Logger
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	a := &App{
		config: cfg,
		log:    logger.With("component", "cli"),
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	apiClient := api.NewHTTPClient(api.Options{
		BaseURL:       cfg.ServerBaseURL,
		Timeout:       cfg.RequestTimeout,
		MaxTextLength: cfg.MaxTextLength,
		Logger:        logger,
	})

	bnr := banner.New(cfg.BannerVisibleFor, cfg.BannerFadeFor)
	bnr.SetOnChange(func(st banner.State) {
		if st.Phase == banner.PhaseVisible {
			fmt.Fprintln(a.out, renderBanner(st))
		}
	})

	a.ctrl = controller.New(controller.Options{
		Client:        apiClient,
		Sessions:      session.NewSQLiteRepository(db),
		History:       history.NewCache(),
		Banner:        bnr,
		Router:        a,
		Confirm:       a,
		Logger:        logger,
		MaxTextLength: cfg.MaxTextLength,
	})

	return a, nil
}

// RedirectToLogin is the terminal's stand-in for navigation: it tells the
// user to authenticate again.
func (a *App) RedirectToLogin() {
	fmt.Fprintln(a.out, "Please log in to continue (type 'login').")
}

// Confirm asks a yes/no question on the terminal. Only "y" and "yes"
// (case-insensitive) count as consent.
func (a *App) Confirm(prompt string) bool {
	answer, err := getSimpleText(a.reader, prompt+" [y/N]", a.out)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.ctrl.User()
	return ok
}

func (a *App) status() string {
	if user, ok := a.ctrl.User(); ok {
		return fmt.Sprintf("(%s) ", user.Email)
	}
	return ""
}

// Run restores any stored session and starts the REPL. It blocks until the
// user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.ctrl.Init(ctx); err != nil {
		a.log.Warn(ctx, "restoring session", "error", err)
	}

	fmt.Fprintln(a.out, "Welcome to NewsCheck CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() {
	a.ctrl.Close()
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing session database", "error", err)
	}
}
