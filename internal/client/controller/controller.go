// Package controller coordinates text submission, history browsing, lazy
// expansion, deletion and session lifecycle against the analysis service.
// It mutates typed state and notifies subscribers; rendering lives elsewhere.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/newscheck/internal/client/api"
	"github.com/dmitrijs2005/newscheck/internal/client/banner"
	"github.com/dmitrijs2005/newscheck/internal/client/history"
	"github.com/dmitrijs2005/newscheck/internal/client/models"
	"github.com/dmitrijs2005/newscheck/internal/client/repositories/session"
	"github.com/dmitrijs2005/newscheck/internal/logging"
)

// User-facing messages, kept verbatim from the dashboard this client
// replaces.
const (
	MsgEmptyText      = "Please enter some text to analyze"
	MsgTextTooShort   = "Text is too short. Please enter at least 100 characters."
	MsgTextTooLong    = "Text is too long. Please enter at most %d characters."
	MsgAuthRequired   = "Authentication required. Please log in again."
	MsgSessionExpired = "Session expired. Please log in again."
	MsgInvalidRequest = "Invalid request. Please try again."
	MsgAnalyzeFailed  = "An error occurred while analyzing the text"
	MsgDeleteConfirm  = "Are you sure you want to delete this analysis?"
)

// Router is the navigation boundary. The controller only signals; it never
// navigates itself.
type Router interface {
	RedirectToLogin()
}

// Confirmer is the yes/no dialog boundary guarding destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Options wires a Controller.
type Options struct {
	Client   api.Client
	Sessions session.Repository
	History  *history.Cache
	Banner   *banner.Banner
	Router   Router
	Confirm  Confirmer
	Logger   logging.Logger
	// MaxTextLength caps submissions; zero means api.DefaultMaxTextLength.
	MaxTextLength int
}

// Controller is the single writer of session, history and display state.
// Methods are safe for concurrent use; racing operations resolve with
// last-write-wins on the active display, as there is no per-request
// correlation with the service.
type Controller struct {
	client     api.Client
	sessions   session.Repository
	history    *history.Cache
	banner     *banner.Banner
	router     Router
	confirm    Confirmer
	log        logging.Logger
	maxTextLen int

	mu     sync.Mutex
	active ActiveAnalysis
	user   *models.UserProfile
	authed bool

	subMu sync.Mutex
	subs  []func()
}

func New(opts Options) *Controller {
	maxLen := opts.MaxTextLength
	if maxLen <= 0 {
		maxLen = api.DefaultMaxTextLength
	}
	return &Controller{
		client:     opts.Client,
		sessions:   opts.Sessions,
		history:    opts.History,
		banner:     opts.Banner,
		router:     opts.Router,
		confirm:    opts.Confirm,
		log:        opts.Logger.With("component", "controller"),
		maxTextLen: maxLen,
	}
}

// Subscribe registers fn to run after every state mutation. Subscribers pull
// snapshots via Active, User and the history cache.
func (c *Controller) Subscribe(fn func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *Controller) notify() {
	c.subMu.Lock()
	subs := make([]func(), len(c.subs))
	copy(subs, c.subs)
	c.subMu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Active snapshots the current display state.
func (c *Controller) Active() ActiveAnalysis {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// User returns the authenticated user's profile, if any.
func (c *Controller) User() (*models.UserProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user, c.authed
}

// History exposes the summary cache for read-side consumers.
func (c *Controller) History() *history.Cache {
	return c.history
}

// Banner exposes the error banner for the rendering layer.
func (c *Controller) Banner() *banner.Banner {
	return c.banner
}

// Init is the session start: it reads the stored session once and, when one
// exists, installs the token and loads the history.
func (c *Controller) Init(ctx context.Context) error {
	s, err := c.sessions.Get(ctx)
	if err != nil {
		c.log.Error(ctx, "reading stored session", "error", err)
		return err
	}
	if s == nil {
		return nil
	}

	c.client.SetToken(s.Token)
	c.mu.Lock()
	user := s.User
	c.user = &user
	c.authed = true
	c.mu.Unlock()
	c.notify()

	return c.LoadHistory(ctx)
}

// SubmitForAnalysis validates text, submits it for classification and, on
// success, refreshes the history list (ids and ordering are server-assigned,
// so no optimistic insert). Validation and auth violations never reach the
// network.
func (c *Controller) SubmitForAnalysis(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		c.banner.Show(MsgEmptyText)
		return nil
	}
	n := utf8.RuneCountInString(text)
	if n < api.MinTextLength {
		c.banner.Show(MsgTextTooShort)
		return nil
	}
	if n > c.maxTextLen {
		c.banner.Show(fmt.Sprintf(MsgTextTooLong, c.maxTextLen))
		return nil
	}

	c.mu.Lock()
	if !c.authed {
		c.mu.Unlock()
		c.banner.Show(MsgAuthRequired)
		c.router.RedirectToLogin()
		return nil
	}
	c.active = ActiveAnalysis{Text: text, Status: StatusPending}
	c.mu.Unlock()
	c.notify()

	full, err := c.client.Analyze(ctx, text)
	if err != nil {
		c.failSubmission(ctx, err)
		return err
	}

	c.mu.Lock()
	c.active = ActiveAnalysis{Text: text, Result: full, Status: StatusSucceeded}
	c.mu.Unlock()
	c.notify()

	// Read-after-write refresh: the canonical record just appeared
	// server-side.
	return c.LoadHistory(ctx)
}

// failSubmission maps a submission error onto banner message and display
// state. A stale result is never left standing next to an error.
func (c *Controller) failSubmission(ctx context.Context, err error) {
	var (
		ve *api.ValidationError
		se *api.ServiceError
	)
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		c.sessionExpired(ctx)
	case errors.As(err, &ve):
		c.banner.Show(MsgInvalidRequest)
	case errors.As(err, &se):
		c.banner.Show(se.Message)
	default:
		c.log.Error(ctx, "analysis request failed", "error", err)
		c.banner.Show(MsgAnalyzeFailed)
	}

	c.mu.Lock()
	c.active.Result = nil
	c.active.Status = StatusFailed
	c.mu.Unlock()
	c.notify()
}

// LoadHistory replaces the summary cache with a fresh server listing.
// History is best-effort: failures are logged, the list becomes empty and
// the primary analysis flow is never blocked.
func (c *Controller) LoadHistory(ctx context.Context) error {
	summaries, err := c.client.History(ctx)
	if err != nil {
		c.log.Warn(ctx, "loading history", "error", err)
		summaries = nil
	}
	c.history.ReplaceAll(summaries)
	c.notify()
	return nil
}

// ToggleExpand collapses the entry if it is already expanded (no network
// call), otherwise expands it and fetches the full record to replace the
// active display. A failed fetch leaves the previous display untouched and
// the entry toggled; only an auth rejection escalates.
func (c *Controller) ToggleExpand(ctx context.Context, id int64) error {
	if !c.history.Toggle(id) {
		c.notify()
		return nil
	}

	if full, ok := c.history.Full(id); ok {
		// Already fetched while this listing has been live; reuse it.
		c.mu.Lock()
		c.active = ActiveAnalysis{Text: full.Text, Result: full, Status: StatusSucceeded}
		c.mu.Unlock()
		c.notify()
		return nil
	}

	full, err := c.client.GetAnalysis(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.sessionExpired(ctx)
			c.notify()
			return err
		}
		c.log.Warn(ctx, "fetching full analysis", "id", id, "error", err)
		c.notify()
		return err
	}

	c.history.UpsertFull(id, full)
	c.mu.Lock()
	c.active = ActiveAnalysis{Text: full.Text, Result: full, Status: StatusSucceeded}
	c.mu.Unlock()
	c.notify()
	return nil
}

// DeleteEntry removes an analysis after explicit confirmation. Deletion is
// idempotent towards the server: a record already gone server-side is still
// removed locally. Other failures are logged and change nothing.
func (c *Controller) DeleteEntry(ctx context.Context, id int64) error {
	if !c.confirm.Confirm(MsgDeleteConfirm) {
		return nil
	}

	if err := c.client.DeleteAnalysis(ctx, id); err != nil && !errors.Is(err, api.ErrNotFound) {
		c.log.Warn(ctx, "deleting analysis", "id", id, "error", err)
		return err
	}

	if wasExpanded := c.history.Remove(id); wasExpanded {
		// The deleted record was driving the display; clear it entirely.
		c.mu.Lock()
		c.active = ActiveAnalysis{}
		c.mu.Unlock()
	}
	c.notify()
	return nil
}

// Login authenticates, persists the session and loads the history.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	token, user, err := c.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	c.client.SetToken(token)
	if err := c.sessions.Set(ctx, &session.Session{Token: token, User: *user}); err != nil {
		// The in-memory session still works; it just won't survive a restart.
		c.log.Warn(ctx, "persisting session", "error", err)
	}

	c.mu.Lock()
	c.user = user
	c.authed = true
	c.mu.Unlock()
	c.notify()

	return c.LoadHistory(ctx)
}

// Register creates an account. The user logs in separately afterwards.
func (c *Controller) Register(ctx context.Context, name, email, password string) error {
	return c.client.Register(ctx, name, email, password)
}

// Logout clears the stored and in-memory session and signals redirect.
// Safe to call without a session.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.sessions.Clear(ctx); err != nil {
		c.log.Warn(ctx, "clearing stored session", "error", err)
	}
	c.client.ClearToken()

	c.mu.Lock()
	c.user = nil
	c.authed = false
	c.active = ActiveAnalysis{}
	c.mu.Unlock()

	c.history.ReplaceAll(nil)
	c.notify()
	c.router.RedirectToLogin()
	return nil
}

// sessionExpired handles an auth-rejected response from any protected call:
// the credential is destroyed everywhere and the user is sent back to login.
func (c *Controller) sessionExpired(ctx context.Context) {
	if err := c.sessions.Clear(ctx); err != nil {
		c.log.Warn(ctx, "clearing stored session", "error", err)
	}
	c.client.ClearToken()

	c.mu.Lock()
	c.user = nil
	c.authed = false
	c.mu.Unlock()

	c.banner.Show(MsgSessionExpired)
	c.router.RedirectToLogin()
}

// Close tears down the banner timers.
func (c *Controller) Close() {
	c.banner.Close()
}
