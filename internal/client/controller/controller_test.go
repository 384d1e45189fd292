package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/newscheck/internal/client/api"
	"github.com/dmitrijs2005/newscheck/internal/client/banner"
	"github.com/dmitrijs2005/newscheck/internal/client/history"
	"github.com/dmitrijs2005/newscheck/internal/client/models"
	"github.com/dmitrijs2005/newscheck/internal/client/repositories/session"
	"github.com/dmitrijs2005/newscheck/internal/logging"
)

type fakeClient struct {
	mu    sync.Mutex
	token string

	loginToken string
	loginUser  *models.UserProfile
	loginErr   error

	registerErr error

	analyzeResp  *models.AnalysisFull
	analyzeErr   error
	analyzeCalls int

	historyResp  []models.AnalysisSummary
	historyErr   error
	historyCalls int

	getResp  *models.AnalysisFull
	getErr   error
	getCalls int

	deleteErr   error
	deleteCalls int
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, *models.UserProfile, error) {
	return f.loginToken, f.loginUser, f.loginErr
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) error {
	return f.registerErr
}

func (f *fakeClient) Analyze(ctx context.Context, text string) (*models.AnalysisFull, error) {
	f.mu.Lock()
	f.analyzeCalls++
	f.mu.Unlock()
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	resp := *f.analyzeResp
	resp.Text = text
	return &resp, nil
}

func (f *fakeClient) History(ctx context.Context) ([]models.AnalysisSummary, error) {
	f.mu.Lock()
	f.historyCalls++
	f.mu.Unlock()
	return f.historyResp, f.historyErr
}

func (f *fakeClient) GetAnalysis(ctx context.Context, id int64) (*models.AnalysisFull, error) {
	f.mu.Lock()
	f.getCalls++
	f.mu.Unlock()
	return f.getResp, f.getErr
}

func (f *fakeClient) DeleteAnalysis(ctx context.Context, id int64) error {
	f.mu.Lock()
	f.deleteCalls++
	f.mu.Unlock()
	return f.deleteErr
}

func (f *fakeClient) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeClient) ClearToken() { f.SetToken("") }

func (f *fakeClient) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

type fakeSessions struct {
	stored     *session.Session
	getErr     error
	setCalls   int
	clearCalls int
}

func (f *fakeSessions) Get(ctx context.Context) (*session.Session, error) {
	return f.stored, f.getErr
}

func (f *fakeSessions) Set(ctx context.Context, s *session.Session) error {
	f.setCalls++
	f.stored = s
	return nil
}

func (f *fakeSessions) Clear(ctx context.Context) error {
	f.clearCalls++
	f.stored = nil
	return nil
}

type fakeRouter struct {
	redirects int
}

func (f *fakeRouter) RedirectToLogin() { f.redirects++ }

type fakeConfirmer struct {
	answer  bool
	prompts []string
}

func (f *fakeConfirmer) Confirm(prompt string) bool {
	f.prompts = append(f.prompts, prompt)
	return f.answer
}

type fixture struct {
	c        *Controller
	client   *fakeClient
	sessions *fakeSessions
	router   *fakeRouter
	confirm  *fakeConfirmer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fc := &fakeClient{
		analyzeResp: &models.AnalysisFull{Result: models.ResultReal, Confidence: 0.82},
	}
	fs := &fakeSessions{}
	fr := &fakeRouter{}
	fd := &fakeConfirmer{answer: true}

	c := New(Options{
		Client:   fc,
		Sessions: fs,
		History:  history.NewCache(),
		Banner:   banner.New(time.Hour, time.Hour), // transitions frozen for assertions
		Router:   fr,
		Confirm:  fd,
		Logger:   logging.NewTextLogger(io.Discard, slog.LevelError),
	})
	t.Cleanup(c.Close)
	return &fixture{c: c, client: fc, sessions: fs, router: fr, confirm: fd}
}

// loggedIn installs an authenticated session without going through Login.
func (f *fixture) loggedIn(t *testing.T) {
	t.Helper()
	f.sessions.stored = &session.Session{
		Token: "tok",
		User:  models.UserProfile{ID: 1, Email: "a@b.c", Name: "Alice"},
	}
	require.NoError(t, f.c.Init(context.Background()))
}

func validText() string {
	return strings.Repeat("A", 150)
}

func TestSubmit_EmptyTextShowsBannerWithoutNetwork(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	before := f.client.analyzeCalls

	require.NoError(t, f.c.SubmitForAnalysis(context.Background(), "   "))

	st := f.c.Banner().State()
	assert.Equal(t, banner.PhaseVisible, st.Phase)
	assert.Equal(t, MsgEmptyText, st.Message)
	assert.Equal(t, before, f.client.analyzeCalls)
}

func TestSubmit_ShortTextShowsBannerWithoutNetwork(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)

	require.NoError(t, f.c.SubmitForAnalysis(context.Background(), "definitely fake news"))

	st := f.c.Banner().State()
	assert.Equal(t, MsgTextTooShort, st.Message)
	assert.Equal(t, 0, f.client.analyzeCalls)
	assert.Equal(t, StatusIdle, f.c.Active().Status)
}

func TestSubmit_OverlongTextShowsBannerWithoutNetwork(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)

	require.NoError(t, f.c.SubmitForAnalysis(context.Background(), strings.Repeat("A", 2000)))

	st := f.c.Banner().State()
	assert.Contains(t, st.Message, "at most 1000")
	assert.Equal(t, 0, f.client.analyzeCalls)
}

func TestSubmit_WithoutSessionSignalsRedirect(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.c.SubmitForAnalysis(context.Background(), validText()))

	assert.Equal(t, MsgAuthRequired, f.c.Banner().State().Message)
	assert.Equal(t, 1, f.router.redirects)
	assert.Equal(t, 0, f.client.analyzeCalls)
}

func TestSubmit_SuccessScenario(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	f.client.historyResp = []models.AnalysisSummary{
		{ID: 10, Text: "AAAA...", Result: models.ResultReal, Confidence: 0.82},
	}

	var statuses []Status
	f.c.Subscribe(func() { statuses = append(statuses, f.c.Active().Status) })

	require.NoError(t, f.c.SubmitForAnalysis(context.Background(), validText()))

	// Pending entered and exited exactly once.
	pending := 0
	for _, s := range statuses {
		if s == StatusPending {
			pending++
		}
	}
	assert.Equal(t, 1, pending)
	assert.Equal(t, StatusPending, statuses[0])

	active := f.c.Active()
	assert.Equal(t, StatusSucceeded, active.Status)
	require.NotNil(t, active.Result)
	assert.Equal(t, models.ResultReal, active.Result.Result)
	assert.InDelta(t, 0.82, active.Result.Confidence, 1e-9)

	// Banner untouched on success.
	assert.Equal(t, banner.PhaseHidden, f.c.Banner().State().Phase)

	// Read-after-write refresh happened: one load at Init, one after submit.
	assert.Equal(t, 2, f.client.historyCalls)
	assert.Equal(t, 1, f.c.History().Len())
}

func TestSubmit_AuthRejectionDestroysSession(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	f.client.analyzeErr = api.ErrUnauthorized

	err := f.c.SubmitForAnalysis(context.Background(), validText())

	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, 1, f.sessions.clearCalls)
	assert.Empty(t, f.client.currentToken())
	assert.Equal(t, MsgSessionExpired, f.c.Banner().State().Message)
	assert.Equal(t, 1, f.router.redirects)

	active := f.c.Active()
	assert.Equal(t, StatusFailed, active.Status)
	assert.Nil(t, active.Result)

	_, authed := f.c.User()
	assert.False(t, authed)
}

func TestSubmit_ServiceErrorShowsServerMessage(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	f.client.analyzeErr = &api.ServiceError{StatusCode: 500, Message: "model exploded"}

	err := f.c.SubmitForAnalysis(context.Background(), validText())

	require.Error(t, err)
	assert.Equal(t, "model exploded", f.c.Banner().State().Message)
	active := f.c.Active()
	assert.Equal(t, StatusFailed, active.Status)
	assert.Nil(t, active.Result)
}

func TestSubmit_ValidationErrorShowsFixedMessage(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	f.client.analyzeErr = &api.ValidationError{Message: "Invalid request data"}

	err := f.c.SubmitForAnalysis(context.Background(), validText())

	require.Error(t, err)
	assert.Equal(t, MsgInvalidRequest, f.c.Banner().State().Message)
}

func TestSubmit_TransportErrorShowsGenericMessage(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	f.client.analyzeErr = errors.New("connection refused")

	err := f.c.SubmitForAnalysis(context.Background(), validText())

	require.Error(t, err)
	assert.Equal(t, MsgAnalyzeFailed, f.c.Banner().State().Message)
	assert.Equal(t, StatusFailed, f.c.Active().Status)
}

func TestLoadHistory_FailureLeavesEmptyListAndNoBanner(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	f.c.History().ReplaceAll([]models.AnalysisSummary{{ID: 1}})
	f.client.historyErr = errors.New("boom")

	require.NoError(t, f.c.LoadHistory(context.Background()))

	assert.Equal(t, 0, f.c.History().Len())
	assert.Equal(t, banner.PhaseHidden, f.c.Banner().State().Phase)
}

func seedHistory(f *fixture) {
	f.client.historyResp = []models.AnalysisSummary{
		{ID: 7, Text: "seven...", Result: models.ResultFake, Confidence: 0.9},
		{ID: 8, Text: "eight...", Result: models.ResultReal, Confidence: 0.6},
	}
	_ = f.c.LoadHistory(context.Background())
}

func TestToggleExpand_FetchesOnceAndCollapsesWithoutNetwork(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	seedHistory(f)
	f.client.getResp = &models.AnalysisFull{ID: 7, Text: "full seven text", Result: models.ResultFake, Confidence: 0.9}

	require.NoError(t, f.c.ToggleExpand(context.Background(), 7))
	assert.Equal(t, 1, f.client.getCalls)

	id, open := f.c.History().ExpandedID()
	assert.True(t, open)
	assert.Equal(t, int64(7), id)

	active := f.c.Active()
	assert.Equal(t, "full seven text", active.Text)
	require.NotNil(t, active.Result)
	assert.Equal(t, models.ResultFake, active.Result.Result)

	full, ok := f.c.History().Full(7)
	require.True(t, ok)
	assert.Equal(t, "full seven text", full.Text)

	// Second toggle collapses with no further network traffic.
	require.NoError(t, f.c.ToggleExpand(context.Background(), 7))
	assert.Equal(t, 1, f.client.getCalls)
	_, open = f.c.History().ExpandedID()
	assert.False(t, open)
}

func TestToggleExpand_ReexpandReusesCachedRecord(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	seedHistory(f)
	f.client.getResp = &models.AnalysisFull{ID: 7, Text: "full seven text", Result: models.ResultFake, Confidence: 0.9}

	require.NoError(t, f.c.ToggleExpand(context.Background(), 7))
	require.NoError(t, f.c.ToggleExpand(context.Background(), 7)) // collapse
	require.NoError(t, f.c.ToggleExpand(context.Background(), 7)) // expand again

	assert.Equal(t, 1, f.client.getCalls)
	assert.Equal(t, "full seven text", f.c.Active().Text)
}

func TestToggleExpand_FetchFailureKeepsDisplayAndExpansion(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	seedHistory(f)

	// Establish a display first.
	f.client.getResp = &models.AnalysisFull{ID: 7, Text: "full seven text", Result: models.ResultFake}
	require.NoError(t, f.c.ToggleExpand(context.Background(), 7))

	f.client.getErr = &api.ServiceError{StatusCode: 500, Message: "boom"}
	err := f.c.ToggleExpand(context.Background(), 8)

	require.Error(t, err)
	// Display untouched, expansion toggled, nothing surfaced.
	assert.Equal(t, "full seven text", f.c.Active().Text)
	id, open := f.c.History().ExpandedID()
	assert.True(t, open)
	assert.Equal(t, int64(8), id)
	assert.Equal(t, banner.PhaseHidden, f.c.Banner().State().Phase)
}

func TestToggleExpand_AuthRejectionDestroysSession(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	seedHistory(f)
	f.client.getErr = api.ErrUnauthorized

	err := f.c.ToggleExpand(context.Background(), 7)

	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, 1, f.sessions.clearCalls)
	assert.Equal(t, MsgSessionExpired, f.c.Banner().State().Message)
	assert.Equal(t, 1, f.router.redirects)
}

func TestDeleteEntry_DeclinedConfirmationDoesNothing(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	seedHistory(f)
	f.confirm.answer = false

	require.NoError(t, f.c.DeleteEntry(context.Background(), 7))

	assert.Equal(t, 0, f.client.deleteCalls)
	assert.Equal(t, 2, f.c.History().Len())
	require.Len(t, f.confirm.prompts, 1)
	assert.Equal(t, MsgDeleteConfirm, f.confirm.prompts[0])
}

func TestDeleteEntry_ExpandedEntryClearsDisplay(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	seedHistory(f)
	f.client.getResp = &models.AnalysisFull{ID: 7, Text: "full seven text", Result: models.ResultFake}
	require.NoError(t, f.c.ToggleExpand(context.Background(), 7))

	require.NoError(t, f.c.DeleteEntry(context.Background(), 7))

	assert.Equal(t, 1, f.c.History().Len())
	_, open := f.c.History().ExpandedID()
	assert.False(t, open)

	active := f.c.Active()
	assert.Empty(t, active.Text)
	assert.Nil(t, active.Result)
	assert.Equal(t, StatusIdle, active.Status)
}

func TestDeleteEntry_NonExpandedLeavesDisplayUntouched(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	seedHistory(f)
	f.client.getResp = &models.AnalysisFull{ID: 7, Text: "full seven text", Result: models.ResultFake}
	require.NoError(t, f.c.ToggleExpand(context.Background(), 7))

	require.NoError(t, f.c.DeleteEntry(context.Background(), 8))

	assert.Equal(t, 1, f.c.History().Len())
	assert.Equal(t, "full seven text", f.c.Active().Text)
	id, open := f.c.History().ExpandedID()
	assert.True(t, open)
	assert.Equal(t, int64(7), id)
}

func TestDeleteEntry_ServerSideAbsenceStillRemovesLocally(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	seedHistory(f)
	f.client.deleteErr = api.ErrNotFound

	require.NoError(t, f.c.DeleteEntry(context.Background(), 7))

	assert.Equal(t, 1, f.c.History().Len())
}

func TestDeleteEntry_FailureLeavesEverythingUnchanged(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	seedHistory(f)
	f.client.deleteErr = &api.ServiceError{StatusCode: 500, Message: "db locked"}

	err := f.c.DeleteEntry(context.Background(), 7)

	require.Error(t, err)
	assert.Equal(t, 2, f.c.History().Len())
	assert.Equal(t, banner.PhaseHidden, f.c.Banner().State().Phase)
}

func TestInit_WithStoredSessionLoadsHistory(t *testing.T) {
	f := newFixture(t)
	f.sessions.stored = &session.Session{
		Token: "tok-stored",
		User:  models.UserProfile{ID: 5, Name: "Bob"},
	}
	f.client.historyResp = []models.AnalysisSummary{{ID: 1, Text: "a..."}}

	require.NoError(t, f.c.Init(context.Background()))

	assert.Equal(t, "tok-stored", f.client.currentToken())
	user, authed := f.c.User()
	require.True(t, authed)
	assert.Equal(t, "Bob", user.Name)
	assert.Equal(t, 1, f.c.History().Len())
}

func TestInit_WithoutSessionStaysLoggedOut(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.c.Init(context.Background()))

	_, authed := f.c.User()
	assert.False(t, authed)
	assert.Equal(t, 0, f.client.historyCalls)
}

func TestLogin_PersistsSessionAndLoadsHistory(t *testing.T) {
	f := newFixture(t)
	f.client.loginToken = "tok-new"
	f.client.loginUser = &models.UserProfile{ID: 2, Email: "a@b.c", Name: "Alice"}
	f.client.historyResp = []models.AnalysisSummary{{ID: 1}}

	require.NoError(t, f.c.Login(context.Background(), "a@b.c", "secret"))

	assert.Equal(t, "tok-new", f.client.currentToken())
	assert.Equal(t, 1, f.sessions.setCalls)
	require.NotNil(t, f.sessions.stored)
	assert.Equal(t, "tok-new", f.sessions.stored.Token)

	user, authed := f.c.User()
	require.True(t, authed)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, 1, f.c.History().Len())
}

func TestLogin_FailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.client.loginErr = api.ErrUnauthorized

	err := f.c.Login(context.Background(), "a@b.c", "wrong")

	assert.ErrorIs(t, err, api.ErrUnauthorized)
	_, authed := f.c.User()
	assert.False(t, authed)
}

func TestLogout_SafeWithoutSession(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.c.Logout(context.Background()))

	assert.Equal(t, 1, f.sessions.clearCalls)
	assert.Equal(t, 1, f.router.redirects)
}

func TestLogout_ClearsEverything(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	seedHistory(f)
	require.NoError(t, f.c.SubmitForAnalysis(context.Background(), validText()))

	require.NoError(t, f.c.Logout(context.Background()))

	assert.Empty(t, f.client.currentToken())
	assert.Nil(t, f.sessions.stored)
	_, authed := f.c.User()
	assert.False(t, authed)
	assert.Equal(t, 0, f.c.History().Len())
	assert.Equal(t, StatusIdle, f.c.Active().Status)
	assert.Equal(t, 1, f.router.redirects)
}
