package ui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"tcreview/internal/api"
	"tcreview/internal/domain"
	"tcreview/internal/review"
	"tcreview/internal/ui/theme"
)

const (
	minViewportWidth  = 20
	minViewportHeight = 5
	minListWidth      = 40
	progressBarWidth  = 36
)

// Screen selects the top-level view.
type Screen int

const (
	ScreenReview Screen = iota
	ScreenKnowledge
)

// FocusArea is the pane receiving navigation keys on the review screen.
type FocusArea int

const (
	FocusList FocusArea = iota
	FocusDetails
)

// Config configures the UI application.
type Config struct {
	Client          api.Client
	BatchID         int
	PageSize        int
	ToastDuration   time.Duration
	CloseDelay      time.Duration
	ExportDir       string
	UploadCaseCount int
	OutputFormat    string
	Theme           string
	Version         string
	StartScreen     Screen
	// SaveTheme persists a theme chosen with the theme key. Optional.
	SaveTheme func(string) error
}

// SessionInfo describes the review session for the exit summary.
type SessionInfo struct {
	StartTime    time.Time
	BatchID      int
	BatchName    string
	InitialStats domain.Stats
	// Loaded is false when the batch never loaded, in which case the stats
	// are meaningless.
	Loaded bool
}

// App implements the Bubble Tea model for the review client.
type App struct {
	client  api.Client
	syncer  *review.Syncer
	session *review.Session
	keys    KeyMap

	screen      Screen
	focus       FocusArea
	cursor      int
	ShowDetails bool
	showSteps   bool
	showExpect  bool
	showHelp    bool
	viewport    viewport.Model
	detailID    int
	markdown    markdownCache

	searchInput textinput.Model
	searching   bool

	toaster     *Toaster
	dialogs     *Dialogs
	loader      Loader
	setProgress func(float64) tea.Cmd
	bulkUpdates <-chan bulkProgressMsg
	bulkRunning bool

	knowledge knowledgeState

	width  int
	height int
	ready  bool

	toastDuration   time.Duration
	exportDir       string
	uploadCaseCount int
	outputFormat    string
	version         string
	saveTheme       func(string) error

	startTime    time.Time
	initialStats domain.Stats
	statsCapture bool
}

// NewApp builds the application. The batch, if any, is fetched from Init.
func NewApp(cfg Config) (*App, error) {
	if cfg.Client == nil {
		return nil, errors.New("ui: client is required")
	}
	InitZones()
	if cfg.ToastDuration == 0 {
		cfg.ToastDuration = 3 * time.Second
	}
	if cfg.UploadCaseCount <= 0 {
		cfg.UploadCaseCount = 100
	}
	if strings.TrimSpace(cfg.Theme) != "" {
		theme.SetTheme(cfg.Theme)
	}

	ti := textinput.New()
	ti.Placeholder = "Search title or description..."
	ti.Prompt = "/ "
	ti.CharLimit = 200

	return &App{
		client:          cfg.Client,
		syncer:          review.NewSyncer(cfg.Client),
		session:         review.NewSession(cfg.BatchID, cfg.PageSize),
		keys:            DefaultKeyMap(),
		screen:          cfg.StartScreen,
		searchInput:     ti,
		toaster:         NewToaster(),
		dialogs:         NewDialogs(cfg.CloseDelay),
		loader:          NewLoader(),
		viewport:        viewport.New(minViewportWidth, minViewportHeight),
		toastDuration:   cfg.ToastDuration,
		exportDir:       cfg.ExportDir,
		uploadCaseCount: cfg.UploadCaseCount,
		outputFormat:    cfg.OutputFormat,
		version:         cfg.Version,
		saveTheme:       cfg.SaveTheme,
		startTime:       time.Now(),
	}, nil
}

// Init implements tea.Model.
func (m *App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.session.BatchID() > 0 {
		cmds = append(cmds, m.loader.Show("Loading test cases..."), m.fetchBatchCmd(m.session.BatchID()))
	}
	if m.screen == ScreenKnowledge {
		cmds = append(cmds, m.openKnowledge())
	}
	return tea.Batch(cmds...)
}

// Session exposes the review session, mainly for tests.
func (m *App) Session() *review.Session { return m.session }

// Stats returns the current review counts of the open batch.
func (m *App) Stats() domain.Stats { return m.session.Stats() }

// SessionInfo returns the data the exit summary compares against.
func (m *App) SessionInfo() SessionInfo {
	return SessionInfo{
		StartTime:    m.startTime,
		BatchID:      m.session.BatchID(),
		BatchName:    m.session.Batch().Name,
		InitialStats: m.initialStats,
		Loaded:       m.statsCapture,
	}
}

// notify shows a toast for the configured duration.
func (m *App) notify(message string, severity Severity) tea.Cmd {
	_, cmd := m.toaster.Show(message, severity, m.toastDuration)
	return cmd
}

func (m *App) notifyError(prefix string, err error) tea.Cmd {
	return m.notify(errorText(prefix, err), SeverityError)
}

// openBatch switches the session to another batch and fetches it. The list
// controls and selection start fresh.
func (m *App) openBatch(batchID int) tea.Cmd {
	m.session = review.NewSession(batchID, m.session.PageSize())
	m.cursor = 0
	m.detailID = 0
	m.statsCapture = false
	m.screen = ScreenReview
	m.searchInput.SetValue("")
	return tea.Batch(m.loader.Show("Loading test cases..."), m.fetchBatchCmd(batchID))
}

// currentRow returns the record under the cursor on the current page.
func (m *App) currentRow() (domain.TestCase, bool) {
	rows := m.session.PageRecords()
	if len(rows) == 0 {
		return domain.TestCase{}, false
	}
	m.clampCursor()
	return rows[m.cursor], true
}

func (m *App) clampCursor() {
	n := len(m.session.PageRecords())
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(m.cursor, n-1))
}
