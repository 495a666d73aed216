package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mediaunmasked/media-unmasked/internal/analysis"
	"github.com/mediaunmasked/media-unmasked/internal/config"
	"github.com/mediaunmasked/media-unmasked/internal/report"
	"github.com/mediaunmasked/media-unmasked/internal/score"
	"github.com/mediaunmasked/media-unmasked/internal/source"
)

// ContactURL is where users can ask for a news source to be added
const ContactURL = "https://wozwize.com/contact"

// defaultStepInterval paces the progress steps while a request is in flight
const defaultStepInterval = 2 * time.Second

// analysisSteps are shown one after another while waiting; the last one
// holds until the service answers
var analysisSteps = []string{
	"Analyzing headline vs content for contradictions...",
	"Analyzing for evidence...",
	"Analyzing for manipulative language...",
	"Analyzing for bias...",
}

type State int

const (
	StateInput State = iota
	StateAnalyzing
	StateResult
	StateBreakdown
	StateAdvisory
	StateError
)

func (s State) String() string {
	switch s {
	case StateInput:
		return "Input"
	case StateAnalyzing:
		return "Analyzing"
	case StateResult:
		return "Result"
	case StateBreakdown:
		return "Breakdown"
	case StateAdvisory:
		return "Advisory"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Analyzer runs one analysis. *analysis.Client satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, articleURL string, useAI bool) (*analysis.Response, error)
}

type Model struct {
	state  State
	width  int
	height int
	styles Styles
	keys   KeyMap

	themeIndex int
	showHelp   bool

	cfg      *config.Config
	analyzer Analyzer
	checker  *source.Checker
	logger   *slog.Logger

	input        textinput.Model
	exampleIndex int
	useAI        bool

	spinner      spinner.Model
	progress     progress.Model
	step         int
	stepInterval time.Duration

	// the in-flight request; a new submission replaces both
	requestID string
	cancel    context.CancelFunc

	articleURL string
	response   *analysis.Response
	scores     score.Scores
	lens       score.Lens
	viewport   viewport.Model

	advisoryDomain string
	errMessage     string
	statusMessage  string

	copyToClipboard func(string) error
	openBrowser     func(string) error
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithClipboard replaces the system clipboard writer
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) {
		m.copyToClipboard = fn
	}
}

// WithBrowser replaces the function that opens URLs
func WithBrowser(fn func(string) error) Option {
	return func(m *Model) {
		m.openBrowser = fn
	}
}

// WithStepInterval sets how long each progress step is shown
func WithStepInterval(d time.Duration) Option {
	return func(m *Model) {
		m.stepInterval = d
	}
}

func NewModel(cfg *config.Config, analyzer Analyzer, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	themeIdx := themeIndex(cfg.Theme)
	theme := Themes[GetThemeNames()[themeIdx]]

	ti := textinput.New()
	ti.Placeholder = "https://www.bbc.com/news/..."
	ti.Prompt = "URL › "
	ti.CharLimit = 2048
	ti.Width = 60
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Primary))

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
	)
	p.Width = 50

	m := &Model{
		state:           StateInput,
		styles:          NewStyles(theme),
		keys:            DefaultKeyMap(),
		themeIndex:      themeIdx,
		cfg:             cfg,
		analyzer:        analyzer,
		checker:         source.NewChecker(cfg.ExtraDomains...),
		logger:          slog.New(slog.DiscardHandler),
		input:           ti,
		exampleIndex:    -1,
		useAI:           cfg.UseAI,
		spinner:         s,
		progress:        p,
		stepInterval:    defaultStepInterval,
		viewport:        viewport.New(80, 20),
		copyToClipboard: clipboard.WriteAll,
		openBrowser:     openURL,
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current screen
func (m *Model) State() State {
	return m.state
}

func (m *Model) cycleTheme() {
	themeNames := GetThemeNames()
	m.themeIndex = (m.themeIndex + 1) % len(themeNames)
	newTheme := themeNames[m.themeIndex]
	m.styles = NewStyles(Themes[newTheme])
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(Themes[newTheme].Primary))
	m.refreshArticle()

	if m.cfg != nil {
		m.cfg.Theme = newTheme
		if err := m.cfg.Save(); err != nil {
			m.logger.Warn("failed to save theme", "error", err)
		}
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SubmitURLMsg submits a URL as if it had been typed and entered
type SubmitURLMsg struct {
	URL string
}

// AnalysisFinishedMsg carries the outcome of one request
type AnalysisFinishedMsg struct {
	RequestID string
	Response  *analysis.Response
	Err       error
}

type stepMsg struct {
	requestID string
	step      int
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(60, max(10, msg.Width-16))
		m.input.Width = min(80, max(20, msg.Width-20))
		m.resizeViewport()

	case spinner.TickMsg:
		if m.state != StateAnalyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case SubmitURLMsg:
		m.input.SetValue(msg.URL)
		return m, m.submit()

	case stepMsg:
		return m, m.advanceStep(msg)

	case AnalysisFinishedMsg:
		return m, m.finishAnalysis(msg)

	default:
		if m.state == StateInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keyMatches(msg, m.keys.Quit) {
		m.cancelRequest()
		return m, tea.Quit
	}

	switch m.state {
	case StateError:
		return m.handleErrorKeys(msg)
	case StateAdvisory:
		return m.handleAdvisoryKeys(msg)
	case StateInput:
		return m.handleInputKeys(msg)
	case StateAnalyzing:
		return m.handleAnalyzingKeys(msg)
	case StateBreakdown:
		return m.handleBreakdownKeys(msg)
	case StateResult:
		return m.handleResultKeys(msg)
	}

	return m, nil
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Submit):
		return m, m.submit()
	case keyMatches(msg, m.keys.Examples):
		m.exampleIndex = (m.exampleIndex + 1) % len(source.ExampleURLs)
		m.input.SetValue(source.ExampleURLs[m.exampleIndex])
		m.input.CursorEnd()
		return m, nil
	case keyMatches(msg, m.keys.ToggleAI):
		m.useAI = !m.useAI
		return m, nil
	case keyMatches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	}

	m.statusMessage = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleAnalyzingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keyMatches(msg, m.keys.Back) {
		m.logger.Info("analysis cancelled", "request_id", m.requestID, "url", m.articleURL)
		m.cancelRequest()
		m.statusMessage = "Analysis cancelled"
		m.state = StateInput
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case keyMatches(msg, m.keys.Help):
		m.showHelp = true
	case keyMatches(msg, m.keys.Lens1):
		m.setLens(score.LensHeadline)
	case keyMatches(msg, m.keys.Lens2):
		m.setLens(score.LensEvidence)
	case keyMatches(msg, m.keys.Lens3):
		m.setLens(score.LensManipulation)
	case keyMatches(msg, m.keys.Lens4):
		m.setLens(score.LensBias)
	case keyMatches(msg, m.keys.ClearLens):
		m.setLens(score.LensNone)
	case keyMatches(msg, m.keys.Breakdown):
		if m.response.HasMediaScore() {
			m.state = StateBreakdown
		}
	case keyMatches(msg, m.keys.Copy):
		if err := m.copyToClipboard(report.Summary(m.articleURL, m.response)); err != nil {
			m.logger.Warn("clipboard write failed", "error", err)
			m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
		} else {
			m.statusMessage = "Summary copied to clipboard"
		}
	case keyMatches(msg, m.keys.Open):
		if err := m.openBrowser(m.articleURL); err != nil {
			m.logger.Warn("failed to open browser", "url", m.articleURL, "error", err)
			m.statusMessage = fmt.Sprintf("Could not open browser: %v", err)
		}
	case keyMatches(msg, m.keys.New):
		return m, m.reset()
	case isScrollKey(msg, m.keys):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleBreakdownKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Breakdown), keyMatches(msg, m.keys.Back), msg.Type == tea.KeyEnter:
		m.state = StateResult
	}
	return m, nil
}

func (m *Model) handleAdvisoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Contact):
		if err := m.openBrowser(ContactURL); err != nil {
			m.logger.Warn("failed to open browser", "url", ContactURL, "error", err)
		}
		m.state = StateInput
		return m, m.input.Focus()
	case keyMatches(msg, m.keys.Back), msg.Type == tea.KeyEnter:
		m.state = StateInput
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *Model) handleErrorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.state = StateInput
	m.errMessage = ""
	return m, m.input.Focus()
}

// submit validates the typed URL and starts an analysis. Unrecognized
// sources open the advisory instead of calling the service.
func (m *Model) submit() tea.Cmd {
	articleURL := source.Normalize(m.input.Value())
	if articleURL == "" {
		m.statusMessage = "Enter the URL of a news article"
		return nil
	}
	m.statusMessage = ""

	if m.cfg.ValidateSources {
		if err := m.checker.Check(articleURL); err != nil {
			var unrec *source.UnrecognizedSourceError
			if errors.As(err, &unrec) {
				m.logger.Info("unrecognized news source", "domain", unrec.Domain)
				m.advisoryDomain = unrec.Domain
				m.state = StateAdvisory
				return nil
			}
			m.errMessage = err.Error()
			m.state = StateError
			return nil
		}
	}

	if m.analyzer == nil {
		m.errMessage = analysis.GenericMessage
		m.state = StateError
		return nil
	}

	return m.startAnalysis(articleURL)
}

func (m *Model) startAnalysis(articleURL string) tea.Cmd {
	m.cancelRequest()

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	m.requestID = id
	m.cancel = cancel
	m.articleURL = articleURL
	m.response = nil
	m.step = 0
	m.state = StateAnalyzing
	m.input.Blur()

	m.logger.Info("analysis started", "request_id", id, "url", articleURL, "use_ai", m.useAI)

	analyzer := m.analyzer
	useAI := m.useAI
	run := func() tea.Msg {
		resp, err := analyzer.Analyze(ctx, articleURL, useAI)
		return AnalysisFinishedMsg{RequestID: id, Response: resp, Err: err}
	}

	return tea.Batch(
		run,
		m.spinner.Tick,
		m.progress.SetPercent(stepPercent(0)),
		m.nextStep(id, 1),
	)
}

func (m *Model) nextStep(id string, step int) tea.Cmd {
	if step >= len(analysisSteps) {
		return nil
	}
	return tea.Tick(m.stepInterval, func(time.Time) tea.Msg {
		return stepMsg{requestID: id, step: step}
	})
}

func (m *Model) advanceStep(msg stepMsg) tea.Cmd {
	if msg.requestID != m.requestID || m.state != StateAnalyzing {
		return nil
	}
	m.step = msg.step
	return tea.Batch(
		m.progress.SetPercent(stepPercent(msg.step)),
		m.nextStep(msg.requestID, msg.step+1),
	)
}

func stepPercent(step int) float64 {
	return float64(step+1) / float64(len(analysisSteps))
}

func (m *Model) finishAnalysis(msg AnalysisFinishedMsg) tea.Cmd {
	if msg.RequestID != m.requestID || m.state != StateAnalyzing {
		m.logger.Debug("ignoring stale analysis result", "request_id", msg.RequestID)
		return nil
	}
	m.releaseRequest()

	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return nil
		}
		m.logger.Warn("analysis failed", "url", m.articleURL, "error", msg.Err)
		m.errMessage = analysis.Message(msg.Err)
		m.state = StateError
		return nil
	}
	if msg.Response == nil {
		m.errMessage = analysis.MalformedMessage
		m.state = StateError
		return nil
	}

	m.logger.Info("analysis finished", "url", m.articleURL, "has_score", msg.Response.HasMediaScore())
	m.response = msg.Response
	m.scores = score.FromMediaScore(msg.Response.MediaScore)
	m.lens = score.LensNone
	m.showHelp = false
	m.state = StateResult
	m.resizeViewport()
	m.refreshArticle()
	m.viewport.GotoTop()
	return nil
}

// cancelRequest abandons the in-flight request, if any
func (m *Model) cancelRequest() {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.requestID = ""
}

// releaseRequest frees the context of a completed request
func (m *Model) releaseRequest() {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
}

// reset returns to the input screen for a new analysis
func (m *Model) reset() tea.Cmd {
	m.cancelRequest()
	m.response = nil
	m.scores = score.Scores{}
	m.lens = score.LensNone
	m.showHelp = false
	m.statusMessage = ""
	m.state = StateInput
	m.input.SetValue("")
	return m.input.Focus()
}

func (m *Model) setLens(l score.Lens) {
	m.lens = l
	m.refreshArticle()
}

func isScrollKey(msg tea.KeyMsg, k KeyMap) bool {
	for _, b := range []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.HalfUp, k.HalfDown} {
		if keyMatches(msg, b) {
			return true
		}
	}
	return false
}

func keyMatches(msg tea.KeyMsg, target key.Binding) bool {
	for _, k := range target.Keys() {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func openURL(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		cmd = "open"
		args = []string{url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}
	return exec.Command(cmd, args...).Start()
}
