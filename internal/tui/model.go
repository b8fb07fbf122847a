// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/retype/internal/model"
	"github.com/verte-zerg/retype/internal/session"
	"github.com/verte-zerg/retype/internal/stats"
	"github.com/verte-zerg/retype/internal/store"
	"github.com/verte-zerg/retype/internal/theme"
)

// RepickFunc selects a new practice file for a restart. It returns the
// file path and the excerpt text.
type RepickFunc func() (string, string, error)

// Model implements the Bubble Tea typing UI.
type Model struct {
	cfg      model.Config
	th       theme.Theme
	store    *store.Store
	sess     *session.Session
	timer    timer.Model
	filePath string
	repick   RepickFunc

	width  int
	height int

	limitSec   int
	wpmSamples []float64
	accSamples []float64

	saved  bool
	status string
}

// NewModel constructs a typing TUI model. store may be nil; history
// recording is then skipped.
func NewModel(cfg model.Config, th theme.Theme, st *store.Store, sess *session.Session, filePath string, repick RepickFunc) *Model {
	return &Model{
		cfg:      cfg,
		th:       th,
		store:    st,
		sess:     sess,
		filePath: filePath,
		repick:   repick,
		limitSec: cfg.Time,
		timer:    timer.NewWithInterval(sess.Limit(), time.Second),
	}
}

// Init implements tea.Model. The session clock starts as soon as the
// session screen appears, not on the first keystroke.
func (m *Model) Init() tea.Cmd {
	m.sess.Start()
	return m.timer.Init()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case timer.TickMsg, timer.StartStopMsg, timer.TimeoutMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		if m.sess.State() == session.Running {
			m.sess.Tick()
			if _, ok := msg.(timer.TimeoutMsg); ok {
				m.sess.Finish()
			}
			if m.sess.State() == session.Running {
				m.sampleProgress()
			} else {
				m.recordSession()
			}
		}
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sess.State() == session.Finished {
		switch msg.String() {
		case "r":
			return m, m.restart()
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		// Quitting with nothing typed aborts without a score; once
		// input exists the quit keeps the partial score.
		if len(m.sess.Input()) == 0 {
			return m, tea.Quit
		}
		m.sess.Finish()
		if m.sess.State() == session.Finished {
			m.recordSession()
			return m, m.timer.Stop()
		}
		return m, tea.Quit
	case tea.KeyRight:
		return m, m.cycleLimit(1)
	case tea.KeyLeft:
		return m, m.cycleLimit(-1)
	case tea.KeyEnter:
		return m, m.typeRune('\n')
	case tea.KeyBackspace, tea.KeyDelete:
		m.sess.Backspace()
		return m, nil
	case tea.KeySpace:
		return m, m.typeRune(' ')
	case tea.KeyRunes:
		var cmds []tea.Cmd
		for _, r := range msg.Runes {
			if cmd := m.typeRune(r); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)
	default:
		return m, nil
	}
}

func (m *Model) typeRune(r rune) tea.Cmd {
	m.sess.Type(r)
	if m.sess.State() == session.Finished {
		m.recordSession()
		return m.timer.Stop()
	}
	return nil
}

func (m *Model) restart() tea.Cmd {
	path, text, err := m.repick()
	if err != nil {
		m.status = fmt.Sprintf("cannot start a new session: %v", err)
		return nil
	}
	return m.resetSession(path, text)
}

// cycleLimit adjusts the time limit before the first keystroke,
// cycling through the selectable limits. The clock restarts with the
// new limit.
func (m *Model) cycleLimit(dir int) tea.Cmd {
	if len(m.sess.Input()) > 0 {
		return nil
	}
	if dir > 0 {
		m.limitSec = nextLimit(m.limitSec, m.cfg.Time)
	} else {
		m.limitSec = prevLimit(m.limitSec, m.cfg.Time)
	}
	return m.resetSession(m.filePath, string(m.sess.Target()))
}

func (m *Model) resetSession(path, text string) tea.Cmd {
	sess, err := session.New(text, time.Duration(m.limitSec)*time.Second)
	if err != nil {
		m.status = fmt.Sprintf("cannot start a new session: %v", err)
		return nil
	}
	m.sess = sess
	m.filePath = path
	m.saved = false
	m.status = ""
	m.wpmSamples = nil
	m.accSamples = nil
	m.timer = timer.NewWithInterval(sess.Limit(), time.Second)
	m.sess.Start()
	return m.timer.Init()
}

func (m *Model) sampleProgress() {
	score := m.sess.Score()
	m.wpmSamples = append(m.wpmSamples, score.WPM)
	m.accSamples = append(m.accSamples, score.Accuracy*100)
}

func (m *Model) recordSession() {
	if m.saved {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}
	score := m.sess.Score()
	rec := model.SessionRecord{
		StartedAt:    m.sess.StartedAt(),
		EndedAt:      m.sess.FinishedAt(),
		FilePath:     m.filePath,
		Extension:    strings.TrimPrefix(strings.ToLower(filepath.Ext(m.filePath)), "."),
		TargetLen:    score.TargetLen,
		InputLen:     score.InputLen,
		Keystrokes:   score.Keystrokes,
		Correct:      score.Correct,
		DurationMs:   score.Elapsed.Milliseconds(),
		TimeLimitSec: m.limitSec,
	}
	if _, err := m.store.InsertSession(context.Background(), rec); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.sess.State() == session.Finished {
		return m.finishView()
	}
	return m.sessionView()
}

func (m *Model) sessionView() string {
	header := m.th.Header.Render(m.filePath) + "  " + m.th.Accent.Render(formatCountdown(m.sess.Remaining()))

	target := m.sess.Target()
	input := m.sess.Input()
	cursor := -1
	if len(input) < len(target) {
		cursor = len(input)
	}
	lineNoWidth := 5
	maxWidth := 0
	if m.width > 0 {
		maxWidth = m.width - lineNoWidth
	}
	lines := renderLines(buildStyledRunes(target, input, cursor, m.th), maxWidth)

	display := len(lines)
	if m.height > 4 && display > m.height-4 {
		display = m.height - 4
	}
	start, end := lineWindow(len(lines), currentLine(input), display)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	for i := start; i < end; i++ {
		b.WriteString(m.th.LineNo.Render(fmt.Sprintf("%3d  ", i+1)))
		b.WriteString(lines[i])
		b.WriteString("\n")
	}
	b.WriteString("\n")
	hint := "esc finishes early"
	if len(input) == 0 {
		hint = "←/→ time limit  ·  esc quits"
	}
	b.WriteString(m.th.Footer.Render(fmt.Sprintf("%d%%  ·  %s", m.progress(), hint)))
	return b.String()
}

func (m *Model) finishView() string {
	score := m.sess.Score()
	var b strings.Builder
	b.WriteString(m.th.Accent.Render("Session finished"))
	b.WriteString("\n\n")
	b.WriteString(m.th.Header.Render(m.filePath))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("WPM        %.1f\n", score.WPM))
	b.WriteString(fmt.Sprintf("Accuracy   %.1f%%\n", score.Accuracy*100))
	b.WriteString(fmt.Sprintf("Correct    %d/%d\n", score.Correct, score.TargetLen))
	b.WriteString(fmt.Sprintf("Keystrokes %d\n", score.Keystrokes))
	b.WriteString(fmt.Sprintf("Time       %s\n", score.Elapsed.Round(time.Second)))
	if len(m.wpmSamples) > 1 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("WPM curve  %s\n", stats.Sparkline(m.wpmSamples)))
		b.WriteString(fmt.Sprintf("Acc curve  %s\n", stats.Sparkline(m.accSamples)))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.th.Incorrect.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.th.Footer.Render("r new session  ·  q quit"))
	return b.String()
}

func (m *Model) progress() int {
	target := m.sess.Target()
	if len(target) == 0 {
		return 0
	}
	return int(float64(len(m.sess.Input())) / float64(len(target)) * 100)
}

func formatCountdown(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
