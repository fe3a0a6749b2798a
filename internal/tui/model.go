// Package tui provides the Bubble Tea scoreboard interface.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/yachtscore/internal/board"
	"github.com/verte-zerg/yachtscore/internal/logging"
	"github.com/verte-zerg/yachtscore/internal/players"
	"github.com/verte-zerg/yachtscore/internal/savefile"
	"github.com/verte-zerg/yachtscore/internal/score"
	"github.com/verte-zerg/yachtscore/internal/stats"
)

// HelpHint is always shown in the footer.
const HelpHint = "Press ? to show the help message."

// Autosaver persists a snapshot after every change.
type Autosaver interface {
	SaveRegistry(ctx context.Context, entries []players.Entry) error
}

// Options configure the board.
type Options struct {
	// SavePath is the target of ctrl+s and the default for ctrl+o.
	SavePath  string
	Sort      stats.SortMode
	ASCII     bool
	Autosaver Autosaver
	Logger    *slog.Logger
}

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogAddPlayer
	dialogDeletePlayer
	dialogScoreValue
	dialogClaim
	dialogScorePlayer
	dialogSavePath
	dialogLoadPath
	dialogMessage
)

type savedMsg struct {
	path  string
	count int
	err   error
}

type loadedMsg struct {
	path string
	reg  *players.Registry
	err  error
}

type autosavedMsg struct {
	err error
}

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)
)

// Model implements the Bubble Tea scoreboard UI.
type Model struct {
	reg  *players.Registry
	opts Options
	log  *slog.Logger

	keys     keyMap
	help     help.Model
	showHelp bool

	width  int
	height int

	dialog        dialogKind
	input         textinput.Model
	pending       score.Input
	messageTitle  string
	messageBody   string
	status        string
	statusIsError bool

	autosaves *autosaveQueue
}

// autosaveQueue orders autosave commands. Commands run on their own
// goroutines, so a snapshot older than the last one written is dropped.
type autosaveQueue struct {
	mu    sync.Mutex
	next  uint64
	saved uint64
}

// ticket is called from Update only.
func (q *autosaveQueue) ticket() uint64 {
	q.next++
	return q.next
}

func (q *autosaveQueue) save(seq uint64, fn func() error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if seq <= q.saved {
		return nil
	}
	q.saved = seq
	return fn()
}

// NewModel constructs a board UI over reg. The model mutates reg in place.
func NewModel(reg *players.Registry, opts Options) *Model {
	h := help.New()
	h.ShowAll = true
	return &Model{
		reg:       reg,
		opts:      opts,
		log:       logging.OrDiscard(opts.Logger),
		keys:      newKeyMap(),
		help:      h,
		input:     newDialogInput(),
		autosaves: &autosaveQueue{},
	}
}

func newDialogInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.log.Error("save failed", "path", msg.path, "error", msg.err)
			m.setError(fmt.Sprintf("Save failed: %v", msg.err))
			return m, nil
		}
		m.log.Info("saved", "path", msg.path, "players", msg.count)
		m.setStatus(fmt.Sprintf("Saved %d players to %s", msg.count, msg.path))
		return m, nil
	case loadedMsg:
		if msg.err != nil {
			m.log.Error("load failed", "path", msg.path, "error", msg.err)
			m.setError(fmt.Sprintf("Load failed: %v", msg.err))
			return m, nil
		}
		m.reg.Replace(msg.reg)
		m.opts.SavePath = msg.path
		m.log.Info("loaded", "path", msg.path, "players", m.reg.Len())
		m.setStatus(fmt.Sprintf("Loaded %d players from %s", m.reg.Len(), msg.path))
		return m, m.autosaveCmd()
	case autosavedMsg:
		if msg.err != nil {
			m.log.Error("autosave failed", "error", msg.err)
			m.setError(fmt.Sprintf("Autosave failed: %v", msg.err))
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.dialog != dialogNone {
			return m.updateDialog(msg)
		}
		return m.updateBoard(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.reg.ClearAllScores()
		m.log.Info("scores cleared")
		m.setStatus("All scores cleared")
		return m, m.autosaveCmd()
	case key.Matches(msg, m.keys.Add):
		return m, m.openInput(dialogAddPlayer, "")
	case key.Matches(msg, m.keys.Delete):
		return m, m.openInput(dialogDeletePlayer, "")
	case key.Matches(msg, m.keys.Score):
		c, ok := categoryFor(msg)
		if !ok {
			return m, nil
		}
		m.pending = score.Select(c)
		return m, m.openInput(dialogScoreValue, "")
	case key.Matches(msg, m.keys.Claim):
		c, ok := categoryFor(msg)
		if !ok {
			return m, nil
		}
		m.pending = score.Select(c)
		m.dialog = dialogClaim
		return m, nil
	case key.Matches(msg, m.keys.Save):
		if strings.TrimSpace(m.opts.SavePath) == "" {
			return m, m.openInput(dialogSavePath, "")
		}
		return m, m.saveCmd(m.opts.SavePath)
	case key.Matches(msg, m.keys.Load):
		return m, m.openInput(dialogLoadPath, m.opts.SavePath)
	default:
		return m, nil
	}
}

func categoryFor(msg tea.KeyMsg) (score.Category, bool) {
	runes := []rune(msg.String())
	if len(runes) != 1 {
		return 0, false
	}
	return score.CategoryForKey(runes[0])
}

func (m *Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.closeDialog()
		return m, nil
	}
	switch m.dialog {
	case dialogMessage:
		if msg.Type == tea.KeyEnter {
			m.closeDialog()
		}
		return m, nil
	case dialogClaim:
		switch strings.ToLower(msg.String()) {
		case "y":
			m.pending = score.Claim(m.pending.Category(), true)
		case "n":
			m.pending = score.Claim(m.pending.Category(), false)
		default:
			return m, nil
		}
		return m, m.openInput(dialogScorePlayer, "")
	}
	if msg.Type == tea.KeyEnter {
		return m.submitInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	kind := m.dialog
	m.closeDialog()

	switch kind {
	case dialogAddPlayer:
		if err := m.reg.AddPlayer(value); err != nil {
			m.setError(fmt.Sprintf("Cannot add player: %v", err))
			return m, nil
		}
		m.log.Info("player added", "player", value)
		m.setStatus(fmt.Sprintf("Added %s", value))
		return m, m.autosaveCmd()
	case dialogDeletePlayer:
		if !m.reg.RemovePlayer(value) {
			m.openMessage("Cannot Delete Player", "There is no player to remove from the list")
			return m, nil
		}
		m.log.Info("player removed", "player", value)
		m.setStatus(fmt.Sprintf("Removed %s", value))
		return m, m.autosaveCmd()
	case dialogScoreValue:
		v, err := score.ParseValue(value)
		if err != nil {
			m.log.Debug("score entry aborted", "value", value, "error", err)
			return m, nil
		}
		m.pending = m.pending.Inject(v)
		return m, m.openInput(dialogScorePlayer, "")
	case dialogScorePlayer:
		return m, m.applyPending(value)
	case dialogSavePath:
		if value == "" {
			return m, nil
		}
		m.opts.SavePath = value
		return m, m.saveCmd(value)
	case dialogLoadPath:
		if value == "" {
			return m, nil
		}
		return m, loadCmd(value)
	default:
		return m, nil
	}
}

func (m *Model) applyPending(name string) tea.Cmd {
	in := m.pending
	m.pending = score.Input{}
	if !in.Filled() {
		return nil
	}
	if err := m.reg.ApplyScore(name, in); err != nil {
		m.log.Warn("score rejected", "player", name, "input", in.String(), "error", err)
		m.setError(fmt.Sprintf("Unknown player %q", name))
		return nil
	}
	sb, _ := m.reg.Get(name)
	c := in.Category()
	m.log.Info("score applied", "player", name, "input", in.String(), "total", sb.TotalScore)
	m.setStatus(fmt.Sprintf("%s: %s = %s", name, c.Label(), sb.Slot(c)))
	return m.autosaveCmd()
}

func (m *Model) openInput(kind dialogKind, value string) tea.Cmd {
	m.dialog = kind
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) openMessage(title, body string) {
	m.dialog = dialogMessage
	m.messageTitle = title
	m.messageBody = body
}

func (m *Model) closeDialog() {
	m.dialog = dialogNone
	m.input.Blur()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusIsError = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusIsError = true
}

func (m *Model) snapshot() *players.Registry {
	snap := players.New()
	snap.Replace(m.reg)
	return snap
}

func (m *Model) saveCmd(path string) tea.Cmd {
	snap := m.snapshot()
	return func() tea.Msg {
		err := savefile.Save(path, snap)
		return savedMsg{path: path, count: snap.Len(), err: err}
	}
}

func loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		reg, err := savefile.Load(path)
		return loadedMsg{path: path, reg: reg, err: err}
	}
}

func (m *Model) autosaveCmd() tea.Cmd {
	saver := m.opts.Autosaver
	if saver == nil {
		return nil
	}
	entries := m.reg.Entries()
	seq := m.autosaves.ticket()
	return func() tea.Msg {
		err := m.autosaves.save(seq, func() error {
			return saver.SaveRegistry(context.Background(), entries)
		})
		return autosavedMsg{err: err}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderDialog()
	if content == "" {
		content = m.renderBoard()
		if m.showHelp {
			content += "\n" + helpBoxStyle.Render(m.help.View(m.keys))
		}
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	footerHeight := lipgloss.Height(footer)
	if m.height <= footerHeight {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - footerHeight
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + fitLines(footer, m.width, footerHeight)
}

func (m *Model) renderBoard() string {
	entries := stats.SortEntries(m.reg.Entries(), m.opts.Sort)
	opts := board.Options{ASCII: m.opts.ASCII}
	if leader, ok := stats.Leader(entries); ok && leader.Total > 0 {
		opts.Highlight = leader.Name
	}
	return board.Render(entries, opts)
}

func (m *Model) dialogText() (title, prompt string) {
	c := m.pending.Category()
	switch m.dialog {
	case dialogAddPlayer:
		return "Add Player", "Input the player name"
	case dialogDeletePlayer:
		return "Delete Player", "Input the player name"
	case dialogScoreValue:
		return c.Label(), "Input the score"
	case dialogClaim:
		return c.Label(), "Claimed? y/n"
	case dialogScorePlayer:
		return c.Label(), "Input the player name"
	case dialogSavePath:
		return "Save Game", "Input the file path (.json or .yaml)"
	case dialogLoadPath:
		return "Load Game", "Input the file path"
	default:
		return "", ""
	}
}

func (m *Model) renderDialog() string {
	if m.dialog == dialogNone {
		return ""
	}
	width := modalWidth(m.width)
	inner := width - 6 // 2 border + 4 padding
	var body []string
	switch m.dialog {
	case dialogMessage:
		body = []string{
			titleStyle.Render(truncateLine(m.messageTitle, inner)),
			m.messageBody,
			hintStyle.Render("Enter to close"),
		}
	case dialogClaim:
		title, prompt := m.dialogText()
		body = []string{
			titleStyle.Render(title),
			prompt,
			hintStyle.Render("y / n / Esc to cancel"),
		}
	default:
		title, prompt := m.dialogText()
		m.input.Width = maxInt(inner-lipgloss.Width(m.input.Prompt)-1, 1)
		body = []string{
			titleStyle.Render(title),
			prompt,
			m.input.View(),
			hintStyle.Render("Enter to confirm / Esc to cancel"),
		}
	}
	return modalStyle.Width(width).Render(strings.Join(body, "\n"))
}

func (m *Model) renderFooter() string {
	segments := []string{HelpHint}
	if leader, ok := stats.Leader(m.reg.Entries()); ok && leader.Total > 0 {
		segments = append(segments, fmt.Sprintf("Leader %s (%d)", leader.Name, leader.Total))
	}
	line := footerStyle.Render(strings.Join(segments, "  "))
	if m.status == "" {
		return line
	}
	style := statusStyle
	if m.statusIsError {
		style = errorStyle
	}
	status := m.status
	if m.width > 0 {
		status = truncateLine(status, m.width)
	}
	return line + "\n" + style.Render(status)
}
