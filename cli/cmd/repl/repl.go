package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/fddl/log"
)

// inputMode selects how a submitted line is handled.
type inputMode int

const (
	modeEval inputMode = iota // render the line as a template
	modeCtrl                  // run the line as a command
)

var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

var prompts = [...]string{
	modeEval: promptStyle.Render("➜ "),
	modeCtrl: ctrlPromptStyle.Render(" :"),
}

// command is an entry of the command mode table.
type command struct {
	name    string
	aliases []string
	args    string
	summary string
}

var commands = []command{
	{"help", []string{"h", "?"}, "", "Print this help"},
	{"list", []string{"l", "ls"}, "", "List page, site and variable values"},
	{"edit", []string{"e"}, "", "Edit the page in $EDITOR and reload it"},
	{"load", nil, "<file>", "Render against another markdown page"},
	{"set", nil, "<key>=<value>", "Bind a template variable"},
	{"clear", []string{"c"}, "", "Clear the screen"},
	{"quit", []string{"q", "exit"}, "", "Exit"},
}

const keyHelp = `
Keys:
  Esc               Toggle between template and command mode
  Tab, Shift+Tab    Cycle through completions
  Up, Down          Browse history of both modes
  Shift+Up/Down     Browse history of the current mode
  Ctrl+C            Clear the line, or exit on an empty line
  Ctrl+D            Exit on an empty line

A line without "{{" is a key path, so "page.title | uppercase" renders
{{page.title | uppercase}}. The live preview below the input shows the
result as you type.
`

func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

func lookupCommand(name string) (command, bool) {
	i := slices.IndexFunc(commands, func(c command) bool {
		return c.name == name || slices.Contains(c.aliases, name)
	})
	if i < 0 {
		return command{}, false
	}

	return commands[i], true
}

func usage() string {
	var b strings.Builder

	b.WriteString("\nCommands:\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "  %-18s%s\n", strings.TrimSpace(c.name+" "+c.args), c.summary)
	}

	b.WriteString(keyHelp)

	return b.String()
}

// editDoneMsg is sent when the editor exits.
type editDoneMsg struct {
	path string
	err  error
}

// draft is the unsubmitted input of a mode, restored when switching back.
type draft struct {
	text   string
	cursor int
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc  func() context.Context
	session  *Session
	history  *History
	logger   log.Logger
	input    textinput.Model
	comp     completion
	drafts   [len(prompts)]draft
	cacheDir string
	histAt   int // history index shown, or history.Len() for new input
	width    int
	mode     inputMode
	quitting bool
}

// Run reloads session and runs the REPL until the user quits. History is
// kept under cacheDir.
func Run(
	ctx context.Context,
	session *Session,
	cacheDir string,
	logger log.Logger,
) error {
	logger = logger.Component("repl")

	if err := session.Reload(ctx); err != nil {
		return err
	}

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "history not loaded", slog.Any("error", err))
	}

	logger.DebugContext(ctx, "repl start",
		slog.String("page", session.Page()),
		slog.Int("history", history.Len()),
	)

	m := newModel(ctx, session, history, cacheDir, logger)
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	session *Session,
	history *History,
	cacheDir string,
	logger log.Logger,
) model {
	in := textinput.New()
	in.Prompt = prompts[modeEval]
	in.CharLimit = 4096
	in.Width = defaultWidth
	in.Focus()

	return model{
		ctxFunc:  func() context.Context { return ctx },
		session:  session,
		history:  history,
		logger:   logger,
		input:    in,
		comp:     completion{sel: -1},
		cacheDir: cacheDir,
		histAt:   history.Len(),
		width:    defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.key(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(prompts[m.mode]) - 2

		return m, nil

	case editDoneMsg:
		if msg.err != nil {
			return m, report(msg.err, "")
		}

		return m, report(m.session.SetPage(m.ctxFunc(), msg.path), "reloaded "+msg.path)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var hint string

	input := m.input.Value()

	switch {
	case m.histAt < m.history.Len():
		hint = hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(fmt.Sprint(m.histAt+1)), m.history.Len()))

	case strings.TrimSpace(input) == "" && m.mode == modeCtrl:
		hint = hintStyle.Render("Commands: " + strings.Join(commandNames(), ", ") + " (Esc to return)")

	case strings.TrimSpace(input) == "":
		hint = hintStyle.Render("Type a template or key path, or press Esc for commands")

	case len(m.comp.matches) > 0:
		hint = m.comp.bar(m.width)

	case m.mode == modeEval:
		out, err := m.session.Render(input)
		if err != nil {
			hint = errorStyle.Render(ellipsize(err.Error(), m.width))
		} else {
			hint = hintStyle.Render(ellipsize(out, m.width))
		}
	}

	return m.input.View() + "\n" + hint + "\n"
}

func (m model) key(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl key", slog.String("key", msg.String()))

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		if msg.Type == tea.KeyCtrlC {
			m.input.SetValue("")
			m.histAt = m.history.Len()
			m.refresh(false)
		}

		return m, nil

	case tea.KeyEnter:
		if !m.comp.cycling() {
			return m.submit()
		}

		m.refresh(true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp, tea.KeyDown, tea.KeyShiftUp, tea.KeyShiftDown:
		dir := 1
		if msg.Type == tea.KeyUp || msg.Type == tea.KeyShiftUp {
			dir = -1
		}

		return m.recall(dir, msg.Type == tea.KeyShiftUp || msg.Type == tea.KeyShiftDown), nil

	case tea.KeyEsc:
		if m.comp.cycling() {
			m.input.SetValue(m.comp.saved)
			m.input.SetCursor(m.comp.savedAt)
		} else {
			m.setMode(1 - m.mode)
		}

		m.refresh(false)

		return m, nil
	}

	// Typing confirms a completion that is already spelled out in full.
	// Deleting and cursor movement leave the bar open.
	var cmd tea.Cmd

	m.histAt = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh(msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace)

	return m, cmd
}

// cycle moves the completion selection by step and writes the selected
// candidate into the input. A sole candidate is accepted at once.
func (m model) cycle(step int) model {
	n := len(m.comp.matches)

	switch {
	case n == 0:
		return m
	case n == 1:
		m.replaceWord(m.comp.matches[0].Str)
		m.comp = completion{sel: -1}

		return m
	case m.comp.cycling():
		m.comp.sel = (m.comp.sel + step + n) % n
	default:
		m.comp.saved, m.comp.savedAt = m.input.Value(), m.input.Position()
		m.comp.sel = 0

		if step < 0 {
			m.comp.sel = n - 1
		}
	}

	m.replaceWord(m.comp.matches[m.comp.sel].Str)

	return m
}

func (m *model) replaceWord(s string) {
	in := m.input.Value()

	m.input.SetValue(in[:m.comp.start] + s + in[m.comp.end:])
	m.input.SetCursor(m.comp.start + len(s))
	m.comp.end = m.comp.start + len(s)
}

// refresh recomputes the completions at the cursor, ending any cycling. With
// confirm set, a word equal to its only candidate closes the bar.
func (m *model) refresh(confirm bool) {
	m.comp = complete(m.session, m.mode, m.input.Value(), m.input.Position())

	if confirm && len(m.comp.matches) == 1 &&
		m.input.Value()[m.comp.start:m.comp.end] == m.comp.matches[0].Str {
		m.comp.matches = nil
	}
}

func (m *model) setMode(mode inputMode) {
	m.drafts[m.mode] = draft{m.input.Value(), m.input.Position()}
	m.mode = mode
	m.input.Prompt = prompts[mode]
	m.input.SetValue(m.drafts[mode].text)
	m.input.SetCursor(m.drafts[mode].cursor)
}

// recall shows the next history entry in direction dir, switching mode to
// match it unless sameMode restricts the search to the current mode. Moving
// past the newest entry returns to an empty line.
func (m model) recall(dir int, sameMode bool) model {
	var only *inputMode
	if sameMode {
		only = &m.mode
	}

	i, e, ok := m.history.Step(m.histAt, dir, only)
	if !ok {
		if dir > 0 && m.histAt < m.history.Len() {
			m.histAt = m.history.Len()
			m.input.SetValue("")
			m.refresh(false)
		}

		return m
	}

	if e.Mode != m.mode {
		m.setMode(e.Mode)
	}

	m.histAt = i
	m.input.SetValue(e.Line)
	m.input.CursorEnd()
	m.refresh(false)

	return m
}

// submit records the input line in history and renders or runs it.
func (m model) submit() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.drafts = [len(prompts)]draft{}
	m.input.SetValue("")
	m.comp = completion{sel: -1}

	if err := m.history.Add(line, m.mode); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "history not saved", slog.Any("error", err))
	}

	m.histAt = m.history.Len()

	if m.mode == modeCtrl {
		return m.run(line)
	}

	echo := tea.Println(prompts[modeEval] + inputStyle.Render(line))

	out, err := m.session.Render(line)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

// run executes a command mode line.
func (m model) run(line string) (model, tea.Cmd) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	c, ok := lookupCommand(name)
	if !ok {
		return m, tea.Println(errorStyle.Render("unknown command " + name + " (try help)"))
	}

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", c.name),
		slog.String("arg", arg),
	)

	echo := tea.Println(prompts[modeCtrl] + inputStyle.Render(line))

	switch c.name {
	case "quit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "clear":
		return m, tea.ClearScreen

	case "help":
		return m, tea.Sequence(echo, tea.Println(usage()))

	case "list":
		return m, tea.Sequence(echo, tea.Println(m.list()))

	case "load":
		return m, tea.Sequence(echo, report(m.session.SetPage(m.ctxFunc(), arg), "loaded "+arg))

	case "set":
		return m, tea.Sequence(echo, report(m.session.Set(m.ctxFunc(), arg), "set "+arg))

	case "edit":
		ed := newEditPageCommand(m.ctxFunc, m.session.Page(), m.cacheDir, m.logger)

		return m, tea.Sequence(echo, tea.Exec(ed, func(err error) tea.Msg {
			return editDoneMsg{path: ed.path, err: err}
		}))
	}

	return m, echo
}

// report prints err, or done if err is nil.
func report(err error, done string) tea.Cmd {
	if err != nil {
		return tea.Println(errorStyle.Render("✘ " + err.Error()))
	}

	return tea.Println(resultStyle.Render("✔ " + done))
}

func (m model) list() string {
	var b strings.Builder

	if page := m.session.Page(); page != "" {
		b.WriteString(hintStyle.Render("  # "+page) + "\n")
	}

	for _, e := range m.session.Entries() {
		fmt.Fprintf(&b, "  %s %s\n", e.Path, hintStyle.Render(ellipsize(e.Value, m.width/2)))
	}

	return b.String()
}
