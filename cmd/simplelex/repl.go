package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/mgomes/simplelex/lexer"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")
	literalColor   = lipgloss.Color("#A855F7")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	keywordStyle    = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	identifierStyle = lipgloss.NewStyle().Foreground(successColor)
	literalStyle    = lipgloss.NewStyle().Foreground(literalColor)
	operatorStyle   = lipgloss.NewStyle().Foreground(highlightColor)
)

func categoryStyle(c lexer.Category) lipgloss.Style {
	switch c {
	case lexer.CategoryKeyword:
		return keywordStyle
	case lexer.CategoryIdentifier:
		return identifierStyle
	case lexer.CategoryLiteral:
		return literalStyle
	case lexer.CategoryOperator:
		return operatorStyle
	default:
		return mutedStyle
	}
}

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	cfg         lexer.Config
	idents      map[string]struct{}
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	lastDump    string
	copyText    func(string) error
	width       int
	height      int
	showHelp    bool
	showIdents  bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlV key.Binding
	CtrlH key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous line"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next line"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "tokenize"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle identifiers"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel(cfg lexer.Config) replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "lex> "

	return replModel{
		textInput:  ti,
		cfg:        cfg,
		idents:     make(map[string]struct{}),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
		copyText:   clipboard.WriteAll,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlV):
			m.showIdents = !m.showIdents
			return m, nil

		case key.Matches(msg, keys.CtrlH):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{
				input:  input,
				output: output,
				isErr:  isErr,
			})
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":idents", ":i":
		m.showIdents = !m.showIdents
	case ":legacy", ":l":
		logger := m.cfg.Logger
		strict := m.cfg.Strict
		if m.cfg.GreedyAssignment {
			m.cfg = lexer.Config{}
		} else {
			m.cfg = lexer.LegacyConfig()
		}
		m.cfg.Logger = logger
		m.cfg.Strict = strict
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Legacy mode " + onOff(m.cfg.GreedyAssignment),
		})
	case ":strict", ":s":
		m.cfg.Strict = !m.cfg.Strict
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Strict mode " + onOff(m.cfg.Strict),
		})
	case ":copy", ":y":
		entry := historyEntry{input: input, output: "Copied last dump to clipboard"}
		if m.lastDump == "" {
			entry.output = "Nothing to copy"
			entry.isErr = true
		} else if err := m.copyText(m.lastDump); err != nil {
			entry.output = fmt.Sprintf("Copy failed: %v", err)
			entry.isErr = true
		}
		m.history = append(m.history, entry)
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// completionCandidates lists reserved words and every identifier seen so far.
func (m replModel) completionCandidates() []string {
	idents := maps.Keys(m.idents)
	slices.Sort(idents)
	return append(lexer.DefaultKeywords(), idents...)
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	words := strings.Fields(input)
	if len(words) == 0 || strings.HasSuffix(input, " ") {
		return m
	}
	lastWord := words[len(words)-1]

	ranks := fuzzy.RankFindFold(lastWord, m.completionCandidates())
	sort.Sort(ranks)
	completions := make([]string, 0, len(ranks))
	for _, rank := range ranks {
		if rank.Target == lastWord {
			continue
		}
		completions = append(completions, rank.Target)
	}

	if len(completions) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			input:  "",
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}

	return m
}

// evaluate tokenizes one line and renders the tokens as styled chips. The
// plain dump of the line is kept for :copy.
func (m *replModel) evaluate(input string) (string, bool) {
	stream, err := lexer.Tokenize(input, m.cfg)
	if err != nil {
		return err.Error(), true
	}
	if stream.Len() == 0 {
		m.lastDump = ""
		return "no tokens", false
	}

	chips := make([]string, 0, stream.Len())
	var dump strings.Builder
	for _, tok := range stream.Tokens() {
		if tok.Type() == lexer.Identifier {
			m.idents[tok.Literal()] = struct{}{}
		}
		chip := fmt.Sprintf("%s(%s)", tok.Type(), tok.Literal())
		chips = append(chips, categoryStyle(tok.Type().Category()).Render(chip))
	}
	if err := lexer.Dump(&dump, stream); err != nil {
		return err.Error(), true
	}
	m.lastDump = dump.String()
	if m.cfg.Logger != nil {
		m.cfg.Logger.Debug("tokenized repl line", zap.Int("tokens", len(chips)))
	}
	return strings.Join(chips, " "), false
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("simplelex REPL")
	mode := mutedStyle.Render(fmt.Sprintf("legacy %s · strict %s", onOff(m.cfg.GreedyAssignment), onOff(m.cfg.Strict)))
	b.WriteString(header + " " + mode + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(m.width-2, 60))) + "\n\n")

	reservedLines := 8 // header, input, help hint, etc.
	if m.showHelp {
		reservedLines += 12
	}
	if m.showIdents {
		reservedLines += len(m.idents) + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ ") + entry.output + "\n")
		}
		b.WriteString("\n")
	}

	if m.showIdents {
		b.WriteString(renderIdentsPanel(m.idents))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" idents  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderIdentsPanel(idents map[string]struct{}) string {
	if len(idents) == 0 {
		return borderStyle.Render(mutedStyle.Render("No identifiers seen"))
	}

	names := maps.Keys(idents)
	slices.Sort(names)
	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Identifiers")}
	for _, name := range names {
		lines = append(lines, "  "+identifierStyle.Render(name))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate line history"},
		{"Tab", "Complete keywords and identifiers"},
		{"Enter", "Tokenize line"},
		{":help", "Toggle this help"},
		{":idents", "Toggle identifiers panel"},
		{":legacy", "Toggle reference lexer quirks"},
		{":strict", "Toggle strict mode"},
		{":copy", "Copy last dump to clipboard"},
		{":clear", "Clear history"},
		{":quit", "Exit REPL"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func replCommand(args []string) error {
	fs := newCommandFlags("repl")
	lf := registerLexFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	log, err := fs.logger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := lf.config(log)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newREPLModel(cfg), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
