package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmQuestionStyle = lipgloss.NewStyle().Bold(true)
	confirmKeyStyle      = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// ConfirmModel - interactive yes/no prompt
// =============================================================================

// ConfirmModel is the bubbletea model for a yes/no question. Only "y"
// answers yes; every other way out of the prompt answers no.
type ConfirmModel struct {
	Question string
	Answer   bool
	Done     bool
}

// NewConfirmModel creates a prompt for question.
func NewConfirmModel(question string) ConfirmModel {
	return ConfirmModel{Question: question}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.Answer, m.Done = true, true
	case "n", "N", "enter", "esc", "q", "ctrl+c":
		m.Answer, m.Done = false, true
	default:
		return m, nil
	}
	return m, tea.Quit
}

func (m ConfirmModel) View() string {
	if m.Done {
		answer := "no"
		if m.Answer {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s\n", confirmQuestionStyle.Render(m.Question), StyleDim.Render(answer))
	}
	return fmt.Sprintf("%s %s ", confirmQuestionStyle.Render(m.Question), confirmKeyStyle.Render("[y/N]"))
}

// =============================================================================
// prompt - pipeline.Confirmer
// =============================================================================

// prompt asks on out and reads the answer from in. Terminals get the
// bubbletea prompt; anything else is read line by line through one shared
// reader, so piped answers are consumed one question at a time.
type prompt struct {
	in    io.Reader
	lines *bufio.Reader
	out   io.Writer
}

func newPrompt(in io.Reader, out io.Writer) *prompt {
	return &prompt{in: in, lines: bufio.NewReader(in), out: out}
}

// Confirm implements pipeline.Confirmer.
func (p *prompt) Confirm(ctx context.Context, question string) (bool, error) {
	if isTerminal(p.in) {
		return p.interactive(ctx, question)
	}
	return p.line(question)
}

func (p *prompt) interactive(ctx context.Context, question string) (bool, error) {
	prog := tea.NewProgram(NewConfirmModel(question),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ConfirmModel)
	return ok && m.Answer, nil
}

func (p *prompt) line(question string) (bool, error) {
	printInfo(p.out, "%s [y/N] ", question)
	answer, err := p.lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if err != nil && answer == "" {
		printWarning(p.out, "no answer, assuming no")
		return false, nil
	}
	return parseAnswer(answer), nil
}

// parseAnswer accepts "y" and "yes" in any case.
func parseAnswer(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}
