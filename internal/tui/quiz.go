package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/asmit/lexiq/internal/quiz"
	"github.com/asmit/lexiq/internal/quizgen"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseDone
)

type questionReadyMsg struct {
	question *quizgen.PresentedQuestion
}

// Model is the single-screen quiz TUI. It drives one session from start
// to final score.
type Model struct {
	engine  *quiz.Engine
	session *quiz.Session

	phase    phase
	question *quizgen.PresentedQuestion
	selected int
	result   *quiz.AnswerResult
	final    *quiz.Result

	spinner spinner.Model
	width   int
}

// NewModel creates the quiz model and starts a session.
func NewModel(engine *quiz.Engine) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		engine:  engine,
		session: engine.Start(),
		phase:   phaseLoading,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchQuestion())
}

// fetchQuestion generates the next question off the UI loop. Generation
// never fails (the assembler falls back), so the message always carries
// a question.
func (m Model) fetchQuestion() tea.Cmd {
	engine, session := m.engine, m.session
	return func() tea.Msg {
		q, err := engine.NextQuestion(context.Background(), session)
		if err != nil {
			// Exhausted session; the Update loop guards against this.
			return questionReadyMsg{question: nil}
		}
		return questionReadyMsg{question: q}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case questionReadyMsg:
		if msg.question == nil {
			return m.finish()
		}
		m.question = msg.question
		m.selected = 0
		m.result = nil
		m.phase = phaseQuestion
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseQuestion:
		switch msg.String() {
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(quizgen.Labels())-1 {
				m.selected++
			}
		case "enter":
			label := quizgen.Labels()[m.selected]
			result, err := m.engine.SubmitAnswer(m.session, label)
			if err != nil {
				return m, nil
			}
			m.result = result
			m.phase = phaseFeedback
		}

	case phaseFeedback:
		if m.session.Completed() {
			return m.finish()
		}
		m.phase = phaseLoading
		return m, tea.Batch(m.spinner.Tick, m.fetchQuestion())

	case phaseDone:
		switch msg.String() {
		case "q", "esc", "enter":
			return m, tea.Quit
		case "r":
			m.session = m.engine.Start()
			m.phase = phaseLoading
			m.final = nil
			return m, tea.Batch(m.spinner.Tick, m.fetchQuestion())
		}
	}

	return m, nil
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	final, err := m.engine.Result(m.session)
	if err != nil {
		return m, tea.Quit
	}
	m.final = final
	m.phase = phaseDone
	return m, nil
}

func (m Model) View() tea.View {
	var b strings.Builder

	b.WriteString(styleTitle.Render("lexiq — English placement quiz"))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseLoading:
		b.WriteString(m.progressLine())
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View())
		b.WriteString(styleDim.Render(" generating question..."))

	case phaseQuestion:
		b.WriteString(m.progressLine())
		b.WriteString("\n\n")
		b.WriteString(m.renderQuestion())
		b.WriteString("\n")
		b.WriteString(styleHint.Render("↑↓ navigate · enter submit · ctrl+c quit"))

	case phaseFeedback:
		b.WriteString(m.progressLine())
		b.WriteString("\n\n")
		b.WriteString(m.renderFeedback())
		b.WriteString("\n")
		b.WriteString(styleHint.Render("any key to continue"))

	case phaseDone:
		b.WriteString(m.renderFinal())
		b.WriteString("\n")
		b.WriteString(styleHint.Render("r restart · q quit"))
	}

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

func (m Model) progressLine() string {
	answered := len(m.session.History)
	total := len(m.session.Categories)
	number := answered + 1
	if number > total {
		number = total
	}
	return styleDim.Render(fmt.Sprintf(
		"Question %d of %d · difficulty %d/10", number, total, m.session.Difficulty,
	)) + "\n" + renderBar(answered, total, 40)
}

func (m Model) renderQuestion() string {
	var b strings.Builder
	b.WriteString(styleQuestion.Render(m.question.Prompt))
	b.WriteString("\n\n")

	for i, label := range quizgen.Labels() {
		prefix := "  "
		style := styleOption
		if i == m.selected {
			prefix = "▸ "
			style = styleSelected
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, m.question.Options[label])
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFeedback() string {
	var b strings.Builder
	b.WriteString(styleQuestion.Render(m.question.Prompt))
	b.WriteString("\n\n")

	for _, label := range quizgen.Labels() {
		line := fmt.Sprintf("  %s)  %s", label, m.question.Options[label])
		switch label {
		case m.result.CorrectLabel:
			b.WriteString(styleCorrect.Render(line))
		default:
			b.WriteString(styleDim.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.result.Correct {
		b.WriteString(styleCorrect.Render("Correct!"))
	} else {
		b.WriteString(styleWrong.Render(fmt.Sprintf("Incorrect — the answer was %s.", m.result.CorrectLabel)))
	}
	if m.result.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(styleDim.Render(m.result.Explanation))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderFinal() string {
	var b strings.Builder
	b.WriteString(styleQuestion.Render("Session complete"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Accuracy:            %.0f%%\n", m.final.Accuracy*100))
	b.WriteString(fmt.Sprintf("Average difficulty:  %.1f\n", m.final.AverageDifficulty))
	b.WriteString(styleTitle.Render(fmt.Sprintf("Score:               %d / 100", m.final.Score)))
	b.WriteString("\n")
	return b.String()
}

// renderBar draws a fixed-width progress bar.
func renderBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(colorBorder).Render(bar)
}

// Run starts the quiz TUI over the given engine.
func Run(engine *quiz.Engine) error {
	p := tea.NewProgram(NewModel(engine))
	_, err := p.Run()
	return err
}
