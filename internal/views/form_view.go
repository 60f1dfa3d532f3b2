package views

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"rhystmorgan/onboard/internal/api"
	"rhystmorgan/onboard/internal/form"
	"rhystmorgan/onboard/internal/utils"
	"rhystmorgan/onboard/internal/validation"
)

const (
	defaultLookupTimeout = 5 * time.Second
	submitTimeout        = 2 * time.Minute
	feedbackDuration     = 3 * time.Second

	noField = validation.Field(-1)
)

var errNoLookup = errors.New("address lookup not configured")

// lookupDoneMsg and submitDoneMsg name the form that started them so the
// result lands even if the user has switched screens meanwhile.
type lookupDoneMsg struct {
	owner  *FormModel
	result form.LookupResult
}

type submitDoneMsg struct {
	owner  *FormModel
	result api.Result
}

// FormModel renders a form.State and feeds keystrokes back into it.
// Lookups and submissions run as commands and return as messages.
type FormModel struct {
	state     form.State
	inputs    map[validation.Field]textinput.Model
	focus     int
	spinner   spinner.Model
	submitter form.Submitter
	lookup    form.AddressLookup
	logger    zerolog.Logger

	lookupTimeout   time.Duration
	feedbackMessage *FeedbackMessage
	width           int
	height          int
}

func NewFormModel(variant *form.Variant, submitter form.Submitter, lookup form.AddressLookup, logger zerolog.Logger) *FormModel {
	m := &FormModel{
		state:         form.New(variant),
		inputs:        make(map[validation.Field]textinput.Model),
		spinner:       utils.NewSpinner(),
		submitter:     submitter,
		lookup:        lookup,
		logger:        logger.With().Str("form", variant.Name).Logger(),
		lookupTimeout: defaultLookupTimeout,
	}

	for _, f := range variant.Fields() {
		if f.Derived() {
			continue
		}
		m.inputs[f] = newFieldInput(f)
	}
	m.focusCurrent()

	return m
}

func newFieldInput(f validation.Field) textinput.Model {
	layout := layoutFor(f)

	input := textinput.New()
	input.Placeholder = layout.placeholder
	input.CharLimit = layout.charLimit
	input.Prompt = ""
	input.Width = 40
	input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Overlay0))
	return input
}

// SetLookupTimeout bounds each postal code lookup.
func (m *FormModel) SetLookupTimeout(d time.Duration) {
	if d > 0 {
		m.lookupTimeout = d
	}
}

func (m *FormModel) State() form.State {
	return m.state
}

func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "pgdown", "ctrl+n":
			return m, m.goToNextStep()
		case "pgup", "ctrl+p":
			m.goToPreviousStep()
			return m, nil
		case "ctrl+s":
			return m.submit()
		case "enter":
			return m.handleEnterKey()
		}
		return m.updateFocusedInput(msg)

	case lookupDoneMsg:
		m.state = m.state.ApplyLookup(msg.result)
		m.syncInputs(noField)
		m.logLookup(msg.result)
		return m, nil

	case submitDoneMsg:
		return m.completeSubmit(msg.result)

	case FeedbackTimeoutMsg:
		if m.feedbackMessage.Expired(time.Now()) {
			m.feedbackMessage = nil
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *FormModel) busy() bool {
	return m.state.LookupPending() || m.state.Status() == form.Submitting
}

// focusable returns the editable inputs of the current step in order.
func (m *FormModel) focusable() []validation.Field {
	var fields []validation.Field
	for _, f := range m.state.CurrentStep().Fields {
		if _, ok := m.inputs[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}

func (m *FormModel) focusedField() validation.Field {
	fields := m.focusable()
	if len(fields) == 0 {
		return noField
	}
	if m.focus >= len(fields) {
		m.focus = len(fields) - 1
	}
	return fields[m.focus]
}

func (m *FormModel) moveFocus(delta int) {
	n := len(m.focusable())
	if n == 0 {
		return
	}
	m.focus = (m.focus + delta + n) % n
	m.focusCurrent()
}

func (m *FormModel) focusCurrent() {
	focused := m.focusedField()
	for f, input := range m.inputs {
		if f == focused {
			input.Focus()
		} else {
			input.Blur()
		}
		m.inputs[f] = input
	}
}

func (m *FormModel) updateFocusedInput(msg tea.KeyMsg) (*FormModel, tea.Cmd) {
	f := m.focusedField()
	if f == noField || !m.state.Editable(f) {
		return m, nil
	}

	input := m.inputs[f]
	before := input.Value()

	var cmd tea.Cmd
	input, cmd = input.Update(msg)
	m.inputs[f] = input

	if input.Value() == before {
		return m, cmd
	}

	next, req := m.state.Change(f, input.Value())
	m.state = next
	m.syncInputs(f)

	if req == nil {
		return m, cmd
	}
	if m.lookup == nil {
		m.state = m.state.ApplyLookup(form.LookupResult{Request: *req, Err: errNoLookup})
		return m, cmd
	}

	m.logger.Debug().Str("cep", req.PostalCode).Msg("postal code complete, looking up address")
	return m, tea.Batch(cmd, m.lookupCmd(*req), m.spinner.Tick)
}

// syncInputs rewrites inputs whose state value changed behind them, such
// as autofilled address fields or a form reset.
func (m *FormModel) syncInputs(skip validation.Field) {
	for f, input := range m.inputs {
		if f == skip {
			continue
		}
		want := m.state.Value(f)
		if validation.Normalize(f, input.Value()) == want {
			continue
		}
		input.SetValue(displayValue(f, want))
		m.inputs[f] = input
	}
}

func displayValue(f validation.Field, value string) string {
	if mask := layoutFor(f).mask; mask != "" {
		return utils.FormatMask(value, mask)
	}
	return value
}

func (m *FormModel) lookupCmd(req form.LookupRequest) tea.Cmd {
	lookup := m.lookup
	timeout := m.lookupTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return lookupDoneMsg{owner: m, result: req.Resolve(ctx, lookup)}
	}
}

func (m *FormModel) submitCmd(p api.Payload) tea.Cmd {
	submitter := m.submitter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		return submitDoneMsg{owner: m, result: submitter.Submit(ctx, p)}
	}
}

func (m *FormModel) logLookup(res form.LookupResult) {
	event := m.logger.Debug()
	if res.Err != nil {
		event = m.logger.Info().Err(res.Err)
	}
	event.Str("cep", res.Request.PostalCode).Msg("address lookup applied")
}

// goToNextStep advances when the gate allows it; otherwise it shows a
// warning and returns the command that expires it.
func (m *FormModel) goToNextStep() tea.Cmd {
	before := m.state.Step()
	m.state = m.state.Next()
	if m.state.Step() == before {
		if m.state.LastStep() {
			return nil
		}
		m.feedbackMessage = newFeedback(FeedbackWarning, "Complete this step before continuing", feedbackDuration)
		return feedbackTimeout(feedbackDuration)
	}
	m.focus = 0
	m.focusCurrent()
	return nil
}

func (m *FormModel) goToPreviousStep() {
	before := m.state.Step()
	m.state = m.state.Back()
	if m.state.Step() != before {
		m.focus = 0
		m.focusCurrent()
	}
}

func (m *FormModel) handleEnterKey() (*FormModel, tea.Cmd) {
	if !m.state.LastStep() {
		return m, m.goToNextStep()
	}
	if m.focus < len(m.focusable())-1 {
		m.moveFocus(1)
		return m, nil
	}
	return m.submit()
}

func (m *FormModel) submit() (*FormModel, tea.Cmd) {
	if m.submitter == nil {
		return m, ShowError(errors.New("no API endpoint configured"))
	}

	before := m.state.Step()
	next, ok := m.state.BeginSubmit()
	m.state = next

	if !ok {
		if next.Status() != form.Submitting {
			m.feedbackMessage = newFeedback(FeedbackError, "Please fix the highlighted fields", feedbackDuration)
			if next.Step() != before {
				m.focus = 0
				m.focusCurrent()
			}
			return m, feedbackTimeout(feedbackDuration)
		}
		return m, nil
	}

	m.logger.Info().Msg("submitting form")
	return m, tea.Batch(m.submitCmd(next.Payload()), m.spinner.Tick)
}

func (m *FormModel) completeSubmit(result api.Result) (*FormModel, tea.Cmd) {
	before := m.state.Step()
	m.state = m.state.CompleteSubmit(result)
	m.syncInputs(noField)

	switch {
	case m.state.Status() == form.Succeeded:
		m.feedbackMessage = newFeedback(FeedbackSuccess, m.state.Message(), feedbackDuration)
	case m.state.GlobalError() != "":
		m.feedbackMessage = newFeedback(FeedbackError, m.state.GlobalError(), feedbackDuration)
	default:
		m.feedbackMessage = newFeedback(FeedbackError, "The server rejected some fields", feedbackDuration)
	}

	if m.state.Step() != before {
		m.focus = 0
	}
	m.focusCurrent()

	return m, feedbackTimeout(feedbackDuration)
}

func (m *FormModel) View() string {
	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n\n")

	focused := m.focusedField()
	for _, f := range m.state.CurrentStep().Fields {
		content.WriteString(m.renderField(f, f == focused))
		content.WriteString("\n")
	}

	if global := m.state.GlobalError(); global != "" {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red)).
			Bold(true).
			Render("✗ " + global))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(m.renderActions())
	content.WriteString("\n\n")
	content.WriteString(m.renderHelpText())

	if m.feedbackMessage != nil {
		content.WriteString("\n\n")
		content.WriteString(renderFeedbackMessage(m.feedbackMessage))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Green)).
		Padding(1, 2).
		Render(content.String())
}

func (m *FormModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Bold(true)

	stepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	variant := m.state.Variant()
	header := titleStyle.Render(m.state.CurrentStep().Title)

	if variant.TotalSteps() > 1 {
		names := make([]string, len(variant.Steps))
		for i, s := range variant.Steps {
			names[i] = s.Title
		}
		header += "\n" + stepStyle.Render(utils.FormatStepIndicator(m.state.Step()-1, variant.TotalSteps(), names))
	}

	return header
}

func (m *FormModel) renderField(f validation.Field, focused bool) string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Bold(true)
	if focused {
		labelStyle = labelStyle.Foreground(lipgloss.Color(utils.Colours.Blue))
	}

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Red))

	layout := layoutFor(f)
	marker := "  "
	if focused {
		marker = "> "
	}

	var line string
	switch input, ok := m.inputs[f]; {
	case !ok:
		value := strings.ToUpper(m.state.Value(f))
		if value == "" {
			value = mutedStyle.Render(layout.placeholder)
		}
		line = value
	case !m.state.Editable(f):
		line = mutedStyle.Render(m.spinner.View() + " looking up address...")
	default:
		line = input.View()
	}

	if f == validation.FieldZipCode && m.state.LookupPending() {
		line += " " + m.spinner.View()
	}

	out := marker + labelStyle.Render(utils.PadString(layout.label, labelWidth, ' ')) + " " + line
	if msg := m.state.Error(f); msg != "" {
		out += "\n" + strings.Repeat(" ", labelWidth+3) + errorStyle.Render("✗ "+msg)
	}
	return out
}

func (m *FormModel) renderActions() string {
	enabled := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Base)).
		Background(lipgloss.Color(utils.Colours.Green)).
		Padding(0, 2).
		Bold(true)

	disabled := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay0)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 2)

	if m.state.Status() == form.Submitting {
		return disabled.Render(m.spinner.View() + " Submitting...")
	}

	if !m.state.LastStep() {
		if m.state.CanAdvance() {
			return enabled.Render("Next →")
		}
		return disabled.Render("Next →")
	}

	if m.state.CanSubmit() {
		return enabled.Render("Submit")
	}
	return disabled.Render("Submit")
}

func (m *FormModel) renderHelpText() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	var help string
	switch {
	case m.state.Variant().TotalSteps() > 1 && !m.state.LastStep():
		help = "Tab: next field • Enter/PgDn: next step • PgUp: back • Esc: menu"
	case m.state.Variant().TotalSteps() > 1:
		help = "Tab: next field • Enter/Ctrl+S: submit • PgUp: back • Esc: menu"
	default:
		help = "Tab: next field • Enter/Ctrl+S: submit • Esc: menu"
	}

	return helpStyle.Render(help)
}
