package views

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"rhystmorgan/onboard/internal/api"
	"rhystmorgan/onboard/internal/form"
	"rhystmorgan/onboard/internal/utils"
	"rhystmorgan/onboard/internal/validation"
)

type ViewState int

const (
	ViewMenu ViewState = iota
	ViewRegistration
	ViewOnboarding
	ViewMediaUpload
	ViewVideos
)

// Dependencies are the services the screens talk to.
type Dependencies struct {
	API           *api.Client
	Lookup        form.AddressLookup
	Validator     *validation.Validator
	Logger        zerolog.Logger
	LookupTimeout time.Duration
}

type AppModel struct {
	state  ViewState
	width  int
	height int
	deps   Dependencies

	menu         *MenuModel
	registration *FormModel
	onboarding   *FormModel
	mediaUpload  *FormModel
	videos       *VideoListModel

	err error
}

type NavigateMsg struct {
	State ViewState
	Data  interface{}
}

type ErrorMsg struct {
	Err error
}

func NewAppModel(deps Dependencies) AppModel {
	if deps.Validator == nil {
		deps.Validator = validation.NewValidator()
	}

	return AppModel{
		state: ViewMenu,
		deps:  deps,
		menu:  NewMenuModel(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.state == ViewMenu {
				return m, tea.Quit
			}
		case "esc":
			if m.state != ViewMenu {
				return m.navigateTo(ViewMenu, nil)
			}
		}

	case NavigateMsg:
		return m.navigateTo(msg.State, msg.Data)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case lookupDoneMsg:
		if msg.owner != nil {
			_, cmd = msg.owner.Update(msg)
		}
		return m, cmd

	case submitDoneMsg:
		if msg.owner != nil {
			_, cmd = msg.owner.Update(msg)
		}
		return m, cmd
	}

	switch m.state {
	case ViewMenu:
		if m.menu != nil {
			*m.menu, cmd = m.menu.Update(msg)
		}
	case ViewRegistration:
		if m.registration != nil {
			m.registration, cmd = m.registration.Update(msg)
		}
	case ViewOnboarding:
		if m.onboarding != nil {
			m.onboarding, cmd = m.onboarding.Update(msg)
		}
	case ViewMediaUpload:
		if m.mediaUpload != nil {
			m.mediaUpload, cmd = m.mediaUpload.Update(msg)
		}
	case ViewVideos:
		if m.videos != nil {
			m.videos, cmd = m.videos.Update(msg)
		}
	}

	return m, cmd
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string

	switch m.state {
	case ViewMenu:
		if m.menu != nil {
			content = m.menu.View()
		}
	case ViewRegistration:
		if m.registration != nil {
			content = m.registration.View()
		}
	case ViewOnboarding:
		if m.onboarding != nil {
			content = m.onboarding.View()
		}
	case ViewMediaUpload:
		if m.mediaUpload != nil {
			content = m.mediaUpload.View()
		}
	case ViewVideos:
		if m.videos != nil {
			content = m.videos.View()
		}
	default:
		content = "Unknown view"
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red)).
			Bold(true).
			Padding(1)
		content += "\n" + errorStyle.Render(fmt.Sprintf("Error: %s", m.err.Error()))
	}

	content += "\n\n" + m.renderStatus()

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m AppModel) renderStatus() string {
	if m.deps.API == nil {
		return ""
	}

	status := m.deps.API.GetStatus()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Overlay1))

	var state string
	switch {
	case status.LastStatus == 0 && !status.Reachable:
		state = style.Render("not contacted yet")
	case status.Reachable:
		state = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Green)).
			Render(fmt.Sprintf("● online (HTTP %d, %s)", status.LastStatus, utils.FormatTimeAgo(status.LastChecked)))
	default:
		state = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red)).
			Render("● unreachable (" + utils.FormatTimeAgo(status.LastChecked) + ")")
	}

	return style.Render("API "+utils.TruncateString(status.BaseURL, 40)+" ") + state
}

func (m AppModel) navigateTo(state ViewState, data interface{}) (tea.Model, tea.Cmd) {
	m.state = state
	m.err = nil

	m.deps.Logger.Debug().Str("view", m.getViewName(state)).Msg("navigate")

	var cmd tea.Cmd
	switch state {
	case ViewRegistration:
		if m.registration == nil {
			m.registration = m.newForm(form.Registration(m.deps.Validator), m.partnerSubmitter())
		}
		cmd = m.registration.Init()
	case ViewOnboarding:
		if m.onboarding == nil {
			m.onboarding = m.newForm(form.Onboarding(m.deps.Validator), m.partnerSubmitter())
		}
		cmd = m.onboarding.Init()
	case ViewMediaUpload:
		if m.mediaUpload == nil {
			m.mediaUpload = m.newForm(form.MediaUpload(m.deps.Validator), m.videoSubmitter())
		}
		cmd = m.mediaUpload.Init()
	case ViewVideos:
		if m.videos == nil {
			var lister VideoLister
			if m.deps.API != nil {
				lister = m.deps.API
			}
			m.videos = NewVideoListModel(lister)
		}
		cmd = m.videos.Load()
	}

	return m, cmd
}

func (m AppModel) newForm(variant *form.Variant, submitter form.Submitter) *FormModel {
	fm := NewFormModel(variant, submitter, m.deps.Lookup, m.deps.Logger)
	fm.SetLookupTimeout(m.deps.LookupTimeout)
	return fm
}

func (m AppModel) partnerSubmitter() form.Submitter {
	if m.deps.API == nil {
		return nil
	}
	return api.NewPartnerSubmitter(m.deps.API)
}

func (m AppModel) videoSubmitter() form.Submitter {
	if m.deps.API == nil {
		return nil
	}
	return api.NewVideoSubmitter(m.deps.API)
}

func (m AppModel) getViewName(state ViewState) string {
	switch state {
	case ViewMenu:
		return "menu"
	case ViewRegistration:
		return "registration"
	case ViewOnboarding:
		return "onboarding"
	case ViewMediaUpload:
		return "media_upload"
	case ViewVideos:
		return "videos"
	default:
		return "unknown"
	}
}

func NavigateTo(state ViewState, data interface{}) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{State: state, Data: data}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
