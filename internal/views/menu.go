package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/onboard/internal/utils"
)

type menuItem struct {
	title string
	hint  string
	state ViewState
}

type MenuModel struct {
	items  []menuItem
	cursor int
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{"Partner onboarding", "three steps: personal, address, banking", ViewOnboarding},
			{"Quick registration", "every field on one page", ViewRegistration},
			{"Upload video", "title, thumbnail and video file", ViewMediaUpload},
			{"Browse videos", "uploaded catalogue", ViewVideos},
		},
	}
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m, NavigateTo(m.items[m.cursor].state, nil)
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true).
		Padding(1, 0)

	itemStyle := lipgloss.NewStyle().
		Padding(0, 2)

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 2)

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1))

	var content string
	content += titleStyle.Render("Onboard - Partner Registration") + "\n\n"

	for i, item := range m.items {
		cursor := " "
		style := itemStyle
		if m.cursor == i {
			cursor = ">"
			style = selectedStyle
		}
		content += style.Render(cursor+" "+utils.PadString(item.title, 20, ' ')) +
			hintStyle.Render(item.hint) + "\n"
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	content += "\n" + helpStyle.Render("Use ↑/↓ to navigate, Enter to select, q to quit")

	return content
}
