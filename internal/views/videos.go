package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/onboard/internal/api"
	"rhystmorgan/onboard/internal/models"
	"rhystmorgan/onboard/internal/utils"
)

const listTimeout = 15 * time.Second

// VideoLister fetches the uploaded video catalogue.
type VideoLister interface {
	ListVideos(ctx context.Context) ([]models.Video, error)
}

type videosLoadedMsg struct {
	videos []models.Video
	err    error
}

type VideoListModel struct {
	lister  VideoLister
	videos  []models.Video
	cursor  int
	loading bool
	err     error
	spinner spinner.Model
	loaded  time.Time
	width   int
}

func NewVideoListModel(lister VideoLister) *VideoListModel {
	return &VideoListModel{
		lister:  lister,
		spinner: utils.NewSpinner(),
	}
}

// Load starts fetching the catalogue.
func (m *VideoListModel) Load() tea.Cmd {
	if m.lister == nil || m.loading {
		return nil
	}
	m.loading = true
	m.err = nil

	lister := m.lister
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()
		videos, err := lister.ListVideos(ctx)
		return videosLoadedMsg{videos: videos, err: err}
	})
}

func (m *VideoListModel) Update(msg tea.Msg) (*VideoListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case videosLoadedMsg:
		m.loading = false
		m.loaded = time.Now()
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.videos = msg.videos
		if m.cursor >= len(m.videos) {
			m.cursor = 0
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.videos)-1 {
				m.cursor++
			}
		case "r":
			return m, m.Load()
		}
	}

	return m, nil
}

func (m *VideoListModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true).
		Padding(1, 0)

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Bold(true)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Uploaded videos"))
	content.WriteString("\n\n")

	switch {
	case m.loading:
		content.WriteString(m.spinner.View() + " Loading videos...")
	case m.err != nil:
		content.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red)).
			Render("✗ " + listErrorMessage(m.err)))
	case len(m.videos) == 0:
		content.WriteString(mutedStyle.Render("No videos uploaded yet."))
	default:
		for i, v := range m.videos {
			line := fmt.Sprintf("%-4s %s", v.ID, utils.TruncateString(v.Title, 40))
			if i == m.cursor {
				content.WriteString(selectedStyle.Render("> " + line))
			} else {
				content.WriteString("  " + line)
			}
			content.WriteString("\n")

			thumb := "no thumbnail"
			if v.HasThumbnail() {
				thumb = utils.TruncateString(v.Thumbnail, 60)
			}
			content.WriteString(mutedStyle.Render("     thumbnail: " + thumb))
			content.WriteString("\n")
			content.WriteString(mutedStyle.Render("     file: " + utils.TruncateString(v.File, 60)))
			content.WriteString("\n")
		}
	}

	if !m.loaded.IsZero() && !m.loading {
		content.WriteString("\n")
		content.WriteString(mutedStyle.Render("Updated " + utils.FormatTimeAgo(m.loaded)))
	}

	content.WriteString("\n\n")
	content.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true).
		Render("↑/↓: move • r: refresh • Esc: menu"))

	return content.String()
}

func listErrorMessage(err error) string {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	msg := apiErr.Message
	if msg == "" {
		msg = apiErr.UserMessage()
	}
	if apiErr.IsRetryable() {
		msg += " Press r to try again."
	}
	return msg
}
