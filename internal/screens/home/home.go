package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linedrill/internal/questions"
	"github.com/abhisek/linedrill/internal/router"
	"github.com/abhisek/linedrill/internal/screen"
	"github.com/abhisek/linedrill/internal/screens/history"
	"github.com/abhisek/linedrill/internal/screens/practice"
	"github.com/abhisek/linedrill/internal/ui/components"
	"github.com/abhisek/linedrill/internal/ui/theme"
)

// HomeScreen is the main menu: practice all types, one type, or browse
// history.
type HomeScreen struct {
	menu      components.Menu
	coachLive bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. base configures every practice session it
// starts; its Types field is replaced per menu item.
func New(base practice.Config) *HomeScreen {
	start := func(types ...questions.TypeID) func() tea.Cmd {
		return func() tea.Cmd {
			cfg := base
			cfg.Types = types
			return router.Push(practice.New(cfg))
		}
	}

	items := []components.MenuItem{
		{Label: "Practice all types", Action: start()},
	}
	for _, id := range questions.RegisteredTypes() {
		items = append(items, components.MenuItem{
			Label:  questions.DisplayName(id),
			Detail: string(id),
			Action: start(id),
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "History",
			Disabled: base.Repo == nil,
			Action: func() tea.Cmd {
				return router.Push(history.New(base.Repo))
			},
		},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)

	return &HomeScreen{
		menu:      components.NewMenu(items),
		coachLive: base.Coach != nil,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		theme.Title.Render("L I N E D R I L L"),
		theme.Subtitle.Render("Draw lines on the grid. Two points make a line."),
	)

	coachLine := "AI coach: off"
	if h.coachLive {
		coachLine = "AI coach: on"
	}
	sections = append(sections, theme.Hint.Render(coachLine))

	sections = append(sections, theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
