package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/jask/glossview/internal/api"
	"github.com/jask/glossview/internal/graphview"
	"github.com/jask/glossview/internal/loader"
	"github.com/jask/glossview/internal/tabs"
)

const appName = "glossview"

var tabNames = map[tabs.ViewState]string{
	tabs.Glossary: "Glossary",
	tabs.Graph:    "Graph",
}

type graphState struct {
	network *graphview.Network
	errText string
}

// App is the two-tab glossary viewer.
type App struct {
	ctx      context.Context
	log      *zap.Logger
	baseURL  string
	tabs     *tabs.Controller
	active   tabs.ViewState
	visible  tabs.ViewState
	glossary glossaryState
	graph    graphState
	width    int
	height   int
	send     func(tea.Msg)
}

func New(ctx context.Context, client *api.Client, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		ctx:     ctx,
		log:     log,
		baseURL: client.BaseURL(),
		width:   80,
		height:  24,
	}
	a.tabs = tabs.NewController(a,
		loader.NewGlossaryLoader(client, glossaryPane{a}, log),
		loader.NewGraphLoader(client, graphPane{a}, networkRenderer{a}, log),
	)
	return a
}

// Attach routes loader output into p. It must be called before p.Run.
func (a *App) Attach(p *tea.Program) { a.send = p.Send }

func (a *App) Init() tea.Cmd {
	return a.run(a.tabs.Start())
}

// run executes a loader job in a command goroutine. Its results arrive as messages.
func (a *App) run(job tabs.Job) tea.Cmd {
	a.log.Debug("activate tab", zap.Stringer("tab", a.tabs.State()))
	return func() tea.Msg {
		job(a.ctx)
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.scrollGlossary(0)
	case tea.KeyMsg:
		return a.handleKey(m)
	case tea.MouseMsg:
		return a.handleMouse(m)

	case glossaryLoadingMsg:
		a.glossary = glossaryState{loading: string(m), filter: a.glossary.filter}
	case termsMsg:
		a.glossary.loading, a.glossary.errText = "", ""
		a.glossary.terms = m
		a.scrollGlossary(0)
	case glossaryErrMsg:
		a.glossary.loading, a.glossary.terms = "", nil
		a.glossary.errText = string(m)
		a.glossary.offset = 0
	case graphClearedMsg:
		a.graph = graphState{}
	case networkMsg:
		a.graph = graphState{network: m.nw}
	case graphErrMsg:
		a.graph = graphState{errText: string(m)}
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.glossary.editing {
		return a.handleFilterKey(m)
	}
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "1", "left", "h":
		return a, a.run(a.tabs.SelectGlossary())
	case "2", "right", "l":
		return a, a.run(a.tabs.SelectGraph())
	case "r":
		return a, a.run(a.tabs.Reload())
	}
	if a.visible == tabs.Graph {
		a.handleGraphKey(m)
	} else {
		a.handleGlossaryKey(m)
	}
	return a, nil
}

func (a *App) handleGlossaryKey(m tea.KeyMsg) {
	switch m.String() {
	case "down", "j":
		a.scrollGlossary(1)
	case "up", "k":
		a.scrollGlossary(-1)
	case "pgdown", " ":
		a.scrollGlossary(a.bodyHeight())
	case "pgup":
		a.scrollGlossary(-a.bodyHeight())
	case "g", "home":
		a.glossary.offset = 0
	case "G", "end":
		a.scrollGlossary(len(a.glossaryLines()))
	case "/":
		a.glossary.editing = true
		a.glossary.offset = 0
	case "esc":
		a.glossary.filter = ""
		a.glossary.offset = 0
	}
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.glossary.filter = ""
		a.glossary.editing = false
	case tea.KeyEnter:
		a.glossary.editing = false
	case tea.KeyBackspace:
		if r := []rune(a.glossary.filter); len(r) > 0 {
			a.glossary.filter = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		a.glossary.filter += " "
	case tea.KeyRunes:
		a.glossary.filter += string(m.Runes)
	}
	a.glossary.offset = 0
	return a, nil
}

func (a *App) handleGraphKey(m tea.KeyMsg) {
	nw := a.graph.network
	if nw == nil {
		return
	}
	switch m.String() {
	case "tab", "down", "j":
		nw.FocusNext()
	case "shift+tab", "up", "k":
		nw.FocusPrev()
	case "esc":
		nw.ClearFocus()
	}
}

func (a *App) handleMouse(m tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.Y == 0 {
		if m.Action == tea.MouseActionPress && m.Button == tea.MouseButtonLeft {
			if which, ok := a.tabAt(m.X); ok {
				return a, a.run(a.tabs.Select(which))
			}
		}
		return a, nil
	}
	switch a.visible {
	case tabs.Glossary:
		switch m.Button {
		case tea.MouseButtonWheelDown:
			a.scrollGlossary(3)
		case tea.MouseButtonWheelUp:
			a.scrollGlossary(-3)
		}
	case tabs.Graph:
		if a.graph.network != nil && m.Action == tea.MouseActionMotion {
			a.graph.network.Hover(m.X, m.Y-1, a.width, a.bodyHeight())
		}
	}
	return a, nil
}

func (a *App) View() string {
	var body string
	if a.visible == tabs.Graph {
		body = a.renderGraph()
	} else {
		body = a.renderGlossary()
	}
	body = lipgloss.NewStyle().Height(a.bodyHeight()).MaxHeight(a.bodyHeight()).Render(body)
	return a.renderTabBar() + "\n" + body + "\n" + a.renderStatus()
}

func (a *App) renderGraph() string {
	switch {
	case a.graph.errText != "":
		return errorStyle.Render(a.graph.errText)
	case a.graph.network == nil:
		return ""
	}
	return a.graph.network.Render(a.width, a.bodyHeight())
}

func (a *App) tabLabels() (prefix string, labels []string, sep string) {
	prefix = appNameStyle.Render(appName) + "  "
	sep = tabSepStyle.Render("│")
	for _, v := range []tabs.ViewState{tabs.Glossary, tabs.Graph} {
		if v == a.active {
			labels = append(labels, activeTabStyle.Render(tabNames[v]))
		} else {
			labels = append(labels, inactiveTabStyle.Render(tabNames[v]))
		}
	}
	return prefix, labels, sep
}

func (a *App) renderTabBar() string {
	prefix, labels, sep := a.tabLabels()
	return prefix + strings.Join(labels, sep)
}

// tabAt maps a column of the tab bar to the tab drawn there.
func (a *App) tabAt(x int) (tabs.ViewState, bool) {
	prefix, labels, sep := a.tabLabels()
	x -= lipgloss.Width(prefix)
	for i, l := range labels {
		w := lipgloss.Width(l)
		if x >= 0 && x < w {
			return tabs.ViewState(i), true
		}
		x -= w + lipgloss.Width(sep)
	}
	return tabs.Glossary, false
}

func (a *App) renderStatus() string {
	hint := "1 glossary · 2 graph · r reload · q quit"
	if a.visible == tabs.Glossary {
		hint += " · / filter · j/k scroll"
	} else {
		hint += " · tab focus"
	}
	line := ansi.Truncate(" "+a.baseURL+"  "+hint, a.width, "…")
	return statusStyle.Width(a.width).Render(line)
}

func (a *App) bodyHeight() int {
	return max(a.height-2, 1)
}
