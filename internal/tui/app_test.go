package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/glossview/internal/api"
	"github.com/jask/glossview/internal/glossary"
	"github.com/jask/glossview/internal/loader"
	"github.com/jask/glossview/internal/tabs"
)

const (
	termsBody = `[{"id":1,"name":"Zeta","description":"the last letter"},{"id":2,"name":"Alpha","description":"the first letter"}]`
	graphBody = `{"nodes":[{"id":1,"label":"API","description":"HTTP surface"},{"id":2,"label":"DB","description":"sqlite"}],
		"edges":[{"from":1,"to":2,"relation":"reads"}]}`
)

type backend struct {
	termsStatus int
	termsBody   string
	graphBody   string
	termsHits   atomic.Int32
	graphHits   atomic.Int32
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/terms/":
		b.termsHits.Add(1)
		w.WriteHeader(b.termsStatus)
		_, _ = w.Write([]byte(b.termsBody))
	case "/graph":
		b.graphHits.Add(1)
		_, _ = w.Write([]byte(b.graphBody))
	default:
		http.NotFound(w, r)
	}
}

func newBackend() *backend {
	return &backend{termsStatus: http.StatusOK, termsBody: termsBody, graphBody: graphBody}
}

type harness struct {
	app  *App
	msgs chan tea.Msg
}

func newHarness(t *testing.T, b *backend) *harness {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	h := &harness{app: New(context.Background(), api.New(srv.URL), nil), msgs: make(chan tea.Msg, 64)}
	h.app.send = func(m tea.Msg) { h.msgs <- m }
	h.app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return h
}

// do runs cmd to completion and feeds everything the loaders sent back into Update.
func (h *harness) do(cmd tea.Cmd) {
	if cmd != nil {
		cmd()
	}
	for {
		select {
		case m := <-h.msgs:
			h.app.Update(m)
		default:
			return
		}
	}
}

// collect runs cmd and returns what the loaders sent, without applying it.
func (h *harness) collect(cmd tea.Cmd) []tea.Msg {
	cmd()
	var out []tea.Msg
	for {
		select {
		case m := <-h.msgs:
			out = append(out, m)
		default:
			return out
		}
	}
}

func (h *harness) key(s string) {
	var msg tea.KeyMsg
	switch s {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := h.app.Update(msg)
	h.do(cmd)
}

func (h *harness) view() string { return ansi.Strip(h.app.View()) }

func TestInitShowsGlossaryInOrder(t *testing.T) {
	b := newBackend()
	h := newHarness(t, b)

	h.do(h.app.Init())

	out := h.view()
	require.Equal(t, tabs.Glossary, h.app.active)
	require.Equal(t, tabs.Glossary, h.app.visible)
	require.Contains(t, out, "the last letter")
	zeta, alpha := strings.Index(out, "Zeta"), strings.Index(out, "Alpha")
	require.True(t, zeta >= 0 && alpha > zeta, "terms keep response order")
	require.EqualValues(t, 1, b.termsHits.Load())
	require.Zero(t, b.graphHits.Load())
	require.Len(t, strings.Split(out, "\n"), 24)
}

func TestLoadingTextIsShownUntilTermsArrive(t *testing.T) {
	h := newHarness(t, newBackend())
	h.app.Update(glossaryLoadingMsg(loader.LoadingGlossaryText))
	require.Contains(t, h.view(), "Loading glossary...")

	h.app.Update(termsMsg{{Name: "Mu", Description: "m"}})
	out := h.view()
	require.NotContains(t, out, "Loading glossary...")
	require.Contains(t, out, "Mu")
}

func TestGlossaryErrorText(t *testing.T) {
	b := newBackend()
	b.termsStatus = http.StatusInternalServerError
	h := newHarness(t, b)

	h.do(h.app.Init())

	out := h.view()
	require.Contains(t, out, "Error loading glossary.")
	require.NotContains(t, out, "Zeta")
}

func TestSwitchToGraphDrawsNetwork(t *testing.T) {
	b := newBackend()
	h := newHarness(t, b)
	h.do(h.app.Init())

	h.key("2")

	require.Equal(t, tabs.Graph, h.app.active)
	require.Equal(t, tabs.Graph, h.app.visible)
	require.NotNil(t, h.app.graph.network)
	out := h.view()
	require.Contains(t, out, "API")
	require.Contains(t, out, "DB")
	require.NotContains(t, out, "Zeta")

	h.key("tab")
	require.Contains(t, h.view(), "API: HTTP surface")
}

func TestGraphErrorText(t *testing.T) {
	b := newBackend()
	b.graphBody = "<html>"
	h := newHarness(t, b)

	h.key("2")

	require.Nil(t, h.app.graph.network)
	require.Contains(t, h.view(), "Error loading graph.")
}

func TestInterleavedGraphLoadsLastMessageWins(t *testing.T) {
	b := newBackend()
	h := newHarness(t, b)

	b.graphBody = "<html>"
	_, cmd := h.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	failed := h.collect(cmd)
	require.Len(t, failed, 2)
	require.IsType(t, graphClearedMsg{}, failed[0])
	require.IsType(t, graphErrMsg(""), failed[1])

	b.graphBody = graphBody
	_, cmd = h.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	drawn := h.collect(cmd)
	require.Len(t, drawn, 2)
	require.IsType(t, graphClearedMsg{}, drawn[0])
	require.IsType(t, networkMsg{}, drawn[1])

	// The earlier load finishes last and its error replaces the drawn network.
	for _, m := range []tea.Msg{failed[0], drawn[0], drawn[1], failed[1]} {
		h.app.Update(m)
	}
	require.Nil(t, h.app.graph.network)
	out := h.view()
	require.Contains(t, out, "Error loading graph.")
	require.NotContains(t, out, "API")

	// The other way round the network is shown and the error is gone.
	for _, m := range []tea.Msg{drawn[0], failed[0], failed[1], drawn[1]} {
		h.app.Update(m)
	}
	require.NotNil(t, h.app.graph.network)
	out = h.view()
	require.Contains(t, out, "API")
	require.NotContains(t, out, "Error loading graph.")
	require.EqualValues(t, 2, b.graphHits.Load())
}

func TestReselectRefetches(t *testing.T) {
	b := newBackend()
	h := newHarness(t, b)
	h.do(h.app.Init())

	h.key("1")
	h.key("r")
	require.EqualValues(t, 3, b.termsHits.Load())

	h.key("2")
	h.key("2")
	require.EqualValues(t, 2, b.graphHits.Load())
	h.key("1")
	require.Equal(t, tabs.Glossary, h.app.visible)
	require.EqualValues(t, 4, b.termsHits.Load())
}

func TestClickingTabBarSwitches(t *testing.T) {
	b := newBackend()
	h := newHarness(t, b)
	h.do(h.app.Init())

	prefix, labels, sep := h.app.tabLabels()
	x := lipgloss.Width(prefix) + lipgloss.Width(labels[0]) + lipgloss.Width(sep)
	_, cmd := h.app.Update(tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.do(cmd)

	require.Equal(t, tabs.Graph, h.app.visible)
	require.EqualValues(t, 1, b.graphHits.Load())

	_, ok := h.app.tabAt(0)
	require.False(t, ok, "app name is not a tab")
}

func TestFilterNarrowsCards(t *testing.T) {
	h := newHarness(t, newBackend())
	h.do(h.app.Init())

	h.key("/")
	for _, r := range "alp" {
		h.key(string(r))
	}
	h.key("enter")

	out := h.view()
	require.Contains(t, out, "Alpha")
	require.NotContains(t, out, "Zeta")
	require.Contains(t, out, "1 of 2")

	h.key("esc")
	require.Contains(t, h.view(), "Zeta")
}

func TestFilterTerms(t *testing.T) {
	terms := []glossary.Term{
		{Name: "Alpha", Description: "first"},
		{Name: "Beta", Description: "second"},
		{Name: "Gamma", Description: "third, after beta"},
	}
	require.Equal(t, terms, filterTerms(terms, ""))
	require.Equal(t, []glossary.Term{terms[1], terms[2]}, filterTerms(terms, "BETA"))
	require.Equal(t, []glossary.Term{terms[0]}, filterTerms(terms, "alpah"))
	require.Empty(t, filterTerms(terms, "zz"))
}

func TestScrollStaysInBounds(t *testing.T) {
	h := newHarness(t, newBackend())
	many := make([]glossary.Term, 30)
	for i := range many {
		many[i] = glossary.Term{Name: "T", Description: "d"}
	}
	h.app.Update(termsMsg(many))

	h.key("k")
	require.Zero(t, h.app.glossary.offset)
	h.key("G")
	limit := len(h.app.glossaryLines()) - h.app.bodyHeight()
	require.Equal(t, limit, h.app.glossary.offset)
	h.key("j")
	require.Equal(t, limit, h.app.glossary.offset)
}
