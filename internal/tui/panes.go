package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/glossview/internal/glossary"
	"github.com/jask/glossview/internal/graphview"
	"github.com/jask/glossview/internal/tabs"
)

// Loaders run off the update loop; the panes below forward every container mutation as a
// message so the model is only ever touched by Update.

type glossaryLoadingMsg string

type termsMsg []glossary.Term

type glossaryErrMsg string

type graphClearedMsg struct{}

type networkMsg struct{ nw *graphview.Network }

type graphErrMsg string

type glossaryPane struct{ app *App }

func (p glossaryPane) ShowLoading(text string)           { p.app.emit(glossaryLoadingMsg(text)) }
func (p glossaryPane) RenderTerms(terms []glossary.Term) { p.app.emit(termsMsg(terms)) }
func (p glossaryPane) RenderError(text string)           { p.app.emit(glossaryErrMsg(text)) }

type graphPane struct{ app *App }

func (p graphPane) Clear()                  { p.app.emit(graphClearedMsg{}) }
func (p graphPane) RenderError(text string) { p.app.emit(graphErrMsg(text)) }

// networkRenderer builds the widget, layout included, on the loader's goroutine.
type networkRenderer struct{ app *App }

func (r networkRenderer) Draw(nodes []graphview.Node, edges []graphview.Edge, opts graphview.Options) error {
	nw, err := graphview.New(nodes, edges, opts)
	if err != nil {
		return err
	}
	r.app.emit(networkMsg{nw: nw})
	return nil
}

// SetActiveTab and ShowPane are called by the tab controller from inside Update.

func (a *App) SetActiveTab(which tabs.ViewState) { a.active = which }

func (a *App) ShowPane(which tabs.ViewState) { a.visible = which }

func (a *App) emit(msg tea.Msg) {
	if a.send != nil {
		a.send(msg)
	}
}
