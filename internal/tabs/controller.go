// Package tabs owns the view state: which of the two tabs is shown.
package tabs

import (
	"context"

	"github.com/jask/glossview/internal/loader"
)

// ViewState is the active tab.
type ViewState int

const (
	Glossary ViewState = iota
	Graph
)

func (v ViewState) String() string {
	switch v {
	case Graph:
		return "graph"
	default:
		return "glossary"
	}
}

// TabID is the identifier of the tab control for v.
func (v ViewState) TabID() string {
	if v == Graph {
		return "tab-graph"
	}
	return "tab-glossary"
}

// PaneID is the identifier of the content container for v.
func (v ViewState) PaneID() string {
	if v == Graph {
		return "graph-content"
	}
	return "glossary-content"
}

// View is the tab bar and pane visibility surface.
type View interface {
	// SetActiveTab marks which's tab control active and the other inactive.
	SetActiveTab(which ViewState)
	// ShowPane makes which's container visible and hides the other.
	ShowPane(which ViewState)
}

// Job is a loader run, executed off the UI loop.
type Job func(ctx context.Context)

// Controller switches between the glossary and graph tabs. It is not safe for concurrent use;
// the UI loop owns it.
type Controller struct {
	state    ViewState
	view     View
	glossary loader.Loader
	graph    loader.Loader
}

func NewController(view View, glossary, graph loader.Loader) *Controller {
	return &Controller{state: Glossary, view: view, glossary: glossary, graph: graph}
}

func (c *Controller) State() ViewState { return c.state }

// Start performs the initial activation of the glossary tab.
func (c *Controller) Start() Job { return c.SelectGlossary() }

func (c *Controller) SelectGlossary() Job { return c.Select(Glossary) }

func (c *Controller) SelectGraph() Job { return c.Select(Graph) }

// Select switches to which and returns its load. Selecting the active tab is not a no-op: its
// loader runs again.
func (c *Controller) Select(which ViewState) Job {
	if which != Graph {
		which = Glossary
	}
	c.state = which
	c.view.SetActiveTab(which)
	c.view.ShowPane(which)
	l := c.glossary
	if which == Graph {
		l = c.graph
	}
	return l.Load
}

// Reload re-runs the active tab's loader.
func (c *Controller) Reload() Job { return c.Select(c.state) }

// Toggle selects the tab that is not active.
func (c *Controller) Toggle() Job {
	if c.state == Glossary {
		return c.SelectGraph()
	}
	return c.SelectGlossary()
}
