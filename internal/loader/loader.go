// Package loader holds the fetch-then-render routines behind the two tabs.
//
// A loader never returns an error: failures are converted into a fixed message on its view
// and a log entry, and the next Load starts from scratch. Nothing is cached between calls.
package loader

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jask/glossview/internal/api"
	"github.com/jask/glossview/internal/glossary"
	"github.com/jask/glossview/internal/graphview"
)

// Fixed user-visible texts.
const (
	LoadingGlossaryText = "Loading glossary..."
	GlossaryErrorText   = "Error loading glossary."
	GraphErrorText      = "Error loading graph."
)

// RenderError wraps a failure while decoding a response or building the graph widget.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("render %s: %v", e.Op, e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// TermSource is satisfied by *api.Client.
type TermSource interface {
	Terms(ctx context.Context) ([]glossary.Term, error)
}

// GraphSource is satisfied by *api.Client.
type GraphSource interface {
	Graph(ctx context.Context) (glossary.Graph, error)
}

// GlossaryView is the glossary container.
type GlossaryView interface {
	ShowLoading(text string)
	// RenderTerms replaces the container contents with one card per term, in order.
	RenderTerms(terms []glossary.Term)
	RenderError(text string)
}

// GraphView is the graph container.
type GraphView interface {
	Clear()
	RenderError(text string)
}

// Renderer draws a network into the graph container.
type Renderer interface {
	Draw(nodes []graphview.Node, edges []graphview.Edge, opts graphview.Options) error
}

// Loader is what the tab controller runs on activation.
type Loader interface {
	Load(ctx context.Context)
}

type GlossaryLoader struct {
	src  TermSource
	view GlossaryView
	log  *zap.Logger
}

func NewGlossaryLoader(src TermSource, view GlossaryView, log *zap.Logger) *GlossaryLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &GlossaryLoader{src: src, view: view, log: log}
}

func (l *GlossaryLoader) Load(ctx context.Context) {
	l.view.ShowLoading(LoadingGlossaryText)

	terms, err := l.src.Terms(ctx)
	if err != nil {
		var fe *api.FetchError
		if !errors.As(err, &fe) {
			err = &RenderError{Op: "glossary", Err: err}
		}
		l.view.RenderError(GlossaryErrorText)
		l.log.Error("load glossary", zap.String("pane", "glossary-content"), zap.Error(err))
		return
	}
	l.view.RenderTerms(terms)
	l.log.Debug("glossary rendered", zap.Int("terms", len(terms)))
}

type GraphLoader struct {
	src      GraphSource
	view     GraphView
	renderer Renderer
	opts     graphview.Options
	log      *zap.Logger
}

func NewGraphLoader(src GraphSource, view GraphView, renderer Renderer, log *zap.Logger) *GraphLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &GraphLoader{src: src, view: view, renderer: renderer, opts: NetworkOptions(), log: log}
}

func (l *GraphLoader) Load(ctx context.Context) {
	l.view.Clear()

	if err := l.draw(ctx); err != nil {
		l.view.RenderError(GraphErrorText)
		l.log.Error("load graph", zap.String("pane", "network"), zap.Error(err))
	}
}

func (l *GraphLoader) draw(ctx context.Context) error {
	data, err := l.src.Graph(ctx)
	if err != nil {
		return &RenderError{Op: "graph", Err: err}
	}
	nodes, edges := ToWidget(data)
	if err := l.renderer.Draw(nodes, edges, l.opts); err != nil {
		return &RenderError{Op: "network", Err: err}
	}
	l.log.Debug("graph rendered", zap.Int("nodes", len(nodes)), zap.Int("edges", len(edges)))
	return nil
}

// ToWidget maps the API graph into the widget's node and edge representation. Edges are
// passed through without checking their endpoints.
func ToWidget(g glossary.Graph) ([]graphview.Node, []graphview.Edge) {
	nodes := make([]graphview.Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, graphview.Node{ID: string(n.ID), Label: n.Label, Title: n.Description})
	}
	edges := make([]graphview.Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, graphview.Edge{From: string(e.From), To: string(e.To), Label: e.Relation})
	}
	return nodes, edges
}

// NetworkOptions is the fixed widget configuration used by the graph tab.
func NetworkOptions() graphview.Options {
	return graphview.Options{
		Interaction: graphview.InteractionOptions{Hover: true},
		Edges: graphview.EdgeOptions{
			Arrows: graphview.ArrowsTo,
			Color:  graphview.EdgeColor{Color: "#848484", Highlight: "#4CAF50"},
		},
		Nodes: graphview.NodeOptions{
			Shape: graphview.ShapeBox,
			Size:  15,
			Color: graphview.NodeColor{Background: "#5BC0EB", Border: "#4CAF50"},
			Font:  graphview.FontOptions{Size: 14, Color: "#FFFFFF"},
		},
		Physics: graphview.PhysicsOptions{
			Enabled:       true,
			Stabilization: graphview.Stabilization{Iterations: 100},
		},
	}
}
