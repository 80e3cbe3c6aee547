// Package graphview draws a node/edge network in a terminal pane.
//
// Layout uses gonum's Eades force-directed optimizer; drawing is done on a rune canvas that is
// styled with lipgloss when rendered.
package graphview

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/x/ansi"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"
)

// Node is the widget's node: Title is shown as a tooltip while hovered.
type Node struct {
	ID    string
	Label string
	Title string
}

// Edge is the widget's edge: Label is drawn at the midpoint.
type Edge struct {
	From  string
	To    string
	Label string
}

type link struct {
	from, to int
	label    string
}

// Network is a laid-out graph ready to be drawn at any pane size.
type Network struct {
	nodes []Node
	links []link
	pos   []r2.Vec
	opts  Options
	pal   palette
	focus int
}

// New validates opts, indexes the nodes and runs the layout. Node ids must be unique. Edges
// whose endpoints are not nodes, and self loops, are kept out of the layout and never drawn.
func New(nodes []Node, edges []Edge, opts Options) (*Network, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, dup := index[n.ID]; dup {
			return nil, fmt.Errorf("node id %q already exists", n.ID)
		}
		index[n.ID] = i
	}
	var links []link
	for _, e := range edges {
		from, okFrom := index[e.From]
		to, okTo := index[e.To]
		if !okFrom || !okTo || from == to {
			continue
		}
		links = append(links, link{from: from, to: to, label: e.Label})
	}

	nw := &Network{
		nodes: append([]Node(nil), nodes...),
		links: links,
		opts:  opts,
		pal:   newPalette(opts),
		focus: -1,
	}
	nw.pos = nw.place()
	return nw, nil
}

func (nw *Network) Nodes() []Node { return nw.nodes }

// Links returns the number of edges that will be drawn.
func (nw *Network) Links() int { return len(nw.links) }

func (nw *Network) Options() Options { return nw.opts }

func (nw *Network) place() []r2.Vec {
	n := len(nw.nodes)
	switch {
	case n == 0:
		return nil
	case n == 1:
		return []r2.Vec{{X: 0.5, Y: 0.5}}
	case !nw.opts.Physics.Enabled:
		return circle(n)
	}

	g := simple.NewUndirectedGraph()
	for i := range nw.nodes {
		g.AddNode(simple.Node(i))
	}
	for _, l := range nw.links {
		g.SetEdge(simple.Edge{F: simple.Node(l.from), T: simple.Node(l.to)})
	}
	eades := layout.EadesR2{
		Updates:   nw.opts.Physics.Stabilization.Iterations,
		Repulsion: 1,
		Rate:      0.05,
		Theta:     0.2,
		Src:       rand.NewPCG(uint64(n), uint64(len(nw.links))),
	}
	optimizer := layout.NewOptimizerR2(ordered{g}, eades.Update)
	for optimizer.Update() {
	}

	pos := make([]r2.Vec, n)
	for i := range pos {
		p := optimizer.Coord2(int64(i))
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return circle(n)
		}
		pos[i] = p
	}
	return pos
}

// ordered iterates nodes and neighbours by id. The simple graphs iterate maps, which would
// make the random initial placement, and so the layout, differ between runs.
type ordered struct {
	*simple.UndirectedGraph
}

func (g ordered) Nodes() graph.Nodes { return byID(g.UndirectedGraph.Nodes()) }

func (g ordered) From(id int64) graph.Nodes { return byID(g.UndirectedGraph.From(id)) }

func byID(it graph.Nodes) graph.Nodes {
	nodes := graph.NodesOf(it)
	slices.SortFunc(nodes, func(a, b graph.Node) int { return int(a.ID() - b.ID()) })
	return iterator.NewOrderedNodes(nodes)
}

func circle(n int) []r2.Vec {
	pos := make([]r2.Vec, n)
	for i := range pos {
		a := 2 * math.Pi * float64(i) / float64(n)
		pos[i] = r2.Vec{X: math.Cos(a), Y: math.Sin(a)}
	}
	return pos
}

// Focus handling. All of it is a no-op unless interaction.hover is enabled.

func (nw *Network) FocusNext() { nw.step(1) }
func (nw *Network) FocusPrev() { nw.step(-1) }

func (nw *Network) step(d int) {
	if !nw.opts.Interaction.Hover || len(nw.nodes) == 0 {
		return
	}
	if nw.focus < 0 {
		if d > 0 {
			nw.focus = 0
		} else {
			nw.focus = len(nw.nodes) - 1
		}
		return
	}
	nw.focus = (nw.focus + d + len(nw.nodes)) % len(nw.nodes)
}

// Hover focuses the node drawn at cell (x, y) of a width×height pane, or clears focus.
func (nw *Network) Hover(x, y, width, height int) {
	if !nw.opts.Interaction.Hover {
		return
	}
	nw.focus = nw.NodeAt(x, y, width, height)
}

func (nw *Network) ClearFocus() { nw.focus = -1 }

func (nw *Network) Focused() (Node, bool) {
	if nw.focus < 0 || nw.focus >= len(nw.nodes) {
		return Node{}, false
	}
	return nw.nodes[nw.focus], true
}

// NodeAt returns the index of the node whose shape covers cell (x, y) when the network is
// rendered at width×height, or -1.
func (nw *Network) NodeAt(x, y, width, height int) int {
	boxes := nw.geometry(width, nw.canvasHeight(height))
	for i := len(boxes) - 1; i >= 0; i-- {
		if boxes[i].contains(x, y) {
			return i
		}
	}
	return -1
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (r rect) center() (int, int) {
	return r.x + r.w/2, r.y + r.h/2
}

func (nw *Network) label(i int) string {
	label := nw.nodes[i].Label
	if label == "" {
		label = nw.nodes[i].ID
	}
	if limit := nw.opts.Nodes.Size; limit > 0 && ansi.StringWidth(label) > limit {
		label = ansi.Truncate(label, limit, "…")
	}
	return label
}

func (nw *Network) shapeSize(i int) (int, int) {
	w := ansi.StringWidth(nw.label(i))
	switch nw.opts.Nodes.Shape {
	case ShapeBox:
		return w + 4, 3
	case ShapeDot:
		return w + 2, 1
	default:
		return max(w, 1), 1
	}
}

// geometry scales layout coordinates into the pane, keeping every shape fully inside it.
func (nw *Network) geometry(width, height int) []rect {
	if len(nw.nodes) == 0 || width <= 0 || height <= 0 {
		return nil
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range nw.pos {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	boxes := make([]rect, len(nw.nodes))
	for i, p := range nw.pos {
		w, h := nw.shapeSize(i)
		fx, fy := 0.5, 0.5
		if maxX > minX {
			fx = (p.X - minX) / (maxX - minX)
		}
		if maxY > minY {
			fy = (p.Y - minY) / (maxY - minY)
		}
		x := int(math.Round(fx * float64(width-w)))
		y := int(math.Round(fy * float64(height-h)))
		boxes[i] = rect{x: clamp(x, 0, max(width-w, 0)), y: clamp(y, 0, max(height-h, 0)), w: w, h: h}
	}
	return boxes
}

func (nw *Network) canvasHeight(height int) int {
	if nw.opts.Interaction.Hover && height > 1 {
		return height - 1
	}
	return height
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
