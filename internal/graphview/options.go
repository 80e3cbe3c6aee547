package graphview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Node shapes.
const (
	ShapeBox  = "box"
	ShapeText = "text"
	ShapeDot  = "dot"
)

// Arrow placements.
const (
	ArrowsTo   = "to"
	ArrowsFrom = "from"
	ArrowsNone = ""
)

// Options configures a Network. Field names follow the option tree of the browser widget the
// graph tab was designed against (interaction.hover, edges.arrows, nodes.shape, ...).
type Options struct {
	Interaction InteractionOptions
	Edges       EdgeOptions
	Nodes       NodeOptions
	Physics     PhysicsOptions
}

type InteractionOptions struct {
	Hover bool
}

type EdgeOptions struct {
	Arrows string
	Color  EdgeColor
}

type EdgeColor struct {
	Color     string
	Highlight string
}

type NodeOptions struct {
	Shape string
	// Size caps the label width in cells.
	Size  int
	Color NodeColor
	Font  FontOptions
}

type NodeColor struct {
	Background string
	Border     string
}

// FontOptions.Size is validated but a terminal cell has a fixed font size.
type FontOptions struct {
	Size  int
	Color string
}

type PhysicsOptions struct {
	Enabled       bool
	Stabilization Stabilization
}

// Stabilization.Iterations caps the number of layout updates.
type Stabilization struct {
	Iterations int
}

// Validate reports the first option the widget cannot honour.
func (o Options) Validate() error {
	switch o.Nodes.Shape {
	case ShapeBox, ShapeText, ShapeDot:
	default:
		return fmt.Errorf("nodes.shape: unsupported shape %q", o.Nodes.Shape)
	}
	switch o.Edges.Arrows {
	case ArrowsTo, ArrowsFrom, ArrowsNone:
	default:
		return fmt.Errorf("edges.arrows: unsupported value %q", o.Edges.Arrows)
	}
	if o.Nodes.Size < 0 {
		return fmt.Errorf("nodes.size: must not be negative, got %d", o.Nodes.Size)
	}
	if o.Nodes.Font.Size < 0 {
		return fmt.Errorf("nodes.font.size: must not be negative, got %d", o.Nodes.Font.Size)
	}
	if o.Physics.Enabled && o.Physics.Stabilization.Iterations <= 0 {
		return fmt.Errorf("physics.stabilization.iterations: must be positive, got %d", o.Physics.Stabilization.Iterations)
	}
	return nil
}

type palette struct {
	edge      lipgloss.Style
	edgeHi    lipgloss.Style
	edgeLabel lipgloss.Style
	border    lipgloss.Style
	borderHi  lipgloss.Style
	text      lipgloss.Style
	tooltip   lipgloss.Style
}

func newPalette(o Options) palette {
	edge := lipgloss.Color(o.Edges.Color.Color)
	hi := lipgloss.Color(o.Edges.Color.Highlight)
	return palette{
		edge:      lipgloss.NewStyle().Foreground(edge),
		edgeHi:    lipgloss.NewStyle().Foreground(hi).Bold(true),
		edgeLabel: lipgloss.NewStyle().Foreground(edge).Italic(true),
		border:    lipgloss.NewStyle().Foreground(lipgloss.Color(o.Nodes.Color.Border)),
		borderHi:  lipgloss.NewStyle().Foreground(hi).Bold(true),
		text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(o.Nodes.Font.Color)).
			Background(lipgloss.Color(o.Nodes.Color.Background)),
		tooltip: lipgloss.NewStyle().Foreground(hi),
	}
}
