package graphview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type kind uint8

const (
	kindEmpty kind = iota
	kindEdge
	kindEdgeHi
	kindEdgeLabel
	kindBorder
	kindBorderHi
	kindText
)

type cell struct {
	r rune
	k kind
}

type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	cells := make([][]cell, h)
	for y := range cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		cells[y] = row
	}
	return &canvas{w: w, h: h, cells: cells}
}

// A cell with r == 0 is the second column of the wide rune to its left.
const continuation rune = 0

func (c *canvas) set(x, y int, r rune, k kind) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	row := c.cells[y]
	// Overwriting half of a wide rune blanks the other half.
	if row[x].r == continuation && x > 0 {
		row[x-1].r = ' '
	}
	if x+1 < c.w && row[x+1].r == continuation {
		row[x+1].r = ' '
	}
	row[x] = cell{r: r, k: k}
}

func (c *canvas) get(x, y int) cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return cell{}
	}
	return c.cells[y][x]
}

// text writes s from column x, advancing by each rune's display width.
func (c *canvas) text(x, y int, s string, k kind) {
	for _, r := range s {
		w := ansi.StringWidth(string(r))
		switch {
		case w <= 0:
			continue
		case w == 1:
			c.set(x, y, r, k)
		case x+w > c.w:
			c.set(x, y, ' ', k)
		default:
			c.set(x, y, r, k)
			for i := 1; i < w; i++ {
				c.set(x+i, y, ' ', k)
				c.cells[y][x+i].r = continuation
			}
		}
		x += w
	}
}

func (c *canvas) render(p palette) []string {
	lines := make([]string, c.h)
	for y, row := range c.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].k == row[start].k {
				continue
			}
			b.WriteString(p.style(row[start].k).Render(runes(row[start:x])))
			start = x
		}
		lines[y] = b.String()
	}
	return lines
}

func runes(cells []cell) string {
	rs := make([]rune, 0, len(cells))
	for _, c := range cells {
		if c.r != continuation {
			rs = append(rs, c.r)
		}
	}
	return string(rs)
}

func (p palette) style(k kind) lipgloss.Style {
	switch k {
	case kindEdge:
		return p.edge
	case kindEdgeHi:
		return p.edgeHi
	case kindEdgeLabel:
		return p.edgeLabel
	case kindBorder:
		return p.border
	case kindBorderHi:
		return p.borderHi
	case kindText:
		return p.text
	default:
		return lipgloss.NewStyle()
	}
}

// Render draws the network into a width×height block of text. With hover enabled the last
// line is reserved for the focused node's tooltip.
func (nw *Network) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	ch := nw.canvasHeight(height)
	c := newCanvas(width, ch)
	if len(nw.nodes) == 0 {
		c.text(max((width-len("No nodes."))/2, 0), ch/2, "No nodes.", kindEdgeLabel)
	}

	boxes := nw.geometry(width, ch)
	for _, l := range nw.links {
		k := kindEdge
		if nw.focus >= 0 && (l.from == nw.focus || l.to == nw.focus) {
			k = kindEdgeHi
		}
		nw.drawLink(c, boxes[l.from], boxes[l.to], l.label, k)
	}
	for i, b := range boxes {
		nw.drawShape(c, i, b)
	}

	lines := c.render(nw.pal)
	if ch < height {
		tip := ""
		if n, ok := nw.Focused(); ok {
			tip = n.Label
			if n.Title != "" {
				tip += ": " + n.Title
			}
			tip = nw.pal.tooltip.Render(ansi.Truncate(tip, width, "…"))
		}
		lines = append(lines, tip)
	}
	return strings.Join(lines, "\n")
}

func (nw *Network) drawShape(c *canvas, i int, b rect) {
	label := nw.label(i)
	border := kindBorder
	if i == nw.focus {
		border = kindBorderHi
	}
	switch nw.opts.Nodes.Shape {
	case ShapeBox:
		inner := b.w - 2
		c.set(b.x, b.y, '┌', border)
		c.text(b.x+1, b.y, strings.Repeat("─", inner), border)
		c.set(b.x+b.w-1, b.y, '┐', border)
		c.set(b.x, b.y+1, '│', border)
		c.text(b.x+1, b.y+1, " "+label+" ", kindText)
		c.set(b.x+b.w-1, b.y+1, '│', border)
		c.set(b.x, b.y+2, '└', border)
		c.text(b.x+1, b.y+2, strings.Repeat("─", inner), border)
		c.set(b.x+b.w-1, b.y+2, '┘', border)
	case ShapeDot:
		c.set(b.x, b.y, '●', border)
		c.text(b.x+1, b.y, " "+label, kindText)
	default:
		c.text(b.x, b.y, label, kindText)
	}
}

func (nw *Network) drawLink(c *canvas, from, to rect, label string, k kind) {
	x0, y0 := from.center()
	x1, y1 := to.center()
	pts := line(x0, y0, x1, y1)

	// Keep only the stretch between the two shapes.
	var path []point
	for _, p := range pts {
		if from.contains(p.x, p.y) || to.contains(p.x, p.y) {
			continue
		}
		path = append(path, p)
	}
	if len(path) == 0 {
		return
	}
	for i, p := range path {
		prev := point{x0, y0}
		if i > 0 {
			prev = path[i-1]
		}
		c.set(p.x, p.y, stroke(p.x-prev.x, p.y-prev.y), k)
	}

	switch nw.opts.Edges.Arrows {
	case ArrowsTo:
		end := path[len(path)-1]
		c.set(end.x, end.y, arrow(x1-x0, y1-y0), k)
	case ArrowsFrom:
		start := path[0]
		c.set(start.x, start.y, arrow(x0-x1, y0-y1), k)
	}

	if label == "" || len(path) < 3 {
		return
	}
	mid := path[len(path)/2]
	x := mid.x - ansi.StringWidth(label)/2
	for _, r := range label {
		w := ansi.StringWidth(string(r))
		if w <= 0 {
			continue
		}
		free := true
		for i := 0; i < w; i++ {
			if under := c.get(x+i, mid.y); under.k != kindEmpty && under.k != kindEdge && under.k != kindEdgeHi {
				free = false
			}
		}
		if free {
			c.text(x, mid.y, string(r), kindEdgeLabel)
		}
		x += w
	}
}

type point struct{ x, y int }

// line is Bresenham's walk from (x0, y0) to (x1, y1), both ends included.
func line(x0, y0, x1, y1 int) []point {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	var pts []point
	for {
		pts = append(pts, point{x0, y0})
		if x0 == x1 && y0 == y1 {
			return pts
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func stroke(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// arrow picks a head for direction (dx, dy); cells are about twice as tall as wide.
func arrow(dx, dy int) rune {
	ax, ay := abs(dx), 2*abs(dy)
	switch {
	case ax > 2*ay:
		if dx > 0 {
			return '→'
		}
		return '←'
	case ay > 2*ax:
		if dy > 0 {
			return '↓'
		}
		return '↑'
	case dx > 0 && dy > 0:
		return '↘'
	case dx > 0:
		return '↗'
	case dy > 0:
		return '↙'
	default:
		return '↖'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
