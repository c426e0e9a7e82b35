package unveil

// GridLayout arranges a container's children row-major into a fixed number of
// columns. Children keep their own Width/Height; CellWidth/CellHeight define
// the pitch. A zero cell size uses the largest child size in that axis.
type GridLayout struct {
	Columns    int
	CellWidth  float64
	CellHeight float64
	GapX, GapY float64
}

// ColumnCount returns the effective number of columns, or 0 when the layout
// does not define any.
func (g *GridLayout) ColumnCount() int {
	if g == nil || g.Columns <= 0 {
		return 0
	}
	return g.Columns
}

// cellSize returns the column/row pitch for children.
func (g *GridLayout) cellSize(children []*Node) (w, h float64) {
	w, h = g.CellWidth, g.CellHeight
	if w > 0 && h > 0 {
		return w, h
	}
	var maxW, maxH float64
	for _, c := range children {
		if c.Width > maxW {
			maxW = c.Width
		}
		if c.Height > maxH {
			maxH = c.Height
		}
	}
	if w <= 0 {
		w = maxW
	}
	if h <= 0 {
		h = maxH
	}
	return w, h
}

// arrange positions children and returns the resulting content size.
func (g *GridLayout) arrange(children []*Node) (w, h float64) {
	cols := g.ColumnCount()
	if cols == 0 || len(children) == 0 {
		return 0, 0
	}
	cw, ch := g.cellSize(children)
	for i, c := range children {
		row := i / cols
		col := i % cols
		c.X = float64(col) * (cw + g.GapX)
		c.Y = float64(row) * (ch + g.GapY)
		c.transformDirty = true
	}
	rows := (len(children) + cols - 1) / cols
	usedCols := cols
	if len(children) < cols {
		usedCols = len(children)
	}
	w = float64(usedCols)*cw + float64(usedCols-1)*g.GapX
	h = float64(rows)*ch + float64(rows-1)*g.GapY
	return w, h
}

// SetLayout attaches a grid layout and arranges existing children.
func (n *Node) SetLayout(g *GridLayout) {
	n.Layout = g
	n.applyLayout()
}

// applyLayout re-arranges children when a layout is attached and grows the
// node's layout box to fit them.
func (n *Node) applyLayout() {
	if n.Layout == nil {
		return
	}
	w, h := n.Layout.arrange(n.children)
	if w > n.Width {
		n.Width = w
	}
	if h > n.Height {
		n.Height = h
	}
	n.transformDirty = true
}

// GridColumns returns the column count of the container's grid layout, or
// fallback when the container has none. A non-positive fallback uses
// DefaultWaveColumns.
func GridColumns(container *Node, fallback int) int {
	if fallback <= 0 {
		fallback = DefaultWaveColumns
	}
	if container == nil {
		return fallback
	}
	if cols := container.Layout.ColumnCount(); cols > 0 {
		return cols
	}
	return fallback
}
