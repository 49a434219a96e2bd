package world

import (
	"spritefield/sim"
	"spritefield/vmath"
)

// cell is one spatial partition bucket. Its slice keeps capacity between
// rebuilds.
type cell struct {
	actors []*sim.Actor
}

// Grid buckets actors by the center of their bullet hitbox so that
// proximity queries only scan nearby cells
type Grid struct {
	cellSize   float64
	cols, rows int
	cells      []cell
}

// NewGrid creates a grid covering the world of cfg
func NewGrid(cfg Config) *Grid {
	cols, rows := cfg.CellCountX(), cfg.CellCountY()
	cells := make([]cell, cols*rows)
	for i := range cells {
		cells[i].actors = make([]*sim.Actor, 0, 8)
	}
	return &Grid{
		cellSize: cfg.CellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// cellOf converts world coordinates to clamped cell coordinates
func (g *Grid) cellOf(p vmath.Vec2) (int, int) {
	cx := int(p.X / g.cellSize)
	cy := int(p.Y / g.cellSize)
	cx = max(0, min(cx, g.cols-1))
	cy = max(0, min(cy, g.rows-1))
	return cx, cy
}

func (g *Grid) at(cx, cy int) *cell {
	return &g.cells[cy*g.cols+cx]
}

// Rebuild clears every cell and re-inserts actors at their current position
func (g *Grid) Rebuild(actors []*sim.Actor) {
	for i := range g.cells {
		clear(g.cells[i].actors)
		g.cells[i].actors = g.cells[i].actors[:0]
	}
	for _, a := range actors {
		g.Insert(a)
	}
}

// Insert adds an actor to the cell under its current position
func (g *Grid) Insert(a *sim.Actor) {
	c := g.at(g.cellOf(a.Center(a.Bullet)))
	c.actors = append(c.actors, a)
}

// Near returns the actors whose bullet-hitbox center lies within radius of
// center. Results come in cell order, then insertion order.
func (g *Grid) Near(center vmath.Vec2, radius float64) []*sim.Actor {
	found := make([]*sim.Actor, 0, 16)

	minX, minY := g.cellOf(vmath.Vec2{X: center.X - radius, Y: center.Y - radius})
	maxX, maxY := g.cellOf(vmath.Vec2{X: center.X + radius, Y: center.Y + radius})

	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			for _, a := range g.at(cx, cy).actors {
				if vmath.Distance(a.Center(a.Bullet), center) <= radius {
					found = append(found, a)
				}
			}
		}
	}
	return found
}
