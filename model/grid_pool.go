package model

import (
	"iter"
	"sync"
)

// Snapshot is a read-only copy of one generation, safe to read while the
// source grid keeps changing
type Snapshot struct {
	width  int
	height int
	cells  [][]bool
}

// Dimensions returns the width and height captured by the snapshot
func (s *Snapshot) Dimensions() (int, int) {
	return s.width, s.height
}

// Get returns the state of a cell, false outside the captured area
func (s *Snapshot) Get(x, y int) bool {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return false
	}
	return s.cells[y][x]
}

// All iterates the snapshot in row-major order
func (s *Snapshot) All() iter.Seq2[Point, bool] {
	return func(yield func(Point, bool) bool) {
		for y, row := range s.cells {
			for x, alive := range row {
				if !yield(Point{X: x, Y: y}, alive) {
					return
				}
			}
		}
	}
}

func (s *Snapshot) String() string {
	return formatCells(s.cells)
}

// reset reshapes the snapshot. Buffers are kept when the shape is unchanged.
func (s *Snapshot) reset(width, height int) {
	if s.width == width && s.height == height {
		return
	}
	s.width, s.height = width, height
	s.cells = newCells(width, height)
}

// Snapshot copies the current generation. A nil pool allocates a fresh snapshot.
func (g *Grid) Snapshot(pool *SnapshotPool) *Snapshot {
	var s *Snapshot
	if pool != nil {
		s = pool.Get(g.width, g.height)
	} else {
		s = &Snapshot{}
		s.reset(g.width, g.height)
	}

	for y, row := range g.cells {
		copy(s.cells[y], row)
	}
	return s
}

// SnapshotToPool returns a snapshot to the pool for reuse
func SnapshotToPool(s *Snapshot, pool *SnapshotPool) {
	if pool == nil || s == nil {
		return
	}

	pool.Put(s)
}

// SnapshotPool for memory efficiency
type SnapshotPool struct {
	pool sync.Pool
}

func NewSnapshotPool() *SnapshotPool {
	return &SnapshotPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Snapshot{}
			},
		},
	}
}

// Get retrieves a snapshot from the pool shaped to the given dimensions
func (p *SnapshotPool) Get(width, height int) *Snapshot {
	s := p.pool.Get().(*Snapshot)
	s.reset(width, height)
	return s
}

// Put returns a snapshot to the pool
func (p *SnapshotPool) Put(s *Snapshot) {
	p.pool.Put(s)
}
