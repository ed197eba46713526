package model

import (
	"crypto/md5"
	"fmt"
	"iter"
	"math/rand/v2"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sevanteri/go-life/rules"
)

// Point is a cell coordinate on the grid
type Point struct {
	X, Y int
}

var (
	gliderOffsets = []Point{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}}
	lineOffsets   = []Point{{-1, 0}, {0, 0}, {1, 0}}
)

// Option configures a Grid at construction time
type Option func(*Grid)

// WithRand sets the random source used by Randomize
func WithRand(r *rand.Rand) Option {
	return func(g *Grid) { g.rng = r }
}

// WithStrictPlacement makes pattern stamps fail with ErrOutOfBounds instead of
// wrapping around the grid edges
func WithStrictPlacement() Option {
	return func(g *Grid) { g.strict = true }
}

// WithWorkers splits Tick across n row bands. n <= 0 uses one band per CPU.
func WithWorkers(n int) Option {
	return func(g *Grid) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		g.workers = n
	}
}

// Grid is a toroidal Game of Life board. It holds two equally shaped buffers:
// cells is the live generation and next is scratch space for Tick.
type Grid struct {
	width  int
	height int
	cells  [][]bool
	next   [][]bool

	rng     *rand.Rand
	strict  bool
	workers int
}

// NewGrid creates a new all-dead grid with the specified dimensions
func NewGrid(width, height int, opts ...Option) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[NewGrid] %dx%d", width, height)
	}

	g := &Grid{
		width:   width,
		height:  height,
		cells:   newCells(width, height),
		next:    newCells(width, height),
		workers: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g, nil
}

// newCells allocates a row-major buffer backed by one contiguous slice
func newCells(width, height int) [][]bool {
	backing := make([]bool, width*height)
	cells := make([][]bool, height)
	for y := range cells {
		cells[y] = backing[y*width : (y+1)*width : (y+1)*width]
	}
	return cells
}

func wrap(v, n int) int {
	return (v%n + n) % n
}

// Dimensions returns the width and height of the grid
func (g *Grid) Dimensions() (int, int) {
	return g.width, g.height
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the state of a cell in the current generation
func (g *Grid) Get(x, y int) (bool, error) {
	if !g.inBounds(x, y) {
		return false, errors.Wrapf(ErrOutOfBounds, "[Get] (%d,%d) outside %dx%d", x, y, g.width, g.height)
	}
	return g.cells[y][x], nil
}

// Toggle flips a single cell
func (g *Grid) Toggle(x, y int) error {
	if !g.inBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "[Toggle] (%d,%d) outside %dx%d", x, y, g.width, g.height)
	}
	g.cells[y][x] = !g.cells[y][x]
	return nil
}

// All iterates the current generation in row-major order
func (g *Grid) All() iter.Seq2[Point, bool] {
	return func(yield func(Point, bool) bool) {
		for y, row := range g.cells {
			for x, alive := range row {
				if !yield(Point{X: x, Y: y}, alive) {
					return
				}
			}
		}
	}
}

// neighbors counts living cells among the 8 toroidal neighbors of (x, y).
// On grids narrower than 3 the same cell can be counted more than once.
func (g *Grid) neighbors(x, y int) int {
	var (
		xm, xp = wrap(x-1, g.width), wrap(x+1, g.width)
		up     = g.cells[wrap(y-1, g.height)]
		row    = g.cells[y]
		down   = g.cells[wrap(y+1, g.height)]
		count  = 0
	)

	for _, alive := range [...]bool{
		up[xm], up[x], up[xp],
		row[xm], row[xp],
		down[xm], down[x], down[xp],
	} {
		if alive {
			count++
		}
	}
	return count
}

// Tick advances the grid by one generation. The new generation is written
// into next and the two buffers are then swapped.
func (g *Grid) Tick() {
	if g.workers > 1 && g.height > 1 {
		g.advanceParallel()
	} else {
		g.advanceRows(0, g.height)
	}
	g.cells, g.next = g.next, g.cells
}

func (g *Grid) advanceRows(startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		out := g.next[y]
		for x, alive := range g.cells[y] {
			out[x] = rules.ApplyConwayRules(g.neighbors(x, y), alive)
		}
	}
}

// advanceParallel evaluates row bands concurrently. Bands only read cells and
// only write their own rows of next.
func (g *Grid) advanceParallel() {
	var (
		eg            errgroup.Group
		numWorkers    = min(g.workers, g.height)
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			g.advanceRows(startRow, endRow)
			return nil
		})
	}

	_ = eg.Wait()
}

// Randomize sets every cell of the current generation to a coin flip
func (g *Grid) Randomize() {
	for _, row := range g.cells {
		for x := range row {
			row[x] = g.rng.IntN(2) == 1
		}
	}
}

// Clear kills every cell in both buffers
func (g *Grid) Clear() {
	for y := range g.height {
		clear(g.cells[y])
		clear(g.next[y])
	}
}

// Resize replaces both buffers with ones of the new shape, keeping the region
// that overlaps the old shape at the origin
func (g *Grid) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "[Resize] %dx%d", width, height)
	}

	var (
		cells = newCells(width, height)
		next  = newCells(width, height)
		xs    = min(g.width, width)
		ys    = min(g.height, height)
	)
	for y := range ys {
		copy(cells[y], g.cells[y][:xs])
		copy(next[y], g.next[y][:xs])
	}

	g.width, g.height = width, height
	g.cells, g.next = cells, next
	return nil
}

// StampGlider sets a glider alive with its anchor at (x, y)
func (g *Grid) StampGlider(x, y int) error {
	return g.stamp("StampGlider", x, y, gliderOffsets, setAlive)
}

// StampLine toggles the three horizontally adjacent cells centred on (x, y)
func (g *Grid) StampLine(x, y int) error {
	return g.stamp("StampLine", x, y, lineOffsets, flip)
}

func setAlive(c *bool) { *c = true }

func flip(c *bool) { *c = !*c }

// stamp applies fn to each offset from the anchor. In strict mode the whole
// stamp is rejected if any cell would leave the grid.
func (g *Grid) stamp(op string, x, y int, offsets []Point, fn func(*bool)) error {
	if g.strict {
		for _, o := range offsets {
			if px, py := x+o.X, y+o.Y; !g.inBounds(px, py) {
				return errors.Wrapf(ErrOutOfBounds, "[%s] (%d,%d) outside %dx%d", op, px, py, g.width, g.height)
			}
		}
	}

	for _, o := range offsets {
		fn(&g.cells[wrap(y+o.Y, g.height)][wrap(x+o.X, g.width)])
	}
	return nil
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, row := range g.cells {
		for _, alive := range row {
			if alive {
				count++
			}
		}
	}
	return
}

// GetGridHash returns an MD5 hash of the current generation
func (g *Grid) GetGridHash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d;", g.width, g.height)
	buf := make([]byte, g.width)
	for _, row := range g.cells {
		for x, alive := range row {
			buf[x] = 0
			if alive {
				buf[x] = 1
			}
		}
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
