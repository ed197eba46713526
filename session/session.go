// Package session drives a grid the way an interactive front end would: it
// keeps the tick countdown, the pause flag, the edit mode and the view
// (tile size, zoom, pointer), and translates commands into grid calls.
package session

import (
	"io"
	"log"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/sevanteri/go-life/model"
	"github.com/sevanteri/go-life/utils"
)

const (
	speedStep = 5 * time.Millisecond
	zoomStep  = 0.1
	minZoom   = 1.0
)

// Session owns the simulation controls around a single grid
type Session struct {
	grid   *model.Grid
	pool   *model.SnapshotPool
	logger *log.Logger

	mode       Mode
	paused     bool
	interval   time.Duration
	countdown  time.Duration
	generation int

	tileSize         int
	zoom             float64
	offsetX, offsetY float64
	pointerX         float64
	pointerY         float64
	viewW, viewH     int
}

// New wraps grid with controls taken from config. A nil logger discards output.
func New(grid *model.Grid, config utils.Config, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	tileSize := max(config.TileSize, 1)
	width, height := grid.Dimensions()

	return &Session{
		grid:     grid,
		pool:     model.NewSnapshotPool(),
		logger:   logger,
		mode:     ModeDot,
		paused:   config.StartPaused,
		interval: time.Duration(math.Round(config.Speed * float64(time.Second))),
		tileSize: tileSize,
		zoom:     minZoom,
		viewW:    width * tileSize,
		viewH:    height * tileSize,
	}
}

// Grid returns the grid driven by the session
func (s *Session) Grid() *model.Grid { return s.grid }

// Mode returns the current edit mode
func (s *Session) Mode() Mode { return s.mode }

// Paused reports whether Update is suspended
func (s *Session) Paused() bool { return s.paused }

// Interval returns the simulated time between generations
func (s *Session) Interval() time.Duration { return s.interval }

// TileSize returns the pixel size of one cell at zoom 1
func (s *Session) TileSize() int { return s.tileSize }

// Zoom returns the current zoom factor
func (s *Session) Zoom() float64 { return s.zoom }

// Offset returns the pixel offset applied by the zoom
func (s *Session) Offset() (float64, float64) { return s.offsetX, s.offsetY }

// Generation returns the number of ticks issued through the session
func (s *Session) Generation() int { return s.generation }

// Update advances the countdown by dt and ticks once when it runs out.
// It reports whether a tick happened.
func (s *Session) Update(dt time.Duration) bool {
	if s.paused {
		return false
	}

	s.countdown -= dt
	if s.countdown > 0 {
		return false
	}

	s.tick()
	s.countdown = s.interval
	return true
}

func (s *Session) tick() {
	s.grid.Tick()
	s.generation++
}

// Snapshot copies the current generation for a reader on another goroutine.
// Hand it back with Release when done.
func (s *Session) Snapshot() *model.Snapshot {
	return s.grid.Snapshot(s.pool)
}

// Release returns a snapshot obtained from Snapshot
func (s *Session) Release(snap *model.Snapshot) {
	model.SnapshotToPool(snap, s.pool)
}

// PointerMoved records the pointer position in pixels
func (s *Session) PointerMoved(px, py float64) {
	s.pointerX, s.pointerY = px, py
	s.updateOffset()
}

func (s *Session) updateOffset() {
	s.offsetX = s.pointerX * (1 - s.zoom)
	s.offsetY = s.pointerY * (1 - s.zoom)
}

// CellAt maps a pixel position to grid coordinates. The result may lie
// outside the grid.
func (s *Session) CellAt(px, py float64) (int, int) {
	scale := float64(s.tileSize) * s.zoom
	x := int(math.Floor((px - s.offsetX) / scale))
	y := int(math.Floor((py - s.offsetY) / scale))
	return x, y
}

// Click edits the cell under the pointer according to the current mode
func (s *Session) Click() error {
	x, y := s.CellAt(s.pointerX, s.pointerY)
	if _, err := s.grid.Get(x, y); err != nil {
		return errors.Wrap(err, "[Click] pointer is off the grid")
	}

	var err error
	switch s.mode {
	case ModeDot:
		err = s.grid.Toggle(x, y)
	case ModeLine:
		err = s.grid.StampLine(x, y)
	case ModeGlider:
		err = s.grid.StampGlider(x, y)
	default:
		err = errors.Errorf("unknown mode %d", s.mode)
	}
	return errors.Wrapf(err, "[Click] %s at (%d,%d)", s.mode, x, y)
}

// ViewportResized fits the grid to a new viewport size in pixels
func (s *Session) ViewportResized(width, height int) error {
	s.viewW, s.viewH = width, height
	return errors.Wrap(s.fitGrid(), "[ViewportResized]")
}

// fitGrid resizes the grid to the number of whole tiles in the viewport
func (s *Session) fitGrid() error {
	width, height := s.viewW/s.tileSize, s.viewH/s.tileSize
	if w, h := s.grid.Dimensions(); w == width && h == height {
		return nil
	}
	if err := s.grid.Resize(width, height); err != nil {
		return err
	}
	s.logger.Printf("grid: %dx%d", width, height)
	return nil
}

func (s *Session) setTileSize(size int) error {
	if size < 1 {
		return errors.Errorf("tile size must be at least 1, got %d", size)
	}

	prev := s.tileSize
	s.tileSize = size
	if err := s.fitGrid(); err != nil {
		s.tileSize = prev
		return err
	}
	s.logger.Printf("tilesize: %d", s.tileSize)
	return nil
}

func (s *Session) setZoom(zoom float64) {
	s.zoom = max(math.Round(zoom*10)/10, minZoom)
	s.updateOffset()
	s.logger.Printf("zoom: %.1f", s.zoom)
}

func (s *Session) setInterval(interval time.Duration) {
	s.interval = max(interval, 0)
	s.logger.Printf("speed: %.3fs", s.interval.Seconds())
}

func (s *Session) setMode(mode Mode) {
	s.mode = mode
	s.logger.Printf("%s mode", mode)
}
