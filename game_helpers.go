package main

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"github.com/sevanteri/go-life/model"
	"github.com/sevanteri/go-life/session"
	"github.com/sevanteri/go-life/utils"
)

// historySize is how many recent generation hashes are kept for cycle detection
const historySize = 5

// history remembers recent generation hashes to spot still lifes and short cycles
type history struct {
	hashes []string
}

// Update adds current state to history and maintains size
func (h *history) Update(hash string) {
	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant checks whether hash repeats one of the last three recorded states
func (h *history) IsStagnant(hash string) bool {
	if len(h.hashes) < 3 {
		return false
	}
	for _, prev := range h.hashes[len(h.hashes)-3:] {
		if prev == hash {
			return true
		}
	}
	return false
}

func (h *history) Reset() {
	h.hashes = h.hashes[:0]
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, logger *log.Logger) (*session.Session, *utils.Stats, error) {
	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	opts := []model.Option{
		model.WithRand(rand.New(rand.NewPCG(seed, 0))),
		model.WithWorkers(config.Workers),
	}
	if config.StrictPlacement {
		opts = append(opts, model.WithStrictPlacement())
	}

	grid, err := model.NewGrid(config.Width, config.Height, opts...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "[initializeGame] failed to create grid")
	}

	sess := session.New(grid, config, logger)
	if err = seedPatterns(sess, config); err != nil {
		return nil, nil, errors.Wrap(err, "[initializeGame] failed to seed grid")
	}

	logger.Printf("seed: %d", seed)
	return sess, utils.NewStats(), nil
}

// seedPatterns places the starting glider and optionally randomizes the board
func seedPatterns(sess *session.Session, config utils.Config) error {
	if config.Randomize {
		if err := sess.Apply(session.CmdRandomize); err != nil {
			return err
		}
	}
	return sess.Grid().StampGlider(5, 5)
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, sess *session.Session, logger *log.Logger) {
	w, h := sess.Grid().Dimensions()
	logger.Printf("grid: %dx%d | workers: %d | strict placement: %v | initial living cells: %d",
		w, h, config.Workers, config.StrictPlacement, sess.Grid().CountLivingCells())
	logger.Printf("speed: %.3fs per generation | paused: %v", sess.Interval().Seconds(), sess.Paused())
}

// updateGameState records a generation and returns status information
func updateGameState(
	grid *model.Grid,
	generation int,
	frameDuration time.Duration,
	stats *utils.Stats,
	hist *history,
) (int, float64, string, bool) {
	livingCells := grid.CountLivingCells()
	w, h := grid.Dimensions()
	density := float64(livingCells) / float64(w*h) * 100

	stats.Update(generation, livingCells, frameDuration)

	hash := grid.GetGridHash()
	isStagnant := hist.IsStagnant(hash)
	hist.Update(hash)

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// displayGameStatus logs the current game status
func displayGameStatus(
	generation, livingCells int,
	density float64,
	status string,
	stats *utils.Stats,
	lastRestartGen int,
	logger *log.Logger,
) {
	logger.Printf("gen: %d | living: %d | density: %.1f%% | status: %s | %.1f gen/sec | avg pop: %.1f | since restart: %d",
		generation, livingCells, density, status,
		stats.GenerationsPerSecond, stats.AveragePopulation, generation-lastRestartGen)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame clears the grid in place and seeds fresh patterns
func restartGame(sess *session.Session, config utils.Config, hist *history, logger *log.Logger) error {
	if err := sess.Apply(session.CmdClear); err != nil {
		return errors.Wrap(err, "[restartGame] failed to clear grid")
	}
	if err := seedPatterns(sess, config); err != nil {
		return errors.Wrap(err, "[restartGame] failed to seed grid")
	}
	hist.Reset()

	logger.Printf("new patterns loaded, living cells: %d", sess.Grid().CountLivingCells())
	return nil
}
