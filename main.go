package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sevanteri/go-life/utils"
)

func main() {
	logger := log.Default()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig("config.json")
	if err != nil {
		logger.Printf("using default configuration: %v", err)
		config = utils.DefaultConfig()
	}

	sess, stats, err := initializeGame(config, logger)
	if err != nil {
		logger.Fatalf("%+v", err)
	}
	displayGameInfo(config, sess, logger)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(config.FrameRate)
	defer ticker.Stop()

	var hist history
	var (
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
		lastTickTime   = lastFrameTime
	)

	for {
		select {
		case <-sigChan:
			logger.Printf("shutting down: %d generations in %.1fs, %.1f avg population",
				sess.Generation(), stats.Runtime().Seconds(), stats.AveragePopulation)
			return
		case now := <-ticker.C:
			frame := now.Sub(lastFrameTime)
			lastFrameTime = now

			if !sess.Update(frame) {
				continue
			}

			generation := sess.Generation()
			livingCells, density, status, isStagnant := updateGameState(
				sess.Grid(), generation, now.Sub(lastTickTime), stats, &hist)
			lastTickTime = now

			if isStagnant {
				stagnantCount++
			} else {
				stagnantCount = 0
			}

			displayGameStatus(generation, livingCells, density, status, stats, lastRestartGen, logger)

			if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
				logger.Printf("reached maximum generations limit (%d)", config.MaxGenerations)
				return
			}

			shouldRestart, restartReason := checkRestartConditions(livingCells, stagnantCount, config)
			if shouldRestart && config.AutoRestart {
				logger.Printf("restarting due to %s", restartReason)
				if err := restartGame(sess, config, &hist, logger); err != nil {
					logger.Fatalf("%+v", err)
				}
				lastRestartGen = generation
				stagnantCount = 0
			}
		}
	}
}

