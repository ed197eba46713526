package main

import (
	"io"
	"log"
	"testing"

	"github.com/sevanteri/go-life/utils"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestHistoryDetectsCycles(t *testing.T) {
	var h history

	for _, hash := range []string{"a", "b"} {
		if h.IsStagnant(hash) {
			t.Fatalf("%q flagged with short history", hash)
		}
		h.Update(hash)
	}
	h.Update("c")

	if h.IsStagnant("d") {
		t.Fatal("fresh state flagged as stagnant")
	}
	if !h.IsStagnant("b") {
		t.Fatal("period-2 repeat not detected")
	}
	if !h.IsStagnant("c") {
		t.Fatal("still life not detected")
	}

	for _, hash := range []string{"d", "e", "f", "g"} {
		h.Update(hash)
	}
	if len(h.hashes) != historySize {
		t.Fatalf("history holds %d hashes, want %d", len(h.hashes), historySize)
	}
	if h.IsStagnant("c") {
		t.Fatal("state older than three generations flagged")
	}

	h.Reset()
	if h.IsStagnant("g") {
		t.Fatal("reset history still flags states")
	}
}

func TestCheckRestartConditions(t *testing.T) {
	config := utils.DefaultConfig()
	config.StagnationThreshold = 3

	tests := []struct {
		name          string
		living        int
		stagnantCount int
		want          bool
		reason        string
	}{
		{"extinct", 0, 0, true, "extinction"},
		{"stagnant", 10, 3, true, "stagnation detected"},
		{"active", 10, 2, false, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, reason := checkRestartConditions(tc.living, tc.stagnantCount, config)
			if got != tc.want || reason != tc.reason {
				t.Fatalf("got %v %q, want %v %q", got, reason, tc.want, tc.reason)
			}
		})
	}
}

func TestInitializeGameIsSeeded(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width, config.Height = 30, 20
	config.Seed = 1234
	config.Workers = 3

	a, _, err := initializeGame(config, quietLogger())
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	b, _, err := initializeGame(config, quietLogger())
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}

	if a.Grid().GetGridHash() != b.Grid().GetGridHash() {
		t.Fatal("same seed produced different starting boards")
	}
	for _, p := range [][2]int{{5, 5}, {7, 5}, {7, 6}, {6, 6}, {6, 7}} {
		if alive, _ := a.Grid().Get(p[0], p[1]); !alive {
			t.Fatalf("starting glider missing cell %v", p)
		}
	}
}

func TestInitializeGameInvalidSize(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width = 0

	if _, _, err := initializeGame(config, quietLogger()); err == nil {
		t.Fatal("expected an error for a zero-width grid")
	}
}

func TestRestartGame(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width, config.Height = 12, 12
	config.Randomize = false
	config.Seed = 9

	sess, stats, err := initializeGame(config, quietLogger())
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	var hist history

	for gen := 1; gen <= 3; gen++ {
		sess.Grid().Tick()
		updateGameState(sess.Grid(), gen, 0, stats, &hist)
	}

	if err = restartGame(sess, config, &hist, quietLogger()); err != nil {
		t.Fatalf("restartGame: %v", err)
	}
	if n := sess.Grid().CountLivingCells(); n != 5 {
		t.Fatalf("living cells after restart = %d, want 5", n)
	}
	if len(hist.hashes) != 0 {
		t.Fatalf("history kept %d hashes across restart", len(hist.hashes))
	}
}

func TestUpdateGameStateStatus(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width, config.Height = 6, 6
	config.Randomize = false
	config.Seed = 3

	sess, stats, err := initializeGame(config, quietLogger())
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	sess.Grid().Clear()

	var hist history
	_, density, status, _ := updateGameState(sess.Grid(), 1, 0, stats, &hist)
	if status != "Extinct" || density != 0 {
		t.Fatalf("status %q density %v, want Extinct 0", status, density)
	}

	// a block is a still life
	for _, p := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		if err = sess.Grid().Toggle(p[0], p[1]); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
	}
	var stagnant bool
	for gen := 2; gen <= 5; gen++ {
		sess.Grid().Tick()
		_, _, status, stagnant = updateGameState(sess.Grid(), gen, 0, stats, &hist)
	}
	if !stagnant || status != "Stagnant" {
		t.Fatalf("status %q stagnant %v, want Stagnant", status, stagnant)
	}
}
