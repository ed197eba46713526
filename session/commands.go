package session

import "github.com/pkg/errors"

// Mode selects what a click does to the grid
type Mode int

const (
	ModeDot Mode = iota
	ModeLine
	ModeGlider
)

func (m Mode) String() string {
	switch m {
	case ModeDot:
		return "dot"
	case ModeLine:
		return "line"
	case ModeGlider:
		return "glider"
	default:
		return "unknown"
	}
}

// Command is a request from the front end, usually bound to a key
type Command int

const (
	CmdTogglePause Command = iota
	CmdSpeedUp             // shorten the interval between generations
	CmdSlowDown            // lengthen the interval between generations
	CmdShrinkTiles
	CmdGrowTiles
	CmdZoomOut
	CmdZoomIn
	CmdRandomize
	CmdClear
	CmdStep
	CmdModeDot
	CmdModeLine
	CmdModeGlider
)

var commandNames = map[Command]string{
	CmdTogglePause: "toggle-pause",
	CmdSpeedUp:     "speed-up",
	CmdSlowDown:    "slow-down",
	CmdShrinkTiles: "shrink-tiles",
	CmdGrowTiles:   "grow-tiles",
	CmdZoomOut:     "zoom-out",
	CmdZoomIn:      "zoom-in",
	CmdRandomize:   "randomize",
	CmdClear:       "clear",
	CmdStep:        "step",
	CmdModeDot:     "mode-dot",
	CmdModeLine:    "mode-line",
	CmdModeGlider:  "mode-glider",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand looks a command up by its name
func ParseCommand(name string) (Command, error) {
	for cmd, n := range commandNames {
		if n == name {
			return cmd, nil
		}
	}
	return 0, errors.Errorf("[ParseCommand] unknown command %q", name)
}

// Apply executes one command against the session
func (s *Session) Apply(cmd Command) error {
	switch cmd {
	case CmdTogglePause:
		s.paused = !s.paused
	case CmdSpeedUp:
		s.setInterval(s.interval - speedStep)
	case CmdSlowDown:
		s.setInterval(s.interval + speedStep)
	case CmdShrinkTiles:
		return errors.Wrap(s.setTileSize(s.tileSize-1), "[Apply] shrink-tiles")
	case CmdGrowTiles:
		return errors.Wrap(s.setTileSize(s.tileSize+1), "[Apply] grow-tiles")
	case CmdZoomOut:
		s.setZoom(s.zoom - zoomStep)
	case CmdZoomIn:
		s.setZoom(s.zoom + zoomStep)
	case CmdRandomize:
		s.grid.Randomize()
	case CmdClear:
		s.grid.Clear()
	case CmdStep:
		s.tick()
	case CmdModeDot:
		s.setMode(ModeDot)
	case CmdModeLine:
		s.setMode(ModeLine)
	case CmdModeGlider:
		s.setMode(ModeGlider)
	default:
		return errors.Errorf("[Apply] unknown command %d", cmd)
	}
	return nil
}
