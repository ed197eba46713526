package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// ReferenceTransition classifies a cell through explicit birth, death and
// survival branches. Some branches overlap; order matters.
func ReferenceTransition(neighbors int, alive bool) bool {
	switch {
	case neighbors == 3 && !alive:
		return true
	case (neighbors < 2 || neighbors > 3) && alive:
		return false
	case neighbors > 3 && !alive:
		return false
	case neighbors == 2 || neighbors == 3:
		return alive
	default:
		// dead with 0 or 1 neighbors
		return false
	}
}
