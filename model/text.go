package model

import "strings"

const (
	textAlive = 'O'
	textDead  = '.'
)

// String renders the current generation as rows of 'O' and '.'
func (g *Grid) String() string {
	return formatCells(g.cells)
}

func formatCells(cells [][]bool) string {
	var b strings.Builder
	for _, row := range cells {
		for _, alive := range row {
			if alive {
				b.WriteByte(textAlive)
			} else {
				b.WriteByte(textDead)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
