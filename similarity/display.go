// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package similarity

import (
	"math"
	"strconv"
)

// Cell is a single matrix entry prepared for display
type Cell struct {
	Value   float64 `json:"value"`
	Percent string  `json:"percent"`
}

// Percent renders a similarity as a rounded percentage ("50%").
// Zero renders as an empty string so empty cells stay blank.
func Percent(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(int(math.Round(v*100))) + "%"
}

// Cells converts the matrix values into display cells.
func (m Matrix) Cells() [][]Cell {
	cells := make([][]Cell, len(m.Values))
	for i, row := range m.Values {
		cells[i] = make([]Cell, len(row))
		for j, v := range row {
			cells[i][j] = Cell{Value: v, Percent: Percent(v)}
		}
	}
	return cells
}
