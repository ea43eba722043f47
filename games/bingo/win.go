/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package bingo

// winningLines lists every row, column and diagonal as tile indexes. Grid
// positions past the free center are shifted down by one, and the center
// itself is left out since it is always marked.
var winningLines = [...][]int{
	// Rows
	{0, 1, 2, 3, 4},
	{5, 6, 7, 8, 9},
	{10, 11, 12, 13},
	{14, 15, 16, 17, 18},
	{19, 20, 21, 22, 23},

	// Columns
	{0, 5, 10, 14, 19},
	{1, 6, 11, 15, 20},
	{2, 7, 16, 21},
	{3, 8, 12, 17, 22},
	{4, 9, 13, 18, 23},

	// Diagonals
	{0, 6, 17, 23},
	{4, 8, 15, 19},
}

// Lines returns a copy of the 12 winning lines.
func Lines() [][]int {
	lines := make([][]int, len(winningLines))
	for i, l := range winningLines {
		lines[i] = append([]int(nil), l...)
	}

	return lines
}

// HasWin reports whether any row, column or diagonal is fully marked.
func HasWin(tiles Tiles) bool {
	for _, line := range winningLines {
		if complete(tiles, line) {
			return true
		}
	}

	return false
}

// WinningLines returns the fully marked lines, in row, column, diagonal order.
func WinningLines(tiles Tiles) [][]int {
	var won [][]int
	for _, line := range winningLines {
		if complete(tiles, line) {
			won = append(won, append([]int(nil), line...))
		}
	}

	return won
}

func complete(tiles Tiles, line []int) bool {
	for _, i := range line {
		if !tiles[i] {
			return false
		}
	}

	return true
}
