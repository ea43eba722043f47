package bingo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// linesFromGrid derives every line from grid coordinates, dropping the free
// center, so the hand-written table can be checked against the layout.
func linesFromGrid() [][]int {
	var lines [][]int

	line := func(coords [][2]int) []int {
		var l []int
		for _, rc := range coords {
			if tile := TileAt(rc[0], rc[1]); tile >= 0 {
				l = append(l, tile)
			}
		}

		return l
	}

	for r := 0; r < Size; r++ {
		var coords [][2]int
		for c := 0; c < Size; c++ {
			coords = append(coords, [2]int{r, c})
		}
		lines = append(lines, line(coords))
	}

	for c := 0; c < Size; c++ {
		var coords [][2]int
		for r := 0; r < Size; r++ {
			coords = append(coords, [2]int{r, c})
		}
		lines = append(lines, line(coords))
	}

	var diag, anti [][2]int
	for i := 0; i < Size; i++ {
		diag = append(diag, [2]int{i, i})
		anti = append(anti, [2]int{i, Size - 1 - i})
	}
	lines = append(lines, line(diag), line(anti))

	return lines
}

func TestLinesMatchGrid(t *testing.T) {
	assert.Equal(t, linesFromGrid(), Lines())
}

func TestHasWin(t *testing.T) {
	tests := []struct {
		name  string
		tiles Tiles
		want  bool
	}{
		{
			name:  "empty board",
			tiles: Tiles{},
			want:  false,
		},
		{
			name:  "top row",
			tiles: tilesOf(0, 1, 2, 3, 4),
			want:  true,
		},
		{
			name:  "middle column through free cell",
			tiles: tilesOf(2, 7, 16, 21),
			want:  true,
		},
		{
			name:  "middle row through free cell",
			tiles: tilesOf(10, 11, 12, 13),
			want:  true,
		},
		{
			name:  "main diagonal",
			tiles: tilesOf(0, 6, 17, 23),
			want:  true,
		},
		{
			name:  "anti diagonal",
			tiles: tilesOf(4, 8, 15, 19),
			want:  true,
		},
		{
			name:  "top row missing one",
			tiles: tilesOf(0, 1, 2, 3),
			want:  false,
		},
		{
			name:  "scattered",
			tiles: tilesOf(0, 7, 13, 14, 22),
			want:  false,
		},
		{
			name:  "full board",
			tiles: allTiles(true),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasWin(tt.tiles))
		})
	}
}

func TestEveryLineWinsAlone(t *testing.T) {
	for _, line := range Lines() {
		tiles := tilesOf(line...)
		assert.True(t, HasWin(tiles), "%v", line)
		assert.Equal(t, [][]int{line}, WinningLines(tiles))

		for _, skip := range line {
			partial := tiles
			partial[skip] = false
			assert.False(t, HasWin(partial), "%v without %d", line, skip)
		}
	}
}

func TestWinningLines(t *testing.T) {
	assert.Empty(t, WinningLines(Tiles{}))
	assert.Len(t, WinningLines(allTiles(true)), 12)

	// Top row and left column share tile 0.
	got := WinningLines(tilesOf(0, 1, 2, 3, 4, 5, 10, 14, 19))
	assert.Equal(t, [][]int{{0, 1, 2, 3, 4}, {0, 5, 10, 14, 19}}, got)
}

func TestLinesIsCopy(t *testing.T) {
	lines := Lines()
	lines[0][0] = 99

	assert.Equal(t, 0, Lines()[0][0])
}
