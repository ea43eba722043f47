/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package bingo

const (
	// Size is the width and height of the board.
	Size = 5

	freeRow  = 2
	freeCol  = 2
	freeCell = freeRow*Size + freeCol
)

// Cell is one square of the 5x5 grid.
type Cell struct {
	Row    int
	Col    int
	Tile   int // -1 for the free cell
	Label  string
	Marked bool
	Free   bool
}

// Board is a dataset laid out for a particular seed, with marks applied.
type Board struct {
	Seed      string
	DatasetID int
	Dataset   Dataset
	Labels    [TileCount]string
	FreeLabel string
	Tiles     Tiles
}

// TileAt maps a grid position to its tile index, or -1 for the free cell.
func TileAt(row, col int) int {
	n := row*Size + col
	switch {
	case n == freeCell:
		return -1
	case n > freeCell:
		return n - 1
	default:
		return n
	}
}

// PositionOf maps a tile index back to its grid position.
func PositionOf(tile int) (row, col int) {
	n := tile
	if n >= freeCell {
		n++
	}

	return n / Size, n % Size
}

// NewBoard lays out d for seed and applies the marks in s. The free cell
// shows the dataset's freebie, or the 25th shuffled label if it has none.
func NewBoard(d Dataset, seed string, s State) Board {
	shuffled := Shuffle(d.Labels, seed)

	b := Board{
		Seed:      seed,
		DatasetID: s.DatasetID,
		Dataset:   d,
		Tiles:     s.Tiles,
		FreeLabel: d.Freebie,
	}

	copy(b.Labels[:], shuffled)

	if b.FreeLabel == "" && len(shuffled) > TileCount {
		b.FreeLabel = shuffled[TileCount]
	}

	return b
}

// State returns the encodable part of the board.
func (b Board) State() State {
	return State{DatasetID: b.DatasetID, Tiles: b.Tiles}
}

// Cells returns all 25 cells in row-major order.
func (b Board) Cells() []Cell {
	cells := make([]Cell, 0, Size*Size)

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			tile := TileAt(row, col)
			if tile < 0 {
				cells = append(cells, Cell{
					Row:    row,
					Col:    col,
					Tile:   -1,
					Label:  b.FreeLabel,
					Marked: true,
					Free:   true,
				})

				continue
			}

			cells = append(cells, Cell{
				Row:    row,
				Col:    col,
				Tile:   tile,
				Label:  b.Labels[tile],
				Marked: b.Tiles[tile],
			})
		}
	}

	return cells
}

// Rows returns the cells grouped by row.
func (b Board) Rows() [][]Cell {
	cells := b.Cells()

	rows := make([][]Cell, Size)
	for i := range rows {
		rows[i] = cells[i*Size : (i+1)*Size]
	}

	return rows
}
