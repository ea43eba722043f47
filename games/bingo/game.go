/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package bingo

import (
	"errors"
	"fmt"
)

var ErrInvalidTile = errors.New("tile out of range")

// UI is the rendering surface a Game drives.
type UI interface {
	// RenderBoard draws the board with its current marks.
	RenderBoard(b Board)

	// TriggerWin starts the celebration. It is called once per win.
	TriggerWin()

	// ClearWin stops the celebration after a win is undone.
	ClearWin()
}

// Game is a single board being played. It is not safe for concurrent use.
type Game struct {
	codec   *Codec
	board   Board
	token   string
	ui      UI
	winning bool
}

// NewGame decodes token with the standard codec, lays out its dataset for
// boardID and renders it to ui.
func NewGame(catalog *Catalog, boardID, token string, ui UI) (*Game, error) {
	return newGame(standard, catalog, boardID, token, ui)
}

// NewGame is NewGame for boards whose tokens were made by c. Toggles are
// encoded with c as well.
func (c *Codec) NewGame(catalog *Catalog, boardID, token string, ui UI) (*Game, error) {
	return newGame(c, catalog, boardID, token, ui)
}

func newGame(c *Codec, catalog *Catalog, boardID, token string, ui UI) (*Game, error) {
	s, err := c.Decode(token)
	if err != nil {
		return nil, err
	}

	d, err := catalog.Get(s.DatasetID)
	if err != nil {
		return nil, err
	}

	g := &Game{
		codec: c,
		board: NewBoard(d, boardID, s),
		token: token,
		ui:    ui,
	}

	g.ui.RenderBoard(g.board)
	g.checkWin()

	return g, nil
}

// Toggle flips a tile, re-renders, and returns the new state and its token.
func (g *Game) Toggle(tile int) (State, string, error) {
	if tile < 0 || tile >= TileCount {
		return g.board.State(), g.token, fmt.Errorf("%w: %d", ErrInvalidTile, tile)
	}

	g.board.Tiles[tile] = !g.board.Tiles[tile]

	token, err := g.codec.Encode(g.board.State())
	if err != nil {
		g.board.Tiles[tile] = !g.board.Tiles[tile]

		return g.board.State(), g.token, err
	}
	g.token = token

	g.ui.RenderBoard(g.board)
	g.checkWin()

	return g.board.State(), g.token, nil
}

func (g *Game) checkWin() {
	won := HasWin(g.board.Tiles)

	switch {
	case won && !g.winning:
		g.ui.TriggerWin()
	case !won && g.winning:
		g.ui.ClearWin()
	}

	g.winning = won
}

// Board returns the board as currently marked.
func (g *Game) Board() Board {
	return g.board
}

// State returns the current state.
func (g *Game) State() State {
	return g.board.State()
}

// Token returns the token for the current state.
func (g *Game) Token() string {
	return g.token
}

// Winning reports whether the board currently has a completed line.
func (g *Game) Winning() bool {
	return g.winning
}
