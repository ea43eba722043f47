/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Bingo
//
// Every board is a link: the player name in `id` seeds the label shuffle, and
// the 6-character `state` token carries the dataset and the marked tiles. The
// server keeps nothing between requests.
//
// Features:
// - Landing page listing every dataset: /
// - New board redirect: /bingo/new?dataset=N&name=NAME
// - Board page where every tile links to its toggled state: /bingo?id=..&state=..
// - Optional WebSocket per board for toggling without reloads: /bingo/ws
// - QR code of the current board link, backed by go-qrcode: /bingo/qr

package main

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Seednode/bingo/games/bingo"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const (
	gamePath = "/bingo"

	maxNameLength = 64
	qrSize        = 320
)

// Messages coming from clients
type ClientMessage struct {
	Type string `json:"type"`           // "toggle"
	Tile *int   `json:"tile,omitempty"` // toggle
}

// BoardMessage is sent after every render with everything the page needs to
// update itself in place.
type BoardMessage struct {
	Type    string   `json:"type"`    // "board"
	State   string   `json:"state"`   // current token
	URL     string   `json:"url"`     // board link for the current token
	Marked  []int    `json:"marked"`  // marked tile indexes
	Toggles []string `json:"toggles"` // per tile, the link that toggles it
	Win     bool     `json:"win"`
	Lines   [][]int  `json:"lines,omitempty"` // completed lines
}

// SimpleMessage is for generic notifications ("win", "clear_win", "error")
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type boardCell struct {
	bingo.Cell
	Href    string
	Winning bool
}

type boardPage struct {
	Favicon template.HTML
	Prefix  string
	ID      string
	Dataset string
	State   string
	Rows    [][]boardCell
	Win     bool
	Socket  string
	QR      string
}

// boardURL returns the path and query of the board for id at state.
func boardURL(cfg *Config, suffix, id, state string) string {
	q := url.Values{}
	q.Set("id", id)
	q.Set("state", state)

	return cfg.prefix + gamePath + suffix + "?" + q.Encode()
}

// toggleLinks returns, for each tile, the board link with that tile flipped.
func toggleLinks(cfg *Config, id string, s bingo.State) []string {
	links := make([]string, bingo.TileCount)

	for i := range links {
		next := s
		next.Tiles[i] = !next.Tiles[i]

		token, err := bingo.Encode(next)
		if err != nil {
			continue
		}

		links[i] = boardURL(cfg, "", id, token)
	}

	return links
}

func newBoardPage(cfg *Config, id, token string, b bingo.Board, win bool) boardPage {
	links := toggleLinks(cfg, id, b.State())

	winning := make(map[int]bool)
	lines := bingo.WinningLines(b.Tiles)
	for _, line := range lines {
		for _, tile := range line {
			winning[tile] = true
		}
	}

	rows := make([][]boardCell, 0, bingo.Size)
	for _, row := range b.Rows() {
		cells := make([]boardCell, 0, len(row))
		for _, c := range row {
			bc := boardCell{Cell: c}
			if !c.Free {
				bc.Href = links[c.Tile]
				bc.Winning = winning[c.Tile]
			}
			cells = append(cells, bc)
		}
		rows = append(rows, cells)
	}

	return boardPage{
		Favicon: template.HTML(getFavicon(cfg.prefix)),
		Prefix:  cfg.prefix,
		ID:      id,
		Dataset: b.Dataset.Name,
		State:   token,
		Rows:    rows,
		Win:     win,
		Socket:  boardURL(cfg, "/ws", id, token),
		QR:      boardURL(cfg, "/qr", id, token),
	}
}

// pageUI renders a board page once. It is the UI used for plain page loads.
type pageUI struct {
	board bingo.Board
	won   bool
}

func (u *pageUI) RenderBoard(b bingo.Board) { u.board = b }

func (u *pageUI) TriggerWin() { u.won = true }

func (u *pageUI) ClearWin() { u.won = false }

// boardParams pulls id and state out of the query string.
func boardParams(r *http.Request) (id, state string) {
	q := r.URL.Query()

	return strings.TrimSpace(q.Get("id")), q.Get("state")
}

func redirectHome(cfg *Config, w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, cfg.prefix+"/", http.StatusSeeOther)
}

// serveBoard renders the board for id and state. Anything it cannot load
// sends the player back to the landing page.
func serveBoard(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		id, state := boardParams(r)
		if id == "" || state == "" {
			logf(cfg, "GAMES: No board in request from %s, returning home", realIP(r))
			redirectHome(cfg, w, r)

			return
		}

		ui := &pageUI{}

		g, err := bingo.NewGame(cfg.catalog, id, state, ui)
		if err != nil {
			logf(cfg, "GAMES: Failed to load board %q (%q) for %s: %v", id, state, realIP(r), err)
			redirectHome(cfg, w, r)

			return
		}

		page := newBoardPage(cfg, id, g.Token(), ui.board, ui.won)

		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		err = renderPage(w, http.StatusOK, "board.html", page)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Board %q (%s) to %s in %s",
			id,
			g.Token(),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// redirectNewGame handles the landing form: it validates the name and
// dataset, then sends the player to a fresh board.
func redirectNewGame(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		q := r.URL.Query()

		page := landingPage{
			Name: strings.TrimSpace(q.Get("name")),
		}

		datasetID, err := strconv.Atoi(q.Get("dataset"))
		switch {
		case err != nil || !cfg.catalog.Has(datasetID):
			page.Error = "Please choose one of the datasets below."
		case page.Name == "":
			page.Selected = datasetID
			page.Error = "Please enter your name to create a game."
		case len(page.Name) > maxNameLength:
			page.Selected = datasetID
			page.Error = "Please use a shorter name."
		}

		if page.Error != "" {
			if err := renderLanding(cfg, w, http.StatusBadRequest, page); err != nil {
				errs <- err
			}

			return
		}

		token, err := bingo.Encode(bingo.State{DatasetID: datasetID})
		if err != nil {
			errs <- err
			redirectHome(cfg, w, r)

			return
		}

		logf(cfg, "GAMES: Created board %q with dataset %d for %s", page.Name, datasetID, realIP(r))

		http.Redirect(w, r, boardURL(cfg, "", page.Name, token), http.StatusSeeOther)
	}
}

// socketUI pushes renders and win changes to a websocket client.
type socketUI struct {
	cfg  *Config
	id   string
	send chan any
}

func (u *socketUI) push(msg any) {
	select {
	case u.send <- msg:
	default:
		logf(u.cfg, "GAMES: Dropped message for board %q, client too slow", u.id)
	}
}

func (u *socketUI) RenderBoard(b bingo.Board) {
	s := b.State()

	token, err := bingo.Encode(s)
	if err != nil {
		u.push(SimpleMessage{Type: "error", Message: "Unable to save board."})

		return
	}

	lines := bingo.WinningLines(s.Tiles)

	u.push(BoardMessage{
		Type:    "board",
		State:   token,
		URL:     boardURL(u.cfg, "", u.id, token),
		Marked:  s.Tiles.Marked(),
		Toggles: toggleLinks(u.cfg, u.id, s),
		Win:     len(lines) > 0,
		Lines:   lines,
	})
}

func (u *socketUI) TriggerWin() {
	u.push(SimpleMessage{Type: "win"})
}

func (u *socketUI) ClearWin() {
	u.push(SimpleMessage{Type: "clear_win"})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	HandshakeTimeout: timeout,
}

type Client struct {
	cfg  *Config
	conn *websocket.Conn
	send chan any
	game *bingo.Game
}

// serveWS upgrades a board to a websocket. The connection owns its own Game;
// nothing is shared between connections.
func serveWS(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		id, state := boardParams(r)
		if id == "" {
			http.Error(w, "missing board id", http.StatusBadRequest)
			return
		}

		s, err := bingo.Decode(state)
		if err != nil || !cfg.catalog.Has(s.DatasetID) {
			logf(cfg, "GAMES: Refused socket for board %q (%q) from %s", id, state, realIP(r))
			http.Error(w, "invalid board", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "GAMES: Upgrade failed for %s: %v", realIP(r), err)
			return
		}

		c := &Client{
			cfg:  cfg,
			conn: conn,
			send: make(chan any, 16),
		}

		go c.writePump()

		c.game, err = bingo.NewGame(cfg.catalog, id, state, &socketUI{cfg: cfg, id: id, send: c.send})
		if err != nil {
			close(c.send)
			return
		}

		logf(cfg, "GAMES: Socket opened for board %q from %s", id, realIP(r))

		c.readPump()

		logf(cfg, "GAMES: Socket closed for board %q (%s)", id, c.game.Token())
	}
}

func (c *Client) extendDeadline() {
	if c.cfg.sessionTimeout > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.sessionTimeout))
	} else {
		_ = c.conn.SetReadDeadline(time.Time{})
	}
}

func (c *Client) readPump() {
	defer func() {
		close(c.send)
		_ = c.conn.Close()
	}()

	for {
		c.extendDeadline()

		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				logf(c.cfg, "GAMES: Socket read ended: %v", err)
			}
			return
		}

		switch msg.Type {
		case "toggle":
			if msg.Tile == nil {
				c.reply(SimpleMessage{Type: "error", Message: "No tile given."})
				continue
			}

			if _, _, err := c.game.Toggle(*msg.Tile); err != nil {
				c.reply(SimpleMessage{Type: "error", Message: "That tile does not exist."})
			}
		default:
			// ignore unknown types
		}
	}
}

func (c *Client) reply(msg any) {
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// shareLink returns the absolute board link a QR code points at.
func shareLink(cfg *Config, r *http.Request, id, state string) string {
	return cfg.baseURL(r.Host) + boardURL(cfg, "", id, state)
}

// qrHandler generates a PNG QR code for the board link.
func qrHandler(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		id, state := boardParams(r)
		if id == "" {
			http.Error(w, "missing board id", http.StatusBadRequest)
			return
		}

		s, err := bingo.Decode(state)
		if err != nil || !cfg.catalog.Has(s.DatasetID) {
			http.Error(w, "invalid board", http.StatusBadRequest)
			return
		}

		link := shareLink(cfg, r, id, state)

		png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		securityHeaders(cfg, w)

		_, err = w.Write(png)
		if err != nil {
			errs <- err

			return
		}
	}
}

// registerBingoGame sets up routes so that:
//   - $path         → board page for ?id=&state=
//   - $path/new     → validates the landing form and redirects to a new board
//   - $path/ws      → WebSocket for toggling tiles without reloading
//   - $path/qr      → PNG QR code for the board link
func registerBingoGame(cfg *Config, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+gamePath, serveBoard(cfg, errs))

	mux.GET(cfg.prefix+gamePath+"/new", redirectNewGame(cfg, errs))

	mux.GET(cfg.prefix+gamePath+"/ws", serveWS(cfg))

	mux.GET(cfg.prefix+gamePath+"/qr", qrHandler(cfg, errs))
}
