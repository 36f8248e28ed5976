package model

type Status string

const (
	InProgress Status = "in-progress"
	WhiteWon   Status = "white-won"
	BlackWon   Status = "black-won"
)

// Finished reports whether the status is terminal.
func (s Status) Finished() bool {
	return s != InProgress
}

// homeRows are the rows a color may drop its fairy pieces on.
var homeRows = map[Color][2]int{
	Black: {0, 1},
	White: {6, 7},
}

// Game is the rules engine for a single match. It is not safe for concurrent
// use; Session serializes access for the server.
type Game struct {
	board  *Board
	turns  int
	status Status
}

type Snapshot struct {
	Board  [][]string `json:"board"`
	ToMove Color      `json:"toMove"`
	Turns  int        `json:"turns"`
	Status Status     `json:"status"`
	Pool   []string   `json:"pool"`
}

func NewGame() *Game {
	return &Game{
		board:  NewBoard(),
		status: InProgress,
	}
}

func (g *Game) Board() *Board { return g.board }

func (g *Game) Status() Status { return g.status }

// Turns is the number of accepted actions so far.
func (g *Game) Turns() int { return g.turns }

// Turn is the color to act next.
func (g *Game) Turn() Color {
	if g.turns%2 == 0 {
		return White
	}
	return Black
}

// Move plays the piece on origin to destination, both in square notation.
func (g *Game) Move(origin, destination string) error {
	const action = "move"
	if g.status.Finished() {
		return reject(action, ErrGameOver)
	}
	from, err := ParsePosition(origin)
	if err != nil {
		return reject(action, err)
	}
	to, err := ParsePosition(destination)
	if err != nil {
		return reject(action, err)
	}
	piece := g.board.PieceAt(from)
	if piece.Color != g.Turn() {
		return reject(action, ErrNotYourTurn)
	}
	if !piece.CanReach(from, to, g.board) {
		return reject(action, ErrIllegalMove)
	}

	piece.OnMove()
	g.board.MovePiece(from, to)

	if !g.board.IsInPlay("white king") {
		g.status = BlackWon
	}
	if !g.board.IsInPlay("black king") {
		g.status = WhiteWon
	}
	if !g.status.Finished() {
		g.turns++
	}
	return nil
}

// MakeMove is Move reduced to accepted or not.
func (g *Game) MakeMove(origin, destination string) bool {
	return g.Move(origin, destination) == nil
}

// EnterFairy drops the pooled fairy piece named by code onto destination.
func (g *Game) EnterFairy(code, destination string) error {
	const action = "enter fairy piece"
	if g.status.Finished() {
		return reject(action, ErrGameOver)
	}
	if len(code) != 1 {
		return reject(action, ErrFairyUnavailable)
	}
	fairy, ok := g.board.FairyPiece(rune(code[0]))
	if !ok {
		return reject(action, ErrFairyUnavailable)
	}
	if fairy.Color != g.Turn() {
		return reject(action, ErrNotYourTurn)
	}
	to, err := ParsePosition(destination)
	if err != nil {
		return reject(action, err)
	}
	if rows := homeRows[fairy.Color]; to.Y != rows[0] && to.Y != rows[1] {
		return reject(action, ErrNotHomeRank)
	}
	if !g.board.IsEmpty(to) {
		return reject(action, ErrSquareOccupied)
	}
	if !g.fairyEligible(fairy.Color) {
		return reject(action, ErrFairyNotEligible)
	}

	if err := g.board.PlaceFairyPiece(rune(code[0]), to); err != nil {
		return reject(action, err)
	}
	g.turns++
	return nil
}

// EnterFairyPiece is EnterFairy reduced to accepted or not.
func (g *Game) EnterFairyPiece(code, destination string) bool {
	return g.EnterFairy(code, destination) == nil
}

// fairyEligible lets a side bring in one fairy piece per lost major piece, up
// to two.
func (g *Game) fairyEligible(c Color) bool {
	majors := g.board.CountMajorPieces(c)
	fairies := g.board.CountFairyPieces(c)
	switch {
	case majors == 7:
		return false
	case majors == 6 && fairies == 1:
		return false
	case majors < 6 && fairies == 2:
		return false
	}
	return true
}

// Render draws the board as text, rank 8 at the top.
func (g *Game) Render() string {
	return g.board.String()
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:  g.board.Glyphs(),
		ToMove: g.Turn(),
		Turns:  g.turns,
		Status: g.status,
		Pool:   g.board.PoolCodes(),
	}
}
