package model

type PieceType string

const (
	Empty  PieceType = "empty"
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
	Falcon PieceType = "falcon"
	Hunter PieceType = "hunter"
)

// IsMajor reports whether t counts towards the fairy entry allowance.
func (t PieceType) IsMajor() bool {
	switch t {
	case Rook, Knight, Bishop, Queen:
		return true
	}
	return false
}

// IsFairy reports whether t is a falcon or a hunter.
func (t PieceType) IsFairy() bool {
	return t == Falcon || t == Hunter
}

type Color string

const (
	NoColor Color = ""
	White   Color = "white"
	Black   Color = "black"
)

// Opponent returns the other side. NoColor has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// forward is the row delta of one step towards the opponent.
func (c Color) forward() int {
	if c == Black {
		return 1
	}
	return -1
}

// PieceID is a handle into a board's piece arena. The zero handle is the
// empty-square sentinel.
type PieceID int

const EmptyID PieceID = 0

type Piece struct {
	ID        PieceID   `json:"id"`
	Type      PieceType `json:"type"`
	Color     Color     `json:"color"`
	Name      string    `json:"name"`
	MovesMade int       `json:"movesMade"`
}

// geometry describes how a piece type moves. Offsets are (sideways, forward)
// pairs, so forward is flipped for black when they are applied. Steps are
// single hops; rays repeat until blocked or off the board.
type geometry struct {
	steps []Position
	rays  []Position
}

var (
	diagonals  = []Position{{X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1}}
	orthogonal = []Position{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0}}
	adjacent   = append(append([]Position{}, orthogonal...), diagonals...)
	knightHops = []Position{
		{X: 1, Y: 2}, {X: -1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: -2},
		{X: 2, Y: 1}, {X: -2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: -1},
	}
)

var geometries = map[PieceType]geometry{
	Knight: {steps: knightHops},
	King:   {steps: adjacent},
	Bishop: {rays: diagonals},
	Rook:   {rays: orthogonal},
	Queen:  {rays: adjacent},
	Falcon: {rays: []Position{{X: -1, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: -1}}},
	Hunter: {rays: []Position{{X: 0, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}}},
}

// orient turns a (sideways, forward) offset into a grid delta for the piece.
func (p *Piece) orient(d Position) Position {
	return Position{X: d.X, Y: d.Y * p.Color.forward()}
}

// Destinations lists every square the piece standing on from could move to in
// one move. Turn order and king safety are left to the caller.
func (p *Piece) Destinations(from Position, b *Board) []Position {
	if p.Type == Empty {
		return nil
	}
	if p.Type == Pawn {
		return p.pawnDestinations(from, b)
	}
	g := geometries[p.Type]
	var dests []Position
	for _, d := range g.steps {
		to := from.add(p.orient(d))
		if to.OnBoard() && b.PieceAt(to).Color != p.Color {
			dests = append(dests, to)
		}
	}
	for _, d := range g.rays {
		dests = append(dests, p.castRay(from, p.orient(d), b)...)
	}
	return dests
}

// castRay walks from from along dir, stopping before a friendly piece and
// on an enemy one.
func (p *Piece) castRay(from, dir Position, b *Board) []Position {
	var dests []Position
	for to := from.add(dir); to.OnBoard(); to = to.add(dir) {
		target := b.PieceAt(to)
		if target.Color == p.Color {
			break
		}
		dests = append(dests, to)
		if target.Type != Empty {
			break
		}
	}
	return dests
}

func (p *Piece) pawnDestinations(from Position, b *Board) []Position {
	var dests []Position
	one := from.add(p.orient(Position{Y: 1}))
	if one.OnBoard() && b.IsEmpty(one) {
		dests = append(dests, one)
		two := one.add(p.orient(Position{Y: 1}))
		if p.MovesMade == 0 && two.OnBoard() && b.IsEmpty(two) {
			dests = append(dests, two)
		}
	}
	for _, side := range []int{-1, 1} {
		to := one.add(Position{X: side})
		if !to.OnBoard() {
			continue
		}
		target := b.PieceAt(to)
		if target.Type != Empty && target.Color != p.Color {
			dests = append(dests, to)
		}
	}
	return dests
}

// CanReach reports whether to is among the piece's destinations from from.
func (p *Piece) CanReach(from, to Position, b *Board) bool {
	for _, d := range p.Destinations(from, b) {
		if d == to {
			return true
		}
	}
	return false
}

// OnMove records that a pawn has made a move. Other pieces keep no move
// history.
func (p *Piece) OnMove() {
	if p.Type == Pawn {
		p.MovesMade++
	}
}

var symbols = map[Color]map[PieceType]rune{
	White: {
		King: '♔', Queen: '♕', Rook: '♖', Bishop: '♗', Knight: '♘', Pawn: '♙',
		Falcon: '◇', Hunter: '☖',
	},
	Black: {
		King: '♚', Queen: '♛', Rook: '♜', Bishop: '♝', Knight: '♞', Pawn: '♟',
		Falcon: '◆', Hunter: '☗',
	},
}

const emptySymbol = '·'

// Symbol is the glyph used when rendering the board.
func (p *Piece) Symbol() rune {
	if r, ok := symbols[p.Color][p.Type]; ok {
		return r
	}
	return emptySymbol
}
