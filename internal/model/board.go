package model

import (
	"fmt"
	"sort"
	"strings"
)

// Fairy piece codes accepted by EnterFairy.
const (
	WhiteFalconCode = 'F'
	WhiteHunterCode = 'H'
	BlackFalconCode = 'f'
	BlackHunterCode = 'h'
)

var backRank = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Board owns every piece record of a game. The grid stores handles into the
// pieces arena, so a piece keeps its identity wherever it stands.
type Board struct {
	pieces []Piece
	grid   [BoardSize][BoardSize]PieceID
	names  map[string]PieceID
	pool   map[rune]PieceID
}

// NewBoard returns the starting layout with all four fairy pieces pooled.
func NewBoard() *Board {
	b := &Board{
		pieces: []Piece{{ID: EmptyID, Type: Empty, Color: NoColor, Name: "empty"}},
		names:  make(map[string]PieceID),
		pool:   make(map[rune]PieceID),
	}
	for _, side := range []struct {
		color   Color
		backRow int
		pawnRow int
		fairy   [2]rune
	}{
		{Black, 0, 1, [2]rune{BlackFalconCode, BlackHunterCode}},
		{White, 7, 6, [2]rune{WhiteFalconCode, WhiteHunterCode}},
	} {
		for x, t := range backRank {
			id := b.add(t, side.color, backRankName(side.color, t, x))
			b.grid[side.backRow][x] = id
		}
		for x := 0; x < BoardSize; x++ {
			id := b.add(Pawn, side.color, fmt.Sprintf("%s pawn %c", side.color, 'a'+x))
			b.grid[side.pawnRow][x] = id
		}
		b.pool[side.fairy[0]] = b.add(Falcon, side.color, fmt.Sprintf("%s falcon", side.color))
		b.pool[side.fairy[1]] = b.add(Hunter, side.color, fmt.Sprintf("%s hunter", side.color))
	}
	return b
}

// backRankName names kings and queens by color alone and the paired pieces
// by their starting file, e.g. "white rook a".
func backRankName(c Color, t PieceType, x int) string {
	if t == King || t == Queen {
		return fmt.Sprintf("%s %s", c, t)
	}
	return fmt.Sprintf("%s %s %c", c, t, 'a'+x)
}

func (b *Board) add(t PieceType, c Color, name string) PieceID {
	id := PieceID(len(b.pieces))
	b.pieces = append(b.pieces, Piece{ID: id, Type: t, Color: c, Name: name})
	b.names[name] = id
	return id
}

// Piece returns the record behind a handle.
func (b *Board) Piece(id PieceID) *Piece {
	return &b.pieces[id]
}

// Named returns the piece registered under name.
func (b *Board) Named(name string) (*Piece, bool) {
	id, ok := b.names[name]
	if !ok {
		return nil, false
	}
	return b.Piece(id), true
}

// PieceAt returns the occupant of p, the empty sentinel for vacant or
// off-board squares.
func (b *Board) PieceAt(p Position) *Piece {
	if !p.OnBoard() {
		return b.Piece(EmptyID)
	}
	return b.Piece(b.grid[p.Y][p.X])
}

func (b *Board) IsOnBoard(p Position) bool {
	return p.OnBoard()
}

func (b *Board) IsEmpty(p Position) bool {
	return b.PieceAt(p).Type == Empty
}

// MovePiece relocates the occupant of from onto to, capturing whatever stood
// there. Legality is the caller's job.
func (b *Board) MovePiece(from, to Position) {
	b.grid[to.Y][to.X] = b.grid[from.Y][from.X]
	b.grid[from.Y][from.X] = EmptyID
}

// IsInPlay reports whether the named piece occupies any square.
func (b *Board) IsInPlay(name string) bool {
	id, ok := b.names[name]
	if !ok {
		return false
	}
	_, found := b.locate(id)
	return found
}

func (b *Board) locate(id PieceID) (Position, bool) {
	for y := range b.grid {
		for x, cell := range b.grid[y] {
			if cell == id {
				return Position{X: x, Y: y}, true
			}
		}
	}
	return Position{}, false
}

func (b *Board) countInPlay(c Color, match func(PieceType) bool) int {
	n := 0
	for y := range b.grid {
		for _, id := range b.grid[y] {
			p := b.Piece(id)
			if p.Color == c && match(p.Type) {
				n++
			}
		}
	}
	return n
}

// CountMajorPieces counts the rooks, knights, bishops and queen of color c
// still on the board.
func (b *Board) CountMajorPieces(c Color) int {
	return b.countInPlay(c, PieceType.IsMajor)
}

// CountFairyPieces counts the falcons and hunters of color c on the board.
func (b *Board) CountFairyPieces(c Color) int {
	return b.countInPlay(c, PieceType.IsFairy)
}

// FairyPiece returns the pooled piece for code, if it has not been placed.
func (b *Board) FairyPiece(code rune) (*Piece, bool) {
	id, ok := b.pool[code]
	if !ok {
		return nil, false
	}
	return b.Piece(id), true
}

// PlaceFairyPiece puts a pooled fairy piece on to and removes it from the
// pool for good. The destination is not checked.
func (b *Board) PlaceFairyPiece(code rune, to Position) error {
	id, ok := b.pool[code]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFairyUnavailable, code)
	}
	b.grid[to.Y][to.X] = id
	delete(b.pool, code)
	return nil
}

// PoolSize is how many fairy pieces of color c are still waiting to enter.
func (b *Board) PoolSize(c Color) int {
	n := 0
	for _, id := range b.pool {
		if b.Piece(id).Color == c {
			n++
		}
	}
	return n
}

// PoolCodes lists the unplaced fairy codes in a stable order.
func (b *Board) PoolCodes() []string {
	codes := make([]string, 0, len(b.pool))
	for code := range b.pool {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	return codes
}

// Glyphs returns the board as rows of symbols, rank 8 first.
func (b *Board) Glyphs() [][]string {
	rows := make([][]string, BoardSize)
	for y := range b.grid {
		rows[y] = make([]string, BoardSize)
		for x, id := range b.grid[y] {
			rows[y][x] = string(b.Piece(id).Symbol())
		}
	}
	return rows
}

// String renders the board with rank and file labels.
func (b *Board) String() string {
	var sb strings.Builder
	for y, row := range b.Glyphs() {
		fmt.Fprintf(&sb, "%d %s\n", BoardSize-y, strings.Join(row, " "))
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
