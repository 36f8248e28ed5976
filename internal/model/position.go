package model

import "fmt"

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

// Position is a grid square. X is the column (file a = 0) and Y is the row,
// counted from the top of the board (rank 8 = 0).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ParsePosition converts square notation such as "e2" into a Position.
func ParsePosition(notation string) (Position, error) {
	if len(notation) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidNotation, notation)
	}
	file, rank := notation[0], notation[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidNotation, notation)
	}
	return Position{X: int(file - 'a'), Y: BoardSize - int(rank-'0')}, nil
}

// OnBoard reports whether p lies inside the grid.
func (p Position) OnBoard() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

func (p Position) String() string {
	if !p.OnBoard() {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+p.X, BoardSize-p.Y)
}

func (p Position) add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}
