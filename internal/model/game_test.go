package model

import (
	. "gopkg.in/check.v1"
)

type GameSuite struct {
	game *Game
}

var _ = Suite(&GameSuite{})

func (s *GameSuite) SetUpTest(c *C) {
	s.game = NewGame()
}

func (s *GameSuite) play(c *C, moves ...[2]string) {
	for _, m := range moves {
		c.Assert(s.game.Move(m[0], m[1]), IsNil, Commentf("%s-%s", m[0], m[1]))
	}
}

// removeMajors takes n major pieces of color off the board, scanning from a8.
func (s *GameSuite) removeMajors(c *C, color Color, n int) {
	removed := 0
	for y := 0; y < BoardSize && removed < n; y++ {
		for x := 0; x < BoardSize && removed < n; x++ {
			p := s.game.board.PieceAt(Position{X: x, Y: y})
			if p.Color == color && p.Type.IsMajor() {
				clearSquare(s.game.board, Position{X: x, Y: y})
				removed++
			}
		}
	}
	c.Assert(removed, Equals, n)
}

func (s *GameSuite) TestNewGame(c *C) {
	c.Check(s.game.Status(), Equals, InProgress)
	c.Check(s.game.Turn(), Equals, White)
	c.Check(s.game.Turns(), Equals, 0)
}

func (s *GameSuite) TestOpeningDoubleStep(c *C) {
	c.Check(s.game.MakeMove("e2", "e4"), Equals, true)
	c.Check(s.game.Turn(), Equals, Black)
	c.Check(s.game.Board().PieceAt(sq(c, "e4")).Name, Equals, "white pawn e")
	c.Check(s.game.Board().IsEmpty(sq(c, "e2")), Equals, true)
	pawn, _ := s.game.Board().Named("white pawn e")
	c.Check(pawn.MovesMade, Equals, 1)
	c.Check(pawn.Destinations(sq(c, "e4"), s.game.Board()), SameSquares, []Position{sq(c, "e5")})
}

func (s *GameSuite) TestMoveRejections(c *C) {
	for _, tc := range []struct {
		from, to string
		want     error
	}{
		{"z9", "e4", ErrInvalidNotation},
		{"e2", "e", ErrInvalidNotation},
		{"e2", "e9", ErrInvalidNotation},
		{"e4", "e5", ErrNotYourTurn},
		{"e7", "e5", ErrNotYourTurn},
		{"e2", "e5", ErrIllegalMove},
		{"e2", "d3", ErrIllegalMove},
		{"a1", "a3", ErrIllegalMove},
		{"b1", "d2", ErrIllegalMove},
	} {
		before := s.game.Snapshot()
		err := s.game.Move(tc.from, tc.to)
		c.Check(err, ErrorIs, tc.want, Commentf("%s-%s", tc.from, tc.to))
		c.Check(s.game.Snapshot(), DeepEquals, before)
	}
}

func (s *GameSuite) TestRejectionIsTyped(c *C) {
	err := s.game.Move("e2", "e5")
	rejection, ok := err.(*RejectionError)
	c.Assert(ok, Equals, true)
	c.Check(rejection.Action, Equals, "move")
	c.Check(err, ErrorMatches, "move rejected: illegal move")
}

func (s *GameSuite) TestTurnsAlternate(c *C) {
	moves := [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}, {"b8", "c6"}, {"f1", "c4"}}
	for i, m := range moves {
		c.Assert(s.game.Move(m[0], m[1]), IsNil)
		n := i + 1
		c.Check(s.game.Turns(), Equals, n)
		if n%2 == 0 {
			c.Check(s.game.Turn(), Equals, White)
		} else {
			c.Check(s.game.Turn(), Equals, Black)
		}
	}
	c.Check(s.game.Move("f3", "e5"), ErrorIs, ErrNotYourTurn)
}

func (s *GameSuite) TestCaptureRemovesPiece(c *C) {
	s.play(c, [2]string{"e2", "e4"}, [2]string{"d7", "d5"}, [2]string{"e4", "d5"})
	c.Check(s.game.Board().IsInPlay("black pawn d"), Equals, false)
	c.Check(s.game.Board().PieceAt(sq(c, "d5")).Name, Equals, "white pawn e")
}

func (s *GameSuite) TestKingCaptureEndsGame(c *C) {
	s.play(c,
		[2]string{"e2", "e4"}, [2]string{"f7", "f6"},
		[2]string{"d1", "h5"}, [2]string{"a7", "a6"},
	)
	turns := s.game.Turns()
	c.Assert(s.game.Move("h5", "e8"), IsNil)
	c.Check(s.game.Status(), Equals, WhiteWon)
	c.Check(s.game.Turns(), Equals, turns)
	c.Check(s.game.Board().IsInPlay("black king"), Equals, false)

	before := s.game.Render()
	c.Check(s.game.MakeMove("a6", "a5"), Equals, false)
	c.Check(s.game.Move("e4", "e5"), ErrorIs, ErrGameOver)
	c.Check(s.game.EnterFairy("F", "e2"), ErrorIs, ErrGameOver)
	c.Check(s.game.Render(), Equals, before)
}

func (s *GameSuite) TestBlackCapturingKingWins(c *C) {
	s.play(c,
		[2]string{"f2", "f3"}, [2]string{"e7", "e5"},
		[2]string{"a2", "a3"}, [2]string{"d8", "h4"},
		[2]string{"a3", "a4"}, [2]string{"h4", "e1"},
	)
	c.Check(s.game.Status(), Equals, BlackWon)
	c.Check(s.game.EnterFairyPiece("f", "e7"), Equals, false)
}

func (s *GameSuite) TestEnterFairyAtStart(c *C) {
	c.Check(s.game.EnterFairyPiece("F", "c1"), Equals, false)
	c.Check(s.game.EnterFairy("F", "c1"), ErrorIs, ErrSquareOccupied)
	c.Check(s.game.EnterFairy("f", "g2"), ErrorIs, ErrNotYourTurn)
	c.Check(s.game.EnterFairy("F", "c3"), ErrorIs, ErrNotHomeRank)
	c.Check(s.game.EnterFairy("X", "c1"), ErrorIs, ErrFairyUnavailable)
	c.Check(s.game.EnterFairy("FF", "c1"), ErrorIs, ErrFairyUnavailable)
	c.Check(s.game.EnterFairy("F", "c"), ErrorIs, ErrInvalidNotation)
	c.Check(s.game.Board().PoolCodes(), DeepEquals, []string{"F", "H", "f", "h"})
	c.Check(s.game.Turns(), Equals, 0)
}

func (s *GameSuite) TestEnterFairyNeedsLostMajor(c *C) {
	s.play(c, [2]string{"e2", "e4"}, [2]string{"e7", "e5"})
	c.Check(s.game.EnterFairy("F", "e2"), ErrorIs, ErrFairyNotEligible)
	c.Check(s.game.Board().CountMajorPieces(White), Equals, 7)
}

func (s *GameSuite) TestEnterFairyAfterExchange(c *C) {
	b := s.game.Board()
	b.MovePiece(Position{X: 2, Y: 7}, Position{X: 2, Y: 0})
	b.MovePiece(Position{X: 7, Y: 0}, Position{X: 7, Y: 7})

	c.Check(s.game.EnterFairy("h", "h8"), ErrorIs, ErrNotYourTurn)
	c.Check(s.game.EnterFairy("F", "h8"), ErrorIs, ErrNotHomeRank)
	c.Check(s.game.EnterFairyPiece("F", "c1"), Equals, true)
	c.Check(s.game.Turn(), Equals, Black)
	c.Check(b.CountFairyPieces(Black), Equals, 0)
	c.Check(b.CountFairyPieces(White), Equals, 1)
	c.Check(b.PoolCodes(), DeepEquals, []string{"H", "f", "h"})
	c.Check(b.PieceAt(sq(c, "c1")).Name, Equals, "white falcon")
}

func (s *GameSuite) TestSecondFairyNeedsSecondLoss(c *C) {
	s.removeMajors(c, White, 1)
	s.play(c, [2]string{"e2", "e4"}, [2]string{"e7", "e5"})
	c.Assert(s.game.EnterFairy("F", "e2"), IsNil)
	s.play(c, [2]string{"d7", "d6"})

	c.Check(s.game.EnterFairy("H", "a1"), ErrorIs, ErrFairyNotEligible)

	s.removeMajors(c, White, 1)
	c.Check(s.game.Board().CountMajorPieces(White), Equals, 5)
	c.Assert(s.game.EnterFairy("H", "a1"), IsNil)
	c.Check(s.game.Board().CountFairyPieces(White), Equals, 2)
	c.Check(s.game.Board().PoolSize(White), Equals, 0)

	s.play(c, [2]string{"d6", "d5"})
	c.Check(s.game.EnterFairy("H", "b1"), ErrorIs, ErrFairyUnavailable)
}

func (s *GameSuite) TestAllMajorsLost(c *C) {
	s.removeMajors(c, White, 7)
	c.Assert(s.game.EnterFairy("F", "a1"), IsNil)
	c.Check(s.game.Board().CountFairyPieces(White), Equals, 1)
	s.play(c, [2]string{"a7", "a6"})
	c.Assert(s.game.EnterFairy("H", "b1"), IsNil)
	c.Check(s.game.Board().CountFairyPieces(White), Equals, 2)
	c.Check(s.game.Turns(), Equals, 3)
}

func (s *GameSuite) TestBlackFairyHomeRows(c *C) {
	s.removeMajors(c, Black, 1)
	s.play(c, [2]string{"e2", "e4"})
	c.Check(s.game.EnterFairy("f", "a1"), ErrorIs, ErrNotHomeRank)
	c.Check(s.game.EnterFairy("f", "a6"), ErrorIs, ErrNotHomeRank)
	c.Assert(s.game.EnterFairy("f", "a8"), IsNil)
	c.Check(s.game.Board().PieceAt(sq(c, "a8")).Type, Equals, Falcon)
	c.Check(s.game.Turn(), Equals, White)
}

func (s *GameSuite) TestFairyPiecesMoveAndCapture(c *C) {
	s.removeMajors(c, White, 1)
	s.play(c, [2]string{"e2", "e4"}, [2]string{"e7", "e5"})
	c.Assert(s.game.EnterFairy("F", "e2"), IsNil)
	s.play(c, [2]string{"a7", "a6"})
	// the falcon rides its forward-left diagonal into a6
	s.play(c, [2]string{"e2", "a6"})
	c.Check(s.game.Board().IsInPlay("black pawn a"), Equals, false)
}

func (s *GameSuite) TestFairyPoolInvariant(c *C) {
	s.removeMajors(c, White, 2)
	s.removeMajors(c, Black, 2)
	check := func() {
		for _, color := range []Color{White, Black} {
			b := s.game.Board()
			c.Check(b.CountFairyPieces(color)+b.PoolSize(color), Equals, 2)
		}
	}
	check()
	c.Assert(s.game.EnterFairy("F", "a1"), IsNil)
	check()
	c.Assert(s.game.EnterFairy("h", "a8"), IsNil)
	check()
	c.Check(s.game.EnterFairy("F", "b1"), ErrorIs, ErrFairyUnavailable)
	check()
}

func (s *GameSuite) TestUnmovedPawnsHaveTwoForwardSteps(c *C) {
	b := s.game.Board()
	for x := 0; x < BoardSize; x++ {
		from := Position{X: x, Y: 6}
		var forward int
		for _, d := range b.PieceAt(from).Destinations(from, b) {
			if d.X == x {
				forward++
			}
		}
		c.Check(forward, Equals, 2)
	}
}

func (s *GameSuite) TestSnapshot(c *C) {
	snap := s.game.Snapshot()
	c.Check(snap.Status, Equals, InProgress)
	c.Check(snap.ToMove, Equals, White)
	c.Check(snap.Board, HasLen, BoardSize)
	c.Check(snap.Board[7][4], Equals, "♔")
	c.Check(snap.Board[0][4], Equals, "♚")
	c.Check(snap.Pool, DeepEquals, []string{"F", "H", "f", "h"})
}

func (s *GameSuite) TestOnlyPawnsCountMoves(c *C) {
	s.play(c, [2]string{"e2", "e4"}, [2]string{"a7", "a6"}, [2]string{"d1", "h5"})
	queen, _ := s.game.Board().Named("white queen")
	c.Check(queen.MovesMade, Equals, 0)
	pawn, _ := s.game.Board().Named("white pawn e")
	c.Check(pawn.MovesMade, Equals, 1)
}
