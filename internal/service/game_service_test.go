package service

import (
	"github.com/benbeisheim/falconchess-backend/internal/model"
	. "gopkg.in/check.v1"
)

type ServiceSuite struct {
	gs *GameService
}

var _ = Suite(&ServiceSuite{})

func (s *ServiceSuite) SetUpTest(c *C) {
	s.gs = NewGameService(NewGameManager())
}

func (s *ServiceSuite) TestCreateJoinAndMove(c *C) {
	gameID, err := s.gs.CreateGame()
	c.Assert(err, IsNil)
	c.Check(gameID, HasLen, 36)

	color, err := s.gs.JoinGame(gameID, "alice")
	c.Assert(err, IsNil)
	c.Check(color, Equals, model.White)
	_, err = s.gs.JoinGame(gameID, "bob")
	c.Assert(err, IsNil)

	state, err := s.gs.HandleMove(gameID, "alice", model.WSMove{From: "b1", To: "c3"})
	c.Assert(err, IsNil)
	c.Check(state.Board[5][2], Equals, "♘")

	_, err = s.gs.HandleFairyEntry(gameID, "bob", model.WSFairyEntry{Code: "h", To: "b8"})
	c.Check(err, ErrorIs, model.ErrSquareOccupied)

	got, err := s.gs.GetGameState(gameID)
	c.Assert(err, IsNil)
	c.Check(got.Players.White.ID, Equals, "alice")
	c.Check(got.Players.Black.ID, Equals, "bob")
}

func (s *ServiceSuite) TestUnknownGame(c *C) {
	_, err := s.gs.JoinGame("nope", "alice")
	c.Check(err, ErrorIs, ErrGameNotFound)
	c.Check(s.gs.RegisterConnection("nope", "alice", nil), ErrorIs, ErrGameNotFound)
	s.gs.UnregisterConnection("nope", "alice")
}

func (s *ServiceSuite) TestMatchmaking(c *C) {
	c.Assert(s.gs.JoinMatchmaking("alice"), IsNil)
	c.Check(s.gs.LeaveMatchmaking("alice"), Equals, true)
	s.gs.RegisterMatchmakingChannel("alice", make(chan string, 1))
	s.gs.UnregisterMatchmakingChannel("alice")

	summary, err := s.gs.Stats()
	c.Assert(err, IsNil)
	c.Check(summary.Games, Equals, 0)
}
