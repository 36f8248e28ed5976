package model

import (
	. "gopkg.in/check.v1"
)

type PositionSuite struct{}

var _ = Suite(&PositionSuite{})

func (s *PositionSuite) TestParseCorners(c *C) {
	for notation, want := range map[string]Position{
		"a8": {X: 0, Y: 0},
		"h8": {X: 7, Y: 0},
		"a1": {X: 0, Y: 7},
		"h1": {X: 7, Y: 7},
		"c1": {X: 2, Y: 7},
		"g7": {X: 6, Y: 1},
	} {
		got, err := ParsePosition(notation)
		c.Assert(err, IsNil)
		c.Check(got, Equals, want, Commentf("notation %s", notation))
		c.Check(got.String(), Equals, notation)
	}
}

func (s *PositionSuite) TestParseRejectsMalformed(c *C) {
	for _, notation := range []string{"", "e", "e22", "i1", "a0", "a9", "E2", "2e", " e2"} {
		_, err := ParsePosition(notation)
		c.Check(err, ErrorIs, ErrInvalidNotation, Commentf("notation %q", notation))
	}
}

func (s *PositionSuite) TestOnBoard(c *C) {
	c.Check(Position{X: 0, Y: 0}.OnBoard(), Equals, true)
	c.Check(Position{X: 7, Y: 7}.OnBoard(), Equals, true)
	c.Check(Position{X: 0, Y: 7}.OnBoard(), Equals, true)
	c.Check(Position{X: -1, Y: 0}.OnBoard(), Equals, false)
	c.Check(Position{X: 8, Y: 0}.OnBoard(), Equals, false)
	c.Check(Position{X: 8, Y: 8}.OnBoard(), Equals, false)
	c.Check(Position{X: 0, Y: 8}.OnBoard(), Equals, false)
	c.Check(Position{X: 8, Y: 0}.String(), Equals, "(8,0)")
}
