package model

// WSMove is a piece move request in square notation.
type WSMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WSFairyEntry asks to drop a pooled fairy piece, e.g. {"code":"F","to":"c1"}.
type WSFairyEntry struct {
	Code string `json:"code"`
	To   string `json:"to"`
}

type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  Color  `json:"color"`
}
