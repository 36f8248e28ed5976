package model

type Player struct {
	ID    string
	Color Color
}

type ClientPlayer struct {
	ID    string `json:"name"`
	Color Color  `json:"color"`
}
