package model

import (
	"time"
)

// Player is a single roster entry. Names are unique in the store,
// compared after normalization.
type Player struct {
	Name     string
	Position Position
	Created  time.Time
}

// DefaultRoster seeds a brand new store so the app isn't empty on first run.
var DefaultRoster = []Player{
	{Name: "Patrick Mahomes", Position: POS_QB},
	{Name: "Brian Thomas Jr.", Position: POS_WR},
	{Name: "Terry McLaurin", Position: POS_WR},
	{Name: "Chris Olave", Position: POS_WR},
	{Name: "Deebo Samuel Sr.", Position: POS_WR},
	{Name: "Wan'Dale Robinson", Position: POS_WR},
	{Name: "Bijan Robinson", Position: POS_RB},
	{Name: "Tony Pollard", Position: POS_RB},
	{Name: "Quinshon Judkins", Position: POS_RB},
	{Name: "Rhamondre Stevenson", Position: POS_RB},
	{Name: "Woody Marks", Position: POS_RB},
	{Name: "Kyle Pitts", Position: POS_TE},
	{Name: "Trey McBride", Position: POS_TE},
	{Name: "Brandon Aubrey", Position: POS_K},
	{Name: "Buffalo Bills", Position: POS_DEF},
}
