package model

import (
	"time"

	"github.com/itbasis/go-clock"
)

const (
	FirstWeek = 1
	LastWeek  = 17
)

// SeasonStart is the Tuesday before the first regular season game. Updated
// manually each season.
var SeasonStart = time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)

// ValidWeek reports whether n is a real NFL fantasy week.
func ValidWeek(n int) bool {
	return n >= FirstWeek && n <= LastWeek
}

// CurrentWeek computes the week of the NFL season from SeasonStart, clamped
// to the 1-17 range. Before the season starts it returns week 1; after the
// fantasy season is over it stays at 17.
func CurrentWeek(c clock.Clock) int {
	days := int(c.Now().UTC().Sub(SeasonStart).Hours() / 24)
	if days < 0 {
		return FirstWeek
	}
	week := days/7 + 1
	if week > LastWeek {
		return LastWeek
	}
	return week
}
