package model

// SourceRank is one row scraped from a single ranking site: where that site
// slots a player for the week. These are ephemeral, produced per request and
// never persisted.
type SourceRank struct {
	Source   string
	Name     string
	Position Position
	Rank     int32
}

// RankedPlayer is the combined ranking for one player, averaged over the
// sources that listed them. SourceRanks is keyed by source name and only
// contains entries for sources that actually ranked the player.
type RankedPlayer struct {
	Name        string
	Position    Position
	SourceRanks map[string]int32
	AverageRank float64
}
