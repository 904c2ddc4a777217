package testutils

// RankRow is one row served by the fake ranking sites.
type RankRow struct {
	Rank int32
	Name string
}
