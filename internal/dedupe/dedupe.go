package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent read-side work. Using a centralized singleflight.Group ensures
// that only one computation runs for a given key while other callers wait
// for the result.

import "golang.org/x/sync/singleflight"

// StatsGroup deduplicates player stat computations keyed by player ID
// (e.g. "stats:42").
var StatsGroup singleflight.Group

// LeaderboardGroup deduplicates leaderboard queries keyed by the row limit
// (e.g. "top:10").
var LeaderboardGroup singleflight.Group
