package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent work that must run at most once at a time per key. Using a
// centralized singleflight.Group ensures that only one job runs for a given
// key while other callers wait for the same result.

import "golang.org/x/sync/singleflight"

// BossGroup deduplicates boss respawn rolls. When several battles defeat
// or look up the boss at once, a single respawn must win; all callers
// receive the one new boss instead of each rolling their own.
var BossGroup singleflight.Group
