package leaderboarddb

import "errors"

// ErrRoundAlreadyMerged is returned by ReplaceStandings when the merged-round
// mark collides, meaning another pass already folded the round in.
var ErrRoundAlreadyMerged = errors.New("round already merged")
