package leaderboarddomain

import "sort"

// rankKey orders the board: higher totals first, and among equal totals the
// player who needed fewer rounds ranks higher.
type rankKey struct {
	curr   int
	played int
}

// position is the resolved rank shared by every player holding the same key.
type position struct {
	rank int
	tied bool
}

// less reports whether a ranks strictly ahead of b.
func (a rankKey) less(b rankKey) bool {
	if a.curr != b.curr {
		return a.curr > b.curr
	}
	return a.played < b.played
}

// assignPositions computes the rank for every distinct (curr, played) key.
//
// Ranks start at 1 and tie groups share a rank. An interior tie group
// occupies as many slots as it has members, so the next distinct key jumps
// past it: totals 20,15,15,10 rank as 1, T2, T2, 4. The group holding the top
// key is the exception: no matter its size it occupies a single slot, so a
// shared first place does not push the runner-up down: totals 20,20,15 rank
// as T1, T1, 2.
func assignPositions(rows map[string]accumRow) map[rankKey]position {
	sizes := make(map[rankKey]int, len(rows))
	for _, row := range rows {
		sizes[rankKey{curr: row.curr, played: row.played}]++
	}

	keys := make([]rankKey, 0, len(sizes))
	for key := range sizes {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	positions := make(map[rankKey]position, len(keys))
	next := 1
	for i, key := range keys {
		positions[key] = position{rank: next, tied: sizes[key] > 1}
		if i == 0 {
			next++
		} else {
			next += sizes[key]
		}
	}
	return positions
}
