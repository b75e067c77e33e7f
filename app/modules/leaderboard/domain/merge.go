package leaderboarddomain

import "fmt"

// accumRow is the intermediate state between accumulation and ranking: the
// prior rank travels along so the delta can be computed once the new rank is
// known.
type accumRow struct {
	curr     int
	last     int
	played   int
	lastRank string
}

// Merge folds one round's scores into the prior standings and returns fully
// re-ranked standings. It is a pure function: neither input is mutated, and
// the result is a freshly allocated map, so callers can diff or retry before
// committing.
//
// Players present in scores accumulate points and a played round; players only
// in prior carry forward unchanged with Last reset to 0; newcomers start at
// their round score with the unranked sentinel as their previous rank.
func Merge(scores RoundScore, prior Standings) (Standings, error) {
	merged := make(map[string]accumRow, len(prior)+len(scores))

	for player, points := range scores {
		if prev, ok := prior[player]; ok {
			merged[player] = accumRow{
				curr:     prev.Curr + points,
				last:     points,
				played:   prev.Played + 1,
				lastRank: prev.Rank,
			}
			continue
		}
		merged[player] = accumRow{
			curr:     points,
			last:     0,
			played:   1,
			lastRank: UnrankedSentinel,
		}
	}

	for player, prev := range prior {
		if _, ok := merged[player]; ok {
			continue
		}
		merged[player] = accumRow{
			curr:     prev.Curr,
			last:     0,
			played:   prev.Played,
			lastRank: prev.Rank,
		}
	}

	return rankStandings(merged)
}

// rankStandings assigns display ranks and deltas to the accumulated rows.
func rankStandings(rows map[string]accumRow) (Standings, error) {
	positions := assignPositions(rows)

	standings := make(Standings, len(rows))
	for player, row := range rows {
		pos := positions[rankKey{curr: row.curr, played: row.played}]

		previous, err := ParseRank(row.lastRank)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", player, err)
		}

		standings[player] = StandingsRow{
			Curr:   row.curr,
			Last:   row.last,
			Played: row.played,
			Rank:   FormatRank(pos.rank, pos.tied),
			Delta:  previous - pos.rank,
		}
	}
	return standings, nil
}
