// Package scoring computes compatibility scores between players.
//
// Two distinct formulas live here. RankScore orders candidates in
// matchmaking suggestions and weighs profile signals alongside game
// overlap. PairScore is recorded on a match when it is created and
// depends on game overlap only. The two are not interchangeable.
package scoring

import (
	"math"

	"github.com/squadup/squadup/internal/model"
)

// RankScore component weights. The mutual-game ratio scales the first
// weight; the remaining three are flat bonuses.
const (
	mutualWeight       = 40.0
	styleMatchBonus    = 30.0
	styleMismatchBonus = 15.0
	regionBonus        = 20.0
	verifiedBonus      = 10.0
)

// GameOverlap describes one game both players have linked, with each
// side's skill and role for display.
type GameOverlap struct {
	GameID     model.GameID
	MySkill    string
	MyRole     string
	TheirSkill string
	TheirRole  string
}

// Overlap computes the games present in both active link sets,
// preserving the order of mine. Inactive links on either side are
// ignored.
func Overlap(mine, theirs []*model.UserGame) []GameOverlap {
	theirActive := make(map[model.GameID]*model.UserGame)
	for _, ug := range theirs {
		if ug.IsActive {
			theirActive[ug.GameID] = ug
		}
	}

	var out []GameOverlap
	for _, ug := range mine {
		if !ug.IsActive {
			continue
		}
		other, ok := theirActive[ug.GameID]
		if !ok {
			continue
		}
		out = append(out, GameOverlap{
			GameID:     ug.GameID,
			MySkill:    ug.SkillLevel,
			MyRole:     ug.PreferredRole,
			TheirSkill: other.SkillLevel,
			TheirRole:  other.PreferredRole,
		})
	}
	return out
}

// GameIDs flattens an overlap into the game identifiers it covers.
func GameIDs(overlap []GameOverlap) []model.GameID {
	ids := make([]model.GameID, len(overlap))
	for i, o := range overlap {
		ids[i] = o.GameID
	}
	return ids
}

// RankScore scores a candidate for suggestion ranking. The inputs are
// both players' profiles and their full game link lists; inactive
// links do not count. The result is an integer in [0, 100].
func RankScore(mine, theirs *model.Profile, myGames, theirGames []*model.UserGame) int {
	overlap := Overlap(myGames, theirGames)
	score := mutualWeight * overlapRatio(len(overlap), myGames, theirGames)

	if mine.CommunicationStyle == theirs.CommunicationStyle {
		score += styleMatchBonus
	} else {
		score += styleMismatchBonus
	}

	// Candidates are drawn from the requester's region, so the
	// region component is a constant contribution.
	score += regionBonus

	if theirs.IsVerified {
		score += verifiedBonus
	}

	return clamp(int(math.Round(score)))
}

// PairScore scores a match at creation time from game overlap alone.
// It returns the score and the overlapping game identifiers.
func PairScore(myGames, theirGames []*model.UserGame) (int, []model.GameID) {
	overlap := Overlap(myGames, theirGames)
	score := 100.0 * overlapRatio(len(overlap), myGames, theirGames)
	if score > 100 {
		score = 100
	}
	return clamp(int(math.Round(score))), GameIDs(overlap)
}

// overlapRatio is |mutual| / max(|mine|, |theirs|) over active links,
// or 0 when either side has none.
func overlapRatio(mutual int, mine, theirs []*model.UserGame) float64 {
	a := countActive(mine)
	b := countActive(theirs)
	denom := a
	if b > denom {
		denom = b
	}
	if denom == 0 {
		return 0
	}
	return float64(mutual) / float64(denom)
}

func countActive(links []*model.UserGame) int {
	n := 0
	for _, ug := range links {
		if ug.IsActive {
			n++
		}
	}
	return n
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
