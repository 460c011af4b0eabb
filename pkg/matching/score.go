// Package matching scores and ranks candidate users against a requester.
//
// Score weights:
//
//	+500 candidate gender differs from requester
//	 +10 ... and candidate age within requester age ± window
//	 +10 same city
//	 +50 requester "M" and candidate age in [age-window, age]
//	 +50 requester "F" and candidate age in [age, age+window]
//	 +10 per shared distinct interest
//
// The same weights are expressed as SQL in the match repository; both must
// stay in sync.
package matching

import (
	"errors"
	"sort"

	"matchmaker/pkg/models"

	"github.com/samber/lo"
)

const (
	ScoreOppositeGender   = 500
	ScoreOppositeInWindow = 10
	ScoreSameCity         = 10
	ScoreGenderAgeBand    = 50
	ScorePerInterest      = 10

	GenderMale   = "M"
	GenderFemale = "F"

	DefaultAgeLimit = 5
	DefaultLimit    = 10
	MaxLimit        = 100

	// 어떤 나이 차이도 포함하는 창, age ± window 계산이 넘치지 않는 범위
	MaxAgeLimit = 1_000_000
)

var ErrInvalidParams = errors.New("skip, limit and age_limit must be non-negative")

// Params 매칭 조회 파라미터
type Params struct {
	Skip     int
	Limit    int
	AgeLimit int
}

func DefaultParams() Params {
	return Params{Skip: 0, Limit: DefaultLimit, AgeLimit: DefaultAgeLimit}
}

// 음수 값은 거부, limit은 MaxLimit, age_limit은 MaxAgeLimit으로 제한
func (p Params) Normalize() (Params, error) {
	if p.Skip < 0 || p.Limit < 0 || p.AgeLimit < 0 {
		return p, ErrInvalidParams
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.AgeLimit > MaxAgeLimit {
		p.AgeLimit = MaxAgeLimit
	}
	return p, nil
}

type Profile struct {
	ID        int
	Age       int
	Gender    string
	City      string
	Interests []string
}

type Result struct {
	User  models.User
	Score int
}

func ProfileOf(u models.User) Profile {
	return Profile{
		ID:        u.ID,
		Age:       u.Age,
		Gender:    u.Gender,
		City:      u.City,
		Interests: u.InterestNames(),
	}
}

func inRange(v, low, high int) bool {
	return low <= v && v <= high
}

// Score returns the compatibility of candidate for requester.
func Score(requester, candidate Profile, ageLimit int) int {
	score := 0
	if candidate.Gender != requester.Gender {
		score += ScoreOppositeGender
		if inRange(candidate.Age, requester.Age-ageLimit, requester.Age+ageLimit) {
			score += ScoreOppositeInWindow
		}
	}
	if candidate.City == requester.City {
		score += ScoreSameCity
	}

	switch requester.Gender {
	case GenderMale:
		if inRange(candidate.Age, requester.Age-ageLimit, requester.Age) {
			score += ScoreGenderAgeBand
		}
	case GenderFemale:
		if inRange(candidate.Age, requester.Age, requester.Age+ageLimit) {
			score += ScoreGenderAgeBand
		}
	}

	shared := lo.Intersect(lo.Uniq(requester.Interests), lo.Uniq(candidate.Interests))
	score += len(shared) * ScorePerInterest
	return score
}

// Rank scores every candidate except the requester and orders them by score
// descending, then id ascending.
func Rank(requester models.User, candidates []models.User, ageLimit int) []Result {
	me := ProfileOf(requester)
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == requester.ID {
			continue
		}
		results = append(results, Result{User: c, Score: Score(me, ProfileOf(c), ageLimit)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].User.ID < results[j].User.ID
	})
	return results
}

// Page returns the window [skip, skip+limit) of items, clamped to its bounds.
func Page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) || limit <= 0 {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}
