package matching

import (
	"math"
	"testing"

	"matchmaker/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(id, age int, gender, city string, interests ...string) models.User {
	u := models.User{ID: id, Age: age, Gender: gender, City: city}
	u.SetInterests(interests)
	return u
}

func TestScore(t *testing.T) {
	male30 := Profile{ID: 1, Age: 30, Gender: "M", City: "Seoul", Interests: []string{"music", "hiking"}}
	female30 := Profile{ID: 1, Age: 30, Gender: "F", City: "Seoul"}
	other30 := Profile{ID: 1, Age: 30, Gender: "X", City: "Seoul"}

	tests := []struct {
		name      string
		requester Profile
		candidate Profile
		ageLimit  int
		want      int
	}{
		{
			name:      "opposite gender, in window, younger, same city, one interest",
			requester: male30,
			candidate: Profile{Age: 27, Gender: "F", City: "Seoul", Interests: []string{"music"}},
			ageLimit:  5,
			want:      500 + 10 + 10 + 50 + 10,
		},
		{
			name:      "opposite gender older than male requester gets no band bonus",
			requester: male30,
			candidate: Profile{Age: 33, Gender: "F", City: "Busan"},
			ageLimit:  5,
			want:      500 + 10,
		},
		{
			name:      "same gender still gets band bonus and city",
			requester: male30,
			candidate: Profile{Age: 30, Gender: "M", City: "Seoul"},
			ageLimit:  5,
			want:      10 + 50,
		},
		{
			name:      "window bounds are inclusive",
			requester: male30,
			candidate: Profile{Age: 25, Gender: "F", City: "Busan"},
			ageLimit:  5,
			want:      500 + 10 + 50,
		},
		{
			name:      "outside window",
			requester: male30,
			candidate: Profile{Age: 24, Gender: "F", City: "Busan"},
			ageLimit:  5,
			want:      500,
		},
		{
			name:      "female requester prefers older",
			requester: female30,
			candidate: Profile{Age: 35, Gender: "M", City: "Busan"},
			ageLimit:  5,
			want:      500 + 10 + 50,
		},
		{
			name:      "female requester, younger candidate",
			requester: female30,
			candidate: Profile{Age: 29, Gender: "M", City: "Busan"},
			ageLimit:  5,
			want:      500 + 10,
		},
		{
			name:      "other gender requester has no band bonus",
			requester: other30,
			candidate: Profile{Age: 30, Gender: "F", City: "Seoul"},
			ageLimit:  5,
			want:      500 + 10 + 10,
		},
		{
			name:      "zero window only matches exact age",
			requester: male30,
			candidate: Profile{Age: 30, Gender: "F", City: "Busan"},
			ageLimit:  0,
			want:      500 + 10 + 50,
		},
		{
			name:      "duplicate interests count once and match is case-sensitive",
			requester: Profile{Age: 30, Gender: "M", City: "A", Interests: []string{"music", "music", "Go"}},
			candidate: Profile{Age: 60, Gender: "M", City: "B", Interests: []string{"music", "go", "music"}},
			ageLimit:  5,
			want:      10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.requester, tt.candidate, tt.ageLimit))
		})
	}
}

func TestRankOrdersByScoreThenID(t *testing.T) {
	me := newUser(1, 30, "M", "Seoul", "music")
	candidates := []models.User{
		me,
		newUser(5, 40, "M", "Busan"),           // 0
		newUser(4, 28, "F", "Seoul", "music"),  // 580
		newUser(3, 28, "F", "Seoul", "music"),  // 580
		newUser(2, 45, "F", "Busan"),           // 500
		newUser(6, 30, "M", "Busan", "music"),  // 60
	}

	results := Rank(me, candidates, DefaultAgeLimit)
	require.Len(t, results, 5)

	ids := make([]int, len(results))
	scores := make([]int, len(results))
	for i, r := range results {
		ids[i] = r.User.ID
		scores[i] = r.Score
	}
	assert.Equal(t, []int{3, 4, 2, 6, 5}, ids)
	assert.Equal(t, []int{580, 580, 500, 60, 0}, scores)
}

func TestHugeAgeLimitCoversEveryAge(t *testing.T) {
	p, err := Params{Limit: 10, AgeLimit: math.MaxInt}.Normalize()
	require.NoError(t, err)

	me := Profile{Age: 30, Gender: "M", City: "A"}
	assert.Equal(t, 500+10+50, Score(me, Profile{Age: 18, Gender: "F", City: "B"}, p.AgeLimit))
	assert.Equal(t, 500+10, Score(me, Profile{Age: 99, Gender: "F", City: "B"}, p.AgeLimit))
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Page(items, 0, 2))
	assert.Equal(t, []int{4, 5}, Page(items, 3, 10))
	assert.Empty(t, Page(items, 5, 2))
	assert.Empty(t, Page(items, 0, 0))
}

func TestParamsNormalize(t *testing.T) {
	p, err := DefaultParams().Normalize()
	require.NoError(t, err)
	assert.Equal(t, Params{Skip: 0, Limit: 10, AgeLimit: 5}, p)

	p, err = Params{Limit: 1000}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, p.Limit)

	p, err = Params{Limit: 10, AgeLimit: math.MaxInt}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, MaxAgeLimit, p.AgeLimit)

	_, err = Params{Skip: -1, Limit: 10}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = Params{Limit: 10, AgeLimit: -2}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidParams)
}
