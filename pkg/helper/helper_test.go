package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeInterests(t *testing.T) {
	got := NormalizeInterests([]string{" music", "hiking", "", "music", "  ", "Music", "hiking "})
	assert.Equal(t, []string{"music", "hiking", "Music"}, got)
}

func TestNormalizeInterestsEmpty(t *testing.T) {
	assert.Empty(t, NormalizeInterests(nil))
}

func TestIntStringRoundTrip(t *testing.T) {
	strs := IntToStringArray([]int{3, 10, 42})
	assert.Equal(t, []string{"3", "10", "42"}, strs)

	ints, err := StringToIntArrary(strs)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 10, 42}, ints)

	_, err = StringToIntArrary([]string{"1", "x"})
	assert.Error(t, err)
}

func TestToJSON(t *testing.T) {
	assert.JSONEq(t, `{"a":1}`, string(ToJSON(map[string]int{"a": 1})))
	assert.Nil(t, ToJSON(func() {}))
}

func TestExtractFirstPath(t *testing.T) {
	tests := []struct {
		path, first, rest string
	}{
		{"/users/3", "users", "/3"},
		{"/users", "users", "/"},
		{"/v1/matches/user/2", "v1", "/matches/user/2"},
		{"/", "", "/"},
		{"", "", "/"},
	}
	for _, tt := range tests {
		first, rest := ExtractFirstPath(tt.path)
		assert.Equal(t, tt.first, first, tt.path)
		assert.Equal(t, tt.rest, rest, tt.path)
	}
}
