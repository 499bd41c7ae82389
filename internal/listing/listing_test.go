package listing

import (
	"net/url"
	"testing"

	"quadras/web/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(url.Values{
		"dataInicio": {"2025-06-01"},
		"dataFim":    {"2025-06-30"},
		"esporte":    {"Padel"},
		"q":          {"  centro "},
	})
	require.NoError(t, err)
	assert.Equal(t, Filter{From: "2025-06-01", To: "2025-06-30", Sport: "padel", Search: "centro"}, f)
	assert.Equal(t, "dataFim=2025-06-30&dataInicio=2025-06-01&esporte=padel&q=centro", f.Query().Encode())
}

func TestParseFilterRejects(t *testing.T) {
	tests := map[string]url.Values{
		"bad date":      {"dataInicio": {"01/06/2025"}},
		"reverse range": {"dataInicio": {"2025-06-30"}, "dataFim": {"2025-06-01"}},
		"unknown sport": {"esporte": {"golfe"}},
	}
	for name, q := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFilter(q)
			assert.True(t, validation.IsErrInvalid(err))
		})
	}
}

func TestInRangeInclusive(t *testing.T) {
	f := Filter{From: "2025-06-01", To: "2025-06-30"}
	dates := []string{"2025-05-31", "2025-06-01", "2025-06-15", "2025-06-30", "2025-07-01", "garbage"}

	got := Keep(dates, f.InRange)
	assert.Equal(t, []string{"2025-06-01", "2025-06-15", "2025-06-30"}, got)

	assert.True(t, Filter{}.InRange("garbage"))
	assert.True(t, Filter{From: "2025-06-01"}.InRange("2030-01-01"))
	assert.False(t, Filter{To: "2025-06-01"}.InRange("2025-06-02"))
}

func TestMatchesSearch(t *testing.T) {
	f := Filter{Search: "sao jose"}
	assert.True(t, f.MatchesSearch("Quadra 1", "Arena São José"))
	assert.False(t, f.MatchesSearch("Quadra 1", "Arena Centro"))
	assert.True(t, Filter{}.MatchesSearch())
}

func TestParseCursor(t *testing.T) {
	c, err := ParseCursor(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, Cursor{Page: 0, Size: DefaultPageSize}, c)

	c, err = ParseCursor(url.Values{"page": {"3"}, "size": {"20"}})
	require.NoError(t, err)
	assert.Equal(t, Cursor{Page: 3, Size: 20}, c)
	assert.Equal(t, "page=3&size=20", c.Query(nil).Encode())

	_, err = ParseCursor(url.Values{"size": {"500"}})
	assert.True(t, validation.IsErrInvalid(err))
	_, err = ParseCursor(url.Values{"page": {"-1"}})
	assert.True(t, validation.IsErrInvalid(err))
}

func TestNewPage(t *testing.T) {
	p := NewPage[string](nil, Cursor{Page: 0, Size: 10}, 0, 0, Filter{})
	assert.Equal(t, StateEmpty, p.State)
	assert.NotNil(t, p.Items)
	assert.False(t, p.HasNext)

	p = NewPage([]string{"a", "b"}, Cursor{Page: 0, Size: 2}, 5, 3, Filter{})
	assert.Equal(t, StateReady, p.State)
	assert.True(t, p.HasNext)

	p = NewPage([]string{"e"}, Cursor{Page: 2, Size: 2}, 5, 3, Filter{})
	assert.False(t, p.HasNext)
}

func TestToPage(t *testing.T) {
	res := Result[string]{Content: []string{"2025-05-30", "2025-06-02"}, TotalElements: 2, TotalPages: 1}
	f := Filter{From: "2025-06-01"}

	p := ToPage(res, Cursor{Size: 10}, f, func(d string) bool { return f.InRange(d) }, func(d string) int { return len(d) })
	assert.Equal(t, []int{10}, p.Items)
	assert.Equal(t, StateReady, p.State)
	assert.Equal(t, f, p.Filter)
}
