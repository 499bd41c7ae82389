package arena

import (
	"context"
	"net/url"
	"testing"

	"quadras/web/internal/listing"
	"quadras/web/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	arenas  []Arena
	reviews []Review
	updated UpdateProfileInput
}

func (f *fakeBackend) ListArenas(context.Context, url.Values) (listing.Result[Arena], error) {
	return listing.Result[Arena]{Content: f.arenas, TotalElements: len(f.arenas), TotalPages: 1}, nil
}

func (f *fakeBackend) GetArena(_ context.Context, id string) (*Arena, error) {
	for _, a := range f.arenas {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeBackend) UpdateArena(_ context.Context, id string, in UpdateProfileInput) (*Arena, error) {
	f.updated = in
	return &Arena{ID: id, Name: in.Name, Slug: in.Slug}, nil
}

func (f *fakeBackend) ListReviews(context.Context, string) ([]Review, error) { return f.reviews, nil }

func TestSummarize(t *testing.T) {
	s := Summarize([]Review{{Rating: 5}, {Rating: 4}, {Rating: 4}, {Rating: 0}})
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 4.3, s.Average, 0.001)
	assert.Equal(t, [5]int{0, 0, 0, 2, 1}, s.Stars)
	assert.Len(t, s.Reviews, 4)

	empty := Summarize(nil)
	assert.Zero(t, empty.Average)
	assert.NotNil(t, empty.Reviews)
}

func TestCardRatingLabel(t *testing.T) {
	assert.Equal(t, "Sem avaliações", NewCard(Arena{}).RatingLabel)
	assert.Equal(t, "4,5", NewCard(Arena{Rating: 4.5, ReviewCount: 2}).RatingLabel)
}

func TestListSearchIgnoresAccents(t *testing.T) {
	s := NewService(&fakeBackend{arenas: []Arena{
		{ID: "1", Name: "Arena Beira-Mar", City: "Florianópolis"},
		{ID: "2", Name: "Arena Centro", City: "Curitiba"},
	}})
	page, err := s.List(context.Background(), listing.Filter{Search: "florianopolis"}, listing.Cursor{Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "1", page.Items[0].ID)
}

func TestGetNotFound(t *testing.T) {
	_, err := NewService(&fakeBackend{}).Get(context.Background(), "x")
	assert.True(t, IsErrNotFound(err))
}

func TestUpdateProfile(t *testing.T) {
	fb := &fakeBackend{}
	s := NewService(fb)

	a, err := s.UpdateProfile(context.Background(), "a1", UpdateProfileInput{
		Name:  " Arena São João ",
		City:  "Recife",
		State: "pe",
	})
	require.NoError(t, err)
	assert.Equal(t, "arena-sao-joao", a.Slug)
	assert.Equal(t, "PE", fb.updated.State)

	_, err = s.UpdateProfile(context.Background(), "a1", UpdateProfileInput{Name: "A"})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "nome")
	assert.Contains(t, verr.Fields, "cidade")
	assert.Contains(t, verr.Fields, "estado")
}

func TestReviews(t *testing.T) {
	s := NewService(&fakeBackend{reviews: []Review{{Rating: 3}}})
	sum, err := s.Reviews(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, sum.Average)
}
