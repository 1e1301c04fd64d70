package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/bookworm/internal/application/book"
	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/internal/domain/review"
	"github.com/xiebiao/bookworm/pkg/clock"
)

type fakeReviews struct {
	created []*review.Review
	filters []review.Filter
}

func (f *fakeReviews) List(_ context.Context, bookID uint, filter review.Filter) (*review.Page, error) {
	if bookID != 1 {
		return nil, book.NotFound(bookID)
	}
	f.filters = append(f.filters, filter)
	return &review.Page{Page: 1, Size: 20}, nil
}

func (f *fakeReviews) Create(_ context.Context, r *review.Review) error {
	if r.BookID != 1 {
		return book.NotFound(r.BookID)
	}
	r.ID = uint(len(f.created) + 1)
	f.created = append(f.created, r)
	return nil
}

type spyCache struct {
	appbook.NopCache
	invalidated []uint
	days        []time.Time
}

func (c *spyCache) Invalidate(_ context.Context, bookID uint, day time.Time) {
	c.invalidated = append(c.invalidated, bookID)
	c.days = append(c.days, day)
}

func TestListReviewsUseCase(t *testing.T) {
	ctx := context.Background()
	reviews := &fakeReviews{}
	uc := NewListReviewsUseCase(reviews)

	_, err := uc.Execute(ctx, ListReviewsRequest{BookID: 1, RatingStar: 4, SortDirection: "asc"})
	require.NoError(t, err)
	assert.Equal(t, review.Filter{RatingStar: 4, SortDirection: review.SortAsc}, reviews.filters[0])

	_, err = uc.Execute(ctx, ListReviewsRequest{BookID: 1, RatingStar: 6})
	assert.ErrorIs(t, err, review.ErrInvalidRating)

	_, err = uc.Execute(ctx, ListReviewsRequest{BookID: 9})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestCreateReviewUseCase(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 18, 45, 0, 0, time.UTC)
	reviews := &fakeReviews{}
	cache := &spyCache{}
	uc := NewCreateReviewUseCase(reviews, cache, clock.Fixed(at))

	t.Run("创建成功", func(t *testing.T) {
		r, err := uc.Execute(ctx, CreateReviewRequest{BookID: 1, Title: "Great", Details: "loved it", RatingStar: 5})
		require.NoError(t, err)
		assert.Equal(t, at, r.ReviewDate)
		assert.Equal(t, []uint{1}, cache.invalidated)
		assert.Equal(t, clock.Date(at), cache.days[0])
	})

	t.Run("星级不合法", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateReviewRequest{BookID: 1, Title: "Meh", RatingStar: 0})
		assert.ErrorIs(t, err, review.ErrInvalidRating)
	})

	t.Run("图书不存在不失效缓存", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateReviewRequest{BookID: 2, Title: "Lost", RatingStar: 3})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.Len(t, cache.invalidated, 1)
	})
}
