package book

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/internal/domain/review"
	"github.com/xiebiao/bookworm/pkg/clock"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

// memCache 以JSON保存，和Redis实现一样经过序列化
type memCache struct {
	data        map[string][]byte
	invalidated []uint
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) get(key string, dest interface{}) bool {
	raw, ok := c.data[key]
	return ok && json.Unmarshal(raw, dest) == nil
}

func (c *memCache) set(key string, v interface{}) {
	raw, _ := json.Marshal(v)
	c.data[key] = raw
}

func (c *memCache) GetDetail(_ context.Context, id uint, day time.Time, dest interface{}) bool {
	return c.get(fmt.Sprintf("detail:%d:%s", id, day.Format(time.DateOnly)), dest)
}

func (c *memCache) SetDetail(_ context.Context, id uint, day time.Time, v interface{}) {
	c.set(fmt.Sprintf("detail:%d:%s", id, day.Format(time.DateOnly)), v)
}

func (c *memCache) GetCurated(_ context.Context, kind string, day time.Time, dest interface{}) bool {
	return c.get("curated:"+kind+":"+day.Format(time.DateOnly), dest)
}

func (c *memCache) SetCurated(_ context.Context, kind string, day time.Time, v interface{}) {
	c.set("curated:"+kind+":"+day.Format(time.DateOnly), v)
}

func (c *memCache) Invalidate(_ context.Context, bookID uint, _ time.Time) {
	c.invalidated = append(c.invalidated, bookID)
	c.data = map[string][]byte{}
}

// fakeBooks 只实现用例用到的方法，其余方法调用会panic
type fakeBooks struct {
	book.Service
	books   map[uint]*book.Book
	calls   int
	filters []book.Filter
}

func newFakeBooks() *fakeBooks {
	return &fakeBooks{books: map[uint]*book.Book{
		1: {ID: 1, Title: "Dune", Price: decimal.RequireFromString("20.00")},
	}}
}

func (f *fakeBooks) GetBookByID(_ context.Context, id uint) (*book.Summary, error) {
	f.calls++
	b, ok := f.books[id]
	if !ok {
		return nil, book.NotFound(id)
	}
	return book.NewSummary(b, nil, review.NewRating(0, 0)), nil
}

func (f *fakeBooks) QueryBooks(_ context.Context, filter book.Filter) (*book.Result, error) {
	f.filters = append(f.filters, filter)
	return &book.Result{Page: 1, Size: 10}, nil
}

func (f *fakeBooks) GetPopularBooks(context.Context) ([]*book.Summary, error) {
	f.calls++
	return []*book.Summary{book.NewSummary(f.books[1], nil, review.NewRating(0, 0))}, nil
}

func (f *fakeBooks) CreateBook(_ context.Context, b *book.Book) error {
	b.ID = uint(len(f.books) + 1)
	f.books[b.ID] = b
	return nil
}

func TestGetBookUseCase(t *testing.T) {
	ctx := context.Background()
	books := newFakeBooks()
	cache := newMemCache()
	uc := NewGetBookUseCase(books, cache, clock.Fixed(now))

	first, err := uc.Execute(ctx, 1)
	require.NoError(t, err)
	assert.True(t, first.FinalPrice.Equal(decimal.NewFromInt(20)))

	t.Run("第二次命中缓存", func(t *testing.T) {
		second, err := uc.Execute(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, books.calls)
		assert.Equal(t, "Dune", second.Book.Title)
		assert.True(t, second.FinalPrice.Equal(first.FinalPrice))

		// 缓存命中与数据库结果逐字段一致
		want, err := json.Marshal(first)
		require.NoError(t, err)
		got, err := json.Marshal(second)
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(got))
	})

	t.Run("不存在的图书不写缓存", func(t *testing.T) {
		_, err := uc.Execute(ctx, 404)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.Len(t, cache.data, 1)
	})

	t.Run("NopCache每次都查询", func(t *testing.T) {
		books := newFakeBooks()
		uc := NewGetBookUseCase(books, NopCache{}, clock.Fixed(now))
		_, _ = uc.Execute(ctx, 1)
		_, _ = uc.Execute(ctx, 1)
		assert.Equal(t, 2, books.calls)
	})
}

func TestCuratedBooksUseCase(t *testing.T) {
	ctx := context.Background()
	books := newFakeBooks()
	uc := NewCuratedBooksUseCase(books, newMemCache(), clock.Fixed(now))

	items, err := uc.Execute(ctx, book.CuratedPopular)
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = uc.Execute(ctx, book.CuratedPopular)
	require.NoError(t, err)
	assert.Equal(t, 1, books.calls)

	_, err = uc.Execute(ctx, book.Curated("latest"))
	assert.ErrorIs(t, err, book.ErrInvalidFilter)
}

func TestListBooksUseCase(t *testing.T) {
	books := newFakeBooks()
	authorID := uint(3)
	_, err := NewListBooksUseCase(books).Execute(context.Background(), ListBooksRequest{
		Page:          2,
		AuthorID:      &authorID,
		SortBy:        "price",
		SortDirection: "asc",
	})
	require.NoError(t, err)
	require.Len(t, books.filters, 1)
	assert.Equal(t, book.SortPrice, books.filters[0].SortBy)
	assert.Equal(t, book.SortAsc, books.filters[0].SortDirection)
	assert.Equal(t, &authorID, books.filters[0].AuthorID)
}

func TestCreateBookUseCase(t *testing.T) {
	ctx := context.Background()
	books := newFakeBooks()
	cache := newMemCache()
	uc := NewCreateBookUseCase(books, cache, clock.Fixed(now))

	t.Run("价格不合法", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateBookRequest{Title: "X", Price: decimal.RequireFromString("1.999")})
		assert.ErrorIs(t, err, book.ErrInvalidPrice)
		assert.Empty(t, cache.invalidated)
	})

	t.Run("创建成功后失效推荐列表", func(t *testing.T) {
		summary, err := uc.Execute(ctx, CreateBookRequest{Title: " Emma ", Price: decimal.RequireFromString("9.99")})
		require.NoError(t, err)
		assert.Equal(t, "Emma", summary.Book.Title)
		assert.Equal(t, []uint{0}, cache.invalidated)
	})
}
