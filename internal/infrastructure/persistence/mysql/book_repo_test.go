package mysql

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/pkg/clock"
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

func newBookService(db *gorm.DB) book.Service {
	return book.NewService(
		NewBookRepository(db),
		NewAuthorRepository(db),
		NewCategoryRepository(db),
		NewDiscountRepository(db),
		NewReviewRepository(db),
		clock.Fixed(today.Add(9*time.Hour)),
	)
}

func finalPrices(items []*book.Summary) []string {
	prices := make([]string, len(items))
	for i, s := range items {
		prices[i] = s.FinalPrice.StringFixed(2)
	}
	return prices
}

func TestBookQuery_Pagination(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 15; i++ {
		mustBook(t, db, fmt.Sprintf("Book %02d", i), "10.00")
	}
	svc := newBookService(db)
	ctx := context.Background()

	t.Run("第二页只有5条", func(t *testing.T) {
		res, err := svc.QueryBooks(ctx, book.Filter{Page: 2, Size: 10})
		require.NoError(t, err)
		assert.Len(t, res.Items, 5)
		assert.Equal(t, int64(15), res.Total)
		assert.Equal(t, 2, res.TotalPages)
	})

	t.Run("超出范围的页返回NotFound", func(t *testing.T) {
		_, err := svc.QueryBooks(ctx, book.Filter{Page: 3, Size: 10})
		require.Error(t, err)
		assert.ErrorIs(t, err, book.ErrPageNotFound)
		assert.Equal(t, "No books found for page 3", apperrors.GetAppError(err).Message)
	})

	t.Run("价格相同按id升序，分页不重复", func(t *testing.T) {
		seen := map[uint]bool{}
		for page := 1; page <= 2; page++ {
			res, err := svc.QueryBooks(ctx, book.Filter{Page: page, Size: 10, SortBy: book.SortPrice})
			require.NoError(t, err)
			for _, s := range res.Items {
				assert.False(t, seen[s.Book.ID])
				seen[s.Book.ID] = true
			}
		}
		assert.Len(t, seen, 15)
	})
}

func TestBookQuery_Sorting(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := mustBook(t, db, "A", "10.00")
	b := mustBook(t, db, "B", "30.00")
	c := mustBook(t, db, "C", "5.00")
	mustDiscount(t, db, b, today.AddDate(0, 0, -1), nil, "25.00")

	svc := newBookService(db)

	t.Run("按最终价格降序", func(t *testing.T) {
		res, err := svc.QueryBooks(ctx, book.Filter{SortBy: book.SortPrice, SortDirection: book.SortDesc})
		require.NoError(t, err)
		assert.Equal(t, []string{"25.00", "10.00", "5.00"}, finalPrices(res.Items))
	})

	t.Run("按最终价格升序", func(t *testing.T) {
		res, err := svc.QueryBooks(ctx, book.Filter{SortBy: book.SortPrice, SortDirection: book.SortAsc})
		require.NoError(t, err)
		assert.Equal(t, []string{"5.00", "10.00", "25.00"}, finalPrices(res.Items))
	})

	t.Run("默认按优惠金额降序，无折扣的按最终价格升序", func(t *testing.T) {
		res, err := svc.QueryBooks(ctx, book.Filter{})
		require.NoError(t, err)
		require.Len(t, res.Items, 3)
		assert.Equal(t, b, res.Items[0].Book.ID)
		assert.Equal(t, "5.00", res.Items[0].DiscountAmount.StringFixed(2))
		assert.Equal(t, c, res.Items[1].Book.ID)
		assert.Equal(t, a, res.Items[2].Book.ID)
	})
}

func TestBookQuery_ActiveDiscountOnly(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	expired := mustBook(t, db, "Expired", "20.00")
	mustDiscount(t, db, expired, today.AddDate(0, 0, -10), day(-1), "10.00")
	endsToday := mustBook(t, db, "Ends today", "20.00")
	mustDiscount(t, db, endsToday, today.AddDate(0, 0, -10), day(0), "11.00")
	future := mustBook(t, db, "Future", "20.00")
	mustDiscount(t, db, future, today.AddDate(0, 0, 1), nil, "12.00")
	startsToday := mustBook(t, db, "Starts today", "20.00")
	mustDiscount(t, db, startsToday, today, day(5), "13.00")

	svc := newBookService(db)

	for _, id := range []uint{expired, endsToday, future} {
		s, err := svc.GetBookByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, s.Discount)
		assert.Equal(t, "20.00", s.FinalPrice.StringFixed(2))
	}

	s, err := svc.GetBookByID(ctx, startsToday)
	require.NoError(t, err)
	require.NotNil(t, s.Discount)
	assert.Equal(t, "13.00", s.FinalPrice.StringFixed(2))

	t.Run("促销列表只包含生效折扣", func(t *testing.T) {
		items, err := svc.GetOnSaleBooks(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, startsToday, items[0].Book.ID)
	})

	t.Run("列表与详情的价格一致", func(t *testing.T) {
		res, err := svc.QueryBooks(ctx, book.Filter{SortBy: book.SortPrice, SortDirection: book.SortAsc})
		require.NoError(t, err)
		assert.Equal(t, []string{"13.00", "20.00", "20.00", "20.00"}, finalPrices(res.Items))
	})
}

func TestBookQuery_Curated(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	small := mustBook(t, db, "Small discount", "10.00")
	mustDiscount(t, db, small, today, nil, "8.00")
	big := mustBook(t, db, "Big discount", "40.00")
	mustDiscount(t, db, big, today, nil, "30.00")
	cheapTie := mustBook(t, db, "Cheap tie", "12.00")
	mustDiscount(t, db, cheapTie, today, nil, "10.00")
	mustBook(t, db, "No discount", "9.00")

	mustReviews(t, db, small, 5, 5, 4)
	mustReviews(t, db, big, 3)
	mustReviews(t, db, cheapTie, 5, 5, 5)

	svc := newBookService(db)

	t.Run("促销：优惠金额降序，相同时最终价格升序", func(t *testing.T) {
		items, err := svc.GetOnSaleBooks(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, big, items[0].Book.ID)
		assert.Equal(t, small, items[1].Book.ID)
		assert.Equal(t, cheapTie, items[2].Book.ID)
	})

	t.Run("热门：评论数降序，相同时最终价格升序", func(t *testing.T) {
		items, err := svc.GetPopularBooks(ctx)
		require.NoError(t, err)
		require.Len(t, items, 4)
		assert.Equal(t, small, items[0].Book.ID)
		assert.Equal(t, cheapTie, items[1].Book.ID)
		assert.Equal(t, big, items[2].Book.ID)
		assert.Equal(t, int64(3), items[0].Rating.ReviewCount)
	})

	t.Run("推荐：平均分降序", func(t *testing.T) {
		items, err := svc.GetRecommendedBooks(ctx)
		require.NoError(t, err)
		require.Len(t, items, 4)
		assert.Equal(t, cheapTie, items[0].Book.ID)
		assert.Equal(t, small, items[1].Book.ID)
		assert.Equal(t, "4.67", items[1].Rating.AverageRating.StringFixed(2))
	})
}

func TestBookQuery_Filters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	authors := NewAuthorRepository(db)
	categories := NewCategoryRepository(db)
	asimov := &book.Author{Name: "Isaac Asimov"}
	require.NoError(t, authors.Create(ctx, asimov))
	scifi := &book.Category{Name: "Science Fiction"}
	require.NoError(t, categories.Create(ctx, scifi))

	good := mustBook(t, db, "Foundation", "10.00")
	require.NoError(t, db.Model(&BookModel{}).Where("id = ?", good).
		Updates(map[string]interface{}{"author_id": asimov.ID, "category_id": scifi.ID}).Error)
	mustReviews(t, db, good, 5, 4)

	average := mustBook(t, db, "Emma", "10.00")
	mustReviews(t, db, average, 3, 3)

	mustBook(t, db, "Unreviewed", "10.00")

	svc := newBookService(db)

	t.Run("评分过滤排除没有评论的书", func(t *testing.T) {
		res, err := svc.QueryBooks(ctx, book.Filter{RatingStar: 4})
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, good, res.Items[0].Book.ID)
		assert.Equal(t, int64(1), res.Total)
	})

	t.Run("评分过滤包含边界值", func(t *testing.T) {
		res, err := svc.QueryBooks(ctx, book.Filter{RatingStar: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.Total)
	})

	t.Run("按作者和分类过滤", func(t *testing.T) {
		res, err := svc.QueryBooks(ctx, book.Filter{AuthorID: &asimov.ID, CategoryID: &scifi.ID})
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "Isaac Asimov", res.Items[0].Author.Name)
		assert.Equal(t, "Science Fiction", res.Items[0].Category.Name)
	})

	t.Run("关键字忽略大小写", func(t *testing.T) {
		res, err := svc.QueryBooks(ctx, book.Filter{Search: "FOUND"})
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, good, res.Items[0].Book.ID)
	})

	t.Run("第一页为空不是错误", func(t *testing.T) {
		res, err := svc.QueryBooks(ctx, book.Filter{Search: "nothing matches"})
		require.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.Equal(t, 0, res.TotalPages)
	})
}

func TestBookRepository_FindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)

	_, err := repo.FindByID(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.Equal(t, "Book not found with id 42", apperrors.GetAppError(err).Message)
}
