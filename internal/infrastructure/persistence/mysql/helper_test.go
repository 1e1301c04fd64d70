package mysql

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 固定的"今天"
var today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

// newTestDB 内存SQLite，使用与生产相同的模型迁移
// 单连接保证所有语句看到同一个内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func mustBook(t *testing.T, db *gorm.DB, title, price string) uint {
	t.Helper()
	m := &BookModel{
		Title:     title,
		Summary:   "summary of " + title,
		Price:     decimal.RequireFromString(price),
		CreatedAt: today,
	}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}

func mustDiscount(t *testing.T, db *gorm.DB, bookID uint, start time.Time, end *time.Time, price string) uint {
	t.Helper()
	m := &DiscountModel{
		BookID:    bookID,
		StartDate: start,
		EndDate:   end,
		Price:     decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}

func mustReviews(t *testing.T, db *gorm.DB, bookID uint, stars ...int) {
	t.Helper()
	for i, s := range stars {
		m := &ReviewModel{
			BookID:     bookID,
			Title:      "review",
			ReviewDate: today.Add(time.Duration(i) * time.Hour),
			RatingStar: s,
		}
		require.NoError(t, db.Create(m).Error)
	}
}

func day(offset int) *time.Time {
	d := today.AddDate(0, 0, offset)
	return &d
}
