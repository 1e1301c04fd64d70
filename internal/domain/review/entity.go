package review

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Review 图书评论，创建后不可修改
type Review struct {
	ID         uint
	BookID     uint
	Title      string
	Details    string
	RatingStar int // 1-5
	ReviewDate time.Time
}

// NewReview 创建评论
func NewReview(bookID uint, title, details string, star int, at time.Time) (*Review, error) {
	title = strings.TrimSpace(title)
	if title == "" || len([]rune(title)) > 120 {
		return nil, ErrInvalidTitle
	}
	if star < 1 || star > 5 {
		return nil, ErrInvalidRating
	}
	return &Review{
		BookID:     bookID,
		Title:      title,
		Details:    strings.TrimSpace(details),
		RatingStar: star,
		ReviewDate: at.UTC(),
	}, nil
}

// Rating 评分聚合
type Rating struct {
	ReviewCount   int64
	AverageRating decimal.Decimal // 两位小数，无评论时为0
}

// NewRating 由评论数和星级总和计算平均分（四舍五入到两位小数）
func NewRating(count, starSum int64) Rating {
	if count <= 0 {
		return Rating{AverageRating: decimal.Zero}
	}
	avg := decimal.NewFromInt(starSum).Div(decimal.NewFromInt(count)).Round(2)
	return Rating{ReviewCount: count, AverageRating: avg}
}

// Aggregate 对一组星级计算评分
func Aggregate(stars []int) Rating {
	var sum int64
	for _, s := range stars {
		sum += int64(s)
	}
	return NewRating(int64(len(stars)), sum)
}

// StarCounts 各星级评论数，下标1-5有效
type StarCounts [6]int64
