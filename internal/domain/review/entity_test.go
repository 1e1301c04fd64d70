package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		stars     []int
		wantCount int64
		wantAvg   string
	}{
		{"没有评论", nil, 0, "0.00"},
		{"3,4,5", []int{3, 4, 5}, 3, "4.00"},
		{"需要四舍五入", []int{5, 4, 4}, 3, "4.33"},
		{"向上进位", []int{5, 5, 4}, 3, "4.67"},
		{"半数进位", []int{1, 2, 2, 2, 2, 2, 2, 2}, 8, "1.88"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Aggregate(tt.stars)
			assert.Equal(t, tt.wantCount, r.ReviewCount)
			assert.Equal(t, tt.wantAvg, r.AverageRating.StringFixed(2))
		})
	}
}

func TestNewReview(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	r, err := NewReview(1, "  Great  ", " loved it ", 5, at)
	require.NoError(t, err)
	assert.Equal(t, "Great", r.Title)
	assert.Equal(t, "loved it", r.Details)

	_, err = NewReview(1, "", "", 5, at)
	assert.ErrorIs(t, err, ErrInvalidTitle)

	_, err = NewReview(1, "ok", "", 0, at)
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = NewReview(1, "ok", "", 6, at)
	assert.ErrorIs(t, err, ErrInvalidRating)
}
