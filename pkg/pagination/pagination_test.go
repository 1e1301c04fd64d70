package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		size  int
		want  int
	}{
		{"空结果", 0, 10, 0},
		{"整除", 20, 10, 2},
		{"有余数", 15, 10, 2},
		{"不足一页", 3, 10, 1},
		{"非法size", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.size))
		})
	}
}

func TestOffsetAndNormalize(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 0, Offset(0, 10))

	page, size := Normalize(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultSize, size)

	_, size = Normalize(1, 500)
	assert.Equal(t, MaxSize, size)
}
