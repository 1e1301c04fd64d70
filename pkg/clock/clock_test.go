package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	t.Run("按UTC日历日截断", func(t *testing.T) {
		shanghai := time.FixedZone("CST", 8*3600)
		// 本地3月10日凌晨2点，UTC仍是3月9日
		local := time.Date(2025, 3, 10, 2, 0, 0, 0, shanghai)
		assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), Date(local))
	})

	t.Run("西时区跨日", func(t *testing.T) {
		newYork := time.FixedZone("EST", -5*3600)
		local := time.Date(2025, 3, 9, 22, 0, 0, 0, newYork)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Date(local))
	})

	t.Run("Today使用注入的时钟", func(t *testing.T) {
		c := Fixed(time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC))
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Today(c))
	})
}
