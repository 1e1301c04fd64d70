// Package pagination 页码分页的公共计算
package pagination

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Normalize 将非法页码/页大小修正为默认值，size上限为MaxSize
func Normalize(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return page, size
}

// Offset 返回 (page-1)*size
func Offset(page, size int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * size
}

// TotalPages 计算总页数，total为0时返回0
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}
