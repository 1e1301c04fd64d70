package discount

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository 折扣仓储接口
type Repository interface {
	// Create 创建折扣
	Create(ctx context.Context, d *Discount) error

	// ListByBook 查询一本书的全部折扣（按开始日期升序）
	ListByBook(ctx context.Context, bookID uint) ([]*Discount, error)

	// ListByBooks 批量查询多本书的全部折扣，按BookID分组
	ListByBooks(ctx context.Context, bookIDs []uint) (map[uint][]*Discount, error)

	// LockBook 锁定图书行，串行化同一本书的折扣写入
	LockBook(ctx context.Context, bookID uint) error
}

// BookPricer 查询图书原价（折扣校验需要）
// 图书不存在时返回NotFound错误
type BookPricer interface {
	ListPrice(ctx context.Context, bookID uint) (decimal.Decimal, error)
}
