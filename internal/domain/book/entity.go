package book

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookworm/pkg/money"
)

// Book 图书实体
// 价格使用decimal保存两位小数，作者和分类可以为空
type Book struct {
	ID         uint
	Title      string
	Summary    string
	Price      decimal.Decimal
	CoverPhoto string
	CategoryID *uint
	AuthorID   *uint
	CreatedAt  time.Time
}

// NewBook 创建图书(工厂方法)
// 业务规则: 书名不能为空, 价格>0且最多两位小数
func NewBook(title, summary string, price decimal.Decimal, cover string, categoryID, authorID *uint) (*Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if !price.IsPositive() || !money.HasAtMostPlaces(price) {
		return nil, ErrInvalidPrice
	}
	return &Book{
		Title:      title,
		Summary:    strings.TrimSpace(summary),
		Price:      price,
		CoverPhoto: cover,
		CategoryID: categoryID,
		AuthorID:   authorID,
	}, nil
}

// Author 作者
type Author struct {
	ID   uint
	Name string
	Bio  string
}

// Category 分类
type Category struct {
	ID          uint
	Name        string
	Description string
}
