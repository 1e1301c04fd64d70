package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/internal/domain/discount"
	"github.com/xiebiao/bookworm/pkg/money"
)

// DateLayout 日期统一使用 YYYY-MM-DD
const DateLayout = time.DateOnly

// ListBooksQuery 图书列表查询参数
type ListBooksQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Size          int    `form:"size" binding:"omitempty,min=1,max=100" example:"10"`
	Search        string `form:"search" binding:"max=100" example:"dune"`
	CategoryID    *uint  `form:"category_id" binding:"omitempty,min=1" example:"1"`
	AuthorID      *uint  `form:"author_id" binding:"omitempty,min=1" example:"2"`
	RatingStar    int    `form:"rating_star" binding:"omitempty,min=1,max=5" example:"4"`
	SortBy        string `form:"sort_by" binding:"omitempty,oneof=on_sale popularity price" example:"on_sale"`
	SortDirection string `form:"sort_direction" binding:"omitempty,oneof=asc desc" example:"desc"`
}

// AuthorResponse 作者
type AuthorResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"author_name" example:"Frank Herbert"`
	Bio  string `json:"author_bio" example:"American science fiction author"`
}

// CategoryResponse 分类
type CategoryResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"category_name" example:"Science Fiction"`
	Description string `json:"category_desc" example:"Speculative fiction"`
}

// DiscountResponse 折扣，end_date为null表示长期有效
type DiscountResponse struct {
	ID        uint    `json:"id" example:"3"`
	BookID    uint    `json:"book_id" example:"1"`
	StartDate string  `json:"discount_start_date" example:"2025-03-01"`
	EndDate   *string `json:"discount_end_date" example:"2025-03-31"`
	Price     string  `json:"discount_price" example:"9.99"`
}

// RatingResponse 评分统计
type RatingResponse struct {
	ReviewCount   int64  `json:"review_count" example:"12"`
	AverageRating string `json:"average_rating" example:"4.25"`
}

// BookSummary 图书展示信息（列表、详情、推荐列表共用）
// 价格都是两位小数的字符串
type BookSummary struct {
	ID             uint              `json:"id" example:"1"`
	Title          string            `json:"book_title" example:"Dune"`
	Summary        string            `json:"book_summary" example:"A desert planet..."`
	Price          string            `json:"book_price" example:"19.99"`
	CoverPhoto     string            `json:"book_cover_photo" example:"book1"`
	Category       *CategoryResponse `json:"category"`
	Author         *AuthorResponse   `json:"author"`
	Discount       *DiscountResponse `json:"discount"`
	Rating         RatingResponse    `json:"rating"`
	FinalPrice     string            `json:"final_price" example:"14.99"`
	DiscountAmount string            `json:"discount_amount" example:"5.00"`
}

// NewBookSummary 领域Summary转HTTP响应
func NewBookSummary(s *book.Summary) BookSummary {
	out := BookSummary{
		ID:         s.Book.ID,
		Title:      s.Book.Title,
		Summary:    s.Book.Summary,
		Price:      Price(s.Book.Price),
		CoverPhoto: s.Book.CoverPhoto,
		Rating: RatingResponse{
			ReviewCount:   s.Rating.ReviewCount,
			AverageRating: Price(s.Rating.AverageRating),
		},
		FinalPrice:     Price(s.FinalPrice),
		DiscountAmount: Price(s.DiscountAmount),
	}
	if s.Author != nil {
		a := NewAuthorResponse(s.Author)
		out.Author = &a
	}
	if s.Category != nil {
		c := NewCategoryResponse(s.Category)
		out.Category = &c
	}
	if s.Discount != nil {
		d := NewDiscountResponse(s.Discount)
		out.Discount = &d
	}
	return out
}

// NewBookSummaries 批量转换
func NewBookSummaries(items []*book.Summary) []BookSummary {
	out := make([]BookSummary, len(items))
	for i, s := range items {
		out[i] = NewBookSummary(s)
	}
	return out
}

func NewAuthorResponse(a *book.Author) AuthorResponse {
	return AuthorResponse{ID: a.ID, Name: a.Name, Bio: a.Bio}
}

func NewCategoryResponse(c *book.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

func NewDiscountResponse(d *discount.Discount) DiscountResponse {
	out := DiscountResponse{
		ID:        d.ID,
		BookID:    d.BookID,
		StartDate: d.StartDate.Format(DateLayout),
		Price:     Price(d.Price),
	}
	if d.EndDate != nil {
		end := d.EndDate.Format(DateLayout)
		out.EndDate = &end
	}
	return out
}

// Price 金额格式化为两位小数
func Price(d decimal.Decimal) string {
	return money.String(d)
}

// CreateBookRequest 新增图书（管理员）
type CreateBookRequest struct {
	Title      string          `json:"book_title" binding:"required,max=255" example:"Dune"`
	Summary    string          `json:"book_summary" example:"A desert planet..."`
	Price      decimal.Decimal `json:"book_price" swaggertype:"string" example:"19.99"`
	CoverPhoto string          `json:"book_cover_photo" binding:"max=20" example:"book1"`
	CategoryID *uint           `json:"category_id" example:"1"`
	AuthorID   *uint           `json:"author_id" example:"1"`
}

// CreateAuthorRequest 新增作者（管理员）
type CreateAuthorRequest struct {
	Name string `json:"author_name" binding:"required,max=255" example:"Frank Herbert"`
	Bio  string `json:"author_bio" example:"American science fiction author"`
}

// CreateCategoryRequest 新增分类（管理员）
type CreateCategoryRequest struct {
	Name        string `json:"category_name" binding:"required,max=120" example:"Science Fiction"`
	Description string `json:"category_desc" binding:"max=255" example:"Speculative fiction"`
}

// CreateDiscountRequest 新增折扣（管理员）
type CreateDiscountRequest struct {
	StartDate string          `json:"discount_start_date" binding:"required,datetime=2006-01-02" example:"2025-03-01"`
	EndDate   *string         `json:"discount_end_date" binding:"omitempty,datetime=2006-01-02" example:"2025-03-31"`
	Price     decimal.Decimal `json:"discount_price" swaggertype:"string" example:"9.99"`
}
