package dto

import (
	"time"

	"github.com/xiebiao/bookworm/internal/domain/review"
)

// ListReviewsQuery 评论列表查询参数，sort_by只支持date
type ListReviewsQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Size          int    `form:"size" binding:"omitempty,min=1,max=100" example:"10"`
	RatingStar    int    `form:"rating_star" binding:"omitempty,min=1,max=5" example:"5"`
	SortBy        string `form:"sort_by" binding:"omitempty,oneof=date" example:"date"`
	SortDirection string `form:"sort_direction" binding:"omitempty,oneof=asc desc" example:"desc"`
}

// CreateReviewRequest 发表评论
type CreateReviewRequest struct {
	Title      string `json:"review_title" binding:"required,max=120" example:"Loved it"`
	Details    string `json:"review_details" example:"Could not put it down"`
	RatingStar int    `json:"rating_star" binding:"required,min=1,max=5" example:"5"`
}

// ReviewResponse 评论
type ReviewResponse struct {
	ID         uint      `json:"id" example:"1"`
	BookID     uint      `json:"book_id" example:"1"`
	Title      string    `json:"review_title" example:"Loved it"`
	Details    string    `json:"review_details" example:"Could not put it down"`
	ReviewDate time.Time `json:"review_date" example:"2025-03-10T09:00:00Z"`
	RatingStar int       `json:"rating_star" example:"5"`
}

func NewReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		Title:      r.Title,
		Details:    r.Details,
		ReviewDate: r.ReviewDate,
		RatingStar: r.RatingStar,
	}
}

// ReviewPage 评论分页，附带全书评分和各星级数量
type ReviewPage struct {
	Data       []ReviewResponse `json:"data"`
	Meta       PageMeta         `json:"meta"`
	Rating     RatingResponse   `json:"rating"`
	StarCounts map[string]int64 `json:"star_counts"`
}

// PageMeta 与response.PageMeta字段一致
type PageMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
}

// NewReviewPage 星级统计key为"1"到"5"
func NewReviewPage(p *review.Page) ReviewPage {
	items := make([]ReviewResponse, len(p.Items))
	for i, r := range p.Items {
		items[i] = NewReviewResponse(r)
	}
	stars := make(map[string]int64, 5)
	for star := 1; star <= 5; star++ {
		stars[string(rune('0'+star))] = p.StarCounts[star]
	}
	return ReviewPage{
		Data:       items,
		Meta:       PageMeta{Total: p.Total, TotalPages: p.TotalPages, Page: p.Page, Size: p.Size},
		Rating:     RatingResponse{ReviewCount: p.Rating.ReviewCount, AverageRating: Price(p.Rating.AverageRating)},
		StarCounts: stars,
	}
}
