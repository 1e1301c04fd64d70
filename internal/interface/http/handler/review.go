package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookworm/internal/application/review"
	"github.com/xiebiao/bookworm/internal/interface/http/dto"
	"github.com/xiebiao/bookworm/pkg/response"
)

// ReviewHandler 评论HTTP处理器
type ReviewHandler struct {
	list   *appreview.ListReviewsUseCase
	create *appreview.CreateReviewUseCase
}

func NewReviewHandler(list *appreview.ListReviewsUseCase, create *appreview.CreateReviewUseCase) *ReviewHandler {
	return &ReviewHandler{list: list, create: create}
}

// ListReviews 评论列表
// @Summary      评论列表
// @Description  按评论时间排序，可按星级过滤；附带全书评分和各星级数量
// @Tags         评论
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        query query dto.ListReviewsQuery false "查询参数"
// @Success      200 {object} response.Response{data=dto.ReviewPage}
// @Failure      404 {object} response.Response "图书不存在或页码超出范围"
// @Router       /books/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q dto.ListReviewsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.list.Execute(c.Request.Context(), appreview.ListReviewsRequest{
		BookID:        id,
		Page:          q.Page,
		Size:          q.Size,
		RatingStar:    q.RatingStar,
		SortDirection: q.SortDirection,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReviewPage(page))
}

// CreateReview 发表评论
// @Summary      发表评论
// @Tags         评论
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.CreateReviewRequest true "评论内容"
// @Success      201 {object} response.Response{data=dto.ReviewResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      422 {object} response.Response "参数错误"
// @Router       /books/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	r, err := h.create.Execute(c.Request.Context(), appreview.CreateReviewRequest{
		BookID:     id,
		Title:      req.Title,
		Details:    req.Details,
		RatingStar: req.RatingStar,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewReviewResponse(r))
}
