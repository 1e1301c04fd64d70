package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookworm/internal/application/book"
	"github.com/xiebiao/bookworm/internal/application/catalog"
	"github.com/xiebiao/bookworm/internal/domain/book"
	"github.com/xiebiao/bookworm/internal/interface/http/dto"
	"github.com/xiebiao/bookworm/pkg/response"
)

// BookHandler 图书HTTP处理器
// Handler只负责解析请求、调用应用层、转换响应
type BookHandler struct {
	list      *appbook.ListBooksUseCase
	get       *appbook.GetBookUseCase
	curated   *appbook.CuratedBooksUseCase
	create    *appbook.CreateBookUseCase
	discounts *catalog.DiscountsUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	list *appbook.ListBooksUseCase,
	get *appbook.GetBookUseCase,
	curated *appbook.CuratedBooksUseCase,
	create *appbook.CreateBookUseCase,
	discounts *catalog.DiscountsUseCase,
) *BookHandler {
	return &BookHandler{
		list:      list,
		get:       get,
		curated:   curated,
		create:    create,
		discounts: discounts,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  过滤（分类、作者、最低评分、关键字）、排序（on_sale/popularity/price）、分页
// @Tags         图书
// @Produce      json
// @Param        query query dto.ListBooksQuery false "查询参数"
// @Success      200 {object} response.Response{data=response.PageData{data=[]dto.BookSummary}}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "页码超出范围"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.list.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:          q.Page,
		Size:          q.Size,
		Search:        q.Search,
		CategoryID:    q.CategoryID,
		AuthorID:      q.AuthorID,
		RatingStar:    q.RatingStar,
		SortBy:        q.SortBy,
		SortDirection: q.SortDirection,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewBookSummaries(result.Items), result.Total, result.Page, result.Size)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookSummary}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	summary, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookSummary(summary))
}

// OnSale 优惠力度最大的10本
// @Summary      促销图书
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.BookSummary}
// @Router       /books/on-sale [get]
func (h *BookHandler) OnSale(c *gin.Context) { h.curatedList(c, book.CuratedOnSale) }

// Popular 评论最多的8本
// @Summary      热门图书
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.BookSummary}
// @Router       /books/popular [get]
func (h *BookHandler) Popular(c *gin.Context) { h.curatedList(c, book.CuratedPopular) }

// Recommended 评分最高的8本
// @Summary      推荐图书
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.BookSummary}
// @Router       /books/recommended [get]
func (h *BookHandler) Recommended(c *gin.Context) { h.curatedList(c, book.CuratedRecommended) }

func (h *BookHandler) curatedList(c *gin.Context, kind book.Curated) {
	items, err := h.curated.Execute(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookSummaries(items))
}

// CreateBook 新增图书
// @Summary      新增图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookSummary}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	summary, err := h.create.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:      req.Title,
		Summary:    req.Summary,
		Price:      req.Price,
		CoverPhoto: req.CoverPhoto,
		CategoryID: req.CategoryID,
		AuthorID:   req.AuthorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewBookSummary(summary))
}

// ListDiscounts 图书的全部折扣
// @Summary      折扣列表
// @Tags         折扣
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=[]dto.DiscountResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id}/discounts [get]
func (h *BookHandler) ListDiscounts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.discounts.List(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]dto.DiscountResponse, len(items))
	for i, d := range items {
		out[i] = dto.NewDiscountResponse(d)
	}
	response.Success(c, out)
}

// CreateDiscount 新增折扣
// @Summary      新增折扣
// @Description  与同一本书已有折扣的时间段不能重叠
// @Tags         折扣
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.CreateDiscountRequest true "折扣信息"
// @Success      201 {object} response.Response{data=dto.DiscountResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "时间段重叠"
// @Router       /books/{id}/discounts [post]
func (h *BookHandler) CreateDiscount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	// 格式已由binding校验
	start, _ := time.Parse(dto.DateLayout, req.StartDate)
	var end *time.Time
	if req.EndDate != nil {
		e, _ := time.Parse(dto.DateLayout, *req.EndDate)
		end = &e
	}

	d, err := h.discounts.Create(c.Request.Context(), catalog.CreateDiscountRequest{
		BookID:    id,
		StartDate: start,
		EndDate:   end,
		Price:     req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewDiscountResponse(d))
}
