package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookworm/internal/application/catalog"
	"github.com/xiebiao/bookworm/internal/interface/http/dto"
	"github.com/xiebiao/bookworm/pkg/response"
)

// CatalogHandler 作者和分类
type CatalogHandler struct {
	authors    *catalog.AuthorsUseCase
	categories *catalog.CategoriesUseCase
}

func NewCatalogHandler(authors *catalog.AuthorsUseCase, categories *catalog.CategoriesUseCase) *CatalogHandler {
	return &CatalogHandler{authors: authors, categories: categories}
}

// ListAuthors 作者列表（按名称排序）
// @Summary      作者列表
// @Tags         目录
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.AuthorResponse}
// @Router       /authors [get]
func (h *CatalogHandler) ListAuthors(c *gin.Context) {
	items, err := h.authors.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]dto.AuthorResponse, len(items))
	for i, a := range items {
		out[i] = dto.NewAuthorResponse(a)
	}
	response.Success(c, out)
}

// GetAuthor 作者详情
// @Summary      作者详情
// @Tags         目录
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /authors/{id} [get]
func (h *CatalogHandler) GetAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.authors.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

// CreateAuthor 新增作者
// @Summary      新增作者
// @Tags         目录
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=dto.AuthorResponse}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /authors [post]
func (h *CatalogHandler) CreateAuthor(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, err := h.authors.Create(c.Request.Context(), req.Name, req.Bio)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewAuthorResponse(a))
}

// ListCategories 分类列表（按名称排序）
// @Summary      分类列表
// @Tags         目录
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router       /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	items, err := h.categories.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]dto.CategoryResponse, len(items))
	for i, cat := range items {
		out[i] = dto.NewCategoryResponse(cat)
	}
	response.Success(c, out)
}

// GetCategory 分类详情
// @Summary      分类详情
// @Tags         目录
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cat, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCategoryResponse(cat))
}

// CreateCategory 新增分类
// @Summary      新增分类
// @Tags         目录
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=dto.CategoryResponse}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	cat, err := h.categories.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewCategoryResponse(cat))
}
