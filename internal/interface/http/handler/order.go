package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookworm/internal/application/order"
	"github.com/xiebiao/bookworm/internal/domain/order"
	"github.com/xiebiao/bookworm/internal/interface/http/dto"
	"github.com/xiebiao/bookworm/internal/interface/http/middleware"
	"github.com/xiebiao/bookworm/pkg/response"
)

// OrderHandler 订单HTTP处理器（需要登录）
type OrderHandler struct {
	place *apporder.PlaceOrderUseCase
	list  *apporder.ListOrdersUseCase
	get   *apporder.GetOrderUseCase
}

func NewOrderHandler(place *apporder.PlaceOrderUseCase, list *apporder.ListOrdersUseCase, get *apporder.GetOrderUseCase) *OrderHandler {
	return &OrderHandler{place: place, list: list, get: get}
}

// PlaceOrder 下单
// @Summary      下单
// @Description  客户端提交看到的单价，任意一行与当前价格不一致则整单拒绝，data中返回全部不一致的行
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "订单明细"
// @Success      201 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response{data=dto.MismatchResponse} "价格不一致"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	o, err := h.place.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID: middleware.GetUserID(c),
		Lines:  req.Lines(),
	})
	if err != nil {
		if m, ok := order.MismatchesOf(err); ok {
			response.Error(c, order.ErrPriceMismatch.WithDetails(dto.NewMismatchResponse(m)))
			return
		}
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewOrderResponse(o))
}

// ListOrders 我的订单
// @Summary      我的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{data=[]dto.OrderResponse}}
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q struct {
		Page int `form:"page" binding:"omitempty,min=1"`
		Size int `form:"size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.list.Execute(c.Request.Context(), middleware.GetUserID(c), q.Page, q.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]dto.OrderResponse, len(page.Items))
	for i, o := range page.Items {
		out[i] = dto.NewOrderResponse(o)
	}
	response.SuccessWithPage(c, out, page.Total, page.Page, page.Size)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	o, err := h.get.Execute(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}
