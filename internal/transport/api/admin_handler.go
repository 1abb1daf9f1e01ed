package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	lifecycleSvs LifecycleServicer
}

func NewAdminHandler(lifecycleSvs LifecycleServicer) *AdminHandler {
	return &AdminHandler{lifecycleSvs: lifecycleSvs}
}

type UnsentParams struct {
	Page     uint `binding:"omitempty,min=1"         form:"page"`
	PageSize uint `binding:"omitempty,min=1,max=100" form:"pageSize"`
}

type UnsentResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     uint            `json:"page"`
	PageSize uint            `json:"pageSize"`
}

// Unsent GET RouteGroup + AdminUnsentRoute. Очередь неотправленных заказов, старые первыми.
func (a *AdminHandler) Unsent(c *gin.Context) {
	var params UnsentParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	unsent, err := a.lifecycleSvs.ListUnsent(reqCtx, params.Page, params.PageSize)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, UnsentResponse{
		Orders:   newOrdersResponse(unsent.Orders),
		Total:    unsent.Total,
		Page:     unsent.Page,
		PageSize: unsent.PageSize,
	})
}

// Sent PATCH RouteGroup + AdminOrderSentRoute. Отметка об отправке, повторный вызов ничего не меняет.
func (a *AdminHandler) Sent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := a.lifecycleSvs.MarkSent(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}
