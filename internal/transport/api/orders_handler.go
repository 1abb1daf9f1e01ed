package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
)

type OrdersHandler struct {
	orderSvs     OrderServicer
	lifecycleSvs LifecycleServicer
}

func NewOrdersHandler(orderSvs OrderServicer, lifecycleSvs LifecycleServicer) *OrdersHandler {
	return &OrdersHandler{
		orderSvs:     orderSvs,
		lifecycleSvs: lifecycleSvs,
	}
}

type PlaceOrderParams struct {
	BoxID int64 `binding:"required,gt=0" json:"boxId"`
}

// Create POST RouteGroup + OrdersRoute. Покупка коробки текущим юзером. Цена берется из коробки.
func (o *OrdersHandler) Create(c *gin.Context) {
	var params PlaceOrderParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	// Без DefaultServiceTimeout: ожидание блокировки ограничено самим guard, а начатая покупка
	// не прерывается.
	order, err := o.orderSvs.Place(c.Request.Context(), getCurrentUser(c).Username, params.BoxID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

// Index GET RouteGroup + OrdersRoute. История заказов текущего юзера, новые первыми.
func (o *OrdersHandler) Index(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := o.orderSvs.GetByUserID(reqCtx, getCurrentUser(c).ID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	if len(orders) == 0 {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, newOrdersResponse(orders))
}

// Show GET RouteGroup + OrderRoute.
func (o *OrdersHandler) Show(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, ok := o.accessibleOrder(reqCtx, c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

// Received PATCH RouteGroup + OrderReceivedRoute. Подтверждение получения отправленного заказа.
func (o *OrdersHandler) Received(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, ok := o.accessibleOrder(reqCtx, c)
	if !ok {
		return
	}
	updated, err := o.lifecycleSvs.MarkReceived(reqCtx, order.ID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(updated))
}

type DeliveryParams struct {
	Address string `binding:"required,max_bytes=1024" json:"address"`
	Contact string `binding:"required,max_bytes=255"  json:"contact"`
}

// Delivery PATCH RouteGroup + OrderDeliveryRoute. Адрес и контакт для доставки.
func (o *OrdersHandler) Delivery(c *gin.Context) {
	var params DeliveryParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, ok := o.accessibleOrder(reqCtx, c)
	if !ok {
		return
	}
	updated, err := o.lifecycleSvs.UpdateDelivery(reqCtx, order.ID, params.Address, params.Contact)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(updated))
}

// accessibleOrder загружает заказ из пути запроса и проверяет, что он принадлежит текущему юзеру
// (администратору доступны все).
func (o *OrdersHandler) accessibleOrder(ctx context.Context, c *gin.Context) (*domain.Order, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}
	order, err := o.orderSvs.GetByID(ctx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return nil, false
	}
	current := getCurrentUser(c)
	if order.UserID != current.ID && !current.IsAdmin {
		_ = c.AbortWithError(http.StatusForbidden, errForbidden).SetType(gin.ErrorTypePublic)
		return nil, false
	}
	return order, true
}
