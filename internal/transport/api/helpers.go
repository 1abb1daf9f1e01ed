package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/service/tokens"
	"github.com/fsdevblog/groph-blindbox/internal/transport/api/middlewares"
)

// retryAfterSeconds подсказка клиенту при domain.ErrSystemBusy.
const retryAfterSeconds = "1"

var (
	errInvalidID = errors.New("invalid id")
	errForbidden = errors.New("access denied")
)

// getCurrentUser берет из контекста gin данные текущего юзера. Они устанавливаются в
// middlewares.AuthRequired. Если значения в контексте нет, вернется пустая структура.
func getCurrentUser(c *gin.Context) *tokens.UserClaims {
	value, exist := c.Get(middlewares.CurrentUserKey)
	if !exist {
		return new(tokens.UserClaims)
	}
	claims, ok := value.(*tokens.UserClaims)
	if !ok {
		return new(tokens.UserClaims)
	}
	return claims
}

// pathID разбирает положительный id из параметра пути. В случае ошибки прерывает запрос с 400.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.AbortWithError(http.StatusBadRequest, errInvalidID).SetType(gin.ErrorTypePublic)
		return 0, false
	}
	return id, true
}

// abortWithServiceError прерывает запрос со статусом, соответствующим ошибке сервиса. Бизнес-ошибки
// отдаются клиенту как есть, остальные скрываются.
func abortWithServiceError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBoxNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, domain.ErrEmptyRewardPool),
		errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientBalance):
		status = http.StatusPaymentRequired
	case errors.Is(err, domain.ErrCommentForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSystemBusy):
		c.Header("Retry-After", retryAfterSeconds)
		_ = c.AbortWithError(http.StatusServiceUnavailable, domain.ErrSystemBusy).SetType(gin.ErrorTypePublic)
		return
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	_ = c.AbortWithError(status, businessError(err)).SetType(gin.ErrorTypePublic)
}

// businessError возвращает доменную ошибку без контекста слоев, чтобы не показывать клиенту детали.
func businessError(err error) error {
	for _, target := range []error{
		domain.ErrUserNotFound,
		domain.ErrBoxNotFound,
		domain.ErrOrderNotFound,
		domain.ErrOutOfStock,
		domain.ErrEmptyRewardPool,
		domain.ErrInvalidTransition,
		domain.ErrInsufficientBalance,
		domain.ErrCommentForbidden,
		domain.ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return target
		}
	}
	return err
}

type OrderResponse struct {
	ID         int64     `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UserID     int64     `json:"userId"`
	BoxID      int64     `json:"boxId"`
	GoodsID    int64     `json:"goodsId"`
	GoodsName  string    `json:"goodsName"`
	Money      string    `json:"money"`
	IsSent     bool      `json:"isSent"`
	IsReceived bool      `json:"isReceived"`
	IsDone     bool      `json:"isDone"`
	State      string    `json:"state"`
	Address    string    `json:"address"`
	Contact    string    `json:"contact"`
}

func newOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID,
		CreatedAt:  order.CreatedAt,
		UserID:     order.UserID,
		BoxID:      order.BoxID,
		GoodsID:    order.GoodsID,
		GoodsName:  order.GoodsName,
		Money:      order.Money.StringFixed(2),
		IsSent:     order.IsSent,
		IsReceived: order.IsReceived,
		IsDone:     order.IsDone,
		State:      string(order.State()),
		Address:    order.Address,
		Contact:    order.Contact,
	}
}

func newOrdersResponse(orders []domain.Order) []OrderResponse {
	response := make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = newOrderResponse(&orders[i])
	}
	return response
}
