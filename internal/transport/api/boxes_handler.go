package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
)

type BoxesHandler struct {
	boxSvs BoxServicer
}

func NewBoxesHandler(boxSvs BoxServicer) *BoxesHandler {
	return &BoxesHandler{boxSvs: boxSvs}
}

type GoodsResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"imagePath"`
}

type BoxResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	ImagePath string          `json:"imagePath"`
	Price     string          `json:"price"`
	Remaining int64           `json:"remaining"`
	Rewards   []GoodsResponse `json:"rewards"`
}

func newBoxResponse(box *domain.BlindBox) BoxResponse {
	rewards := make([]GoodsResponse, len(box.Rewards))
	for i, g := range box.Rewards {
		rewards[i] = GoodsResponse{ID: g.ID, Name: g.Name, ImagePath: g.ImagePath}
	}
	return BoxResponse{
		ID:        box.ID,
		Name:      box.Name,
		ImagePath: box.ImagePath,
		Price:     box.Price.StringFixed(2),
		Remaining: box.Remaining,
		Rewards:   rewards,
	}
}

// Show GET RouteGroup + BoxRoute. Цена, остаток и пул наград коробки.
func (b *BoxesHandler) Show(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	box, err := b.boxSvs.GetByID(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBoxResponse(box))
}

type UpdateStockParams struct {
	Remaining *int64 `binding:"required,gte=0" json:"remaining"`
}

// Stock PATCH RouteGroup + AdminBoxStockRoute. Установка остатка, в том числе пополнение.
func (b *BoxesHandler) Stock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var params UpdateStockParams
	if !bindBoxParams(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	box, err := b.boxSvs.UpdateStock(reqCtx, id, *params.Remaining)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBoxResponse(box))
}

// UpdatePriceParams цена передается строкой, как и в ответах.
type UpdatePriceParams struct {
	Price string `binding:"required,numeric,max_bytes=32" json:"price"`
}

// Price PATCH RouteGroup + AdminBoxPriceRoute. Новая цена действует для следующих покупок.
func (b *BoxesHandler) Price(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var params UpdatePriceParams
	if !bindBoxParams(c, &params) {
		return
	}
	price, parseErr := decimal.NewFromString(params.Price)
	if parseErr != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": parseErr.Error()})
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	box, err := b.boxSvs.UpdatePrice(reqCtx, id, price)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBoxResponse(box))
}

func bindBoxParams(c *gin.Context, params any) bool {
	if bindErr := c.ShouldBindJSON(params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return false
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}
