package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/service"
)

type CommentsHandler struct {
	commentSvs CommentServicer
}

func NewCommentsHandler(commentSvs CommentServicer) *CommentsHandler {
	return &CommentsHandler{commentSvs: commentSvs}
}

type CreateCommentParams struct {
	Content    string   `binding:"max_bytes=4096"                 json:"content"`
	ImagePaths []string `binding:"max=9,dive,required,max_bytes=512" json:"imagePaths"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UserID     int64     `json:"userId"`
	BoxID      int64     `json:"boxId"`
	Content    *string   `json:"content"`
	ImagePaths []string  `json:"imagePaths"`
}

func newCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:         comment.ID,
		CreatedAt:  comment.CreatedAt,
		UserID:     comment.UserID,
		BoxID:      comment.BoxID,
		Content:    comment.Content,
		ImagePaths: comment.ImagePaths,
	}
}

// Index GET RouteGroup + BoxCommentsRoute.
func (h *CommentsHandler) Index(c *gin.Context) {
	boxID, ok := pathID(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	comments, err := h.commentSvs.ListByBox(reqCtx, boxID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	response := make([]CommentResponse, len(comments))
	for i := range comments {
		response[i] = newCommentResponse(&comments[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create POST RouteGroup + BoxCommentsRoute. Комментировать может только купивший коробку.
func (h *CommentsHandler) Create(c *gin.Context) {
	boxID, ok := pathID(c)
	if !ok {
		return
	}
	var params CreateCommentParams
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

	comment, err := h.commentSvs.Create(reqCtx, service.CreateCommentArgs{
		Username:   getCurrentUser(c).Username,
		BoxID:      boxID,
		Content:    params.Content,
		ImagePaths: params.ImagePaths,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}
