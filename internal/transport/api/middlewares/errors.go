package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// statusTexts общий текст для непубличных ошибок. Для статусов вне списка отдается текст 500.
var statusTexts = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusPaymentRequired:     "payment required",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not found",
	http.StatusConflict:            "conflict",
	http.StatusUnprocessableEntity: "unprocessable entity",
	http.StatusServiceUnavailable:  "service unavailable",
}

func errorMessage(c *gin.Context) string {
	firstErr := c.Errors[0]
	if firstErr.IsType(gin.ErrorTypePublic) {
		return firstErr.Error()
	}
	if text, ok := statusTexts[c.Writer.Status()]; ok {
		return text
	}
	return "internal server error"
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		strings.Contains(c.GetHeader("Content-Type"), "application/json")
}

// Errors отдает клиенту первую ошибку запроса, если хендлер сам не записал тело ответа. Текст публичных
// ошибок (gin.ErrorTypePublic) показывается как есть. Формат ответа (json или текст) зависит от заголовков
// запроса.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Size() > 0 {
			return
		}

		msg := errorMessage(c)
		if wantsJSON(c) {
			c.JSON(c.Writer.Status(), gin.H{"error": msg})
		} else {
			c.String(c.Writer.Status(), msg)
		}
		c.Abort()
	}
}
