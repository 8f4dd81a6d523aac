package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HandleSuccess(c *gin.Context, data interface{}, message string) {
	ok(c, http.StatusOK, data, message)
}

// HandleCreated 新建资源返回 201
func HandleCreated(c *gin.Context, data interface{}, message string) {
	ok(c, http.StatusCreated, data, message)
}

func ok(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      status,
		RequestID: GetRequestID(c),
	})
}
