package response

import (
	stdErrors "errors"
	"net/http"

	"ordering/domain/shared"
	"ordering/pkg/errors"
	"ordering/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var httpStatusMap = map[errors.ErrorCode]int{
	errors.CodeInternal:         http.StatusInternalServerError,
	errors.CodeBadRequest:       http.StatusBadRequest,
	errors.CodeValidation:       http.StatusBadRequest,
	errors.CodeNotFound:         http.StatusNotFound,
	errors.CodeConflict:         http.StatusConflict,
	errors.CodeAlreadyRetired:   http.StatusGone,
	errors.CodeUnavailable:      http.StatusUnprocessableEntity,
	errors.CodeConcurrentModify: http.StatusConflict,
	errors.CodeTooManyRequest:   http.StatusTooManyRequests,
	errors.CodeTimeout:          http.StatusGatewayTimeout,
}

// StatusFor 错误码对应的 HTTP 状态码，未知错误码按 500 处理
func StatusFor(code errors.ErrorCode) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// HandleError 处理参数绑定等框架层错误，固定返回 BAD_REQUEST
func HandleError(c *gin.Context, err error, message string) {
	requestID := GetRequestID(c)
	appErr := errors.BadRequest(message)

	logger.Warn(message,
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err))

	status := StatusFor(appErr.Code)
	c.JSON(status, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   appErr.Message,
		Code:      status,
		RequestID: requestID,
	})
}

// HandleAppError 领域/应用错误转换为错误码并映射状态码
// 5xx 记 Error 并附带堆栈，4xx 只记 Warn
func HandleAppError(c *gin.Context, err error) {
	requestID := GetRequestID(c)
	appErr := errors.FromDomainError(err)
	httpStatus := StatusFor(appErr.Code)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
	}
	if len(appErr.IDs) > 0 {
		fields = append(fields, zap.Strings("ids", appErr.IDs))
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}

	userMessage := appErr.Message
	if httpStatus >= http.StatusInternalServerError {
		logger.Error(appErr.Message, append(fields, zap.Strings("stack", extractStack(err)))...)
		if appErr.Code == errors.CodeInternal {
			userMessage = "internal server error"
		}
	} else {
		logger.Warn(appErr.Message, fields...)
	}

	c.JSON(httpStatus, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   userMessage,
		IDs:       appErr.IDs,
		Code:      httpStatus,
		RequestID: requestID,
	})
}

// extractStack 优先使用领域错误创建时捕获的堆栈，否则取当前处理点的堆栈
func extractStack(err error) []string {
	var stacker shared.Stacker
	if stdErrors.As(err, &stacker) {
		if stack := stacker.Stack(); len(stack) > 0 {
			return stack
		}
	}
	return shared.FormatStack(shared.CaptureStack(4))
}

// Abort 中断请求链并返回应用错误，供中间件与路由兜底使用
func Abort(c *gin.Context, appErr *errors.AppError) {
	status := StatusFor(appErr.Code)
	c.AbortWithStatusJSON(status, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   appErr.Message,
		Code:      status,
		RequestID: GetRequestID(c),
	})
}
