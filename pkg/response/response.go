package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
)

// Response 统一响应结构,code=0表示成功,失败时code为业务错误码、不带data
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 200 + code=0
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// Error 错误响应（自动处理AppError）
// HTTP状态码由错误类别决定：NotFound→404，业务规则/参数错误→400，其余→500
//
//	book, err := uc.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只写日志，不返回给客户端
	if appErr.Err != nil {
		logger.FromContext(c.Request.Context()).Error("request failed",
			slog.Int("code", appErr.Code),
			slog.String("message", appErr.Message),
			slog.Any("error", appErr.Err),
		)
	}

	c.JSON(apperrors.HTTPStatus(appErr), Response{Code: appErr.Code, Message: appErr.Message})
}

// ErrorWithCode 直接指定错误码和消息(如参数绑定失败)
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(apperrors.HTTPStatus(apperrors.New(code, message)), Response{Code: code, Message: message})
}
