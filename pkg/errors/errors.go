// Package errors 统一 HTTP 错误响应
package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/haierkeys/keepsake-service/pkg/app"
	"github.com/haierkeys/keepsake-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AsCode 从错误链中取出 *code.Code，未知错误视为服务器内部错误
func AsCode(err error) *code.Code {
	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		return codeErr
	}
	return code.ErrorServerInternal
}

// ErrorResponse 统一错误响应处理
// 5xx 的详情只记录到 gin.Context.Errors 供访问日志输出，不返回给客户端
func ErrorResponse(c *gin.Context, err error) {
	codeErr := AsCode(err)

	if codeErr.StatusCode() >= http.StatusInternalServerError {
		detail := err.Error()
		if codeErr.HaveDetails() {
			detail = codeErr.Msg() + ": " + strings.Join(codeErr.Details(), ",")
		}
		_ = c.Error(errors.New(detail))
		codeErr = codeErr.Clone()
	}

	app.NewResponse(c).ToError(codeErr)
}
