package app

import (
	"strings"

	"github.com/haierkeys/keepsake-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

// ErrorRes 错误响应体
type ErrorRes struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageRes 操作结果响应体
type MessageRes struct {
	Message string `json:"message"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

// ToJSON writes the entity (or list) itself as the body
// ToJSON 直接输出实体或列表
func (r *Response) ToJSON(data any) {
	r.Ctx.Set("status_code", code.Success.StatusCode())
	r.send(code.Success.StatusCode(), data)
}

// ToMessage writes {"message": ...}
// ToMessage 输出操作结果消息
func (r *Response) ToMessage(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())
	r.send(codeObj.StatusCode(), MessageRes{Message: codeObj.Msg()})
}

// ToError writes {"error": ...} with the HTTP status bound to the code
// ToError 输出错误响应，HTTP 状态码由错误码决定
func (r *Response) ToError(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := ErrorRes{Error: codeObj.Msg()}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	r.send(codeObj.StatusCode(), content)
}

func (r *Response) send(statusCode int, content any) {
	r.Ctx.JSON(statusCode, content)
}
