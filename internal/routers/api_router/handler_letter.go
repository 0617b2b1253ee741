package api_router

import (
	"github.com/haierkeys/keepsake-service/internal/app"
	"github.com/haierkeys/keepsake-service/internal/service"
	pkgapp "github.com/haierkeys/keepsake-service/pkg/app"
	"github.com/haierkeys/keepsake-service/pkg/code"
	apperrors "github.com/haierkeys/keepsake-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// LetterHandler 信件接口处理器
type LetterHandler struct {
	*Handler
}

func NewLetterHandler(a *app.App) *LetterHandler {
	return &LetterHandler{Handler: NewHandler(a)}
}

// LetterRequest 信件创建与更新请求体
type LetterRequest struct {
	Title     string `json:"title" form:"title"`
	Content   string `json:"content" form:"content"`
	Signature string `json:"signature" form:"signature"`
}

func (r *LetterRequest) toParams() *service.LetterParams {
	return &service.LetterParams{Title: r.Title, Content: r.Content, Signature: r.Signature}
}

// List 返回全部信件，为空时返回默认信件
func (h *LetterHandler) List(c *gin.Context) {
	letters, err := h.App.LetterService.List(c.Request.Context())
	respond(c, letters, err)
}

// Get id 为 default 时返回默认信件
func (h *LetterHandler) Get(c *gin.Context) {
	letter, err := h.App.LetterService.Get(c.Request.Context(), c.Param("id"))
	respond(c, letter, err)
}

func (h *LetterHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	var params LetterRequest
	if valid, errs := pkgapp.BindAndValid(c, &params); !valid {
		response.ToError(code.ErrorLetterInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	letter, err := h.App.LetterService.Create(c.Request.Context(), params.toParams())
	respond(c, letter, err)
}

// Update 标题和内容不能为空，日期刷新为当前时间
func (h *LetterHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	var params LetterRequest
	if valid, errs := pkgapp.BindAndValid(c, &params); !valid {
		response.ToError(code.ErrorLetterInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	letter, err := h.App.LetterService.Update(c.Request.Context(), c.Param("id"), params.toParams())
	respond(c, letter, err)
}

func (h *LetterHandler) Delete(c *gin.Context) {
	if err := h.App.LetterService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToMessage(code.SuccessLetterDeleted)
}
