package api_router

import (
	"io"
	"net/http"

	"github.com/haierkeys/keepsake-service/internal/app"
	"github.com/haierkeys/keepsake-service/internal/service"
	pkgapp "github.com/haierkeys/keepsake-service/pkg/app"
	"github.com/haierkeys/keepsake-service/pkg/code"
	apperrors "github.com/haierkeys/keepsake-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// PhotoFormField 上传图片的表单字段名
const PhotoFormField = "image"

// PhotoHandler 照片接口处理器
type PhotoHandler struct {
	*Handler
}

func NewPhotoHandler(a *app.App) *PhotoHandler {
	return &PhotoHandler{Handler: NewHandler(a)}
}

// PhotoCreateRequest 照片上传表单
type PhotoCreateRequest struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Date        string `form:"date" json:"date"`
}

// List 按日期倒序返回全部照片
func (h *PhotoHandler) List(c *gin.Context) {
	photos, err := h.App.PhotoService.List(c.Request.Context())
	respond(c, photos, err)
}

// Create 接收 multipart 表单，image 字段为图片文件
func (h *PhotoHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	fh, err := c.FormFile(PhotoFormField)
	if err != nil {
		if err == http.ErrMissingFile {
			response.ToError(code.ErrorPhotoNoImage)
			return
		}
		// 非 multipart 请求同样视为未上传图片
		response.ToError(code.ErrorPhotoNoImage.WithDetails(err.Error()))
		return
	}

	var params PhotoCreateRequest
	if valid, errs := pkgapp.BindAndValid(c, &params); !valid {
		response.ToError(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	f, err := fh.Open()
	if err != nil {
		apperrors.ErrorResponse(c, code.ErrorPhotoUploadFailed.WithDetails(err.Error()))
		return
	}
	defer f.Close()

	// 多读一个字节，超限判断交给 AssetService
	limit := h.App.Config().GetAssetServiceConfig().MaxUploadSize
	content, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		apperrors.ErrorResponse(c, code.ErrorPhotoUploadFailed.WithDetails(err.Error()))
		return
	}

	photo, err := h.App.PhotoService.Create(c.Request.Context(), &service.PhotoCreateParams{
		Title:       params.Title,
		Description: params.Description,
		Date:        params.Date,
		Filename:    fh.Filename,
		Content:     content,
	})
	respond(c, photo, err)
}

// Delete 删除照片记录及其图片
func (h *PhotoHandler) Delete(c *gin.Context) {
	if err := h.App.PhotoService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToMessage(code.SuccessPhotoDeleted)
}
