package code

import "net/http"

var (
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})

	ErrorServerInternal  = NewError(500, http.StatusInternalServerError, lang{en: "Internal Server Error", zh_cn: "服务器内部错误"})
	ErrorInvalidParams   = NewError(400, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorNotFoundAPI     = NewError(404, http.StatusNotFound, lang{en: "Not found", zh_cn: "接口不存在"})
	ErrorTooManyRequests = NewError(429, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorRequestTimeout  = NewError(504, http.StatusGatewayTimeout, lang{en: "Request timed out", zh_cn: "请求超时"})

	ErrorInvalidStorageType = NewError(10001, http.StatusInternalServerError, lang{en: "Invalid storage type", zh_cn: "无效的存储类型"})
	ErrorInvalidRecordStore = NewError(10002, http.StatusInternalServerError, lang{en: "Invalid record store type", zh_cn: "无效的记录存储类型"})

	// 照片
	ErrorPhotoNotFound       = NewError(20001, http.StatusNotFound, lang{en: "Photo not found", zh_cn: "照片不存在"})
	ErrorPhotoNoImage        = NewError(20002, http.StatusBadRequest, lang{en: "No image file uploaded", zh_cn: "未上传图片文件"})
	ErrorPhotoInvalidDate    = NewError(20003, http.StatusBadRequest, lang{en: "Invalid photo date", zh_cn: "照片日期格式错误"})
	ErrorPhotoListFailed     = NewError(20004, http.StatusInternalServerError, lang{en: "Failed to fetch photos", zh_cn: "获取照片列表失败"})
	ErrorPhotoUploadFailed   = NewError(20005, http.StatusInternalServerError, lang{en: "Failed to upload photo", zh_cn: "上传照片失败"})
	ErrorPhotoDeleteFailed   = NewError(20006, http.StatusInternalServerError, lang{en: "Failed to delete photo", zh_cn: "删除照片失败"})
	SuccessPhotoDeleted      = NewSuss(20007, lang{en: "Photo deleted successfully", zh_cn: "照片删除成功"})
	ErrorPayloadTooLarge     = NewError(20008, http.StatusRequestEntityTooLarge, lang{en: "Image exceeds the upload size limit", zh_cn: "图片超过上传大小限制"})
	ErrorUnsupportedMedia    = NewError(20009, http.StatusUnsupportedMediaType, lang{en: "Unsupported image type", zh_cn: "不支持的图片类型"})
	ErrorStorageIO           = NewError(20010, http.StatusInternalServerError, lang{en: "Failed to write asset", zh_cn: "写入文件失败"})
	ErrorStorageFull         = NewError(20011, http.StatusInternalServerError, lang{en: "Storage is full", zh_cn: "存储空间不足"})
	ErrorRemoteUnavailable   = NewError(20012, http.StatusInternalServerError, lang{en: "Remote storage unavailable", zh_cn: "远程存储不可用"})
	ErrorDatabaseUnavailable = NewError(20013, http.StatusInternalServerError, lang{en: "Database unavailable", zh_cn: "数据库不可用"})

	// 信件
	ErrorLetterNotFound      = NewError(30001, http.StatusNotFound, lang{en: "Letter not found", zh_cn: "信件不存在"})
	ErrorLetterInvalid       = NewError(30002, http.StatusBadRequest, lang{en: "Title and content are required", zh_cn: "标题和内容不能为空"})
	ErrorLetterListFailed    = NewError(30003, http.StatusInternalServerError, lang{en: "Failed to fetch letters", zh_cn: "获取信件列表失败"})
	ErrorLetterGetFailed     = NewError(30004, http.StatusInternalServerError, lang{en: "Failed to fetch letter", zh_cn: "获取信件失败"})
	ErrorLetterCreateFailed  = NewError(30005, http.StatusInternalServerError, lang{en: "Failed to create letter", zh_cn: "创建信件失败"})
	ErrorLetterUpdateFailed  = NewError(30006, http.StatusInternalServerError, lang{en: "Failed to update letter", zh_cn: "更新信件失败"})
	ErrorLetterDeleteFailed  = NewError(30007, http.StatusInternalServerError, lang{en: "Failed to delete letter", zh_cn: "删除信件失败"})
	SuccessLetterDeleted     = NewSuss(30008, lang{en: "Letter deleted successfully", zh_cn: "信件删除成功"})
	ErrorLetterInvalidParams = NewError(30009, http.StatusBadRequest, lang{en: "Invalid letter body", zh_cn: "信件请求体格式错误"})
)
