package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldPath 文件路径字段
	FieldPath = "path"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldSize 文件大小字段
	FieldSize = "size"

	// FieldBucket 存储桶名称字段
	FieldBucket = "bucket"

	// FieldFileKey 文件键字段
	FieldFileKey = "fileKey"

	// FieldPhotoID 照片 ID 字段
	FieldPhotoID = "photoId"

	// FieldLetterID 信件 ID 字段
	FieldLetterID = "letterId"

	// FieldAssetID 资源 ID 字段
	FieldAssetID = "assetId"

	// FieldImageURL 图片地址字段
	FieldImageURL = "imageUrl"

	// FieldStore 记录存储类型字段
	FieldStore = "store"

	// FieldStorage 文件存储类型字段
	FieldStorage = "storage"

	// FieldAttempt 重试次数字段
	FieldAttempt = "attempt"
)
