package domain

import "errors"

var (
	// ErrNotFound 记录不存在（包括格式非法的 id）
	ErrNotFound = errors.New("record not found")
	// ErrDatabaseUnavailable 数据库尚未连接或连接已断开
	ErrDatabaseUnavailable = errors.New("database unavailable")
)
