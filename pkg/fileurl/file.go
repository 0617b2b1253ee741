package fileurl

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
)

// GetFileExt gets the lower-cased file extension
// GetFileExt 获取文件后缀（小写）
func GetFileExt(name string) string {
	return strings.ToLower(path.Ext(name))
}

// IsContainExt determines if file extension is within the allowed range
// IsContainExt 判断文件后缀是否在允许范围内，allowExts 形如 ".jpg" 或 "jpg"
func IsContainExt(name string, allowExts []string) bool {
	ext := GetFileExt(name)
	if ext == "" {
		return false
	}
	for _, allowExt := range allowExts {
		allowExt = strings.ToLower(strings.TrimSpace(allowExt))
		if !strings.HasPrefix(allowExt, ".") {
			allowExt = "." + allowExt
		}
		if allowExt == ext {
			return true
		}
	}
	return false
}

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst
// CreatePath 创建路径
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// PathSuffixCheckAdd 非空路径缺少 suffix 时补上，空路径原样返回
func PathSuffixCheckAdd(path string, suffix string) string {
	if path == "" || strings.HasSuffix(path, suffix) {
		return path
	}
	return path + suffix
}

var nameSeq atomic.Uint64

// assetNamePattern UniqueName 生成的名字，以及早期版本的 "<unixMillis><ext>"
var assetNamePattern = regexp.MustCompile(`^\d{10,}(-\d+)?(\.[A-Za-z0-9]+)?$`)

// IsAssetName 判断文件名是否由 UniqueName 生成
func IsAssetName(name string) bool {
	return assetNamePattern.MatchString(name)
}

// UniqueName builds "<unixMillis>-<seq><ext>" from the original file name
// UniqueName 生成不会在同一毫秒内冲突的文件名，seq 为进程内单调递增计数
func UniqueName(originalName string) string {
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), nameSeq.Add(1), GetFileExt(originalName))
}
