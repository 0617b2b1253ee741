package util

import (
	"strconv"
	"strings"
	"time"
)

// dayUnits time.ParseDuration 不支持的单位
var dayUnits = map[byte]time.Duration{
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
}

// ParseDuration 解析配置中的时长：支持 d（天）、w（周）后缀，纯数字按秒处理，其余交给 time.ParseDuration
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n := len(s); n > 1 {
		if unit, ok := dayUnits[s[n-1]]; ok {
			v, err := strconv.ParseFloat(s[:n-1], 64)
			if err != nil {
				return 0, err
			}
			return time.Duration(v * float64(unit)), nil
		}
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(s)
}
