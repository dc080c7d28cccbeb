package util

import (
	"strconv"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, strconv.IntSize)
	return uint(id)
}

// ParseID 解析路径中的 ID，0 或非数字都视为非法
func ParseID(field, s string) (uint, error) {
	id := MustParseUint(s)
	if id == 0 {
		return 0, NewValidationError(field, "must be a positive integer")
	}
	return id, nil
}
