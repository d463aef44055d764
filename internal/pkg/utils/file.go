package utils

import "strings"

// unsafeNameReplacer 文件名中不允许出现的路径分隔符和冒号
var unsafeNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

// SafeFileName 将任意字符串转换为可以作为单个文件名的形式
func SafeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "target"
	}
	return unsafeNameReplacer.Replace(name)
}
