package model

import "strings"

// Command 一次外部工具调用
// Binary 直接交给 exec, 不经过 shell
type Command struct {
	Binary      string   `json:"binary"`
	Args        []string `json:"args"`
	Description string   `json:"description"`
}

// String 返回可读的命令行, 仅用于日志
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Binary
	}
	return c.Binary + " " + strings.Join(c.Args, " ")
}
