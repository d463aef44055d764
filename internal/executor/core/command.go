package core

import "reconreport/internal/core/model"

// CommandBuilder 定义命令构建接口
// 它的职责是将配置中的模板转换为具体的操作系统命令
type CommandBuilder interface {
	// Build 根据目标和运行时参数生成可执行的命令
	Build(target string, params map[string]interface{}) (model.Command, error)
}
