/**
 * 报告输出接口定义
 * @author: Sun977
 * @date: 2026.01.21
 * @description: 所有阶段共用的唯一写入路径, 终端 (彩色, 即时) 或文件 (无色, 缓冲)
 */

package reporter

import "errors"

// ErrSinkClosed 输出已关闭
var ErrSinkClosed = errors.New("report sink is closed")

// Style 输出行的样式, 只在终端生效
type Style int

const (
	StylePlain   Style = iota
	StyleBanner        // 产品横幅
	StyleRule          // 分隔线
	StyleHost          // ====== IP: x ======
	StyleSection       // ###*** ... ***###
	StylePort          // ------ PORT n ------
	StyleField         // SERVICE / TYPE / VERSION
	StyleOK            // 开放端口
	StyleBad           // 非开放端口
	StyleNotice        // 跳过 / 提示
	StyleError         // 阶段失败
	StyleSuccess       // 全部完成
	StyleStart         // 开始扫描
)

// Sink 报告输出
// 每次运行只创建一个, 在第一个阶段之前选定, 在所有退出路径上关闭一次
type Sink interface {
	// WriteLine 写入一行报告文本
	WriteLine(text string, style Style) error
	// WriteBlock 原样写入工具输出
	WriteBlock(text string) error
	// Close 刷新并关闭, 重复调用无副作用
	Close() error
}

// TabularData 是一个可以被渲染为表格的数据接口
type TabularData interface {
	Headers() []string
	Rows() [][]string
}
