package options

import (
	"fmt"
	"path/filepath"
)

// OutputMode 报告输出方式
type OutputMode string

const (
	OutputTerminal OutputMode = "terminal" // 在终端显示
	OutputFile     OutputMode = "file"     // 导出到文件
)

// MenuOption 交互菜单中的一项
type MenuOption struct {
	Label string
	Mode  OutputMode
}

// MenuOptions 输出方式菜单, 顺序即展示顺序
var MenuOptions = []MenuOption{
	{Label: "Show output in the terminal", Mode: OutputTerminal},
	{Label: "Export results to a file", Mode: OutputFile},
}

// ModeForLabel 根据菜单文本查找输出方式
func ModeForLabel(label string) (OutputMode, error) {
	for _, o := range MenuOptions {
		if o.Label == label {
			return o.Mode, nil
		}
	}
	return "", fmt.Errorf("unknown output option: %q", label)
}

// OutputOptions 定义结果输出的通用参数
type OutputOptions struct {
	Mode      OutputMode
	Dir       string // 文件模式下的目录
	ExportCSV bool   // 文件模式下额外导出端口 CSV
}

// CSVPath 与报告同名的端口 CSV 路径
func (o *OutputOptions) CSVPath(reportPath string) string {
	ext := filepath.Ext(reportPath)
	return reportPath[:len(reportPath)-len(ext)] + "_ports.csv"
}
