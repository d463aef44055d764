package reporter

import (
	"fmt"

	"github.com/pterm/pterm"

	"reconreport/internal/core/model"
	"reconreport/internal/pkg/utils"
)

// PortTable 发现阶段的端口汇总
type PortTable []model.HostRecord

func (t PortTable) Headers() []string {
	return []string{"IP", "Port", "Protocol", "State", "Service", "Product", "Version"}
}

func (t PortTable) Rows() [][]string {
	var rows [][]string
	for _, h := range t {
		for _, p := range h.Ports {
			rows = append(rows, []string{h.Address, p.Port, p.Protocol, p.State, p.Service, p.Product, p.Version})
		}
	}
	return rows
}

// StageTable 阶段执行汇总
type StageTable []model.StageOutcome

func (t StageTable) Headers() []string {
	return []string{"Stage", "Target", "Status", "Exit", "Duration", "Detail"}
}

func (t StageTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, o := range t {
		detail := o.Reason
		if o.Err != nil {
			detail = o.Err.Error()
		}
		exit := "-"
		if o.Status != model.StageSkipped {
			exit = fmt.Sprintf("%d", o.ExitCode)
		}
		rows = append(rows, []string{string(o.Stage), o.Target, string(o.Status), exit, utils.FormatDuration(o.Duration), detail})
	}
	return rows
}

// RenderTable 使用 pterm 渲染表格为字符串, 没有数据时返回空串
func RenderTable(data TabularData) (string, error) {
	rows := data.Rows()
	if len(rows) == 0 {
		return "", nil
	}

	tableData := pterm.TableData{data.Headers()}
	tableData = append(tableData, rows...)

	out, err := pterm.DefaultTable.
		WithHasHeader(true).
		WithBoxed(false). // 简洁风格
		WithData(tableData).
		Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render table: %w", err)
	}
	return out, nil
}
