package options

import (
	"errors"
	"fmt"

	"reconreport/internal/config"
	"reconreport/internal/core/model"
)

// ErrMissingTarget 未提供扫描目标
var ErrMissingTarget = errors.New("target is required")

// ScanRunOptions 定义一次扫描的参数
// 这个结构体用于将 CLI 参数传递给 Pipeline
type ScanRunOptions struct {
	RunID       string
	Target      string
	Output      OutputOptions
	SSLPorts    []string
	AmassApex   bool // amass 使用可注册域名
	ShowSummary bool
}

// NewScanRunOptions 从配置填充默认值
func NewScanRunOptions(cfg *config.Config) *ScanRunOptions {
	return &ScanRunOptions{
		Output: OutputOptions{
			Mode:      OutputTerminal,
			Dir:       cfg.Scan.OutputDir,
			ExportCSV: cfg.Scan.ExportCSV,
		},
		SSLPorts:    cfg.Scan.SSLPorts,
		AmassApex:   cfg.Tools.Amass.ApexDomain,
		ShowSummary: cfg.Scan.Summary,
	}
}

// Validate 验证参数合法性
func (o *ScanRunOptions) Validate() error {
	if o.Target == "" {
		return ErrMissingTarget
	}
	if len(o.SSLPorts) == 0 {
		return fmt.Errorf("at least one ssl port is required")
	}
	switch o.Output.Mode {
	case OutputTerminal, OutputFile:
	default:
		return fmt.Errorf("invalid output mode: %q", o.Output.Mode)
	}
	return nil
}

// ParsedTarget 解析目标
func (o *ScanRunOptions) ParsedTarget() (model.Target, error) {
	t, err := model.ParseTarget(o.Target)
	if errors.Is(err, model.ErrEmptyTarget) {
		return t, ErrMissingTarget
	}
	return t, err
}
