/**
 * ReconReport 配置定义
 * @author: sun977
 * @date: 2026.02.10
 * @description: 日志、扫描流程、进度条和外部工具的配置结构
 */
package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 全局配置
type Config struct {
	// 日志配置
	Log *LogConfig `yaml:"log" mapstructure:"log"`

	// 扫描流程配置
	Scan *ScanConfig `yaml:"scan" mapstructure:"scan"`

	// 进度条配置
	Progress *ProgressConfig `yaml:"progress" mapstructure:"progress"`

	// 外部工具配置
	Tools *ToolsConfig `yaml:"tools" mapstructure:"tools"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // 日志级别 (debug/info/warn/error/fatal)
	Format     string `yaml:"format" mapstructure:"format"`           // 日志格式 (json/text)
	Output     string `yaml:"output" mapstructure:"output"`           // 日志输出 (stdout/stderr/file)
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`     // 日志文件路径
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`       // 最大文件大小（MB）
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"` // 最大备份数
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`         // 最大保留天数
	Compress   bool   `yaml:"compress" mapstructure:"compress"`       // 是否压缩
	Caller     bool   `yaml:"caller" mapstructure:"caller"`           // 是否显示调用者信息
}

// ScanConfig 扫描流程配置
type ScanConfig struct {
	SSLPorts     []string      `yaml:"ssl_ports" mapstructure:"ssl_ports"`         // 触发 SSL 阶段的端口 (字符串比较)
	StageTimeout time.Duration `yaml:"stage_timeout" mapstructure:"stage_timeout"` // 单阶段超时, 0 表示不限制
	OutputDir    string        `yaml:"output_dir" mapstructure:"output_dir"`       // 文件模式下报告目录
	ExportCSV    bool          `yaml:"export_csv" mapstructure:"export_csv"`       // 文件模式下额外导出端口 CSV
	Summary      bool          `yaml:"summary" mapstructure:"summary"`             // 结尾输出阶段汇总表
}

// ProgressConfig 进度条配置
type ProgressConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"` // 轮询间隔
	Step     int           `yaml:"step" mapstructure:"step"`         // 每次前进的百分比
	Ceiling  int           `yaml:"ceiling" mapstructure:"ceiling"`   // 未完成前的上限
}

// ToolsConfig 外部工具配置
type ToolsConfig struct {
	Nmap    NmapConfig  `yaml:"nmap" mapstructure:"nmap"`
	SSLScan ToolConfig  `yaml:"sslscan" mapstructure:"sslscan"`
	WhatWeb ToolConfig  `yaml:"whatweb" mapstructure:"whatweb"`
	Amass   AmassConfig `yaml:"amass" mapstructure:"amass"`
}

// NmapConfig 发现阶段 (nmap 库调用) 配置
type NmapConfig struct {
	Binary string   `yaml:"binary" mapstructure:"binary"` // nmap 可执行文件
	Args   []string `yaml:"args" mapstructure:"args"`     // 额外参数
}

// ToolConfig 通用命令行工具配置
// Template 使用 text/template 语法, 可用变量: .Binary .Target 以及 Params 中的键
type ToolConfig struct {
	Binary   string                 `yaml:"binary" mapstructure:"binary"`
	Template string                 `yaml:"template" mapstructure:"template"`
	Params   map[string]interface{} `yaml:"params" mapstructure:"params"`
}

// AmassConfig 子域名枚举配置
type AmassConfig struct {
	ToolConfig `yaml:",inline" mapstructure:",squash"`
	ApexDomain bool `yaml:"apex_domain" mapstructure:"apex_domain"` // 使用注册域名而不是原始目标
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Log == nil || c.Scan == nil || c.Progress == nil || c.Tools == nil {
		return fmt.Errorf("config sections log, scan, progress and tools are required")
	}

	if c.Progress.Interval <= 0 {
		return fmt.Errorf("invalid progress interval: %s", c.Progress.Interval)
	}
	if c.Progress.Step <= 0 {
		return fmt.Errorf("invalid progress step: %d", c.Progress.Step)
	}
	if c.Progress.Ceiling <= 0 || c.Progress.Ceiling >= 100 {
		return fmt.Errorf("progress ceiling must be between 1 and 99, got %d", c.Progress.Ceiling)
	}

	if len(c.Scan.SSLPorts) == 0 {
		return fmt.Errorf("at least one ssl port is required")
	}
	for _, p := range c.Scan.SSLPorts {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("empty ssl port in scan.ssl_ports")
		}
	}
	if c.Scan.StageTimeout < 0 {
		return fmt.Errorf("invalid stage timeout: %s", c.Scan.StageTimeout)
	}

	if c.Tools.Nmap.Binary == "" {
		return fmt.Errorf("tools.nmap.binary is required")
	}
	tools := []struct {
		name string
		tool ToolConfig
	}{
		{"sslscan", c.Tools.SSLScan},
		{"whatweb", c.Tools.WhatWeb},
		{"amass", c.Tools.Amass.ToolConfig},
	}
	for _, t := range tools {
		if t.tool.Binary == "" {
			return fmt.Errorf("tools.%s.binary is required", t.name)
		}
		if t.tool.Template == "" {
			return fmt.Errorf("tools.%s.template is required", t.name)
		}
	}

	return nil
}

// YAML 以 YAML 格式输出当前生效配置 (调试用)
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(out), nil
}
