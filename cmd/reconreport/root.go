/*
 * @author: Sun977
 * @date: 2026.01.21
 * @description: Cobra Root Command 定义
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"reconreport/internal/config"
	"reconreport/internal/core/options"
	"reconreport/internal/core/reporter"
	"reconreport/internal/pkg/logger"
	"reconreport/internal/pkg/version"
)

// rootFlags 全局 Flag
type rootFlags struct {
	cfgFile  string
	logLevel string
}

// NewRootCmd 创建根命令
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "reconreport <target>",
		Short: "ReconReport 侦察报告生成工具",
		Long: `ReconReport 依次调用 nmap、sslscan、whatweb 和 amass 对单个目标进行侦察,
并将结果汇总为一份报告, 输出到终端或导出到文件.

流程: Target -> Nmap (端口/服务/版本) -> SSLScan (443/8443) -> WhatWeb -> Amass -> Report`,
		Example: `  reconreport example.com
  reconreport 192.168.1.10 --log-level debug
  reconreport example.com --config ./configs/config.yaml`,
		Version:       version.GetFullVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		// PersistentPreRun: 全局初始化逻辑，确保加载配置之前也能使用日志
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initCLILogger(cmd, flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), pterm.Red(fmt.Sprintf(" Usage : %s <target>", cmd.Root().Name())))
				return options.ErrMissingTarget
			}
			return runScan(cmd, flags, args[0])
		},
	}

	cmd.SetVersionTemplate("ReconReport {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.cfgFile, "config", "", "配置文件路径 (默认: ./configs/config.yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "日志级别 (debug, info, warn, error)")

	return cmd
}

// Execute 执行根命令, 任何错误或 panic 均以退出码 1 结束
func Execute() {
	// 全局 Panic Recovery
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n[FATAL] ReconReport crashed unexpectedly: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, options.ErrMissingTarget) {
			fmt.Fprintln(os.Stderr, pterm.Red(fmt.Sprintf("\n Error: %v", err)))
		}
		os.Exit(1)
	}
}

// initCLILogger 初始化 CLI 模式下的日志
// 默认只输出 Fatal, 避免日志与报告交错; 受 --log-level 控制
func initCLILogger(cmd *cobra.Command, flags *rootFlags) {
	level := cliLogLevel(flags, "fatal")

	// 配置 pterm
	switch level {
	case "debug":
		pterm.EnableDebugMessages()
	default:
		pterm.DisableDebugMessages()
	}

	logConfig := &config.LogConfig{
		Level:  level,
		Format: "text",
		Output: "stdout",
		Caller: false,
	}

	// 初始化日志
	if _, err := logger.InitLogger(logConfig); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to init logger: %v\n", err)
	}
}

// cliLogLevel 返回显式设置的 --log-level, 未设置时返回 fallback
func cliLogLevel(flags *rootFlags, fallback string) string {
	if flags.logLevel != "" {
		return flags.logLevel
	}
	return fallback
}

// printBanner 在终端输出彩色横幅
func printBanner(out io.Writer) {
	fmt.Fprintln(out, pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(reporter.Banner()))
}
