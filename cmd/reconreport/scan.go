package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"reconreport/internal/config"
	"reconreport/internal/core/model"
	"reconreport/internal/core/options"
	"reconreport/internal/core/pipeline"
	"reconreport/internal/core/reporter"
	"reconreport/internal/executor/nmap"
	"reconreport/internal/executor/system"
	"reconreport/internal/pkg/logger"
	"reconreport/internal/pkg/monitor"
)

// runScan 加载配置, 选择输出方式, 执行全流程
func runScan(cmd *cobra.Command, flags *rootFlags, rawTarget string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.NewConfigLoader(flags.cfgFile, config.DefaultEnvPrefix).LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Log.Level = cliLogLevel(flags, cfg.Log.Level)
	if _, err := logger.InitLogger(cfg.Log); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	if dump, err := cfg.YAML(); err == nil {
		logger.Debugf("effective config:\n%s", dump)
	}

	opts := options.NewScanRunOptions(cfg)
	opts.RunID = uuid.NewString()
	opts.Target = rawTarget
	target, err := opts.ParsedTarget()
	if err != nil {
		return err
	}

	printBanner(out)
	mode, err := selectOutputMode(out)
	if err != nil {
		return err
	}
	opts.Output.Mode = mode
	if err := opts.Validate(); err != nil {
		return err
	}

	logger.LogSystemEvent("cli", "host", "scanner host", monitor.GetHostInfo().Fields())
	logger.LogSystemEvent("cli", "start", "scan started", map[string]interface{}{
		"run_id": opts.RunID,
		"target": target.Raw,
		"kind":   string(target.Kind),
		"output": string(mode),
	})

	sink, err := openSink(out, opts, target)
	if err != nil {
		return err
	}
	defer closeSink(out, sink)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := pipeline.NewAutoRunner(cfg, opts, sink,
		system.NewSystemExecutor(cfg.Scan.StageTimeout),
		nmap.NewNmapExecutor(cfg.Tools.Nmap),
		pipeline.WithConsole(out),
	)
	if err != nil {
		return err
	}

	pCtx := runner.Run(ctx, target)
	exportPorts(opts, sink, pCtx)

	logger.LogSystemEvent("cli", "finish", "scan finished", map[string]interface{}{
		"run_id":   opts.RunID,
		"failed":   pCtx.Summary.Count(model.StageFailed),
		"skipped":  pCtx.Summary.Count(model.StageSkipped),
		"duration": pCtx.Summary.Duration().Milliseconds(),
	})

	if ctx.Err() != nil {
		return fmt.Errorf("scan interrupted: %w", ctx.Err())
	}
	return pCtx.Summary.Err()
}

// openSink 在第一个阶段之前创建唯一的报告输出
func openSink(out io.Writer, opts *options.ScanRunOptions, target model.Target) (reporter.Sink, error) {
	if opts.Output.Mode == options.OutputTerminal {
		return reporter.NewConsoleSink(out), nil
	}

	fs, err := reporter.NewFileSink(opts.Output.Dir, target.Raw, time.Now())
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(out, pterm.Cyan(fmt.Sprintf(" Results exported to: %s\n", fs.Path())))
	return fs, nil
}

// closeSink 所有退出路径上关闭报告输出
func closeSink(out io.Writer, sink reporter.Sink) {
	if err := sink.Close(); err != nil {
		logger.Errorf("failed to close report: %v", err)
		fmt.Fprintln(os.Stderr, pterm.Red(fmt.Sprintf(" Failed to save results: %v", err)))
		return
	}
	if fs, ok := sink.(*reporter.FileSink); ok {
		fmt.Fprintln(out, pterm.Green(fmt.Sprintf("\n Results saved to file %s", fs.Path())))
	}
}

// exportPorts 文件模式下按需导出端口 CSV
func exportPorts(opts *options.ScanRunOptions, sink reporter.Sink, pCtx *pipeline.PipelineContext) {
	fs, ok := sink.(*reporter.FileSink)
	if !ok || !opts.Output.ExportCSV {
		return
	}
	path := opts.Output.CSVPath(fs.Path())
	if err := reporter.SaveCSV(path, reporter.PortTable(pCtx.Hosts)); err != nil {
		logger.Errorf("failed to export ports: %v", err)
		return
	}
	logger.Infof("ports exported to %s", path)
}
