package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"reconreport/internal/config"
	"reconreport/internal/core/model"
	"reconreport/internal/core/options"
	"reconreport/internal/core/progress"
	"reconreport/internal/core/reporter"
	"reconreport/internal/executor/core"
	"reconreport/internal/executor/nmap"
	"reconreport/internal/executor/system"
	"reconreport/internal/pkg/logger"
	"reconreport/internal/pkg/tool_adapter/command"
)

const ruleWidth = 60

// tool 一个外部命令阶段
type tool struct {
	stage   model.StageName
	binary  string
	builder core.CommandBuilder
}

// ProgressFactory 为每个被跟踪的操作创建新的进度跟踪器
type ProgressFactory func() *progress.Reporter

// AutoRunner 自动编排运行器
// 负责串联 Discovery -> SSL -> WhatWeb -> Amass 的全流程, 阶段严格顺序执行
type AutoRunner struct {
	opts       *options.ScanRunOptions
	sink       reporter.Sink
	console    io.Writer
	runner     system.Runner
	discoverer nmap.Discoverer
	nmapBinary string

	sslscan tool
	whatweb tool
	amass   tool

	newProgress ProgressFactory
}

// Option 运行器可选项
type Option func(*AutoRunner)

// WithConsole 设置 "[*]" 提示与进度条的输出位置
func WithConsole(w io.Writer) Option {
	return func(r *AutoRunner) { r.console = w }
}

// WithProgressFactory 替换进度跟踪器
func WithProgressFactory(f ProgressFactory) Option {
	return func(r *AutoRunner) { r.newProgress = f }
}

// NewAutoRunner 根据配置创建运行器
func NewAutoRunner(cfg *config.Config, opts *options.ScanRunOptions, sink reporter.Sink, runner system.Runner, discoverer nmap.Discoverer, extra ...Option) (*AutoRunner, error) {
	r := &AutoRunner{
		opts:       opts,
		sink:       sink,
		console:    os.Stdout,
		runner:     runner,
		discoverer: discoverer,
		nmapBinary: cfg.Tools.Nmap.Binary,
	}

	var err error
	if r.sslscan, err = newTool(model.StageSSL, cfg.Tools.SSLScan); err != nil {
		return nil, err
	}
	if r.whatweb, err = newTool(model.StageWhatWeb, cfg.Tools.WhatWeb); err != nil {
		return nil, err
	}
	if r.amass, err = newTool(model.StageAmass, cfg.Tools.Amass.ToolConfig); err != nil {
		return nil, err
	}

	for _, o := range extra {
		o(r)
	}
	if r.newProgress == nil {
		console := r.console
		r.newProgress = func() *progress.Reporter {
			return progress.NewReporter(cfg.Progress, progress.NewPtermRenderer(console))
		}
	}
	return r, nil
}

func newTool(stage model.StageName, cfg config.ToolConfig) (tool, error) {
	b, err := command.FromToolConfig(cfg)
	if err != nil {
		return tool{}, err
	}
	return tool{stage: stage, binary: cfg.Binary, builder: b}, nil
}

// Run 执行全部阶段
// 单个阶段失败只记录在汇总中, 不影响后续阶段; 上下文取消后剩余阶段记为跳过
func (r *AutoRunner) Run(ctx context.Context, target model.Target) *PipelineContext {
	pCtx := NewPipelineContext(r.opts.RunID, target)
	pCtx.Summary.StartTime = time.Now()

	r.write(fmt.Sprintf("\n Starting scan of %s...\n", target.Raw), reporter.StyleStart)

	r.runDiscovery(ctx, pCtx)
	r.reportPorts(pCtx)
	r.runSSL(ctx, pCtx)
	r.runWhatWeb(ctx, pCtx)
	r.runAmass(ctx, pCtx)

	pCtx.Summary.EndTime = time.Now()
	r.writeFinal(pCtx)
	return pCtx
}

// ==================== 阶段 1: 主机发现 ====================

type discoveryResult struct {
	doc      model.DiscoveryDocument
	err      error
	duration time.Duration
}

func (r *AutoRunner) runDiscovery(ctx context.Context, pCtx *PipelineContext) {
	target := pCtx.Target.Raw
	if r.interrupted(ctx, pCtx, model.StageDiscovery, target) {
		return
	}
	if !r.runner.IsInstalled(r.nmapBinary) {
		r.write("\nSkipping nmap (not installed)", reporter.StyleNotice)
		r.record(pCtx, model.StageOutcome{Stage: model.StageDiscovery, Target: target, Status: model.StageSkipped, Reason: "not installed"})
		return
	}

	job := core.StartJob(func() discoveryResult {
		start := time.Now()
		doc, err := r.discoverer.Discover(ctx, target)
		return discoveryResult{doc: doc, err: err, duration: time.Since(start)}
	})
	r.track(fmt.Sprintf("Nmap scan of %s", target), job.Done)
	res := job.Wait()

	outcome := model.StageOutcome{Stage: model.StageDiscovery, Target: target, Duration: res.duration}
	if res.err != nil {
		r.write(fmt.Sprintf("\n Error during scan: %v", res.err), reporter.StyleError)
		outcome.Status = model.StageFailed
		outcome.ExitCode = 1
		outcome.Err = res.err
		r.record(pCtx, outcome)
		return
	}

	pCtx.Discovery = res.doc
	pCtx.Hosts = model.ExtractHosts(res.doc)
	outcome.Status = model.StageCompleted
	outcome.Reason = fmt.Sprintf("%d host(s)", len(pCtx.Hosts))
	r.record(pCtx, outcome)
}

// reportPorts 输出每个主机的端口信息并收集 SSL 端口
func (r *AutoRunner) reportPorts(pCtx *PipelineContext) {
	if n := pCtx.PortCount(); n > 0 {
		r.announce(fmt.Sprintf("Analyzing %d ports", n))
	}

	rule := strings.Repeat("=", ruleWidth)
	for _, host := range pCtx.Hosts {
		r.write("\n"+rule, reporter.StyleRule)
		r.write(fmt.Sprintf("====== IP: %s ======", host.Address), reporter.StyleHost)
		r.write(rule, reporter.StyleRule)
		r.write("\n###*** PORT SCAN ***###", reporter.StyleSection)

		for _, p := range host.Ports {
			r.write(fmt.Sprintf("\n------ PORT %s ------", p.Port), reporter.StylePort)
			stateStyle := reporter.StyleBad
			if p.IsOpen() {
				stateStyle = reporter.StyleOK
			}
			r.write("STATE : "+orUnknown(p.State), stateStyle)
			r.write("SERVICE : "+orUnknown(p.Service), reporter.StyleField)
			r.write("TYPE : "+orUnknown(p.Product), reporter.StyleField)
			r.write("VERSION : "+orUnknown(p.Version), reporter.StyleField)
		}
	}

	pCtx.SSLEndpoints = model.SSLEndpoints(pCtx.Hosts, r.opts.SSLPorts)
}

// ==================== 阶段 2: SSL ====================

func (r *AutoRunner) runSSL(ctx context.Context, pCtx *PipelineContext) {
	if len(pCtx.SSLEndpoints) == 0 {
		r.write(fmt.Sprintf("\nNo open SSL port (%s) detected", strings.Join(r.opts.SSLPorts, "/")), reporter.StyleNotice)
		r.write("Skipping sslscan", reporter.StyleNotice)
		r.record(pCtx, model.StageOutcome{Stage: model.StageSSL, Target: pCtx.Target.Raw, Status: model.StageSkipped, Reason: "no open ssl port"})
		return
	}

	// 工具缺失时只提示一次, 所有端点记为跳过
	if ctx.Err() == nil && !r.runner.IsInstalled(r.sslscan.binary) {
		r.write("\nsslscan is not installed", reporter.StyleNotice)
		for _, ep := range pCtx.SSLEndpoints {
			r.record(pCtx, model.StageOutcome{Stage: model.StageSSL, Target: ep.String(), Status: model.StageSkipped, Reason: "not installed"})
		}
		return
	}

	for _, ep := range pCtx.SSLEndpoints {
		if r.interrupted(ctx, pCtx, model.StageSSL, ep.String()) {
			continue
		}
		r.write(fmt.Sprintf("\n###*** SSL SCAN (Port %s) ***###", ep.Port), reporter.StyleSection)
		r.write(fmt.Sprintf("Running sslscan on %s", ep.String()), reporter.StyleNotice)
		r.runTool(ctx, pCtx, r.sslscan, ep.String(), fmt.Sprintf("SSL scan %s", ep.String()))
	}
}

// ==================== 阶段 3/4: WhatWeb, Amass ====================

func (r *AutoRunner) runWhatWeb(ctx context.Context, pCtx *PipelineContext) {
	r.runWebTool(ctx, pCtx, r.whatweb, pCtx.Target.Raw, "WHATWEB", "WhatWeb scan")
}

func (r *AutoRunner) runAmass(ctx context.Context, pCtx *PipelineContext) {
	r.runWebTool(ctx, pCtx, r.amass, pCtx.Target.EnumDomain(r.opts.AmassApex), "AMASS", "Amass scan")
}

func (r *AutoRunner) runWebTool(ctx context.Context, pCtx *PipelineContext, t tool, target, title, desc string) {
	if r.interrupted(ctx, pCtx, t.stage, target) {
		return
	}
	if !r.runner.IsInstalled(t.binary) {
		r.write(fmt.Sprintf("\nSkipping %s (not installed)", t.stage), reporter.StyleNotice)
		r.record(pCtx, model.StageOutcome{Stage: t.stage, Target: target, Status: model.StageSkipped, Reason: "not installed"})
		return
	}

	r.write(fmt.Sprintf("\n###*** %s SCAN ***###", title), reporter.StyleSection)
	r.runTool(ctx, pCtx, t, target, desc)
}

// runTool 构建命令, 在 worker 中运行并展示进度, 结果写入报告
func (r *AutoRunner) runTool(ctx context.Context, pCtx *PipelineContext, t tool, target, desc string) {
	outcome := model.StageOutcome{Stage: t.stage, Target: target}

	cmd, err := t.builder.Build(target, nil)
	if err != nil {
		r.write(fmt.Sprintf("Error running %s: %v", t.stage, err), reporter.StyleError)
		outcome.Status = model.StageFailed
		outcome.ExitCode = 1
		outcome.Err = err
		r.record(pCtx, outcome)
		return
	}
	cmd.Description = desc

	job := r.runner.Start(ctx, cmd)
	r.track(desc, job.Done)
	res := job.Wait()

	outcome.ExitCode = res.ExitCode
	outcome.Duration = res.Duration
	if res.Failed() {
		r.write(fmt.Sprintf("Error running %s: %s", t.stage, res.Stderr), reporter.StyleError)
		outcome.Status = model.StageFailed
		outcome.Err = res.Err
		r.record(pCtx, outcome)
		return
	}

	if res.Stderr != "" {
		logger.WithFields(map[string]interface{}{"stage": t.stage, "target": target}).Debugf("stderr: %s", res.Stderr)
	}
	r.writeBlock(res.Stdout)
	outcome.Status = model.StageCompleted
	r.record(pCtx, outcome)
}

// ==================== 汇总 ====================

func (r *AutoRunner) writeFinal(pCtx *PipelineContext) {
	rule := strings.Repeat("=", ruleWidth)
	failed := pCtx.Summary.Count(model.StageFailed)

	style := reporter.StyleSuccess
	message := " Scan completed successfully!"
	if failed > 0 {
		style = reporter.StyleError
		message = fmt.Sprintf(" Scan finished with %d failed stage(s)", failed)
	}
	r.write("\n"+rule, style)
	r.write(message, style)
	r.write(rule, style)

	if !r.opts.ShowSummary {
		return
	}
	table, err := reporter.RenderTable(reporter.StageTable(pCtx.Summary.Outcomes))
	if err != nil {
		logger.Warnf("failed to render stage summary: %v", err)
		return
	}
	if table != "" {
		r.writeBlock("\n" + table)
	}
}

// ==================== 辅助方法 ====================

// interrupted 上下文已取消时记录跳过并返回 true
func (r *AutoRunner) interrupted(ctx context.Context, pCtx *PipelineContext, stage model.StageName, target string) bool {
	if ctx.Err() == nil {
		return false
	}
	r.write(fmt.Sprintf("\nSkipping %s (interrupted)", stage), reporter.StyleNotice)
	r.record(pCtx, model.StageOutcome{Stage: stage, Target: target, Status: model.StageSkipped, Reason: "interrupted"})
	return true
}

func (r *AutoRunner) record(pCtx *PipelineContext, o model.StageOutcome) {
	pCtx.Summary.Add(o)

	msg := o.Reason
	if o.Err != nil {
		msg = o.Err.Error()
	}
	logger.LogStageEvent(logger.StageLogEntry{
		RunID:    pCtx.RunID,
		Stage:    string(o.Stage),
		Target:   o.Target,
		Status:   string(o.Status),
		ExitCode: o.ExitCode,
		Duration: o.Duration,
		Message:  msg,
	})
}

// announce 在终端输出 "[*] desc..."
func (r *AutoRunner) announce(desc string) {
	fmt.Fprintf(r.console, "%s %s...\n", pterm.Cyan("[*]"), desc)
}

func (r *AutoRunner) track(desc string, done func() bool) {
	r.announce(desc)
	if err := r.newProgress().Track(desc, done); err != nil {
		logger.Warnf("progress display failed: %v", err)
	}
}

func (r *AutoRunner) write(text string, style reporter.Style) {
	if err := r.sink.WriteLine(text, style); err != nil {
		logger.Errorf("failed to write report: %v", err)
	}
}

func (r *AutoRunner) writeBlock(text string) {
	if err := r.sink.WriteBlock(text); err != nil {
		logger.Errorf("failed to write report: %v", err)
	}
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
