/**
 * 系统命令执行器
 * @author: sun977
 * @date: 2025.10.21
 * @description: 在独立 goroutine 中执行外部工具并完整捕获输出
 * @func: IsInstalled 检查工具是否存在, Start 启动命令并返回可轮询的 Job
 */
package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"reconreport/internal/core/model"
	"reconreport/internal/executor/core"
	"reconreport/internal/pkg/logger"
)

const waitDelay = 2 * time.Second

// Runner 外部命令执行接口, 编排器只依赖这个接口
type Runner interface {
	IsInstalled(binary string) bool
	Start(ctx context.Context, cmd model.Command) *core.Job[model.StageResult]
}

// SystemExecutor 基于 os/exec 的执行器
type SystemExecutor struct {
	timeout  time.Duration // 单个阶段超时, 0 表示不限制
	lookPath func(string) (string, error)
}

// NewSystemExecutor 创建系统执行器实例
func NewSystemExecutor(timeout time.Duration) *SystemExecutor {
	return &SystemExecutor{
		timeout:  timeout,
		lookPath: exec.LookPath,
	}
}

// IsInstalled 检查可执行文件是否在 PATH 中 (或为可执行的绝对路径)
func (e *SystemExecutor) IsInstalled(binary string) bool {
	if binary == "" {
		return false
	}
	_, err := e.lookPath(binary)
	return err == nil
}

// Start 在 worker goroutine 中运行命令
func (e *SystemExecutor) Start(ctx context.Context, cmd model.Command) *core.Job[model.StageResult] {
	return core.StartJob(func() model.StageResult {
		return e.run(ctx, cmd)
	})
}

// run 执行命令, 任何启动或运行失败都转换为结果值, 不向外抛出
func (e *SystemExecutor) run(ctx context.Context, cmd model.Command) model.StageResult {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...)
	c.Stdout = &stdout
	c.Stderr = &stderr
	// 被 kill 后子进程可能仍持有输出管道, 最多再等待 waitDelay
	c.WaitDelay = waitDelay

	logger.Debugf("exec: %s", cmd.String())
	start := time.Now()
	err := c.Run()
	result := model.StageResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case ctx.Err() != nil:
		// 超时或被取消, 进程已被 kill
		result.Err = fmt.Errorf("%s: %w", cmd.Binary, ctx.Err())
	case errors.As(err, &exitErr):
		// 正常退出但返回非零退出码, 不算启动失败
		result.ExitCode = exitErr.ExitCode()
	default:
		result.Err = fmt.Errorf("failed to run %s: %w", cmd.Binary, err)
	}

	if result.Err != nil {
		result.Stderr = result.Err.Error()
		result.ExitCode = 1
	}
	return result
}
