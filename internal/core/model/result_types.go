package model

import (
	"errors"
	"fmt"
	"time"
)

// StageResult 外部工具执行结果
// Err 不为空表示工具没能启动或被中断, 非零退出码本身不算失败
type StageResult struct {
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// Failed 工具是否没能正常运行结束
func (r StageResult) Failed() bool {
	return r.Err != nil
}

// StageName 阶段名称
type StageName string

const (
	StageDiscovery StageName = "discovery"
	StageSSL       StageName = "sslscan"
	StageWhatWeb   StageName = "whatweb"
	StageAmass     StageName = "amass"
)

// StageStatus 阶段状态
type StageStatus string

const (
	StageCompleted StageStatus = "completed"
	StageSkipped   StageStatus = "skipped"
	StageFailed    StageStatus = "failed"
)

// StageOutcome 单个阶段的最终结果
// 同一个阶段可能出现多次 (每个 SSL 端口一次)
type StageOutcome struct {
	Stage    StageName     `json:"stage"`
	Target   string        `json:"target"`
	Status   StageStatus   `json:"status"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
	Reason   string        `json:"reason,omitempty"`
	Err      error         `json:"-"`
}

// RunSummary 一次完整运行的汇总
type RunSummary struct {
	RunID     string         `json:"run_id"`
	Target    string         `json:"target"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	Outcomes  []StageOutcome `json:"outcomes"`
}

// Add 追加阶段结果
func (s *RunSummary) Add(o StageOutcome) {
	s.Outcomes = append(s.Outcomes, o)
}

// Count 统计指定状态的阶段数量
func (s *RunSummary) Count(status StageStatus) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Failures 返回所有失败的阶段
func (s *RunSummary) Failures() []StageOutcome {
	var out []StageOutcome
	for _, o := range s.Outcomes {
		if o.Status == StageFailed {
			out = append(out, o)
		}
	}
	return out
}

// Err 合并所有失败阶段的错误, 没有失败时返回 nil
func (s *RunSummary) Err() error {
	var errs []error
	for _, o := range s.Failures() {
		err := o.Err
		if err == nil {
			err = errors.New(o.Reason)
		}
		errs = append(errs, fmt.Errorf("%s (%s): %w", o.Stage, o.Target, err))
	}
	return errors.Join(errs...)
}

// Duration 总耗时
func (s *RunSummary) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}
