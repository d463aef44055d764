package progress

import (
	"errors"
	"time"

	"reconreport/internal/config"
)

// ErrReused 进度跟踪器只能使用一次
var ErrReused = errors.New("progress reporter already used")

// State 进度跟踪器状态
type State int

const (
	StateIdle      State = iota // 0%, 尚未开始
	StateAnimating              // 模拟推进中
	StateComplete               // 已到 100%, 不可复用
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Renderer 进度展示
type Renderer interface {
	Start(title string) error
	Update(percent int)
	Finish() error
}

// Reporter 为时长未知的操作展示近似进度
// 未完成时按固定间隔推进, 不超过 ceiling; 观察到完成标志后一次性跳到 100
type Reporter struct {
	interval time.Duration
	step     int
	ceiling  int
	renderer Renderer

	state   State
	percent int
}

// NewReporter 创建进度跟踪器
func NewReporter(cfg *config.ProgressConfig, renderer Renderer) *Reporter {
	return &Reporter{
		interval: cfg.Interval,
		step:     cfg.Step,
		ceiling:  cfg.Ceiling,
		renderer: renderer,
	}
}

// State 当前状态
func (r *Reporter) State() State {
	return r.state
}

// Percent 最近一次展示的百分比
func (r *Reporter) Percent() int {
	return r.percent
}

// Track 阻塞轮询 done 直到其返回 true
// done 只被读取, 由被观察的 worker 负责置位
func (r *Reporter) Track(title string, done func() bool) error {
	if r.state != StateIdle {
		return ErrReused
	}
	if err := r.renderer.Start(title); err != nil {
		return err
	}
	r.state = StateAnimating

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for !done() {
		<-ticker.C
		if done() {
			break
		}
		if next := min(r.percent+r.step, r.ceiling); next > r.percent {
			r.percent = next
			r.renderer.Update(r.percent)
		}
	}

	r.percent = 100
	r.renderer.Update(r.percent)
	r.state = StateComplete
	return r.renderer.Finish()
}
