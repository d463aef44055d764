package progress

import (
	"io"

	"github.com/pterm/pterm"
)

// PtermRenderer 使用 pterm 进度条展示
type PtermRenderer struct {
	writer io.Writer
	bar    *pterm.ProgressbarPrinter
}

// NewPtermRenderer 创建 pterm 进度条, writer 为空时写到 stdout
func NewPtermRenderer(writer io.Writer) *PtermRenderer {
	return &PtermRenderer{writer: writer}
}

func (p *PtermRenderer) Start(title string) error {
	bar := pterm.DefaultProgressbar.
		WithTotal(100).
		WithTitle(title).
		WithShowElapsedTime(true)
	if p.writer != nil {
		bar = bar.WithWriter(p.writer)
	}

	started, err := bar.Start()
	if err != nil {
		return err
	}
	p.bar = started
	return nil
}

func (p *PtermRenderer) Update(percent int) {
	if p.bar == nil {
		return
	}
	if delta := percent - p.bar.Current; delta > 0 {
		p.bar.Add(delta)
	}
}

// Finish 停止进度条并换行
// 到达 100 时 pterm 会自行 Stop, 这里只处理仍在运行的情况
func (p *PtermRenderer) Finish() error {
	if p.bar == nil {
		return nil
	}
	bar := p.bar
	p.bar = nil
	if !bar.IsActive {
		return nil
	}
	_, err := bar.Stop()
	return err
}
