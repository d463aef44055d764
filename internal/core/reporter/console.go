package reporter

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm" // 引入 pterm 库用于控制台输出
)

var styles = map[Style]*pterm.Style{
	StyleBanner:  pterm.NewStyle(pterm.FgCyan, pterm.Bold),
	StyleRule:    pterm.NewStyle(pterm.FgCyan),
	StyleHost:    pterm.NewStyle(pterm.FgCyan, pterm.Bold),
	StyleSection: pterm.NewStyle(pterm.FgMagenta, pterm.Bold),
	StylePort:    pterm.NewStyle(pterm.FgYellow, pterm.Bold),
	StyleField:   pterm.NewStyle(pterm.FgWhite),
	StyleOK:      pterm.NewStyle(pterm.FgGreen),
	StyleBad:     pterm.NewStyle(pterm.FgRed),
	StyleNotice:  pterm.NewStyle(pterm.FgYellow),
	StyleError:   pterm.NewStyle(pterm.FgRed, pterm.Bold),
	StyleSuccess: pterm.NewStyle(pterm.FgGreen, pterm.Bold),
	StyleStart:   pterm.NewStyle(pterm.FgCyan, pterm.Bold),
}

// Colorize 按样式给文本上色
func Colorize(text string, style Style) string {
	if s, ok := styles[style]; ok {
		return s.Sprint(text)
	}
	return text
}

// ConsoleSink 终端输出, 彩色且立即写出
type ConsoleSink struct {
	mu     sync.Mutex
	out    io.Writer
	closed bool
}

// NewConsoleSink 创建终端输出, out 为空时使用 stdout
func NewConsoleSink(out io.Writer) *ConsoleSink {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleSink{out: out}
}

func (c *ConsoleSink) WriteLine(text string, style Style) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrSinkClosed
	}
	_, err := fmt.Fprintln(c.out, Colorize(text, style))
	return err
}

// WriteBlock 工具输出原样打印, 保留工具自己的颜色
func (c *ConsoleSink) WriteBlock(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrSinkClosed
	}
	_, err := fmt.Fprintln(c.out, text)
	return err
}

func (c *ConsoleSink) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
