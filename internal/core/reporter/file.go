package reporter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"reconreport/internal/pkg/utils"
)

const separatorWidth = 60

// ReportFileName 报告文件名 <target>_<YYYYMMDD_HHMM>.txt
// 同一分钟内对同一目标重复运行会得到相同的文件名
func ReportFileName(target string, now time.Time) string {
	return fmt.Sprintf("%s_%s.txt", utils.SafeFileName(target), utils.FormatFileStamp(now))
}

// FileSink 文件输出, 去掉所有颜色, 缓冲到 Close 时写盘
type FileSink struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	w      *bufio.Writer
	closed bool
}

// NewFileSink 在 dir 下创建报告文件并写入头部
func NewFileSink(dir, target string, now time.Time) (*FileSink, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ReportFileName(target, now))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	s := &FileSink{path: path, file: f, w: bufio.NewWriter(f)}
	s.writePreamble(target, now)
	return s, nil
}

// Path 报告文件路径
func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) writePreamble(target string, now time.Time) {
	s.w.WriteString(Banner() + "\n")
	fmt.Fprintf(s.w, "Target: %s\n", target)
	fmt.Fprintf(s.w, "Date: %s\n", utils.FormatReportDate(now))
	s.w.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")
}

func (s *FileSink) WriteLine(text string, _ Style) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSinkClosed
	}
	_, err := s.w.WriteString(StripANSI(text) + "\n")
	return err
}

// WriteBlock 工具输出同样去掉颜色
func (s *FileSink) WriteBlock(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSinkClosed
	}
	text = StripANSI(text)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := s.w.WriteString(text)
	return err
}

// Close 刷新缓冲并关闭文件
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	flushErr := s.w.Flush()
	closeErr := s.file.Close()
	if flushErr != nil {
		return fmt.Errorf("failed to flush report file: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close report file: %w", closeErr)
	}
	return nil
}

// StripANSI 去掉颜色控制序列和回车
func StripANSI(text string) string {
	return strings.ReplaceAll(pterm.RemoveColorFromString(text), "\r", "")
}
