/*
 * @author: sun977
 * @date: 2025.09.05
 * @description: 时间工具包
 * @func: 报告文件名、报告头部和耗时展示使用的时间格式
 */

package utils

import (
	"fmt"
	"time"
)

// 常用时间格式常量
const (
	// ReportDateFormat 报告头部日期格式 "2006-01-02 15:04"
	ReportDateFormat = "2006-01-02 15:04"
	// FileStampFormat 报告文件名时间戳格式 "20060102_1504" (精确到分钟)
	FileStampFormat = "20060102_1504"
	// DateTimeMilliFormat 带毫秒的日期时间格式 "2006-01-02 15:04:05.000"
	DateTimeMilliFormat = "2006-01-02 15:04:05.000"
)

// FormatReportDate 格式化报告头部日期
// 返回: "2006-01-02 15:04"
func FormatReportDate(t time.Time) string {
	return t.Format(ReportDateFormat)
}

// FormatFileStamp 格式化报告文件名时间戳
// 返回: "20060102_1504"
func FormatFileStamp(t time.Time) string {
	return t.Format(FileStampFormat)
}

// FormatDuration 格式化时间间隔为可读字符串
// 参数: d - 时间间隔
// 返回: 格式化后的字符串，如 "1h2m3s", 不足一秒时为 "850ms"
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var result string
	if hours > 0 {
		result += fmt.Sprintf("%dh", hours)
	}
	if minutes > 0 {
		result += fmt.Sprintf("%dm", minutes)
	}
	if seconds > 0 || result == "" {
		result += fmt.Sprintf("%ds", seconds)
	}

	return result
}
