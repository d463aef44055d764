package logger

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// LogType 日志类型
type LogType string

const (
	// StageLog 阶段日志 - 记录每个扫描阶段的执行情况
	StageLog LogType = "stage"
	// SystemLog 系统日志 - 记录启动、配置加载、输出目标选择等
	SystemLog LogType = "system"
)

// StageLogEntry 阶段日志条目
type StageLogEntry struct {
	RunID    string        // 本次运行ID
	Stage    string        // 阶段名称 (discovery, ssl, whatweb, amass)
	Target   string        // 阶段目标 (ssl 阶段为 host:port)
	Status   string        // completed, skipped, failed
	ExitCode int           // 外部命令退出码
	Duration time.Duration // 阶段耗时
	Message  string        // 附加信息 (跳过原因/错误信息)
}

// LogStageEvent 记录阶段事件
// 根据状态选择日志级别: failed -> error, skipped -> info, 其余 -> info
func LogStageEvent(entry StageLogEntry) {
	if LoggerInstance == nil {
		return
	}

	fields := logrus.Fields{
		"type":      StageLog,
		"run_id":    entry.RunID,
		"stage":     entry.Stage,
		"target":    entry.Target,
		"status":    entry.Status,
		"exit_code": entry.ExitCode,
		"duration":  entry.Duration.Milliseconds(),
	}
	if entry.Message != "" {
		fields["detail"] = entry.Message
	}

	log := LoggerInstance.logger.WithFields(fields)
	switch entry.Status {
	case "failed":
		log.Error(fmt.Sprintf("Stage failed: %s on %s", entry.Stage, entry.Target))
	case "skipped":
		log.Info(fmt.Sprintf("Stage skipped: %s on %s", entry.Stage, entry.Target))
	default:
		log.Info(fmt.Sprintf("Stage %s: %s on %s", entry.Status, entry.Stage, entry.Target))
	}
}

// LogSystemEvent 记录系统事件
func LogSystemEvent(component, event, message string, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	fields := logrus.Fields{
		"type":      SystemLog,
		"component": component,
		"event":     event,
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	LoggerInstance.logger.WithFields(fields).Info(message)
}
