package pipeline

import (
	"reconreport/internal/core/model"
)

// PipelineContext 扫描上下文
// 在各个阶段之间传递的数据载体, 只在编排 goroutine 中读写
type PipelineContext struct {
	RunID  string
	Target model.Target

	// 阶段 1: 主机发现
	Discovery model.DiscoveryDocument
	Hosts     []model.HostRecord

	// 阶段 2: 需要做 SSL 检测的 (host, port)
	SSLEndpoints []model.Endpoint

	Summary *model.RunSummary
}

func NewPipelineContext(runID string, target model.Target) *PipelineContext {
	return &PipelineContext{
		RunID:   runID,
		Target:  target,
		Summary: &model.RunSummary{RunID: runID, Target: target.Raw},
	}
}

// PortCount 发现的端口总数
func (c *PipelineContext) PortCount() int {
	n := 0
	for _, h := range c.Hosts {
		n += len(h.Ports)
	}
	return n
}
