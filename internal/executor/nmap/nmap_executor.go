/**
 * Nmap 主机发现
 * @author: sun977
 * @date: 2025.10.21
 * @description: 通过 nmap 库在进程内完成端口/服务/版本识别
 * @func: 扫描结果转换为按地址索引的发现文档, 供后续阶段决策
 */
package nmap

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ullaakut/nmap/v3"

	"reconreport/internal/config"
	"reconreport/internal/core/model"
	"reconreport/internal/pkg/logger"
)

// Discoverer 主机发现接口
type Discoverer interface {
	Discover(ctx context.Context, target string) (model.DiscoveryDocument, error)
}

// NmapExecutor 基于 github.com/Ullaakut/nmap 的发现实现
type NmapExecutor struct {
	binary string
	args   []string
}

// NewNmapExecutor 创建 nmap 执行器
func NewNmapExecutor(cfg config.NmapConfig) *NmapExecutor {
	return &NmapExecutor{
		binary: cfg.Binary,
		args:   cfg.Args,
	}
}

// Binary nmap 可执行文件
func (e *NmapExecutor) Binary() string {
	return e.binary
}

// Discover 扫描目标并返回发现文档
// nmap 的警告只写日志, 不影响结果
func (e *NmapExecutor) Discover(ctx context.Context, target string) (model.DiscoveryDocument, error) {
	opts := []nmap.Option{
		nmap.WithTargets(target),
		nmap.WithBinaryPath(e.binary),
	}
	if len(e.args) > 0 {
		opts = append(opts, nmap.WithCustomArguments(e.args...))
	}

	scanner, err := nmap.NewScanner(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create nmap scanner: %w", err)
	}

	run, warnings, err := scanner.Run()
	if warnings != nil {
		for _, w := range *warnings {
			logger.Warnf("nmap: %s", w)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("nmap scan of %s failed: %w", target, err)
	}

	return ToDocument(run), nil
}

// ToDocument 将 nmap 运行结果转换为发现文档
// 主机以地址为键, 另外附带 runtime / stats / task_results 三个元数据键
func ToDocument(run *nmap.Run) model.DiscoveryDocument {
	doc := model.DiscoveryDocument{}
	if run == nil {
		return doc
	}

	for _, host := range run.Hosts {
		addr := hostAddress(host)
		if addr == "" {
			continue
		}

		ports := make([]interface{}, 0, len(host.Ports))
		for _, p := range host.Ports {
			ports = append(ports, map[string]interface{}{
				"protocol": p.Protocol,
				"portid":   fmt.Sprintf("%d", p.ID),
				"state":    p.State.State,
				"reason":   p.State.Reason,
				"service": map[string]interface{}{
					"name":    p.Service.Name,
					"product": p.Service.Product,
					"version": p.Service.Version,
				},
			})
		}

		hostnames := make([]interface{}, 0, len(host.Hostnames))
		for _, h := range host.Hostnames {
			hostnames = append(hostnames, map[string]interface{}{"name": h.Name, "type": h.Type})
		}

		doc[addr] = map[string]interface{}{
			"hostname": hostnames,
			"state":    map[string]interface{}{"state": host.Status.State, "reason": host.Status.Reason},
			"ports":    ports,
		}
	}

	doc[model.MetaRuntime] = map[string]interface{}{
		"time":    run.Stats.Finished.TimeStr,
		"elapsed": fmt.Sprintf("%.2f", run.Stats.Finished.Elapsed),
		"summary": run.Stats.Finished.Summary,
		"exit":    run.Stats.Finished.Exit,
	}
	doc[model.MetaStats] = map[string]interface{}{
		"args":     run.Args,
		"startstr": run.StartStr,
		"version":  run.Version,
		"up":       run.Stats.Hosts.Up,
		"down":     run.Stats.Hosts.Down,
		"total":    run.Stats.Hosts.Total,
	}

	tasks := make([]interface{}, 0, len(run.TaskEnd))
	for _, t := range run.TaskEnd {
		tasks = append(tasks, map[string]interface{}{"task": t.Task, "extrainfo": t.ExtraInfo})
	}
	doc[model.MetaTaskResults] = tasks

	return doc
}

// hostAddress 优先使用 IP 地址, 忽略 MAC
func hostAddress(h nmap.Host) string {
	for _, a := range h.Addresses {
		if t := strings.ToLower(a.AddrType); t == "ipv4" || t == "ipv6" {
			return a.Addr
		}
	}
	for _, a := range h.Addresses {
		if !strings.EqualFold(a.AddrType, "mac") && a.Addr != "" {
			return a.Addr
		}
	}
	return ""
}
