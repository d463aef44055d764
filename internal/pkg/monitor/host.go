package monitor

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"reconreport/internal/pkg/logger"
)

// HostInfo 执行扫描的本机信息, 写入系统日志便于排查工具版本/环境差异
type HostInfo struct {
	Hostname        string
	OS              string
	Platform        string
	PlatformVersion string
	KernelVersion   string
	Arch            string
	CPUCores        int
	MemoryTotal     uint64
}

// GetHostInfo 获取本机静态信息, 单项失败时使用 runtime 的值兜底
func GetHostInfo() *HostInfo {
	info := &HostInfo{}

	if hInfo, err := host.Info(); err != nil {
		logger.Warnf("failed to get host info: %v", err)
	} else {
		info.Hostname = hInfo.Hostname
		info.OS = hInfo.OS
		info.Platform = hInfo.Platform
		info.PlatformVersion = hInfo.PlatformVersion
		info.KernelVersion = hInfo.KernelVersion
		info.Arch = hInfo.KernelArch
	}
	if info.OS == "" {
		info.OS = runtime.GOOS
	}
	if info.Arch == "" {
		info.Arch = runtime.GOARCH
	}

	info.CPUCores = runtime.NumCPU()
	if cores, err := cpu.Counts(false); err == nil && cores > 0 {
		info.CPUCores = cores
	}

	if vMem, err := mem.VirtualMemory(); err != nil {
		logger.Warnf("failed to get memory info: %v", err)
	} else {
		info.MemoryTotal = vMem.Total
	}

	return info
}

// Fields 日志字段
func (h *HostInfo) Fields() map[string]interface{} {
	return map[string]interface{}{
		"hostname":     h.Hostname,
		"os":           h.OS,
		"platform":     h.Platform,
		"platform_ver": h.PlatformVersion,
		"kernel":       h.KernelVersion,
		"arch":         h.Arch,
		"cpu_cores":    h.CPUCores,
		"memory_total": h.MemoryTotal,
	}
}
