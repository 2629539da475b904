package util

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostStats 主机运行状态，健康检查接口返回
type HostStats struct {
	OS            string  `json:"os"`
	Platform      string  `json:"platform"`
	KernelVersion string  `json:"kernelVersion"`
	HostUptime    uint64  `json:"hostUptime"` // 秒
	NumCPU        int     `json:"numCpu"`
	Load1         float64 `json:"load1"`
	MemTotal      uint64  `json:"memTotal"`
	MemAvailable  uint64  `json:"memAvailable"`
	MemUsedPct    float64 `json:"memUsedPct"`
}

// GetHostStats 采集主机信息，单项采集失败时该项保持零值
func GetHostStats() HostStats {
	stats := HostStats{
		OS:     runtime.GOOS,
		NumCPU: runtime.NumCPU(),
	}

	if info, err := host.Info(); err == nil {
		stats.Platform = info.Platform + " " + info.PlatformVersion
		stats.KernelVersion = info.KernelVersion
		stats.HostUptime = info.Uptime
	}

	if avg, err := load.Avg(); err == nil {
		stats.Load1 = avg.Load1
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemTotal = vm.Total
		stats.MemAvailable = vm.Available
		stats.MemUsedPct = vm.UsedPercent
	}

	return stats
}
