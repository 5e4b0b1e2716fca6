package metrics

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

const collectInterval = 5 * time.Second

var (
	SystemCPUUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "freight_system_cpu_usage_percent",
			Help: "Host CPU usage percentage",
		},
	)

	SystemMemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "freight_system_memory_usage_bytes",
			Help: "Host memory usage in bytes",
		},
	)

	ProcessRSS = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "freight_process_resident_memory_bytes",
			Help: "Resident set size of the freight process",
		},
	)

	ApplicationMemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "freight_application_heap_alloc_bytes",
			Help: "Go heap allocation",
		},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "freight_goroutines",
			Help: "Number of live goroutines",
		},
	)
)

// StartSystemMetricsCollector снимает показатели хоста и процесса, пока ctx жив.
func StartSystemMetricsCollector(ctx context.Context) {
	self, err := process.NewProcessWithContext(ctx, int32(os.Getpid())) //nolint:gosec // pid помещается в int32
	if err != nil {
		self = nil
	}

	go func() {
		ticker := time.NewTicker(collectInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				collectSystemMetrics(ctx, self)
			}
		}
	}()
}

func collectSystemMetrics(ctx context.Context, self *process.Process) {
	cpuPercent, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err == nil && len(cpuPercent) > 0 {
		SystemCPUUsage.Set(cpuPercent[0])
	}

	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil {
		SystemMemoryUsage.Set(float64(vmStat.Used))
	}

	if self != nil {
		if info, err := self.MemoryInfoWithContext(ctx); err == nil {
			ProcessRSS.Set(float64(info.RSS))
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	ApplicationMemoryUsage.Set(float64(m.Alloc))
	Goroutines.Set(float64(runtime.NumGoroutine()))
}
