// Package exporter publishes monitor frames as Prometheus metrics.
package exporter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ja7ad/sysmon/pkg/monitor"
	"github.com/ja7ad/sysmon/pkg/types"
)

const namespace = "sysmon"

// Poller yields one frame per call. *monitor.Monitor implements it.
type Poller interface {
	Poll() monitor.Frame
}

// Collector implements prometheus.Collector. Every scrape polls once.
type Collector struct {
	poller Poller
	topK   int

	cpuDesc        *prometheus.Desc
	memoryDesc     *prometheus.Desc
	availableDesc  *prometheus.Desc
	uptimeDesc     *prometheus.Desc
	totalDesc      *prometheus.Desc
	runningDesc    *prometheus.Desc
	trackedDesc    *prometheus.Desc
	procCPUDesc    *prometheus.Desc
	procMemoryDesc *prometheus.Desc
	infoDesc       *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// New returns a Collector exporting the top topK live processes by CPU.
// topK <= 0 exports no per-process series.
func New(p Poller, topK int) *Collector {
	procLabels := []string{"pid", "user", "command"}
	return &Collector{
		poller: p,
		topK:   topK,

		cpuDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "cpu_utilization_ratio"),
			"Share of CPU time spent busy.", nil, nil),
		memoryDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "memory_utilization_ratio"),
			"Share of physical memory in use, (MemTotal-MemFree)/MemTotal.", nil, nil),
		availableDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "memory_available_bytes"),
			"Memory available for new work, MemAvailable from meminfo.", nil, nil),
		uptimeDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "uptime_seconds"),
			"Seconds since boot.", nil, nil),
		totalDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "processes", "total"),
			"Processes forked since boot.", nil, nil),
		runningDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "processes", "running"),
			"Processes currently runnable.", nil, nil),
		trackedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "tracked_processes"),
			"Records held by the process table.", nil, nil),
		procCPUDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "process", "cpu_ratio"),
			"Cumulative CPU time over process age.", procLabels, nil),
		procMemoryDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "process", "virtual_memory_megabytes"),
			"Virtual memory size in MB.", procLabels, nil),
		infoDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "os_info"),
			"Operating system, kernel and cgroup mode.", []string{"os", "kernel", "cgroup"}, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cpuDesc
	ch <- c.memoryDesc
	ch <- c.availableDesc
	ch <- c.uptimeDesc
	ch <- c.totalDesc
	ch <- c.runningDesc
	ch <- c.trackedDesc
	ch <- c.procCPUDesc
	ch <- c.procMemoryDesc
	ch <- c.infoDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	f := c.poller.Poll()
	s := f.Snapshot

	gauge := func(d *prometheus.Desc, v float64, labels ...string) {
		for i := range labels {
			labels[i] = strings.ToValidUTF8(labels[i], "\uFFFD")
		}
		m, err := prometheus.NewConstMetric(d, prometheus.GaugeValue, v, labels...)
		if err != nil {
			m = prometheus.NewInvalidMetric(d, err)
		}
		ch <- m
	}

	gauge(c.cpuDesc, s.CPU)
	gauge(c.memoryDesc, s.Memory)
	if b, ok := s.MemoryAvailable.Get(); ok {
		gauge(c.availableDesc, float64(b))
	}
	gauge(c.uptimeDesc, float64(s.UpTimeSeconds))
	gauge(c.totalDesc, float64(s.TotalProcesses))
	gauge(c.runningDesc, float64(s.RunningProcesses))
	gauge(c.trackedDesc, float64(len(f.Processes)))
	gauge(c.infoDesc, 1, s.OperatingSystem, s.Kernel, s.Cgroup)

	n := 0
	for _, p := range f.Processes {
		if n >= c.topK {
			break
		}
		if !p.Alive {
			continue
		}
		n++
		gauge(c.procCPUDesc, p.CPU, procLabels(p)...)
		if mb, ok := p.RAM.Get(); ok {
			gauge(c.procMemoryDesc, float64(mb), procLabels(p)...)
		}
	}
}

// procLabels returns pid, user and command. Commands are raw cmdline bytes;
// gauge replaces invalid UTF-8 in every label value.
func procLabels(p monitor.ProcessRecord) []string {
	return []string{strconv.Itoa(p.PID), p.User.Or(types.Unknown), p.Command.Or(types.Unknown)}
}

// Handler registers c on reg and serves reg in the Prometheus text format.
// A nil reg gets a fresh registry.
func Handler(reg *prometheus.Registry, c *Collector, opts promhttp.HandlerOpts) (http.Handler, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return promhttp.HandlerFor(reg, opts), nil
}
