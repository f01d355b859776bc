// Package hwinfo classifies the host CPU so the acceleration mode can be
// validated before a run. The probe is a pure read of kernel-provided
// identification strings; anything unknown resolves to false.
package hwinfo

import (
	"os"
	"runtime"
	"strings"
)

// Probe reports the CPU traits that matter for codec selection.
type Probe struct {
	IsIntel bool
	IsARM   bool
}

// Classify inspects the running machine.
func Classify() Probe {
	cpuinfo, _ := os.ReadFile("/proc/cpuinfo")
	return classify(runtime.GOARCH, string(cpuinfo))
}

func classify(goarch, cpuinfo string) Probe {
	probe := Probe{
		IsARM: strings.HasPrefix(goarch, "arm"),
	}
	for _, line := range strings.Split(cpuinfo, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "vendor_id":
			if strings.Contains(value, "GenuineIntel") {
				probe.IsIntel = true
			}
		case "CPU implementer", "Processor":
			// ARM kernels expose implementer fields instead of vendor_id.
			probe.IsARM = probe.IsARM || strings.Contains(strings.ToLower(value), "arm")
		}
	}
	return probe
}
