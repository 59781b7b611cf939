package probe

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/luckyjian/my/internal/result"
)

// CPU reports the processor model and core topology.
func CPU() (result.CPU, error) {
	infos, err := cpu.Info()
	if err != nil {
		return result.CPU{}, fmt.Errorf("%w: cpu info: %v", ErrUnavailable, err)
	}
	if len(infos) == 0 {
		return result.CPU{}, fmt.Errorf("%w: no cpu reported", ErrUnavailable)
	}

	cores, err := cpu.Counts(false)
	if err != nil {
		return result.CPU{}, fmt.Errorf("%w: physical core count: %v", ErrUnavailable, err)
	}
	threads, err := cpu.Counts(true)
	if err != nil {
		return result.CPU{}, fmt.Errorf("%w: logical core count: %v", ErrUnavailable, err)
	}

	return result.CPU{
		ModelName: infos[0].ModelName,
		Cores:     cores,
		Threads:   threads,
		MHz:       infos[0].Mhz,
	}, nil
}

// Memory reports physical memory capacity and usage.
func Memory() (result.Memory, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return result.Memory{}, fmt.Errorf("%w: virtual memory: %v", ErrUnavailable, err)
	}
	return result.Memory{
		TotalBytes:     vm.Total,
		AvailableBytes: vm.Available,
		UsedBytes:      vm.Used,
		UsedPercent:    vm.UsedPercent,
	}, nil
}

// Disks reports all physical storage volumes, one entry per device.
func Disks() (result.Disks, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, fmt.Errorf("%w: partitions: %v", ErrUnavailable, err)
	}

	disks := result.Disks{}
	for _, p := range parts {
		usage, err := disk.Usage(p.Mountpoint)
		if err != nil {
			// Pseudo filesystems and stale mounts are not worth failing over.
			continue
		}
		disks = append(disks, result.Disk{
			Name:       p.Device,
			Type:       p.Fstype,
			TotalSpace: usage.Total,
			FreeSpace:  usage.Free,
		})
	}
	return dedupDisks(disks), nil
}

// dedupDisks keeps the first entry per device name. A device mounted in
// several places (bind mounts) is still one volume.
func dedupDisks(in result.Disks) result.Disks {
	seen := make(map[string]bool, len(in))
	out := result.Disks{}
	for _, d := range in {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		out = append(out, d)
	}
	return out
}
