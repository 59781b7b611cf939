package probe

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/luckyjian/my/internal/result"
)

const machineInfoPath = "/etc/machine-info"

// Hostname reports the system hostname.
func Hostname() (result.Named, error) {
	info, err := host.Info()
	if err != nil {
		return result.Named{}, fmt.Errorf("%w: host info: %v", ErrUnavailable, err)
	}
	return result.Hostname(info.Hostname), nil
}

// Username reports the name of the invoking user.
func Username() (result.Named, error) {
	u, err := user.Current()
	if err != nil {
		return result.Named{}, fmt.Errorf("%w: current user: %v", ErrUnavailable, err)
	}
	return result.Username(u.Username), nil
}

// DeviceName reports the machine's pretty name when one is configured,
// falling back to the plain hostname.
func DeviceName() (result.Named, error) {
	info, err := host.Info()
	if err != nil {
		return result.Named{}, fmt.Errorf("%w: host info: %v", ErrUnavailable, err)
	}
	return result.DeviceName(deviceNameFrom(machineInfoPath, info.Hostname)), nil
}

// deviceNameFrom reads PRETTY_HOSTNAME from a machine-info file, returning
// fallback when the file or the key is absent.
func deviceNameFrom(path, fallback string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		v, ok := strings.CutPrefix(line, "PRETTY_HOSTNAME=")
		if !ok {
			continue
		}
		if v = strings.Trim(v, `"`); v != "" {
			return v
		}
	}
	return fallback
}

// OSLabel reports the operating system as a single label, preferring the
// distribution name and version over the bare kernel name.
func OSLabel() (result.Named, error) {
	info, err := host.Info()
	if err != nil {
		return result.Named{}, fmt.Errorf("%w: host info: %v", ErrUnavailable, err)
	}
	label := info.Platform
	if label == "" {
		label = info.OS
	}
	if info.PlatformVersion != "" {
		label += " " + info.PlatformVersion
	}
	return result.OS(label), nil
}

// Architecture reports the CPU architecture as the kernel names it.
func Architecture() (result.Named, error) {
	info, err := host.Info()
	if err != nil {
		return result.Named{}, fmt.Errorf("%w: host info: %v", ErrUnavailable, err)
	}
	arch := info.KernelArch
	if arch == "" {
		arch = runtime.GOARCH
	}
	return result.Architecture(arch), nil
}
