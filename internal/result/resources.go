package result

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/luckyjian/my/internal/format"
)

// CPU is the "cpu" result.
type CPU struct {
	ModelName string  `json:"model_name" yaml:"model_name"`
	Cores     int     `json:"cores"      yaml:"cores"`
	Threads   int     `json:"threads"    yaml:"threads"`
	MHz       float64 `json:"mhz"        yaml:"mhz"`
}

func (c CPU) Tag() string  { return "cpu" }
func (c CPU) Payload() any { return c }

func (c CPU) text(w io.Writer) {
	fmt.Fprintln(w, color.New(color.Bold).Sprint(c.ModelName))
	fmt.Fprintf(w, "%d cores, %d threads @ %.0f MHz\n", c.Cores, c.Threads, c.MHz)
}

// Memory is the "ram" result. Structured output keeps raw byte counts; the
// human scaling happens only in text rendering.
type Memory struct {
	TotalBytes     uint64  `json:"total_bytes"     yaml:"total_bytes"`
	AvailableBytes uint64  `json:"available_bytes" yaml:"available_bytes"`
	UsedBytes      uint64  `json:"used_bytes"      yaml:"used_bytes"`
	UsedPercent    float64 `json:"used_percent"    yaml:"used_percent"`
}

func (m Memory) Tag() string  { return "ram" }
func (m Memory) Payload() any { return m }

func (m Memory) text(w io.Writer) {
	free := format.FromRatio(m.AvailableBytes, m.TotalBytes)
	avail := colorByFree(free, format.HumanSize(m.AvailableBytes))
	fmt.Fprintf(w, "%s total, %s available, %s used (%.1f%% used)\n",
		format.HumanSize(m.TotalBytes), avail, format.HumanSize(m.UsedBytes), m.UsedPercent)
}

// Disk is one storage volume.
type Disk struct {
	Name       string `json:"name"              yaml:"name"`
	Type       string `json:"type"              yaml:"type"`
	TotalSpace uint64 `json:"total_space_bytes" yaml:"total_space_bytes"`
	FreeSpace  uint64 `json:"free_space_bytes"  yaml:"free_space_bytes"`
}

// Disks is the "storage" result.
type Disks []Disk

func (d Disks) Tag() string { return "storage" }

func (d Disks) Payload() any {
	if d == nil {
		return []Disk{}
	}
	return []Disk(d)
}

func (d Disks) text(w io.Writer) {
	for _, disk := range d {
		free := format.FromRatio(disk.FreeSpace, disk.TotalSpace)
		fmt.Fprintf(w, "%s, %s, %s free of %s (%s%% free)\n",
			color.New(color.FgCyan, color.Bold).Sprint(disk.Name),
			color.New(color.FgHiWhite).Sprint(disk.Type),
			colorByFree(free, format.HumanSize(disk.FreeSpace)),
			format.HumanSize(disk.TotalSpace),
			colorByFree(free, free.String()))
	}
}

// colorByFree styles a figure by how much space is left: under 10% free is
// red, under 20% yellow, anything above green.
func colorByFree(free format.Percentage, s string) string {
	switch {
	case free.Tenths < 100:
		return color.RedString(s)
	case free.Tenths < 200:
		return color.YellowString(s)
	default:
		return color.GreenString(s)
	}
}
