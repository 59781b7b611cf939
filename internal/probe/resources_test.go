package probe

import (
	"testing"

	"github.com/luckyjian/my/internal/result"
)

func TestDedupDisks(t *testing.T) {
	in := result.Disks{
		{Name: "/dev/sda1", Type: "ext4", TotalSpace: 100, FreeSpace: 40},
		{Name: "/dev/sdb1", Type: "xfs", TotalSpace: 200, FreeSpace: 10},
		{Name: "/dev/sda1", Type: "ext4", TotalSpace: 100, FreeSpace: 40},
	}
	out := dedupDisks(in)
	if len(out) != 2 {
		t.Fatalf("dedupDisks kept %d entries, want 2", len(out))
	}
	if out[0].Name != "/dev/sda1" || out[1].Name != "/dev/sdb1" {
		t.Errorf("dedupDisks order changed: %v", out)
	}
}
