// Package sysinfo probes host resources for the pre-install sufficiency
// check. Linux only; the node container targets Linux hosts.
package sysinfo

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Recommended minimums for running a node.
const (
	MinRAMGiB  = 16
	MinDiskGiB = 100
)

const meminfoPath = "/proc/meminfo"

// Resources describes the host's memory and free disk space.
type Resources struct {
	RAMGiB  float64
	DiskGiB float64
}

// Sufficient reports whether the host meets the recommended minimums.
func (r Resources) Sufficient() bool {
	return r.RAMGiB >= MinRAMGiB && r.DiskGiB >= MinDiskGiB
}

// Probe reads total RAM and the free disk space of the filesystem containing
// dir.
func Probe(dir string) (Resources, error) {
	ram, err := totalRAMGiB()
	if err != nil {
		return Resources{}, err
	}

	disk, err := freeDiskGiB(dir)
	if err != nil {
		return Resources{}, err
	}

	return Resources{RAMGiB: ram, DiskGiB: disk}, nil
}

func totalRAMGiB() (float64, error) {
	data, err := os.ReadFile(meminfoPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", meminfoPath, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0, fmt.Errorf("unparseable MemTotal line %q: %w", line, err)
		}
		return kb / (1024 * 1024), nil
	}
	return 0, fmt.Errorf("MemTotal not found in %s", meminfoPath)
}

func freeDiskGiB(dir string) (float64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", dir, err)
	}
	return float64(stat.Bavail) * float64(stat.Bsize) / (1 << 30), nil
}
