package stats

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const procDiskstats = "/proc/diskstats"

// DiskStats tracks cumulative sectors-read/sectors-written counters per
// matched block device.
type DiskStats struct {
	path   string
	prevTS time.Time
	prev   map[string]diskCounters
}

type diskCounters struct {
	sectorsRead    int64
	sectorsWritten int64
}

// NewDiskStats seeds the rate state with one throwaway read of
// /proc/diskstats.
func NewDiskStats() (*DiskStats, error) {
	return newDiskStats(procDiskstats)
}

func newDiskStats(path string) (*DiskStats, error) {
	prev, err := readDiskstats(path)
	if err != nil {
		return nil, err
	}
	return &DiskStats{path: path, prevTS: time.Now(), prev: prev}, nil
}

// Rates returns per-device combined read+write sector rates since the
// previous call, sorted largest first. A device absent from the
// previous sample has no baseline to diff against and is skipped for
// this round.
func (d *DiskStats) Rates() ([]float64, error) {
	us := float64(time.Since(d.prevTS).Microseconds())
	d.prevTS = time.Now()

	stats, err := readDiskstats(d.path)
	if err != nil {
		return nil, err
	}

	rates := make([]float64, 0, len(stats))
	for name, cur := range stats {
		prev, ok := d.prev[name]
		if !ok {
			continue
		}
		sectors := (cur.sectorsRead - prev.sectorsRead) +
			(cur.sectorsWritten - prev.sectorsWritten)
		rates = append(rates, float64(sectors)*1_000_000.0/us)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(rates)))
	d.prev = stats
	return rates, nil
}

// wantDevice matches whole disks named sdX or nvmeXnY, leaving out
// partitions, loop devices and the like.
func wantDevice(name string) bool {
	return strings.HasPrefix(name, "sd") && len(name) == 3 ||
		strings.HasPrefix(name, "nvme") && len(name) == 7
}

// readDiskstats collects sector counters per interesting device.
// Field layout per Documentation/ABI/testing/procfs-diskstats: field 3
// is the device name, fields 6 and 10 are sectors read and written.
func readDiskstats(path string) (map[string]diskCounters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	defer f.Close()

	stats := make(map[string]diskCounters, 32)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("stats: malformed diskstats line %q in %s", sc.Text(), path)
		}
		name := fields[2]
		if !wantDevice(name) {
			continue
		}
		if len(fields) < 10 {
			return nil, fmt.Errorf("stats: malformed diskstats line %q in %s", sc.Text(), path)
		}
		rd, err := strconv.ParseInt(fields[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stats: parse sectors-read for %s: %w", name, err)
		}
		wr, err := strconv.ParseInt(fields[9], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stats: parse sectors-written for %s: %w", name, err)
		}
		stats[name] = diskCounters{sectorsRead: rd, sectorsWritten: wr}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("stats: read %s: %w", path, err)
	}
	return stats, nil
}
