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

// cpuTick is the kernel scheduling tick rate (USER_HZ) used to
// interpret idle-time counters.
const cpuTick = 100.0

const procStat = "/proc/stat"

// CPUStats tracks cumulative idle-time counters for the aggregate CPU
// and each logical core. Index 0 is the system-wide total.
type CPUStats struct {
	path     string
	prevTS   time.Time
	prevIdle []int64
}

// NewCPUStats seeds the rate state with one throwaway read of /proc/stat.
func NewCPUStats() (*CPUStats, error) {
	return newCPUStats(procStat)
}

func newCPUStats(path string) (*CPUStats, error) {
	idle, err := readCPUIdle(path)
	if err != nil {
		return nil, err
	}
	return &CPUStats{path: path, prevTS: time.Now(), prevIdle: idle}, nil
}

// NumCPU returns the number of logical cores seen on the last read.
func (c *CPUStats) NumCPU() int {
	return len(c.prevIdle) - 1
}

// Rates returns busy percentages derived from the idle-counter deltas
// since the previous call. Index 0 is the aggregate, normalized by the
// core count; indices 1..N are the individual cores sorted busiest
// first.
func (c *CPUStats) Rates() ([]float64, error) {
	us := float64(time.Since(c.prevTS).Microseconds())
	c.prevTS = time.Now()

	idle, err := readCPUIdle(c.path)
	if err != nil {
		return nil, err
	}
	if len(idle) != len(c.prevIdle) {
		return nil, fmt.Errorf("stats: cpu count changed: %d -> %d",
			len(c.prevIdle)-1, len(idle)-1)
	}

	// 100% busy equals zero idle jiffies over the elapsed wall clock.
	factor := 100.0 * 1_000_000.0 / (us * cpuTick)
	nCPU := float64(len(idle) - 1)

	rates := make([]float64, len(idle))
	for i, cur := range idle {
		div := 1.0
		if i == 0 {
			div = nCPU
		}
		// busy is 100% minus idle
		rates[i] = 100.0 - factor*float64(cur-c.prevIdle[i])/div
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(rates[1:])))
	c.prevIdle = idle
	return rates, nil
}

// readCPUIdle extracts the idle field from every leading "cpu" line of
// /proc/stat. The first non-cpu line ends the table.
func readCPUIdle(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	defer f.Close()

	var idle []int64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || !strings.HasPrefix(fields[0], "cpu") {
			break
		}
		if len(fields) < 5 {
			return nil, fmt.Errorf("stats: malformed cpu line %q in %s", sc.Text(), path)
		}
		n, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stats: parse idle counter in %s: %w", path, err)
		}
		idle = append(idle, n)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("stats: read %s: %w", path, err)
	}
	if len(idle) == 0 {
		return nil, fmt.Errorf("stats: no cpu lines in %s", path)
	}
	return idle, nil
}
