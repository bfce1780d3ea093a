package stats

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Direction selects which cumulative byte counter of an interface is
// tracked.
type Direction string

const (
	Rx Direction = "rx_bytes"
	Tx Direction = "tx_bytes"
)

// IfStats tracks one direction of one network interface.
type IfStats struct {
	iface   string
	dir     Direction
	path    string
	prevTS  time.Time
	prevCnt int64
}

// NewIfStats seeds the rate state with one throwaway read of the
// interface's sysfs byte counter.
func NewIfStats(iface string, dir Direction) (*IfStats, error) {
	path := fmt.Sprintf("/sys/class/net/%s/statistics/%s", iface, dir)
	return newIfStats(iface, dir, path)
}

func newIfStats(iface string, dir Direction, path string) (*IfStats, error) {
	cnt, err := readCounter(path)
	if err != nil {
		return nil, err
	}
	return &IfStats{
		iface:   iface,
		dir:     dir,
		path:    path,
		prevTS:  time.Now(),
		prevCnt: cnt,
	}, nil
}

// BitRate returns the average bit rate since the previous call.
func (s *IfStats) BitRate() (int64, error) {
	us := float64(time.Since(s.prevTS).Microseconds())
	s.prevTS = time.Now()

	cnt, err := readCounter(s.path)
	if err != nil {
		return 0, err
	}
	rate := int64(float64(8*(cnt-s.prevCnt)) / (us / 1_000_000.0))
	s.prevCnt = cnt
	return rate, nil
}

// readCounter reads a single cumulative integer from a sysfs statistics
// file.
func readCounter(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("stats: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, fmt.Errorf("stats: read %s: %w", path, err)
		}
		return 0, fmt.Errorf("stats: %s is empty", path)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(sc.Text()), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stats: parse %s: %w", path, err)
	}
	return n, nil
}
