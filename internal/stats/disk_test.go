package stats

import (
	"math"
	"path/filepath"
	"testing"
	"time"
)

const diskstatsBefore = `   8       0 sda 5000 10 100000 4000 3000 20 50000 2500 0 3500 6500 0 0 0 0
   8       1 sda1 4000 5 90000 3500 2500 15 45000 2000 0 3000 5500 0 0 0 0
 259       0 nvme0n1 9000 50 400000 1200 7000 80 300000 900 0 1800 2100 0 0 0 0
   7       0 loop0 100 0 800 10 0 0 0 0 0 10 10 0 0 0 0
`

const diskstatsAfter = `   8       0 sda 5100 10 100500 4050 3100 25 50250 2550 0 3550 6600 0 0 0 0
   8       1 sda1 4100 5 90400 3550 2600 20 45200 2050 0 3050 5600 0 0 0 0
 259       0 nvme0n1 9100 55 402000 1250 7100 85 301000 950 0 1850 2200 0 0 0 0
   7       0 loop0 110 0 880 11 0 0 0 0 0 11 11 0 0 0 0
`

func TestReadDiskstatsFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diskstats")
	writeFile(t, path, diskstatsBefore)

	stats, err := readDiskstats(path)
	if err != nil {
		t.Fatalf("readDiskstats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 devices, got %d: %v", len(stats), stats)
	}
	sda, ok := stats["sda"]
	if !ok {
		t.Fatalf("sda missing from %v", stats)
	}
	if sda.sectorsRead != 100000 || sda.sectorsWritten != 50000 {
		t.Fatalf("sda counters: got %+v", sda)
	}
	if _, ok := stats["sda1"]; ok {
		t.Fatalf("partition sda1 should be filtered out")
	}
	if _, ok := stats["loop0"]; ok {
		t.Fatalf("loop0 should be filtered out")
	}
}

func TestDiskRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diskstats")
	writeFile(t, path, diskstatsBefore)

	d, err := newDiskStats(path)
	if err != nil {
		t.Fatalf("newDiskStats: %v", err)
	}

	writeFile(t, path, diskstatsAfter)
	d.prevTS = time.Now().Add(-time.Second)

	rates, err := d.Rates()
	if err != nil {
		t.Fatalf("Rates: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("expected 2 rates, got %d", len(rates))
	}

	// nvme0n1 moved 2000+1000 sectors, sda 500+250, over one second.
	if math.Abs(rates[0]-3000) > 30 {
		t.Fatalf("rates[0]: got %.1f, want ~3000", rates[0])
	}
	if math.Abs(rates[1]-750) > 10 {
		t.Fatalf("rates[1]: got %.1f, want ~750", rates[1])
	}
	if rates[0] < rates[1] {
		t.Fatalf("rates not sorted descending: %v", rates)
	}
}

func TestDiskRatesSkipsNewDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diskstats")
	writeFile(t, path, diskstatsBefore)

	d, err := newDiskStats(path)
	if err != nil {
		t.Fatalf("newDiskStats: %v", err)
	}

	// sdb appears only in the second sample; it must not produce a rate.
	writeFile(t, path, diskstatsAfter+
		"   8      16 sdb 1 0 999999 1 1 0 999999 1 0 1 1 0 0 0 0\n")
	d.prevTS = time.Now().Add(-time.Second)

	rates, err := d.Rates()
	if err != nil {
		t.Fatalf("Rates: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("expected 2 rates (sdb skipped), got %d: %v", len(rates), rates)
	}
	for _, r := range rates {
		if r > 100000 {
			t.Fatalf("spurious huge delta from new device: %v", rates)
		}
	}

	// Third round: sdb now has a baseline and contributes.
	writeFile(t, path, diskstatsAfter+
		"   8      16 sdb 2 0 1000100 2 2 0 1000100 2 0 2 2 0 0 0 0\n")
	d.prevTS = time.Now().Add(-time.Second)

	rates, err = d.Rates()
	if err != nil {
		t.Fatalf("Rates: %v", err)
	}
	if len(rates) != 3 {
		t.Fatalf("expected 3 rates, got %d: %v", len(rates), rates)
	}
}

func TestReadDiskstatsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diskstats")
	writeFile(t, path, "   8       0 sda 5000 10\n")

	if _, err := readDiskstats(path); err == nil {
		t.Fatalf("expected error for short line, got nil")
	}
}

func TestWantDevice(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"sda", true},
		{"sdz", true},
		{"sda1", false},
		{"sd", false},
		{"nvme0n1", true},
		{"nvme0n1p1", false},
		{"loop0", false},
		{"dm-0", false},
	}
	for _, c := range cases {
		if got := wantDevice(c.name); got != c.want {
			t.Fatalf("wantDevice(%q): got %v, want %v", c.name, got, c.want)
		}
	}
}
