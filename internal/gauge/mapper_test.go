package gauge

import (
	"math"
	"testing"
)

func almost(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCPUTwoCores(t *testing.T) {
	// aggregate first, then cores sorted busiest first
	almost(t, CPU([]float64{50, 60, 40}), 50)
}

func TestCPUSingleCore(t *testing.T) {
	almost(t, CPU([]float64{50, 50}), 128)
}

func TestCPUFourCores(t *testing.T) {
	rates := []float64{40, 80, 60, 40, 20}
	almost(t, CPU(rates), (80+60)/2.0+(40+20)*0.80)
}

func TestCPUSixCores(t *testing.T) {
	rates := []float64{30, 90, 70, 50, 40, 30, 20}
	almost(t, CPU(rates), (90+70)/2.0+(50+40)/2.0+(30+20)/3.0)
}

func TestCPUHotCoreVisible(t *testing.T) {
	// one pinned core among eight idle ones still deflects the needle
	rates := []float64{12.5, 100, 0, 0, 0, 0, 0, 0, 0}
	if g := CPU(rates); g < 49 {
		t.Fatalf("hot core gauge too small: %v", g)
	}
}

func TestCPUNoCores(t *testing.T) {
	almost(t, CPU([]float64{0}), 0)
	almost(t, CPU(nil), 0)
}

func TestDiskUsesBusiestOnly(t *testing.T) {
	// the busiest device alone drives the needle, the rest are not summed
	almost(t, Disk([]float64{4000, 1000}), 256.0*4000/200000)
}

func TestDiskEmpty(t *testing.T) {
	almost(t, Disk(nil), 0)
}

func TestNetBusierDirectionWins(t *testing.T) {
	almost(t, Net(2_000_000, 500_000, 100), 256.0*(2.0/100.0))
	almost(t, Net(500_000, 2_000_000, 100), 256.0*(2.0/100.0))
}

func TestNetIdle(t *testing.T) {
	almost(t, Net(0, 0, 100), 0)
}
