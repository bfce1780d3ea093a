// Package gauge turns sampled rates into meter deflections.
package gauge

// Meter channel assignments.
const (
	ChannelCPU  uint8 = 1
	ChannelDisk uint8 = 2
	ChannelNet  uint8 = 3
)

// NumChannels is the number of needles on the display.
const NumChannels = 3

// CPU blends the busiest cores into one deflection. rates[0] is the
// aggregate, the rest are per-core busy percentages sorted largest
// first. The busiest cores are overweighted so a single hot core stays
// visible on many-core machines.
func CPU(rates []float64) float64 {
	nCPU := len(rates) - 1
	if nCPU < 1 {
		return 0
	}
	if nCPU < 2 {
		// one core: rescale 0..100% to 0..255
		return rates[1] * 2.56
	}

	g := (rates[1] + rates[2]) / 2.0
	switch {
	case nCPU >= 6:
		g += (rates[3] + rates[4]) / 2.0
		g += (rates[5] + rates[6]) / 3.0
	case nCPU >= 4:
		g += (rates[3] + rates[4]) * 0.80
	}
	return g
}

// diskFullScale is the combined sector rate that pins the disk needle.
const diskFullScale = 200_000.0

// Disk maps the single busiest device's sector rate. rates is sorted
// largest first; the remaining devices are deliberately ignored rather
// than summed, so the needle tracks the worst offender.
func Disk(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	return 256.0 * rates[0] / diskFullScale
}

// Net maps whichever traffic direction is busier, scaled linearly so
// that maxMbps reaches full deflection.
func Net(rxBps, txBps int64, maxMbps int) float64 {
	rate := rxBps
	if txBps > rate {
		rate = txBps
	}
	return 256.0 * (float64(rate) / 1_000_000.0) / float64(maxMbps)
}
