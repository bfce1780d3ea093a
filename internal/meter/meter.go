// Package meter drives a multi-channel analog display over a serial
// link.
package meter

import (
	"fmt"
	"io"
	"time"

	"github.com/goburrow/serial"
)

// helloStepDelay paces the startup sweep so the needles visibly travel.
const helloStepDelay = 3 * time.Millisecond

// Meter writes channel updates to a write-only byte sink.
type Meter struct {
	w         io.Writer
	closer    io.Closer
	stepDelay time.Duration
}

// Open opens the serial device and returns a connected Meter. The link
// runs at 115200 8N1 without flow control.
func Open(device string) (*Meter, error) {
	port, err := serial.Open(&serial.Config{
		Address:  device,
		BaudRate: 115200,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
	})
	if err != nil {
		return nil, fmt.Errorf("meter: open %s: %w", device, err)
	}
	m := New(port)
	m.closer = port
	return m, nil
}

// New wraps an already-open byte sink.
func New(w io.Writer) *Meter {
	return &Meter{w: w, stepDelay: helloStepDelay}
}

// Close closes the underlying device, if the Meter owns one.
func (m *Meter) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer.Close()
}

// Set writes one channel update. A short write or I/O error is fatal to
// the caller; nothing is retried.
func (m *Meter) Set(channel uint8, value uint8) error {
	frame, err := encodeFrame(channel, value)
	if err != nil {
		return err
	}
	n, err := m.w.Write(frame[:])
	if err != nil {
		return fmt.Errorf("meter: write channel %d: %w", channel, err)
	}
	if n != len(frame) {
		return fmt.Errorf("meter: short write: %d of %d bytes", n, len(frame))
	}
	return nil
}

// Hello sweeps every channel through a triangular pattern so a human
// can confirm the display is alive before sampling starts.
func (m *Meter) Hello(channels int) error {
	for _, v := range helloSweep() {
		for c := 1; c <= channels; c++ {
			if err := m.Set(uint8(c), v); err != nil {
				return err
			}
		}
		time.Sleep(m.stepDelay)
	}
	return nil
}

// helloSweep is the 0..255, 255..128, 128..255, 255..0 value sequence.
func helloSweep() []uint8 {
	seq := make([]uint8, 0, 768)
	for i := 0; i <= 255; i++ {
		seq = append(seq, uint8(i))
	}
	for i := 255; i >= 128; i-- {
		seq = append(seq, uint8(i))
	}
	for i := 128; i <= 255; i++ {
		seq = append(seq, uint8(i))
	}
	for i := 255; i >= 0; i-- {
		seq = append(seq, uint8(i))
	}
	return seq
}
