package meter

import "fmt"

// Command frame layout: two fixed prefix bytes, a channel selector and
// the value. The display acknowledges nothing; the link is
// fire-and-forget.
const (
	framePrefix1 byte = 0xFD
	framePrefix2 byte = 0x02

	// channelBase offsets the channel id into the selector byte.
	channelBase byte = 0x30

	// MaxChannels keeps the selector byte within 0x30..0xFF.
	MaxChannels = 192
)

// FrameSize is the fixed command frame length in bytes.
const FrameSize = 4

// encodeFrame packs one channel update into a command frame.
func encodeFrame(channel uint8, value uint8) ([FrameSize]byte, error) {
	if int(channel) >= MaxChannels {
		return [FrameSize]byte{}, fmt.Errorf(
			"meter: channel %d too large (maximum %d)", channel, MaxChannels-1)
	}
	return [FrameSize]byte{framePrefix1, framePrefix2, channelBase + channel, value}, nil
}
