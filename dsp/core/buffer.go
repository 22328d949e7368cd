package core

import "fmt"

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}

// Interleave writes planar channel data into dst as frame-interleaved samples.
// dst must hold frames*len(chans) values; each channel must hold at least frames.
func Interleave(dst []float64, chans [][]float64, frames int) error {
	channels := len(chans)
	if channels == 0 {
		return fmt.Errorf("interleave requires at least one channel")
	}
	if len(dst) < frames*channels {
		return fmt.Errorf("interleave dst too short: %d < %d", len(dst), frames*channels)
	}
	for c, ch := range chans {
		if len(ch) < frames {
			return fmt.Errorf("interleave channel %d too short: %d < %d", c, len(ch), frames)
		}
		for i := 0; i < frames; i++ {
			dst[i*channels+c] = ch[i]
		}
	}
	return nil
}

// Deinterleave splits frame-interleaved samples from src into planar channel slices.
// src must hold frames*len(chans) values; each channel must hold at least frames.
func Deinterleave(chans [][]float64, src []float64, frames int) error {
	channels := len(chans)
	if channels == 0 {
		return fmt.Errorf("deinterleave requires at least one channel")
	}
	if len(src) < frames*channels {
		return fmt.Errorf("deinterleave src too short: %d < %d", len(src), frames*channels)
	}
	for c, ch := range chans {
		if len(ch) < frames {
			return fmt.Errorf("deinterleave channel %d too short: %d < %d", c, len(ch), frames)
		}
		for i := 0; i < frames; i++ {
			ch[i] = src[i*channels+c]
		}
	}
	return nil
}

// Channel extracts one channel from frame-interleaved samples into a new slice.
func Channel(src []float64, channels, channel int) ([]float64, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("channel count must be > 0: %d", channels)
	}
	if channel < 0 || channel >= channels {
		return nil, fmt.Errorf("channel index out of range: %d of %d", channel, channels)
	}
	frames := len(src) / channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		out[i] = src[i*channels+channel]
	}
	return out, nil
}
