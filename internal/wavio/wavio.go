// Package wavio writes rendered buffers as RIFF/WAVE files for human
// inspection. The output is 16-bit PCM; it is never part of a pass/fail
// decision.
package wavio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	bitsPerSample = 16
	pcmFormat     = 1
)

// Encode writes interleaved float64 samples as a 16-bit PCM WAVE stream.
// Samples are clamped to [-1, 1] before quantization.
func Encode(w io.Writer, samples []float64, channels, sampleRate int) error {
	if channels <= 0 {
		return fmt.Errorf("wav channel count must be > 0: %d", channels)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("wav sample rate must be > 0: %d", sampleRate)
	}
	if len(samples)%channels != 0 {
		return fmt.Errorf("wav sample count %d not divisible by %d channels", len(samples), channels)
	}

	dataSize := len(samples) * bitsPerSample / 8
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	var header []any
	header = append(header,
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(36+dataSize),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(pcmFormat),
		uint16(channels),
		uint32(sampleRate),
		uint32(byteRate),
		uint16(blockAlign),
		uint16(bitsPerSample),
		[4]byte{'d', 'a', 't', 'a'},
		uint32(dataSize),
	)
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("wav header: %w", err)
		}
	}

	buf := make([]byte, 2)
	for _, s := range samples {
		binary.LittleEndian.PutUint16(buf, uint16(quantize16(s)))
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("wav data: %w", err)
		}
	}
	return nil
}

// WriteFile writes interleaved samples to a WAVE file at path.
func WriteFile(path string, samples []float64, channels, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav create: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Encode(w, samples, channels, sampleRate); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("wav flush: %w", err)
	}
	return f.Close()
}

// quantize16 converts one sample to a signed 16-bit PCM value. Non-finite
// samples were already counted by the metrics engine; here they quantize
// to silence so the file stays readable.
func quantize16(s float64) int16 {
	if math.IsNaN(s) {
		return 0
	}
	if s > 1 {
		s = 1
	}
	if s < -1 {
		s = -1
	}
	return int16(math.Round(s * 32767))
}
