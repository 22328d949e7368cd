package wavio

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeHeaderLayout(t *testing.T) {
	var buf bytes.Buffer
	samples := []float64{0, 0.5, -0.5, 1}
	if err := Encode(&buf, samples, 2, 48000); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	b := buf.Bytes()
	if len(b) != 44+len(samples)*2 {
		t.Fatalf("file size = %d, want %d", len(b), 44+len(samples)*2)
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if string(b[12:16]) != "fmt " || string(b[36:40]) != "data" {
		t.Error("missing fmt/data chunks")
	}

	if got := binary.LittleEndian.Uint16(b[20:22]); got != 1 {
		t.Errorf("format = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(b[22:24]); got != 2 {
		t.Errorf("channels = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(b[24:28]); got != 48000 {
		t.Errorf("sample rate = %d, want 48000", got)
	}
	if got := binary.LittleEndian.Uint16(b[34:36]); got != 16 {
		t.Errorf("bits = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(b[40:44]); got != uint32(len(samples)*2) {
		t.Errorf("data size = %d, want %d", got, len(samples)*2)
	}
}

func TestQuantization(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{2.5, 32767},   // clamped
		{-2.5, -32767}, // clamped
		{0.5, 16384},
		{math.NaN(), 0},
		{math.Inf(1), 32767},
	}
	for _, tt := range tests {
		if got := quantize16(tt.in); got != tt.want {
			t.Errorf("quantize16(%g) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEncodeValidation(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, []float64{0}, 0, 48000); err == nil {
		t.Error("expected error for zero channels")
	}
	if err := Encode(&buf, []float64{0}, 1, 0); err == nil {
		t.Error("expected error for zero sample rate")
	}
	if err := Encode(&buf, []float64{0, 0, 0}, 2, 48000); err == nil {
		t.Error("expected error for odd sample count")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	samples := make([]float64, 256)
	for i := range samples {
		samples[i] = 0.25 * math.Sin(2*math.Pi*float64(i)/64)
	}
	if err := WriteFile(path, samples, 1, 44100); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != 44+256*2 {
		t.Errorf("file size = %d, want %d", info.Size(), 44+256*2)
	}
}
