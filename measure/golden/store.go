package golden

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// File layout, little endian:
//
//	magic   [4]byte "AVGF"
//	version uint32
//	rate    float64
//	chans   uint32
//	frames  uint32
//	tol     3 x float64 (maxAbsDiff, rmsDiff, minSNRdB)
//	samples frames*chans x float64, interleaved
var fileMagic = [4]byte{'A', 'V', 'G', 'F'}

const fileVersion = 1

// WriteFile persists the reference to path, overwriting any existing file.
func (r Reference) WriteFile(path string) error {
	if r.Channels <= 0 {
		return fmt.Errorf("golden write: channel count must be > 0: %d", r.Channels)
	}
	if len(r.Samples)%r.Channels != 0 {
		return fmt.Errorf("golden write: sample count %d not divisible by %d channels", len(r.Samples), r.Channels)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("golden write: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := r.writeTo(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("golden write: %w", err)
	}
	return f.Close()
}

func (r Reference) writeTo(w io.Writer) error {
	if _, err := w.Write(fileMagic[:]); err != nil {
		return fmt.Errorf("golden write: %w", err)
	}

	header := []any{
		uint32(fileVersion),
		r.SampleRate,
		uint32(r.Channels),
		uint32(r.Frames()),
		r.Tol.MaxAbsDiff,
		r.Tol.RMSDiff,
		r.Tol.MinSNRdB,
	}
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("golden write header: %w", err)
		}
	}

	buf := make([]byte, 8)
	for _, s := range r.Samples {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(s))
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("golden write samples: %w", err)
		}
	}
	return nil
}

// LoadFile reads a reference previously written with WriteFile.
func LoadFile(path string) (Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return Reference{}, fmt.Errorf("golden load: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return Reference{}, fmt.Errorf("golden load magic: %w", err)
	}
	if magic != fileMagic {
		return Reference{}, fmt.Errorf("golden load: not a golden file: %q", magic[:])
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return Reference{}, fmt.Errorf("golden load version: %w", err)
	}
	if version != fileVersion {
		return Reference{}, fmt.Errorf("golden load: unsupported version %d", version)
	}

	var (
		rate   float64
		chans  uint32
		frames uint32
		tol    Tolerances
	)
	for _, dst := range []any{&rate, &chans, &frames, &tol.MaxAbsDiff, &tol.RMSDiff, &tol.MinSNRdB} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
			return Reference{}, fmt.Errorf("golden load header: %w", err)
		}
	}
	if chans == 0 {
		return Reference{}, fmt.Errorf("golden load: zero channel count")
	}

	total := int(frames) * int(chans)
	samples := make([]float64, total)
	buf := make([]byte, 8)
	for i := range samples {
		if _, err := io.ReadFull(r, buf); err != nil {
			return Reference{}, fmt.Errorf("golden load sample %d: %w", i, err)
		}
		samples[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf))
	}

	return Reference{
		Samples:    samples,
		Channels:   int(chans),
		SampleRate: rate,
		Tol:        tol,
	}, nil
}
