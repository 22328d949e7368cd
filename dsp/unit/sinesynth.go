package unit

import (
	"fmt"
	"math"
)

const (
	sineSynthMaxVoices    = 16
	defaultSineSynthLevel = 0.25
)

type sineVoice struct {
	note  int
	phase float64
	step  float64
	amp   float64
}

// SineSynth is a minimal polyphonic instrument: one free-running sine
// oscillator per held note, no envelope. Oscillator phase persists across
// blocks, which makes the synth a direct probe for block-edge continuity.
type SineSynth struct {
	sampleRate float64
	level      float64
	voices     []sineVoice
}

// NewSineSynth creates a sine synth with the default master level.
func NewSineSynth() *SineSynth {
	return &SineSynth{level: defaultSineSynthLevel}
}

// Prepare implements [Instrument].
func (s *SineSynth) Prepare(sampleRate float64, blockSize int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sinesynth sample rate must be > 0: %g", sampleRate)
	}
	if blockSize <= 0 {
		return fmt.Errorf("sinesynth block size must be > 0: %d", blockSize)
	}
	s.sampleRate = sampleRate
	return nil
}

// Reset drops all voices and restores the default level.
func (s *SineSynth) Reset() {
	s.voices = s.voices[:0]
	s.level = defaultSineSynthLevel
}

// SetParameter implements [Instrument]. The only parameter is "level",
// the master amplitude in [0, 1].
func (s *SineSynth) SetParameter(name string, value float64) error {
	if name != "level" {
		return fmt.Errorf("sinesynth has no parameter %q", name)
	}
	if value < 0 || value > 1 || math.IsNaN(value) {
		return fmt.Errorf("sinesynth level must be in [0, 1]: %g", value)
	}
	s.level = value
	return nil
}

// NoteOn starts a voice at the equal-tempered frequency of the MIDI note.
// Retriggering a held note restarts its phase.
func (s *SineSynth) NoteOn(note, velocity int) {
	if s.sampleRate <= 0 || velocity <= 0 {
		return
	}

	freq := 440 * math.Pow(2, float64(note-69)/12)
	v := sineVoice{
		note: note,
		step: 2 * math.Pi * freq / s.sampleRate,
		amp:  float64(velocity) / 127,
	}

	for i := range s.voices {
		if s.voices[i].note == note {
			s.voices[i] = v
			return
		}
	}
	if len(s.voices) < sineSynthMaxVoices {
		s.voices = append(s.voices, v)
	}
}

// NoteOff stops the voice for the given note.
func (s *SineSynth) NoteOff(note int) {
	for i := range s.voices {
		if s.voices[i].note == note {
			s.voices = append(s.voices[:i], s.voices[i+1:]...)
			return
		}
	}
}

// Panic stops all voices immediately.
func (s *SineSynth) Panic() {
	s.voices = s.voices[:0]
}

// Process adds the running oscillators into every channel.
func (s *SineSynth) Process(buffers [][]float64, frames int) {
	for v := range s.voices {
		voice := &s.voices[v]
		phase := voice.phase
		gain := s.level * voice.amp

		for i := 0; i < frames; i++ {
			x := gain * math.Sin(phase)
			phase += voice.step
			if phase >= 2*math.Pi {
				phase -= 2 * math.Pi
			}
			for _, ch := range buffers {
				ch[i] += x
			}
		}
		voice.phase = phase
	}
}

// Name implements [Instrument].
func (s *SineSynth) Name() string { return "sinesynth" }

// Version implements [Instrument].
func (s *SineSynth) Version() string { return "1.0.0" }

// ActiveVoices implements [Instrument].
func (s *SineSynth) ActiveVoices() int { return len(s.voices) }
