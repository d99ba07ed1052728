// Package audio reads and writes WAV files for the firlab pipeline.
//
// Input of any supported layout is reduced to a mono signal.Signal by
// averaging channels; output is always mono 16-bit PCM.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/youpy/go-wav"

	"github.com/cwbudde/algo-firlab/dsp/core"
	"github.com/cwbudde/algo-firlab/dsp/signal"
)

const (
	formatPCM     = 1
	outputBits    = 16
	readBlockSize = 4096

	// go-wav reports a zero-length data chunk with this unexported error.
	errDataChunkMissing = "Data chunk is not found"
)

var (
	// ErrUnsupportedFormat is returned for non-PCM data or unusual layouts.
	ErrUnsupportedFormat = errors.New("audio: unsupported WAV format")
	// ErrNoSamples is returned for a WAV file without audio frames.
	ErrNoSamples = errors.New("audio: WAV file contains no samples")
)

// Source is what the WAV decoder needs: sequential and random access.
// *os.File and *bytes.Reader satisfy it.
type Source interface {
	io.Reader
	io.ReaderAt
}

// Format describes the decoded file before downmixing.
type Format struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
}

// ReadWAV decodes integer PCM with one or two channels, averages the
// channels to mono and scales samples to [-1, 1) by bit depth. The native
// sample rate is kept.
func ReadWAV(r Source) (signal.Signal, Format, error) {
	reader := wav.NewReader(r)

	wf, err := reader.Format()
	if err != nil {
		return signal.Signal{}, Format{}, fmt.Errorf("audio: read format: %w", err)
	}
	format := Format{
		Channels:      int(wf.NumChannels),
		SampleRate:    int(wf.SampleRate),
		BitsPerSample: int(wf.BitsPerSample),
	}

	if wf.AudioFormat != formatPCM {
		return signal.Signal{}, format, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, wf.AudioFormat)
	}
	if format.Channels < 1 || format.Channels > 2 {
		return signal.Signal{}, format, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, format.Channels)
	}

	var offset, scale float64
	switch format.BitsPerSample {
	case 8:
		// 8-bit PCM is unsigned.
		offset, scale = 128, 128
	case 16, 24, 32:
		scale = math.Ldexp(1, format.BitsPerSample-1)
	default:
		return signal.Signal{}, format, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, format.BitsPerSample)
	}

	gain := 1 / (scale * float64(format.Channels))
	var mono []float64
	for {
		frames, err := reader.ReadSamples(readBlockSize)
		for _, frame := range frames {
			var sum float64
			for ch := range format.Channels {
				sum += float64(reader.IntValue(frame, uint(ch))) - offset
			}
			mono = append(mono, sum*gain)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if len(mono) == 0 && err.Error() == errDataChunkMissing {
				return signal.Signal{}, format, ErrNoSamples
			}
			return signal.Signal{}, format, fmt.Errorf("audio: read samples: %w", err)
		}
	}

	if len(mono) == 0 {
		return signal.Signal{}, format, ErrNoSamples
	}

	sig, err := signal.New(mono, float64(format.SampleRate))
	if err != nil {
		return signal.Signal{}, format, fmt.Errorf("audio: %w", err)
	}
	return sig, format, nil
}

// ReadWAVFile opens path and decodes it with ReadWAV.
func ReadWAVFile(path string) (signal.Signal, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return signal.Signal{}, Format{}, fmt.Errorf("audio: %w", err)
	}
	defer f.Close()

	return ReadWAV(f)
}

// WriteWAV encodes sig as mono 16-bit PCM at its sample rate. Samples are
// clipped to [-1, 1] first.
func WriteWAV(w io.Writer, sig signal.Signal) error {
	if sig.Len() == 0 {
		return ErrNoSamples
	}
	rate := sig.SampleRate()
	if rate <= 0 || rate > math.MaxUint32 || rate != math.Trunc(rate) {
		return fmt.Errorf("%w: sample rate %g", ErrUnsupportedFormat, rate)
	}

	full := float64(math.MaxInt16)
	frames := make([]wav.Sample, sig.Len())
	for i := range frames {
		v := int(math.Round(core.Clamp(sig.At(i), -1, 1) * full))
		frames[i] = wav.Sample{Values: [2]int{v, v}}
	}

	buf := &bytes.Buffer{}
	writer := wav.NewWriter(buf, uint32(len(frames)), 1, uint32(rate), outputBits)
	if err := writer.WriteSamples(frames); err != nil {
		return fmt.Errorf("audio: write samples: %w", err)
	}
	if _, err := io.Copy(w, buf); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	return nil
}

// WriteWAVFile creates path and writes sig to it with WriteWAV.
func WriteWAVFile(path string, sig signal.Signal) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("audio: %w", cerr)
		}
	}()

	return WriteWAV(f, sig)
}
