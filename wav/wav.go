// Package wav is the external collaborator described in SPEC_FULL.md §4.8:
// bit-exact reading and writing of canonical RIFF/WAVE PCM16 mono 8kHz
// files. It has no knowledge of the segment graph in package track; it
// only moves flat []int16 sample slices in and out of files.
package wav

/*------------------------------------------------------------------
 *
 * Purpose:	Read and write fixed-format WAV files: 16-bit signed
 *		little-endian PCM, one channel, 8000 Hz.
 *
 * Description:	Grounded on original_source/wav_utils.c for the exact
 *		header layout, and on the teacher's
 *		cmd/samoyed-appserver/agwlib.go for the idiom of decoding a
 *		fixed binary header into a Go struct with encoding/binary
 *		rather than field-by-field byte arithmetic. Unlike the
 *		original, a malformed or unreadable file is reported as an
 *		error rather than silently producing nothing.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mdunlap/soundseg/internal/soundlog"
)

const (
	sampleRate    = 8000
	numChannels   = 1
	bitsPerSample = 16
	audioFormatPCM = 1
)

// SampleRate is the fixed sample rate this package reads and writes: 8kHz,
// per SPEC_FULL.md §6. Exported for callers (such as the playback command)
// that need it without duplicating the constant.
func SampleRate() int {
	return sampleRate
}

// riffHeader is the fixed 12-byte RIFF/WAVE preamble.
type riffHeader struct {
	ChunkID   [4]byte
	ChunkSize uint32
	Format    [4]byte
}

// fmtChunk is the 16-byte body of a canonical "fmt " chunk.
type fmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// fileHeader is the complete 44-byte header this package always emits:
// RIFF/WAVE + a 16-byte "fmt " chunk + the "data" chunk tag and size.
type fileHeader struct {
	RIFF          [4]byte
	ChunkSize     uint32
	WAVE          [4]byte
	FmtID         [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataID        [4]byte
	DataSize      uint32
}

// ReadFile loads path and returns its PCM16 samples.
func ReadFile(path string) ([]int16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read scans r for a canonical RIFF/WAVE PCM16/mono/8kHz "data" chunk,
// skipping any other chunks it encounters along the way (mirroring the
// original's fseek-past-unknown-chunk loop), and returns its samples.
func Read(r io.Reader) ([]int16, error) {
	var riff riffHeader
	if err := binary.Read(r, binary.LittleEndian, &riff); err != nil {
		return nil, fmt.Errorf("wav: reading RIFF header: %w", err)
	}
	if string(riff.ChunkID[:]) != "RIFF" || string(riff.Format[:]) != "WAVE" {
		return nil, errors.New("wav: not a RIFF/WAVE file")
	}

	var haveFmt bool
	var fc fmtChunk

	for {
		var chunkID [4]byte
		var chunkSize uint32
		if err := binary.Read(r, binary.LittleEndian, &chunkID); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("wav: no data chunk found")
			}
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &chunkSize); err != nil {
			return nil, err
		}

		switch string(chunkID[:]) {
		case "fmt ":
			if err := binary.Read(r, binary.LittleEndian, &fc); err != nil {
				return nil, fmt.Errorf("wav: reading fmt chunk: %w", err)
			}
			haveFmt = true
			if extra := int64(chunkSize) - 16; extra > 0 {
				if _, err := io.CopyN(io.Discard, r, extra); err != nil {
					return nil, err
				}
			}

		case "data":
			if !haveFmt {
				return nil, errors.New("wav: data chunk precedes fmt chunk")
			}
			if err := validateFormat(fc); err != nil {
				return nil, err
			}
			n := int(chunkSize) / 2
			samples := make([]int16, n)
			if err := binary.Read(r, binary.LittleEndian, samples); err != nil {
				return nil, fmt.Errorf("wav: reading %d samples: %w", n, err)
			}
			return samples, nil

		default:
			soundlog.Warnf("wav: skipping unrecognized chunk %q (%d bytes)", chunkID, chunkSize)
			if _, err := io.CopyN(io.Discard, r, int64(chunkSize)); err != nil {
				return nil, err
			}
		}
	}
}

func validateFormat(fc fmtChunk) error {
	if fc.AudioFormat != audioFormatPCM {
		return fmt.Errorf("wav: unsupported audio format %d, want PCM (1)", fc.AudioFormat)
	}
	if fc.NumChannels != numChannels {
		return fmt.Errorf("wav: unsupported channel count %d, want mono (1)", fc.NumChannels)
	}
	if fc.SampleRate != sampleRate {
		return fmt.Errorf("wav: unsupported sample rate %d, want %d", fc.SampleRate, sampleRate)
	}
	if fc.BitsPerSample != bitsPerSample {
		return fmt.Errorf("wav: unsupported bit depth %d, want %d", fc.BitsPerSample, bitsPerSample)
	}
	return nil
}

// WriteFile saves samples to path as a canonical PCM16/mono/8kHz WAV file.
func WriteFile(path string, samples []int16) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Write(f, samples); err != nil {
		return err
	}
	return f.Close()
}

// Write emits samples to w as a canonical PCM16/mono/8kHz WAV file,
// byte-for-byte matching the header layout in SPEC_FULL.md §4.8 /
// spec.md §6.
func Write(w io.Writer, samples []int16) error {
	dataBytes := uint32(len(samples)) * 2

	header := fileHeader{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     dataBytes + 36,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   audioFormatPCM,
		NumChannels:   numChannels,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * numChannels * (bitsPerSample / 8),
		BlockAlign:    numChannels * (bitsPerSample / 8),
		BitsPerSample: bitsPerSample,
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataBytes,
	}

	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("wav: writing header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("wav: writing samples: %w", err)
	}
	return nil
}
