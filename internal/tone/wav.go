package tone

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	wavHeaderSize  = 44
	bitsPerSample  = 16
	bytesPerSample = bitsPerSample / 8
	numChannels    = 1
	formatPCM      = 1
)

// wavHeader is the canonical 44-byte header for uncompressed PCM.
// Field order matches the on-disk layout; binary.Write emits it as-is.
type wavHeader struct {
	RiffID        [4]byte
	ChunkSize     uint32
	WaveID        [4]byte
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

func newWAVHeader(sampleRate, samples int) wavHeader {
	dataSize := uint32(samples * numChannels * bytesPerSample)
	return wavHeader{
		RiffID:        [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     wavHeaderSize - 8 + dataSize,
		WaveID:        [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   formatPCM,
		NumChannels:   numChannels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * numChannels * bytesPerSample),
		BlockAlign:    numChannels * bytesPerSample,
		BitsPerSample: bitsPerSample,
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
}

// Encode writes b to w as a mono 16-bit little-endian PCM WAV stream.
func Encode(w io.Writer, b *Buffer) error {
	if b == nil {
		return fmt.Errorf("encode wav: nil buffer")
	}

	if err := binary.Write(w, binary.LittleEndian, newWAVHeader(b.SampleRate, len(b.Samples))); err != nil {
		return fmt.Errorf("failed to write wav header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, b.Samples); err != nil {
		return fmt.Errorf("failed to write wav samples: %w", err)
	}
	return nil
}

// EncodedSize returns the number of bytes Encode writes for b.
func (b *Buffer) EncodedSize() int64 {
	return int64(wavHeaderSize + len(b.Samples)*bytesPerSample)
}

// EncodeTo encodes b as WAV into w through a buffered writer and flushes it.
func (b *Buffer) EncodeTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := Encode(bw, b); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush wav data: %w", err)
	}
	return nil
}

// WriteFile encodes b as WAV into path, creating or truncating it.
func (b *Buffer) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create wav file: %w", err)
	}

	if err := b.EncodeTo(f); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close wav file: %w", err)
	}
	return nil
}
