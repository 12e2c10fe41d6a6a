package tone

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Header(t *testing.T) {
	b := Synthesize(scenarioSpec())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, b))

	data := buf.Bytes()
	require.Len(t, data, 44+800*2)
	assert.Equal(t, int64(len(data)), b.EncodedSize())

	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, uint32(36+1600), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, "fmt ", string(data[12:16]))
	assert.Equal(t, uint32(16), binary.LittleEndian.Uint32(data[16:20]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[20:22]))    // PCM
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[22:24]))    // mono
	assert.Equal(t, uint32(8000), binary.LittleEndian.Uint32(data[24:28])) // rate
	assert.Equal(t, uint32(16000), binary.LittleEndian.Uint32(data[28:32]))
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(data[32:34]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(data[34:36]))
	assert.Equal(t, "data", string(data[36:40]))
	assert.Equal(t, uint32(1600), binary.LittleEndian.Uint32(data[40:44]))
}

func TestEncode_SamplesLittleEndian(t *testing.T) {
	b := &Buffer{SampleRate: 8000, Samples: []int16{0, 1, -1, 32767, -32768}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, b))

	assert.Equal(t, []byte{
		0x00, 0x00,
		0x01, 0x00,
		0xff, 0xff,
		0xff, 0x7f,
		0x00, 0x80,
	}, buf.Bytes()[44:])
}

func TestEncode_NilBuffer(t *testing.T) {
	assert.Error(t, Encode(&bytes.Buffer{}, nil))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncode_WriteError(t *testing.T) {
	err := Encode(failingWriter{}, Synthesize(scenarioSpec()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestEncode_DecodesWithBeep(t *testing.T) {
	b := Synthesize(scenarioSpec())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, b))

	streamer, format, err := wav.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = streamer.Close() }()

	assert.Equal(t, 8000, int(format.SampleRate))
	assert.Equal(t, 1, format.NumChannels)
	assert.Equal(t, 2, format.Precision)
	assert.Equal(t, 800, streamer.Len())
}

func TestBuffer_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	b := Synthesize(DefaultCompletion())

	require.NoError(t, b.WriteFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, b.EncodedSize(), info.Size())

	var want bytes.Buffer
	require.NoError(t, Encode(&want, b))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want.Bytes(), got)
}

func TestBuffer_WriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "tone.wav")

	err := Synthesize(scenarioSpec()).WriteFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
