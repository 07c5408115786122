// Package wav wraps raw PCM samples in a canonical RIFF/WAVE container and
// reads such headers back.
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// HeaderSize is the size of the canonical header written by Encode.
	HeaderSize = 44

	// SampleRate is the rate of the PCM returned by the speech API.
	SampleRate    = 24000
	Channels      = 1
	BitsPerSample = 16

	formatPCM = 1
)

var ErrInvalidHeader = errors.New("not a canonical PCM WAV header")

// Header is the decoded form of the 44-byte canonical header.
type Header struct {
	ChunkSize     uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// Encode returns a WAV file holding pcm verbatim after the header. pcm must be
// signed 16-bit little-endian mono samples at sampleRate.
func Encode(pcm []byte, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	byteRate := sampleRate * Channels * BitsPerSample / 8
	blockAlign := Channels * BitsPerSample / 8
	dataLen := uint32(len(pcm))

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(pcm)))
	buf.WriteString("RIFF")
	if err := binary.Write(buf, binary.LittleEndian, 36+dataLen); err != nil {
		return nil, err
	}
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	for _, v := range []any{
		uint32(16),
		uint16(formatPCM),
		uint16(Channels),
		uint32(sampleRate),
		uint32(byteRate),
		uint16(blockAlign),
		uint16(BitsPerSample),
	} {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	buf.WriteString("data")
	if err := binary.Write(buf, binary.LittleEndian, dataLen); err != nil {
		return nil, err
	}
	buf.Write(pcm)

	return buf.Bytes(), nil
}

// DecodeHeader parses the canonical header at the start of data.
func DecodeHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < HeaderSize {
		return h, fmt.Errorf("%w: %d bytes", ErrInvalidHeader, len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" ||
		string(data[12:16]) != "fmt " || string(data[36:40]) != "data" {
		return h, ErrInvalidHeader
	}
	le := binary.LittleEndian
	h.ChunkSize = le.Uint32(data[4:8])
	h.AudioFormat = le.Uint16(data[20:22])
	h.Channels = le.Uint16(data[22:24])
	h.SampleRate = le.Uint32(data[24:28])
	h.ByteRate = le.Uint32(data[28:32])
	h.BlockAlign = le.Uint16(data[32:34])
	h.BitsPerSample = le.Uint16(data[34:36])
	h.DataSize = le.Uint32(data[40:44])
	return h, nil
}

// PCM returns the data section of a file produced by Encode.
func PCM(data []byte) ([]byte, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	end := HeaderSize + int(h.DataSize)
	if end > len(data) {
		return nil, fmt.Errorf("%w: data section truncated (%d > %d)", ErrInvalidHeader, end, len(data))
	}
	return data[HeaderSize:end], nil
}

// Duration reports the playback length of a file produced by Encode, in seconds.
func Duration(data []byte) (float64, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return 0, err
	}
	if h.ByteRate == 0 {
		return 0, ErrInvalidHeader
	}
	return float64(h.DataSize) / float64(h.ByteRate), nil
}
