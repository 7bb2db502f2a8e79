// Package audio synthesizes spoken release briefings and packs them into WAV containers
package audio

import (
	"encoding/binary"
)

// PCM format produced by the speech API
const (
	SampleRate    = 24000
	channels      = 1
	bitsPerSample = 16
	wavHeaderSize = 44
)

// EncodeWAV wraps raw 16-bit little-endian mono PCM samples into a canonical 44-byte header WAV file
func EncodeWAV(pcm []byte, sampleRate int) []byte {
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	buf := make([]byte, wavHeaderSize+len(pcm))
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+len(pcm))) //nolint:gosec // pcm size bounded by api response
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(buf[22:24], channels)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate)) //nolint:gosec // sample rate is a small constant
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))   //nolint:gosec // derived from sample rate
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign)) //nolint:gosec // 2 for mono 16-bit
	binary.LittleEndian.PutUint16(buf[34:36], bitsPerSample)

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(len(pcm))) //nolint:gosec // pcm size bounded by api response
	copy(buf[wavHeaderSize:], pcm)
	return buf
}
