package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"
)

// WriteWAV writes mono PCM16 samples to a uniquely named WAV file under dir
// and returns its path. The caller removes the file once the engine is done
// with it.
func WriteWAV(dir string, samples []int16, sampleRate int) (string, error) {
	if len(samples) == 0 {
		return "", fmt.Errorf("no samples to write")
	}
	if dir == "" {
		dir = os.TempDir()
	}

	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	path := filepath.Join(dir, fmt.Sprintf("utterance_%s.wav", id))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create wav: %w", err)
	}

	enc := wav.NewEncoder(file, sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = file.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("wav write: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("wav close: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("wav close: %w", err)
	}

	return path, nil
}

// EncodeWAV renders mono PCM16 samples as an in-memory WAV blob, for engines
// that take a reader instead of a file path.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	var buf bytes.Buffer

	const channels = 1
	const bitsPerSample = 16
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	dataSize := len(samples) * 2
	fileSize := 36 + dataSize

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(fileSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for _, s := range samples {
		binary.Write(&buf, binary.LittleEndian, s)
	}

	return buf.Bytes()
}
