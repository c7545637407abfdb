package analysis

import (
	"encoding/binary"
	"encoding/hex"
	"os"

	"github.com/dchest/siphash"
)

// Source supplies one byte stream.
type Source interface {
	Name() string
	Bytes() ([]byte, error)
}

type fileSource struct {
	path string
}

// FileSource reads the whole file at path when Bytes is called.
func FileSource(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Name() string { return s.path }

func (s fileSource) Bytes() ([]byte, error) {
	return os.ReadFile(s.path)
}

type memorySource struct {
	name string
	data []byte
}

// MemorySource wraps an in-memory stream.
func MemorySource(name string, data []byte) Source {
	return memorySource{name: name, data: data}
}

func (s memorySource) Name() string           { return s.name }
func (s memorySource) Bytes() ([]byte, error) { return s.data, nil }

// Fixed keys: digests only need to be stable, not secret.
const (
	digestK0 = 0x62696e76697a2d30
	digestK1 = 0x9f17c3fd5efd3ce4
)

func digest(stream []byte) [2]uint64 {
	lo, hi := siphash.Hash128(digestK0, digestK1, stream)
	return [2]uint64{lo, hi}
}

func digestString(d [2]uint64) string {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], d[1])
	binary.BigEndian.PutUint64(buf[8:], d[0])
	return hex.EncodeToString(buf[:])
}
