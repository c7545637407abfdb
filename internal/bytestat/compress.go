package bytestat

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	encoderOnce sync.Once
	encoder     *zstd.Encoder
)

func zstdEncoder() *zstd.Encoder {
	encoderOnce.Do(func() {
		// Options are constant, so NewWriter cannot fail here.
		encoder, _ = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderConcurrency(1))
	})
	return encoder
}

// Compressibility returns the zstd compressed size of stream divided by its
// length. Values well below 1 indicate redundancy that order-1 entropy may
// not show. An empty stream returns 0.
//
// Safe for concurrent use.
func Compressibility(stream []byte) float64 {
	if len(stream) == 0 {
		return 0
	}
	out := zstdEncoder().EncodeAll(stream, make([]byte, 0, len(stream)/2))
	return float64(len(out)) / float64(len(stream))
}
