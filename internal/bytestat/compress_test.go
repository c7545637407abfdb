package bytestat

import (
	"sync"
	"testing"
)

func TestCompressibility(t *testing.T) {
	if got := Compressibility(nil); got != 0 {
		t.Errorf("Compressibility(empty) = %f, want 0", got)
	}

	zeros := make([]byte, 64*1024)
	noise := testStream(64*1024, 256)

	z := Compressibility(zeros)
	n := Compressibility(noise)
	if z >= 0.05 {
		t.Errorf("zeros ratio = %f, want < 0.05", z)
	}
	if n < 0.9 {
		t.Errorf("noise ratio = %f, want >= 0.9", n)
	}
	t.Logf("zstd ratio: zeros %.4f, noise %.4f", z, n)
}

func TestCompressibilityConcurrent(t *testing.T) {
	stream := testStream(16*1024, 8)
	want := Compressibility(stream)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Compressibility(stream); got != want {
				t.Errorf("concurrent ratio = %f, want %f", got, want)
			}
		}()
	}
	wg.Wait()
}
