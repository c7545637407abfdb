package bytestat

import (
	"errors"
	"math"
	"testing"

	"github.com/linuxmatters/binviz/internal/config"
)

func TestEntropyScenarios(t *testing.T) {
	testCases := []struct {
		name   string
		stream []byte
		want   float64
	}{
		{name: "empty", stream: []byte{}, want: 0},
		{name: "single byte", stream: []byte{0x7F}, want: 0},
		{name: "three zeros", stream: []byte{0x00, 0x00, 0x00}, want: 0},
		{name: "alternating pair", stream: []byte{0x00, 0x01, 0x00, 0x01}, want: 1.0},
		{name: "four distinct", stream: []byte{1, 2, 3, 4}, want: 2.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ComputeEntropy(tc.stream, 1)
			if err != nil {
				t.Fatalf("ComputeEntropy() returned error: %v", err)
			}
			if len(result) != 1 || result[0].Order != 1 {
				t.Fatalf("ComputeEntropy() = %+v, want one order-1 entry", result)
			}
			if math.Abs(result[0].Bits-tc.want) > 1e-12 {
				t.Errorf("entropy = %.15f, want %.15f", result[0].Bits, tc.want)
			}
			if math.Signbit(result[0].Bits) {
				t.Errorf("entropy is negative zero")
			}
		})
	}
}

func TestEntropyUniformBytes(t *testing.T) {
	stream := make([]byte, 256*4)
	for i := range stream {
		stream[i] = byte(i)
	}

	result, err := ComputeEntropy(stream, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(result[0].Bits-8) > 1e-9 {
		t.Errorf("entropy of uniform bytes = %f, want 8", result[0].Bits)
	}
	if math.Abs(result[0].Relative()-1) > 1e-9 {
		t.Errorf("relative entropy = %f, want 1", result[0].Relative())
	}
}

// TestEntropyBounds checks 0 <= H_n <= 8n for every order and that zero
// order-1 entropy means a single distinct byte.
func TestEntropyBounds(t *testing.T) {
	for _, alphabet := range []int{1, 2, 7, 256} {
		stream := testStream(3000, alphabet)

		result, err := ComputeEntropy(stream, 4)
		if err != nil {
			t.Fatal(err)
		}
		if len(result) != 4 {
			t.Fatalf("got %d orders, want 4", len(result))
		}

		for i, e := range result {
			if e.Order != i+1 {
				t.Errorf("entry %d has order %d", i, e.Order)
			}
			if e.Bits < 0 || e.Bits > float64(8*e.Order) {
				t.Errorf("alphabet %d order %d: entropy %f out of range", alphabet, e.Order, e.Bits)
			}
		}

		if (result[0].Bits == 0) != (alphabet == 1) {
			t.Errorf("alphabet %d: order-1 entropy %f", alphabet, result[0].Bits)
		}
		t.Logf("alphabet %3d: H1=%.4f H2=%.4f H3=%.4f H4=%.4f",
			alphabet, result[0].Bits, result[1].Bits, result[2].Bits, result[3].Bits)
	}
}

func TestEntropyReproducible(t *testing.T) {
	stream := testStream(5000, 200)

	first, err := ComputeEntropy(stream, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, _ := ComputeEntropy(stream, 5)
		for n := range first {
			if again[n].Bits != first[n].Bits {
				t.Fatalf("run %d order %d: %v != %v", i, n+1, again[n].Bits, first[n].Bits)
			}
		}
	}
}

func TestComputeEntropyInvalidOrder(t *testing.T) {
	if _, err := ComputeEntropy([]byte("abc"), 0); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("ComputeEntropy(maxOrder=0) = %v, want ErrInvalid", err)
	}
}
