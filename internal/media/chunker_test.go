package media

import (
	"math"
	"testing"
)

func TestChunksCoverage(t *testing.T) {
	const chunkSize = 50.0

	tests := []struct {
		name      string
		duration  float64
		wantCount int
	}{
		{"one second", 1, 1},
		{"just under one chunk", 49.999, 1},
		{"exactly one chunk", 50, 1},
		{"just over one chunk", 50.001, 2},
		{"ninety seconds", 90, 2},
		{"exact multiple", 150, 3},
		{"long recording", 3600.5, 73},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Chunks(tt.duration, chunkSize)

			wantCount := int(math.Ceil(tt.duration / chunkSize))
			if wantCount != tt.wantCount {
				t.Fatalf("test fixture inconsistent: ceil = %d, wantCount = %d", wantCount, tt.wantCount)
			}
			if len(chunks) != tt.wantCount {
				t.Fatalf("chunk count = %d, want %d", len(chunks), tt.wantCount)
			}

			sum := 0.0
			for i, c := range chunks {
				if c.Index != i {
					t.Errorf("chunk[%d].Index = %d", i, c.Index)
				}
				if c.Length > chunkSize+1e-9 {
					t.Errorf("chunk[%d].Length = %g exceeds chunk size", i, c.Length)
				}
				if i < len(chunks)-1 && math.Abs(c.Length-chunkSize) > 1e-9 {
					t.Errorf("non-final chunk[%d].Length = %g, want %g", i, c.Length, chunkSize)
				}
				if i > 0 {
					prev := chunks[i-1]
					if math.Abs(c.Offset-(prev.Offset+prev.Length)) > 1e-9 {
						t.Errorf("gap or overlap before chunk[%d]: offset %g, prev end %g",
							i, c.Offset, prev.Offset+prev.Length)
					}
				}
				sum += c.Length
			}

			if math.Abs(sum-tt.duration) > 1e-9 {
				t.Errorf("chunk lengths sum = %g, want %g", sum, tt.duration)
			}
		})
	}
}

func TestChunksDegenerateInputs(t *testing.T) {
	if got := Chunks(0, 50); got != nil {
		t.Errorf("Chunks(0, 50) = %v, want nil", got)
	}
	if got := Chunks(-5, 50); got != nil {
		t.Errorf("Chunks(-5, 50) = %v, want nil", got)
	}

	whole := Chunks(120, 0)
	if len(whole) != 1 || whole[0].Length != 120 {
		t.Errorf("Chunks(120, 0) = %v, want single whole-stream chunk", whole)
	}
}
