package export

import "testing"

func TestBatchSizeTable(t *testing.T) {
	cases := []struct {
		name   string
		width  int
		height int
		want   int
	}{
		{"4k", 3840, 2160, 5},
		{"1440p", 2560, 1440, 10},
		{"1080p", 1920, 1080, 15},
		{"720p", 1280, 720, 30},
		{"tiny", 64, 36, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BatchSize(tc.width * tc.height); got != tc.want {
				t.Fatalf("BatchSize(%dx%d) = %d, want %d", tc.width, tc.height, got, tc.want)
			}
		})
	}
}

func TestBatchSizeNonIncreasing(t *testing.T) {
	prev := BatchSize(0)
	if prev < 1 {
		t.Fatalf("BatchSize(0) = %d, want >= 1", prev)
	}
	for pixels := 0; pixels <= 10_000_000; pixels += 100_000 {
		size := BatchSize(pixels)
		if size < 1 {
			t.Fatalf("BatchSize(%d) = %d, want >= 1", pixels, size)
		}
		if size > prev {
			t.Fatalf("BatchSize(%d) = %d increased from %d", pixels, size, prev)
		}
		prev = size
	}
}
