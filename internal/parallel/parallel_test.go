package parallel_test

import (
	"sync/atomic"
	"testing"

	"github.com/flintml/flint/internal/parallel"
)

func TestFor_Sequential(t *testing.T) {
	cfg := parallel.Config{Enabled: false}
	var sum int
	parallel.For(100, func(i int) { sum += i }, cfg)
	if sum != 4950 {
		t.Errorf("got %d, want 4950", sum)
	}
}

func TestFor_Parallel(t *testing.T) {
	cfg := parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}
	var sum atomic.Int64
	parallel.For(1000, func(i int) { sum.Add(int64(i)) }, cfg)
	if sum.Load() != 499500 {
		t.Errorf("got %d, want 499500", sum.Load())
	}
}

func TestFor_SmallFallsBackToSequential(t *testing.T) {
	cfg := parallel.Config{Enabled: true, NumWorkers: 8, MinChunkSize: 64}
	// n < MinChunkSize runs inline; no synchronization needed.
	var sum int
	parallel.For(10, func(i int) { sum += i }, cfg)
	if sum != 45 {
		t.Errorf("got %d, want 45", sum)
	}
}

func TestForRows(t *testing.T) {
	cfg := parallel.Config{Enabled: false}
	seen := make([][2]int, 0, 6)
	parallel.ForRows(2, 3, func(r, c int) { seen = append(seen, [2]int{r, c}) }, cfg)
	if len(seen) != 6 {
		t.Fatalf("got %d visits, want 6", len(seen))
	}
	if seen[4] != [2]int{1, 1} {
		t.Errorf("flat index 4 visited %v, want {1 1}", seen[4])
	}
}
