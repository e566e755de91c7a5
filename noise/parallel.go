package noise

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum cell count to split across workers.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 16384

// rowChunk is a range of rows for one worker.
type rowChunk struct {
	start, end int
}

// fillRows computes every cell of f. Large fields are split into row chunks
// across GOMAXPROCS workers; each cell depends only on its own coordinates,
// so the result matches the single-threaded fill exactly.
func fillRows(f *Field, p Params, sample func(u, v, freq float64) float64) {
	numWorkers := runtime.GOMAXPROCS(0)
	if f.Len() < parallelThreshold || numWorkers < 2 || p.Height < 2 {
		fillRange(f, p, sample, 0, p.Height)
		return
	}

	numWorkers = min(numWorkers, p.Height)
	chunkSize := (p.Height + numWorkers - 1) / numWorkers

	work := make(chan rowChunk, numWorkers)
	for start := 0; start < p.Height; start += chunkSize {
		work <- rowChunk{start: start, end: min(start+chunkSize, p.Height)}
	}
	close(work)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range work {
				fillRange(f, p, sample, chunk.start, chunk.end)
			}
		}()
	}
	wg.Wait()
}
