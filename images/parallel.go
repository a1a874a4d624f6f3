package images

import (
	"runtime"
	"sync"
)

// minPartition is the smallest slice of work handed to a goroutine.
const minPartition = 4096

// Parallel splits [0, dataSize) into contiguous partitions and runs fn on each
// partition in its own goroutine, returning once every partition is done.
//
// Arguments:
// - dataSize: The size of the data to process (rows, pixels or samples).
// - fn: Function to execute for each partition (receives start and end indices).
//
// Returns:
// - None.
//
// @example
//
//	Parallel(len(pix), func(start, end int) {
//	    for i := start; i < end; i++ {
//	        out[i] = float32(pix[i])
//	    }
//	})
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	if dataSize <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if limit := dataSize / minPartition; limit < workers {
		workers = limit
	}

	// Small inputs are not worth the goroutine overhead.
	if workers <= 1 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize

		// Last partition gets any remaining data.
		if i == workers-1 {
			partEnd = dataSize
		}

		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(partStart, partEnd)
	}

	wg.Wait()
}
