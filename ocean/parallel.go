package ocean

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum cell count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 4096

// workChunk represents a range of cells for a worker to process.
type workChunk struct {
	start, end int
	fn         func(start, end int)
	done       *sync.WaitGroup
}

// workerPool maps per-cell kernels over persistent worker goroutines.
// Kernels receive a half-open cell range and must only write cells inside it.
// A nil pool runs everything on the calling goroutine.
type workerPool struct {
	numWorkers int

	mu       sync.Mutex
	workChan chan workChunk // sends work to workers
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newWorkerPool(numWorkers int) *workerPool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &workerPool{numWorkers: numWorkers}
}

// startWorkers launches persistent worker goroutines.
func (p *workerPool) startWorkers() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(p.workChan, p.stopChan)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *workerPool) stopWorkers() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *workerPool) worker(work <-chan workChunk, stop <-chan struct{}) {
	defer p.wg.Done()

	for {
		select {
		case <-stop:
			return
		case chunk := <-work:
			chunk.fn(chunk.start, chunk.end)
			chunk.done.Done()
		}
	}
}

// run applies fn over [0, n) and returns once every chunk has completed.
// It is safe for concurrent callers.
func (p *workerPool) run(n int, fn func(start, end int)) {
	if p == nil || p.numWorkers == 1 || n < parallelThreshold {
		fn(0, n)
		return
	}

	p.startWorkers()

	p.mu.Lock()
	work := p.workChan
	p.mu.Unlock()

	numWorkers := p.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	var done sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		done.Add(1)
		work <- workChunk{start: start, end: end, fn: fn, done: &done}
	}

	done.Wait()
}
