package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// ErrWorkerPanic is wrapped by the error returned when a worker panics
var ErrWorkerPanic = errors.New("worker panicked")

// PixelFunc computes the color of pixel (x, y). The worker id identifies the
// goroutine calling it, so state indexed by worker is never shared.
type PixelFunc func(worker, x, y int) core.Vec3

// pixelRequest asks a worker to compute one pixel
type pixelRequest struct {
	X, Y int
}

// pixelResult carries a computed color back to the coordinator
type pixelResult struct {
	Worker int
	X, Y   int
	Color  core.Vec3
}

// WorkerPool computes every pixel of an image in parallel. Each worker has its
// own request channel and all workers share one result channel; the caller's
// goroutine is the only one writing pixels.
type WorkerPool struct {
	numWorkers int
	compute    PixelFunc
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int, compute PixelFunc) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		numWorkers: numWorkers,
		compute:    compute,
	}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// RunPass computes each pixel of a width × height image exactly once and hands
// the colors to store, from the calling goroutine. Pixels are dispatched in
// column-major order: every worker is seeded with one pixel and gets the next
// pending one as soon as it returns a result. Closing a worker's request
// channel tells it to stop. RunPass returns once every worker has exited,
// along with the number of pixels each worker computed.
func (wp *WorkerPool) RunPass(ctx context.Context, width, height int, store func(x, y int, c core.Vec3)) ([]int, error) {
	pending := make([]pixelRequest, 0, width*height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			pending = append(pending, pixelRequest{X: x, Y: y})
		}
	}

	perWorker := make([]int, wp.numWorkers)
	numWorkers := min(wp.numWorkers, len(pending))
	if numWorkers == 0 {
		return perWorker, ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	requests := make([]chan pixelRequest, numWorkers)
	results := make(chan pixelResult, numWorkers)

	for id := range requests {
		id := id
		requests[id] = make(chan pixelRequest, 1)
		g.Go(func() error {
			return wp.work(gctx, id, requests[id], results)
		})
	}

	closed := make([]bool, numWorkers)
	stop := func(id int) {
		if !closed[id] {
			close(requests[id])
			closed[id] = true
		}
	}

	next := 0
	for id := range requests {
		requests[id] <- pending[next]
		next++
	}

	inFlight := numWorkers
dispatch:
	for inFlight > 0 {
		select {
		case result := <-results:
			store(result.X, result.Y, result.Color)
			perWorker[result.Worker]++
			inFlight--

			if next < len(pending) {
				// The worker's channel is empty since it just answered
				requests[result.Worker] <- pending[next]
				next++
				inFlight++
			} else {
				stop(result.Worker)
			}
		case <-gctx.Done():
			break dispatch
		}
	}

	for id := range requests {
		stop(id)
	}

	if err := g.Wait(); err != nil {
		return perWorker, fmt.Errorf("while waiting for completion of errgroup: %w", err)
	}
	return perWorker, ctx.Err()
}

// work is the main worker loop
func (wp *WorkerPool) work(ctx context.Context, id int, requests <-chan pixelRequest, results chan<- pixelResult) error {
	for request := range requests {
		color, err := wp.computePixel(id, request)
		if err != nil {
			return err
		}

		select {
		case results <- pixelResult{Worker: id, X: request.X, Y: request.Y, Color: color}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// computePixel turns a panic of the pixel function into an error
func (wp *WorkerPool) computePixel(id int, request pixelRequest) (color core.Vec3, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: worker %d on pixel (%d, %d): %v", ErrWorkerPanic, id, request.X, request.Y, r)
		}
	}()
	return wp.compute(id, request.X, request.Y), nil
}
