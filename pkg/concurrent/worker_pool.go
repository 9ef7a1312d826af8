package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// Job payload tagged with its submission order.
type Job[T any] struct {
	ID      int
	Payload T
}

type JobResult[G any] struct {
	ID     int
	Result G
}

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan Job[T]
	results    chan JobResult[G]
	wg         sync.WaitGroup
	nextID     int
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job[T], jobQueueSize),
		results:    make(chan JobResult[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- JobResult[G]{ID: job.ID, Result: jobFunc(job.Payload)}
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait blocks until every worker is done, then closes the results channel. Call after Close.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

// AddJob queues a job and returns its id. Not safe for concurrent use.
func (wp *WorkerPool[T, G]) AddJob(job T) int {
	id := wp.nextID
	wp.nextID++
	wp.jobQueue <- Job[T]{ID: id, Payload: job}
	return id
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan JobResult[G] {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Map runs jobFunc over jobs on numWorkers goroutines and returns the results in job order.
func Map[T any, G any](numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	wp := NewWorkerPool[T, G](numWorkers, len(jobs))
	wp.Start(jobFunc)
	for _, job := range jobs {
		wp.AddJob(job)
	}
	wp.Close()

	// buffers hold every job and result, so Wait cannot block on a full results channel
	wp.Wait()

	results := make([]G, len(jobs))
	for res := range wp.CollectResults() {
		results[res.ID] = res.Result
	}
	return results
}
