package crawler

import (
	"github.com/bits-and-blooms/bloom/v3"
)

const (
	// Bloom filter sized for ~100k URLs at 1% false positives; a single site
	// rarely gets close and the exact sets below stay authoritative.
	bloomFilterSize = 100_000
	bloomFilterRate = 0.01
)

// Frontier is the FIFO queue of URLs to visit plus the visited set.
// A session drives it from a single goroutine, so it carries no lock.
type Frontier struct {
	queue []string

	queued  map[string]struct{}
	visited map[string]struct{}
	order   []string

	// negative pre-check in front of queued/visited
	seen *bloom.BloomFilter

	discovered int
}

// NewFrontier creates an empty frontier
func NewFrontier() *Frontier {
	return &Frontier{
		queue:   make([]string, 0),
		queued:  make(map[string]struct{}),
		visited: make(map[string]struct{}),
		order:   make([]string, 0),
		seen:    bloom.NewWithEstimates(bloomFilterSize, bloomFilterRate),
	}
}

// Seed enqueues the start URL unconditionally unless it is already known
func (f *Frontier) Seed(u string) {
	f.EnqueueIfNew(u)
}

// EnqueueIfNew appends u when it is neither queued nor visited
func (f *Frontier) EnqueueIfNew(u string) bool {
	key := []byte(u)
	if f.seen.Test(key) {
		if _, ok := f.queued[u]; ok {
			return false
		}
		if _, ok := f.visited[u]; ok {
			return false
		}
	}

	f.seen.Add(key)
	f.queued[u] = struct{}{}
	f.queue = append(f.queue, u)
	f.discovered++
	return true
}

// Dequeue removes and returns the oldest queued URL
func (f *Frontier) Dequeue() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}

	u := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	delete(f.queued, u)
	return u, true
}

// MarkVisited records u as processed
func (f *Frontier) MarkVisited(u string) {
	if _, ok := f.visited[u]; ok {
		return
	}
	f.seen.Add([]byte(u))
	f.visited[u] = struct{}{}
	f.order = append(f.order, u)
}

// IsVisited reports whether u was already processed
func (f *Frontier) IsVisited(u string) bool {
	if !f.seen.Test([]byte(u)) {
		return false
	}
	_, ok := f.visited[u]
	return ok
}

// IsQueued reports whether u is waiting in the queue
func (f *Frontier) IsQueued(u string) bool {
	_, ok := f.queued[u]
	return ok
}

// Size returns the number of pending URLs
func (f *Frontier) Size() int {
	return len(f.queue)
}

// Discovered returns how many URLs were ever enqueued
func (f *Frontier) Discovered() int {
	return f.discovered
}

// Visited returns visited URLs in the order they were marked
func (f *Frontier) Visited() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}
