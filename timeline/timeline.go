// Package timeline merges the occurrence sequences of several named cron
// schedules into one chronological stream.
package timeline

import (
	"container/heap"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quintans/cronseq/cron"
)

var (
	ErrEmpty         = errors.New("timeline has no schedules")
	ErrSlugNotFound  = errors.New("no schedule with the given slug was found")
	ErrDuplicateSlug = errors.New("slug already added")
)

// Event is one occurrence of one of the timeline's schedules.
type Event struct {
	Slug string
	At   time.Time
}

// Timeline is a pull-based merge of several occurrence sequences, ordered
// by fire time. Each Next pops the earliest pending occurrence, advances
// the owning sequence and reinserts it.
type Timeline struct {
	mu    sync.Mutex
	queue priorityQueue
	slugs map[string]struct{}
}

func New() *Timeline {
	return &Timeline{
		slugs: map[string]struct{}{},
	}
}

// Add parses expr and enqueues its occurrence sequence under slug.
// A sequence with no occurrence within its search horizon is rejected.
func (t *Timeline) Add(slug, expr string, opts ...cron.Option) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.slugs[slug]; ok {
		return fmt.Errorf("add %q: %w", slug, ErrDuplicateSlug)
	}
	seq, err := cron.New(expr, opts...)
	if err != nil {
		return fmt.Errorf("add %q: %w", slug, err)
	}
	first, err := seq.Next()
	if err != nil {
		return fmt.Errorf("add %q: %w", slug, err)
	}

	heap.Push(&t.queue, &item{
		slug: slug,
		when: first,
		seq:  seq,
	})
	t.slugs[slug] = struct{}{}

	return nil
}

// Next pops the earliest pending occurrence across all schedules. The
// popped schedule is advanced and requeued; one whose sequence reports
// no further occurrence within its horizon is dropped, so Next on an
// emptied timeline returns ErrEmpty.
func (t *Timeline) Next() (Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.queue.Len() == 0 {
		return Event{}, ErrEmpty
	}

	it := heap.Pop(&t.queue).(*item)
	ev := Event{Slug: it.slug, At: it.when}

	next, err := it.seq.Next()
	if err != nil {
		delete(t.slugs, it.slug)
		return ev, nil
	}
	it.when = next
	heap.Push(&t.queue, it)

	return ev, nil
}

// Slugs returns the slugs of all schedules still on the timeline.
func (t *Timeline) Slugs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	slugs := make([]string, 0, t.queue.Len())
	for _, it := range t.queue {
		slugs = append(slugs, it.slug)
	}
	return slugs
}

// Remove takes the schedule with the given slug off the timeline.
func (t *Timeline) Remove(slug string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, it := range t.queue {
		if it.slug == slug {
			heap.Remove(&t.queue, i)
			delete(t.slugs, slug)
			return nil
		}
	}
	return fmt.Errorf("remove %q: %w", slug, ErrSlugNotFound)
}

type item struct {
	slug  string
	when  time.Time
	seq   *cron.Sequence
	index int
}

// priorityQueue implements the heap.Interface ordered by fire time.
type priorityQueue []*item

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].when.Before(pq[j].when)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	n := len(*pq)
	it := x.(*item)
	it.index = n
	*pq = append(*pq, it)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	it.index = -1 // for safety
	*pq = old[0 : n-1]
	return it
}
