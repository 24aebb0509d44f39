package scheduler

import (
	"errors"
	"runtime"
	"sync"
)

var (
	// ErrNilTask is returned when a nil task is scheduled.
	ErrNilTask = errors.New("task cannot be nil")
	// ErrPoolClosed is returned when scheduling on a closed pool.
	ErrPoolClosed = errors.New("pool is closed")
)

// Disposition is the result of a single task execution.
type Disposition int

const (
	// Done marks the task as complete.
	Done Disposition = iota
	// Reschedule hands the task back to the pool for another run.
	Reschedule
)

// Task is a unit of deferred work.
type Task interface {
	// Run executes the task once. Returning Reschedule re-queues the task.
	Run() Disposition
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func() Disposition

// Run executes the function.
func (f TaskFunc) Run() Disposition { return f() }

// Config holds configuration for a Pool.
type Config struct {
	// Workers is the number of worker goroutines.
	Workers int
	// QueueSize is the task channel buffer size.
	QueueSize int
}

// SetDefaults sets sensible default values for unset configuration fields.
func (c *Config) SetDefaults() {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
}

// Pool runs tasks on a fixed set of worker goroutines.
// It is safe for concurrent use.
type Pool struct {
	tasks chan Task

	mu     sync.Mutex
	closed bool

	pending sync.WaitGroup // queued + running tasks
	workers sync.WaitGroup
}

// NewPool creates a pool and starts its workers. A nil config uses defaults.
func NewPool(cfg *Config) *Pool {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	c.SetDefaults()

	p := &Pool{
		tasks: make(chan Task, c.QueueSize),
	}
	for i := 0; i < c.Workers; i++ {
		p.workers.Add(1)
		go p.worker()
	}
	return p
}

// Schedule queues a task for asynchronous execution. It blocks while the
// queue is full and returns ErrPoolClosed once Close has been called.
func (p *Pool) Schedule(t Task) error {
	if t == nil {
		return ErrNilTask
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.pending.Add(1)
	p.mu.Unlock()

	p.tasks <- t
	return nil
}

// Close stops intake, waits for queued and running tasks (including
// reschedules in flight) to finish, and joins the workers. It is idempotent.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	p.pending.Wait()
	close(p.tasks)
	p.workers.Wait()
	return nil
}

func (p *Pool) worker() {
	defer p.workers.Done()
	for t := range p.tasks {
		if t.Run() == Reschedule {
			p.requeue(t)
		} else {
			p.pending.Done()
		}
	}
}

// requeue puts a yielding task back on the queue. The task keeps its pending
// slot, so Close cannot close the channel underneath a blocked send.
func (p *Pool) requeue(t Task) {
	select {
	case p.tasks <- t:
	default:
		go func() { p.tasks <- t }()
	}
}
