package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/api/metrics"
	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes auth events to a fixed set of workers using consistent
// hashing on the username, so one user's events are stored in order.
type Dispatcher struct {
	workers []chan domain.AuthEvent
	service ports.AuthEventService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuthEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuthEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands the event to the worker owning its username. It never
// blocks the request: when the worker's buffer is full the event is dropped
// and logged.
func (d *Dispatcher) Enqueue(event domain.AuthEvent) {
	idx := d.shardIndex(event.Username)
	select {
	case d.workers[idx] <- event:
		metrics.AuthEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.AuthEventsDroppedTotal.Inc()
		d.log.Warn().
			Str("username", event.Username).
			Str("kind", string(event.Kind)).
			Int("worker_id", idx).
			Msg("auth event queue full, event dropped")
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuthEvent) {
	defer d.wg.Done()
	depth := metrics.AuthEventsQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch, depth)
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.process(ctx, id, event)
		}
	}
}

// drain stores whatever is still buffered once shutdown has begun.
func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.AuthEvent, depth prometheus.Gauge) {
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.process(ctx, id, event)
		default:
			return
		}
	}
}

// process stores a dequeued event even if shutdown cancels ctx.
func (d *Dispatcher) process(ctx context.Context, id int, event domain.AuthEvent) {
	if err := d.service.Process(context.WithoutCancel(ctx), event); err != nil {
		d.log.Error().Err(err).
			Str("username", event.Username).
			Str("kind", string(event.Kind)).
			Int("worker_id", id).
			Msg("auth event processing failed")
	}
}
