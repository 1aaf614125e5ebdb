package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/belot/belot/pkg/config"
	"github.com/belot/belot/pkg/worker"
)

var (
	ErrQueueFull    = errors.New("event queue is full")
	ErrStreamClosed = errors.New("stream is closed")
	ErrNilHandler   = errors.New("nil handler provided")
)

const (
	redisKeyPrefix      = "belot:events:"
	blpopTimeout        = 1 * time.Second // blocking pop timeout per loop turn
	defaultDataChanSize = 100
)

// Handler consumes one event.
type Handler func(Event)

// Option configures a Stream or a Subscription.
type Option func(any)

// WithQueueSize caps the pending Redis list length checked on publish.
func WithQueueSize(qs int) Option {
	return func(o any) {
		if s, ok := o.(*Stream); ok && qs >= 0 {
			s.queueSize = qs
		}
	}
}

// WithConcurrency sets the handler dispatch parallelism of a subscription.
func WithConcurrency(c int) Option {
	return func(o any) {
		if s, ok := o.(*Subscription); ok && c > 0 {
			s.concurrency = c
		}
	}
}

// WithRecovery recovers handler panics instead of crashing the loop.
func WithRecovery() Option {
	return func(o any) {
		switch v := o.(type) {
		case *Stream:
			v.useRecovery = true
		case *Subscription:
			v.useRecovery = true
		}
	}
}

// Stream is a Redis-list-backed event channel, one list per table.
type Stream struct {
	rdb         redis.Cmdable
	queueSize   int
	useRecovery bool
	mu          sync.Mutex
	subs        []*Subscription
	closed      chan struct{}
	wg          sync.WaitGroup
}

// NewStream creates an event stream over the given Redis client.
func NewStream(rdb redis.Cmdable, opts ...Option) *Stream {
	s := &Stream{
		rdb:       rdb,
		queueSize: config.EventQueueSize(),
		closed:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	log.Trace().Int("queue_size", s.queueSize).Msg("event stream initialized")
	return s
}

func streamKey(tableID string) string {
	return redisKeyPrefix + tableID
}

// Publish appends one event to its table's list. Callers publish only after
// the engine mutation has committed.
func (s *Stream) Publish(ctx context.Context, ev Event) error {
	select {
	case <-s.closed:
		return ErrStreamClosed
	default:
	}

	key := streamKey(ev.TableID)
	if s.queueSize > 0 {
		length, err := s.rdb.LLen(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Error().Err(err).Str("table", ev.TableID).Msg("event queue length check failed")
			return fmt.Errorf("redis LLen failed: %w", err)
		}
		if length >= int64(s.queueSize) {
			log.Warn().Str("table", ev.TableID).Int64("length", length).Msg("event queue full")
			return ErrQueueFull
		}
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("json marshal failed: %w", err)
	}
	if err := s.rdb.RPush(ctx, key, payload).Err(); err != nil {
		log.Error().Err(err).Str("table", ev.TableID).Msg("event publish failed")
		return fmt.Errorf("redis RPush failed: %w", err)
	}
	log.Trace().Str("table", ev.TableID).Str("type", string(ev.Type)).Msg("event published")
	return nil
}

// Subscribe attaches a handler to one table's events. Call Loop on the
// returned subscription to start consuming.
func (s *Stream) Subscribe(ctx context.Context, tableID string, fn Handler, opts ...Option) (*Subscription, error) {
	select {
	case <-s.closed:
		return nil, ErrStreamClosed
	default:
	}
	if fn == nil {
		return nil, ErrNilHandler
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		stream:      s,
		tableID:     tableID,
		redisKey:    streamKey(tableID),
		handler:     fn,
		concurrency: config.EventConcurrency(),
		dataChan:    make(chan []byte, defaultDataChanSize),
		stopChan:    make(chan struct{}),
		ctx:         subCtx,
		cancel:      cancel,
		useRecovery: s.useRecovery,
	}
	for _, opt := range opts {
		opt(sub)
	}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	s.wg.Add(1)

	log.Trace().Str("table", tableID).Int("concurrency", sub.concurrency).Msg("subscription created")
	return sub, nil
}

// Close stops every subscription and waits for their loops to drain.
func (s *Stream) Close() error {
	s.mu.Lock()
	select {
	case <-s.closed:
		s.mu.Unlock()
		return nil
	default:
		close(s.closed)
	}
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Stop()
	}
	s.wg.Wait()
	log.Info().Msg("event stream closed")
	return nil
}

// Subscription consumes one table's events on a bounded worker pool.
type Subscription struct {
	stream      *Stream
	tableID     string
	redisKey    string
	handler     Handler
	concurrency int
	useRecovery bool
	dataChan    chan []byte
	stopChan    chan struct{}
	stopOnce    sync.Once
	ctx         context.Context
	cancel      context.CancelFunc
	pool        *worker.Pool
	wg          sync.WaitGroup
}

// Loop starts the blocking-pop goroutine and the dispatch worker.
func (sub *Subscription) Loop() {
	sub.pool = worker.NewPool(sub.concurrency)
	sub.wg.Add(2)
	go sub.popLoop()
	go sub.dispatchLoop()
	log.Trace().Str("table", sub.tableID).Msg("subscription loop started")
}

func (sub *Subscription) popLoop() {
	defer sub.wg.Done()
	defer close(sub.dataChan)
	for {
		select {
		case <-sub.stopChan:
			return
		case <-sub.ctx.Done():
			return
		default:
		}

		res, err := sub.stream.rdb.BLPop(sub.ctx, blpopTimeout, sub.redisKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Error().Err(err).Str("table", sub.tableID).Msg("event pop failed")
			continue
		}
		// BLPop returns [key, value].
		if len(res) != 2 {
			continue
		}
		select {
		case sub.dataChan <- []byte(res[1]):
		case <-sub.stopChan:
			return
		}
	}
}

func (sub *Subscription) dispatchLoop() {
	defer sub.wg.Done()
	for data := range sub.dataChan {
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Error().Err(err).Str("table", sub.tableID).Msg("event decode failed")
			continue
		}
		if err := sub.pool.Submit(sub.ctx, func() { sub.handle(ev) }); err != nil {
			return
		}
	}
}

func (sub *Subscription) handle(ev Event) {
	if sub.useRecovery {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("table", sub.tableID).Msg("event handler panicked")
			}
		}()
	}
	sub.handler(ev)
}

// Stop halts the subscription and waits for in-flight handlers.
func (sub *Subscription) Stop() {
	sub.stopOnce.Do(func() {
		close(sub.stopChan)
		sub.cancel()
		sub.wg.Wait()
		if sub.pool != nil {
			sub.pool.Close()
		}
		sub.stream.wg.Done()
		log.Trace().Str("table", sub.tableID).Msg("subscription stopped")
	})
}
