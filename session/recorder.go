package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/sicko7947/gamestate"
)

// recorder appends one history entry per store mutation.
//
// Subscribers only stamp the entry and hand it to a buffered queue; a single
// worker goroutine does the append, so store calls never wait on the backend.
// When the queue is full the entry is dropped and logged.
type recorder struct {
	ctx       context.Context
	cancel    context.CancelFunc
	sessionID string
	store     gamestate.HistoryStore
	config    gamestate.SessionConfig
	logger    zerolog.Logger

	seq atomic.Uint64

	mu     sync.RWMutex
	queue  chan *gamestate.HistoryEntry
	closed bool
	unsubs []gamestate.Unsubscriber

	done chan struct{}
}

func newRecorder(
	ctx context.Context,
	sessionID string,
	store gamestate.HistoryStore,
	config gamestate.SessionConfig,
	logger zerolog.Logger,
) *recorder {
	ctx, cancel := context.WithCancel(ctx)

	r := &recorder{
		ctx:       ctx,
		cancel:    cancel,
		sessionID: sessionID,
		store:     store,
		config:    config,
		logger:    logger,
		queue:     make(chan *gamestate.HistoryEntry, max(config.HistoryBuffer, 1)),
		done:      make(chan struct{}),
	}

	go r.run()
	return r
}

// attach subscribes to both stores. The immediate call each subscription
// makes with the current value is not a mutation and is skipped.
func (r *recorder) attach(score *gamestate.ScoreStore, modal *gamestate.ModalStore) {
	var scorePrimed, modalPrimed atomic.Bool

	unsubScore := score.Subscribe(func(st gamestate.ScoreState) {
		if scorePrimed.CompareAndSwap(false, true) {
			return
		}
		r.enqueue(&gamestate.HistoryEntry{Kind: gamestate.EntryKindScore, Score: st.Score})
	})

	unsubModal := modal.Subscribe(func(c gamestate.Corner) {
		if modalPrimed.CompareAndSwap(false, true) {
			return
		}
		r.enqueue(&gamestate.HistoryEntry{Kind: gamestate.EntryKindModal, Corner: c})
	})

	r.mu.Lock()
	r.unsubs = append(r.unsubs, unsubScore, unsubModal)
	r.mu.Unlock()
}

// enqueue stamps entry and queues it without blocking
func (r *recorder) enqueue(entry *gamestate.HistoryEntry) {
	now := time.Now().UTC()
	entry.SessionID = r.sessionID
	entry.Seq = r.seq.Add(1)
	entry.RecordedAt = now

	if r.config.HistoryTTL > 0 {
		entry.TTL = now.Add(r.config.HistoryTTL).Unix()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return
	}

	select {
	case r.queue <- entry:
	default:
		gamestate.LogHistoryError(r.logger, "enqueue",
			fmt.Errorf("history queue full, dropped entry %d", entry.Seq))
	}
}

// close unsubscribes, then waits up to HistoryFlushTimeout for queued
// entries to be written before cancelling the rest.
func (r *recorder) close() {
	r.mu.Lock()
	unsubs := r.unsubs
	r.unsubs = nil
	alreadyClosed := r.closed
	if !alreadyClosed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	if alreadyClosed {
		<-r.done
		return
	}

	if r.config.HistoryFlushTimeout > 0 {
		timer := time.NewTimer(r.config.HistoryFlushTimeout)
		defer timer.Stop()

		select {
		case <-r.done:
		case <-timer.C:
		}
	}

	r.cancel()
	<-r.done
}

func (r *recorder) run() {
	defer close(r.done)

	dropped := 0
	for entry := range r.queue {
		if r.ctx.Err() != nil {
			dropped++
			continue
		}
		r.record(entry)
	}

	if dropped > 0 {
		gamestate.LogHistoryError(r.logger, "append",
			fmt.Errorf("dropped %d entries: %w", dropped, context.Cause(r.ctx)))
	}
}

func (r *recorder) record(entry *gamestate.HistoryEntry) {
	var err error
	for attempt := 0; attempt <= r.config.HistoryRetries; attempt++ {
		if attempt > 0 {
			delay := gamestate.CalculateBackoff(r.config.HistoryRetryDelay, attempt, r.config.HistoryBackoff)
			r.logger.Debug().Int("attempt", attempt).Dur("delay", delay).Msg("Retrying history append")
			if !r.sleep(delay) {
				break
			}
		}

		err = r.append(entry)
		// A conflict will not resolve itself and a closed session stops trying
		if err == nil || gamestate.IsConflict(err) || r.ctx.Err() != nil {
			break
		}
	}

	// Stores never fail, so a lost entry is only logged
	if err != nil {
		gamestate.LogHistoryError(r.logger, "append", err)
		return
	}

	gamestate.LogHistoryRecorded(r.logger, entry)
}

func (r *recorder) append(entry *gamestate.HistoryEntry) error {
	ctx := r.ctx
	if r.config.HistoryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.HistoryTimeout)
		defer cancel()
	}
	return r.store.Append(ctx, entry)
}

// sleep waits for d, returning false if the session ends first
func (r *recorder) sleep(d time.Duration) bool {
	if d <= 0 {
		return r.ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-r.ctx.Done():
		return false
	}
}
