package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"vigia/internal/api"
)

// ErrRunning is returned by Start when the poller already has a live
// polling loop.
var ErrRunning = errors.New("poller already running")

// Poller runs the dashboard refresh loop: a data cycle against
// /vehicle-stats and /detected-objects at the poll interval, and an
// independent /health probe at the health interval. Both feed the
// same connectivity flag.
type Poller struct {
	mu     sync.RWMutex
	client *api.Client

	pollInterval   time.Duration
	healthInterval time.Duration

	connected     bool
	running       bool
	currentCount  int64
	activeObjects int
	objects       []api.DetectedObject
	analytics     map[api.Period]api.Series
	statsByClass  map[string]api.ClassStat
	lastReset     time.Time
	lastUpdate    time.Time
	lastError     error
	pollCount     int
	errorCount    int
	history       *RingBuffer[CountSample]

	subscribers []chan Event

	started bool
	paused  bool
	stopCh  chan struct{}
	pauseCh chan struct{}
	wakeCh  chan struct{}
	refresh chan struct{}
	cancel  context.CancelFunc
}

// NewPoller creates a Poller for the backend behind client.
func NewPoller(client *api.Client, pollInterval, healthInterval time.Duration, maxHistory int) *Poller {
	return &Poller{
		client:         client,
		pollInterval:   pollInterval,
		healthInterval: healthInterval,
		history:        NewRingBuffer[CountSample](maxHistory),
		pauseCh:        make(chan struct{}),
		wakeCh:         make(chan struct{}),
		refresh:        make(chan struct{}, 1),
	}
}

// Start launches the polling loop. Only one live loop is allowed at a
// time; a second Start without an intervening Stop returns ErrRunning.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrRunning
	}
	p.started = true
	p.paused = false
	p.stopCh = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.run(ctx, p.stopCh)
	return nil
}

// Stop shuts the polling loop down and aborts any request in flight.
// The poller can be started again afterwards.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.started = false
	p.cancel()
	close(p.stopCh)
}

// Pause stops both timers without tearing the loop down, for when the
// dashboard is not visible. No requests are made while paused.
func (p *Poller) Pause() {
	p.mu.Lock()
	if !p.started || p.paused {
		p.mu.Unlock()
		return
	}
	p.paused = true
	stopCh := p.stopCh
	p.mu.Unlock()

	select {
	case p.pauseCh <- struct{}{}:
	case <-stopCh:
	}
}

// Resume restarts the timers and fires a data cycle immediately. The
// health probe waits for its own next tick.
func (p *Poller) Resume() {
	p.mu.Lock()
	if !p.started || !p.paused {
		p.mu.Unlock()
		return
	}
	p.paused = false
	stopCh := p.stopCh
	p.mu.Unlock()

	select {
	case p.wakeCh <- struct{}{}:
	case <-stopCh:
	}
}

// Refresh requests an extra data cycle outside the regular schedule.
// Requests are coalesced; a paused or stopped poller ignores them.
func (p *Poller) Refresh() {
	p.mu.RLock()
	ok := p.started && !p.paused
	p.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// run owns both timers. The first cycle and probe fire immediately so
// the dashboard has data before the first tick.
func (p *Poller) run(ctx context.Context, stopCh chan struct{}) {
	p.cycle(ctx)
	p.checkHealth(ctx)

	poll := time.NewTicker(p.pollInterval)
	health := time.NewTicker(p.healthInterval)
	defer func() {
		poll.Stop()
		health.Stop()
	}()

	for {
		select {
		case <-stopCh:
			return
		case <-p.pauseCh:
			poll.Stop()
			health.Stop()
			select {
			case <-p.wakeCh:
				poll = time.NewTicker(p.pollInterval)
				health = time.NewTicker(p.healthInterval)
				p.cycle(ctx)
			case <-stopCh:
				return
			}
		case <-p.refresh:
			p.cycle(ctx)
		case <-poll.C:
			p.cycle(ctx)
		case <-health.C:
			p.checkHealth(ctx)
		}
	}
}

// cycle performs one data refresh. On failure the previous data is
// left untouched; only the connectivity flag and error counters move.
func (p *Poller) cycle(ctx context.Context) {
	cycle, err := p.client.FetchCycle(ctx)
	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.connected = false
		p.lastError = err
		p.errorCount++
		p.notify()
		return
	}

	p.connected = true
	p.lastError = nil
	p.running = cycle.Stats.IsRunning
	p.currentCount = cycle.Stats.CurrentCount
	p.activeObjects = cycle.Objects.ActiveObjects
	p.objects = cycle.Objects.Objects
	p.analytics = cycle.Stats.Analytics
	p.statsByClass = cycle.Stats.StatsByClass
	p.lastReset = cycle.Stats.LastReset
	p.lastUpdate = now
	p.pollCount++
	p.history.Add(CountSample{Timestamp: now, Active: p.activeObjects, Total: p.currentCount})
	p.notify()
}

// checkHealth performs one liveness probe. It only moves the
// connectivity flag, never the dashboard data.
func (p *Poller) checkHealth(ctx context.Context) {
	health, err := p.client.Health(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil || !health.Healthy() {
		p.connected = false
		if err != nil {
			p.lastError = err
		}
		p.errorCount++
	} else {
		p.connected = true
		p.lastError = nil
	}
	p.notify()
}

// ResetData clears objects, analytics, and history after a confirmed
// count reset, so the empty state renders before the next poll
// confirms it.
func (p *Poller) ResetData() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.objects = nil
	p.activeObjects = 0
	p.currentCount = 0
	p.analytics = nil
	p.statsByClass = nil
	p.history.Clear()
	p.notify()
}

// Snapshot returns a point-in-time copy of the dashboard data. Safe
// to call from any goroutine.
func (p *Poller) Snapshot() *Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotLocked()
}

// snapshotLocked builds a Snapshot without acquiring any lock. The
// caller must hold at least a read lock on p.mu.
func (p *Poller) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		Connected:     p.connected,
		Running:       p.running,
		CurrentCount:  p.currentCount,
		ActiveObjects: p.activeObjects,
		LastReset:     p.lastReset,
		LastUpdate:    p.lastUpdate,
		LastError:     p.lastError,
		PollCount:     p.pollCount,
		ErrorCount:    p.errorCount,
		History:       p.history.All(),
	}

	if p.objects != nil {
		snap.Objects = make([]api.DetectedObject, len(p.objects))
		copy(snap.Objects, p.objects)
	}
	if p.analytics != nil {
		snap.Analytics = make(map[api.Period]api.Series, len(p.analytics))
		for k, v := range p.analytics {
			snap.Analytics[k] = v
		}
	}
	if p.statsByClass != nil {
		snap.StatsByClass = make(map[string]api.ClassStat, len(p.statsByClass))
		for k, v := range p.statsByClass {
			snap.StatsByClass[k] = v
		}
	}
	return snap
}

// Subscribe returns a channel that receives an event after each cycle
// or probe. Slow subscribers miss events instead of blocking the loop.
func (p *Poller) Subscribe() <-chan Event {
	ch := make(chan Event, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, ch)
	return ch
}

// notify sends the current snapshot to all subscribers (non-blocking).
// Must be called while holding the write lock on p.mu.
func (p *Poller) notify() {
	event := Event{Snapshot: p.snapshotLocked()}
	for _, ch := range p.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
