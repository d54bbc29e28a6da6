package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/Rorical/coldmail/internal/api"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// Session on UI events is the widget's session generation. Core echoes it
// on the matching completion so results from a reset session can be told
// apart.

// CheckStatusEvent - UI asks core to probe provider health
type CheckStatusEvent struct {
	Session int
}

func (e CheckStatusEvent) UIEvent() {}

// SendMessageEvent - UI asks core to send a conversation turn.
// An empty message starts the server-driven dialogue.
// A Session newer than any seen before starts a new server conversation.
type SendMessageEvent struct {
	Message string
	Session int
}

func (e SendMessageEvent) UIEvent() {}

// VerifyKeysEvent - UI asks core to test candidate keys
type VerifyKeysEvent struct {
	Keys api.Keys
}

func (e VerifyKeysEvent) UIEvent() {}

// SaveKeysEvent - UI asks core to persist keys on the server
type SaveKeysEvent struct {
	Keys api.Keys
}

func (e SaveKeysEvent) UIEvent() {}

// CopyEmailEvent - UI asks core to put the email on the clipboard
type CopyEmailEvent struct {
	Text    string
	Session int
}

func (e CopyEmailEvent) UIEvent() {}

// DownloadEmailEvent - UI asks core to fetch and write the email file
type DownloadEmailEvent struct {
	Session int
}

func (e DownloadEmailEvent) UIEvent() {}

// StatusCheckedEvent - Core reports a health probe completion
type StatusCheckedEvent struct {
	Result  api.CheckResult
	Err     error
	Session int
}

func (e StatusCheckedEvent) CoreEvent() {}

// ChatReplyEvent - Core reports a conversation turn completion
type ChatReplyEvent struct {
	Request string
	Reply   api.ChatReply
	Err     error
	Session int
}

func (e ChatReplyEvent) CoreEvent() {}

// VerifyResultEvent - Core reports a key verification completion
type VerifyResultEvent struct {
	Keys   api.Keys
	Result api.VerifyResult
	Err    error
}

func (e VerifyResultEvent) CoreEvent() {}

// SaveResultEvent - Core reports a key save completion
type SaveResultEvent struct {
	Result api.UpdateResult
	Err    error
}

func (e SaveResultEvent) CoreEvent() {}

// CopyResultEvent - Core reports a clipboard write
type CopyResultEvent struct {
	Err     error
	Session int
}

func (e CopyResultEvent) CoreEvent() {}

// DownloadResultEvent - Core reports where the email file was written
type DownloadResultEvent struct {
	Path    string
	Err     error
	Session int
}

func (e DownloadResultEvent) CoreEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

var (
	ErrCircuitOpen = errors.New("circuit breaker is open")
	ErrCoreFull    = errors.New("UI to Core channel is full")
	ErrUIFull      = errors.New("Core to UI channel is full")
	ErrClosed      = errors.New("event bus is closed")
)

// CircuitBreakerState represents the state of circuit breaker
type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker trips after repeated delivery failures and lets a probe
// through once resetTimeout has passed.
type CircuitBreaker struct {
	mu              sync.Mutex
	maxFailures     int
	resetTimeout    time.Duration
	failureCount    int
	lastFailureTime time.Time
	state           CircuitBreakerState
	now             func() time.Time
}

func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
		now:          time.Now,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CircuitOpen && cb.now().Sub(cb.lastFailureTime) > cb.resetTimeout {
		cb.state = CircuitHalfOpen
	}
	return cb.state == CircuitOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount = 0
	cb.state = CircuitClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount++
	cb.lastFailureTime = cb.now()

	if cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// EventBus handles communication between UI and Core with circuit breaker
type EventBus struct {
	mu             sync.RWMutex
	closed         bool
	uiToCore       chan UIEvent
	coreToUI       chan CoreEvent
	errorCallback  func(EventBusError)
	circuitBreaker *CircuitBreaker
}

func NewEventBus() *EventBus {
	return NewEventBusWithCapacity(100)
}

func NewEventBusWithCapacity(capacity int) *EventBus {
	return &EventBus{
		uiToCore:       make(chan UIEvent, capacity),
		coreToUI:       make(chan CoreEvent, capacity),
		circuitBreaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	eb.circuitBreaker.RecordFailure()

	if eb.errorCallback != nil {
		eb.errorCallback(EventBusError{
			Operation: operation,
			Err:       err,
			Timestamp: time.Now(),
		})
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return ErrClosed
	}
	if eb.circuitBreaker.IsOpen() {
		eb.reportError("SendToCore", ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case eb.uiToCore <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError("SendToCore", ErrCoreFull)
		return ErrCoreFull
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return ErrClosed
	}
	if eb.circuitBreaker.IsOpen() {
		eb.reportError("SendToUI", ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case eb.coreToUI <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError("SendToUI", ErrUIFull)
		return ErrUIFull
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

func (eb *EventBus) GetCircuitBreakerState() CircuitBreakerState {
	return eb.circuitBreaker.State()
}

// Close shuts both channels. Sends after Close return ErrClosed.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}
