package touch

import (
	"log"
	"sync"
	"time"
)

// ReadFunc returns the logical (polarity adjusted) state of an input.
type ReadFunc func() (bool, error)

// PollingSensor samples an input at a fixed interval and reports state
// changes that stay stable for the debounce delay.
type PollingSensor struct {
	name          string
	read          ReadFunc
	closeFn       func() error
	debounceDelay time.Duration
	pollInterval  time.Duration

	eventChannel chan Event
	stopChannel  chan struct{}
	wg           sync.WaitGroup
	started      bool
	stopped      bool
	mutex        sync.RWMutex

	// debounce state, owned by the polling goroutine once started
	lastState     bool
	currentState  bool
	lastDebounce  time.Time
	stateReported bool
}

// NewPollingSensor creates a sensor named name that samples read. A zero
// debounce or interval selects the default.
func NewPollingSensor(name string, read ReadFunc, debounce, interval time.Duration) (*PollingSensor, error) {
	if read == nil {
		return nil, ErrReadRequired
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &PollingSensor{
		name:          name,
		read:          read,
		debounceDelay: debounce,
		pollInterval:  interval,
		eventChannel:  make(chan Event, 100),
		stopChannel:   make(chan struct{}),
	}, nil
}

// OnClose registers fn to release the underlying input when the sensor
// stops.
func (s *PollingSensor) OnClose(fn func() error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closeFn = fn
}

func (s *PollingSensor) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.started || s.stopped {
		return ErrAlreadyStarted
	}

	// The initial level counts as already reported, so holding the sensor
	// at startup does not produce a press.
	initial := s.readState()
	s.lastState = initial
	s.currentState = initial
	s.stateReported = true

	s.started = true
	s.wg.Add(1)
	go s.monitor()

	log.Printf("started monitoring sensor %s", s.name)
	return nil
}

func (s *PollingSensor) Stop() {
	s.mutex.Lock()
	if s.stopped {
		s.mutex.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	closeFn := s.closeFn
	s.mutex.Unlock()

	// the polling goroutine takes the lock, so wait without holding it
	if started {
		close(s.stopChannel)
		s.wg.Wait()
	}

	if closeFn != nil {
		if err := closeFn(); err != nil {
			log.Printf("error closing sensor %s: %v", s.name, err)
		}
	}

	close(s.eventChannel)
	log.Printf("stopped monitoring sensor %s", s.name)
}

func (s *PollingSensor) Events() <-chan Event {
	return s.eventChannel
}

func (s *PollingSensor) IsPressed() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.lastState
}

func (s *PollingSensor) String() string {
	return s.name
}

func (s *PollingSensor) monitor() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChannel:
			return
		case now := <-ticker.C:
			s.checkState(s.readState(), now)
		}
	}
}

func (s *PollingSensor) readState() bool {
	state, err := s.read()
	if err != nil {
		log.Printf("error reading sensor %s: %v", s.name, err)
		return false
	}
	return state
}

// checkState applies one sample to the debounce state machine.
func (s *PollingSensor) checkState(state bool, now time.Time) {
	if state != s.currentState {
		s.currentState = state
		s.lastDebounce = now
		s.stateReported = false
		return
	}

	if s.stateReported || now.Sub(s.lastDebounce) < s.debounceDelay {
		return
	}
	s.stateReported = true

	s.mutex.Lock()
	changed := state != s.lastState
	s.lastState = state
	s.mutex.Unlock()

	if !changed {
		return
	}

	eventType := Released
	if state {
		eventType = Pressed
	}

	select {
	case s.eventChannel <- Event{Source: s.name, Type: eventType, Timestamp: now}:
	default:
		log.Printf("warning: event channel full, dropping event for sensor %s", s.name)
	}
}

var _ Sensor = (*PollingSensor)(nil)
