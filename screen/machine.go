package screen

import (
	"sync"

	"github.com/ncobase/newsdesk/ecode"
)

// State of a screen
type State int

const (
	Idle State = iota
	Submitting
	Success
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	default:
		return "idle"
	}
}

// ErrBusy is returned when a screen is submitted while a submit is running.
var ErrBusy = ecode.Server(ecode.RequestErr, "A request is already in progress")

// Machine tracks the submit state of a screen
type Machine struct {
	mu      sync.Mutex
	state   State
	err     error
	message string
}

// State returns the current state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the last error, nil after a success.
func (m *Machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// ErrMessage returns the inline message for the last error
func (m *Machine) ErrMessage() string {
	return ecode.Message(m.Err())
}

// Message returns the success message, if the screen sets one
func (m *Machine) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.message
}

func (m *Machine) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Submitting {
		return ErrBusy
	}
	m.state = Submitting
	m.err = nil
	m.message = ""
	return nil
}

func (m *Machine) succeed(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Success
	m.err = nil
	m.message = message
}

// fail returns the machine to Idle keeping err, and returns err.
func (m *Machine) fail(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Idle
	m.err = err
	m.message = ""
	return err
}

// reject records err for a submit refused before begin. A submit already in
// flight owns the state, so the machine is left alone then.
func (m *Machine) reject(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Submitting {
		return err
	}
	m.state = Idle
	m.err = err
	m.message = ""
	return err
}

// Navigator moves the operator to another route
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Recorder is a Navigator that remembers the last route.
type Recorder struct {
	mu    sync.Mutex
	route string
}

func (r *Recorder) Navigate(route string) {
	r.mu.Lock()
	r.route = route
	r.mu.Unlock()
}

// Route returns the last route, empty when none.
func (r *Recorder) Route() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route
}

func navigate(nav Navigator, route string) {
	if nav != nil {
		nav.Navigate(route)
	}
}
