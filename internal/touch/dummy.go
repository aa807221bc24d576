package touch

import (
	"log"
	"sync/atomic"
)

// DummyInput is an input level that tests and dry runs set by hand.
type DummyInput struct {
	name  string
	state atomic.Bool
}

func NewDummyInput(name string) *DummyInput {
	return &DummyInput{name: name}
}

func (d *DummyInput) Press() {
	log.Printf("pressing dummy input %s", d.name)
	d.state.Store(true)
}

func (d *DummyInput) Release() {
	log.Printf("releasing dummy input %s", d.name)
	d.state.Store(false)
}

// Read satisfies ReadFunc.
func (d *DummyInput) Read() (bool, error) {
	return d.state.Load(), nil
}
