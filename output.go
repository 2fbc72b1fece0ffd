package greeremote

import (
	"sync"
	"time"

	"github.com/hatstand/greeremote/gree"
	"github.com/hatstand/greeremote/ir"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Carrier is a PWM channel modulating the IR LED. embd.PWMPin satisfies it.
type Carrier interface {
	SetPeriod(ns int) error
	SetDuty(ns int) error
	Close() error
}

// PWMOutput plays symbols by switching a modulated carrier on for high
// phases and off for low phases.
type PWMOutput struct {
	carrier Carrier
	// Duty in ns while the carrier is on.
	duty int
	tick time.Duration
	on   bool
	// hold is set after an EndOfSequence phase that has not been slept yet.
	hold bool

	sleep   func(time.Duration)
	onClose func() error
}

func NewPWMOutput(carrier Carrier, config Config) (*PWMOutput, error) {
	config = config.withDefaults()
	period := int(time.Second) / config.CarrierFrequency
	if err := carrier.SetPeriod(period); err != nil {
		return nil, errors.Wrap(err, "failed to set carrier period")
	}
	if err := carrier.SetDuty(0); err != nil {
		return nil, errors.Wrap(err, "failed to switch carrier off")
	}
	return &PWMOutput{
		carrier: carrier,
		duty:    period * config.DutyCycle / 100,
		tick:    time.Second / time.Duration(config.Resolution),
		sleep:   time.Sleep,
	}, nil
}

// Write plays symbols. An EndOfSequence low phase is deferred until another
// phase follows, so repeated frames stay apart without delaying the last one.
func (o *PWMOutput) Write(symbols []ir.Symbol) error {
	for _, s := range symbols {
		if err := o.phase(s.Level0, s.Duration0); err != nil {
			return err
		}
		if err := o.phase(s.Level1, s.Duration1); err != nil {
			return err
		}
	}
	return nil
}

func (o *PWMOutput) phase(level ir.Level, ticks uint16) error {
	if o.hold {
		o.sleep(time.Duration(gree.EndOfSequence) * o.tick)
		o.hold = false
	}
	on := level == ir.High
	if on != o.on {
		duty := 0
		if on {
			duty = o.duty
		}
		if err := o.carrier.SetDuty(duty); err != nil {
			return errors.Wrap(err, "failed to set carrier duty")
		}
		o.on = on
	}
	if !on && ticks == gree.EndOfSequence {
		o.hold = true
		return nil
	}
	o.sleep(time.Duration(ticks) * o.tick)
	return nil
}

func (o *PWMOutput) Close() error {
	o.hold = false
	err := multierr.Combine(o.carrier.SetDuty(0), o.carrier.Close())
	if o.onClose != nil {
		err = multierr.Append(err, o.onClose())
	}
	return err
}

// RecordingOutput keeps every write in memory. It is used for dry runs.
type RecordingOutput struct {
	lock    sync.Mutex
	symbols []ir.Symbol
	writes  int
}

func (r *RecordingOutput) Write(symbols []ir.Symbol) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.symbols = append(r.symbols, symbols...)
	r.writes++
	return nil
}

// Symbols returns everything written so far.
func (r *RecordingOutput) Symbols() []ir.Symbol {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]ir.Symbol(nil), r.symbols...)
}

// Writes returns the number of Write calls.
func (r *RecordingOutput) Writes() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.writes
}

func (r *RecordingOutput) Reset() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.symbols = nil
	r.writes = 0
}

func (r *RecordingOutput) Close() error {
	return nil
}
