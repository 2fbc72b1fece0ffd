package greeremote

import (
	"context"
	"sync"

	"github.com/hatstand/greeremote/gree"
	"github.com/hatstand/greeremote/ir"
	"github.com/kidoman/embd"
	_ "github.com/kidoman/embd/host/all"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	// DefaultMemBlockSymbols is the size of the transmit buffer handed to
	// the encoder on each call.
	DefaultMemBlockSymbols = 64
)

var ErrNilScanCode = errors.New("greeremote: nil scan code")

var (
	framesTransmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "greeremote",
		Name:      "frames_transmitted_total",
		Help:      "Complete IR frames written to the output.",
	})
	symbolsTransmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "greeremote",
		Name:      "symbols_transmitted_total",
		Help:      "IR symbols written to the output.",
	})
	chunksTransmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "greeremote",
		Name:      "chunks_transmitted_total",
		Help:      "Transmit buffer refills.",
	})
	transmitErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "greeremote",
		Name:      "transmit_errors_total",
		Help:      "Transmissions that failed or were cancelled.",
	})
)

const tracerName = "github.com/hatstand/greeremote"

// Config configures a Transmitter and its output.
type Config struct {
	// MemBlockSymbols bounds how many symbols are encoded per output write.
	MemBlockSymbols int
	// CarrierFrequency is the modulation frequency in Hz.
	CarrierFrequency int
	// DutyCycle is the modulation duty cycle in percent. Values outside
	// 1-100 fall back to the protocol default.
	DutyCycle int
	// Resolution is the symbol tick rate in Hz.
	Resolution uint32
	// LoopCount is the number of extra times each frame is repeated.
	LoopCount int
	// TracerProvider receives a span per Transmit. Defaults to the global
	// provider.
	TracerProvider trace.TracerProvider
}

func DefaultConfig() Config {
	return Config{
		MemBlockSymbols:  DefaultMemBlockSymbols,
		CarrierFrequency: gree.CarrierFrequency,
		DutyCycle:        gree.CarrierDutyCycle,
		Resolution:       gree.DefaultResolution,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MemBlockSymbols <= 0 {
		c.MemBlockSymbols = d.MemBlockSymbols
	}
	if c.CarrierFrequency <= 0 {
		c.CarrierFrequency = d.CarrierFrequency
	}
	if c.DutyCycle < 1 || c.DutyCycle > 100 {
		c.DutyCycle = d.DutyCycle
	}
	if c.Resolution == 0 {
		c.Resolution = d.Resolution
	}
	if c.LoopCount < 0 {
		c.LoopCount = 0
	}
	if c.TracerProvider == nil {
		c.TracerProvider = otel.GetTracerProvider()
	}
	return c
}

// Output consumes encoded symbols.
type Output interface {
	Write(symbols []ir.Symbol) error
	Close() error
}

// Transmitter owns a Gree encoder and the bounded buffer it fills, and
// feeds the buffer to an Output until each frame is complete.
type Transmitter struct {
	encoder   *gree.Encoder
	output    Output
	buf       []ir.Symbol
	loopCount int
	tracer    trace.Tracer
	logger    *zap.Logger
	lock      sync.Mutex
}

func NewTransmitter(output Output, config Config, logger *zap.Logger) (*Transmitter, error) {
	config = config.withDefaults()
	encoder, err := gree.NewEncoder(gree.Config{Resolution: config.Resolution})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create encoder")
	}
	return &Transmitter{
		encoder:   encoder,
		output:    output,
		buf:       make([]ir.Symbol, config.MemBlockSymbols),
		loopCount: config.LoopCount,
		tracer:    config.TracerProvider.Tracer(tracerName),
		logger:    logger,
	}, nil
}

// NewPWMTransmitter drives an IR LED on the given embd PWM pin.
func NewPWMTransmitter(pin interface{}, config Config, logger *zap.Logger) (*Transmitter, error) {
	config = config.withDefaults()
	if err := embd.InitGPIO(); err != nil {
		return nil, errors.Wrap(err, "failed to init GPIO")
	}
	pwm, err := embd.NewPWMPin(pin)
	if err != nil {
		embd.CloseGPIO()
		return nil, errors.Wrapf(err, "failed to open PWM pin %v", pin)
	}
	output, err := NewPWMOutput(pwm, config)
	if err != nil {
		pwm.Close()
		embd.CloseGPIO()
		return nil, err
	}
	output.onClose = embd.CloseGPIO
	t, err := NewTransmitter(output, config, logger)
	if err != nil {
		output.Close()
		return nil, err
	}
	return t, nil
}

// Transmit sends one command, repeated LoopCount extra times. Any partly
// sent frame from an earlier failed call is discarded first.
func (t *Transmitter) Transmit(ctx context.Context, code *gree.ScanCode) error {
	if code == nil {
		return ErrNilScanCode
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.encoder.Closed() {
		return gree.ErrClosed
	}

	ctx, span := t.tracer.Start(ctx, "Transmit", trace.WithAttributes(
		attribute.String("scan_code", code.String()),
		attribute.Int("loop_count", t.loopCount),
	))
	defer span.End()

	for i := 0; i <= t.loopCount; i++ {
		t.encoder.Reset()
		if err := t.transmitFrame(ctx, code); err != nil {
			t.encoder.Reset()
			transmitErrors.Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.Int("frames", i))
			return err
		}
		framesTransmitted.Inc()
	}
	span.SetAttributes(attribute.Int("frames", t.loopCount+1))
	t.logger.Debug("Transmitted",
		zap.Stringer("code", code),
		zap.Int("frames", t.loopCount+1),
		zap.Stringer("trace_id", span.SpanContext().TraceID()))
	return nil
}

func (t *Transmitter) transmitFrame(ctx context.Context, code *gree.ScanCode) error {
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "transmission aborted at %s", t.encoder.Step())
		}
		n, state := t.encoder.Encode(t.buf, code)
		t.logger.Debug("Encoded chunk",
			zap.Int("symbols", n),
			zap.Stringer("state", state),
			zap.Stringer("next", t.encoder.Step()))
		if n > 0 {
			if err := t.output.Write(t.buf[:n]); err != nil {
				return errors.Wrap(err, "failed to write symbols")
			}
			chunksTransmitted.Inc()
			symbolsTransmitted.Add(float64(n))
		}
		if state.Complete() {
			return nil
		}
	}
}

// Close releases the encoder and the output.
func (t *Transmitter) Close() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	return multierr.Combine(t.encoder.Close(), t.output.Close())
}
