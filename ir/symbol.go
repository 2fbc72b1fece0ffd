// Package ir models infrared output waveforms as timed symbols and provides
// resumable encoders that fill bounded symbol buffers.
package ir

import (
	"fmt"

	"github.com/pkg/errors"
)

// Level is the output polarity of one phase of a symbol.
type Level uint8

const (
	Low  Level = 0
	High Level = 1
)

// MaxDuration is the largest tick count a single phase can hold. The
// transmit peripheral stores each duration in 15 bits.
const MaxDuration = 0x7fff

// Symbol is one timed high/low pair of the output waveform.
type Symbol struct {
	Level0    Level
	Duration0 uint16
	Level1    Level
	Duration1 uint16
}

// Validate reports whether both phases fit the peripheral's duration field.
func (s Symbol) Validate() error {
	if s.Level0 > High || s.Level1 > High {
		return errors.Errorf("invalid level in symbol %v", s)
	}
	if s.Duration0 > MaxDuration || s.Duration1 > MaxDuration {
		return errors.Errorf("symbol duration exceeds %d ticks: %v", MaxDuration, s)
	}
	return nil
}

// Ticks returns the total length of the symbol.
func (s Symbol) Ticks() uint32 {
	return uint32(s.Duration0) + uint32(s.Duration1)
}

// Word packs the symbol the way the peripheral's memory block stores it:
// duration0 in bits 0-14, level0 in bit 15, duration1 in bits 16-30 and
// level1 in bit 31.
func (s Symbol) Word() uint32 {
	return uint32(s.Duration0&MaxDuration) |
		uint32(s.Level0&1)<<15 |
		uint32(s.Duration1&MaxDuration)<<16 |
		uint32(s.Level1&1)<<31
}

// SymbolFromWord unpacks a memory block word.
func SymbolFromWord(w uint32) Symbol {
	return Symbol{
		Duration0: uint16(w & MaxDuration),
		Level0:    Level(w>>15) & 1,
		Duration1: uint16((w >> 16) & MaxDuration),
		Level1:    Level(w>>31) & 1,
	}
}

func (s Symbol) String() string {
	return fmt.Sprintf("{%d:%d %d:%d}", s.Level0, s.Duration0, s.Level1, s.Duration1)
}
