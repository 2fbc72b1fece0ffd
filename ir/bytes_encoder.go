package ir

import "github.com/pkg/errors"

// BytesEncoderConfig describes how a single bit is drawn.
type BytesEncoderConfig struct {
	Bit0 Symbol
	Bit1 Symbol
	// LSBFirst sends the least significant bit of each byte first. The
	// default is most significant bit first.
	LSBFirst bool
}

// BytesEncoder turns a byte span into one symbol per bit. It keeps a cursor
// so a span can be emitted across several calls with bounded destinations.
type BytesEncoder struct {
	bit0     Symbol
	bit1     Symbol
	lsbFirst bool

	byteOffset int
	bitOffset  int
}

func NewBytesEncoder(config BytesEncoderConfig) (*BytesEncoder, error) {
	for _, s := range []Symbol{config.Bit0, config.Bit1} {
		if err := s.Validate(); err != nil {
			return nil, errors.Wrap(err, "invalid bit symbol")
		}
		if s.Ticks() == 0 {
			return nil, errors.Errorf("bit symbol has zero length: %v", s)
		}
	}
	return &BytesEncoder{
		bit0:     config.Bit0,
		bit1:     config.Bit1,
		lsbFirst: config.LSBFirst,
	}, nil
}

// Encode writes symbols for data into dst starting at the saved cursor. It
// returns the number of symbols written and StateComplete once every bit of
// data has been emitted, or StateBufferFull if dst filled first.
func (e *BytesEncoder) Encode(dst []Symbol, data []byte) (int, State) {
	if len(data) == 0 {
		panic("ir: BytesEncoder.Encode called with empty data")
	}
	n := 0
	for e.byteOffset < len(data) {
		b := data[e.byteOffset]
		for e.bitOffset < 8 {
			if n == len(dst) {
				return n, StateBufferFull
			}
			dst[n] = e.symbolFor(b, e.bitOffset)
			n++
			e.bitOffset++
		}
		e.bitOffset = 0
		e.byteOffset++
	}
	e.Reset()
	return n, StateComplete
}

func (e *BytesEncoder) symbolFor(b byte, i int) Symbol {
	shift := 7 - i
	if e.lsbFirst {
		shift = i
	}
	if (b>>shift)&1 == 1 {
		return e.bit1
	}
	return e.bit0
}

// Reset moves the cursor back to the first bit.
func (e *BytesEncoder) Reset() {
	e.byteOffset = 0
	e.bitOffset = 0
}
