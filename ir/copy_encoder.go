package ir

// CopyEncoder emits a fixed array of symbols verbatim, whole symbols only.
type CopyEncoder struct {
	copied int
}

func NewCopyEncoder() *CopyEncoder {
	return &CopyEncoder{}
}

// Encode copies the symbols of src not yet emitted into dst.
func (e *CopyEncoder) Encode(dst []Symbol, src []Symbol) (int, State) {
	if len(src) == 0 {
		panic("ir: CopyEncoder.Encode called with no symbols")
	}
	n := copy(dst, src[e.copied:])
	e.copied += n
	if e.copied < len(src) {
		return n, StateBufferFull
	}
	e.copied = 0
	return n, StateComplete
}

func (e *CopyEncoder) Reset() {
	e.copied = 0
}
