package gree

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ScanCode is the payload of one remote command. Data1 and Data3 are each
// followed on the wire by the fixed bits 010, which are not stored here.
type ScanCode struct {
	Data1 uint32
	Data2 uint32
	Data3 uint32
	Data4 uint32
}

// fieldBytes returns v in the byte order the fields are transmitted in.
func fieldBytes(dst *[4]byte, v uint32) []byte {
	binary.LittleEndian.PutUint32(dst[:], v)
	return dst[:]
}

func (c ScanCode) String() string {
	return fmt.Sprintf("%08x:%08x:%08x:%08x", c.Data1, c.Data2, c.Data3, c.Data4)
}

// ParseScanCode parses the String form, four colon separated hex words.
func ParseScanCode(s string) (ScanCode, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 4 {
		return ScanCode{}, errors.Errorf("scan code %q: expected 4 fields, got %d", s, len(parts))
	}
	var words [4]uint32
	for i, p := range parts {
		p = strings.TrimPrefix(strings.TrimPrefix(p, "0x"), "0X")
		if p == "" || len(p) > 8 {
			return ScanCode{}, errors.Errorf("scan code %q: bad field %d", s, i+1)
		}
		v, err := strconv.ParseUint(p, 16, 32)
		if err != nil {
			return ScanCode{}, errors.Wrapf(err, "scan code %q: field %d", s, i+1)
		}
		words[i] = uint32(v)
	}
	return ScanCode{words[0], words[1], words[2], words[3]}, nil
}
