package intelhex

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// DecodeOptions define decoder specific options.
type DecodeOptions struct {
	// MaxBlockSize caps the size of the merged blocks in the result.
	// Values < 1 mean unbounded.
	MaxBlockSize int
}

func (o *DecodeOptions) norm() *DecodeOptions {
	var oo DecodeOptions
	if o != nil {
		oo = *o
	}
	return &oo
}

// The shortest possible record carries length, offset, type and checksum
// fields: five bytes, ten hex digits.
const minRecordDigits = 10

// Decode parses Intel HEX text into a memory map. Records must be
// contiguous: any unmatched characters between them abort the decode.
// The decoder is strict and returns no partial results.
//
// Byte-adjacent records are merged into single blocks, capped at
// o.MaxBlockSize when set.
func Decode(text string, o *DecodeOptions) (*MemoryMap, error) {
	opts := o.norm()

	var (
		base    uint32 // upper base address register
		pos     int
		records int
		data    = make(map[uint32][]byte)
	)

	for pos < len(text) {
		line, next, ok := scanRecord(text, pos)
		if !ok {
			return nil, malformedAt(text, pos, records)
		}
		records++

		raw, err := hex.DecodeString(line[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: record %d (%s)", ErrMalformedLine, records, line)
		}
		if int(raw[0])+5 != len(raw) {
			return nil, fmt.Errorf("%w: record %d declares %d data bytes but carries %d (%s)", ErrLengthMismatch, records, raw[0], len(raw)-5, line)
		}
		if sum := Checksum(raw[:len(raw)-1]); sum != raw[len(raw)-1] {
			return nil, fmt.Errorf("%w: record %d (%s), expected %02X", ErrChecksumMismatch, records, line, sum)
		}

		offset := binary.BigEndian.Uint16(raw[1:3])
		payload := raw[4 : len(raw)-1]

		switch raw[3] {
		case recData:
			addr := base + uint32(offset)
			if _, dup := data[addr]; dup {
				return nil, fmt.Errorf("%w: record %d stores address 0x%08X twice", ErrDuplicateAddress, records, addr)
			}
			if int(offset)+len(payload) > 0x10000 {
				return nil, fmt.Errorf("%w: record %d ends past offset 0xFFFF (%s)", ErrOffsetWrap, records, line)
			}
			data[addr] = append([]byte(nil), payload...)
		case recEOF:
			if next < len(text) {
				return nil, fmt.Errorf("%w: %d characters after record %d", ErrTrailingData, len(text)-next, records)
			}
			return FromMap(data).Join(opts.MaxBlockSize)
		case recExtSegment:
			if offset != 0 {
				return nil, fmt.Errorf("%w: record %d (%s)", ErrNonZeroOffset, records, line)
			}
			if len(payload) != 2 {
				return nil, fmt.Errorf("%w: record %d: extended segment address record must carry a 2-byte payload", ErrMalformedLine, records)
			}
			base = uint32(binary.BigEndian.Uint16(payload)) << 4
		case recExtLinear:
			if offset != 0 {
				return nil, fmt.Errorf("%w: record %d (%s)", ErrNonZeroOffset, records, line)
			}
			if len(payload) != 2 {
				return nil, fmt.Errorf("%w: record %d: extended linear address record must carry a 2-byte payload", ErrMalformedLine, records)
			}
			base = uint32(binary.BigEndian.Uint16(payload)) << 16
		case recStartSegment, recStartLinear:
			// legacy program-counter records
		default:
			return nil, fmt.Errorf("%w: record %d has unsupported type %d (%s)", ErrMalformedLine, records, raw[3], line)
		}

		pos = next
	}

	if records == 0 {
		return nil, ErrEmptyInput
	}
	return nil, fmt.Errorf("%w: %d records parsed", ErrMissingEOF, records)
}

// scanRecord matches one record of the grammar :LLAAAATTDD..DDCC starting
// exactly at pos, followed by a CR, LF or CRLF terminator which is only
// optional at the end of the input. It returns the record text without the
// terminator and the position just past it.
func scanRecord(text string, pos int) (line string, next int, ok bool) {
	if pos >= len(text) || text[pos] != ':' {
		return "", 0, false
	}

	i := pos + 1
	for i < len(text) && isHexDigit(text[i]) {
		i++
	}
	if n := i - pos - 1; n < minRecordDigits || n%2 != 0 {
		return "", 0, false
	}

	line, next = text[pos:i], i
	if next < len(text) {
		switch text[next] {
		case '\r':
			next++
			if next < len(text) && text[next] == '\n' {
				next++
			}
		case '\n':
			next++
		default:
			return "", 0, false
		}
	}
	return line, next, true
}

// malformedAt reports the gap starting at pos: the range up to the next
// parseable record, or to the end of the input if there is none. Inputs
// without a single parseable record are reported as empty.
func malformedAt(text string, pos, records int) error {
	for i := pos + 1; i < len(text); i++ {
		if text[i] != ':' {
			continue
		}
		if _, _, ok := scanRecord(text, i); ok {
			return fmt.Errorf("%w: could not parse between characters %d and %d (%q)", ErrMalformedLine, pos, i, excerpt(text[pos:i]))
		}
	}
	if records == 0 {
		return ErrEmptyInput
	}
	return fmt.Errorf("%w: could not parse between characters %d and %d (%q)", ErrMalformedLine, pos, len(text), excerpt(text[pos:]))
}

func excerpt(s string) string {
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}
