package intelhex

import (
	"fmt"
	"strings"
)

// EncodeOptions define encoder specific options.
type EncodeOptions struct {
	// LineSize is the number of data bytes per record. Values above 255
	// are capped by the one-byte length field.
	// Default: 16.
	LineSize int
}

// eofRecord terminates every encoded stream.
const eofRecord = ":00000001FF"

// Encode renders m as Intel HEX text: uppercase records joined by single
// newlines, Extended Linear Address records on segment crossings, and a
// final end-of-file record. Zero-length blocks encode to nothing.
func Encode(m *MemoryMap, o *EncodeOptions) (string, error) {
	lineSize := DefaultLineSize
	if o != nil && o.LineSize != 0 {
		if o.LineSize < 0 {
			return "", fmt.Errorf("%w: %d", ErrInvalidRecordSize, o.LineSize)
		}
		lineSize = o.LineSize
	}
	if lineSize > 0xFF {
		lineSize = 0xFF
	}

	var (
		sb   strings.Builder
		high uint64 // current 64KiB segment base
		low  uint64 // write cursor within the segment
	)

	for _, b := range m.blocks {
		if len(b.Data) == 0 {
			continue
		}
		if b.End() > 1<<32 {
			return "", fmt.Errorf("%w: block at 0x%08X ends past 0xFFFFFFFF", ErrAddressOutOfRange, b.Address)
		}

		addr := uint64(b.Address)
		if addr > high+0xFFFF {
			high = addr - addr%0x10000
			writeExtLinear(&sb, uint32(high))
			low = 0
		}
		if addr < high+low {
			return "", fmt.Errorf("%w: block at 0x%08X begins before the write cursor", ErrOverlappingBlocks, b.Address)
		}
		low = addr % 0x10000

		for off := 0; off < len(b.Data); {
			if low > 0xFFFF {
				high += 0x10000
				writeExtLinear(&sb, uint32(high))
				low = 0
			}

			n := lineSize
			if rem := len(b.Data) - off; n > rem {
				n = rem
			}
			if rem := int(0x10000 - low); n > rem {
				n = rem
			}
			writeRecord(&sb, uint16(low), recData, b.Data[off:off+n])
			off += n
			low += uint64(n)
		}
	}

	sb.WriteString(eofRecord)
	return sb.String(), nil
}

const hexDigits = "0123456789ABCDEF"

func writeHexByte(sb *strings.Builder, c byte) {
	sb.WriteByte(hexDigits[c>>4])
	sb.WriteByte(hexDigits[c&0x0F])
}

func writeExtLinear(sb *strings.Builder, base uint32) {
	writeRecord(sb, 0, recExtLinear, []byte{byte(base >> 24), byte(base >> 16)})
}

// writeRecord appends one record line and its terminator.
func writeRecord(sb *strings.Builder, offset uint16, typ byte, payload []byte) {
	header := [4]byte{byte(len(payload)), byte(offset >> 8), byte(offset), typ}

	sb.WriteByte(':')
	for _, c := range header {
		writeHexByte(sb, c)
	}
	for _, c := range payload {
		writeHexByte(sb, c)
	}
	writeHexByte(sb, checksumPair(header[:], payload))
	sb.WriteByte('\n')
}
