package intelhex

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/golang/snappy"
)

var imageMagic = []byte{0x89, 'I', 'H', 'X', 0x0D, 0x0A, 0x1A, 0x0A}

const (
	imageNoCompression     = 0
	imageSnappyCompression = 1

	imageFooterLen = 16
)

// Compression is the image compression codec.
type Compression byte

// Supported compression codecs.
const (
	SnappyCompression Compression = iota
	NoCompression
	unknownCompression
)

func (c Compression) isValid() bool {
	return c >= SnappyCompression && c < unknownCompression
}

// ImageOptions define image specific options.
type ImageOptions struct {
	// The compression codec to use.
	// Default: SnappyCompression.
	Compression Compression
}

func (o *ImageOptions) norm() *ImageOptions {
	var oo ImageOptions
	if o != nil {
		oo = *o
	}
	if !oo.Compression.isValid() {
		oo.Compression = SnappyCompression
	}
	return &oo
}

// WriteImage writes m to w in the binary image format described in the
// package documentation. Zero-length blocks are not stored.
func WriteImage(w io.Writer, m *MemoryMap, o *ImageOptions) error {
	opts := o.norm()

	var (
		body  []byte
		tmp   [2 * binary.MaxVarintLen64]byte
		prev  uint64
		count uint64
	)
	for _, b := range m.blocks {
		if len(b.Data) == 0 {
			continue
		}
		n := binary.PutUvarint(tmp[0:], uint64(b.Address)-prev)
		n += binary.PutUvarint(tmp[n:], uint64(len(b.Data)))
		body = append(body, tmp[:n]...)
		body = append(body, b.Data...)
		prev = uint64(b.Address)
		count++
	}

	var blob []byte
	switch opts.Compression {
	case SnappyCompression:
		if snp := snappy.Encode(nil, body); len(snp) < len(body)-len(body)/4 {
			blob = append(snp, imageSnappyCompression)
		} else {
			blob = append(body, imageNoCompression)
		}
	default:
		blob = append(body, imageNoCompression)
	}

	if _, err := w.Write(blob); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(tmp[:8], count)
	if _, err := w.Write(tmp[:8]); err != nil {
		return err
	}
	_, err := w.Write(imageMagic)
	return err
}

// ReadImage reads a binary image of the given size from r and rebuilds the
// memory map.
func ReadImage(r io.ReaderAt, size int64) (*MemoryMap, error) {
	if size < imageFooterLen+1 {
		return nil, ErrCorruptImage
	}

	foot := make([]byte, imageFooterLen)
	if _, err := r.ReadAt(foot, size-imageFooterLen); err != nil {
		return nil, err
	}
	if !bytes.Equal(foot[8:], imageMagic) {
		return nil, ErrBadImageMagic
	}
	count := binary.LittleEndian.Uint64(foot[:8])

	blob := make([]byte, size-imageFooterLen)
	if _, err := r.ReadAt(blob, 0); err != nil {
		return nil, err
	}

	var body []byte
	switch cpos := len(blob) - 1; blob[cpos] {
	case imageNoCompression:
		body = blob[:cpos]
	case imageSnappyCompression:
		plain, err := snappy.Decode(nil, blob[:cpos])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptImage, err)
		}
		body = plain
	default:
		return nil, ErrBadImageCodec
	}

	// Every entry takes at least two body bytes, which bounds any
	// count the footer may claim.
	if count > uint64(len(body)/2) {
		return nil, ErrCorruptImage
	}

	var (
		blocks = make([]Block, 0, count)
		prev   uint64
		pos    int
	)
	for i := uint64(0); i < count; i++ {
		delta, n := binary.Uvarint(body[pos:])
		if n <= 0 || (i != 0 && delta == 0) {
			return nil, ErrCorruptImage
		}
		pos += n

		length, n := binary.Uvarint(body[pos:])
		if n <= 0 || length > uint64(len(body)-pos-n) {
			return nil, ErrCorruptImage
		}
		pos += n

		addr := prev + delta
		if addr > math.MaxUint32 {
			return nil, ErrCorruptImage
		}
		blocks = append(blocks, Block{
			Address: uint32(addr),
			Data:    append([]byte(nil), body[pos:pos+int(length)]...),
		})
		pos += int(length)
		prev = addr
	}
	if pos != len(body) {
		return nil, ErrCorruptImage
	}
	return &MemoryMap{blocks: blocks}, nil
}
