package intelhex

import (
	"fmt"
	"sort"
)

// Join returns a new map in which every run of byte-adjacent blocks is
// merged into a single block. maxBlockSize caps the size of merged blocks:
// a new output block is started rather than growing one past the cap;
// values < 1 mean unbounded. Overlapping input blocks are an error.
func (m *MemoryMap) Join(maxBlockSize int) (*MemoryMap, error) {
	extents, err := m.joinExtents(maxBlockSize)
	if err != nil {
		return nil, err
	}

	blocks := make([]Block, 0, len(extents))
	pos := 0
	for _, ext := range extents {
		buf := make([]byte, 0, ext.size)
		for pos < len(m.blocks) && len(buf) < ext.size {
			buf = append(buf, m.blocks[pos].Data...)
			pos++
		}
		blocks = append(blocks, Block{Address: ext.start, Data: buf})
	}
	return &MemoryMap{blocks: blocks}, nil
}

type extent struct {
	start uint32
	size  int
}

// joinExtents is the first of Join's two passes: it computes the address
// and size of every output block without copying any data.
func (m *MemoryMap) joinExtents(maxBlockSize int) ([]extent, error) {
	var extents []extent
	for _, b := range m.blocks {
		if len(b.Data) == 0 {
			continue
		}
		if n := len(extents); n != 0 {
			last := &extents[n-1]
			end := uint64(last.start) + uint64(last.size)
			if uint64(b.Address) < end {
				return nil, fmt.Errorf("%w: around address 0x%08X", ErrOverlappingBlocks, b.Address)
			}
			if uint64(b.Address) == end && (maxBlockSize < 1 || last.size+len(b.Data) <= maxBlockSize) {
				last.size += len(b.Data)
				continue
			}
		}
		extents = append(extents, extent{start: b.Address, size: len(b.Data)})
	}
	return extents, nil
}

// Paginate re-tiles the map into blocks of exactly pageSize bytes, aligned
// to multiples of pageSize and filled with pad wherever the input has no
// data. Only pages that contain at least one input byte are emitted; blocks
// that end past 0xFFFFFFFF are an error.
func (m *MemoryMap) Paginate(pageSize int, pad byte) (*MemoryMap, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}

	var (
		size  = uint64(pageSize)
		pages = make(map[uint32]int) // page address -> block position
		out   []Block
	)
	for _, b := range m.blocks {
		if b.End() > 1<<32 {
			return nil, fmt.Errorf("%w: block at 0x%08X ends past 0xFFFFFFFF", ErrAddressOutOfRange, b.Address)
		}
		for addr, end := uint64(b.Address), b.End(); addr < end; {
			pageAddr := uint32(addr - addr%size)

			var page []byte
			if i, ok := pages[pageAddr]; ok {
				page = out[i].Data
			} else {
				page = make([]byte, pageSize)
				for i := range page {
					page[i] = pad
				}
				pages[pageAddr] = len(out)
				out = append(out, Block{Address: pageAddr, Data: page})
			}

			stop := uint64(pageAddr) + size
			if stop > end {
				stop = end
			}
			copy(page[addr-uint64(pageAddr):], b.Data[addr-uint64(b.Address):stop-uint64(b.Address)])
			addr = stop
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return &MemoryMap{blocks: out}, nil
}
