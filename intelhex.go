package intelhex

import "sort"

// Intel HEX record types.
const (
	recData         byte = 0 // data bytes at base register + offset
	recEOF          byte = 1 // end of file indicator
	recExtSegment   byte = 2 // extended segment address
	recStartSegment byte = 3 // start segment address (legacy)
	recExtLinear    byte = 4 // extended linear address
	recStartLinear  byte = 5 // start linear address (legacy)
)

// Defaults used by the encoder, the paginator and the ihex tool.
const (
	DefaultLineSize = 16   // data bytes per encoded record
	DefaultPageSize = 1024 // page size for Paginate
	DefaultPad      = 0xFF // fill byte for padding
)

// Block is a contiguous run of bytes starting at Address.
type Block struct {
	Address uint32 // starting address of the block
	Data    []byte // block bytes
}

// End returns the first address past the block.
func (b Block) End() uint64 { return uint64(b.Address) + uint64(len(b.Data)) }

// --------------------------------------------------------------------

// MemoryMap is a sparse memory image: a set of blocks ordered by ascending
// start address. The zero value is an empty map ready for use.
//
// Transformations (Decode, Join, Paginate, Flatten) never mutate their
// input and always return maps that own freshly allocated buffers.
type MemoryMap struct {
	blocks []Block
}

// New returns an empty memory map.
func New() *MemoryMap {
	return &MemoryMap{}
}

// FromMap converts a plain address-to-bytes association into a memory map.
// The byte slices are stored without copying and must not be mutated while
// the map is in use.
func FromMap(data map[uint32][]byte) *MemoryMap {
	blocks := make([]Block, 0, len(data))
	for addr, buf := range data {
		blocks = append(blocks, Block{Address: addr, Data: buf})
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Address < blocks[j].Address })
	return &MemoryMap{blocks: blocks}
}

// Set stores data at addr, replacing the block that starts at exactly that
// address if one exists. The slice is stored without copying.
func (m *MemoryMap) Set(addr uint32, data []byte) {
	pos := m.search(addr)
	if pos < len(m.blocks) && m.blocks[pos].Address == addr {
		m.blocks[pos].Data = data
		return
	}
	m.blocks = append(m.blocks, Block{})
	copy(m.blocks[pos+1:], m.blocks[pos:])
	m.blocks[pos] = Block{Address: addr, Data: data}
}

// Delete removes the block that starts at exactly addr, if any, and reports
// whether a block was removed.
func (m *MemoryMap) Delete(addr uint32) bool {
	pos := m.search(addr)
	if pos >= len(m.blocks) || m.blocks[pos].Address != addr {
		return false
	}
	m.blocks = append(m.blocks[:pos], m.blocks[pos+1:]...)
	return true
}

// Get returns the data of the block that starts at exactly addr.
func (m *MemoryMap) Get(addr uint32) ([]byte, bool) {
	pos := m.search(addr)
	if pos < len(m.blocks) && m.blocks[pos].Address == addr {
		return m.blocks[pos].Data, true
	}
	return nil, false
}

// Len returns the number of blocks in the map.
func (m *MemoryMap) Len() int { return len(m.blocks) }

// ByteLen returns the total number of data bytes across all blocks.
func (m *MemoryMap) ByteLen() int {
	n := 0
	for _, b := range m.blocks {
		n += len(b.Data)
	}
	return n
}

// Blocks returns the blocks in ascending address order. The block buffers
// are views into the map and must be copied before being modified.
func (m *MemoryMap) Blocks() []Block {
	blocks := make([]Block, len(m.blocks))
	copy(blocks, m.blocks)
	return blocks
}

// Contains reports whether every byte of [addr, addr+size) is covered by
// the map.
func (m *MemoryMap) Contains(addr uint32, size int) bool {
	pos := uint64(addr)
	end := pos + uint64(size)
	for pos < end {
		b, ok := m.blockAt(pos)
		if !ok {
			return false
		}
		pos = b.End()
	}
	return true
}

// ToBinary renders the address range [addr, addr+size) as a flat buffer,
// filling bytes not covered by any block with pad.
func (m *MemoryMap) ToBinary(addr uint32, size int, pad byte) []byte {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = pad
	}

	lo, hi := uint64(addr), uint64(addr)+uint64(size)
	for _, b := range m.blocks {
		start, end := uint64(b.Address), b.End()
		if end <= lo || start >= hi {
			continue
		}
		if start < lo {
			start = lo
		}
		if end > hi {
			end = hi
		}
		copy(buf[start-lo:end-lo], b.Data[start-uint64(b.Address):end-uint64(b.Address)])
	}
	return buf
}

// search returns the position of the first block with an address >= addr.
func (m *MemoryMap) search(addr uint32) int {
	return sort.Search(len(m.blocks), func(i int) bool { return m.blocks[i].Address >= addr })
}

// blockAt returns the block covering the absolute address pos.
func (m *MemoryMap) blockAt(pos uint64) (Block, bool) {
	n := sort.Search(len(m.blocks), func(i int) bool { return uint64(m.blocks[i].Address) > pos })
	if n == 0 {
		return Block{}, false
	}
	if b := m.blocks[n-1]; b.End() > pos {
		return b, true
	}
	return Block{}, false
}
