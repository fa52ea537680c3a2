package intelhex

import "sort"

// BlockSet names a memory map for overlap detection.
type BlockSet struct {
	ID  string
	Map *MemoryMap
}

// Part is one contributor to an overlap interval. Data is a zero-copy view
// into the source map's buffer and stays valid only while that buffer is
// alive and unmodified.
type Part struct {
	ID   string
	Data []byte
}

// Overlap describes the half-open interval from Address to the next
// boundary, with the contributing parts in input-set order. All parts of
// one overlap are of equal length.
type Overlap struct {
	Address uint32
	Parts   []Part
}

// DetectOverlaps partitions the address space at every block start and end
// across all sets and reports, per interval, the slice each set contributes
// there. Intervals without contributors are omitted; the result is strictly
// ascending by address.
func DetectOverlaps(sets []BlockSet) []Overlap {
	var bounds []uint64
	for _, set := range sets {
		for _, b := range set.Map.blocks {
			if len(b.Data) == 0 {
				continue
			}
			bounds = append(bounds, uint64(b.Address), b.End())
		}
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })

	var out []Overlap
	for i := 0; i+1 < len(bounds); i++ {
		lo, hi := bounds[i], bounds[i+1]
		if lo == hi {
			continue
		}

		var parts []Part
		for _, set := range sets {
			if view, ok := set.Map.slice(lo, hi); ok {
				parts = append(parts, Part{ID: set.ID, Data: view})
			}
		}
		if len(parts) != 0 {
			out = append(out, Overlap{Address: uint32(lo), Parts: parts})
		}
	}
	return out
}

// Flatten reduces overlaps to a memory map that keeps, per interval, the
// data of the last contributing set. The resulting blocks are fresh copies
// and do not alias the source buffers; adjacent intervals are not merged.
func Flatten(overlaps []Overlap) *MemoryMap {
	blocks := make([]Block, 0, len(overlaps))
	for _, ov := range overlaps {
		if len(ov.Parts) == 0 {
			continue
		}
		last := ov.Parts[len(ov.Parts)-1]
		blocks = append(blocks, Block{Address: ov.Address, Data: append([]byte(nil), last.Data...)})
	}
	return &MemoryMap{blocks: blocks}
}

// slice returns the view of the block covering [lo, hi), if any. Boundaries
// are constructed so that a covering block spans the whole interval.
func (m *MemoryMap) slice(lo, hi uint64) ([]byte, bool) {
	pos := sort.Search(len(m.blocks), func(i int) bool { return uint64(m.blocks[i].Address) > lo })
	if pos == 0 {
		return nil, false
	}
	b := m.blocks[pos-1]
	if b.End() <= lo || b.End() < hi {
		return nil, false
	}
	return b.Data[lo-uint64(b.Address) : hi-uint64(b.Address)], true
}
