package intelhex_test

import (
	"github.com/bsm/intelhex"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Encode", func() {
	It("should encode data records", func() {
		m := intelhex.FromMap(map[uint32][]byte{0: simpleData})
		Expect(intelhex.Encode(m, nil)).To(Equal(simpleHex))
	})

	It("should encode empty maps", func() {
		Expect(intelhex.Encode(intelhex.New(), nil)).To(Equal(":00000001FF"))
	})

	It("should split blocks by line size", func() {
		m := intelhex.FromMap(map[uint32][]byte{0: simpleData})
		Expect(intelhex.Encode(m, &intelhex.EncodeOptions{LineSize: 8})).To(Equal(
			":080000000102030405060708D4\n" +
				":08000800090A0B0C0D0E0F108C\n" +
				":00000001FF",
		))
	})

	It("should emit extended linear address records on segment crossings", func() {
		data := make([]byte, 0x20)
		for i := range data {
			data[i] = byte(i)
		}
		m := intelhex.FromMap(map[uint32][]byte{0x0FFF0: data})

		text, err := intelhex.Encode(m, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal(
			":10FFF000000102030405060708090A0B0C0D0E0F89\n" +
				":020000040001F9\n" +
				":10000000101112131415161718191A1B1C1D1E1F78\n" +
				":00000001FF",
		))

		back, err := intelhex.Decode(text, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(back.Blocks()).To(Equal([]intelhex.Block{{Address: 0x0FFF0, Data: data}}))
	})

	It("should start distant blocks with an address record", func() {
		m := intelhex.FromMap(map[uint32][]byte{0x20000: {0xAB}})
		Expect(intelhex.Encode(m, nil)).To(Equal(":020000040002F8\n:01000000AB54\n:00000001FF"))
	})

	It("should round trip", func() {
		m := intelhex.FromMap(map[uint32][]byte{
			0x00000100: {1, 2, 3},
			0x0000FF00: make([]byte, 0x200), // crosses into segment 1
			0x00030000: {4, 5, 6, 7},
			0xFFFF0000: {8},
		})

		for _, lineSize := range []int{1, 7, 16, 32, 255} {
			text, err := intelhex.Encode(m, &intelhex.EncodeOptions{LineSize: lineSize})
			Expect(err).NotTo(HaveOccurred())

			back, err := intelhex.Decode(text, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(back.Blocks()).To(Equal(m.Blocks()), "for line size %d", lineSize)
		}
	})

	It("should skip zero-length blocks", func() {
		m := intelhex.New()
		m.Set(0x1000, []byte{})
		Expect(intelhex.Encode(m, nil)).To(Equal(":00000001FF"))
	})

	It("should reject overlapping blocks", func() {
		m := intelhex.New()
		m.Set(0, []byte{1, 2})
		m.Set(1, []byte{3})

		_, err := intelhex.Encode(m, nil)
		Expect(err).To(MatchError(intelhex.ErrOverlappingBlocks))
		Expect(err.Error()).To(ContainSubstring("0x00000001"))
	})

	It("should reject blocks ending past the address space", func() {
		m := intelhex.FromMap(map[uint32][]byte{0xFFFFFFFF: {1, 2}})
		_, err := intelhex.Encode(m, nil)
		Expect(err).To(MatchError(intelhex.ErrAddressOutOfRange))
	})

	It("should reject negative line sizes", func() {
		_, err := intelhex.Encode(intelhex.New(), &intelhex.EncodeOptions{LineSize: -1})
		Expect(err).To(MatchError(intelhex.ErrInvalidRecordSize))
	})
})
