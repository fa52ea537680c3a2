package intelhex_test

import (
	"strings"

	"github.com/bsm/intelhex"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const simpleHex = ":100000000102030405060708090A0B0C0D0E0F1068\n:00000001FF"

var simpleData = []byte{
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10,
}

var _ = Describe("Decode", func() {
	It("should decode data records", func() {
		m, err := intelhex.Decode(simpleHex, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Len()).To(Equal(1))

		data, ok := m.Get(0)
		Expect(ok).To(BeTrue())
		Expect(data).To(Equal(simpleData))
	})

	It("should accept lowercase digits and CR/LF terminators", func() {
		m, err := intelhex.Decode(strings.ToLower(simpleHex), nil)
		Expect(err).NotTo(HaveOccurred())
		data, ok := m.Get(0)
		Expect(ok).To(BeTrue())
		Expect(data).To(Equal(simpleData))

		m, err = intelhex.Decode(strings.ReplaceAll(simpleHex, "\n", "\r\n")+"\r", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.ByteLen()).To(Equal(16))
	})

	It("should apply extended segment addresses", func() {
		m, err := intelhex.Decode(":020000021000EC\n:0100000000FF\n:00000001FF", nil)
		Expect(err).NotTo(HaveOccurred())

		data, ok := m.Get(0x10000)
		Expect(ok).To(BeTrue())
		Expect(data).To(Equal([]byte{0x00}))
	})

	It("should apply extended linear addresses", func() {
		m, err := intelhex.Decode(":020000040001F9\n:0100000000FF\n:00000001FF", nil)
		Expect(err).NotTo(HaveOccurred())

		data, ok := m.Get(0x10000)
		Expect(ok).To(BeTrue())
		Expect(data).To(Equal([]byte{0x00}))
	})

	It("should ignore start address records", func() {
		m, err := intelhex.Decode(":0400000501000000F6\n:00000001FF", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Len()).To(Equal(0))
	})

	It("should merge adjacent records", func() {
		text := ":020000000101FC\n:020002000202F8\n:00000001FF"

		m, err := intelhex.Decode(text, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Len()).To(Equal(1))

		data, ok := m.Get(0)
		Expect(ok).To(BeTrue())
		Expect(data).To(Equal([]byte{1, 1, 2, 2}))
	})

	It("should cap merged blocks at MaxBlockSize", func() {
		text := ":020000000101FC\n:020002000202F8\n:00000001FF"

		m, err := intelhex.Decode(text, &intelhex.DecodeOptions{MaxBlockSize: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Len()).To(Equal(2))

		data, ok := m.Get(2)
		Expect(ok).To(BeTrue())
		Expect(data).To(Equal([]byte{2, 2}))
	})

	It("should accept records ending exactly on the segment boundary", func() {
		m, err := intelhex.Decode(":02FFFE00000001\n:00000001FF", nil)
		Expect(err).NotTo(HaveOccurred())

		data, ok := m.Get(0xFFFE)
		Expect(ok).To(BeTrue())
		Expect(data).To(Equal([]byte{0, 0}))
	})

	It("should reject corrupted checksums", func() {
		text := strings.Replace(simpleHex, "68", "69", 1)
		_, err := intelhex.Decode(text, nil)
		Expect(err).To(MatchError(intelhex.ErrChecksumMismatch))
		Expect(err.Error()).To(ContainSubstring("expected 68"))
	})

	It("should reject gaps in the input", func() {
		_, err := intelhex.Decode("xx"+simpleHex, nil)
		Expect(err).To(MatchError(intelhex.ErrMalformedLine))
		Expect(err.Error()).To(ContainSubstring("between characters 0 and 2"))

		_, err = intelhex.Decode(strings.Replace(simpleHex, "\n", "\n\n", 1), nil)
		Expect(err).To(MatchError(intelhex.ErrMalformedLine))
	})

	It("should reject empty and unparseable input", func() {
		_, err := intelhex.Decode("", nil)
		Expect(err).To(MatchError(intelhex.ErrEmptyInput))

		_, err = intelhex.Decode("hello world", nil)
		Expect(err).To(MatchError(intelhex.ErrEmptyInput))

		_, err = intelhex.Decode(":0000001FF", nil) // odd number of digits
		Expect(err).To(MatchError(intelhex.ErrEmptyInput))
	})

	It("should reject mismatched record lengths", func() {
		_, err := intelhex.Decode(":02000000FE\n:00000001FF", nil)
		Expect(err).To(MatchError(intelhex.ErrLengthMismatch))
	})

	It("should reject address records with non-zero offsets", func() {
		_, err := intelhex.Decode(":020001040101F7\n:00000001FF", nil)
		Expect(err).To(MatchError(intelhex.ErrNonZeroOffset))

		_, err = intelhex.Decode(":020001020101F9\n:00000001FF", nil)
		Expect(err).To(MatchError(intelhex.ErrNonZeroOffset))
	})

	It("should reject duplicate addresses", func() {
		_, err := intelhex.Decode(":0100000000FF\n:0100000000FF\n:00000001FF", nil)
		Expect(err).To(MatchError(intelhex.ErrDuplicateAddress))
		Expect(err.Error()).To(ContainSubstring("0x00000000"))
	})

	It("should reject records wrapping past the segment boundary", func() {
		_, err := intelhex.Decode(":02FFFF00000000\n:00000001FF", nil)
		Expect(err).To(MatchError(intelhex.ErrOffsetWrap))
	})

	It("should reject overlapping records", func() {
		_, err := intelhex.Decode(":020000000101FC\n:0100010000FE\n:00000001FF", nil)
		Expect(err).To(MatchError(intelhex.ErrOverlappingBlocks))
	})

	It("should reject data after the end-of-file record", func() {
		_, err := intelhex.Decode(":00000001FF\n:0100000000FF", nil)
		Expect(err).To(MatchError(intelhex.ErrTrailingData))

		_, err = intelhex.Decode(":00000001FF\n\n", nil)
		Expect(err).To(MatchError(intelhex.ErrTrailingData))
	})

	It("should require an end-of-file record", func() {
		_, err := intelhex.Decode(":0100000000FF\n", nil)
		Expect(err).To(MatchError(intelhex.ErrMissingEOF))

		_, err = intelhex.Decode(":0100000000FF", nil)
		Expect(err).To(MatchError(intelhex.ErrMissingEOF))
	})

	It("should reject unsupported record types", func() {
		_, err := intelhex.Decode(":00000006FA\n:00000001FF", nil)
		Expect(err).To(MatchError(intelhex.ErrMalformedLine))
	})
})
