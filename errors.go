package intelhex

import "errors"

// Decode errors. Decode wraps them with the record number, character range
// or address needed to locate the offending input.
var (
	ErrMalformedLine    = errors.New("intelhex: malformed line")
	ErrLengthMismatch   = errors.New("intelhex: record length mismatch")
	ErrChecksumMismatch = errors.New("intelhex: checksum mismatch")
	ErrNonZeroOffset    = errors.New("intelhex: non-zero offset in address record")
	ErrDuplicateAddress = errors.New("intelhex: duplicate address")
	ErrOffsetWrap       = errors.New("intelhex: record wraps past segment boundary")
	ErrTrailingData     = errors.New("intelhex: data after end-of-file record")
	ErrMissingEOF       = errors.New("intelhex: missing end-of-file record")
	ErrEmptyInput       = errors.New("intelhex: empty or unparseable input")
)

// Encode and block algebra errors.
var (
	ErrInvalidRecordSize = errors.New("intelhex: invalid record size")
	ErrAddressOutOfRange = errors.New("intelhex: address out of range")
	ErrOverlappingBlocks = errors.New("intelhex: overlapping blocks")
	ErrInvalidPageSize   = errors.New("intelhex: invalid page size")
)

// Image errors.
var (
	ErrBadImageMagic = errors.New("intelhex: bad image magic byte sequence")
	ErrBadImageCodec = errors.New("intelhex: bad image compression codec")
	ErrCorruptImage  = errors.New("intelhex: corrupt image")
)
