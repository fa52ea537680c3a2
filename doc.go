/*
Package intelhex decodes and encodes the Intel HEX text format and provides
a small algebra over the resulting sparse memory maps: joining byte-adjacent
blocks, re-tiling into fixed-size pages, and detecting or flattening
overlaps between several block sets.

Record Grammar

A hex stream is a sequence of contiguous records, one per line. All fields
are hex-encoded, the trailing line terminator (CR, LF or CRLF) is optional
on the last record:

	+---+------------+------------+----------+-----------------+--------------+
	| : | length (2) | offset (4) | type (2) | data (2×length) | checksum (2) |
	+---+------------+------------+----------+-----------------+--------------+

The checksum is the two's complement of the byte sum of all decoded fields
before it. Record types:

	0  Data                      payload bytes at base register + offset
	1  End Of File               terminates the stream, must be last
	2  Extended Segment Address  base register := payload(16-bit) << 4
	3  Start Segment Address     ignored (legacy)
	4  Extended Linear Address   base register := payload(16-bit) << 16
	5  Start Linear Address      ignored (legacy)

Image Format

Memory maps can also be stored in a compact binary image. An image is a
single blob followed by a fixed footer:

	Image layout:
	+------+---------------------------+-----------------------+-----------------+
	| body | compression type (1-byte) | block count (8 bytes) | magic (8 bytes) |
	+------+---------------------------+-----------------------+-----------------+

The body is a series of block entries and may be snappy-compressed as a
whole, as indicated by the compression type:

	Block entry:
	+------------------------+-----------------+---------------+
	| address delta (varint) | length (varint) | data (varlen) |
	+------------------------+-----------------+---------------+

The first entry stores its absolute address, subsequent entries the delta
to the previous entry's address.
*/
package intelhex
