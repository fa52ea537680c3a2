package intelhex

// Checksum computes the Intel HEX record checksum of p: the two's
// complement of the byte sum, truncated to eight bits.
func Checksum(p []byte) byte {
	var sum byte
	for _, c := range p {
		sum += c
	}
	return -sum
}

// checksumPair computes the checksum of the logical concatenation of a and
// b without materializing it.
func checksumPair(a, b []byte) byte {
	var sum byte
	for _, c := range a {
		sum += c
	}
	for _, c := range b {
		sum += c
	}
	return -sum
}
