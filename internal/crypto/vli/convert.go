package vli

// WordsFor returns the number of words needed to hold numBytes bytes.
func WordsFor(numBytes int) int {
	return (numBytes + WordBytes - 1) / WordBytes
}

// BytesToNative loads a big-endian byte string of numBytes bytes into native.
// numBytes does not need to be a multiple of the word size; unused high
// words of native are cleared.
func BytesToNative(native []uint64, b []byte, numBytes int) {
	Clear(native, WordsFor(numBytes))
	for i := 0; i < numBytes; i++ {
		idx := numBytes - 1 - i
		native[idx/WordBytes] |= uint64(b[i]) << (8 * (idx % WordBytes))
	}
}

// NativeToBytes stores the low numBytes bytes of native into b, big-endian.
func NativeToBytes(b []byte, numBytes int, native []uint64) {
	for i := 0; i < numBytes; i++ {
		idx := numBytes - 1 - i
		b[i] = byte(native[idx/WordBytes] >> (8 * (idx % WordBytes)))
	}
}

// LEBytesToNative loads a little-endian byte string into native.
func LEBytesToNative(native []uint64, b []byte, numBytes int) {
	Clear(native, WordsFor(numBytes))
	for i := 0; i < numBytes; i++ {
		native[i/WordBytes] |= uint64(b[i]) << (8 * (i % WordBytes))
	}
}

// NativeToLEBytes stores the low numBytes bytes of native into b,
// little-endian.
func NativeToLEBytes(b []byte, numBytes int, native []uint64) {
	for i := 0; i < numBytes; i++ {
		b[i] = byte(native[i/WordBytes] >> (8 * (i % WordBytes)))
	}
}
