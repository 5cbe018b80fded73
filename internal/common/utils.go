package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used for password buffers read from the terminal once they have been
// converted for use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
