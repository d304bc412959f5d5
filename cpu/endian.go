package cpu

// PutLE writes the low width bytes of v into b, least significant first.
// width must be 1, 2 or 4 and b at least width bytes long.
func PutLE(b []byte, v uint32, width int) {
	for i := 0; i < width; i++ {
		b[i] = byte(v)
		v >>= 8
	}
}

// LE reads width bytes from b as a little-endian value.
func LE(b []byte, width int) uint32 {
	var v uint32
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint32(b[i])
	}
	return v
}

// FitsWidth reports whether v can be stored in width bytes, either as a
// signed or as an unsigned quantity.
func FitsWidth(v int64, width int) bool {
	bits := uint(width * 8)
	lo := -(int64(1) << (bits - 1))
	hi := int64(1)<<bits - 1
	return v >= lo && v <= hi
}
