package ctlplane

import (
	"encoding/binary"
	"math"
)

// putFloat32 writes a little-endian IEEE-754 float32 at buf[0:4].
func putFloat32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

// getFloat32 reads a little-endian IEEE-754 float32 from buf[0:4].
func getFloat32(buf []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf))
}

// putUint16 writes a little-endian uint16 at buf[0:2].
func putUint16(buf []byte, v uint16) {
	binary.LittleEndian.PutUint16(buf, v)
}

// getUint16 reads a little-endian uint16 from buf[0:2].
func getUint16(buf []byte) uint16 {
	return binary.LittleEndian.Uint16(buf)
}

// putUint64 writes a little-endian uint64 at buf[0:8].
func putUint64(buf []byte, v uint64) {
	binary.LittleEndian.PutUint64(buf, v)
}

// getUint64 reads a little-endian uint64 from buf[0:8].
func getUint64(buf []byte) uint64 {
	return binary.LittleEndian.Uint64(buf)
}

// putUint32 writes a little-endian uint32 at buf[0:4].
func putUint32(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf, v)
}

// getUint32 reads a little-endian uint32 from buf[0:4].
func getUint32(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf)
}
