package fragment

import "encoding/binary"

// HeaderSize is the length of the sequence number prefix of every fragment.
const HeaderSize = 4

// MetadataSequence is the sequence number reserved for the fragment carrying
// the original file name.
const MetadataSequence = 0

// EncodeHeader returns the little-endian representation of the sequence
// number. Unused high-order bytes are zero.
func EncodeHeader(seq uint32) [HeaderSize]byte {
	var b [HeaderSize]byte
	binary.LittleEndian.PutUint32(b[:], seq)
	return b
}

// DecodeHeader is the inverse of EncodeHeader.
func DecodeHeader(b [HeaderSize]byte) uint32 {
	return binary.LittleEndian.Uint32(b[:])
}
