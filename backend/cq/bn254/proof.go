package cq

import (
	"encoding/binary"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// proofG1Count and proofFieldCount fix the wire layout below: 9 G1 points
// (uncompressed, bn254.SizeOfG1AffineUncompressed bytes each) followed by 3
// field elements (fr.Bytes each, little-endian), preceded by the 8-byte
// little-endian witness length. Any change to Proof's fields must update
// both this layout and the field list in MarshalBinary/UnmarshalBinary
// together.
const (
	proofG1Count    = 9
	proofFieldCount = 3
)

// MarshalBinary encodes the proof as: 8-byte little-endian N, followed by
// the 9 G1 commitments in uncompressed form (CommitmentF, CommitmentM,
// CommitmentA, CommitmentQA, CommitmentB0, CommitmentQB, CommitmentP,
// CommitmentPiGamma, CommitmentA0X, in that order), followed by the 3
// field elements (B0AtGamma, FAtGamma, A0) in canonical little-endian form.
func (p *Proof) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, 8+proofG1Count*bn254.SizeOfG1AffineUncompressed+proofFieldCount*fr.Bytes)

	var nBuf [8]byte
	binary.LittleEndian.PutUint64(nBuf[:], p.N)
	out = append(out, nBuf[:]...)

	for _, pt := range []bn254.G1Affine{
		p.CommitmentF, p.CommitmentM,
		p.CommitmentA, p.CommitmentQA, p.CommitmentB0, p.CommitmentQB, p.CommitmentP,
		p.CommitmentPiGamma, p.CommitmentA0X,
	} {
		b := pt.RawBytes()
		out = append(out, b[:]...)
	}

	for _, e := range []fr.Element{p.B0AtGamma, p.FAtGamma, p.A0} {
		b := fieldBytesLE(e)
		out = append(out, b[:]...)
	}

	return out, nil
}

// UnmarshalBinary decodes a proof written by MarshalBinary. It does not
// itself validate the proof's soundness (call Verify for that) but does
// reject a blob with a size mismatch and any bn254 point encoding that
// doesn't round-trip to a curve point.
func (p *Proof) UnmarshalBinary(data []byte) error {
	const pointSize = bn254.SizeOfG1AffineUncompressed
	want := 8 + proofG1Count*pointSize + proofFieldCount*fr.Bytes
	if len(data) != want {
		return fmt.Errorf("cq: proof has %d bytes, want %d", len(data), want)
	}

	p.N = binary.LittleEndian.Uint64(data[:8])
	off := 8

	pts := make([]*bn254.G1Affine, proofG1Count)
	pts[0], pts[1] = &p.CommitmentF, &p.CommitmentM
	pts[2], pts[3], pts[4], pts[5], pts[6] = &p.CommitmentA, &p.CommitmentQA, &p.CommitmentB0, &p.CommitmentQB, &p.CommitmentP
	pts[7], pts[8] = &p.CommitmentPiGamma, &p.CommitmentA0X

	for _, dst := range pts {
		var buf [pointSize]byte
		copy(buf[:], data[off:off+pointSize])
		if _, err := dst.SetBytes(buf[:]); err != nil {
			return fmt.Errorf("cq: decoding proof commitment: %w", err)
		}
		off += pointSize
	}

	fields := []*fr.Element{&p.B0AtGamma, &p.FAtGamma, &p.A0}
	for _, dst := range fields {
		var buf [fr.Bytes]byte
		copy(buf[:], data[off:off+fr.Bytes])
		dst.SetBytes(fieldBytesFromLE(buf))
		off += fr.Bytes
	}

	return nil
}

// fieldBytesLE returns e's canonical representation in little-endian byte
// order. gnark-crypto's fr.Element.Bytes() is big-endian; the wire format
// this module exposes externally is little-endian, so the bytes are
// reversed rather than reinterpreting the element itself.
func fieldBytesLE(e fr.Element) [fr.Bytes]byte {
	be := e.Bytes()
	var le [fr.Bytes]byte
	for i := range be {
		le[i] = be[fr.Bytes-1-i]
	}
	return le
}

// fieldBytesFromLE reverses fieldBytesLE, producing the big-endian bytes
// fr.Element.SetBytes expects from a little-endian wire buffer.
func fieldBytesFromLE(le [fr.Bytes]byte) []byte {
	be := make([]byte, fr.Bytes)
	for i := range le {
		be[i] = le[fr.Bytes-1-i]
	}
	return be
}
