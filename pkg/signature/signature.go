// Package signature encodes and decodes (r, s) signature pairs.
//
// Two encodings are provided: the fixed width compact form r || s, and a
// strict DER form, an ASN.1 SEQUENCE of two minimal INTEGERs. Both operate on
// big-endian byte strings of a fixed scalar width taken from the curve, so
// the same codecs serve the Weierstrass and the Edwards keys.
package signature

import (
	"bytes"
	"fmt"
	"strings"
)

// Format names a signature encoding.
type Format string

const (
	// FormatCompact is the fixed width r || s encoding.
	FormatCompact Format = "compact"
	// FormatDER is the ASN.1 DER encoding.
	FormatDER Format = "der"
)

const (
	asn1SequenceID = 0x30
	asn1IntegerID  = 0x02

	// minDERLen is the shortest DER pair: 30 06 02 01 r 02 01 s.
	minDERLen = 8
)

// Pair is a signature as two fixed width byte strings.
type Pair struct {
	R []byte
	S []byte
}

// Equal reports whether both halves match.
func (p Pair) Equal(o Pair) bool {
	return bytes.Equal(p.R, o.R) && bytes.Equal(p.S, o.S)
}

// Codec converts pairs to and from one wire encoding.
type Codec interface {
	// Format returns the encoding name.
	Format() Format
	// MaxSize returns the largest possible encoded size.
	MaxSize() int
	// Encode serializes p; both halves must be exactly the scalar width.
	Encode(p Pair) ([]byte, error)
	// Decode parses an encoded signature into a pair of scalar width halves.
	Decode(sig []byte) (Pair, error)
}

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatCompact:
		return FormatCompact, nil
	case FormatDER:
		return FormatDER, nil
	}
	return "", signatureError(ErrUnknownFormat, fmt.Sprintf("unknown signature format %q", name))
}

// NewCodec returns the codec for f over scalars of the given byte width.
func NewCodec(f Format, width int) (Codec, error) {
	switch f {
	case FormatCompact:
		return NewCompact(width), nil
	case FormatDER:
		return NewDER(width), nil
	}
	return nil, signatureError(ErrUnknownFormat, fmt.Sprintf("unknown signature format %q", f))
}

func checkPair(p Pair, width int) error {
	if len(p.R) != width || len(p.S) != width {
		str := fmt.Sprintf("malformed pair: r is %d bytes, s is %d bytes, want %d",
			len(p.R), len(p.S), width)
		return signatureError(ErrSigInvalidPair, str)
	}
	return nil
}

// Compact is the r || s encoding.
type Compact struct {
	width int
}

// NewCompact returns a compact codec for scalars of the given byte width.
func NewCompact(width int) *Compact {
	return &Compact{width: width}
}

func (c *Compact) Format() Format { return FormatCompact }
func (c *Compact) MaxSize() int   { return 2 * c.width }

func (c *Compact) Encode(p Pair) ([]byte, error) {
	if err := checkPair(p, c.width); err != nil {
		return nil, err
	}
	out := make([]byte, 0, 2*c.width)
	out = append(out, p.R...)
	return append(out, p.S...), nil
}

func (c *Compact) Decode(sig []byte) (Pair, error) {
	if len(sig) != 2*c.width {
		str := fmt.Sprintf("malformed signature: wrong size: %d != %d", len(sig), 2*c.width)
		return Pair{}, signatureError(ErrSigInvalidLen, str)
	}
	return Pair{
		R: append([]byte(nil), sig[:c.width]...),
		S: append([]byte(nil), sig[c.width:]...),
	}, nil
}

// DER is the strict ASN.1 DER encoding. Integers must be minimal and
// non-negative, the sequence length must cover the input exactly and no
// integer may be wider than the scalar width.
type DER struct {
	width int
}

// NewDER returns a DER codec for scalars of the given byte width.
func NewDER(width int) *DER {
	return &DER{width: width}
}

func (d *DER) Format() Format { return FormatDER }

// MaxSize accounts for a sign pad on both integers.
func (d *DER) MaxSize() int { return 2 + 2*(2+d.width+1) }

// minimalInt strips leading zero bytes and adds a zero pad when the top bit
// would otherwise mark the integer negative.
func minimalInt(v []byte) []byte {
	i := 0
	for i < len(v)-1 && v[i] == 0 {
		i++
	}
	v = v[i:]
	if v[0]&0x80 != 0 {
		return append([]byte{0x00}, v...)
	}
	return v
}

func (d *DER) Encode(p Pair) ([]byte, error) {
	if err := checkPair(p, d.width); err != nil {
		return nil, err
	}
	r, s := minimalInt(p.R), minimalInt(p.S)

	out := make([]byte, 0, d.MaxSize())
	out = append(out, asn1SequenceID, byte(4+len(r)+len(s)))
	out = append(out, asn1IntegerID, byte(len(r)))
	out = append(out, r...)
	out = append(out, asn1IntegerID, byte(len(s)))
	return append(out, s...), nil
}

func (d *DER) Decode(sig []byte) (Pair, error) {
	// The format of a DER encoded signature is as follows:
	//
	// 0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
	sigLen := len(sig)
	if sigLen < minDERLen {
		str := fmt.Sprintf("malformed signature: too short: %d < %d", sigLen, minDERLen)
		return Pair{}, signatureError(ErrSigTooShort, str)
	}
	if sigLen > d.MaxSize() {
		str := fmt.Sprintf("malformed signature: too long: %d > %d", sigLen, d.MaxSize())
		return Pair{}, signatureError(ErrSigTooLong, str)
	}
	if sig[0] != asn1SequenceID {
		str := fmt.Sprintf("malformed signature: format has wrong type: %#x", sig[0])
		return Pair{}, signatureError(ErrSigInvalidSeqID, str)
	}
	if int(sig[1]) != sigLen-2 {
		str := fmt.Sprintf("malformed signature: bad length: %d != %d", sig[1], sigLen-2)
		return Pair{}, signatureError(ErrSigInvalidDataLen, str)
	}

	// R
	if sig[2] != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: R integer marker: %#x != %#x", sig[2], asn1IntegerID)
		return Pair{}, signatureError(ErrSigInvalidRIntID, str)
	}
	rLen := int(sig[3])
	if rLen == 0 {
		return Pair{}, signatureError(ErrSigZeroRLen, "malformed signature: R length is zero")
	}
	sTypeOffset := 4 + rLen
	if sTypeOffset >= sigLen {
		return Pair{}, signatureError(ErrSigMissingSTypeID, "malformed signature: S type indicator missing")
	}
	r, err := d.parseInt(sig[4:sTypeOffset], "R", ErrSigNegativeR, ErrSigTooMuchRPadding, ErrSigRTooBig)
	if err != nil {
		return Pair{}, err
	}

	// S
	if sig[sTypeOffset] != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: S integer marker: %#x != %#x", sig[sTypeOffset], asn1IntegerID)
		return Pair{}, signatureError(ErrSigInvalidSIntID, str)
	}
	sLenOffset := sTypeOffset + 1
	if sLenOffset >= sigLen {
		return Pair{}, signatureError(ErrSigMissingSLen, "malformed signature: S length missing")
	}
	sLen := int(sig[sLenOffset])
	if sLen == 0 {
		return Pair{}, signatureError(ErrSigZeroSLen, "malformed signature: S length is zero")
	}
	sOffset := sLenOffset + 1
	if sOffset+sLen != sigLen {
		str := fmt.Sprintf("malformed signature: invalid S length: %d != %d", sLen, sigLen-sOffset)
		return Pair{}, signatureError(ErrSigInvalidSLen, str)
	}
	s, err := d.parseInt(sig[sOffset:], "S", ErrSigNegativeS, ErrSigTooMuchSPadding, ErrSigSTooBig)
	if err != nil {
		return Pair{}, err
	}

	return Pair{R: r, S: s}, nil
}

// parseInt validates a DER integer body and left-pads it to the scalar width.
func (d *DER) parseInt(v []byte, name string, negative, padding, tooBig ErrorKind) ([]byte, error) {
	if v[0]&0x80 != 0 {
		return nil, signatureError(negative, fmt.Sprintf("malformed signature: %s is negative", name))
	}
	if len(v) > 1 && v[0] == 0x00 && v[1]&0x80 == 0 {
		return nil, signatureError(padding, fmt.Sprintf("malformed signature: %s value has too much padding", name))
	}
	if v[0] == 0x00 {
		v = v[1:]
	}
	if len(v) > d.width {
		str := fmt.Sprintf("malformed signature: %s is wider than %d bytes", name, d.width)
		return nil, signatureError(tooBig, str)
	}
	out := make([]byte, d.width)
	copy(out[d.width-len(v):], v)
	return out, nil
}
