package xuuid

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/Lzww0608/xuuid/internal/hexcodec"
)

// UUID represents a Universally Unique Identifier.
// The UUID is a 128-bit (16 byte) value whose byte 6 carries the version
// nibble and whose byte 8 carries the variant bits.
type UUID [16]byte

// Version is the value of the high nibble of octet 6.
type Version byte

const (
	VersionUnknown Version = iota
	VersionTimeBased
	VersionDCESecurity
	VersionNameBasedMD5
	VersionRandom
	VersionNameBasedSHA1
	VersionReordered  // UUIDv6
	VersionTimeSorted // UUIDv7
)

const unknownVersionName = "* Unknown Version *"

var versionNames = [...]string{
	VersionTimeBased:     "Timestamp based",
	VersionDCESecurity:   "DCE Security",
	VersionNameBasedMD5:  "MD5 based",
	VersionRandom:        "Random",
	VersionNameBasedSHA1: "SHA-1 based",
	VersionReordered:     "Ordered",
	VersionTimeSorted:    "Unix Timestamp based",
}

// Known reports whether v is one of the versions 1 through 7.
func (v Version) Known() bool {
	return v >= VersionTimeBased && v <= VersionTimeSorted
}

// String returns the descriptive name of the version.
func (v Version) String() string {
	if !v.Known() {
		return unknownVersionName
	}
	return versionNames[v]
}

// Variant is the layout family encoded in the top bits of octet 8.
type Variant byte

const (
	VariantNCS Variant = iota
	VariantRFC4122
	VariantMicrosoft
	VariantFuture
)

var variantInfo = [...]struct {
	code int
	name string
}{
	VariantNCS:       {4, "Reserved, NCS backward compatibility"},
	VariantRFC4122:   {2, "RFC 4122, variant defined"},
	VariantMicrosoft: {1, "Microsoft variant"},
	VariantFuture:    {0, "Reserved for future use"},
}

// Code returns the number printed alongside the variant in metadata summaries.
func (v Variant) Code() int {
	if int(v) >= len(variantInfo) {
		return -1
	}
	return variantInfo[v].code
}

// String returns the descriptive name of the variant.
func (v Variant) String() string {
	if int(v) >= len(variantInfo) {
		return "* Unknown Variant *"
	}
	return variantInfo[v].name
}

// gregorianOffsetMs is the number of milliseconds between 1582-10-15 and the
// Unix epoch.
const gregorianOffsetMs = 12219292800000

// Nil has all 128 bits cleared.
var Nil UUID

// Version reads the version nibble. Values above 7 are returned as-is.
func (u UUID) Version() Version {
	return Version(u[6] >> 4)
}

// Variant classifies the top three bits of byte 8. The checks run in order:
// top bit clear, second bit clear, third bit clear.
func (u UUID) Variant() Variant {
	bits := u[8] >> 5
	switch {
	case bits&0b100 == 0:
		return VariantNCS
	case bits&0b010 == 0:
		return VariantRFC4122
	case bits&0b001 == 0:
		return VariantMicrosoft
	default:
		return VariantFuture
	}
}

// String formats u as 8-4-4-4-12 lowercase hex.
func (u UUID) String() string {
	return string(u.appendText(make([]byte, 0, 36)))
}

func (u UUID) appendText(dst []byte) []byte {
	var buf [36]byte
	n := hexcodec.UUID.Encode(buf[:], u[:])
	return append(dst, buf[:n]...)
}

// Parse reads a UUID in canonical form, with an optional "urn:uuid:" prefix
// or surrounding braces, or as 32 hex digits with no separators.
func Parse(s string) (UUID, error) {
	var id UUID
	text := strings.TrimPrefix(s, "urn:uuid:")
	if len(text) > 1 && text[0] == '{' && text[len(text)-1] == '}' {
		text = text[1 : len(text)-1]
	}

	layout := hexcodec.UUID
	if len(text) == 32 {
		layout = plainHex
	}
	if layout.Decode(id[:], text) != nil {
		return Nil, ErrInvalidFormat
	}
	return id, nil
}

// MustParse panics when s is not a valid UUID. Use it for package-level
// constants.
func MustParse(s string) UUID {
	id, err := Parse(s)
	if err == nil {
		return id
	}
	panic(fmt.Sprintf("xuuid: Parse(%q): %v", s, err))
}

// Bytes exposes the 16 octets of u.
func (u UUID) Bytes() []byte {
	return u[:]
}

// IsNil reports whether u equals Nil.
func (u UUID) IsNil() bool {
	return u == Nil
}

// Timestamp returns the Unix timestamp in milliseconds stored in a v1, v2,
// v6 or v7 UUID, and 0 for every other version.
//
// For v1 and v2 the version nibble overwrites bits 12..15 of the stored
// count, so those four bits read back as the version rather than the
// original time.
func (u UUID) Timestamp() int64 {
	switch u.Version() {
	case VersionTimeBased, VersionDCESecurity:
		return int64(binary.BigEndian.Uint64(u[0:8])) - gregorianOffsetMs
	case VersionReordered:
		timeLow := uint64(binary.BigEndian.Uint32(u[0:4]))
		timeMid := uint64(binary.BigEndian.Uint16(u[4:6]))
		timeHigh := uint64(binary.BigEndian.Uint16(u[6:8])) & 0x0FFF
		return int64(timeHigh<<48|timeMid<<32|timeLow) - gregorianOffsetMs
	case VersionTimeSorted:
		return int64(binary.BigEndian.Uint64(u[0:8]) >> 16)
	default:
		return 0
	}
}

// Time returns the timestamp as a time.Time, or the zero time for versions
// without one.
func (u UUID) Time() time.Time {
	switch u.Version() {
	case VersionTimeBased, VersionDCESecurity, VersionReordered, VersionTimeSorted:
		return time.UnixMilli(u.Timestamp()).UTC()
	default:
		return time.Time{}
	}
}

// ClockSequence returns the 14-bit clock sequence of a v1, v2 or v6 UUID.
func (u UUID) ClockSequence() uint16 {
	return binary.BigEndian.Uint16(u[8:10]) & 0x3FFF
}

// Node returns the 48-bit node field (bytes 10..15).
func (u UUID) Node() [6]byte {
	var node [6]byte
	copy(node[:], u[10:16])
	return node
}

// Domain returns the local-domain byte of a v2 UUID.
func (u UUID) Domain() byte {
	return u[9]
}

// MarshalText emits the canonical form.
func (u UUID) MarshalText() ([]byte, error) {
	return u.appendText(nil), nil
}

// UnmarshalText accepts every form Parse accepts.
func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err == nil {
		*u = parsed
	}
	return err
}

// MarshalBinary returns the raw 16 octets.
func (u UUID) MarshalBinary() ([]byte, error) {
	out := make([]byte, len(u))
	copy(out, u[:])
	return out, nil
}

// UnmarshalBinary requires exactly 16 octets.
func (u *UUID) UnmarshalBinary(b []byte) error {
	parsed, err := FromBytes(b)
	if err == nil {
		*u = parsed
	}
	return err
}

// Scan reads a column value. Strings are parsed as text; a 16-byte slice is
// taken as raw octets and any other slice is parsed as text. NULL and empty
// slices leave u unchanged.
func (u *UUID) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		text = v
	case []byte:
		switch len(v) {
		case 0:
			return nil
		case len(u):
			copy(u[:], v)
			return nil
		}
		text = string(v)
	default:
		return fmt.Errorf("xuuid: cannot scan type %T into UUID", src)
	}
	return u.UnmarshalText([]byte(text))
}

// Value stores u as canonical text.
func (u UUID) Value() (driver.Value, error) {
	return u.String(), nil
}

// Compare orders UUIDs by their octets, returning -1, 0 or +1.
func (u UUID) Compare(other UUID) int {
	return bytes.Compare(u[:], other[:])
}

// Equal reports whether u and other hold the same octets.
func (u UUID) Equal(other UUID) bool {
	return u == other
}
