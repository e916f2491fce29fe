package xuuid

import (
	"encoding/base64"

	"github.com/Lzww0608/xuuid/internal/hexcodec"
)

var plainHex = hexcodec.Plain(16)

// EncodeToHex returns the 32 lowercase hex digits of u with no separators.
func (u UUID) EncodeToHex() string {
	return plainHex.EncodeToString(u[:])
}

// EncodeToBase64 uses the unpadded URL-safe alphabet, giving 22 characters.
func (u UUID) EncodeToBase64() string {
	return base64.RawURLEncoding.EncodeToString(u[:])
}

// EncodeToBase64Std uses the padded standard alphabet.
func (u UUID) EncodeToBase64Std() string {
	return base64.StdEncoding.EncodeToString(u[:])
}

// DecodeFromHex is the inverse of EncodeToHex. Digits may be upper or lower
// case.
func DecodeFromHex(s string) (UUID, error) {
	var id UUID
	if plainHex.Decode(id[:], s) != nil {
		return Nil, ErrInvalidFormat
	}
	return id, nil
}

// DecodeFromBase64 is the inverse of EncodeToBase64.
func DecodeFromBase64(s string) (UUID, error) {
	return decodeBase64(base64.RawURLEncoding, s)
}

// DecodeFromBase64Std is the inverse of EncodeToBase64Std.
func DecodeFromBase64Std(s string) (UUID, error) {
	return decodeBase64(base64.StdEncoding, s)
}

func decodeBase64(enc *base64.Encoding, s string) (UUID, error) {
	data, err := enc.DecodeString(s)
	if err != nil {
		return Nil, ErrInvalidFormat
	}
	return FromBytes(data)
}

// FromBytes copies b into a UUID. It fails with ErrInvalidLength unless b
// holds exactly 16 octets.
func FromBytes(b []byte) (UUID, error) {
	var id UUID
	if len(b) != len(id) {
		return Nil, ErrInvalidLength
	}
	copy(id[:], b)
	return id, nil
}

// MustFromBytes panics where FromBytes would fail.
func MustFromBytes(b []byte) UUID {
	uuid, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return uuid
}
