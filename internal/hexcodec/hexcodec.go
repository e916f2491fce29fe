// Package hexcodec renders byte sequences as fixed-width hexadecimal text with
// separator characters interleaved at fixed positions, and parses them back.
package hexcodec

import (
	"encoding/hex"
	"errors"
)

// ErrInvalidFormat is returned when text does not match a Layout.
var ErrInvalidFormat = errors.New("hexcodec: invalid format")

const (
	lowerTable = "0123456789abcdef"
	upperTable = "0123456789ABCDEF"
)

// Layout describes fixed-width hex text. Every position not listed in
// Positions holds one hex digit; listed positions hold Sep.
type Layout struct {
	Width     int
	Sep       byte
	Positions []int
	Upper     bool
}

var (
	// UUID is the canonical 8-4-4-4-12 lowercase form.
	UUID = Layout{Width: 36, Sep: '-', Positions: []int{8, 13, 18, 23}}

	// MAC is the six-group uppercase hardware address form (00-1A-2B-3C-4D-5E).
	MAC = Layout{Width: 17, Sep: '-', Positions: []int{2, 5, 8, 11, 14}, Upper: true}
)

// Plain returns a separator-free lowercase layout for n bytes.
func Plain(n int) Layout {
	return Layout{Width: 2 * n}
}

// ByteLen reports how many bytes the layout encodes.
func (l Layout) ByteLen() int {
	return (l.Width - len(l.Positions)) / 2
}

func (l Layout) isSep(i int) bool {
	for _, p := range l.Positions {
		if p == i {
			return true
		}
	}
	return false
}

// Encode writes src into dst following the layout and returns the number of
// characters written. Encoding stops when either src or dst is exhausted, so
// a short dst is never overrun.
func (l Layout) Encode(dst, src []byte) int {
	table := lowerTable
	if l.Upper {
		table = upperTable
	}
	width := l.Width
	if width > len(dst) {
		width = len(dst)
	}

	j := 0
	for _, b := range src {
		for j < width && l.isSep(j) {
			dst[j] = l.Sep
			j++
		}
		if j >= width {
			break
		}
		dst[j] = table[b>>4]
		j++
		if j >= width {
			break
		}
		dst[j] = table[b&0x0f]
		j++
	}
	for j < width && l.isSep(j) {
		dst[j] = l.Sep
		j++
	}
	return j
}

// EncodeToString returns the layout rendering of src.
func (l Layout) EncodeToString(src []byte) string {
	buf := make([]byte, l.Width)
	n := l.Encode(buf, src)
	return string(buf[:n])
}

// Decode parses text into dst. It returns ErrInvalidFormat when the width,
// separator placement, or any digit is wrong, or when dst is too small.
func (l Layout) Decode(dst []byte, text string) error {
	if len(text) != l.Width || len(dst) < l.ByteLen() {
		return ErrInvalidFormat
	}
	digits := make([]byte, 0, l.Width-len(l.Positions))
	for i := 0; i < len(text); i++ {
		if l.isSep(i) {
			if text[i] != l.Sep {
				return ErrInvalidFormat
			}
			continue
		}
		digits = append(digits, text[i])
	}
	if _, err := hex.Decode(dst, digits); err != nil {
		return ErrInvalidFormat
	}
	return nil
}
