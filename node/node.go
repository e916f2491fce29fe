// Package node supplies the 48-bit node identifiers embedded in time-based
// UUIDs (versions 1, 2 and 6).
package node

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/Lzww0608/xuuid/internal/hexcodec"
)

// Provider returns a 6-byte node id, or false when none is available.
type Provider interface {
	NodeID() ([6]byte, bool)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() ([6]byte, bool)

// NodeID calls f.
func (f ProviderFunc) NodeID() ([6]byte, bool) {
	return f()
}

// None never yields a node id.
var None Provider = ProviderFunc(func() ([6]byte, bool) {
	return [6]byte{}, false
})

// Static always yields mac.
func Static(mac [6]byte) Provider {
	return ProviderFunc(func() ([6]byte, bool) {
		return mac, true
	})
}

// Random draws 48 bits from src on first use and sets the multicast bit so
// the id cannot collide with a real IEEE 802 address. The id is reused for
// the lifetime of the provider. A nil src reads from crypto/rand.
func Random(src io.Reader) Provider {
	if src == nil {
		src = crand.Reader
	}
	var (
		once sync.Once
		id   [6]byte
		ok   bool
	)
	return ProviderFunc(func() ([6]byte, bool) {
		once.Do(func() {
			if _, err := io.ReadFull(src, id[:]); err != nil {
				return
			}
			id[0] |= 0x01
			ok = true
		})
		return id, ok
	})
}

// Hardware returns the hardware address seen on the most network
// interfaces. Interfaces are enumerated once, on first use.
func Hardware() Provider {
	return hardwareFrom(net.Interfaces)
}

func hardwareFrom(list func() ([]net.Interface, error)) Provider {
	var (
		once sync.Once
		id   [6]byte
		ok   bool
	)
	return ProviderFunc(func() ([6]byte, bool) {
		once.Do(func() {
			ifaces, err := list()
			if err != nil {
				return
			}
			addrs := make([][]byte, 0, len(ifaces))
			for _, iface := range ifaces {
				addrs = append(addrs, iface.HardwareAddr)
			}
			id, ok = MostFrequent(addrs)
		})
		return id, ok
	})
}

// MostFrequent counts the 6-byte addresses in addrs by value and returns the
// one seen most often. Ties go to the address that reached the count first.
// Addresses that are not 6 bytes long, or are all zero, are skipped.
func MostFrequent(addrs [][]byte) ([6]byte, bool) {
	counts := make(map[[6]byte]int)
	var (
		best      [6]byte
		bestCount int
	)
	for _, a := range addrs {
		if len(a) != 6 {
			continue
		}
		var key [6]byte
		copy(key[:], a)
		if key == ([6]byte{}) {
			continue
		}
		counts[key]++
		if counts[key] > bestCount {
			best, bestCount = key, counts[key]
		}
	}
	return best, bestCount > 0
}

// Format renders a node id as uppercase hyphenated hex (00-1A-2B-3C-4D-5E).
func Format(id [6]byte) string {
	return hexcodec.MAC.EncodeToString(id[:])
}

// Parse reads a 48-bit address in any form accepted by net.ParseMAC.
func Parse(s string) ([6]byte, error) {
	var id [6]byte
	hw, err := net.ParseMAC(s)
	if err != nil {
		return id, fmt.Errorf("parse node id: %w", err)
	}
	if len(hw) != 6 {
		return id, fmt.Errorf("parse node id: %q is %d bytes, want 6", s, len(hw))
	}
	copy(id[:], hw)
	return id, nil
}
