package xuuid

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/Lzww0608/xuuid/node"
	"github.com/Lzww0608/xuuid/random"
)

// NodeProvider supplies the 6-byte node id for versions 1, 2 and 6.
type NodeProvider interface {
	NodeID() ([6]byte, bool)
}

// Generator builds UUIDs from one random engine, one node provider and one
// clock. It holds mutable engine state and is not safe for concurrent use:
// give each goroutine its own Generator or guard a shared one.
type Generator struct {
	rand *random.Rand
	node NodeProvider
	now  func() time.Time
}

// Option configures a Generator.
type Option func(*Generator) error

// WithRand makes the generator draw from r.
func WithRand(r *random.Rand) Option {
	return func(g *Generator) error {
		g.rand = r
		return nil
	}
}

// WithSeed makes the generator draw from a fresh engine seeded with seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) error {
		r, err := random.New(seed)
		if err != nil {
			return err
		}
		g.rand = r
		return nil
	}
}

// WithNodeProvider sets the node id source for time-based versions.
func WithNodeProvider(p NodeProvider) Option {
	return func(g *Generator) error {
		g.node = p
		return nil
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) error {
		g.now = now
		return nil
	}
}

// NewGenerator creates a generator. Without WithRand or WithSeed the engine
// is seeded from crypto/rand; without WithNodeProvider the node id is the
// most common hardware address of the host.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.rand == nil {
		r, err := random.NewFromEntropy(nil)
		if err != nil {
			return nil, err
		}
		g.rand = r
	}
	if g.node == nil {
		g.node = node.Hardware()
	}
	return g, nil
}

// Rand returns the generator's random source.
func (g *Generator) Rand() *random.Rand {
	return g.rand
}

// New generates a UUID of the given version. Name-based versions 3 and 5
// need a namespace and name and are rejected here.
func (g *Generator) New(v Version) (UUID, error) {
	switch v {
	case VersionTimeBased:
		return g.NewV1()
	case VersionDCESecurity:
		return g.NewV2(0)
	case VersionRandom:
		return g.NewV4(), nil
	case VersionReordered:
		return g.NewV6()
	case VersionTimeSorted:
		return g.NewV7()
	case VersionNameBasedMD5, VersionNameBasedSHA1:
		return Nil, fmt.Errorf("%w: version %d needs a namespace and name", ErrInvalidVersion, v)
	default:
		return Nil, fmt.Errorf("%w: %d", ErrInvalidVersion, v)
	}
}

// NewV1 generates a time-based UUID. Bytes 0..7 hold the Unix time in
// milliseconds plus the Gregorian offset, bytes 8..9 a random 14-bit clock
// sequence, and bytes 10..15 the node id.
func (g *Generator) NewV1() (UUID, error) {
	var uuid UUID

	clockSeq, nodeID, err := g.clockAndNode()
	if err != nil {
		return uuid, err
	}
	timestamp := g.now().UnixMilli() + gregorianOffsetMs

	binary.BigEndian.PutUint64(uuid[0:8], uint64(timestamp))
	binary.BigEndian.PutUint16(uuid[8:10], clockSeq)
	copy(uuid[10:], nodeID[:])

	setVersion(&uuid, VersionTimeBased)
	setRFC4122Variant(&uuid)
	return uuid, nil
}

// NewV2 generates a v1 layout whose byte 9 is replaced by the local domain.
func (g *Generator) NewV2(domain byte) (UUID, error) {
	uuid, err := g.NewV1()
	if err != nil {
		return uuid, err
	}
	uuid[9] = domain
	setVersion(&uuid, VersionDCESecurity)
	return uuid, nil
}

// NewV4 generates a UUID from 16 random bytes.
func (g *Generator) NewV4() UUID {
	var uuid UUID
	g.rand.FillBytes(uuid[:])
	setVersion(&uuid, VersionRandom)
	setRFC4122Variant(&uuid)
	return uuid
}

// NewV6 generates a time-based UUID with the timestamp reordered so that the
// most significant bits come first.
func (g *Generator) NewV6() (UUID, error) {
	var uuid UUID

	clockSeq, nodeID, err := g.clockAndNode()
	if err != nil {
		return uuid, err
	}
	timestamp := uint64(g.now().UnixMilli() + gregorianOffsetMs)
	timeLow := uint32(timestamp)
	timeMid := uint16(timestamp >> 32)
	timeHigh := uint16(timestamp>>48) & 0x0FFF

	binary.BigEndian.PutUint32(uuid[0:4], timeLow)
	binary.BigEndian.PutUint16(uuid[4:6], timeMid)
	binary.BigEndian.PutUint16(uuid[6:8], timeHigh)
	binary.BigEndian.PutUint16(uuid[8:10], clockSeq)
	copy(uuid[10:], nodeID[:])

	setVersion(&uuid, VersionReordered)
	setRFC4122Variant(&uuid)
	return uuid, nil
}

// NewV7 generates a UUID whose top 48 bits are the Unix time in
// milliseconds, followed by 16 random bits and 64 more random bits.
func (g *Generator) NewV7() (UUID, error) {
	var uuid UUID

	randA, err := g.rand.Int32n(1 << 16)
	if err != nil {
		return uuid, err
	}
	timestamp := uint64(g.now().UnixMilli())

	binary.BigEndian.PutUint64(uuid[0:8], timestamp<<16|uint64(randA))
	binary.BigEndian.PutUint64(uuid[8:16], g.rand.Uint64())

	setVersion(&uuid, VersionTimeSorted)
	setRFC4122Variant(&uuid)
	return uuid, nil
}

func (g *Generator) clockAndNode() (uint16, [6]byte, error) {
	clockSeq, err := g.rand.Int32Range(0, 1<<14)
	if err != nil {
		return 0, [6]byte{}, err
	}
	nodeID, ok := g.node.NodeID()
	if !ok {
		return 0, [6]byte{}, ErrNodeUnavailable
	}
	return uint16(clockSeq), nodeID, nil
}

// NewV4FromSeed returns the v4 UUID produced by a fresh engine seeded with
// seed. Equal seeds always give equal UUIDs.
func NewV4FromSeed(seed uint64) (UUID, error) {
	r, err := random.New(seed)
	if err != nil {
		return Nil, err
	}
	g := &Generator{rand: r}
	return g.NewV4(), nil
}

// NewMD5 returns the version 3 UUID of MD5(namespace ++ name).
func NewMD5(namespace, name []byte) UUID {
	h := md5.New()
	h.Write(namespace)
	h.Write(name)
	return fromDigest(h.Sum(nil), VersionNameBasedMD5)
}

// NewSHA1 returns the version 5 UUID of the first 16 bytes of
// SHA-1(namespace ++ name).
func NewSHA1(namespace, name []byte) UUID {
	h := sha1.New()
	h.Write(namespace)
	h.Write(name)
	return fromDigest(h.Sum(nil), VersionNameBasedSHA1)
}

// NewV3 is NewMD5 over the bytes of a namespace UUID and a name.
func NewV3(namespace UUID, name string) UUID {
	return NewMD5(namespace[:], []byte(name))
}

// NewV5 is NewSHA1 over the bytes of a namespace UUID and a name.
func NewV5(namespace UUID, name string) UUID {
	return NewSHA1(namespace[:], []byte(name))
}

func fromDigest(sum []byte, v Version) UUID {
	var uuid UUID
	copy(uuid[:], sum[:16])
	setVersion(&uuid, v)
	setRFC4122Variant(&uuid)
	return uuid
}

// Well known namespaces for name-based UUIDs.
var (
	NamespaceDNS  = MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	NamespaceURL  = MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")
	NamespaceOID  = MustParse("6ba7b812-9dad-11d1-80b4-00c04fd430c8")
	NamespaceX500 = MustParse("6ba7b814-9dad-11d1-80b4-00c04fd430c8")
)

// setVersion overwrites the high nibble of byte 6.
func setVersion(u *UUID, v Version) {
	u[6] = u[6]&0x0F | byte(v&0x0F)<<4
}

// setRFC4122Variant overwrites the top two bits of byte 8 with 10.
func setRFC4122Variant(u *UUID) {
	u[8] = u[8]&0x3F | 0x80
}

// Must is a helper that wraps a call to a function returning (UUID, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var id = xuuid.Must(generator.NewV7())
func Must(uuid UUID, err error) UUID {
	if err != nil {
		panic(err)
	}
	return uuid
}

// The package-level functions share one generator. Its engine is not safe
// for concurrent use, so every call holds defaultMu.
var (
	defaultMu        sync.Mutex
	defaultGenerator *Generator
)

func withDefault(fn func(g *Generator) (UUID, error)) (UUID, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultGenerator == nil {
		g, err := NewGenerator()
		if err != nil {
			return Nil, err
		}
		defaultGenerator = g
	}
	return fn(defaultGenerator)
}

// New generates a new UUIDv7 using the default generator.
func New() (UUID, error) {
	return NewV7()
}

// NewV7 generates a UUIDv7 using the default generator.
func NewV7() (UUID, error) {
	return withDefault((*Generator).NewV7)
}

// NewV4 generates a UUIDv4 using the default generator.
func NewV4() (UUID, error) {
	return withDefault(func(g *Generator) (UUID, error) {
		return g.NewV4(), nil
	})
}

// NewV1 generates a UUIDv1 using the default generator and the host's
// hardware address.
func NewV1() (UUID, error) {
	return withDefault((*Generator).NewV1)
}

// NewV6 generates a UUIDv6 using the default generator and the host's
// hardware address.
func NewV6() (UUID, error) {
	return withDefault((*Generator).NewV6)
}
