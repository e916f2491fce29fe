// Package zknode allocates node ids from ZooKeeper. Each process registers a
// persistent sequential znode under <root>/<service>/node- and turns the
// sequence number ZooKeeper assigns into a 6-byte node id, so that every
// registered instance of a service stamps a distinct node into its v1, v2 and
// v6 UUIDs.
package zknode

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-zookeeper/zk"
	"github.com/rs/zerolog"

	"github.com/Lzww0608/xuuid/node"
)

const (
	// DefaultRoot is the parent path of all service registrations
	DefaultRoot = "/xuuid"

	nodePrefix = "node-"

	// maxSequence is the largest sequence that fits below the first octet
	maxSequence = 1<<40 - 1
)

// ErrBadSequence is returned when the created znode name carries no usable
// sequence number.
var ErrBadSequence = errors.New("zknode: bad sequence number")

// Conn is the subset of *zk.Conn the allocator needs.
type Conn interface {
	Exists(path string) (bool, *zk.Stat, error)
	Create(path string, data []byte, flags int32, acl []zk.ACL) (string, error)
}

// Registration is stored as the data of the sequential znode.
type Registration struct {
	Host       string `json:"host"`
	Pid        int    `json:"pid"`
	CreateTime int64  `json:"create_time"`
}

// Allocator registers once and serves the resulting node id.
type Allocator struct {
	conn    Conn
	root    string
	service string
	logger  zerolog.Logger
	now     func() time.Time

	once sync.Once
	id   [6]byte
	path string
	err  error
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithRoot overrides DefaultRoot.
func WithRoot(root string) Option {
	return func(a *Allocator) {
		a.root = root
	}
}

// WithLogger sets the allocator logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Allocator) {
		a.logger = logger
	}
}

// NewAllocator returns an allocator for service. Nothing is written to
// ZooKeeper until the first Allocate or NodeID call.
func NewAllocator(conn Conn, service string, opts ...Option) *Allocator {
	a := &Allocator{
		conn:    conn,
		root:    DefaultRoot,
		service: service,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Connect dials the ZooKeeper ensemble and routes client logs to logger.
func Connect(servers []string, timeout time.Duration, logger zerolog.Logger) (*zk.Conn, error) {
	zl := logger.With().Str("component", "zk").Logger()
	conn, _, err := zk.Connect(servers, timeout, zk.WithLogger(&zl))
	if err != nil {
		return nil, fmt.Errorf("connect zk: %w", err)
	}
	return conn, nil
}

// Allocate registers this process on first use and returns its node id.
// Later calls return the cached result.
func (a *Allocator) Allocate() ([6]byte, error) {
	a.once.Do(func() {
		a.id, a.path, a.err = a.register()
		if a.err != nil {
			a.logger.Error().Err(a.err).Str("service", a.service).Msg("node id allocation failed")
			return
		}
		a.logger.Info().Str("path", a.path).Str("node", node.Format(a.id)).Msg("node id allocated")
	})
	return a.id, a.err
}

// NodeID implements node.Provider.
func (a *Allocator) NodeID() ([6]byte, bool) {
	id, err := a.Allocate()
	return id, err == nil
}

// Path returns the registered znode path, empty before allocation.
func (a *Allocator) Path() string {
	return a.path
}

func (a *Allocator) register() ([6]byte, string, error) {
	servicePath := path.Join(a.root, a.service)
	if err := a.ensurePath(servicePath); err != nil {
		return [6]byte{}, "", err
	}

	host, _ := os.Hostname()
	data, err := json.Marshal(Registration{
		Host:       host,
		Pid:        os.Getpid(),
		CreateTime: a.now().UnixMilli(),
	})
	if err != nil {
		return [6]byte{}, "", err
	}

	created, err := a.conn.Create(path.Join(servicePath, nodePrefix), data, zk.FlagSequence, zk.WorldACL(zk.PermAll))
	if err != nil {
		return [6]byte{}, "", fmt.Errorf("create %s: %w", servicePath, err)
	}

	seq, err := sequenceOf(created)
	if err != nil {
		return [6]byte{}, "", err
	}
	return idFromSequence(seq), created, nil
}

// ensurePath creates every missing component of p.
func (a *Allocator) ensurePath(p string) error {
	cur := ""
	for _, part := range strings.Split(strings.Trim(p, "/"), "/") {
		if part == "" {
			continue
		}
		cur += "/" + part
		exists, _, err := a.conn.Exists(cur)
		if err != nil {
			return fmt.Errorf("check %s: %w", cur, err)
		}
		if exists {
			continue
		}
		_, err = a.conn.Create(cur, nil, 0, zk.WorldACL(zk.PermAll))
		if err != nil && !errors.Is(err, zk.ErrNodeExists) {
			return fmt.Errorf("create %s: %w", cur, err)
		}
	}
	return nil
}

func sequenceOf(created string) (uint64, error) {
	i := strings.LastIndex(created, nodePrefix)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadSequence, created)
	}
	seq, err := strconv.ParseUint(created[i+len(nodePrefix):], 10, 64)
	if err != nil || seq > maxSequence {
		return 0, fmt.Errorf("%w: %q", ErrBadSequence, created)
	}
	return seq, nil
}

// idFromSequence stores seq big-endian in octets 1..5 and sets the
// multicast bit of octet 0, which no hardware address carries.
func idFromSequence(seq uint64) [6]byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seq)
	var id [6]byte
	copy(id[:], buf[2:])
	id[0] = 0x01
	return id
}
