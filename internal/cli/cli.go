// Package cli implements the xuuid command: gen, inspect, rand and list.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Lzww0608/xuuid"
	"github.com/Lzww0608/xuuid/internal/config"
	"github.com/Lzww0608/xuuid/internal/logging"
	"github.com/Lzww0608/xuuid/node"
	"github.com/Lzww0608/xuuid/node/zknode"
	"github.com/Lzww0608/xuuid/random"
	"github.com/Lzww0608/xuuid/store"
)

// ErrUsage is returned for unknown commands and bad arguments.
var ErrUsage = errors.New("usage")

const usage = `usage: xuuid [global flags] <command> [flags] [args]

commands:
  gen      generate UUIDs
  inspect  decode UUIDs
  rand     draw values from the engine
  list     list the UUID registry

run "xuuid <command> -h" for command flags
`

type env struct {
	cfg    config.Config
	logger zerolog.Logger
	stdout io.Writer
	stderr io.Writer
}

type command func(ctx context.Context, e *env, args []string) error

var commands = map[string]command{
	"gen":     runGen,
	"inspect": runInspect,
	"rand":    runRand,
	"list":    runList,
}

// Run executes the command line args (without the program name).
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := newFlagSet("xuuid", stderr)
	cfg.RegisterFlags(fs)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, name)
	}

	e := &env{cfg: cfg, stdout: stdout, stderr: stderr}
	return cmd(ctx, e, fs.Args()[1:])
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parse parses command flags, which may repeat the global ones, then
// validates the merged config and builds the logger.
func (e *env) parse(fs *flag.FlagSet, args []string) error {
	e.cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(e.stderr, e.cfg.LogLevel, e.cfg.LogFormat)
	if err != nil {
		return err
	}
	e.logger = logger
	return nil
}

// newRand returns an engine seeded from config, or from entropy.
func (e *env) newRand() (*random.Rand, error) {
	seed, ok, err := e.cfg.SeedValue()
	if err != nil {
		return nil, err
	}
	if !ok {
		return random.NewFromEntropy(nil)
	}
	e.logger.Debug().Uint64("seed", seed).Msg("deterministic engine")
	return random.New(seed)
}

// nodeProvider resolves config.Node. The returned func releases any
// connection the provider holds.
func (e *env) nodeProvider(r *random.Rand) (xuuid.NodeProvider, func(), error) {
	noop := func() {}
	switch strings.ToLower(e.cfg.Node) {
	case config.NodeHardware:
		return node.Hardware(), noop, nil
	case config.NodeRandom:
		return node.Random(r), noop, nil
	case config.NodeNone:
		return node.None, noop, nil
	case config.NodeZK:
		zc := e.cfg.ZooKeeper
		conn, err := zknode.Connect(zc.Servers, zc.Timeout, e.logger)
		if err != nil {
			return nil, noop, err
		}
		a := zknode.NewAllocator(conn, zc.Service, zknode.WithRoot(zc.Root), zknode.WithLogger(e.logger))
		return a, conn.Close, nil
	default:
		mac, err := node.Parse(e.cfg.Node)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: node %q", config.ErrInvalidConfig, e.cfg.Node)
		}
		return node.Static(mac), noop, nil
	}
}

func (e *env) openStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, e.cfg.Store, store.WithLogger(e.logger))
}
