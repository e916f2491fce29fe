package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lzww0608/xuuid"
)

var namespaces = map[string]xuuid.UUID{
	"dns":  xuuid.NamespaceDNS,
	"url":  xuuid.NamespaceURL,
	"oid":  xuuid.NamespaceOID,
	"x500": xuuid.NamespaceX500,
}

func runGen(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("gen", e.stderr)
	version := fs.Int("v", int(xuuid.VersionTimeSorted), "UUID version 1-7")
	count := fs.Int("n", 1, "number of UUIDs")
	domain := fs.Uint("domain", 0, "local domain for version 2")
	ns := fs.String("ns", "dns", "namespace for versions 3 and 5: dns, url, oid, x500 or a UUID")
	name := fs.String("name", "", "name for versions 3 and 5")
	record := fs.Bool("store", false, "record generated UUIDs in the registry")
	if err := e.parse(fs, args); err != nil {
		return err
	}
	if *count < 1 {
		return fmt.Errorf("%w: -n must be positive", ErrUsage)
	}
	if *domain > 0xFF {
		return fmt.Errorf("%w: -domain must fit in a byte", ErrUsage)
	}

	ids, err := e.generate(xuuid.Version(*version), *count, byte(*domain), *ns, *name)
	if err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Fprintln(e.stdout, id)
	}

	if !*record {
		return nil
	}
	s, err := e.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	for _, id := range ids {
		if err := s.Record(ctx, id); err != nil {
			return err
		}
	}
	e.logger.Info().Int("count", len(ids)).Msg("recorded in registry")
	return nil
}

func (e *env) generate(v xuuid.Version, count int, domain byte, ns, name string) ([]xuuid.UUID, error) {
	ids := make([]xuuid.UUID, 0, count)

	if v == xuuid.VersionNameBasedMD5 || v == xuuid.VersionNameBasedSHA1 {
		if name == "" {
			return nil, fmt.Errorf("%w: -name is required for version %d", ErrUsage, v)
		}
		space, err := parseNamespace(ns)
		if err != nil {
			return nil, err
		}
		// Name-based UUIDs are a pure function of their input.
		id := xuuid.NewV5(space, name)
		if v == xuuid.VersionNameBasedMD5 {
			id = xuuid.NewV3(space, name)
		}
		for i := 0; i < count; i++ {
			ids = append(ids, id)
		}
		return ids, nil
	}

	r, err := e.newRand()
	if err != nil {
		return nil, err
	}
	provider, release, err := e.nodeProvider(r)
	if err != nil {
		return nil, err
	}
	defer release()

	gen, err := xuuid.NewGenerator(xuuid.WithRand(r), xuuid.WithNodeProvider(provider))
	if err != nil {
		return nil, err
	}

	for i := 0; i < count; i++ {
		var (
			id  xuuid.UUID
			err error
		)
		if v == xuuid.VersionDCESecurity {
			id, err = gen.NewV2(domain)
		} else {
			id, err = gen.New(v)
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseNamespace(s string) (xuuid.UUID, error) {
	if id, ok := namespaces[strings.ToLower(s)]; ok {
		return id, nil
	}
	id, err := xuuid.Parse(s)
	if err != nil {
		return xuuid.Nil, fmt.Errorf("namespace %q: %w", s, err)
	}
	return id, nil
}
