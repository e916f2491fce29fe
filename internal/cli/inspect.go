package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Lzww0608/xuuid"
)

func runInspect(_ context.Context, e *env, args []string) error {
	fs := newFlagSet("inspect", e.stderr)
	output := fs.String("o", "text", "output format: text, json or yaml")
	if err := e.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: inspect needs at least one UUID", ErrUsage)
	}

	metas := make([]xuuid.Metadata, 0, fs.NArg())
	for _, arg := range fs.Args() {
		id, err := xuuid.Parse(arg)
		if err != nil {
			return fmt.Errorf("inspect %q: %w", arg, err)
		}
		metas = append(metas, id.Metadata())
	}

	switch *output {
	case "text":
		for _, m := range metas {
			fmt.Fprintf(e.stdout, "%s %s\n", m.UUID, m)
		}
	case "json":
		enc := json.NewEncoder(e.stdout)
		for _, m := range metas {
			if err := enc.Encode(m); err != nil {
				return err
			}
		}
	case "yaml":
		enc := yaml.NewEncoder(e.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(metas); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrUsage, *output)
	}
	return nil
}
