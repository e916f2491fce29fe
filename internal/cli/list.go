package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/Lzww0608/xuuid"
	"github.com/Lzww0608/xuuid/store"
)

type listEntry struct {
	ID        string `json:"id"`
	Version   int    `json:"version"`
	UnixMs    *int64 `json:"unixMs,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func runList(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("list", e.stderr)
	version := fs.Int("v", 0, "only list this version (0 = all)")
	limit := fs.Int("limit", 0, "maximum number of entries (0 = no limit)")
	count := fs.Bool("count", false, "print per-version counts instead of entries")
	output := fs.String("o", "text", "output format: text or json")
	if err := e.parse(fs, args); err != nil {
		return err
	}

	s, err := e.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if *count {
		counts, err := s.CountByVersion(ctx)
		if err != nil {
			return err
		}
		versions := make([]int, 0, len(counts))
		for v := range counts {
			versions = append(versions, int(v))
		}
		sort.Ints(versions)
		for _, v := range versions {
			fmt.Fprintf(e.stdout, "v%d\t%d\n", v, counts[xuuid.Version(v)])
		}
		return nil
	}

	entries, err := s.List(ctx, store.Filter{Version: xuuid.Version(*version), Limit: *limit})
	if err != nil {
		return err
	}

	switch *output {
	case "text":
		tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
		for _, entry := range entries {
			fmt.Fprintf(tw, "%s\tv%d\t%s\n", entry.ID, entry.Version, entry.CreatedAt.Format(time.RFC3339))
		}
		return tw.Flush()
	case "json":
		enc := json.NewEncoder(e.stdout)
		for _, entry := range entries {
			le := listEntry{
				ID:        entry.ID.String(),
				Version:   int(entry.Version),
				CreatedAt: entry.CreatedAt.Format(time.RFC3339),
			}
			if entry.UnixMs.Valid {
				ms := entry.UnixMs.Int64
				le.UnixMs = &ms
			}
			if err := enc.Encode(le); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrUsage, *output)
	}
}
