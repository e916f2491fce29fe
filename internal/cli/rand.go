package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Lzww0608/xuuid/internal/hexcodec"
	"github.com/Lzww0608/xuuid/random"
)

// sampler draws one value from r and renders it.
type sampler func(r *random.Rand) (string, error)

func runRand(_ context.Context, e *env, args []string) error {
	fs := newFlagSet("rand", e.stderr)
	kind := fs.String("kind", "int64", "int32, int64, float32, float64, gauss, exp or bytes")
	bound := fs.String("bound", "", "exclusive upper bound")
	origin := fs.String("origin", "", "inclusive lower bound, requires -bound")
	count := fs.Int("n", 1, "number of values, or of bytes for -kind bytes")
	if err := e.parse(fs, args); err != nil {
		return err
	}
	if *count < 0 || (*count == 0 && *kind != "bytes") {
		return fmt.Errorf("%w: -n must be positive", ErrUsage)
	}
	if *origin != "" && *bound == "" {
		return fmt.Errorf("%w: -origin requires -bound", ErrUsage)
	}

	r, err := e.newRand()
	if err != nil {
		return err
	}

	if *kind == "bytes" {
		buf := make([]byte, *count)
		r.FillBytes(buf)
		fmt.Fprintln(e.stdout, hexcodec.Plain(len(buf)).EncodeToString(buf))
		return nil
	}

	draw, err := newSampler(*kind, *origin, *bound)
	if err != nil {
		return err
	}
	for i := 0; i < *count; i++ {
		v, err := draw(r)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, v)
	}
	return nil
}

func newSampler(kind, origin, bound string) (sampler, error) {
	switch kind {
	case "int32":
		o, b, err := parseInts(origin, bound, 32)
		if err != nil {
			return nil, err
		}
		return func(r *random.Rand) (string, error) {
			var v int32
			var err error
			switch {
			case origin != "":
				v, err = r.Int32Range(int32(o), int32(b))
			case bound != "":
				v, err = r.Int32n(int32(b))
			default:
				v = r.Int32()
			}
			return strconv.FormatInt(int64(v), 10), err
		}, nil
	case "int64":
		o, b, err := parseInts(origin, bound, 64)
		if err != nil {
			return nil, err
		}
		return func(r *random.Rand) (string, error) {
			var v int64
			var err error
			switch {
			case origin != "":
				v, err = r.Int64Range(o, b)
			case bound != "":
				v, err = r.Int64n(b)
			default:
				v = r.Int64()
			}
			return strconv.FormatInt(v, 10), err
		}, nil
	case "float32":
		o, b, err := parseFloats(origin, bound, 32)
		if err != nil {
			return nil, err
		}
		return func(r *random.Rand) (string, error) {
			var v float32
			var err error
			switch {
			case origin != "":
				v, err = r.Float32Range(float32(o), float32(b))
			case bound != "":
				v, err = r.Float32n(float32(b))
			default:
				v = r.Float32()
			}
			return strconv.FormatFloat(float64(v), 'g', -1, 32), err
		}, nil
	case "float64":
		o, b, err := parseFloats(origin, bound, 64)
		if err != nil {
			return nil, err
		}
		return func(r *random.Rand) (string, error) {
			var v float64
			var err error
			switch {
			case origin != "":
				v, err = r.Float64Range(o, b)
			case bound != "":
				v, err = r.Float64n(b)
			default:
				v = r.Float64()
			}
			return strconv.FormatFloat(v, 'g', -1, 64), err
		}, nil
	case "gauss":
		return func(r *random.Rand) (string, error) {
			return strconv.FormatFloat(r.NormFloat64(), 'g', -1, 64), nil
		}, nil
	case "exp":
		return func(r *random.Rand) (string, error) {
			return strconv.FormatFloat(r.ExpFloat64(), 'g', -1, 64), nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrUsage, kind)
	}
}

func parseInts(origin, bound string, bits int) (int64, int64, error) {
	var o, b int64
	var err error
	if origin != "" {
		if o, err = strconv.ParseInt(origin, 0, bits); err != nil {
			return 0, 0, fmt.Errorf("%w: -origin: %v", ErrUsage, err)
		}
	}
	if bound != "" {
		if b, err = strconv.ParseInt(bound, 0, bits); err != nil {
			return 0, 0, fmt.Errorf("%w: -bound: %v", ErrUsage, err)
		}
	}
	return o, b, nil
}

func parseFloats(origin, bound string, bits int) (float64, float64, error) {
	var o, b float64
	var err error
	if origin != "" {
		if o, err = strconv.ParseFloat(origin, bits); err != nil {
			return 0, 0, fmt.Errorf("%w: -origin: %v", ErrUsage, err)
		}
	}
	if bound != "" {
		if b, err = strconv.ParseFloat(bound, bits); err != nil {
			return 0, 0, fmt.Errorf("%w: -bound: %v", ErrUsage, err)
		}
	}
	return o, b, nil
}
