package xuuid

import (
	"testing"
)

func BenchmarkNew(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := New(); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkGenerator(b *testing.B) {
	for _, v := range []Version{VersionTimeBased, VersionDCESecurity, VersionRandom, VersionReordered, VersionTimeSorted} {
		b.Run(v.String(), func(b *testing.B) {
			gen := newTestGenerator(b, 1)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := gen.New(v); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// Each goroutine owns its generator.
func BenchmarkGenerator_Parallel(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		gen := newTestGenerator(b, 1)
		for pb.Next() {
			if _, err := gen.NewV7(); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkNameBased(b *testing.B) {
	b.Run("MD5", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = NewV3(NamespaceDNS, "example.com")
		}
	})
	b.Run("SHA1", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = NewV5(NamespaceDNS, "example.com")
		}
	})
}

func BenchmarkUUID_Summary(b *testing.B) {
	gen := newTestGenerator(b, 1)
	ids := []UUID{Must(gen.NewV1()), gen.NewV4(), Must(gen.NewV7())}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ids[i%len(ids)].Summary()
	}
}

func BenchmarkParse(b *testing.B) {
	inputs := map[string]string{
		"canonical": "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		"urn":       "urn:uuid:f47ac10b-58cc-4372-a567-0e02b2c3d479",
		"braced":    "{f47ac10b-58cc-4372-a567-0e02b2c3d479}",
		"compact":   "f47ac10b58cc4372a5670e02b2c3d479",
	}
	for name, s := range inputs {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Parse(s); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCodec(b *testing.B) {
	uuid := newTestGenerator(b, 1).NewV4()
	text, _ := uuid.MarshalText()
	hex := uuid.EncodeToHex()
	b64 := uuid.EncodeToBase64()

	cases := []struct {
		name string
		fn   func() error
	}{
		{"String", func() error { _ = uuid.String(); return nil }},
		{"MarshalText", func() error { _, err := uuid.MarshalText(); return err }},
		{"UnmarshalText", func() error { var u UUID; return u.UnmarshalText(text) }},
		{"MarshalBinary", func() error { _, err := uuid.MarshalBinary(); return err }},
		{"UnmarshalBinary", func() error { var u UUID; return u.UnmarshalBinary(uuid[:]) }},
		{"EncodeToHex", func() error { _ = uuid.EncodeToHex(); return nil }},
		{"DecodeFromHex", func() error { _, err := DecodeFromHex(hex); return err }},
		{"EncodeToBase64", func() error { _ = uuid.EncodeToBase64(); return nil }},
		{"DecodeFromBase64", func() error { _, err := DecodeFromBase64(b64); return err }},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := c.fn(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkUUID_Accessors(b *testing.B) {
	uuid := Must(newTestGenerator(b, 1).NewV6())
	other := Must(newTestGenerator(b, 2).NewV6())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = uuid.Timestamp()
		_ = uuid.ClockSequence()
		_ = uuid.Node()
		_ = uuid.Compare(other)
	}
}
