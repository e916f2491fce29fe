package xuuid

import (
	"errors"
	"testing"
)

var sampleUUID = UUID{0xf4, 0x7a, 0xc1, 0x0b, 0x58, 0xcc, 0x43, 0x72, 0xa5, 0x67, 0x0e, 0x02, 0xb2, 0xc3, 0xd4, 0x79}

type codec struct {
	name   string
	encode func(UUID) string
	decode func(string) (UUID, error)
}

var codecs = []codec{
	{"hex", UUID.EncodeToHex, DecodeFromHex},
	{"base64url", UUID.EncodeToBase64, DecodeFromBase64},
	{"base64std", UUID.EncodeToBase64Std, DecodeFromBase64Std},
}

func TestCodecs_KnownValues(t *testing.T) {
	want := map[string]string{
		"hex":       "f47ac10b58cc4372a5670e02b2c3d479",
		"base64url": "9HrBC1jMQ3KlZw4CssPUeQ",
		"base64std": "9HrBC1jMQ3KlZw4CssPUeQ==",
	}

	for _, c := range codecs {
		t.Run(c.name, func(t *testing.T) {
			got := c.encode(sampleUUID)
			if got != want[c.name] {
				t.Errorf("encode = %q, want %q", got, want[c.name])
			}
			decoded, err := c.decode(got)
			if err != nil {
				t.Fatalf("decode(%q) error = %v", got, err)
			}
			if decoded != sampleUUID {
				t.Errorf("decode(%q) = %v, want %v", got, decoded, sampleUUID)
			}
		})
	}
}

func TestCodecs_Invalid(t *testing.T) {
	tests := []struct {
		decode  func(string) (UUID, error)
		input   string
		wantErr error
	}{
		{DecodeFromHex, "f47ac10b58cc4372", ErrInvalidFormat},
		{DecodeFromHex, "f47ac10b58cc4372a5670e02b2c3d479ff", ErrInvalidFormat},
		{DecodeFromHex, "g47ac10b58cc4372a5670e02b2c3d479", ErrInvalidFormat},
		{DecodeFromHex, "f47ac10b-58cc-4372-a567-0e02b2c3d4", ErrInvalidFormat},
		{DecodeFromBase64, "!!!invalid!!!", ErrInvalidFormat},
		{DecodeFromBase64, "YWJj", ErrInvalidLength},
		{DecodeFromBase64Std, "9HrBC1jMQ3KlZw4CssPUeQ", ErrInvalidFormat},
		{DecodeFromBase64Std, "YWJjZA==", ErrInvalidLength},
	}

	for _, tt := range tests {
		if _, err := tt.decode(tt.input); !errors.Is(err, tt.wantErr) {
			t.Errorf("decode(%q) error = %v, want %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestFromBytes(t *testing.T) {
	got, err := FromBytes(sampleUUID[:])
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}
	if got != sampleUUID {
		t.Errorf("FromBytes() = %v, want %v", got, sampleUUID)
	}

	for _, n := range []int{0, 3, 15, 17, 20} {
		if _, err := FromBytes(make([]byte, n)); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("FromBytes(%d bytes) error = %v, want %v", n, err, ErrInvalidLength)
		}
	}
}

func TestMustFromBytes(t *testing.T) {
	if got := MustFromBytes(sampleUUID[:]); got != sampleUUID {
		t.Errorf("MustFromBytes() = %v, want %v", got, sampleUUID)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustFromBytes() did not panic on invalid input")
		}
	}()
	MustFromBytes([]byte{0x01})
}

func TestCodecs_GeneratedVersions(t *testing.T) {
	gen := newTestGenerator(t, 99)

	for v := VersionTimeBased; v <= VersionTimeSorted; v++ {
		var uuid UUID
		var err error
		switch v {
		case VersionNameBasedMD5:
			uuid = NewV3(NamespaceURL, "https://example.com")
		case VersionNameBasedSHA1:
			uuid = NewV5(NamespaceURL, "https://example.com")
		default:
			uuid, err = gen.New(v)
		}
		if err != nil {
			t.Fatalf("generate v%d: %v", v, err)
		}

		for _, c := range codecs {
			decoded, err := c.decode(c.encode(uuid))
			if err != nil || decoded != uuid {
				t.Errorf("v%d %s round trip = %v, %v; want %v", v, c.name, decoded, err, uuid)
			}
		}
		if fromBytes, err := FromBytes(uuid.Bytes()); err != nil || fromBytes != uuid {
			t.Errorf("v%d FromBytes(Bytes()) = %v, %v", v, fromBytes, err)
		}
	}
}
