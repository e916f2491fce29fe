package xuuid

import (
	"encoding/json"
	"testing"
)

func TestUUID_Summary(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) UUID
		want  string
	}{
		{
			name:  "v1",
			build: func(t *testing.T) UUID { return Must(newTestGenerator(t, 42).NewV1()) },
			want: "{ Version: (v1) Timestamp based, Variant: (2) RFC 4122, variant defined, Metadata: { " +
				"Timestamp: 1699999959040(2023-11-14T22:12:39.040Z), Clock Sequence: 8265, " +
				"Node (MAC Address): 02-42-AC-11-00-02 } }",
		},
		{
			name:  "v2",
			build: func(t *testing.T) UUID { return Must(newTestGenerator(t, 42).NewV2(7)) },
			want: "{ Version: (v2) DCE Security, Variant: (2) RFC 4122, variant defined, Metadata: { " +
				"Timestamp: 1699999963136(2023-11-14T22:12:43.136Z), Clock Sequence: 8199, " +
				"Local Domain: 7, Node (MAC Address): 02-42-AC-11-00-02 } }",
		},
		{
			name:  "v3",
			build: func(t *testing.T) UUID { return NewV3(NamespaceDNS, "example.com") },
			want: "{ Version: (v3) MD5 based, Variant: (2) RFC 4122, variant defined, Metadata: { " +
				"Hash Algorithm: MD5, Hash Value: 9073926b929f31c2abc9fad77ae3e8eb } }",
		},
		{
			name:  "v4",
			build: func(t *testing.T) UUID { return newTestGenerator(t, 42).NewV4() },
			want: "{ Version: (v4) Random, Variant: (2) RFC 4122, variant defined, Metadata: { " +
				"Random Bytes: 6db8a3ed97ed409283adeccbb7de24ee } }",
		},
		{
			name:  "v5",
			build: func(t *testing.T) UUID { return NewV5(NamespaceDNS, "example.com") },
			want: "{ Version: (v5) SHA-1 based, Variant: (2) RFC 4122, variant defined, Metadata: { " +
				"Hash Algorithm: SHA-1, Hash Value: cfbff0d193755685968c48ce8b15ae17 } }",
		},
		{
			name:  "v6",
			build: func(t *testing.T) UUID { return Must(newTestGenerator(t, 42).NewV6()) },
			want: "{ Version: (v6) Ordered, Variant: (2) RFC 4122, variant defined, Metadata: { " +
				"Timestamp: 1700000000000(2023-11-14T22:13:20.000Z), Clock Sequence: 8265, " +
				"Node (MAC Address): 02-42-AC-11-00-02 } }",
		},
		{
			name:  "v7",
			build: func(t *testing.T) UUID { return Must(newTestGenerator(t, 42).NewV7()) },
			want: "{ Version: (v7) Unix Timestamp based, Variant: (2) RFC 4122, variant defined, Metadata: { " +
				"Timestamp: 1700000000000(2023-11-14T22:13:20.000Z), Random Value: 709283adeccbb7de24ee } }",
		},
		{
			name:  "nil",
			build: func(t *testing.T) UUID { return Nil },
			want: "{ Version: (v0) * Unknown Version *, Variant: (4) Reserved, NCS backward compatibility, " +
				"Metadata: { * Unknown Version * } }",
		},
		{
			name: "v1 with Microsoft variant",
			build: func(t *testing.T) UUID {
				return MustParse("00000ca8-d680-1c00-c049-0242ac110002")
			},
			want: "{ Version: (v1) Timestamp based, Variant: (1) Microsoft variant, " +
				"Metadata: { * Unknown Variant * } }",
		},
		{
			name: "unknown version 15",
			build: func(t *testing.T) UUID {
				return MustParse("00000000-0000-f000-e000-000000000000")
			},
			want: "{ Version: (v15) * Unknown Version *, Variant: (0) Reserved for future use, " +
				"Metadata: { * Unknown Version * } }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build(t).Summary(); got != tt.want {
				t.Errorf("Summary() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestUUID_Metadata_Fields(t *testing.T) {
	uuid := Must(newTestGenerator(t, 42).NewV6())
	m := uuid.Metadata()

	if m.UUID != "d680bc00-0ca8-6000-a049-0242ac110002" {
		t.Errorf("UUID = %q", m.UUID)
	}
	if m.Version != 6 || m.VariantCode != 2 {
		t.Errorf("Version/Variant = %d/%d", m.Version, m.VariantCode)
	}
	if m.Timestamp == nil || *m.Timestamp != 1700000000000 {
		t.Errorf("Timestamp = %v", m.Timestamp)
	}
	if m.ClockSequence == nil || *m.ClockSequence != 8265 {
		t.Errorf("ClockSequence = %v", m.ClockSequence)
	}
	if m.Domain != nil || m.Hash != "" || m.Random != "" {
		t.Errorf("unexpected fields set: %+v", m)
	}
}

func TestMetadata_JSON(t *testing.T) {
	m := NewV5(NamespaceURL, "https://example.com").Metadata()

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded["hashAlgorithm"] != "SHA-1" {
		t.Errorf("hashAlgorithm = %v", decoded["hashAlgorithm"])
	}
	if _, ok := decoded["timestamp"]; ok {
		t.Error("timestamp should be omitted for name-based UUIDs")
	}
	if decoded["version"] != float64(5) {
		t.Errorf("version = %v", decoded["version"])
	}
}
