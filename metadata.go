package xuuid

import (
	"fmt"
	"strings"
	"time"

	"github.com/Lzww0608/xuuid/internal/hexcodec"
	"github.com/Lzww0608/xuuid/node"
)

const (
	unknownVariantNote = "* Unknown Variant *"
	timestampLayout    = "2006-01-02T15:04:05.000Z"
)

// Metadata is the decoded content of a UUID. Only the fields that the
// version defines are set.
type Metadata struct {
	UUID          string `json:"uuid" yaml:"uuid"`
	Version       int    `json:"version" yaml:"version"`
	VersionName   string `json:"versionName" yaml:"versionName"`
	VariantCode   int    `json:"variant" yaml:"variant"`
	VariantName   string `json:"variantName" yaml:"variantName"`
	Timestamp     *int64 `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Time          string `json:"time,omitempty" yaml:"time,omitempty"`
	ClockSequence *int   `json:"clockSequence,omitempty" yaml:"clockSequence,omitempty"`
	Domain        *int   `json:"domain,omitempty" yaml:"domain,omitempty"`
	Node          string `json:"node,omitempty" yaml:"node,omitempty"`
	HashAlgorithm string `json:"hashAlgorithm,omitempty" yaml:"hashAlgorithm,omitempty"`
	Hash          string `json:"hash,omitempty" yaml:"hash,omitempty"`
	Random        string `json:"random,omitempty" yaml:"random,omitempty"`
	Note          string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Metadata decodes the version, variant and version-specific fields of u.
// Unknown versions, and v1/v2 values without the RFC 4122 variant, carry a
// note instead of fields.
func (u UUID) Metadata() Metadata {
	version := u.Version()
	variant := u.Variant()
	m := Metadata{
		UUID:        u.String(),
		Version:     int(version),
		VersionName: version.String(),
		VariantCode: variant.Code(),
		VariantName: variant.String(),
	}

	switch version {
	case VersionTimeBased, VersionDCESecurity:
		if variant != VariantRFC4122 {
			m.Note = unknownVariantNote
			return m
		}
		m.setTime(u.Timestamp())
		m.setClock(u)
		if version == VersionDCESecurity {
			d := int(u.Domain())
			m.Domain = &d
		}
	case VersionNameBasedMD5:
		m.HashAlgorithm = "MD5"
		m.Hash = u.EncodeToHex()
	case VersionRandom:
		m.Random = u.EncodeToHex()
	case VersionNameBasedSHA1:
		m.HashAlgorithm = "SHA-1"
		m.Hash = u.EncodeToHex()
	case VersionReordered:
		m.setTime(u.Timestamp())
		m.setClock(u)
	case VersionTimeSorted:
		m.setTime(u.Timestamp())
		m.Random = hexcodec.Plain(10).EncodeToString(u[6:16])
	default:
		m.Note = unknownVersionName
	}
	return m
}

func (m *Metadata) setTime(ms int64) {
	m.Timestamp = &ms
	m.Time = time.UnixMilli(ms).UTC().Format(timestampLayout)
}

func (m *Metadata) setClock(u UUID) {
	seq := int(u.ClockSequence())
	m.ClockSequence = &seq
	m.Node = node.Format(u.Node())
}

// String renders the summary
// { Version: (vN) name, Variant: (k) name, Metadata: { ... } }.
func (m Metadata) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "{ Version: (v%d) %s, Variant: (%d) %s, Metadata: { ",
		m.Version, m.VersionName, m.VariantCode, m.VariantName)
	sb.WriteString(m.fields())
	sb.WriteString(" } }")
	return sb.String()
}

func (m Metadata) fields() string {
	if m.Note != "" {
		return m.Note
	}
	var parts []string
	if m.Timestamp != nil {
		parts = append(parts, fmt.Sprintf("Timestamp: %d(%s)", *m.Timestamp, m.Time))
	}
	if m.ClockSequence != nil {
		parts = append(parts, fmt.Sprintf("Clock Sequence: %d", *m.ClockSequence))
	}
	if m.Domain != nil {
		parts = append(parts, fmt.Sprintf("Local Domain: %d", *m.Domain))
	}
	if m.Node != "" {
		parts = append(parts, "Node (MAC Address): "+m.Node)
	}
	if m.HashAlgorithm != "" {
		parts = append(parts, "Hash Algorithm: "+m.HashAlgorithm, "Hash Value: "+m.Hash)
	}
	if m.Random != "" {
		label := "Random Bytes: "
		if m.Version == int(VersionTimeSorted) {
			label = "Random Value: "
		}
		parts = append(parts, label+m.Random)
	}
	return strings.Join(parts, ", ")
}

// Summary is shorthand for u.Metadata().String().
func (u UUID) Summary() string {
	return u.Metadata().String()
}
