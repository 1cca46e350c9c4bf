package domain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"go.trai.ch/zerr"
)

const (
	// FingerprintLen is the length of a hex encoded fingerprint.
	FingerprintLen = sha256.Size * 2

	depsKey        = "deps"
	toolVersionKey = "tool-version"
)

// Fingerprint identifies one combination of dependency file content and installer version.
type Fingerprint string

// GenerateFingerprint creates a deterministic fingerprint from the raw dependency file
// content and the installer's reported version.
//
// The inputs are serialized as a JSON object. encoding/json sorts map keys, so the
// serialization does not depend on map iteration order.
//
// Both inputs must be valid UTF-8: encoding/json replaces invalid bytes with U+FFFD, so
// inputs differing only in invalid bytes would share a fingerprint. The dependency
// loader and the tool prober reject such input before it gets here.
func GenerateFingerprint(depsRaw, toolVersion string) Fingerprint {
	payload := map[string]string{
		depsKey:        depsRaw,
		toolVersionKey: toolVersion,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a map[string]string cannot fail.
	_ = enc.Encode(payload)

	sum := sha256.Sum256(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}))
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// ParseFingerprint validates s as a fingerprint.
func ParseFingerprint(s string) (Fingerprint, error) {
	if !isFingerprint(s) {
		return "", zerr.With(ErrInvalidFingerprint, "value", s)
	}
	return Fingerprint(s), nil
}

// String returns the hex form of the fingerprint.
func (f Fingerprint) String() string {
	return string(f)
}

// Short returns an abbreviated form for log lines.
func (f Fingerprint) Short() string {
	const shortLen = 12
	if len(f) <= shortLen {
		return string(f)
	}
	return string(f[:shortLen])
}

func isFingerprint(s string) bool {
	if len(s) != FingerprintLen {
		return false
	}
	for i := range len(s) {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
