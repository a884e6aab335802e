package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainFragment separates fragment fingerprints from any other hash that
// might be computed over the same bytes.
const DomainFragment = "cypherfrag/fragment/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint identifies a rendered fragment by content. Equal query text
// and equal parameter values give equal fingerprints regardless of map
// iteration order.
func Fingerprint(query string, params map[string]any) (string, error) {
	if params == nil {
		params = map[string]any{}
	}
	data, err := Marshal(map[string]any{
		"query":  query,
		"params": params,
	})
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(DomainFragment, data), nil
}

// Equal reports whether a and b serialize to the same canonical JSON, which
// treats int, int64 and integral floats as the same number.
func Equal(a, b any) (bool, error) {
	aj, err := Marshal(a)
	if err != nil {
		return false, err
	}
	bj, err := Marshal(b)
	if err != nil {
		return false, err
	}
	return string(aj) == string(bj), nil
}
