package store

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// Domain prefix for content-addressed query identity. Version suffix
// enables future algorithm migration.
const domainQuery = "graphmail/query/v1"

// QueryFingerprint computes a content-addressed ID for a compiled
// query. Parameters are serialized key-sorted with values in order,
// so the fingerprint is stable regardless of map iteration.
//
// Format: SHA256(domain + 0x00 + canonical) hex-encoded. The null
// separator prevents domain/data boundary ambiguity.
func QueryFingerprint(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var canonical strings.Builder
	for _, k := range keys {
		for _, v := range params[k] {
			canonical.WriteString(k)
			canonical.WriteByte('=')
			canonical.WriteString(v)
			canonical.WriteByte('\n')
		}
	}

	h := sha256.New()
	h.Write([]byte(domainQuery))
	h.Write([]byte{0x00})
	h.Write([]byte(canonical.String()))
	return hex.EncodeToString(h.Sum(nil))
}
