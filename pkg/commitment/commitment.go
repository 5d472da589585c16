// Package commitment provides canonical JSON encoding and digest helpers
// shared by the envelope sealer and opener. Adapted from the teacher's
// RFC8785-style commitment package: sorted keys, no extra whitespace,
// and (new here) a fixed six-decimal float policy, since spec.md pins
// "floats serialized with six-decimal fixed precision" as load-bearing
// for cross-implementation signature interop.
package commitment

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
)

// CanonicalizeJSON takes arbitrary JSON bytes and returns a canonical
// encoding: deterministic key order, stable formatting. Numbers are not
// reformatted: a float carries six decimals in the output only when its
// input literal does, as Float6 values do. Decoding uses
// Decoder.UseNumber so that number literals
// (in particular the six-decimal Float6 strings spec.md pins for P and
// margin) survive the round trip verbatim instead of being collapsed
// through float64 and re-trimmed by json.Marshal.
func CanonicalizeJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return marshalCanonicalValue(v)
}

// MarshalCanonical canonically encodes any JSON-marshalable value.
func MarshalCanonical(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return CanonicalizeJSON(raw)
}

// marshalCanonicalValue walks a decoded JSON value and writes it back out
// with sorted object keys and no extra whitespace. Numbers decoded via
// UseNumber arrive as json.Number and are written out as the exact
// literal text they were decoded from, so a six-decimal Float6 string
// like "-0.500000" is not renormalized to "-0.5" on the way back out.
func marshalCanonicalValue(v interface{}) ([]byte, error) {
	switch vv := v.(type) {
	case json.Number:
		s := vv.String()
		if s == "" {
			s = "0"
		}
		return []byte(s), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf := []byte("{")
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf = append(buf, kb...)
			buf = append(buf, ':')
			vb, err := marshalCanonicalValue(vv[k])
			if err != nil {
				return nil, err
			}
			buf = append(buf, vb...)
		}
		buf = append(buf, '}')
		return buf, nil
	case []interface{}:
		buf := []byte("[")
		for i, e := range vv {
			if i > 0 {
				buf = append(buf, ',')
			}
			eb, err := marshalCanonicalValue(e)
			if err != nil {
				return nil, err
			}
			buf = append(buf, eb...)
		}
		buf = append(buf, ']')
		return buf, nil
	default:
		return json.Marshal(vv)
	}
}

// Float6 formats a float with exactly six decimal places, the fixed
// precision spec.md requires for signed attestation fields (P, margin).
func Float6(f float64) json.Number {
	return json.Number(strconv.FormatFloat(f, 'f', 6, 64))
}

// HashBytes returns hex-encoded SHA-256 of data, with a 0x prefix.
func HashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return "0x" + hex.EncodeToString(h[:])
}

// HashConcat returns SHA-256 of the concatenation of parts.
func HashConcat(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// DigestAttestAndCiphertext computes SHA256(canonicalAttest || ciphertext).
// The sealer and opener do not use it; they sign and verify
// DigestEnvelope below, which also covers ct_k.
func DigestAttestAndCiphertext(canonicalAttest, ciphertext []byte) []byte {
	return HashConcat(canonicalAttest, ciphertext)
}

// DigestEnvelope computes SHA256(canonicalAttest || ctK || ctSpec), the
// signed digest the sealer and opener actually use. spec.md section
// 4.7 step 6 writes the digest as covering only canonical_json(attest)
// and ct_spec, but section 8's "Context binding" universal invariant
// requires that flipping any bit of ct_k also invalidate the signature
// — which a digest over attest+ct_spec alone cannot guarantee, since a
// tampered KEM ciphertext decapsulates to a different (not erroring)
// shared secret rather than failing closed. Folding ct_k into the
// signed digest satisfies both: tampering ct_spec, ct_k, or any attest
// field all invalidate the signature, and the attest+ct_spec binding
// spec.md's rationale describes is still exactly covered.
func DigestEnvelope(canonicalAttest, ctK, ctSpec []byte) []byte {
	return HashConcat(canonicalAttest, ctK, ctSpec)
}
