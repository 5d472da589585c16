// Package xlate implements cross-tongue retokenization (C3): byte-
// preserving re-encoding of a token stream from one tongue to another,
// accompanied by a signed attestation of the operation.
package xlate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/tokenizer"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/tongue"
)

// Mode distinguishes byte-preserving from semantic retokenization. At
// this layer the two are behaviorally identical; the distinction is
// carried to the attestation for downstream governance only.
type Mode string

const (
	ModeByte     Mode = "byte"
	ModeSemantic Mode = "semantic"
)

// defaultAttestKey is used when the caller supplies no attestation key.
// Matches the teacher's pattern of a well-known domain-separation
// constant (bls.DomainAttestation) rather than a zero-length key.
var defaultAttestKey = []byte("scbe-aethermoore:default-attest-key:v1")

// Attestation binds a retokenization operation to the byte content it
// carried, per spec.md section 4.3.
type Attestation struct {
	Src          string  `json:"src"`
	Dst          string  `json:"dst"`
	Mode         Mode    `json:"mode"`
	TS           float64 `json:"ts"`
	PhaseDelta   float64 `json:"phase_delta"`
	WeightRatio  float64 `json:"weight_ratio"`
	SHA256Bytes  string  `json:"sha256_bytes"`
	HMACAttest   string  `json:"hmac_attest"`
}

// Clock abstracts the current time so attestation determinism can be
// tested with a frozen clock, per spec.md section 8's "Attestation
// determinism" property.
type Clock func() (unixSeconds int64, unixFloat float64)

// Retokenize decodes tokenText under src, re-encodes the resulting bytes
// under dst, and produces the attestation of that operation. If
// attestKey is nil, defaultAttestKey is used. now must not be nil.
func Retokenize(ls *tongue.Lexicons, src, dst tongue.Tongue, tokenText string, mode Mode, attestKey []byte, now Clock) (outTokens []string, att *Attestation, err error) {
	if attestKey == nil {
		attestKey = defaultAttestKey
	}
	toks := tokenizer.Normalize(tokenText)
	data, err := tokenizer.Decode(ls, src, toks)
	if err != nil {
		return nil, nil, fmt.Errorf("xlate: decode under src %s: %w", src, err)
	}
	outTokens, err = tokenizer.Encode(ls, dst, data)
	if err != nil {
		return nil, nil, fmt.Errorf("xlate: encode under dst %s: %w", dst, err)
	}

	unixTS, unixFloat := now()

	phaseDelta := math.Mod(dst.Phase()-src.Phase(), 2*math.Pi)
	if phaseDelta < 0 {
		phaseDelta += 2 * math.Pi
	}
	weightRatio := dst.Weight() / src.Weight()

	sum := sha256.Sum256(data)
	shaHex := hex.EncodeToString(sum[:])

	msg := fmt.Sprintf("%s->%s|%s|%s|phase:%.6f|weight:%.6f|%d", src, dst, mode, shaHex, phaseDelta, weightRatio, unixTS)
	mac := hmac.New(sha256.New, attestKey)
	mac.Write([]byte(msg))
	hmacB64 := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	att = &Attestation{
		Src:         src.String(),
		Dst:         dst.String(),
		Mode:        mode,
		TS:          unixFloat,
		PhaseDelta:  phaseDelta,
		WeightRatio: weightRatio,
		SHA256Bytes: shaHex,
		HMACAttest:  hmacB64,
	}
	return outTokens, att, nil
}
