// Command scbe-aethermoore is the reference CLI surface spec.md section
// 6 pins: encode/decode/xlate/blend/unblend and the GeoSeal envelope
// operations, plus a no-argument self-test. Subcommand dispatch and
// per-invocation correlation ids follow the teacher's flag-driven
// entrypoint (main.go.teacher) and its pkg/attestation request-id idiom;
// unlike the teacher's single-mode server, this entrypoint is a
// multi-verb CLI, so dispatch is a switch over os.Args[1] with one
// flag.NewFlagSet per subcommand, the conventional shape for that case.
package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/blend"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/config"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/geoproj"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/geoseal"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/metrics"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/pqcrypto"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/tokenizer"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/tongue"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/xlate"
)

// Exit codes per spec.md section 6.
const (
	exitOK              = 0
	exitVerifyFailure   = 1
	exitInvalidArgs     = 2
	exitUnknownOrLexErr = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := log.New(os.Stderr, fmt.Sprintf("[scbe %s] ", uuid.New().String()[:8]), log.LstdFlags)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("metrics listener stopped: %v", err)
			}
		}()
		logger.Printf("metrics: listening on %s", cfg.MetricsAddr)
	}

	if len(args) == 0 {
		if err := selfTest(logger); err != nil {
			logger.Printf("self-test failed: %v", err)
			return exitVerifyFailure
		}
		fmt.Fprintln(os.Stdout, "self-test: PASS")
		return exitOK
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "encode":
		return cmdEncode(rest, logger, m)
	case "decode":
		return cmdDecode(rest, logger, m)
	case "xlate":
		return cmdXlate(rest, logger, cfg, m)
	case "blend":
		return cmdBlend(rest, logger)
	case "unblend":
		return cmdUnblend(rest, logger)
	case "geoseal-encrypt":
		return cmdGeosealEncrypt(rest, logger, cfg, m)
	case "geoseal-decrypt":
		return cmdGeosealDecrypt(rest, logger, cfg, m)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", cmd)
		return exitInvalidArgs
	}
}

func loadLexicons(path string) (*tongue.Lexicons, error) {
	if path == "" {
		return tongue.Build(nil)
	}
	return tongue.LoadTableFile(path)
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func cmdEncode(args []string, logger *log.Logger, m *metrics.Metrics) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	tongueName := fs.String("tongue", "", "tongue channel (KO|AV|RU|CA|UM|DR)")
	lexPath := fs.String("lexicons", "", "custom lexicon YAML file")
	inPath := fs.String("in", "", "input file (default stdin)")
	outPath := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return exitInvalidArgs
	}
	t, err := tongue.ParseTongue(*tongueName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	ls, err := loadLexicons(*lexPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUnknownOrLexErr
	}
	data, err := readInput(*inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	toks, err := tokenizer.Encode(ls, t, data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUnknownOrLexErr
	}
	m.EncodeTotal.WithLabelValues(t.String()).Inc()
	logger.Printf("encode: tongue=%s bytes=%d tokens=%d", t, len(data), len(toks))
	if err := writeOutput(*outPath, []byte(tokenizer.Join(toks))); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	return exitOK
}

func cmdDecode(args []string, logger *log.Logger, m *metrics.Metrics) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	tongueName := fs.String("tongue", "", "tongue channel (KO|AV|RU|CA|UM|DR)")
	lexPath := fs.String("lexicons", "", "custom lexicon YAML file")
	inPath := fs.String("in", "", "input file (default stdin)")
	outPath := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return exitInvalidArgs
	}
	t, err := tongue.ParseTongue(*tongueName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	ls, err := loadLexicons(*lexPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUnknownOrLexErr
	}
	raw, err := readInput(*inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	toks := tokenizer.Normalize(string(raw))
	data, err := tokenizer.Decode(ls, t, toks)
	if err != nil {
		var unk *tokenizer.ErrUnknownToken
		if errors.As(err, &unk) {
			fmt.Fprintf(os.Stderr, "unknown token: %q at position %d\n", unk.Token, unk.Index)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return exitUnknownOrLexErr
	}
	m.DecodeTotal.WithLabelValues(t.String()).Inc()
	logger.Printf("decode: tongue=%s tokens=%d bytes=%d", t, len(toks), len(data))
	if err := writeOutput(*outPath, data); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	return exitOK
}

func cmdXlate(args []string, logger *log.Logger, cfg config.Config, met *metrics.Metrics) int {
	fs := flag.NewFlagSet("xlate", flag.ContinueOnError)
	src := fs.String("src", "", "source tongue")
	dst := fs.String("dst", "", "destination tongue")
	mode := fs.String("mode", "byte", "byte|semantic")
	attestKeyB64 := fs.String("attest-key", cfg.AttestKey, "base64 attestation key")
	lexPath := fs.String("lexicons", "", "custom lexicon YAML file")
	inPath := fs.String("in", "", "input file (default stdin)")
	outPath := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return exitInvalidArgs
	}
	srcT, err := tongue.ParseTongue(*src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	dstT, err := tongue.ParseTongue(*dst)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	var xm xlate.Mode
	switch *mode {
	case "byte":
		xm = xlate.ModeByte
	case "semantic":
		xm = xlate.ModeSemantic
	default:
		fmt.Fprintf(os.Stderr, "invalid --mode %q\n", *mode)
		return exitInvalidArgs
	}
	var attestKey []byte
	if *attestKeyB64 != "" {
		attestKey, err = base64.StdEncoding.DecodeString(*attestKeyB64)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitInvalidArgs
		}
	}
	ls, err := loadLexicons(*lexPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUnknownOrLexErr
	}
	raw, err := readInput(*inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	outToks, att, err := xlate.Retokenize(ls, srcT, dstT, string(raw), xm, attestKey, wallClock)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUnknownOrLexErr
	}
	met.RetokenizeTotal.WithLabelValues(fmt.Sprintf("%s_%s", srcT, dstT)).Inc()
	logger.Printf("xlate: %s->%s mode=%s tokens=%d", srcT, dstT, xm, len(outToks))
	result := struct {
		Tokens string            `json:"tokens"`
		Attest *xlate.Attestation `json:"attest"`
	}{Tokens: tokenizer.Join(outToks), Attest: att}
	out, err := json.Marshal(result)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	if err := writeOutput(*outPath, out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	return exitOK
}

func wallClock() (int64, float64) {
	now := time.Now()
	return now.Unix(), float64(now.UnixNano()) / 1e9
}

// parsePattern expands a "T1:N1,T2:N2,..." pattern spec into the
// repeated tongue sequence it describes, per spec.md section 6.
func parsePattern(spec string) ([]tongue.Tongue, error) {
	var out []tongue.Tongue
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		nameCount := strings.SplitN(part, ":", 2)
		name := nameCount[0]
		count := 1
		if len(nameCount) == 2 {
			n, err := strconv.Atoi(nameCount[1])
			if err != nil {
				return nil, fmt.Errorf("invalid pattern count %q: %w", part, err)
			}
			count = n
		}
		t, err := tongue.ParseTongue(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty blend pattern")
	}
	return out, nil
}

func cmdBlend(args []string, logger *log.Logger) int {
	fs := flag.NewFlagSet("blend", flag.ContinueOnError)
	patternSpec := fs.String("pattern", "", "T1:N1,T2:N2,... tongue pattern")
	lexPath := fs.String("lexicons", "", "custom lexicon YAML file")
	inPath := fs.String("in", "", "input file (default stdin)")
	outPath := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return exitInvalidArgs
	}
	pattern, err := parsePattern(*patternSpec)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	ls, err := loadLexicons(*lexPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUnknownOrLexErr
	}
	data, err := readInput(*inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	pairs, err := blend.Blend(ls, pattern, data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUnknownOrLexErr
	}
	logger.Printf("blend: pattern_len=%d bytes=%d", len(pattern), len(data))
	out, err := json.Marshal(jsonPairs(pairs))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	if err := writeOutput(*outPath, out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	return exitOK
}

type wirePair struct {
	Tongue string `json:"tongue"`
	Token  string `json:"token"`
}

func jsonPairs(pairs []blend.Pair) []wirePair {
	out := make([]wirePair, len(pairs))
	for i, p := range pairs {
		out[i] = wirePair{Tongue: p.Tongue.String(), Token: p.Token}
	}
	return out
}

func cmdUnblend(args []string, logger *log.Logger) int {
	fs := flag.NewFlagSet("unblend", flag.ContinueOnError)
	patternSpec := fs.String("pattern", "", "T1:N1,T2:N2,... tongue pattern")
	lexPath := fs.String("lexicons", "", "custom lexicon YAML file")
	inPath := fs.String("in", "", "input file (default stdin)")
	outPath := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return exitInvalidArgs
	}
	pattern, err := parsePattern(*patternSpec)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	ls, err := loadLexicons(*lexPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUnknownOrLexErr
	}
	raw, err := readInput(*inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	var wire []wirePair
	if err := json.Unmarshal(raw, &wire); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	pairs := make([]blend.Pair, len(wire))
	for i, w := range wire {
		t, err := tongue.ParseTongue(w.Tongue)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitUnknownOrLexErr
		}
		pairs[i] = blend.Pair{Tongue: t, Token: w.Token}
	}
	data, err := blend.Unblend(ls, pattern, pairs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUnknownOrLexErr
	}
	logger.Printf("unblend: pattern_len=%d bytes=%d", len(pattern), len(data))
	if err := writeOutput(*outPath, data); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	return exitOK
}

func parseContextJSON(raw string) ([]float64, error) {
	var ctx []float64
	if err := json.Unmarshal([]byte(raw), &ctx); err != nil {
		return nil, fmt.Errorf("invalid --context JSON: %w", err)
	}
	return ctx, nil
}

func providerPair(name string) (pqcrypto.KEMProvider, pqcrypto.SignatureProvider, error) {
	kem := pqcrypto.KEMProvider(pqcrypto.CirclKEM{})
	switch name {
	case "placeholder":
		return pqcrypto.Placeholder{}, pqcrypto.Placeholder{}, nil
	case "mldsa65", "":
		return kem, pqcrypto.CirclDSA{}, nil
	case "bls12381":
		return kem, pqcrypto.BLS{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown signature provider %q", name)
	}
}

func cmdGeosealEncrypt(args []string, logger *log.Logger, cfg config.Config, met *metrics.Metrics) int {
	fs := flag.NewFlagSet("geoseal-encrypt", flag.ContinueOnError)
	ctxJSON := fs.String("context", "", "context vector as a JSON array")
	kemKeyB64 := fs.String("kem-key", "", "base64 KEM public key")
	dsaKeyB64 := fs.String("dsa-key", "", "base64 DSA private key")
	ptB64 := fs.String("plaintext-b64", "", "base64 plaintext (default stdin raw bytes)")
	provider := fs.String("provider", cfg.SignatureProvider, "signature provider: placeholder|mldsa65|bls12381")
	lSphere := fs.Int("l-sphere", cfg.DefaultLSphere, "sphere projection level")
	lCube := fs.Int("l-cube", cfg.DefaultLCube, "cube projection level")
	if err := fs.Parse(args); err != nil {
		return exitInvalidArgs
	}
	ctx, err := parseContextJSON(*ctxJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	kemKey, err := base64.StdEncoding.DecodeString(*kemKeyB64)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	dsaKey, err := base64.StdEncoding.DecodeString(*dsaKeyB64)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	var pt []byte
	if *ptB64 != "" {
		pt, err = base64.StdEncoding.DecodeString(*ptB64)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitInvalidArgs
		}
	} else {
		pt, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitInvalidArgs
		}
	}
	kem, dsa, err := providerPair(*provider)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	sealer := geoseal.NewSealer(kem, dsa, nil, logger)
	start := time.Now()
	env, err := sealer.Seal(pt, ctx, pqcrypto.RawBytes(kemKey), pqcrypto.RawBytes(dsaKey), geoseal.Options{LSphere: *lSphere, LCube: *lCube})
	met.SealLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	met.SealTotal.Inc()
	out, err := json.Marshal(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	fmt.Fprintln(os.Stdout, string(out))
	return exitOK
}

func cmdGeosealDecrypt(args []string, logger *log.Logger, cfg config.Config, met *metrics.Metrics) int {
	fs := flag.NewFlagSet("geoseal-decrypt", flag.ContinueOnError)
	ctxJSON := fs.String("context", "", "context vector as a JSON array (advisory only, see design notes)")
	kemKeyB64 := fs.String("kem-key", "", "base64 KEM private key")
	dsaPkB64 := fs.String("dsa-pk", "", "base64 DSA public key")
	provider := fs.String("provider", cfg.SignatureProvider, "signature provider: placeholder|mldsa65|bls12381")
	envPath := fs.String("env", "", "envelope JSON file (default stdin)")
	if err := fs.Parse(args); err != nil {
		return exitInvalidArgs
	}
	var ctx []float64
	if *ctxJSON != "" {
		var err error
		ctx, err = parseContextJSON(*ctxJSON)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitInvalidArgs
		}
	}
	kemKey, err := base64.StdEncoding.DecodeString(*kemKeyB64)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	dsaPk, err := base64.StdEncoding.DecodeString(*dsaPkB64)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	raw, err := readInput(*envPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	var env geoseal.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	kem, dsa, err := providerPair(*provider)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	opener := geoseal.NewOpener(kem, dsa, logger)
	start := time.Now()
	res, err := opener.Open(&env, ctx, pqcrypto.RawBytes(kemKey), pqcrypto.RawBytes(dsaPk))
	met.OpenLatency.Observe(time.Since(start).Seconds())
	met.OpenTotal.Inc()
	if err != nil {
		if errors.Is(err, geoseal.ErrSignatureInvalid) {
			met.SignatureInvalid.Inc()
		}
		fmt.Fprintln(os.Stderr, err)
		return exitVerifyFailure
	}
	os.Stdout.Write(res.Plaintext)
	return exitOK
}

// selfTest exercises a full seal/open round trip and a tokenizer
// bijection sweep with the placeholder providers and default lexicon,
// exactly the "no arguments" CLI mode spec.md section 6 requires.
func selfTest(logger *log.Logger) error {
	ls, err := tongue.Build(nil)
	if err != nil {
		return err
	}
	toks, err := tokenizer.Encode(ls, tongue.KO, []byte{0, 1, 2, 255})
	if err != nil {
		return err
	}
	back, err := tokenizer.Decode(ls, tongue.KO, toks)
	if err != nil {
		return err
	}
	if string(back) != string([]byte{0, 1, 2, 255}) {
		return fmt.Errorf("self-test: tokenizer round trip mismatch")
	}

	kem := pqcrypto.Placeholder{}
	dsa := pqcrypto.Placeholder{}
	kemPub, kemPriv, err := kem.GenerateKEMKeyPair()
	if err != nil {
		return err
	}
	dsaPub, dsaPriv, err := dsa.GenerateDSAKeyPair()
	if err != nil {
		return err
	}
	sealer := geoseal.NewSealer(kem, dsa, nil, logger)
	opener := geoseal.NewOpener(kem, dsa, logger)
	ctx := []float64{0.2, -0.3, 0.7, 1.0, -2.0, 0.5, 3.1, -9.9, 0.0}
	pt := []byte("hello aethermoore")
	env, err := sealer.Seal(pt, ctx, kemPub, dsaPriv, geoseal.Options{LSphere: 0, LCube: 0})
	if err != nil {
		return err
	}
	res, err := opener.Open(env, ctx, kemPriv, dsaPub)
	if err != nil {
		return err
	}
	if !res.OK || string(res.Plaintext) != string(pt) {
		return fmt.Errorf("self-test: geoseal round trip mismatch")
	}

	if _, err := geoproj.Project(ctx, 0, 0, geoproj.DefaultCubeArity); err != nil {
		return err
	}
	logger.Printf("self-test: tokenizer and geoseal round trips OK")
	return nil
}

