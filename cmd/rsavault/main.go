// Command rsavault is a numbered-menu CLI for generating RSA key pairs and
// running the encrypt/decrypt/sign/verify pipelines over arbitrary files.
// The menu and prompting here are thin; everything they call into lives in
// internal/.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rsavault/rsavault/internal/audit"
	"github.com/rsavault/rsavault/internal/config"
	"github.com/rsavault/rsavault/internal/digest"
	"github.com/rsavault/rsavault/internal/keycodec"
	"github.com/rsavault/rsavault/internal/padding"
	"github.com/rsavault/rsavault/internal/primeseed"
	"github.com/rsavault/rsavault/internal/rng"
	"github.com/rsavault/rsavault/internal/rsakey"
	"github.com/rsavault/rsavault/internal/rsapipeline"
	"github.com/rsavault/rsavault/internal/signer"
)

const configPath = "config/rsavault.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := configPath
	if p := os.Getenv("RSAVAULT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("rsavault starting", "default_bit_length", cfg.DefaultBitLength, "padding_scheme", cfg.PaddingScheme, "digest_provider", cfg.DigestProvider)

	prov, err := buildDigestProvider(cfg)
	if err != nil {
		return err
	}
	scheme, err := buildScheme(cfg.PaddingScheme, prov)
	if err != nil {
		return err
	}

	recorder, err := buildRecorder(cfg)
	if err != nil {
		return fmt.Errorf("setting up audit ledger: %w", err)
	}
	defer recorder.Close()

	src := rng.New(uint64(time.Now().UnixNano()))
	stdin := bufio.NewReader(os.Stdin)

	for {
		fmt.Println()
		fmt.Println("1) generate keys")
		fmt.Println("2) encrypt")
		fmt.Println("3) decrypt")
		fmt.Println("4) sign")
		fmt.Println("5) verify")
		fmt.Println("6) quit")
		choice := prompt(stdin, "choice: ")

		var opErr error
		switch choice {
		case "1":
			opErr = menuGenerateKeys(stdin, cfg, src, recorder)
		case "2":
			opErr = menuEncrypt(stdin, scheme, src)
		case "3":
			opErr = menuDecrypt(stdin, scheme)
		case "4":
			opErr = menuSign(stdin, scheme, prov, src)
		case "5":
			opErr = menuVerify(stdin, scheme, prov)
		case "6":
			slog.Info("rsavault exiting")
			return nil
		default:
			fmt.Println("invalid choice, pick 1-6")
			continue
		}
		if opErr != nil {
			slog.Error("operation failed", "err", opErr)
		}
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildDigestProvider(cfg config.Config) (digest.Provider, error) {
	switch cfg.DigestProvider {
	case "native", "":
		return digest.Native{}, nil
	case "shellout":
		if cfg.DigestShellBinary == "" {
			return nil, fmt.Errorf("digest_provider %q requires digest_shell_binary", cfg.DigestProvider)
		}
		return digest.ShellOut{Binary: cfg.DigestShellBinary, Args: cfg.DigestShellArgs}, nil
	default:
		return nil, fmt.Errorf("unknown digest provider %q", cfg.DigestProvider)
	}
}

func buildScheme(name string, prov digest.Provider) (padding.Scheme, error) {
	switch name {
	case "pkcs1v15", "":
		return padding.PKCS1{}, nil
	case "oaep-mgf1":
		return padding.OAEP{Digest: prov}, nil
	default:
		return nil, fmt.Errorf("unknown padding scheme %q", name)
	}
}

func buildRecorder(cfg config.Config) (audit.Recorder, error) {
	if !cfg.Audit.Enabled {
		return audit.Noop{}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := audit.RunMigrations(ctx, cfg.Audit.DSN()); err != nil {
		return nil, fmt.Errorf("running audit migrations: %w", err)
	}
	ledger, err := audit.New(ctx, cfg.Audit.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to audit database: %w", err)
	}
	return ledger, nil
}

func menuGenerateKeys(stdin *bufio.Reader, cfg config.Config, src *rng.Source, recorder audit.Recorder) error {
	bits, err := promptInt(stdin, fmt.Sprintf("bit length [%d]: ", cfg.DefaultBitLength), cfg.DefaultBitLength)
	if err != nil {
		return err
	}
	pubPath := prompt(stdin, "public key output path: ")
	privPath := prompt(stdin, "private key output path: ")

	if err := rejectExisting(pubPath, privPath); err != nil {
		return err
	}

	table, err := primeseed.LoadTable(cfg.SmallPrimesPath)
	if err != nil {
		return fmt.Errorf("loading small primes table: %w", err)
	}

	pub, priv, err := rsakey.Generate(bits, src, table)
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	if err := writeBlob(pubPath, func(f *os.File) error { return keycodec.WritePublicKeyBlob(f, pub) }); err != nil {
		return err
	}
	if err := writeBlob(privPath, func(f *os.File) error { return keycodec.WritePrivateKeyBlob(f, priv) }); err != nil {
		return err
	}

	keyID := uuid.New()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := recorder.RecordKeyGeneration(ctx, keyID, bits, pub.Fingerprint()); err != nil {
		slog.Error("audit ledger write failed", "err", err)
	}

	slog.Info("key pair generated", "key_id", keyID, "bits", bits, "public", pubPath, "private", privPath)
	return nil
}

func menuEncrypt(stdin *bufio.Reader, scheme padding.Scheme, src *rng.Source) error {
	pubPath := prompt(stdin, "public key path: ")
	inPath := prompt(stdin, "input file: ")
	outPath := prompt(stdin, "output (ciphertext) file: ")

	pub, err := readPublicKey(pubPath)
	if err != nil {
		return err
	}
	if err := rsapipeline.EncryptFile(inPath, outPath, pub.N, pub.E, scheme, src); err != nil {
		return fmt.Errorf("encrypting: %w", err)
	}
	slog.Info("file encrypted", "input", inPath, "output", outPath)
	return nil
}

func menuDecrypt(stdin *bufio.Reader, scheme padding.Scheme) error {
	privPath := prompt(stdin, "private key path: ")
	inPath := prompt(stdin, "input (ciphertext) file: ")
	outPath := prompt(stdin, "output file: ")
	mode := prompt(stdin, "mode [classic/crt]: ")

	priv, err := readPrivateKey(privPath)
	if err != nil {
		return err
	}
	n := new(big.Int).Mul(priv.P, priv.Q)
	useCRT := strings.EqualFold(strings.TrimSpace(mode), "crt")

	if err := rsapipeline.DecryptFile(inPath, outPath, n, priv.D, priv, useCRT, scheme); err != nil {
		return fmt.Errorf("decrypting: %w", err)
	}
	slog.Info("file decrypted", "input", inPath, "output", outPath, "crt", useCRT)
	return nil
}

func menuSign(stdin *bufio.Reader, scheme padding.Scheme, prov digest.Provider, src *rng.Source) error {
	privPath := prompt(stdin, "private key path: ")
	filePath := prompt(stdin, "file to sign: ")
	sigPath := prompt(stdin, "signature output path: ")

	priv, err := readPrivateKey(privPath)
	if err != nil {
		return err
	}
	n := new(big.Int).Mul(priv.P, priv.Q)
	pub := &rsakey.PublicKey{N: n, E: new(big.Int).Set(rsakey.PublicExponent)}

	if err := signer.SignFile(filePath, sigPath, pub, priv, scheme, prov, src); err != nil {
		return fmt.Errorf("signing: %w", err)
	}
	slog.Info("file signed", "file", filePath, "signature", sigPath)
	return nil
}

func menuVerify(stdin *bufio.Reader, scheme padding.Scheme, prov digest.Provider) error {
	pubPath := prompt(stdin, "public key path: ")
	filePath := prompt(stdin, "file to verify: ")
	sigPath := prompt(stdin, "signature path: ")

	pub, err := readPublicKey(pubPath)
	if err != nil {
		return err
	}
	valid, err := signer.VerifyFile(filePath, sigPath, pub, scheme, prov)
	if err != nil {
		return fmt.Errorf("verifying: %w", err)
	}
	if valid {
		fmt.Println("signature valid")
	} else {
		fmt.Println("signature INVALID")
	}
	return nil
}

func readPublicKey(path string) (*rsakey.PublicKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening public key %s: %w", path, err)
	}
	defer f.Close()
	return keycodec.ReadPublicKeyBlob(f)
}

func readPrivateKey(path string) (*rsakey.PrivateKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening private key %s: %w", path, err)
	}
	defer f.Close()
	return keycodec.ReadPrivateKeyBlob(f)
}

func writeBlob(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// rejectExisting refuses to overwrite an existing output file. The CLI
// layer decides whether to prompt for overwrite; the core pipeline never
// makes that call on its own.
func rejectExisting(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%s already exists", p)
		}
	}
	return nil
}

func prompt(stdin *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptInt(stdin *bufio.Reader, label string, def int) (int, error) {
	line := prompt(stdin, label)
	if line == "" {
		return def, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", line)
	}
	return n, nil
}
