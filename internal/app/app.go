// Package app is the application layer between the CLI and the engine.
// It resolves configuration and flags into engine parameters, acquires
// the password, opens the input and output streams, and guarantees that
// a failed run never leaves a partial file at the output path.
package app

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"doby/internal/crypto"
	"doby/internal/doby"
)

// Options are the fully parsed CLI values for one invocation, after
// config-file defaults have been applied by the command layer.
type Options struct {
	Input  string // path or "-"/"" for stdin
	Output string // path or "-"/"" for stdout

	Password    string
	PasswordSet bool // --password was given (even if empty)

	ForceEncrypt bool
	Interactive  bool

	TimeCost    uint32
	MemoryCost  uint32
	Parallelism uint8
	BlockSize   int
	Cipher      string // "aes", "xchacha20" or "auto"
}

// App wires an invocation together. The IDGenerator names temporary
// output files so concurrent invocations into one directory never
// collide.
type App struct {
	logger *slog.Logger
	ids    doby.IDGenerator
}

// New creates an App.
func New(logger *slog.Logger, ids doby.IDGenerator) *App {
	return &App{logger: logger, ids: ids}
}

// Run executes one encrypt-or-decrypt invocation.
func (a *App) Run(opts Options) error {
	params, err := a.resolveParams(opts)
	if err != nil {
		return err
	}

	password, err := a.resolvePassword(opts)
	if err != nil {
		return err
	}
	defer crypto.Zero(password)
	params.Password = password

	in, closeIn, err := openInput(opts.Input)
	if err != nil {
		return err
	}
	defer closeIn()

	out, finish, err := a.openOutput(opts.Output, opts.Interactive)
	if err != nil {
		return err
	}

	engine := doby.NewEngine(params, &slogAdapter{l: a.logger}, rand.Reader)
	reader := bufio.NewReaderSize(in, bufferSize(params.BlockSize))
	writer := bufio.NewWriterSize(out, bufferSize(params.BlockSize))

	err = engine.Run(reader, writer)
	if err == nil {
		err = writer.Flush()
	}
	return finish(err)
}

// resolveParams turns Options into validated engine parameters. All
// argument errors are reported here, before any I/O.
func (a *App) resolveParams(opts Options) (doby.Params, error) {
	var cipher crypto.CipherAlgorithm
	if opts.Cipher == "auto" || opts.Cipher == "" {
		cipher = DetectCipher()
		a.logger.Debug("cipher auto-detected", "cipher", cipher.String())
	} else {
		var err error
		if cipher, err = crypto.ParseCipher(opts.Cipher); err != nil {
			return doby.Params{}, err
		}
	}

	params := doby.Params{
		Argon: crypto.ArgonParams{
			TimeCost:    opts.TimeCost,
			MemoryCost:  opts.MemoryCost,
			Parallelism: opts.Parallelism,
		},
		Cipher:       cipher,
		BlockSize:    opts.BlockSize,
		ForceEncrypt: opts.ForceEncrypt,
	}
	if err := params.Validate(); err != nil {
		return doby.Params{}, err
	}
	return params, nil
}

func (a *App) resolvePassword(opts Options) ([]byte, error) {
	if opts.PasswordSet {
		return []byte(opts.Password), nil
	}
	return ReadPassword("Password: ")
}

// bufferSize keeps the bufio layers from shrinking below a useful
// minimum when tiny block sizes are configured.
func bufferSize(blockSize int) int {
	const min = 4096
	if blockSize < min {
		return min
	}
	return blockSize
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, f.Close, nil
}

// openOutput returns the output writer and a finish callback. For a
// file target the bytes go to a uniquely named temp file in the target
// directory; finish renames it into place on success and removes it on
// failure, so the target path either holds the complete output (a
// container or recovered plaintext) or is untouched.
func (a *App) openOutput(path string, interactive bool) (io.Writer, func(error) error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func(err error) error { return err }, nil
	}

	if _, statErr := os.Stat(path); statErr == nil && interactive {
		ok, err := ConfirmOverwrite(path)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, fmt.Errorf("aborted: %s not overwritten", path)
		}
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.doby-%s.tmp", filepath.Base(path), a.ids.New()))
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output: %w", err)
	}

	finish := func(runErr error) error {
		closeErr := f.Close()
		if runErr != nil {
			os.Remove(tmp)
			return runErr
		}
		if closeErr != nil {
			os.Remove(tmp)
			return fmt.Errorf("closing output: %w", closeErr)
		}
		if err := os.Rename(tmp, path); err != nil {
			os.Remove(tmp)
			return fmt.Errorf("finalizing output: %w", err)
		}
		return nil
	}
	return f, finish, nil
}
