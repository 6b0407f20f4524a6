package app

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"time"

	"doby/internal/crypto"
	"doby/internal/doby"
)

const (
	benchMinBlockSize = 1024
	benchMaxBlockSize = 64 * 1024 * 1024
)

// benchParams are throwaway costs: the benchmark measures stream
// throughput, not key stretching.
var benchParams = crypto.ArgonParams{TimeCost: 1, MemoryCost: 8, Parallelism: 1}

type benchBest struct {
	set       bool
	time      time.Duration
	blockSize int
}

func (b *benchBest) consider(d time.Duration, blockSize int) {
	if !b.set || d < b.time {
		b.set = true
		b.time = d
		b.blockSize = blockSize
	}
}

// Bench encrypts and decrypts the file at inputPath once per block size,
// doubling from 1 KiB to 64 MiB, and reports the fastest size for each
// direction. Ciphertext goes to a scratch file that is removed before
// returning.
func Bench(inputPath string, out io.Writer, clock doby.Clock) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	scratch, err := os.CreateTemp("", "doby-bench-*")
	if err != nil {
		return fmt.Errorf("creating scratch file: %w", err)
	}
	defer os.Remove(scratch.Name())
	defer scratch.Close()

	var bestEncrypt, bestDecrypt benchBest

	for blockSize := benchMinBlockSize; blockSize <= benchMaxBlockSize; blockSize *= 2 {
		params := doby.Params{
			Argon:     benchParams,
			Cipher:    crypto.AES256CTR,
			BlockSize: blockSize,
			Password:  []byte("doby-bench"),
		}
		engine := doby.NewEngine(params, doby.NewNopLogger(), rand.Reader)

		if _, err := in.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewinding input: %w", err)
		}
		if err := scratch.Truncate(0); err != nil {
			return fmt.Errorf("truncating scratch file: %w", err)
		}
		if _, err := scratch.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewinding scratch file: %w", err)
		}

		writer := bufio.NewWriterSize(scratch, bufferSize(blockSize))
		start := clock.Now()
		if err := engine.Encrypt(bufio.NewReaderSize(in, bufferSize(blockSize)), writer); err != nil {
			return fmt.Errorf("encrypting with block size %d: %w", blockSize, err)
		}
		if err := writer.Flush(); err != nil {
			return fmt.Errorf("flushing scratch file: %w", err)
		}
		encryptTime := clock.Now().Sub(start)
		fmt.Fprintf(out, "Encrypted in %v with block size of %dB\n", encryptTime, blockSize)
		bestEncrypt.consider(encryptTime, blockSize)

		if _, err := scratch.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewinding scratch file: %w", err)
		}

		start = clock.Now()
		if err := engine.Decrypt(bufio.NewReaderSize(scratch, bufferSize(blockSize)), io.Discard); err != nil {
			return fmt.Errorf("decrypting with block size %d: %w", blockSize, err)
		}
		decryptTime := clock.Now().Sub(start)
		fmt.Fprintf(out, "Decrypted in %v with block size of %dB\n", decryptTime, blockSize)
		bestDecrypt.consider(decryptTime, blockSize)
	}

	fmt.Fprintf(out, "\nBest block size for encryption: %dB (%v)\n", bestEncrypt.blockSize, bestEncrypt.time)
	fmt.Fprintf(out, "Best block size for decryption: %dB (%v)\n", bestDecrypt.blockSize, bestDecrypt.time)
	return nil
}
