package main

import (
	"fmt"
	"log/slog"
	"os"

	"doby/internal/app"
	"doby/internal/config"
	"doby/internal/crypto"
	"doby/internal/doby"

	"github.com/spf13/cobra"
)

const version = "0.2.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "doby [INPUT] [OUTPUT]",
	Short: "Simple, secure and lightweight symmetric encryption from the command line",
	Long: `doby encrypts or decrypts a stream in one pass. INPUT and OUTPUT
default to stdin and stdout; "-" selects them explicitly. An input that
begins with the doby magic bytes is decrypted, anything else is
encrypted (use -f to encrypt regardless and nest containers).`,
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	Version:      version,
	RunE:         runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfgPath, err := app.DefaultConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.ReadFromFile(cfgPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	opts := app.Options{
		TimeCost:    cfg.TimeCost,
		MemoryCost:  cfg.MemoryCost,
		Parallelism: cfg.Parallelism,
		BlockSize:   cfg.BlockSize,
		Cipher:      cfg.Cipher,
	}

	// Explicit flags override the config file.
	if flags.Changed("time-cost") {
		opts.TimeCost, _ = flags.GetUint32("time-cost")
	}
	if flags.Changed("memory-cost") {
		opts.MemoryCost, _ = flags.GetUint32("memory-cost")
	}
	if flags.Changed("parallelism") {
		opts.Parallelism, _ = flags.GetUint8("parallelism")
	}
	if flags.Changed("block-size") {
		opts.BlockSize, _ = flags.GetInt("block-size")
	}
	if flags.Changed("cipher") {
		opts.Cipher, _ = flags.GetString("cipher")
	}

	opts.ForceEncrypt, _ = flags.GetBool("force-encrypt")
	opts.Interactive, _ = flags.GetBool("interactive")
	opts.PasswordSet = flags.Changed("password")
	opts.Password, _ = flags.GetString("password")

	if len(args) > 0 {
		opts.Input = args[0]
	}
	if len(args) > 1 {
		opts.Output = args[1]
	}

	logger := app.NewLogger(os.Stderr, slog.LevelWarn)
	return app.New(logger, doby.UUIDGenerator{}).Run(opts)
}

// inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the header parameters of a doby container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening file: %w", err)
		}
		defer f.Close()

		h, err := crypto.ParseHeader(f)
		if err != nil {
			return err
		}

		fmt.Printf("Argon2 time cost: %d\n", h.Argon.TimeCost)
		fmt.Printf("Argon2 memory cost: %d KB\n", h.Argon.MemoryCost)
		fmt.Printf("Argon2 parallelism: %d\n", h.Argon.Parallelism)
		fmt.Printf("Cipher: %s\n", h.Cipher)
		return nil
	},
}

// bench command
var benchCmd = &cobra.Command{
	Use:   "bench INPUT",
	Short: "Find the fastest block size for this machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Bench(args[0], os.Stdout, doby.RealClock{})
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the defaults file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the defaults file with built-in values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := app.DefaultConfigPath()
		if err != nil {
			return err
		}
		if err := config.Init(path, config.Default()); err != nil {
			return err
		}
		fmt.Printf("Configuration initialized at %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "View the effective defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := app.DefaultConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.ReadFromFile(path)
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Time cost:   %d\n", cfg.TimeCost)
		fmt.Printf("Memory cost: %d KB\n", cfg.MemoryCost)
		fmt.Printf("Parallelism: %d\n", cfg.Parallelism)
		fmt.Printf("Block size:  %d\n", cfg.BlockSize)
		fmt.Printf("Cipher:      %s\n", cfg.Cipher)
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolP("force-encrypt", "f", false, "Encrypt even if the doby format is recognized")
	rootCmd.Flags().BoolP("interactive", "i", false, "Prompt before overwriting an existing output file")
	rootCmd.Flags().String("password", "", "Password (prompted on the terminal when absent)")
	rootCmd.Flags().Uint32P("time-cost", "t", 10, "Argon2 time cost")
	rootCmd.Flags().Uint32P("memory-cost", "m", 4096, "Argon2 memory cost (in kilobytes)")
	rootCmd.Flags().Uint8P("parallelism", "p", 4, "Argon2 parallelism (between 1 and 255)")
	rootCmd.Flags().IntP("block-size", "b", 65536, "Size of the I/O buffer (in bytes)")
	rootCmd.Flags().StringP("cipher", "c", "auto", "Cipher: \"aes\", \"xchacha20\" or \"auto\" (ignored on decrypt)")
	rootCmd.Flags().BoolP("version", "V", false, "Print version and exit")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(configCmd)
}
