// main.go sets up the command-line interface for the affine cipher using
// cobra. Without a subcommand it runs the interactive prompt: read a message
// and a key pair, encrypt, decrypt the result and print both.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vdparikh/affine"
	"github.com/vdparikh/affine/internal/config"
	"github.com/vdparikh/affine/tinkaffine"
)

var version = "dev" // set by the linker

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

// cli carries the state shared by the commands of one root command, so tests
// can build isolated instances.
type cli struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// newRootCmd creates the root command and its subcommands.
func newRootCmd() *cobra.Command {
	c := &cli{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	cmd := &cobra.Command{
		Use:   "affine",
		Short: "Encrypt and decrypt text with the affine cipher.",
		Long: `affine substitutes every letter x of a message with (a*x + b) mod 26.
The key a must be coprime with 26; b is any integer. Text is upper-cased,
everything that is not a letter A-Z is kept as it is.

Running without a subcommand prompts for a message and a key pair.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		RunE:              c.runInteractive,
	}

	cmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./affine.yaml or $XDG_CONFIG_HOME/affine/affine.yaml)")
	cmd.PersistentFlags().Bool("verbose", false, "enable debug logging on stderr")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Prompt for a message and key pair, then encrypt and decrypt it",
			Args:  cobra.NoArgs,
			RunE:  c.runInteractive,
		},
		c.newTransformCmd("encrypt", "Encrypt text given as arguments or on stdin", func(p affine.Affine, s string) (string, error) {
			return p.Encrypt(s)
		}),
		c.newTransformCmd("decrypt", "Decrypt text given as arguments or on stdin", func(p affine.Affine, s string) (string, error) {
			return p.Decrypt(s)
		}),
		c.newInverseCmd(),
		c.newKeysetCmd(),
	)

	return cmd
}

// setup loads the configuration and installs the logger.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd, c.cfgFile)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if cfg.File != "" {
		c.logger.Debug("loaded config", slog.String("file", cfg.File))
	}
	return nil
}

// runInteractive mirrors the original driver: prompt, encrypt, decrypt, print.
// A rejected key is reported as "Error: ..." and is not a failure of the
// command; unparsable input is.
func (c *cli) runInteractive(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	message, err := prompt(in, out, "Enter your message: ")
	if err != nil {
		return err
	}
	a, err := promptInt(in, out, "Enter key 'a' (must be coprime with 26): ")
	if err != nil {
		return err
	}
	b, err := promptInt(in, out, "Enter key 'b': ")
	if err != nil {
		return err
	}

	encrypted, err := affine.Encrypt(message, a, b)
	if err != nil {
		return reportKeyError(out, err)
	}
	fmt.Fprintln(out, "\nEncrypted text:", encrypted)

	decrypted, err := affine.Decrypt(encrypted, a, b)
	if err != nil {
		return reportKeyError(out, err)
	}
	fmt.Fprintln(out, "Decrypted text:", decrypted)

	c.logger.Debug("interactive round trip", slog.Int("a", a), slog.Int("b", b), slog.Int("runes", len([]rune(message))))
	return nil
}

func reportKeyError(out io.Writer, err error) error {
	if errors.Is(err, affine.ErrInvalidKey) || errors.Is(err, affine.ErrNoInverse) {
		fmt.Fprintln(out, "Error:", err)
		return nil
	}
	return err
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func promptInt(in *bufio.Reader, out io.Writer, label string) (int, error) {
	line, err := prompt(in, out, label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", strings.TrimSpace(line), err)
	}
	return n, nil
}

func (c *cli) newTransformCmd(use, short string, fn func(affine.Affine, string) (string, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [text...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			primitive, err := c.primitive()
			if err != nil {
				return err
			}

			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}

			result, err := fn(primitive, text)
			if err != nil {
				return err
			}
			c.logger.Debug(use, slog.Int("runes", len([]rune(text))))

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	addKeyFlags(cmd)
	cmd.Flags().String("keyset", "", "cleartext JSON keyset file holding the key pair")
	return cmd
}

func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().Int("a", 0, "multiplicative key, coprime with 26")
	cmd.Flags().Int("b", 0, "additive key")
}

// primitive builds the cipher from the keyset file when one is configured,
// otherwise from the key pair.
func (c *cli) primitive() (affine.Affine, error) {
	if err := c.cfg.ValidateKey(); err != nil {
		return nil, err
	}

	if c.cfg.Keyset == "" {
		cipher, err := affine.New(c.cfg.A, c.cfg.B)
		if err != nil {
			return nil, err
		}
		a, b := cipher.Key()
		c.logger.Debug("using key pair", slog.Int("a", a), slog.Int("b", b))
		return cipher, nil
	}

	f, err := os.Open(c.cfg.Keyset)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyset: %w", err)
	}
	defer f.Close()

	handle, err := tinkaffine.ReadKeyset(f)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("using keyset", slog.String("file", c.cfg.Keyset), slog.Any("primary_key_id", handle.KeysetInfo().GetPrimaryKeyId()))
	return tinkaffine.New(handle)
}

// inputText joins args, or reads stdin when there are none.
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (c *cli) newInverseCmd() *cobra.Command {
	var modulus int
	cmd := &cobra.Command{
		Use:   "inverse <a>",
		Short: "Print the modular inverse of a",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid integer %q: %w", args[0], err)
			}
			inv, err := affine.ModularInverse(a, modulus)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), inv)
			return nil
		},
	}
	cmd.Flags().IntVar(&modulus, "modulus", affine.AlphabetSize, "modulus")
	return cmd
}

func (c *cli) newKeysetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyset",
		Short: "Manage Tink keysets holding an affine key pair",
	}

	var out string
	create := &cobra.Command{
		Use:   "create",
		Short: "Write a cleartext JSON keyset for the key pair --a, --b",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.cfg.HasKey {
				return config.ErrNoKey
			}
			handle, err := tinkaffine.NewKeysetHandleFromKey(c.cfg.A, c.cfg.B)
			if err != nil {
				return err
			}

			if out == "-" {
				return tinkaffine.WriteKeyset(handle, cmd.OutOrStdout())
			}

			f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("failed to create keyset file: %w", err)
			}
			if err := tinkaffine.WriteKeyset(handle, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close keyset file: %w", err)
			}

			c.logger.Info("keyset written", slog.String("file", out), slog.Any("primary_key_id", handle.KeysetInfo().GetPrimaryKeyId()))
			return nil
		},
	}
	addKeyFlags(create)
	create.Flags().StringVar(&out, "out", "-", `output file, "-" for stdout`)

	cmd.AddCommand(create)
	return cmd
}
