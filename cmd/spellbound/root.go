package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/spellbound"
	"github.com/wippyai/spellbound/config"
	"github.com/wippyai/spellbound/engine"
)

// errMisspelled makes the process exit non-zero under --fail without
// printing anything further.
var errMisspelled = stderrors.New("misspelled words found")

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "spellbound [text...]",
		Short: "Check spelling with the platform's native spell checker",
		Long: `spellbound joins its arguments with spaces and prints one line per
misspelled word. Without arguments it reads standard input, unless standard
input is a terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, used, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			log, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			engine.SetLogger(log)
			if used != "" {
				log.Debug("config loaded", zap.String("file", used))
			}

			interactive, _ := cmd.Flags().GetBool("interactive")
			return run(cmd.Context(), cfg, log, args, interactive, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: ./spellbound.yaml)")
	cmd.Flags().StringP("backend", "b", "", "spell checking backend (default: platform native)")
	cmd.Flags().StringP("language", "l", "", "dictionary language, e.g. en_US")
	cmd.Flags().String("dict-dir", "", "directory holding <language>.aff and <language>.dic")
	cmd.Flags().String("log-level", "", "log level (debug|info|warn|error)")
	cmd.Flags().StringSlice("ignore", nil, "words to accept (repeatable)")
	cmd.Flags().Bool("json", false, "print misspellings as JSON")
	cmd.Flags().Bool("fail", false, "exit with status 1 when misspellings are found")
	cmd.Flags().BoolP("interactive", "i", false, "interactive mode with TUI")

	_ = cmd.RegisterFlagCompletionFunc("backend", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return spellbound.Backends(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("log-level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func openChecker(ctx context.Context, cfg *config.Config, log *zap.Logger) (*spellbound.Checker, error) {
	opts := []spellbound.Option{
		spellbound.WithLanguage(cfg.Language),
		spellbound.WithDictDir(cfg.DictDir),
		spellbound.WithLogger(log),
	}
	if cfg.Backend != "" {
		opts = append(opts, spellbound.WithBackend(cfg.Backend))
	}

	checker, err := spellbound.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Ignore {
		if err := checker.Ignore(w); err != nil {
			checker.Close()
			return nil, fmt.Errorf("ignore %q: %w", w, err)
		}
	}
	return checker, nil
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string, interactive bool, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	checker, err := openChecker(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer checker.Close()

	text := strings.Join(args, " ")
	if interactive {
		return runInteractive(checker, text)
	}

	if len(args) == 0 {
		if isTerminal(stdin) {
			return fmt.Errorf("no text given: pass it as arguments or on standard input")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	found, err := checker.Check(text).Collect()
	if err != nil {
		return err
	}
	log.Debug("check finished", zap.Int("misspellings", len(found)))

	if err := report(stdout, found, cfg.JSON); err != nil {
		return err
	}
	if cfg.Fail && len(found) > 0 {
		return errMisspelled
	}
	return nil
}

type jsonMisspelling struct {
	Text   string `json:"text"`
	Offset int    `json:"offset"`
}

func report(w io.Writer, found []spellbound.SpellingError, asJSON bool) error {
	if asJSON {
		out := make([]jsonMisspelling, 0, len(found))
		for _, e := range found {
			out = append(out, jsonMisspelling{Text: e.Text(), Offset: e.Offset()})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	for _, e := range found {
		if _, err := fmt.Fprintf(w, "ERROR: %s\n", e.Text()); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
