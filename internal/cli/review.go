package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mshelton/loupe/internal/config"
	"github.com/mshelton/loupe/internal/llm"
	"github.com/mshelton/loupe/internal/logging"
	"github.com/mshelton/loupe/internal/output"
	"github.com/mshelton/loupe/internal/review"
)

// Shared review flags
var (
	flagExt      string
	flagProvider string
	flagModel    string
	flagFormat   string
	flagOut      string
	flagPrompts  string
	flagNoRedact bool
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagExt, "ext", "", "File extension to review as (default: from file name, or py for stdin)")
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format (text, json)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagPrompts, "prompts", "", "Analyzer prompt pack file (YAML)")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagPrompts != "" {
		m["promptsFile"] = flagPrompts
	}
	return m
}

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Review a code snippet or file",
	Long: "Review a single file, or code piped on stdin when no file is given.\n" +
		"The three analyzers run concurrently and their findings are synthesized\n" +
		"into one narrative review.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		logging.Setup(cfg.Log)

		if flagNoRedact {
			cfg.Privacy.RedactSecrets = false
			fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
		}

		unit, err := readUnit(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		gen, err := llm.New(cfg.Provider, cfg.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if llm.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		pipe, err := review.NewPipeline(cfg, gen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		st := pipe.Run(context.Background(), unit)
		if err := output.WriteState(st, flagFormat, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		if st.Status == review.StatusErrored {
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

// readUnit builds the review unit from a file argument or stdin. The
// extension flag wins; otherwise the file name decides, and stdin defaults
// to Python.
func readUnit(args []string) (review.Unit, error) {
	var code, ext string

	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return review.Unit{}, fmt.Errorf("reading %s: %w", args[0], err)
		}
		code = string(data)
		ext = strings.TrimPrefix(strings.ToLower(filepath.Ext(args[0])), ".")
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return review.Unit{}, fmt.Errorf("reading stdin: %w", err)
		}
		code = string(data)
	}

	if flagExt != "" {
		ext = strings.TrimPrefix(strings.ToLower(flagExt), ".")
	}
	if ext == "" {
		ext = "py"
	}
	return review.Unit{Code: code, Extension: ext}, nil
}

func init() {
	addReviewFlags(reviewCmd)
}
