package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mshelton/loupe/internal/config"
	"github.com/mshelton/loupe/internal/llm"
	"github.com/mshelton/loupe/internal/logging"
	"github.com/mshelton/loupe/internal/output"
	"github.com/mshelton/loupe/internal/repo"
)

var (
	flagRepoBranch   string
	flagRepoSubdir   string
	flagRepoMaxFiles int
	flagRepoExt      string
	flagRepoFormat   string
	flagRepoOut      string
	flagRepoReport   string
)

var repoCmd = &cobra.Command{
	Use:   "repo <github-url>",
	Short: "Review a public GitHub repository",
	Long: "Download a public GitHub repository, review its matching files one by\n" +
		"one, and emit the batch results. Use --report to also write a markdown\n" +
		"report file.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := buildOverrides()
		if flagRepoMaxFiles > 0 {
			overrides["maxFilesPerRepo"] = fmt.Sprintf("%d", flagRepoMaxFiles)
		}
		if flagRepoExt != "" {
			overrides["includeExtensions"] = flagRepoExt
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}
		logging.Setup(cfg.Log)

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

		driver, err := repo.NewDriver(cfg, gen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = fmt.Sprintf(" reviewing %s ...", args[0])
		spin.Start()
		analysis, err := driver.Analyze(context.Background(), args[0], repo.Options{
			Branch:   flagRepoBranch,
			Subdir:   flagRepoSubdir,
			MaxFiles: flagRepoMaxFiles,
		})
		spin.Stop()

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		fmt.Fprintf(os.Stderr, "%s reviewed %d of %d files in %s\n",
			color.GreenString("✓"), analysis.FilesAnalyzed, analysis.FilesConsidered, analysis.Repository)

		if err := writeAnalysis(analysis); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if flagRepoReport != "" {
			if err := output.SaveMarkdown(analysis, flagRepoReport); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			fmt.Fprintf(os.Stderr, "%s report written to %s\n", color.GreenString("✓"), flagRepoReport)
		}
		return nil
	},
}

func writeAnalysis(analysis *repo.Analysis) error {
	var w *os.File
	if flagRepoOut != "" {
		f, err := os.Create(flagRepoOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	switch flagRepoFormat {
	case "json":
		return output.WriteAnalysisJSON(w, analysis)
	case "markdown":
		_, err := w.WriteString(output.RenderMarkdown(analysis))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", flagRepoFormat)
	}
}

func init() {
	repoCmd.Flags().StringVar(&flagRepoBranch, "branch", "", "Branch to download (default: main, then master)")
	repoCmd.Flags().StringVar(&flagRepoSubdir, "subdir", "", "Restrict the review to a subdirectory")
	repoCmd.Flags().IntVar(&flagRepoMaxFiles, "max-files", 0, "Maximum number of files to review")
	repoCmd.Flags().StringVar(&flagRepoExt, "ext", "", "Extensions to include (comma-separated)")
	repoCmd.Flags().StringVar(&flagRepoFormat, "format", "json", "Output format (json, markdown)")
	repoCmd.Flags().StringVar(&flagRepoOut, "out", "", "Output file path (default: stdout)")
	repoCmd.Flags().StringVar(&flagRepoReport, "report", "", "Write a markdown report to this file")
	repoCmd.Flags().Lookup("report").NoOptDefVal = "code-review-report.md"

	repoCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	repoCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	repoCmd.Flags().StringVar(&flagPrompts, "prompts", "", "Analyzer prompt pack file (YAML)")
}
