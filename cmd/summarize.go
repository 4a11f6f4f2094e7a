package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skimtext/skim/pkg/summary"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [files...]",
	Short: "Summarize documents from files or stdin",
	Long: `Extracts the most representative sentences from one or more
documents. With no file arguments, reads the document from stdin.

Selection is either a fixed number of sentences (--sentences) or a
target fraction of the document's byte length (--ratio). The two are
mutually exclusive.

Example:
  skim summarize --sentences 3 article.txt
  skim summarize --ratio 0.1 --language german bericht.txt
  cat article.txt | skim summarize --sentences 2`,
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().IntP("sentences", "n", 0, "number of sentences to keep (0 = use --ratio)")
	summarizeCmd.Flags().Float64P("ratio", "r", 0, "target length ratio in [0,1] (0 = use config default)")
	summarizeCmd.Flags().StringP("language", "l", "", "document language, or 'agnostic' (default from config)")

	_ = viper.BindPFlag("summary.sentences", summarizeCmd.Flags().Lookup("sentences"))
	_ = viper.BindPFlag("summary.ratio", summarizeCmd.Flags().Lookup("ratio"))
	_ = viper.BindPFlag("summary.language", summarizeCmd.Flags().Lookup("language"))
}

func runSummarize(cmd *cobra.Command, args []string) error {
	n, _ := cmd.Flags().GetInt("sentences")
	ratio, _ := cmd.Flags().GetFloat64("ratio")
	language, _ := cmd.Flags().GetString("language")
	verbose := viper.GetBool("verbose")

	if n > 0 && cmd.Flags().Changed("ratio") {
		return fmt.Errorf("--sentences and --ratio are mutually exclusive")
	}

	// Fall back to config defaults
	if language == "" {
		language = viper.GetString("summary.language")
	}
	if language == "" {
		language = "english"
	}
	if n == 0 && ratio == 0 {
		n = viper.GetInt("summary.sentences")
		if n == 0 {
			ratio = viper.GetFloat64("summary.ratio")
		}
	}
	if n == 0 && ratio == 0 {
		ratio = 0.2
	}

	summarizer, err := newSummarizer(language)
	if err != nil {
		return err
	}

	// Stdin mode
	if len(args) == 0 {
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sentences, err := summarize(summarizer, string(text), n, ratio)
		if err != nil {
			return err
		}
		printSummary(os.Stdout, sentences)
		return nil
	}

	var bar *progressbar.ProgressBar
	if len(args) > 1 {
		bar = progressbar.NewOptions(
			len(args),
			progressbar.OptionSetDescription("Summarizing"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("docs"),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	for _, path := range args {
		start := time.Now()

		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		sentences, err := summarize(summarizer, string(text), n, ratio)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if len(args) > 1 {
			fmt.Printf("==> %s <==\n", path)
		}
		printSummary(os.Stdout, sentences)

		if bar != nil {
			_ = bar.Add(1)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "%s: %d sentences in %v\n", path, len(sentences), time.Since(start))
		}
	}

	return nil
}

// newSummarizer builds a Summarizer for a language name, where
// "agnostic" selects the language-agnostic profile.
func newSummarizer(language string) (*summary.Summarizer, error) {
	if language == "agnostic" {
		return summary.NewLanguageAgnostic(), nil
	}
	lang, err := summary.ParseLanguage(language)
	if err != nil {
		return nil, fmt.Errorf("%w (see 'skim languages')", err)
	}
	return summary.New(lang), nil
}

func summarize(s *summary.Summarizer, text string, n int, ratio float64) ([]string, error) {
	if n > 0 {
		return s.SummarizeSentences(text, n)
	}
	return s.SummarizeRatio(text, ratio)
}

func printSummary(w io.Writer, sentences []string) {
	for _, sentence := range sentences {
		fmt.Fprintln(w, strings.TrimSpace(sentence))
	}
}
