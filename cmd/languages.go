package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skimtext/skim/pkg/stopwords"
	"github.com/skimtext/skim/pkg/summary"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Long: `Lists the languages Skim recognizes, along with the processing
each one gets:

  stemmer    - Snowball stemming folds inflected forms together
  stopwords  - high-frequency filler words are ignored during ranking

Languages without either still work: sentence and word segmentation
follow the Unicode rules regardless. The special name 'agnostic'
disables stemming and stopword filtering entirely.`,
	RunE: runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LANGUAGE\tSTEMMER\tSTOPWORDS")

	langs := summary.Languages()
	for _, lang := range langs {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			lang,
			yesNo(lang.HasStemmer()),
			yesNo(lang.HasStopwords()),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d languages, %d with bundled stopword tables\n",
		len(langs), len(stopwords.Languages()))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
