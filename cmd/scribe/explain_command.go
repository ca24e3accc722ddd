package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const explainText = `How scribe fills in work information

1. Items matching the query are read from the catalog. Unless --force is
   given, items that already carry sc_work_style are left out.
2. Each item is reduced to a work: its composer_sort (or artist_sort when the
   composer is unknown) and the part of its work field before any ':'.
   Sort names repeated by taggers ("Rossini, G., Rossini, G.") are collapsed.
   Items without a work or author are skipped.
3. Every work is searched on IMSLP through the Custom Search API. Credentials
   are used in rotation; one that answers 429 is skipped for the rest of the
   run. Results are cached, so a later run does not spend quota twice.
4. The first result is scraped. The "Piece Style" row becomes sc_work_style;
   with the matching options the page also supplies genre ("Style; first
   category"), sc_genre_categories and sc_first_publication.
5. All items of the work (matched on author prefix and work title, with or
   without a ':' suffix) are updated, or only shown with --pretend.

With --search the given string is searched once and the page is applied to
every queried item. With --interactive scribe prints a search URL for each
work and reads the page link from standard input instead of calling the API.`

func newExplainCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "explain",
		Short:       "Describe how works are identified and enriched",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), explainText)
			return nil
		},
	}
}
