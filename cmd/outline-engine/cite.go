// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/citation"
	"github.com/pdiddy/outline-engine/pkg/types"
)

var citeCmd = &cobra.Command{
	Use:   "cite",
	Short: "Preview a citation from bibliography fields",
	Long: `Cite renders a citation from bibliography fields given as flags,
without touching the stored collections. Useful for checking how a
record will appear in a given style before attaching it to a note.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bib := types.BibEntry{}
		st, _ := cmd.Flags().GetString("type")
		bib.SourceType = types.SourceType(st)
		for _, f := range bibFlagFields {
			if v, _ := cmd.Flags().GetString(string(f)); v != "" {
				bib.SetField(f, v)
			}
		}

		ctx := types.ContextBibliography
		if footnote, _ := cmd.Flags().GetBool("footnote"); footnote {
			ctx = types.ContextFootnote
		}

		cite := citation.Format(bib, exportStyle(cmd), ctx)
		if cite == "" {
			return fmt.Errorf("no citation for source type %q in this style", st)
		}
		fmt.Println(cite)
		if !citation.IsComplete(bib) {
			fmt.Fprintln(cmd.ErrOrStderr(), "note: record is incomplete for its source type")
		}
		return nil
	},
}

func init() {
	citeCmd.Flags().String("type", "", "source type: book, journal, website, newspaper, chapter")
	citeCmd.Flags().String("style", "", "citation style: turabian, apa, mla, chicago, ieee")
	citeCmd.Flags().Bool("footnote", false, "render the short footnote form instead of the bibliography form")
	for _, f := range bibFlagFields {
		citeCmd.Flags().String(string(f), "", "bibliography "+string(f))
	}

	rootCmd.AddCommand(citeCmd)
}
