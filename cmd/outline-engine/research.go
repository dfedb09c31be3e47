// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/citation"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// bibFlagFields maps --bib flag names to BibEntry fields. Every field is
// accepted regardless of source type; irrelevant fields simply stay unused.
var bibFlagFields = []types.BibField{
	types.FieldAuthor, types.FieldTitle, types.FieldYear,
	types.FieldDOI, types.FieldURL, types.FieldAccessDate,
	types.FieldPublisher, types.FieldCity, types.FieldEdition,
	types.FieldJournalName, types.FieldVolume, types.FieldIssue, types.FieldPages,
	types.FieldWebsiteName, types.FieldOrganization, types.FieldNewspaperName,
	types.FieldBookTitle, types.FieldEditors, types.FieldChapterPages,
}

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Manage research notes attached to outline points",
	Long: `Research manages the notes collected for each outline point. A note
carries free text and a bibliographic record; complete records feed the
autocomplete history for later entries of the same source type.`,
}

var researchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List research notes, optionally for one outline point",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Close()

		style := exportStyle(cmd)
		pointID, _ := cmd.Flags().GetString("point")

		printEntry := func(e types.ResearchEntry) {
			fmt.Printf("[%s] point=%s\n  %s\n", e.ID, e.PointID, e.Text)
			if cite := citation.Format(e.Bibliography, style, types.ContextBibliography); cite != "" {
				fmt.Printf("  %s\n", cite)
			}
		}
		if pointID != "" {
			for e := range w.EntriesFor(pointID) {
				printEntry(e)
			}
			return nil
		}
		for _, e := range w.Entries() {
			printEntry(e)
		}
		return nil
	},
}

var researchAddCmd = &cobra.Command{
	Use:   "add <point-id> <text>",
	Short: "Attach a research note to an outline point",
	Long: `Add attaches a note to an outline point. Bibliographic fields are
given as flags; --type selects the source type, which determines the
fields a complete record needs.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bib := types.BibEntry{}
		st, _ := cmd.Flags().GetString("type")
		bib.SourceType = types.SourceType(st)
		for _, f := range bibFlagFields {
			if v, _ := cmd.Flags().GetString(string(f)); v != "" {
				bib.SetField(f, v)
			}
		}

		w, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Close()

		e, ok := w.AddEntry(cmd.Context(), args[0], args[1], bib)
		if !ok {
			return fmt.Errorf("note rejected: blank text or unknown point %s", args[0])
		}
		warnStorage(w)
		if !citation.IsComplete(bib) && bib.SourceType != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "note: bibliography is incomplete and was not added to autocomplete history")
		}
		fmt.Println(e.ID)
		return nil
	},
}

var researchRemoveCmd = &cobra.Command{
	Use:   "remove <entry-id>",
	Short: "Remove one research note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Close()

		if !w.RemoveEntry(cmd.Context(), args[0]) {
			return fmt.Errorf("entry %s not found", args[0])
		}
		warnStorage(w)
		return nil
	},
}

func init() {
	researchListCmd.Flags().String("point", "", "only notes for this outline point id")
	researchListCmd.Flags().String("style", "", "citation style for printed citations")

	researchAddCmd.Flags().String("type", "", "source type: book, journal, website, newspaper, chapter")
	for _, f := range bibFlagFields {
		researchAddCmd.Flags().String(string(f), "", "bibliography "+string(f))
	}

	researchCmd.AddCommand(researchListCmd)
	researchCmd.AddCommand(researchAddCmd)
	researchCmd.AddCommand(researchRemoveCmd)
	rootCmd.AddCommand(researchCmd)
}
