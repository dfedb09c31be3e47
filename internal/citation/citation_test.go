// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/outline-engine/pkg/types"
)

func journalEntry() types.BibEntry {
	return types.BibEntry{
		SourceType:  types.SourceJournal,
		Author:      "Smith, J.",
		Title:       "Study",
		Year:        "2020",
		JournalName: "Nature",
		Volume:      "10",
		Issue:       "2",
		Pages:       "5-9",
	}
}

func TestFormatAPAJournalBibliography(t *testing.T) {
	// The canonical template check: exact field order and punctuation.
	got := Format(journalEntry(), types.StyleAPA, types.ContextBibliography)
	assert.Equal(t, "Smith, J.. (2020). Study. Nature, 10(2), 5-9.", got)
}

func TestFormatExamples(t *testing.T) {
	book := types.BibEntry{
		SourceType: types.SourceBook,
		Author:     "Jacobs, J.",
		Title:      "The Death and Life of Great American Cities",
		Year:       "1961",
		City:       "New York",
		Publisher:  "Random House",
	}

	tests := []struct {
		name  string
		entry types.BibEntry
		style types.Style
		ctx   types.CitationContext
		want  string
	}{
		{
			name: "apa book bibliography", entry: book,
			style: types.StyleAPA, ctx: types.ContextBibliography,
			want: "Jacobs, J.. (1961). The Death and Life of Great American Cities. New York: Random House.",
		},
		{
			name: "apa footnote is parenthetical", entry: journalEntry(),
			style: types.StyleAPA, ctx: types.ContextFootnote,
			want: "(Smith, J., 2020, p. 5-9)",
		},
		{
			name: "mla journal bibliography", entry: journalEntry(),
			style: types.StyleMLA, ctx: types.ContextBibliography,
			want: `Smith, J.. "Study." Nature, vol. 10, no. 2, 2020, pp. 5-9.`,
		},
		{
			name: "mla footnote is parenthetical", entry: journalEntry(),
			style: types.StyleMLA, ctx: types.ContextFootnote,
			want: "(Smith, J. 5-9)",
		},
		{
			name: "turabian journal bibliography", entry: journalEntry(),
			style: types.StyleTurabian, ctx: types.ContextBibliography,
			want: `Smith, J.. "Study." Nature 10, no. 2 (2020): 5-9.`,
		},
		{
			name: "turabian book footnote", entry: book,
			style: types.StyleTurabian, ctx: types.ContextFootnote,
			want: "Jacobs, J., The Death and Life of Great American Cities.",
		},
		{
			name: "ieee journal bibliography", entry: journalEntry(),
			style: types.StyleIEEE, ctx: types.ContextBibliography,
			want: `Smith, J., "Study," Nature, vol. 10, no. 2, pp. 5-9, 2020.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.entry, tt.style, tt.ctx))
		})
	}
}

func TestFootnoteKeepsTerminalPeriod(t *testing.T) {
	// Footnote forms end in a period even when their trailing optional
	// fields (pages, URL, year) are absent.
	book := types.BibEntry{
		SourceType: types.SourceBook,
		Author:     "Jacobs, J.",
		Title:      "The Death and Life of Great American Cities",
		Year:       "1961",
		Publisher:  "Random House",
	}
	journal := journalEntry()
	journal.Pages = ""

	tests := []struct {
		name  string
		entry types.BibEntry
		style types.Style
		want  string
	}{
		{
			name: "turabian book without pages", entry: book,
			style: types.StyleTurabian,
			want:  "Jacobs, J., The Death and Life of Great American Cities.",
		},
		{
			name: "turabian journal without pages", entry: journal,
			style: types.StyleTurabian,
			want:  `Smith, J., "Study," Nature 10.`,
		},
		{
			name: "ieee book without pages", entry: book,
			style: types.StyleIEEE,
			want:  "Jacobs, J., The Death and Life of Great American Cities.",
		},
		{
			name: "ieee journal without pages", entry: journal,
			style: types.StyleIEEE,
			want:  `Smith, J., "Study,".`,
		},
		{
			name: "turabian website without url",
			entry: types.BibEntry{
				SourceType: types.SourceWebsite,
				Author:     "A", Title: "T", WebsiteName: "W",
			},
			style: types.StyleTurabian,
			want:  `A, "T," W.`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.entry, tt.style, types.ContextFootnote)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasSuffix(got, "."), "footnote lost its period: %q", got)
		})
	}
}

func TestChicagoAliasesTurabian(t *testing.T) {
	entries := []types.BibEntry{
		journalEntry(),
		{SourceType: types.SourceBook, Author: "A", Title: "T", Year: "1999", Publisher: "P"},
		{SourceType: types.SourceWebsite, Author: "A", Title: "T", Year: "2001", URL: "https://example.com"},
		{SourceType: types.SourceNewspaper, Author: "A", Title: "T", Year: "2002", NewspaperName: "The Times"},
		{SourceType: types.SourceChapter, Author: "A", Title: "T", Year: "2003", BookTitle: "B", Editors: "E"},
	}
	for _, e := range entries {
		for _, ctx := range []types.CitationContext{types.ContextFootnote, types.ContextBibliography} {
			assert.Equal(t,
				Format(e, types.StyleTurabian, ctx),
				Format(e, types.StyleChicago, ctx),
				"chicago must alias turabian for %s/%s", e.SourceType, ctx)
		}
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	e := journalEntry()
	first := Format(e, types.StyleAPA, types.ContextBibliography)
	for range 5 {
		assert.Equal(t, first, Format(e, types.StyleAPA, types.ContextBibliography))
	}
}

func TestAbsentFieldsLeaveNoArtifacts(t *testing.T) {
	e := journalEntry()
	e.Pages = ""
	e.Issue = ""

	got := Format(e, types.StyleAPA, types.ContextBibliography)
	assert.Equal(t, "Smith, J.. (2020). Study. Nature, 10", got)
	assert.NotContains(t, got, "()")
	assert.NotContains(t, got, ", .")
}

func TestFormatEmptyEntry(t *testing.T) {
	e := types.BibEntry{SourceType: types.SourceJournal}
	assert.Equal(t, "", Format(e, types.StyleAPA, types.ContextBibliography))
	// Parenthetical forms suppress the wrapper when nothing rendered.
	assert.Equal(t, "", Format(e, types.StyleAPA, types.ContextFootnote))
}

func TestFormatUnknownCombinations(t *testing.T) {
	assert.Equal(t, "", Format(journalEntry(), types.Style("vancouver"), types.ContextBibliography))
	e := journalEntry()
	e.SourceType = "podcast"
	assert.Equal(t, "", Format(e, types.StyleAPA, types.ContextBibliography))
}

func TestEveryCombinationHasATemplate(t *testing.T) {
	full := types.BibEntry{
		Author: "A", Title: "T", Year: "2020", DOI: "10.1/x", URL: "https://e.com",
		AccessDate: "May 1, 2020", Publisher: "P", City: "C", Edition: "2nd",
		JournalName: "J", Volume: "1", Issue: "2", Pages: "3-4", WebsiteName: "W",
		Organization: "O", NewspaperName: "N", BookTitle: "B", Editors: "E",
		ChapterPages: "5-6",
	}
	for _, style := range types.Styles {
		for _, st := range types.SourceTypes {
			e := full
			e.SourceType = st
			for _, ctx := range []types.CitationContext{types.ContextFootnote, types.ContextBibliography} {
				got := Format(e, style, ctx)
				assert.NotEmpty(t, got, "%s/%s/%s renders empty", style, st, ctx)
				assert.False(t, strings.Contains(got, "  "), "%s/%s/%s has doubled spaces: %q", style, st, ctx, got)
			}
		}
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name  string
		entry types.BibEntry
		want  bool
	}{
		{"complete journal", journalEntry(), true},
		{
			"journal missing volume",
			types.BibEntry{SourceType: types.SourceJournal, Author: "A", Title: "T", Year: "2020", JournalName: "J", Issue: "2"},
			false,
		},
		{
			"book requires publisher",
			types.BibEntry{SourceType: types.SourceBook, Author: "A", Title: "T", Year: "2020"},
			false,
		},
		{
			"complete book",
			types.BibEntry{SourceType: types.SourceBook, Author: "A", Title: "T", Year: "2020", Publisher: "P"},
			true,
		},
		{
			"website requires url",
			types.BibEntry{SourceType: types.SourceWebsite, Author: "A", Title: "T", Year: "2020"},
			false,
		},
		{
			"whitespace-only field is blank",
			types.BibEntry{SourceType: types.SourceBook, Author: "A", Title: "  ", Year: "2020", Publisher: "P"},
			false,
		},
		{
			"unknown source type is never complete",
			types.BibEntry{SourceType: "podcast", Author: "A", Title: "T", Year: "2020"},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsComplete(tt.entry))
		})
	}
}

func TestIsCompleteMonotonic(t *testing.T) {
	// Starting from a complete entry, filling further fields never makes
	// it incomplete.
	e := journalEntry()
	if !IsComplete(e) {
		t.Fatal("base entry should be complete")
	}
	extras := []types.BibField{
		types.FieldDOI, types.FieldURL, types.FieldAccessDate, types.FieldPublisher,
		types.FieldCity, types.FieldEdition, types.FieldWebsiteName,
		types.FieldOrganization, types.FieldNewspaperName, types.FieldBookTitle,
		types.FieldEditors, types.FieldChapterPages,
	}
	for _, f := range extras {
		e.SetField(f, "x")
		assert.True(t, IsComplete(e), "adding %s broke completeness", f)
	}
}
