// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// bibtexTypes maps source types to BibTeX entry types.
var bibtexTypes = map[types.SourceType]string{
	types.SourceBook:      "book",
	types.SourceJournal:   "article",
	types.SourceWebsite:   "misc",
	types.SourceNewspaper: "article",
	types.SourceChapter:   "incollection",
}

// GenerateBibTeX produces BibTeX content for the distinct bibliographic
// records of entries, deduplicated by (author, title, sourceType).
func GenerateBibTeX(entries []types.ResearchEntry) string {
	type key struct {
		author, title string
		st            types.SourceType
	}
	seen := make(map[key]bool)

	var b strings.Builder
	n := 0
	for _, e := range entries {
		bib := e.Bibliography
		k := key{bib.Author, bib.Title, bib.SourceType}
		if seen[k] {
			continue
		}
		seen[k] = true
		n++
		writeBibTeXEntry(&b, bib, n)
	}
	return b.String()
}

func writeBibTeXEntry(b *strings.Builder, bib types.BibEntry, n int) {
	entryType := bibtexTypes[bib.SourceType]
	if entryType == "" {
		entryType = "misc"
	}

	fmt.Fprintf(b, "@%s{%s,\n", entryType, cslID(bib, n))
	if bib.Title != "" {
		fmt.Fprintf(b, "  title = {%s},\n", bib.Title)
	}
	if bib.Author != "" {
		fmt.Fprintf(b, "  author = {%s},\n", bib.Author)
	}
	if bib.Year != "" {
		fmt.Fprintf(b, "  year = {%s},\n", bib.Year)
	}

	switch bib.SourceType {
	case types.SourceBook:
		writeBibTeXField(b, "publisher", bib.Publisher)
		writeBibTeXField(b, "address", bib.City)
		writeBibTeXField(b, "edition", bib.Edition)
	case types.SourceJournal:
		writeBibTeXField(b, "journal", bib.JournalName)
		writeBibTeXField(b, "volume", bib.Volume)
		writeBibTeXField(b, "number", bib.Issue)
		writeBibTeXField(b, "pages", bib.Pages)
		writeBibTeXField(b, "doi", bib.DOI)
	case types.SourceWebsite:
		writeBibTeXField(b, "howpublished", bib.WebsiteName)
		writeBibTeXField(b, "url", bib.URL)
		writeBibTeXField(b, "note", accessNote(bib.AccessDate))
	case types.SourceNewspaper:
		writeBibTeXField(b, "journal", bib.NewspaperName)
		writeBibTeXField(b, "pages", bib.Pages)
	case types.SourceChapter:
		writeBibTeXField(b, "booktitle", bib.BookTitle)
		writeBibTeXField(b, "editor", bib.Editors)
		writeBibTeXField(b, "pages", bib.ChapterPages)
		writeBibTeXField(b, "publisher", bib.Publisher)
	}

	fmt.Fprintf(b, "}\n\n")
}

func writeBibTeXField(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "  %s = {%s},\n", name, value)
}

func accessNote(accessDate string) string {
	if accessDate == "" {
		return ""
	}
	return "Accessed " + accessDate
}
