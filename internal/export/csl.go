// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	PublisherPlace string    `yaml:"publisher-place,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Edition        string    `yaml:"edition,omitempty"`
	Editor         []CSLName `yaml:"editor,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using raw year strings, since
// entries carry the year as entered.
type CSLDate struct {
	Raw string `yaml:"raw"`
}

// cslTypes maps source types to CSL item types.
var cslTypes = map[types.SourceType]string{
	types.SourceBook:      "book",
	types.SourceJournal:   "article-journal",
	types.SourceWebsite:   "webpage",
	types.SourceNewspaper: "article-newspaper",
	types.SourceChapter:   "chapter",
}

// FormatCSL writes the distinct bibliographic records of entries as a
// CSL-YAML list to w, deduplicated by (author, title, sourceType).
func FormatCSL(entries []types.ResearchEntry, w io.Writer) error {
	type key struct {
		author, title string
		st            types.SourceType
	}
	seen := make(map[key]bool)

	var items []CSLItem
	n := 0
	for _, e := range entries {
		bib := e.Bibliography
		k := key{bib.Author, bib.Title, bib.SourceType}
		if seen[k] {
			continue
		}
		seen[k] = true
		n++
		items = append(items, toCSLItem(bib, n))
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts one bibliographic record to a CSLItem.
func toCSLItem(bib types.BibEntry, n int) CSLItem {
	item := CSLItem{
		ID:             cslID(bib, n),
		Type:           cslTypes[bib.SourceType],
		Title:          bib.Title,
		Publisher:      bib.Publisher,
		PublisherPlace: bib.City,
		Volume:         bib.Volume,
		Issue:          bib.Issue,
		Edition:        bib.Edition,
		URL:            bib.URL,
		DOI:            bib.DOI,
	}
	if item.Type == "" {
		item.Type = "document"
	}

	switch bib.SourceType {
	case types.SourceJournal:
		item.ContainerTitle = bib.JournalName
		item.Page = bib.Pages
	case types.SourceWebsite:
		item.ContainerTitle = bib.WebsiteName
	case types.SourceNewspaper:
		item.ContainerTitle = bib.NewspaperName
		item.Page = bib.Pages
	case types.SourceChapter:
		item.ContainerTitle = bib.BookTitle
		item.Page = bib.ChapterPages
		if bib.Editors != "" {
			item.Editor = []CSLName{parseAuthorName(bib.Editors)}
		}
	default:
		item.Page = bib.Pages
	}

	if bib.Author != "" {
		item.Author = []CSLName{parseAuthorName(bib.Author)}
	}
	if bib.Year != "" {
		item.Issued = &CSLDate{Raw: bib.Year}
	}
	return item
}

// cslID derives a citation key slug from the author surname and year,
// falling back to a positional id.
func cslID(bib types.BibEntry, n int) string {
	surname := bib.Author
	if idx := strings.IndexAny(surname, ", "); idx > 0 {
		surname = surname[:idx]
	}
	surname = strings.ToLower(strings.TrimSpace(surname))
	if surname == "" {
		return fmt.Sprintf("ref%02d", n)
	}
	return surname + bib.Year
}

// parseAuthorName splits a name into CSL family/given parts. Names entered
// as "Family, Given" split on the comma; otherwise the last token is the
// family name. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if idx := strings.Index(name, ","); idx >= 0 {
		return CSLName{
			Family: strings.TrimSpace(name[:idx]),
			Given:  strings.TrimSpace(name[idx+1:]),
		}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
