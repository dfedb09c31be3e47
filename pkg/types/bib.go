// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceType discriminates the kind of cited source and determines which
// BibEntry fields are in use.
type SourceType string

const (
	SourceBook      SourceType = "book"
	SourceJournal   SourceType = "journal"
	SourceWebsite   SourceType = "website"
	SourceNewspaper SourceType = "newspaper"
	SourceChapter   SourceType = "chapter"
)

// SourceTypes lists all supported source types in form order.
var SourceTypes = []SourceType{
	SourceBook, SourceJournal, SourceWebsite, SourceNewspaper, SourceChapter,
}

// Style identifies a citation formatting convention.
type Style string

const (
	StyleTurabian Style = "turabian"
	StyleAPA      Style = "apa"
	StyleMLA      Style = "mla"
	StyleChicago  Style = "chicago"
	StyleIEEE     Style = "ieee"
)

// Styles lists all supported citation styles.
var Styles = []Style{StyleTurabian, StyleAPA, StyleMLA, StyleChicago, StyleIEEE}

// CitationContext selects between the two rendering modes of a citation:
// an inline short form or a full reference-list entry.
type CitationContext string

const (
	ContextFootnote     CitationContext = "footnote"
	ContextBibliography CitationContext = "bibliography"
)

// BibField names one field of a BibEntry for field-addressed access
// (autocomplete matching and completion).
type BibField string

const (
	FieldAuthor        BibField = "author"
	FieldTitle         BibField = "title"
	FieldYear          BibField = "year"
	FieldDOI           BibField = "doi"
	FieldURL           BibField = "url"
	FieldAccessDate    BibField = "accessDate"
	FieldPublisher     BibField = "publisher"
	FieldCity          BibField = "city"
	FieldEdition       BibField = "edition"
	FieldJournalName   BibField = "journalName"
	FieldVolume        BibField = "volume"
	FieldIssue         BibField = "issue"
	FieldPages         BibField = "pages"
	FieldWebsiteName   BibField = "websiteName"
	FieldOrganization  BibField = "organization"
	FieldNewspaperName BibField = "newspaperName"
	FieldBookTitle     BibField = "bookTitle"
	FieldEditors       BibField = "editors"
	FieldChapterPages  BibField = "chapterPages"
)

// BibEntry is a flat bibliographic record. The SourceType discriminant
// determines which of the optional fields are in use; the rest stay empty.
// All fields are strings as entered by the user, including Year.
type BibEntry struct {
	// SourceType is the kind of source: book, journal, website, newspaper, chapter.
	SourceType SourceType `json:"sourceType" yaml:"source_type"`

	// Author is the author name as entered (e.g. "Smith, J.").
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Title is the work's title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Year is the publication year.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	// DOI is the digital object identifier, without a resolver prefix.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL is the source address for web-accessible sources.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// AccessDate records when a website source was retrieved.
	AccessDate string `json:"accessDate,omitempty" yaml:"access_date,omitempty"`

	// Publisher is the publishing house for books and chapters.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// City is the place of publication.
	City string `json:"city,omitempty" yaml:"city,omitempty"`

	// Edition is the edition number or label (e.g. "2nd").
	Edition string `json:"edition,omitempty" yaml:"edition,omitempty"`

	// JournalName is the containing journal for journal articles.
	JournalName string `json:"journalName,omitempty" yaml:"journal_name,omitempty"`

	// Volume is the journal volume.
	Volume string `json:"volume,omitempty" yaml:"volume,omitempty"`

	// Issue is the journal issue within the volume.
	Issue string `json:"issue,omitempty" yaml:"issue,omitempty"`

	// Pages is the page range of the cited material (e.g. "5-9").
	Pages string `json:"pages,omitempty" yaml:"pages,omitempty"`

	// WebsiteName is the containing site for website sources.
	WebsiteName string `json:"websiteName,omitempty" yaml:"website_name,omitempty"`

	// Organization is the publishing organization for website sources.
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty"`

	// NewspaperName is the containing paper for newspaper sources.
	NewspaperName string `json:"newspaperName,omitempty" yaml:"newspaper_name,omitempty"`

	// BookTitle is the containing book for chapter sources.
	BookTitle string `json:"bookTitle,omitempty" yaml:"book_title,omitempty"`

	// Editors lists the containing book's editors for chapter sources.
	Editors string `json:"editors,omitempty" yaml:"editors,omitempty"`

	// ChapterPages is the chapter's page range within the containing book.
	ChapterPages string `json:"chapterPages,omitempty" yaml:"chapter_pages,omitempty"`
}

// Field returns the value of the named field, or "" for an unknown name.
func (e BibEntry) Field(f BibField) string {
	switch f {
	case FieldAuthor:
		return e.Author
	case FieldTitle:
		return e.Title
	case FieldYear:
		return e.Year
	case FieldDOI:
		return e.DOI
	case FieldURL:
		return e.URL
	case FieldAccessDate:
		return e.AccessDate
	case FieldPublisher:
		return e.Publisher
	case FieldCity:
		return e.City
	case FieldEdition:
		return e.Edition
	case FieldJournalName:
		return e.JournalName
	case FieldVolume:
		return e.Volume
	case FieldIssue:
		return e.Issue
	case FieldPages:
		return e.Pages
	case FieldWebsiteName:
		return e.WebsiteName
	case FieldOrganization:
		return e.Organization
	case FieldNewspaperName:
		return e.NewspaperName
	case FieldBookTitle:
		return e.BookTitle
	case FieldEditors:
		return e.Editors
	case FieldChapterPages:
		return e.ChapterPages
	}
	return ""
}

// SetField assigns value to the named field. Unknown names and the
// sourceType discriminant are ignored.
func (e *BibEntry) SetField(f BibField, value string) {
	switch f {
	case FieldAuthor:
		e.Author = value
	case FieldTitle:
		e.Title = value
	case FieldYear:
		e.Year = value
	case FieldDOI:
		e.DOI = value
	case FieldURL:
		e.URL = value
	case FieldAccessDate:
		e.AccessDate = value
	case FieldPublisher:
		e.Publisher = value
	case FieldCity:
		e.City = value
	case FieldEdition:
		e.Edition = value
	case FieldJournalName:
		e.JournalName = value
	case FieldVolume:
		e.Volume = value
	case FieldIssue:
		e.Issue = value
	case FieldPages:
		e.Pages = value
	case FieldWebsiteName:
		e.WebsiteName = value
	case FieldOrganization:
		e.Organization = value
	case FieldNewspaperName:
		e.NewspaperName = value
	case FieldBookTitle:
		e.BookTitle = value
	case FieldEditors:
		e.Editors = value
	case FieldChapterPages:
		e.ChapterPages = value
	}
}
