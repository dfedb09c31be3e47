// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pdiddy/outline-engine/pkg/types"

// templates is the full formatting table, keyed by style, then source type,
// then context. Chicago does not appear: it resolves to the Turabian rows
// via normalizeStyle. Field order and punctuation here are the contract;
// changing a row changes every document exported with that combination.
var templates = map[types.Style]map[types.SourceType]map[types.CitationContext]rule{
	types.StyleAPA: {
		types.SourceBook: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldYear, " (", ")."},
				{types.FieldTitle, " ", "."},
				{types.FieldEdition, " (", " ed.)."},
				{types.FieldCity, " ", ""},
				{types.FieldPublisher, ": ", "."},
			}},
			types.ContextFootnote: apaInText,
		},
		types.SourceJournal: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldYear, " (", ")."},
				{types.FieldTitle, " ", "."},
				{types.FieldJournalName, " ", ""},
				{types.FieldVolume, ", ", ""},
				{types.FieldIssue, "(", ")"},
				{types.FieldPages, ", ", "."},
				{types.FieldDOI, " doi:", ""},
			}},
			types.ContextFootnote: apaInText,
		},
		types.SourceWebsite: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldYear, " (", ")."},
				{types.FieldTitle, " ", "."},
				{types.FieldWebsiteName, " ", "."},
				{types.FieldOrganization, " ", "."},
				{types.FieldURL, " ", ""},
			}},
			types.ContextFootnote: apaInText,
		},
		types.SourceNewspaper: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldYear, " (", ")."},
				{types.FieldTitle, " ", "."},
				{types.FieldNewspaperName, " ", ""},
				{types.FieldPages, ", p. ", "."},
			}},
			types.ContextFootnote: apaInText,
		},
		types.SourceChapter: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldYear, " (", ")."},
				{types.FieldTitle, " ", "."},
				{types.FieldEditors, " In ", ""},
				{types.FieldBookTitle, " (Eds.), ", ""},
				{types.FieldChapterPages, " (pp. ", ")"},
				{types.FieldPublisher, ". ", "."},
			}},
			types.ContextFootnote: apaInText,
		},
	},

	types.StyleTurabian: {
		types.SourceBook: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldTitle, " ", "."},
				{types.FieldEdition, " ", " ed."},
				{types.FieldCity, " ", ""},
				{types.FieldPublisher, ": ", ""},
				{types.FieldYear, ", ", "."},
			}},
			types.ContextFootnote: {Segments: []segment{
				{types.FieldAuthor, "", ", "},
				{types.FieldTitle, "", ""},
				{types.FieldPages, ", ", ""},
			}, Close: "."},
		},
		types.SourceJournal: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldTitle, ` "`, `."`},
				{types.FieldJournalName, " ", ""},
				{types.FieldVolume, " ", ""},
				{types.FieldIssue, ", no. ", ""},
				{types.FieldYear, " (", ")"},
				{types.FieldPages, ": ", "."},
			}},
			types.ContextFootnote: {Segments: []segment{
				{types.FieldAuthor, "", ", "},
				{types.FieldTitle, `"`, `,"`},
				{types.FieldJournalName, " ", ""},
				{types.FieldVolume, " ", ""},
				{types.FieldPages, ": ", ""},
			}, Close: "."},
		},
		types.SourceWebsite: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldTitle, ` "`, `."`},
				{types.FieldWebsiteName, " ", "."},
				{types.FieldAccessDate, " Accessed ", "."},
				{types.FieldURL, " ", "."},
			}},
			types.ContextFootnote: {Segments: []segment{
				{types.FieldAuthor, "", ", "},
				{types.FieldTitle, `"`, `,"`},
				{types.FieldWebsiteName, " ", ""},
				{types.FieldURL, ", ", ""},
			}, Close: "."},
		},
		types.SourceNewspaper: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldTitle, ` "`, `."`},
				{types.FieldNewspaperName, " ", ""},
				{types.FieldYear, ", ", "."},
			}},
			types.ContextFootnote: {Segments: []segment{
				{types.FieldAuthor, "", ", "},
				{types.FieldTitle, `"`, `,"`},
				{types.FieldNewspaperName, " ", ""},
				{types.FieldYear, ", ", ""},
			}, Close: "."},
		},
		types.SourceChapter: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldTitle, ` "`, `."`},
				{types.FieldBookTitle, " In ", ""},
				{types.FieldEditors, ", edited by ", ""},
				{types.FieldChapterPages, ", ", ""},
				{types.FieldPublisher, ". ", ""},
				{types.FieldYear, ", ", "."},
			}},
			types.ContextFootnote: {Segments: []segment{
				{types.FieldAuthor, "", ", "},
				{types.FieldTitle, `"`, `,"`},
				{types.FieldBookTitle, " in ", ""},
				{types.FieldEditors, ", ed. ", ""},
				{types.FieldChapterPages, ", ", ""},
			}, Close: "."},
		},
	},

	types.StyleMLA: {
		types.SourceBook: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldTitle, " ", "."},
				{types.FieldEdition, " ", " ed."},
				{types.FieldPublisher, " ", ""},
				{types.FieldYear, ", ", "."},
			}},
			types.ContextFootnote: mlaInText,
		},
		types.SourceJournal: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldTitle, ` "`, `."`},
				{types.FieldJournalName, " ", ""},
				{types.FieldVolume, ", vol. ", ""},
				{types.FieldIssue, ", no. ", ""},
				{types.FieldYear, ", ", ""},
				{types.FieldPages, ", pp. ", "."},
			}},
			types.ContextFootnote: mlaInText,
		},
		types.SourceWebsite: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldTitle, ` "`, `."`},
				{types.FieldWebsiteName, " ", ""},
				{types.FieldURL, ", ", ""},
				{types.FieldAccessDate, ". Accessed ", "."},
			}},
			types.ContextFootnote: mlaInText,
		},
		types.SourceNewspaper: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldTitle, ` "`, `."`},
				{types.FieldNewspaperName, " ", ""},
				{types.FieldYear, ", ", ""},
				{types.FieldPages, ", pp. ", "."},
			}},
			types.ContextFootnote: mlaInText,
		},
		types.SourceChapter: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", "."},
				{types.FieldTitle, ` "`, `."`},
				{types.FieldBookTitle, " ", ""},
				{types.FieldEditors, ", edited by ", ""},
				{types.FieldPublisher, ", ", ""},
				{types.FieldYear, ", ", ""},
				{types.FieldChapterPages, ", pp. ", "."},
			}},
			types.ContextFootnote: mlaInText,
		},
	},

	types.StyleIEEE: {
		types.SourceBook: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", ", "},
				{types.FieldTitle, "", ""},
				{types.FieldCity, ". ", ""},
				{types.FieldPublisher, ": ", ""},
				{types.FieldYear, ", ", "."},
			}},
			types.ContextFootnote: {Segments: []segment{
				{types.FieldAuthor, "", ", "},
				{types.FieldTitle, "", ""},
				{types.FieldPages, ", pp. ", ""},
			}, Close: "."},
		},
		types.SourceJournal: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", ", "},
				{types.FieldTitle, `"`, `," `},
				{types.FieldJournalName, "", ""},
				{types.FieldVolume, ", vol. ", ""},
				{types.FieldIssue, ", no. ", ""},
				{types.FieldPages, ", pp. ", ""},
				{types.FieldYear, ", ", "."},
			}},
			types.ContextFootnote: ieeeShort,
		},
		types.SourceWebsite: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", ", "},
				{types.FieldTitle, `"`, `," `},
				{types.FieldWebsiteName, "", ""},
				{types.FieldURL, ". [Online]. Available: ", ""},
				{types.FieldAccessDate, ". [Accessed: ", "]."},
			}},
			types.ContextFootnote: ieeeShort,
		},
		types.SourceNewspaper: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", ", "},
				{types.FieldTitle, `"`, `," `},
				{types.FieldNewspaperName, "", ""},
				{types.FieldPages, ", pp. ", ""},
				{types.FieldYear, ", ", "."},
			}},
			types.ContextFootnote: ieeeShort,
		},
		types.SourceChapter: {
			types.ContextBibliography: {Segments: []segment{
				{types.FieldAuthor, "", ", "},
				{types.FieldTitle, `"`, `," in `},
				{types.FieldBookTitle, "", ""},
				{types.FieldEditors, ", ", ", Eds."},
				{types.FieldPublisher, " ", ""},
				{types.FieldYear, ", ", ""},
				{types.FieldChapterPages, ", pp. ", "."},
			}},
			types.ContextFootnote: ieeeShort,
		},
	},
}

// apaInText is the APA parenthetical form, shared by all source types:
// (Author, Year, p. Pages).
var apaInText = rule{
	Open: "(",
	Segments: []segment{
		{types.FieldAuthor, "", ""},
		{types.FieldYear, ", ", ""},
		{types.FieldPages, ", p. ", ""},
	},
	Close: ")",
}

// mlaInText is the MLA parenthetical form, shared by all source types:
// (Author Pages).
var mlaInText = rule{
	Open: "(",
	Segments: []segment{
		{types.FieldAuthor, "", ""},
		{types.FieldPages, " ", ""},
	},
	Close: ")",
}

// ieeeShort is the IEEE short note form for quoted-title source types.
var ieeeShort = rule{
	Segments: []segment{
		{types.FieldAuthor, "", ", "},
		{types.FieldTitle, `"`, `,"`},
		{types.FieldPages, " pp. ", ""},
	},
	Close: ".",
}
