// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/outline-engine/pkg/types"
)

func fixture() ([]types.OutlinePoint, []types.ResearchEntry) {
	points := []types.OutlinePoint{
		{ID: "m1", Text: "Intro", Level: types.LevelMain},
		{ID: "m2", Text: "Body", Level: types.LevelMain},
		{ID: "s1", ParentID: "m1", Text: "Background", Level: types.LevelSub},
	}
	bib := types.BibEntry{
		SourceType:  types.SourceJournal,
		Author:      "Smith, J.",
		Title:       "Study",
		Year:        "2020",
		JournalName: "Nature",
		Volume:      "10",
		Issue:       "2",
		Pages:       "5-9",
	}
	entries := []types.ResearchEntry{
		{ID: "r1", PointID: "s1", Text: "Rivers shaped early settlement.", Bibliography: bib},
	}
	return points, entries
}

func TestDocumentStructure(t *testing.T) {
	points, entries := fixture()

	doc, err := Document("Cities follow rivers.", points, entries, types.StyleAPA)
	require.NoError(t, err)
	html := string(doc)

	assert.Contains(t, html, "<title>Research Paper Outline</title>")
	assert.Contains(t, html, "Cities follow rivers.")
	assert.Contains(t, html, "1. Intro")
	assert.Contains(t, html, "2. Body")
	assert.Contains(t, html, "a. Background")
	assert.Contains(t, html, "Rivers shaped early settlement.")
	// The note is followed by its footnote-context citation.
	assert.Contains(t, html, "(Smith, J., 2020, p. 5-9)")
	// The bibliography lists the bibliography-context rendering.
	assert.Contains(t, html, "Smith, J.. (2020). Study. Nature, 10(2), 5-9.")
}

func TestDocumentIsDeterministic(t *testing.T) {
	points, entries := fixture()
	first, err := Document("t", points, entries, types.StyleMLA)
	require.NoError(t, err)
	second, err := Document("t", points, entries, types.StyleMLA)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}

func TestBibliographyDedupByRenderedString(t *testing.T) {
	bib := types.BibEntry{
		SourceType: types.SourceBook,
		Author:     "Jacobs, J.",
		Title:      "Cities",
		Year:       "1961",
		Publisher:  "Random House",
	}
	// A second record differing only in a field the book template omits in
	// this style renders identically and collapses to one line.
	variant := bib
	variant.DOI = "10.1/different"

	entries := []types.ResearchEntry{
		{ID: "r1", PointID: "p", Text: "a", Bibliography: bib},
		{ID: "r2", PointID: "p", Text: "b", Bibliography: variant},
	}

	lines := Bibliography(entries, types.StyleAPA)
	assert.Len(t, lines, 1)
}

func TestBibliographySorted(t *testing.T) {
	mk := func(author string) types.ResearchEntry {
		return types.ResearchEntry{
			ID: author, PointID: "p", Text: "n",
			Bibliography: types.BibEntry{
				SourceType: types.SourceBook, Author: author, Title: "T",
				Year: "2000", Publisher: "P",
			},
		}
	}
	lines := Bibliography([]types.ResearchEntry{mk("Zed, A."), mk("Abel, B.")}, types.StyleAPA)
	require.Len(t, lines, 2)
	assert.True(t, lines[0] < lines[1], "bibliography must sort lexicographically: %v", lines)
}

func TestLetterLabel(t *testing.T) {
	assert.Equal(t, "a", letterLabel(0))
	assert.Equal(t, "z", letterLabel(25))
	assert.Equal(t, "aa", letterLabel(26))
	assert.Equal(t, "ab", letterLabel(27))
}

func TestFormatCSL(t *testing.T) {
	_, entries := fixture()

	var buf bytes.Buffer
	require.NoError(t, FormatCSL(entries, &buf))
	out := buf.String()

	assert.Contains(t, out, "id: smith2020")
	assert.Contains(t, out, "type: article-journal")
	assert.Contains(t, out, "container-title: Nature")
	assert.Contains(t, out, "family: Smith")
	assert.Contains(t, out, "given: J.")
}

func TestFormatCSLDedupes(t *testing.T) {
	_, entries := fixture()
	entries = append(entries, entries[0])

	var buf bytes.Buffer
	require.NoError(t, FormatCSL(entries, &buf))
	assert.Equal(t, 1, strings.Count(buf.String(), "id: smith2020"))
}

func TestGenerateBibTeX(t *testing.T) {
	_, entries := fixture()

	out := GenerateBibTeX(entries)
	assert.Contains(t, out, "@article{smith2020,")
	assert.Contains(t, out, "  title = {Study},")
	assert.Contains(t, out, "  journal = {Nature},")
	assert.Contains(t, out, "  volume = {10},")
	assert.Contains(t, out, "  number = {2},")
	assert.Contains(t, out, "  pages = {5-9},")
}
