package amdm

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

const authorCommentSelector = ".podbor__author-comment"

var (
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)
	openCommentRegex  = regexp.MustCompile(`/\*.*$`)
)

// processChordsBlock drops author comments and /* */ remarks from the
// chords block and returns its text as song-sheet lines.
func (p *Parser) processChordsBlock(block *goquery.Selection) string {
	block.Find(authorCommentSelector).Remove()

	text := blockCommentRegex.ReplaceAllString(block.Text(), "")
	text = openCommentRegex.ReplaceAllString(text, "")
	return p.ProcessText(text)
}
