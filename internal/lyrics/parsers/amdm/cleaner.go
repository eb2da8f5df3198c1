package amdm

import "strings"

// finalCleanup trims leading and trailing blank lines and limits runs of
// blank lines to the configured maximum.
func (p *Parser) finalCleanup(lines []string) string {
	var cleaned []string
	blanks := 0

	for _, line := range lines {
		if line == "" {
			blanks++
			if blanks > p.config.MaxBlankLines || len(cleaned) == 0 {
				continue
			}
		} else {
			blanks = 0
		}
		cleaned = append(cleaned, line)
	}

	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}

	return strings.Join(cleaned, "\n")
}
