package components

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// TextLine represents a formatted line with parts and italic sections
type TextLine struct {
	Parts []TextPart
}

// TextPart represents a part of text that may be italic or a mana symbol
type TextPart struct {
	Text       string
	Italic     bool
	IsMana     bool
	ManaSymbol string // The symbol inside the braces (e.g., "2", "W", "U/R", "T")
}

var manaRe = regexp.MustCompile(`\{([0-9WUBRGCSXYZTQEP/]+)\}`)

// ParseManaCost splits a mana cost string like "{2}{U}{U}" into symbol parts.
// Text outside braces is kept verbatim (split cards use " // ").
func ParseManaCost(cost string) []TextPart {
	line := formatLine(cost)
	return line.Parts
}

// FormatOracleLines splits rules text into paragraphs and formats each,
// marking parenthetical reminder text as italic and extracting mana symbols
func FormatOracleLines(text string) []TextLine {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	result := make([]TextLine, len(lines))

	for i, line := range lines {
		result[i] = formatLine(line)
	}

	return result
}

// formatLine formats a single line, handling both mana symbols and parentheses
func formatLine(line string) TextLine {
	var result TextLine

	remaining := line
	inParentheses := false
	currentText := ""

	for len(remaining) > 0 {
		// Check for mana symbol at the start
		if manaMatch := manaRe.FindStringSubmatch(remaining); manaMatch != nil && strings.HasPrefix(remaining, manaMatch[0]) {
			// Save any accumulated text first
			if currentText != "" {
				result.Parts = append(result.Parts, TextPart{
					Text:   currentText,
					Italic: inParentheses,
				})
				currentText = ""
			}

			result.Parts = append(result.Parts, TextPart{
				IsMana:     true,
				ManaSymbol: manaMatch[1],
			})

			remaining = remaining[len(manaMatch[0]):]
			continue
		}

		// Handle character by character for parentheses, keeping
		// multi-byte UTF-8 characters intact
		r, size := utf8.DecodeRuneInString(remaining)
		remaining = remaining[size:]

		if r == '(' && !inParentheses {
			if currentText != "" {
				result.Parts = append(result.Parts, TextPart{
					Text:   currentText,
					Italic: false,
				})
				currentText = ""
			}
			inParentheses = true
			currentText = string(r)
		} else if r == ')' && inParentheses {
			currentText += string(r)
			result.Parts = append(result.Parts, TextPart{
				Text:   currentText,
				Italic: true,
			})
			currentText = ""
			inParentheses = false
		} else {
			currentText += string(r)
		}
	}

	if currentText != "" {
		result.Parts = append(result.Parts, TextPart{
			Text:   currentText,
			Italic: inParentheses,
		})
	}

	return result
}
