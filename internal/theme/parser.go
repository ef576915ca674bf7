// Package theme validates and parses terminal color-scheme files.
//
// Recognized assignment syntaxes:
//
//	background = #1e1e1e
//	foreground: #d4d4d4
//	palette = 3 = #ff00ff   (mapped to color3)
//
// Lines starting with '#', '!', or '//' are comments.
package theme

import (
	"regexp"
	"strings"

	"themesmith/internal/domain"
)

// NoColorsError is the validation message for files without any recognized
// color-assignment line.
const NoColorsError = "No valid color definitions found"

var (
	hexColor    = regexp.MustCompile(`^#[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$`)
	shortHex    = regexp.MustCompile(`^#[0-9a-fA-F]{3}$`)
	paletteLine = regexp.MustCompile(`^palette\s*=\s*(\d+)\s*=\s*(.+)$`)
	assignLine  = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_.\-]*)\s*[=:]\s*(.+)$`)
)

// Parser extracts color mappings from theme file content.
type Parser struct{}

// NewParser creates a theme parser.
func NewParser() *Parser {
	return &Parser{}
}

// IsHexColor reports whether the value is a #rgb, #rrggbb, or #rrggbbaa literal.
func IsHexColor(value string) bool {
	return hexColor.MatchString(value) || shortHex.MatchString(value)
}

// recognizedLine is one line that looks like a color assignment, whether or
// not its value is a well-formed hex color.
type recognizedLine struct {
	key      string
	value    string
	raw      string
	validHex bool
}

func (p *Parser) scan(content string) []recognizedLine {
	var lines []recognizedLine
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") || strings.HasPrefix(line, "//") {
			continue
		}

		if m := paletteLine.FindStringSubmatch(line); m != nil {
			value := strings.TrimSpace(m[2])
			lines = append(lines, recognizedLine{
				key:      "color" + m[1],
				value:    value,
				raw:      line,
				validHex: IsHexColor(value),
			})
			continue
		}

		if m := assignLine.FindStringSubmatch(line); m != nil {
			value := strings.TrimSpace(m[2])
			lines = append(lines, recognizedLine{
				key:      m[1],
				value:    value,
				raw:      line,
				validHex: IsHexColor(value),
			})
		}
	}
	return lines
}

// Validate checks theme content: valid when at least one recognized
// color-assignment line exists and fewer than half of the recognized lines
// carry malformed hex values. Partially malformed content yields warnings,
// not failure.
func (p *Parser) Validate(content string) domain.ThemeValidation {
	lines := p.scan(content)

	valid := 0
	var warnings []string
	for _, l := range lines {
		if l.validHex {
			valid++
		} else {
			warnings = append(warnings, "malformed color value in line: "+l.raw)
		}
	}

	if valid == 0 {
		return domain.ThemeValidation{
			IsValid: false,
			Error:   NoColorsError,
		}
	}

	malformed := len(lines) - valid
	if malformed*2 >= len(lines) {
		return domain.ThemeValidation{
			IsValid:  false,
			Error:    "Too many malformed color definitions",
			Warnings: warnings,
		}
	}

	return domain.ThemeValidation{
		IsValid:  true,
		Warnings: warnings,
	}
}

// Parse extracts the key to hex-color mapping. Unparseable and duplicate
// lines are recorded as diagnostics rather than silently dropped.
func (p *Parser) Parse(content string) domain.ThemeParseResult {
	result := domain.ThemeParseResult{
		Colors: make(map[string]string),
	}

	for _, l := range p.scan(content) {
		if !l.validHex {
			result.InvalidLines = append(result.InvalidLines, l.raw)
			continue
		}
		if _, dup := result.Colors[l.key]; dup {
			result.Warnings = append(result.Warnings, "duplicate key '"+l.key+"' overrides earlier value")
		}
		result.Colors[l.key] = strings.ToLower(l.value)
	}

	return result
}
