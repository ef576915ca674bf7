package theme

// ansiNames maps palette slots color0..color15 to the editor's terminal keys.
var ansiNames = [16]string{
	"terminal.ansiBlack",
	"terminal.ansiRed",
	"terminal.ansiGreen",
	"terminal.ansiYellow",
	"terminal.ansiBlue",
	"terminal.ansiMagenta",
	"terminal.ansiCyan",
	"terminal.ansiWhite",
	"terminal.ansiBrightBlack",
	"terminal.ansiBrightRed",
	"terminal.ansiBrightGreen",
	"terminal.ansiBrightYellow",
	"terminal.ansiBrightBlue",
	"terminal.ansiBrightMagenta",
	"terminal.ansiBrightCyan",
	"terminal.ansiBrightWhite",
}

// wellKnown maps terminal scheme keys to editor color keys.
var wellKnown = map[string][]string{
	"background":      {"editor.background", "terminal.background"},
	"foreground":      {"editor.foreground", "terminal.foreground"},
	"cursor":          {"editorCursor.foreground", "terminalCursor.foreground"},
	"cursor.color":    {"editorCursor.foreground", "terminalCursor.foreground"},
	"selection":       {"editor.selectionBackground"},
	"selection.color": {"editor.selectionBackground"},
	"cursor.text":     {"terminalCursor.background"},
	"selection.text":  {"editor.selectionForeground"},
}

// Translate maps an already-validated terminal color scheme to editor color
// keys. Unrecognized keys pass through untouched so nothing is lost.
func Translate(colors map[string]string) map[string]string {
	out := make(map[string]string, len(colors)*2)

	for key, value := range colors {
		if targets, ok := wellKnown[key]; ok {
			for _, target := range targets {
				out[target] = value
			}
			continue
		}
		if slot, ok := paletteSlot(key); ok {
			out[ansiNames[slot]] = value
			continue
		}
		out[key] = value
	}

	return out
}

// paletteSlot extracts N from colorN for 0 <= N <= 15.
func paletteSlot(key string) (int, bool) {
	const prefix = "color"
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
		return 0, false
	}
	n := 0
	for _, r := range key[len(prefix):] {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > 15 {
			return 0, false
		}
	}
	return n, true
}
