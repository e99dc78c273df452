package tui

import "strings"

const uiDivider = "──────────────────────────────────────────────────────"

func viewTitle(title string) string {
	return title + "\n" + uiDivider + "\n"
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}

func requiredMark(required bool) string {
	if required {
		return " *"
	}
	return ""
}

func indentLines(v string) string {
	lines := strings.Split(v, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
