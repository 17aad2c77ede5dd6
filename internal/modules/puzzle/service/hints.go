package service

import "strings"

// SplitHints 按换行拆分提示，去掉首尾空白并丢弃空行，保持原有顺序
func SplitHints(text string) []string {
	hints := []string{}
	for _, line := range strings.Split(text, "\n") {
		if hint := strings.TrimSpace(line); hint != "" {
			hints = append(hints, hint)
		}
	}
	return hints
}
