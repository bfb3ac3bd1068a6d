package service

import "strings"

const (
	// BulletMarker prefixes every summary sentence
	BulletMarker      = "• "
	sentenceDelimiter = ". "
)

// FormatBullets splits a raw summary on ". " and turns every non-empty,
// trimmed fragment into a bullet. The split is a heuristic: abbreviations and
// decimals followed by a space are split too, and the final fragment keeps its
// terminal punctuation.
func FormatBullets(summary string) []string {
	bullets := make([]string, 0)
	for _, fragment := range strings.Split(summary, sentenceDelimiter) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		bullets = append(bullets, BulletMarker+fragment)
	}
	return bullets
}
