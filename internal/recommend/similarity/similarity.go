// Package similarity decides whether two checklist items describe the
// same task, using set overlap over extracted keywords.
package similarity

import (
	"strings"

	"dayzero/internal/recommend/keyword"
)

// DefaultThreshold is the conservative Jaccard cutoff for hard exclusion
// of catalog candidates that duplicate an existing item.
const DefaultThreshold = 0.7

// Jaccard returns |a∩b| / |a∪b| over two keyword sets, 0 when both are
// empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// SharedTokens counts keywords common to both sets. A count of two or
// more is the loose pre-filter for "probably the same task".
func SharedTokens(a, b map[string]struct{}) int {
	shared := 0
	for k := range a {
		if _, ok := b[k]; ok {
			shared++
		}
	}
	return shared
}

// IsDuplicate reports whether two items are the same task. An exact
// case-insensitive title match short-circuits; otherwise Jaccard
// similarity over title+description keywords must reach threshold.
// Either side having no keywords means no signal, never a duplicate —
// this avoids false positives on empty descriptions.
func IsDuplicate(aTitle, aDesc, bTitle, bDesc string, threshold float64) bool {
	if strings.EqualFold(strings.TrimSpace(aTitle), strings.TrimSpace(bTitle)) {
		return true
	}

	aKeywords := keyword.Extract(aTitle + " " + aDesc)
	bKeywords := keyword.Extract(bTitle + " " + bDesc)
	if len(aKeywords) == 0 || len(bKeywords) == 0 {
		return false
	}
	return Jaccard(aKeywords, bKeywords) >= threshold
}
