// Package keyword normalizes free checklist text into a canonical set of
// meaningful terms used for duplicate detection.
package keyword

import (
	"regexp"
	"strings"
)

// tokenPattern keeps alphanumeric runs: letters of any script, digits and
// hyphens. Everything else separates tokens.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}-]+`)

// stopwords drops connectives and generic process verbs that carry no
// signal for item identity ("prepare", "confirm", "apply", ...), in the
// two languages checklist content arrives in.
var stopwords = map[string]struct{}{
	// Korean connectives
	"그리고": {}, "그러나": {}, "그런데": {}, "또한": {}, "하지만": {},
	"그래서": {}, "따라서": {}, "그런": {}, "그럼": {},
	// Korean process verbs
	"준비": {}, "확인": {}, "신청": {}, "발급": {}, "예약": {},
	"완료": {}, "등록": {}, "제출": {}, "접수": {}, "처리": {},
	"필요": {}, "중요": {}, "미리": {}, "나중": {}, "먼저": {}, "다음": {},
	// English connectives
	"and": {}, "or": {}, "the": {}, "of": {}, "for": {}, "to": {},
	"in": {}, "with": {},
	// English process verbs
	"prepare": {}, "confirm": {}, "check": {}, "apply": {}, "issue": {},
	"reserve": {}, "register": {}, "submit": {}, "complete": {},
}

// Extract returns the set of meaningful lowercase tokens in text: length
// at least two, stopwords removed, pure numbers excluded. Empty input
// yields an empty set.
func Extract(text string) map[string]struct{} {
	keywords := make(map[string]struct{})
	if text == "" {
		return keywords
	}

	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if len([]rune(token)) < 2 {
			continue
		}
		if _, stop := stopwords[token]; stop {
			continue
		}
		if isNumeric(token) {
			continue
		}
		keywords[token] = struct{}{}
	}
	return keywords
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
