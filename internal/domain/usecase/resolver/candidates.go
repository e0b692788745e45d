package resolver

import "strings"

// Region qualifiers appended to CJK input, most specific first.
var regionQualifiers = []string{"CN", "中国", "CHINA"}

// Candidates returns the ordered provider queries for input.
// The input is trimmed; an empty input yields no candidates.
func Candidates(input string) []string {
	city := strings.TrimSpace(input)
	if city == "" {
		return nil
	}

	candidates := []string{city}

	if ContainsCJK(city) {
		for _, region := range regionQualifiers {
			candidates = append(candidates, city+","+region)
		}
	}

	if english, ok := Translate(city); ok {
		candidates = append(candidates, english, english+",CN")
	}

	return candidates
}

// ContainsCJK reports whether s has a rune in the CJK Unified Ideographs block.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}
