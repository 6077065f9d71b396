package search

import "strings"

// ParseTags normalises tag input. Each value may itself be a comma-separated
// list, so both ?tags=a&tags=b and ?tags=a,b produce [a b]. Tags are trimmed,
// empties dropped and duplicates removed keeping the first occurrence.
// Case is preserved; tag matching is exact.
func ParseTags(values ...string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			t = strings.TrimSpace(t)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}
