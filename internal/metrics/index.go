package metrics

import (
	"sort"
	"strings"
)

// OtherGroup collects metric names without a "/" separator.
const OtherGroup = "other"

// Group partitions metric names by the prefix before their first "/".
// Members of each group come back lexicographically sorted.
func Group(names []string) map[string][]string {
	groups := make(map[string][]string)
	for _, name := range names {
		group := OtherGroup
		if idx := strings.Index(name, "/"); idx >= 0 {
			group = name[:idx]
		}
		groups[group] = append(groups[group], name)
	}
	for _, members := range groups {
		sort.Strings(members)
	}
	return groups
}

// Filter keeps names containing text, case-insensitively. Empty filter text
// is the identity.
func Filter(names []string, text string) []string {
	if text == "" {
		return names
	}
	lower := strings.ToLower(text)
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), lower) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}
