package metrics

import (
	"sort"
	"strings"
)

// systemCategories maps system-metric keywords to display groups. Order
// matters: a key is grouped under the FIRST category whose keywords match,
// so a name containing both "network" and "memory" lands in Memory. The
// precedence is fixed and part of the contract.
var systemCategories = []struct {
	Name     string
	Keywords []string
}{
	{"CPU", []string{"cpu", "processor"}},
	{"Memory", []string{"memory", "ram", "mem"}},
	{"GPU", []string{"gpu", "cuda", "nvidia"}},
	{"Disk", []string{"disk", "io", "storage"}},
	{"Network", []string{"network", "net", "bandwidth"}},
	{"Temperature", []string{"temp", "temperature"}},
}

// SystemOtherGroup collects keys matching no category.
const SystemOtherGroup = "Other"

// Bookkeeping keys of system records that are not metrics themselves.
var systemBookkeepingKeys = map[string]struct{}{
	"timestamp": {},
	"step":      {},
	"wall_time": {},
}

// IsSystemBookkeepingKey reports whether key is record metadata rather than
// a metric.
func IsSystemBookkeepingKey(key string) bool {
	_, ok := systemBookkeepingKeys[key]
	return ok
}

// GroupSystem buckets system-metric keys into resource categories by keyword
// with the documented precedence. Members come back sorted; empty groups are
// absent.
func GroupSystem(keys []string) map[string][]string {
	groups := make(map[string][]string)

	for _, key := range keys {
		lower := strings.ToLower(key)
		group := SystemOtherGroup
	categories:
		for _, category := range systemCategories {
			for _, keyword := range category.Keywords {
				if strings.Contains(lower, keyword) {
					group = category.Name
					break categories
				}
			}
		}
		groups[group] = append(groups[group], key)
	}

	for _, members := range groups {
		sort.Strings(members)
	}
	return groups
}
