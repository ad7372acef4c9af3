package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupByPrefix(t *testing.T) {
	groups := Group([]string{"train/loss", "val/loss", "foo"})

	assert.Equal(t, map[string][]string{
		"train": {"train/loss"},
		"val":   {"val/loss"},
		"other": {"foo"},
	}, groups)
}

func TestGroupSortsMembers(t *testing.T) {
	groups := Group([]string{"train/loss", "train/accuracy", "train/lr"})

	assert.Equal(t, []string{"train/accuracy", "train/loss", "train/lr"}, groups["train"])
}

func TestGroupOnlyFirstSeparatorCounts(t *testing.T) {
	groups := Group([]string{"train/step/loss"})

	assert.Equal(t, []string{"train/step/loss"}, groups["train"])
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, Group(nil))
}

func TestFilterCaseInsensitive(t *testing.T) {
	names := []string{"train/Loss", "val/loss", "train/accuracy"}

	assert.Equal(t, []string{"train/Loss", "val/loss"}, Filter(names, "LOSS"))
}

func TestFilterEmptyTextIsIdentity(t *testing.T) {
	names := []string{"b", "a"}

	filtered := Filter(names, "")
	// Identity includes order.
	assert.Equal(t, names, filtered)
}

func TestFilterNoMatches(t *testing.T) {
	assert.Empty(t, Filter([]string{"train/loss"}, "gpu"))
}

func TestGroupSystemCategories(t *testing.T) {
	groups := GroupSystem([]string{
		"cpu_percent",
		"memory_used",
		"gpu_0_utilization",
		"disk_read_bytes",
		"network_sent",
		"temperature_core_0",
		"fan_speed",
	})

	assert.Equal(t, []string{"cpu_percent"}, groups["CPU"])
	assert.Equal(t, []string{"memory_used"}, groups["Memory"])
	assert.Equal(t, []string{"gpu_0_utilization"}, groups["GPU"])
	assert.Equal(t, []string{"disk_read_bytes"}, groups["Disk"])
	assert.Equal(t, []string{"network_sent"}, groups["Network"])
	assert.Equal(t, []string{"temperature_core_0"}, groups["Temperature"])
	assert.Equal(t, []string{"fan_speed"}, groups["Other"])
}

func TestGroupSystemPrecedence(t *testing.T) {
	// Matches both Memory and Network keywords; Memory is listed first.
	groups := GroupSystem([]string{"network_memory_buffers"})

	assert.Equal(t, []string{"network_memory_buffers"}, groups["Memory"])
	assert.Empty(t, groups["Network"])
}

func TestGroupSystemOmitsEmptyGroups(t *testing.T) {
	groups := GroupSystem([]string{"cpu_percent"})

	assert.Len(t, groups, 1)
}

func TestIsSystemBookkeepingKey(t *testing.T) {
	assert.True(t, IsSystemBookkeepingKey("timestamp"))
	assert.True(t, IsSystemBookkeepingKey("step"))
	assert.True(t, IsSystemBookkeepingKey("wall_time"))
	assert.False(t, IsSystemBookkeepingKey("cpu_percent"))
}
