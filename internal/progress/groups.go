package progress

import (
	"strconv"
	"strings"
)

type GroupFilterKind int

const (
	GroupFilterNone GroupFilterKind = iota
	GroupFilterGroup
	GroupFilterGrouping
	GroupFilterInvalid
)

// GroupFilter selects learners by group or grouping membership.
type GroupFilter struct {
	Kind GroupFilterKind
	ID   int64
}

// ParseGroupFilter accepts "0" or "" (everyone), "group-<id>" and
// "grouping-<id>". Anything else, including a zero id, parses to a filter
// that matches nobody.
func ParseGroupFilter(s string) GroupFilter {
	switch {
	case s == "" || s == "0":
		return GroupFilter{Kind: GroupFilterNone}
	case strings.HasPrefix(s, "grouping-"):
		if id := parsePositive(strings.TrimPrefix(s, "grouping-")); id > 0 {
			return GroupFilter{Kind: GroupFilterGrouping, ID: id}
		}
	case strings.HasPrefix(s, "group-"):
		if id := parsePositive(strings.TrimPrefix(s, "group-")); id > 0 {
			return GroupFilter{Kind: GroupFilterGroup, ID: id}
		}
	}
	return GroupFilter{Kind: GroupFilterInvalid}
}

func (f GroupFilter) String() string {
	switch f.Kind {
	case GroupFilterNone:
		return "0"
	case GroupFilterGroup:
		return "group-" + strconv.FormatInt(f.ID, 10)
	case GroupFilterGrouping:
		return "grouping-" + strconv.FormatInt(f.ID, 10)
	default:
		return "invalid"
	}
}

// Matches reports membership given the user's groups and groupings.
func (f GroupFilter) Matches(groupIDs, groupingIDs []int64) bool {
	switch f.Kind {
	case GroupFilterNone:
		return true
	case GroupFilterGroup:
		return containsID(groupIDs, f.ID)
	case GroupFilterGrouping:
		return containsID(groupingIDs, f.ID)
	default:
		return false
	}
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func parsePositive(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
