package utils

import (
	"strconv"
	"strings"
)

// ParseID parses a positive integer path id.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseIDList accepts repeated values and/or comma separated lists
// ("1,2", "3") and returns the distinct positive ids in first-seen order.
// Tokens that are not positive integers are dropped.
func ParseIDList(values []string) []int64 {
	var ids []int64
	for _, v := range values {
		for _, tok := range strings.Split(v, ",") {
			if id, ok := ParseID(tok); ok {
				ids = append(ids, id)
			}
		}
	}
	return UniqueIDs(ids)
}

// UniqueIDs removes duplicates, keeping first-seen order.
func UniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
