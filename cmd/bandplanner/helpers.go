package main

import (
	"fmt"
	"strings"

	"bandplanner/internal/roster"
)

// resolveMemberIDs maps member references (ids or names) to ids, skipping
// blanks and keeping the first occurrence of each member.
func resolveMemberIDs(model *roster.Model, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		member, err := model.FindMember(ref)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[member.ID]; ok {
			continue
		}
		seen[member.ID] = struct{}{}
		ids = append(ids, member.ID)
	}
	return ids, nil
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", count, plural)
}
