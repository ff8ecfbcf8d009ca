package roster

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"bandplanner/internal/config"
)

// Ordering decides how member and song collections are kept in order.
// A Collator keeps internal buffers, so an Ordering must not be shared
// between goroutines without external locking; Model holds its own lock.
type Ordering struct {
	policy   string
	collator *collate.Collator
}

// NewOrdering returns an ordering for policy ("alphabetical" or "insertion").
// locale is a BCP 47 tag used for collation.
func NewOrdering(policy, locale string) (*Ordering, error) {
	policy = strings.ToLower(strings.TrimSpace(policy))
	switch policy {
	case "":
		policy = config.OrderingAlphabetical
	case config.OrderingAlphabetical, config.OrderingInsertion:
	default:
		return nil, fmt.Errorf("ordering: unsupported policy %q", policy)
	}
	tag := language.English
	if strings.TrimSpace(locale) != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("ordering locale: %w", err)
		}
		tag = parsed
	}
	return &Ordering{policy: policy, collator: collate.New(tag, collate.IgnoreCase)}, nil
}

// DefaultOrdering sorts alphabetically using English collation.
func DefaultOrdering() *Ordering {
	return &Ordering{policy: config.OrderingAlphabetical, collator: collate.New(language.English, collate.IgnoreCase)}
}

// Policy returns the ordering policy name.
func (o *Ordering) Policy() string { return o.policy }

func (o *Ordering) sorts() bool { return o.policy == config.OrderingAlphabetical }

func (o *Ordering) compare(a, b string) int {
	return o.collator.CompareString(a, b)
}

func (o *Ordering) sortMembers(members []Member) {
	if !o.sorts() {
		return
	}
	sort.SliceStable(members, func(i, j int) bool {
		return o.compare(members[i].Name, members[j].Name) < 0
	})
}

func (o *Ordering) sortSongs(songs []Song) {
	if !o.sorts() {
		return
	}
	sort.SliceStable(songs, func(i, j int) bool {
		return o.compare(songs[i].Title, songs[j].Title) < 0
	})
}

// SortNames sorts display names with the ordering's collation regardless of
// policy.
func (o *Ordering) SortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return o.compare(names[i], names[j]) < 0
	})
}
