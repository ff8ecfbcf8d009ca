package roster

import (
	"fmt"
	"sort"
)

// Storage keys for the persisted collections.
const (
	KeyMembers = "members"
	KeySongs   = "songs"
)

// Member is a band participant.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Song is a repertoire entry requiring a subset of members to be present.
type Song struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	RequiredMembers []string `json:"requiredMembers"`
}

// Requires reports whether memberID is one of the song's required members.
func (s Song) Requires(memberID string) bool {
	for _, id := range s.RequiredMembers {
		if id == memberID {
			return true
		}
	}
	return false
}

func (s Song) clone() Song {
	s.RequiredMembers = append([]string{}, s.RequiredMembers...)
	return s
}

// Snapshot is the full persisted and exportable state. A nil slice means the
// collection was absent from the source document.
type Snapshot struct {
	Members []Member `json:"members"`
	Songs   []Song   `json:"songs"`
}

// Clone returns a deep copy. Nil collections stay nil.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{}
	if s.Members != nil {
		out.Members = append([]Member{}, s.Members...)
	}
	if s.Songs != nil {
		out.Songs = make([]Song, len(s.Songs))
		for i, song := range s.Songs {
			out.Songs[i] = song.clone()
		}
	}
	return out
}

// IDError describes an empty or repeated id in a snapshot collection.
type IDError struct {
	// Collection is "member" or "song".
	Collection string
	ID         string
}

func (e *IDError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("empty %s id", e.Collection)
	}
	return fmt.Sprintf("duplicate %s id %q", e.Collection, e.ID)
}

func (e *IDError) Is(target error) bool { return target == ErrInvalidID }

// CheckIDs returns an *IDError for the first empty or duplicate id in either
// collection.
func (s Snapshot) CheckIDs() error {
	seen := make(map[string]struct{}, len(s.Members))
	for _, member := range s.Members {
		if err := checkID(seen, "member", member.ID); err != nil {
			return err
		}
	}
	seen = make(map[string]struct{}, len(s.Songs))
	for _, song := range s.Songs {
		if err := checkID(seen, "song", song.ID); err != nil {
			return err
		}
	}
	return nil
}

func checkID(seen map[string]struct{}, collection, id string) error {
	if id == "" {
		return &IDError{Collection: collection}
	}
	if _, dup := seen[id]; dup {
		return &IDError{Collection: collection, ID: id}
	}
	seen[id] = struct{}{}
	return nil
}

// Availability is the set of member ids currently present.
type Availability map[string]struct{}

// NewAvailability builds a set from ids.
func NewAvailability(ids ...string) Availability {
	set := make(Availability, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is available. A nil set has no members.
func (a Availability) Has(id string) bool {
	_, ok := a[id]
	return ok
}

// IDs returns the set members in sorted order.
func (a Availability) IDs() []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (a Availability) clone() Availability {
	out := make(Availability, len(a))
	for id := range a {
		out[id] = struct{}{}
	}
	return out
}
