// Package playability derives which songs can be played from the songs'
// required members and the set of members currently available.
//
// Every function here is pure: the same songs and availability always yield
// the same results, and input order is preserved.
package playability

import (
	"fmt"
	"sort"

	"bandplanner/internal/roster"
)

// Result annotates a song with how many of its required members are absent.
type Result struct {
	Song         roster.Song `json:"song"`
	MissingCount int         `json:"missingCount"`
}

// Playable reports whether every required member is available.
func (r Result) Playable() bool { return r.MissingCount == 0 }

// Group collects the songs sharing one missing-member count.
type Group struct {
	MissingCount int           `json:"missingCount"`
	Label        string        `json:"label"`
	Songs        []roster.Song `json:"songs"`
}

// Compute returns one Result per song, in input order.
func Compute(songs []roster.Song, available roster.Availability) []Result {
	results := make([]Result, 0, len(songs))
	for _, song := range songs {
		results = append(results, Result{Song: song, MissingCount: MissingCount(song, available)})
	}
	return results
}

// MissingCount returns the number of required members not in available.
func MissingCount(song roster.Song, available roster.Availability) int {
	return len(Missing(song, available))
}

// Missing returns the required member ids not in available, in requirement order.
func Missing(song roster.Song, available roster.Availability) []string {
	var missing []string
	for _, id := range song.RequiredMembers {
		if !available.Has(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// GroupResults partitions results by missing count, ascending. Songs keep
// their relative order within each group.
func GroupResults(results []Result) []Group {
	index := make(map[int]int)
	var groups []Group
	for _, r := range results {
		pos, ok := index[r.MissingCount]
		if !ok {
			pos = len(groups)
			index[r.MissingCount] = pos
			groups = append(groups, Group{MissingCount: r.MissingCount, Label: Label(r.MissingCount)})
		}
		groups[pos].Songs = append(groups[pos].Songs, r.Song)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].MissingCount < groups[j].MissingCount
	})
	return groups
}

// Playable returns only the songs with no missing members.
func Playable(results []Result) []roster.Song {
	var songs []roster.Song
	for _, r := range results {
		if r.Playable() {
			songs = append(songs, r.Song)
		}
	}
	return songs
}

// Label returns the display heading for a missing-member count.
func Label(missing int) string {
	switch missing {
	case 0:
		return "All members present"
	case 1:
		return "1 member missing"
	default:
		return fmt.Sprintf("%d members missing", missing)
	}
}
