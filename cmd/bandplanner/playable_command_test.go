package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func seedYesterday(t *testing.T, env *cliTestEnv) {
	t.Helper()
	mustRunCLI(t, env, "member", "add", "Alice")
	mustRunCLI(t, env, "member", "add", "Bob")
	mustRunCLI(t, env, "song", "add", "Yesterday", "--needs", "Alice", "--needs", "Bob")
}

func TestPlayableWithOneMemberMissing(t *testing.T) {
	env := setupCLITestEnv(t)
	seedYesterday(t, env)

	view := decodeJSON[playableView](t, mustRunCLI(t, env, "playable", "--available", "Alice", "--json"))
	if diff := cmp.Diff([]string{"Alice"}, view.Available); diff != "" {
		t.Fatalf("available (-want +got):\n%s", diff)
	}
	if len(view.Groups) != 1 {
		t.Fatalf("expected one group, got %+v", view.Groups)
	}
	group := view.Groups[0]
	if group.MissingCount != 1 || group.Label != "1 member missing" {
		t.Fatalf("unexpected group: %+v", group)
	}
	if diff := cmp.Diff([]string{"Bob"}, group.Songs[0].Missing); diff != "" {
		t.Fatalf("missing (-want +got):\n%s", diff)
	}

	requireContains(t, mustRunCLI(t, env, "playable", "--available", "Alice", "--only-playable"), "No playable songs")

	text := mustRunCLI(t, env, "playable", "-a", "Alice")
	requireContains(t, text, "== 1 member missing (1) ==")
	requireContains(t, text, "Yesterday")
	requireNotContains(t, text, "\x1b[")
}

func TestPlayableWithEveryonePresent(t *testing.T) {
	env := setupCLITestEnv(t)
	seedYesterday(t, env)
	mustRunCLI(t, env, "song", "add", "Solo", "--needs", "Alice")

	view := decodeJSON[playableView](t, mustRunCLI(t, env, "playable", "--all", "--json"))
	if len(view.Groups) != 1 || view.Groups[0].Label != "All members present" {
		t.Fatalf("unexpected groups: %+v", view.Groups)
	}
	if len(view.Groups[0].Songs) != 2 {
		t.Fatalf("expected both songs playable, got %+v", view.Groups[0].Songs)
	}

	songs := decodeJSON[[]songView](t, mustRunCLI(t, env, "playable", "--all", "--only-playable", "--json"))
	if len(songs) != 2 {
		t.Fatalf("expected two playable songs, got %+v", songs)
	}
}

func TestPlayableGroupsAscendByMissingCount(t *testing.T) {
	env := setupCLITestEnv(t)
	seedYesterday(t, env)
	mustRunCLI(t, env, "song", "add", "Solo", "--needs", "Alice")
	mustRunCLI(t, env, "song", "add", "Jam")

	view := decodeJSON[playableView](t, mustRunCLI(t, env, "playable", "--json"))
	var labels []string
	for _, group := range view.Groups {
		labels = append(labels, group.Label)
	}
	want := []string{"All members present", "1 member missing", "2 members missing"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("labels (-want +got):\n%s", diff)
	}
}

func TestPlayableWithoutSongs(t *testing.T) {
	env := setupCLITestEnv(t)
	requireContains(t, mustRunCLI(t, env, "playable"), "No songs yet")
}
