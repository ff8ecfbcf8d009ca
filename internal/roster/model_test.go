package roster_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bandplanner/internal/config"
	"bandplanner/internal/kvstore"
	"bandplanner/internal/roster"
	"bandplanner/internal/testsupport"
)

func TestAddMemberTrimsAndGrowsByOne(t *testing.T) {
	model := testsupport.MustOpenModel(t, testsupport.MemoryStore(), config.OrderingInsertion)

	for i, raw := range []string{"Alice", "  Bob  ", "\tCara\n"} {
		member, ok, err := model.AddMember(context.Background(), raw)
		if err != nil || !ok {
			t.Fatalf("AddMember(%q) = ok %v err %v", raw, ok, err)
		}
		if got := len(model.Members()); got != i+1 {
			t.Fatalf("expected %d members, got %d", i+1, got)
		}
		want := []string{"Alice", "Bob", "Cara"}[i]
		if member.Name != want {
			t.Fatalf("expected trimmed name %q, got %q", want, member.Name)
		}
		if member.ID == "" {
			t.Fatal("expected generated id")
		}
	}
}

func TestAddMemberIgnoresBlankInput(t *testing.T) {
	model := testsupport.MustOpenModel(t, testsupport.MemoryStore(), config.OrderingAlphabetical)
	testsupport.AddMembers(t, model, "Alice")

	for _, raw := range []string{"", " ", "\t\n  "} {
		_, ok, err := model.AddMember(context.Background(), raw)
		if err != nil {
			t.Fatalf("AddMember(%q) returned error: %v", raw, err)
		}
		if ok {
			t.Fatalf("AddMember(%q) should be a no-op", raw)
		}
	}
	if got := len(model.Members()); got != 1 {
		t.Fatalf("expected member count unchanged at 1, got %d", got)
	}
}

func TestUUIDsAreUnique(t *testing.T) {
	model, err := roster.Open(context.Background(), testsupport.MemoryStore(), roster.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		member, _, err := model.AddMember(context.Background(), "Player")
		if err != nil {
			t.Fatalf("AddMember: %v", err)
		}
		if _, dup := seen[member.ID]; dup {
			t.Fatalf("duplicate id %q", member.ID)
		}
		seen[member.ID] = struct{}{}
	}
}

func TestAlphabeticalOrderingSortsAfterInsert(t *testing.T) {
	model := testsupport.MustOpenModel(t, testsupport.MemoryStore(), config.OrderingAlphabetical)
	testsupport.AddMembers(t, model, "charlie", "Bob", "alice", "Émile", "dave")

	var names []string
	for _, m := range model.Members() {
		names = append(names, m.Name)
	}
	want := []string{"alice", "Bob", "charlie", "dave", "Émile"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("unexpected member order (-want +got):\n%s", diff)
	}

	ctx := context.Background()
	for _, title := range []string{"Yesterday", "Help!", "across the universe"} {
		if _, _, err := model.AddSong(ctx, title, nil); err != nil {
			t.Fatalf("AddSong: %v", err)
		}
	}
	var titles []string
	for _, s := range model.Songs() {
		titles = append(titles, s.Title)
	}
	if diff := cmp.Diff([]string{"across the universe", "Help!", "Yesterday"}, titles); diff != "" {
		t.Fatalf("unexpected song order (-want +got):\n%s", diff)
	}
}

func TestInsertionOrderingPreservesInsertOrder(t *testing.T) {
	model := testsupport.MustOpenModel(t, testsupport.MemoryStore(), config.OrderingInsertion)
	testsupport.AddMembers(t, model, "Zoe", "Adam", "Mia")

	var names []string
	for _, m := range model.Members() {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"Zoe", "Adam", "Mia"}, names); diff != "" {
		t.Fatalf("unexpected member order (-want +got):\n%s", diff)
	}
}

func TestAddSongValidatesAndClearsSelection(t *testing.T) {
	ctx := context.Background()
	model := testsupport.MustOpenModel(t, testsupport.MemoryStore(), config.OrderingInsertion)
	members := testsupport.AddMembers(t, model, "Alice", "Bob")

	model.ToggleSelected(members[0].ID)
	model.ToggleSelected(members[1].ID)

	if _, ok, err := model.AddSongFromSelection(ctx, "   "); ok || err != nil {
		t.Fatalf("blank title should be ignored, ok=%v err=%v", ok, err)
	}
	if len(model.Selected()) != 2 {
		t.Fatal("blank title must not clear the selection")
	}

	song, ok, err := model.AddSongFromSelection(ctx, " Yesterday ")
	if err != nil || !ok {
		t.Fatalf("AddSongFromSelection: ok=%v err=%v", ok, err)
	}
	if song.Title != "Yesterday" {
		t.Fatalf("expected trimmed title, got %q", song.Title)
	}
	if diff := cmp.Diff([]string{members[0].ID, members[1].ID}, song.RequiredMembers); diff != "" {
		t.Fatalf("unexpected required members (-want +got):\n%s", diff)
	}
	if sel := model.Selected(); len(sel) != 0 {
		t.Fatalf("expected selection cleared, got %v", sel)
	}

	_, _, err = model.AddSong(ctx, "Ghost", []string{"missing"})
	if !errors.Is(err, roster.ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}
	if got := len(model.Songs()); got != 1 {
		t.Fatalf("failed AddSong must not mutate, got %d songs", got)
	}

	dup, _, err := model.AddSong(ctx, "Solo", []string{members[0].ID, members[0].ID})
	if err != nil {
		t.Fatalf("AddSong duplicate ids: %v", err)
	}
	if len(dup.RequiredMembers) != 1 {
		t.Fatalf("expected duplicate ids to collapse, got %v", dup.RequiredMembers)
	}

	empty, ok, err := model.AddSong(ctx, "Anyone", nil)
	if err != nil || !ok {
		t.Fatalf("AddSong without requirements: ok=%v err=%v", ok, err)
	}
	if empty.RequiredMembers == nil || len(empty.RequiredMembers) != 0 {
		t.Fatalf("expected empty non-nil requirements, got %#v", empty.RequiredMembers)
	}
}

func TestToggleAvailableIsSessionOnly(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MemoryStore()
	model := testsupport.MustOpenModel(t, store, config.OrderingInsertion)
	alice := testsupport.AddMembers(t, model, "Alice")[0]

	if !model.ToggleAvailable(alice.ID) {
		t.Fatal("expected first toggle to mark available")
	}
	if !model.Availability().Has(alice.ID) {
		t.Fatal("expected alice available")
	}
	if model.ToggleAvailable(alice.ID) {
		t.Fatal("expected second toggle to clear availability")
	}
	model.ToggleAvailable(alice.ID)

	reopened, err := roster.Open(ctx, store, roster.Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(reopened.Availability()) != 0 {
		t.Fatal("availability must not be persisted")
	}
	if len(reopened.Members()) != 1 {
		t.Fatal("members must be persisted")
	}
}

func TestResetPersistsEmptyCollections(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MemoryStore()
	model := testsupport.MustOpenModel(t, store, config.OrderingAlphabetical)
	alice := testsupport.AddMembers(t, model, "Alice")[0]
	if _, _, err := model.AddSong(ctx, "Yesterday", []string{alice.ID}); err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	model.ToggleAvailable(alice.ID)

	if err := model.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(model.Members()) != 0 || len(model.Songs()) != 0 {
		t.Fatal("expected empty collections after reset")
	}
	if !model.Availability().Has(alice.ID) {
		t.Fatal("reset should leave availability untouched")
	}

	members := kvstore.Get(ctx, store, roster.KeyMembers, []roster.Member{{ID: "sentinel"}})
	songs := kvstore.Get(ctx, store, roster.KeySongs, []roster.Song{{ID: "sentinel"}})
	if len(members) != 0 || len(songs) != 0 {
		t.Fatalf("expected persisted empty state, got members=%v songs=%v", members, songs)
	}
}

func TestReplaceAllRejectsIncompleteSnapshot(t *testing.T) {
	ctx := context.Background()
	model := testsupport.MustOpenModel(t, testsupport.MemoryStore(), config.OrderingInsertion)
	testsupport.AddMembers(t, model, "Alice")
	before := model.Snapshot()

	for _, snap := range []roster.Snapshot{
		{Members: []roster.Member{}},
		{Songs: []roster.Song{}},
		{},
	} {
		if err := model.ReplaceAll(ctx, snap); !errors.Is(err, roster.ErrIncompleteSnapshot) {
			t.Fatalf("expected ErrIncompleteSnapshot, got %v", err)
		}
	}
	if diff := cmp.Diff(before, model.Snapshot()); diff != "" {
		t.Fatalf("state changed after rejected import (-want +got):\n%s", diff)
	}
}

func TestReplaceAllOverwritesAndPersists(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MemoryStore()
	model := testsupport.MustOpenModel(t, store, config.OrderingAlphabetical)
	testsupport.AddMembers(t, model, "Old")

	snap := roster.Snapshot{
		Members: []roster.Member{{ID: "2", Name: "Bob"}, {ID: "1", Name: "Alice"}},
		Songs:   []roster.Song{{ID: "s1", Title: "Yesterday", RequiredMembers: []string{"1", "2"}}},
	}
	if err := model.ReplaceAll(ctx, snap); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	want := roster.Snapshot{
		Members: []roster.Member{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}},
		Songs:   snap.Songs,
	}
	if diff := cmp.Diff(want, model.Snapshot()); diff != "" {
		t.Fatalf("unexpected snapshot (-want +got):\n%s", diff)
	}

	reopened := testsupport.MustOpenModel(t, store, config.OrderingAlphabetical)
	if diff := cmp.Diff(want, reopened.Snapshot()); diff != "" {
		t.Fatalf("unexpected persisted snapshot (-want +got):\n%s", diff)
	}

	snap.Members[0].Name = "Mutated"
	if model.Members()[1].Name != "Bob" {
		t.Fatal("model must not alias the caller's snapshot")
	}
}

func TestRemoveMemberCascadesIntoSongs(t *testing.T) {
	ctx := context.Background()
	model := testsupport.MustOpenModel(t, testsupport.MemoryStore(), config.OrderingInsertion)
	members := testsupport.AddMembers(t, model, "Alice", "Bob")
	song, _, err := model.AddSong(ctx, "Duet", []string{members[0].ID, members[1].ID})
	if err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	model.ToggleAvailable(members[0].ID)
	model.ToggleSelected(members[0].ID)

	if err := model.RemoveMember(ctx, members[0].ID); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}

	if _, ok := model.Member(members[0].ID); ok {
		t.Fatal("expected member removed")
	}
	got, err := model.FindSong(song.ID)
	if err != nil {
		t.Fatalf("FindSong: %v", err)
	}
	if diff := cmp.Diff([]string{members[1].ID}, got.RequiredMembers); diff != "" {
		t.Fatalf("expected reference stripped (-want +got):\n%s", diff)
	}
	if model.Availability().Has(members[0].ID) {
		t.Fatal("expected availability cleared for removed member")
	}
	if len(model.Selected()) != 0 {
		t.Fatal("expected selection cleared for removed member")
	}

	if err := model.RemoveMember(ctx, "nope"); !errors.Is(err, roster.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveSong(t *testing.T) {
	ctx := context.Background()
	model := testsupport.MustOpenModel(t, testsupport.MemoryStore(), config.OrderingInsertion)
	song, _, err := model.AddSong(ctx, "Yesterday", nil)
	if err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	if err := model.RemoveSong(ctx, song.ID); err != nil {
		t.Fatalf("RemoveSong: %v", err)
	}
	if len(model.Songs()) != 0 {
		t.Fatal("expected song removed")
	}
	if err := model.RemoveSong(ctx, song.ID); !errors.Is(err, roster.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindMemberAndNames(t *testing.T) {
	model := testsupport.MustOpenModel(t, testsupport.MemoryStore(), config.OrderingInsertion)
	members := testsupport.AddMembers(t, model, "Zoe", "alice")

	found, err := model.FindMember("ALICE")
	if err != nil || found.ID != members[1].ID {
		t.Fatalf("FindMember by name: %v %v", found, err)
	}
	found, err = model.FindMember(members[0].ID)
	if err != nil || found.Name != "Zoe" {
		t.Fatalf("FindMember by id: %v %v", found, err)
	}
	if _, err := model.FindMember("nobody"); !errors.Is(err, roster.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	names := model.MemberNames([]string{members[0].ID, "ghost", members[1].ID})
	if diff := cmp.Diff([]string{"alice", "Zoe"}, names); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
}

func TestOpenFallsBackOnCorruptStoredValues(t *testing.T) {
	ctx := context.Background()
	medium := kvstore.NewMemoryMedium()
	if err := medium.SetItem(ctx, roster.KeyMembers, "not json"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := medium.SetItem(ctx, roster.KeySongs, `[{"id":"s1","title":"Kept"}]`); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	model, err := roster.Open(ctx, kvstore.New(medium, nil), roster.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(model.Members()) != 0 {
		t.Fatal("expected corrupt members to fall back to empty")
	}
	songs := model.Songs()
	if len(songs) != 1 || songs[0].RequiredMembers == nil {
		t.Fatalf("expected song with normalized requirements, got %#v", songs)
	}
}

func TestCommitImportLastRequestWins(t *testing.T) {
	ctx := context.Background()
	model := testsupport.MustOpenModel(t, testsupport.MemoryStore(), config.OrderingInsertion)

	first := model.BeginImport()
	second := model.BeginImport()

	older := roster.Snapshot{Members: []roster.Member{{ID: "1", Name: "Old"}}, Songs: []roster.Song{}}
	newer := roster.Snapshot{Members: []roster.Member{{ID: "2", Name: "New"}}, Songs: []roster.Song{}}

	if err := model.CommitImport(ctx, second, newer); err != nil {
		t.Fatalf("CommitImport newer: %v", err)
	}
	if err := model.CommitImport(ctx, first, older); !errors.Is(err, roster.ErrImportSuperseded) {
		t.Fatalf("expected ErrImportSuperseded, got %v", err)
	}
	members := model.Members()
	if len(members) != 1 || members[0].Name != "New" {
		t.Fatalf("expected newer import to win, got %v", members)
	}
	if model.IsLatestImport(first) || !model.IsLatestImport(second) {
		t.Fatal("only the newest ticket should be current")
	}
}
