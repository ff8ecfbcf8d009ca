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

var errDiskFull = errors.New("disk full")

// failingMedium rejects writes to failKey once set.
type failingMedium struct {
	*kvstore.MemoryMedium
	failKey string
}

func (m *failingMedium) SetItem(ctx context.Context, key, value string) error {
	if key == m.failKey {
		return errDiskFull
	}
	return m.MemoryMedium.SetItem(ctx, key, value)
}

func seededFailingModel(t *testing.T) (*roster.Model, *kvstore.Store, *failingMedium, []roster.Member) {
	t.Helper()
	medium := &failingMedium{MemoryMedium: kvstore.NewMemoryMedium()}
	store := kvstore.New(medium, nil)
	model := testsupport.MustOpenModel(t, store, config.OrderingInsertion)
	members := testsupport.AddMembers(t, model, "Alice", "Bob")
	if _, _, err := model.AddSong(context.Background(), "Yesterday", []string{members[0].ID, members[1].ID}); err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	return model, store, medium, members
}

func TestFailedMembersWriteLeavesRosterUnchanged(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(*roster.Model, []roster.Member) error
	}{
		{name: "remove member", run: func(m *roster.Model, members []roster.Member) error {
			return m.RemoveMember(ctx, members[0].ID)
		}},
		{name: "reset", run: func(m *roster.Model, _ []roster.Member) error {
			return m.Reset(ctx)
		}},
		{name: "replace all", run: func(m *roster.Model, _ []roster.Member) error {
			return m.ReplaceAll(ctx, roster.Snapshot{Members: []roster.Member{}, Songs: []roster.Song{}})
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model, store, medium, members := seededFailingModel(t)
			before := model.Snapshot()

			medium.failKey = roster.KeyMembers
			err := tc.run(model, members)
			if !errors.Is(err, errDiskFull) {
				t.Fatalf("expected disk full error, got %v", err)
			}
			if diff := cmp.Diff(before, model.Snapshot()); diff != "" {
				t.Fatalf("in-memory roster changed (-want +got):\n%s", diff)
			}

			medium.failKey = ""
			reopened := testsupport.MustOpenModel(t, store, config.OrderingInsertion)
			if diff := cmp.Diff(before, reopened.Snapshot()); diff != "" {
				t.Fatalf("stored roster changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFailedSongsWriteLeavesRosterUnchanged(t *testing.T) {
	ctx := context.Background()
	model, store, medium, members := seededFailingModel(t)
	before := model.Snapshot()

	medium.failKey = roster.KeySongs
	if err := model.RemoveMember(ctx, members[1].ID); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected disk full error, got %v", err)
	}
	if diff := cmp.Diff(before, model.Snapshot()); diff != "" {
		t.Fatalf("in-memory roster changed (-want +got):\n%s", diff)
	}

	medium.failKey = ""
	reopened := testsupport.MustOpenModel(t, store, config.OrderingInsertion)
	if diff := cmp.Diff(before, reopened.Snapshot()); diff != "" {
		t.Fatalf("stored roster changed (-want +got):\n%s", diff)
	}
}

func TestReplaceAllRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	model := testsupport.MustOpenModel(t, testsupport.MemoryStore(), config.OrderingInsertion)
	testsupport.AddMembers(t, model, "Alice")
	before := model.Snapshot()

	for _, snap := range []roster.Snapshot{
		{
			Members: []roster.Member{{ID: "1", Name: "Alice"}, {ID: "1", Name: "Bob"}},
			Songs:   []roster.Song{},
		},
		{
			Members: []roster.Member{},
			Songs:   []roster.Song{{ID: "s", Title: "A"}, {ID: "s", Title: "B"}},
		},
		{
			Members: []roster.Member{{ID: "", Name: "Nobody"}},
			Songs:   []roster.Song{},
		},
	} {
		err := model.ReplaceAll(ctx, snap)
		if !errors.Is(err, roster.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
		var idErr *roster.IDError
		if !errors.As(err, &idErr) {
			t.Fatalf("expected *IDError, got %T", err)
		}
	}
	if diff := cmp.Diff(before, model.Snapshot()); diff != "" {
		t.Fatalf("state changed after rejected import (-want +got):\n%s", diff)
	}
}
