package testsupport

import (
	"context"
	"fmt"
	"testing"

	"bandplanner/internal/config"
	"bandplanner/internal/kvstore"
	"bandplanner/internal/roster"
)

// MustOpenStore opens a kvstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *kvstore.Store {
	t.Helper()

	store, err := kvstore.Open(cfg, nil)
	if err != nil {
		t.Fatalf("kvstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MemoryStore returns a store backed by an in-memory medium.
func MemoryStore() *kvstore.Store {
	return kvstore.New(kvstore.NewMemoryMedium(), nil)
}

// SequentialIDs returns an id generator yielding prefix1, prefix2, ...
func SequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

// MustOpenModel opens a roster model over store with the given ordering policy.
func MustOpenModel(t testing.TB, store *kvstore.Store, policy string) *roster.Model {
	t.Helper()

	ordering, err := roster.NewOrdering(policy, "en")
	if err != nil {
		t.Fatalf("roster.NewOrdering: %v", err)
	}
	model, err := roster.Open(context.Background(), store, roster.Options{
		Ordering: ordering,
		NewID:    SequentialIDs("id-"),
	})
	if err != nil {
		t.Fatalf("roster.Open: %v", err)
	}
	return model
}

// AddMembers adds each name and returns the created members in call order.
func AddMembers(t testing.TB, model *roster.Model, names ...string) []roster.Member {
	t.Helper()

	out := make([]roster.Member, 0, len(names))
	for _, name := range names {
		member, ok, err := model.AddMember(context.Background(), name)
		if err != nil {
			t.Fatalf("AddMember(%q): %v", name, err)
		}
		if !ok {
			t.Fatalf("AddMember(%q) was ignored", name)
		}
		out = append(out, member)
	}
	return out
}
