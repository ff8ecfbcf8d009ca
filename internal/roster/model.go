package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bandplanner/internal/kvstore"
	"bandplanner/internal/logging"
)

// Options configures a Model.
type Options struct {
	Ordering *Ordering
	Logger   *slog.Logger
	// NewID overrides id generation; defaults to random UUIDs.
	NewID func() string
}

// Model owns the roster collections and session state.
type Model struct {
	mu        sync.Mutex
	store     *kvstore.Store
	ordering  *Ordering
	logger    *slog.Logger
	newID     func() string
	members   []Member
	songs     []Song
	available Availability
	selected  []string
	importGen uint64
}

// Open loads the persisted collections from store. Missing or corrupt stored
// values start as empty collections.
func Open(ctx context.Context, store *kvstore.Store, opts Options) (*Model, error) {
	if store == nil {
		return nil, errors.New("roster requires a store")
	}
	m := &Model{
		store:     store,
		ordering:  opts.Ordering,
		logger:    logging.NewComponentLogger(opts.Logger, "roster"),
		newID:     opts.NewID,
		available: make(Availability),
	}
	if m.ordering == nil {
		m.ordering = DefaultOrdering()
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}

	m.members = kvstore.Get(ctx, store, KeyMembers, []Member{})
	m.songs = kvstore.Get(ctx, store, KeySongs, []Song{})
	if m.members == nil {
		m.members = []Member{}
	}
	if m.songs == nil {
		m.songs = []Song{}
	}
	for i := range m.songs {
		if m.songs[i].RequiredMembers == nil {
			m.songs[i].RequiredMembers = []string{}
		}
	}

	m.logger.Debug("roster loaded",
		logging.Int("members", len(m.members)),
		logging.Int("songs", len(m.songs)),
		logging.String("ordering", m.ordering.Policy()))
	return m, nil
}

// Ordering returns the model's ordering policy.
func (m *Model) Ordering() *Ordering { return m.ordering }

// AddMember adds a member named rawName (trimmed). Blank names are ignored and
// report added=false.
func (m *Model) AddMember(ctx context.Context, rawName string) (Member, bool, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return Member{}, false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	member := Member{ID: m.newID(), Name: name}
	next := append(append(make([]Member, 0, len(m.members)+1), m.members...), member)
	m.ordering.sortMembers(next)
	if err := m.saveMembers(ctx, next); err != nil {
		return Member{}, false, err
	}

	m.logger.Info("member added", logging.String(logging.FieldMemberID, member.ID), logging.String("name", member.Name))
	return member, true, nil
}

// AddSong adds a song titled rawTitle (trimmed) requiring the given member
// ids. Duplicate ids collapse; ids not in the roster fail with
// ErrUnknownMember. Blank titles are ignored and report added=false. On
// success the pending selection is cleared.
func (m *Model) AddSong(ctx context.Context, rawTitle string, required []string) (Song, bool, error) {
	title := strings.TrimSpace(rawTitle)
	if title == "" {
		return Song{}, false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addSongLocked(ctx, title, required)
}

// AddSongFromSelection adds a song requiring the currently selected members.
func (m *Model) AddSongFromSelection(ctx context.Context, rawTitle string) (Song, bool, error) {
	title := strings.TrimSpace(rawTitle)
	if title == "" {
		return Song{}, false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addSongLocked(ctx, title, append([]string{}, m.selected...))
}

func (m *Model) addSongLocked(ctx context.Context, title string, required []string) (Song, bool, error) {
	ids := make([]string, 0, len(required))
	seen := make(map[string]struct{}, len(required))
	for _, id := range required {
		if _, dup := seen[id]; dup {
			continue
		}
		if m.memberIndex(id) < 0 {
			return Song{}, false, fmt.Errorf("%w: %q", ErrUnknownMember, id)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	song := Song{ID: m.newID(), Title: title, RequiredMembers: ids}
	next := make([]Song, 0, len(m.songs)+1)
	next = append(next, m.songs...)
	next = append(next, song)
	m.ordering.sortSongs(next)
	if err := m.saveSongs(ctx, next); err != nil {
		return Song{}, false, err
	}
	m.selected = nil

	m.logger.Info("song added",
		logging.String(logging.FieldSongID, song.ID),
		logging.String("title", song.Title),
		logging.Any("required_members", song.RequiredMembers))
	return song.clone(), true, nil
}

// RemoveMember deletes a member and strips it from every song's required
// members, the availability set, and the pending selection.
func (m *Model) RemoveMember(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.memberIndex(id)
	if idx < 0 {
		return fmt.Errorf("member %q: %w", id, ErrNotFound)
	}

	stripped := 0
	songs := make([]Song, len(m.songs))
	for i, song := range m.songs {
		song = song.clone()
		if song.Requires(id) {
			kept := song.RequiredMembers[:0]
			for _, req := range song.RequiredMembers {
				if req != id {
					kept = append(kept, req)
				}
			}
			song.RequiredMembers = kept
			stripped++
		}
		songs[i] = song
	}
	members := append(append([]Member{}, m.members[:idx]...), m.members[idx+1:]...)
	if stripped > 0 {
		if err := m.saveAll(ctx, members, songs); err != nil {
			return err
		}
	} else if err := m.saveMembers(ctx, members); err != nil {
		return err
	}
	delete(m.available, id)
	m.selected = removeID(m.selected, id)

	m.logger.Info("member removed", logging.String(logging.FieldMemberID, id), logging.Int("songs_updated", stripped))
	return nil
}

// RemoveSong deletes a song.
func (m *Model) RemoveSong(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.songIndex(id)
	if idx < 0 {
		return fmt.Errorf("song %q: %w", id, ErrNotFound)
	}
	songs := append(append([]Song{}, m.songs[:idx]...), m.songs[idx+1:]...)
	if err := m.saveSongs(ctx, songs); err != nil {
		return err
	}
	m.logger.Info("song removed", logging.String(logging.FieldSongID, id))
	return nil
}

// ToggleAvailable flips id in the availability set and returns whether it is
// now available. Availability is never persisted.
func (m *Model) ToggleAvailable(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.available.Has(id) {
		delete(m.available, id)
		return false
	}
	m.available[id] = struct{}{}
	return true
}

// SetAvailable replaces the availability set.
func (m *Model) SetAvailable(ids ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.available = NewAvailability(ids...)
}

// Availability returns a copy of the availability set.
func (m *Model) Availability() Availability {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available.clone()
}

// ToggleSelected flips id in the pending song selection and returns whether
// it is now selected.
func (m *Model) ToggleSelected(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sel := range m.selected {
		if sel == id {
			m.selected = removeID(m.selected, id)
			return false
		}
	}
	m.selected = append(m.selected, id)
	return true
}

// Selected returns the pending selection in the order members were picked.
func (m *Model) Selected() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.selected...)
}

// Reset clears both collections and the pending selection, then persists the
// empty state. Availability is left untouched.
func (m *Model) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.saveAll(ctx, []Member{}, []Song{}); err != nil {
		return err
	}
	m.selected = nil
	m.logger.Info("roster reset")
	return nil
}

// ReplaceAll overwrites both collections with snap. A snapshot missing either
// collection fails with ErrIncompleteSnapshot and changes nothing.
func (m *Model) ReplaceAll(ctx context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaceAllLocked(ctx, snap)
}

func (m *Model) replaceAllLocked(ctx context.Context, snap Snapshot) error {
	if snap.Members == nil || snap.Songs == nil {
		return ErrIncompleteSnapshot
	}
	if err := snap.CheckIDs(); err != nil {
		return err
	}
	next := snap.Clone()
	for i := range next.Songs {
		if next.Songs[i].RequiredMembers == nil {
			next.Songs[i].RequiredMembers = []string{}
		}
	}
	m.ordering.sortMembers(next.Members)
	m.ordering.sortSongs(next.Songs)

	if err := m.saveAll(ctx, next.Members, next.Songs); err != nil {
		return err
	}
	selected := m.selected[:0]
	for _, id := range m.selected {
		if m.memberIndex(id) >= 0 {
			selected = append(selected, id)
		}
	}
	m.selected = selected
	m.logger.Info("roster replaced",
		logging.Int("members", len(next.Members)),
		logging.Int("songs", len(next.Songs)))
	return nil
}

// Members returns a copy of the member collection.
func (m *Model) Members() []Member {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Member{}, m.members...)
}

// Songs returns a deep copy of the song collection.
func (m *Model) Songs() []Song {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Song, len(m.songs))
	for i, song := range m.songs {
		out[i] = song.clone()
	}
	return out
}

// Snapshot returns a deep copy of the persisted state.
func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Members: m.members, Songs: m.songs}.Clone()
}

// Member looks up a member by id.
func (m *Model) Member(id string) (Member, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx := m.memberIndex(id); idx >= 0 {
		return m.members[idx], true
	}
	return Member{}, false
}

// FindMember resolves ref as an exact id, then a case-insensitive name.
func (m *Model) FindMember(ref string) (Member, error) {
	ref = strings.TrimSpace(ref)
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx := m.memberIndex(ref); idx >= 0 {
		return m.members[idx], nil
	}
	for _, member := range m.members {
		if strings.EqualFold(member.Name, ref) {
			return member, nil
		}
	}
	return Member{}, fmt.Errorf("member %q: %w", ref, ErrNotFound)
}

// FindSong resolves ref as an exact id, then a case-insensitive title.
func (m *Model) FindSong(ref string) (Song, error) {
	ref = strings.TrimSpace(ref)
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx := m.songIndex(ref); idx >= 0 {
		return m.songs[idx].clone(), nil
	}
	for _, song := range m.songs {
		if strings.EqualFold(song.Title, ref) {
			return song.clone(), nil
		}
	}
	return Song{}, fmt.Errorf("song %q: %w", ref, ErrNotFound)
}

// MemberNames maps ids to display names sorted by collation. Ids with no
// matching member are skipped.
func (m *Model) MemberNames(ids []string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if idx := m.memberIndex(id); idx >= 0 {
			names = append(names, m.members[idx].Name)
		}
	}
	m.ordering.SortNames(names)
	return names
}

func (m *Model) saveMembers(ctx context.Context, members []Member) error {
	if err := kvstore.Set(ctx, m.store, KeyMembers, members); err != nil {
		return fmt.Errorf("persist members: %w", err)
	}
	m.members = members
	return nil
}

func (m *Model) saveSongs(ctx context.Context, songs []Song) error {
	if err := kvstore.Set(ctx, m.store, KeySongs, songs); err != nil {
		return fmt.Errorf("persist songs: %w", err)
	}
	m.songs = songs
	return nil
}

// saveAll writes songs then members and commits both only when both writes
// succeed. A failed members write restores the previous songs value.
func (m *Model) saveAll(ctx context.Context, members []Member, songs []Song) error {
	if err := kvstore.Set(ctx, m.store, KeySongs, songs); err != nil {
		return fmt.Errorf("persist songs: %w", err)
	}
	if err := kvstore.Set(ctx, m.store, KeyMembers, members); err != nil {
		if rerr := kvstore.Set(ctx, m.store, KeySongs, m.songs); rerr != nil {
			logging.ErrorWithContext(m.logger, "failed to restore songs after partial write", "roster_rollback_failed",
				logging.Error(rerr),
				logging.String(logging.FieldErrorHint, "export the roster and re-import it to realign stored songs"),
			)
		}
		return fmt.Errorf("persist members: %w", err)
	}
	m.members = members
	m.songs = songs
	return nil
}

func (m *Model) memberIndex(id string) int {
	for i, member := range m.members {
		if member.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) songIndex(id string) int {
	for i, song := range m.songs {
		if song.ID == id {
			return i
		}
	}
	return -1
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
