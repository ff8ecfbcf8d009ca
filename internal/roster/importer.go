package roster

import (
	"context"

	"bandplanner/internal/logging"
)

// ImportTicket identifies one import request. Only the most recently issued
// ticket can commit.
type ImportTicket uint64

// BeginImport issues a ticket for an import whose document is still being
// read. Issuing a new ticket supersedes every earlier one.
func (m *Model) BeginImport() ImportTicket {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.importGen++
	return ImportTicket(m.importGen)
}

// IsLatestImport reports whether ticket is the most recently issued one.
func (m *Model) IsLatestImport(ticket ImportTicket) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return uint64(ticket) == m.importGen
}

// CommitImport applies snap if ticket is still the latest import. A stale
// ticket returns ErrImportSuperseded; an incomplete snapshot returns
// ErrIncompleteSnapshot. Either way the roster is unchanged.
func (m *Model) CommitImport(ctx context.Context, ticket ImportTicket, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if uint64(ticket) != m.importGen {
		m.logger.Debug("discarding superseded import", logging.Int("ticket", int(ticket)), logging.Int("latest", int(m.importGen)))
		return ErrImportSuperseded
	}
	return m.replaceAllLocked(ctx, snap)
}
