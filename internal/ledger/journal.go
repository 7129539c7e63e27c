package ledger

import (
	"github.com/tallybook-dev/tallybook/internal/model"
)

// EntryPatch holds the mutable journal entry fields. Nil means "leave as
// is". A non-nil Lines replaces the entry's lines wholesale and re-runs
// the full creation validation sequence.
type EntryPatch struct {
	Date        *model.Date
	Description *string
	Lines       []LineInput
}

// EntryFilter narrows Entries listings. Start and End are inclusive;
// zero dates mean unbounded. AccountID keeps only entries containing a
// line on that account.
type EntryFilter struct {
	Start     model.Date
	End       model.Date
	AccountID string
}

// CreateEntry validates and records a balanced journal entry, assigning
// ids to the entry and each line. On failure no state is touched.
func (l *Ledger) CreateEntry(in EntryInput) (model.JournalEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.validateEntryLocked(in); err != nil {
		return model.JournalEntry{}, err
	}

	now := l.now()
	entry := &model.JournalEntry{
		ID:          newID(),
		Date:        in.Date,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	entry.Lines = l.buildLinesLocked(entry.ID, in.Lines)
	l.entries[entry.ID] = entry
	l.entryOrder = append(l.entryOrder, entry.ID)
	l.addLineRefsLocked(entry)
	return l.cloneEntry(entry), nil
}

func (l *Ledger) buildLinesLocked(entryID string, inputs []LineInput) []model.JournalLine {
	lines := make([]model.JournalLine, len(inputs))
	for i, in := range inputs {
		lines[i] = model.JournalLine{
			ID:             newID(),
			JournalEntryID: entryID,
			AccountID:      in.AccountID,
			AccountName:    l.accounts[in.AccountID].Name,
			Debit:          in.Debit,
			Credit:         in.Credit,
		}
	}
	return lines
}

// Entry returns a journal entry by id.
func (l *Ledger) Entry(id string) (model.JournalEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entry, ok := l.entries[id]
	if !ok {
		return model.JournalEntry{}, ErrEntryNotFound
	}
	return l.cloneEntry(entry), nil
}

// Entries lists journal entries in insertion order, filtered by inclusive
// date range and/or referenced account.
func (l *Ledger) Entries(filter EntryFilter) []model.JournalEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []model.JournalEntry
	for _, id := range l.entryOrder {
		entry := l.entries[id]
		if !filter.Start.IsZero() && entry.Date.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && entry.Date.After(filter.End) {
			continue
		}
		if filter.AccountID != "" && !entryTouches(entry, filter.AccountID) {
			continue
		}
		out = append(out, l.cloneEntry(entry))
	}
	return out
}

func entryTouches(e *model.JournalEntry, accountID string) bool {
	for _, line := range e.Lines {
		if line.AccountID == accountID {
			return true
		}
	}
	return false
}

// UpdateEntry changes an entry's date, description, and/or lines. Closed
// entries are immutable and reject the update with ErrEntryClosed.
func (l *Ledger) UpdateEntry(id string, patch EntryPatch) (model.JournalEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[id]
	if !ok {
		return model.JournalEntry{}, ErrEntryNotFound
	}
	if entry.IsClosed {
		return model.JournalEntry{}, ErrEntryClosed
	}

	// Validate against the patched shape before mutating anything.
	next := EntryInput{Date: entry.Date, Description: entry.Description}
	if patch.Date != nil {
		next.Date = *patch.Date
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Lines != nil {
		next.Lines = patch.Lines
	} else {
		for _, line := range entry.Lines {
			next.Lines = append(next.Lines, LineInput{
				AccountID: line.AccountID,
				Debit:     line.Debit,
				Credit:    line.Credit,
			})
		}
	}
	if err := l.validateEntryLocked(next); err != nil {
		return model.JournalEntry{}, err
	}

	entry.Date = next.Date
	entry.Description = next.Description
	if patch.Lines != nil {
		l.removeLineRefsLocked(entry)
		entry.Lines = l.buildLinesLocked(entry.ID, patch.Lines)
		l.addLineRefsLocked(entry)
	}
	entry.UpdatedAt = l.now()
	return l.cloneEntry(entry), nil
}

// DeleteEntry removes an entry and its lines. Closed entries reject the
// delete with ErrEntryClosed.
func (l *Ledger) DeleteEntry(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[id]
	if !ok {
		return ErrEntryNotFound
	}
	if entry.IsClosed {
		return ErrEntryClosed
	}
	l.removeLineRefsLocked(entry)
	delete(l.entries, id)
	l.entryOrder = removeID(l.entryOrder, id)
	return nil
}

// CloseEntry marks an entry as belonging to a closed fiscal period,
// freezing it against update and delete.
func (l *Ledger) CloseEntry(id string) (model.JournalEntry, error) {
	return l.setClosed(id, true)
}

// ReopenEntry clears the closed flag.
func (l *Ledger) ReopenEntry(id string) (model.JournalEntry, error) {
	return l.setClosed(id, false)
}

func (l *Ledger) setClosed(id string, closed bool) (model.JournalEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[id]
	if !ok {
		return model.JournalEntry{}, ErrEntryNotFound
	}
	if entry.IsClosed != closed {
		entry.IsClosed = closed
		entry.UpdatedAt = l.now()
	}
	return l.cloneEntry(entry), nil
}
