package ledger

import (
	"strings"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// AccountInput holds the fields required to create an account.
type AccountInput struct {
	Code     string
	Name     string
	Type     model.AccountType
	Category string
	ParentID string
}

// AccountPatch holds the mutable account fields. Nil means "leave as is".
// Code and Type are immutable and deliberately absent.
type AccountPatch struct {
	Name     *string
	Category *string
}

// AccountFilter narrows Accounts listings.
type AccountFilter struct {
	Type model.AccountType // zero value = all types
}

// CreateAccount registers a new account in the chart.
func (l *Ledger) CreateAccount(in AccountInput) (model.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.createAccountLocked(in)
}

func (l *Ledger) createAccountLocked(in AccountInput) (model.Account, error) {
	if strings.TrimSpace(in.Code) == "" {
		return model.Account{}, validationf("code", "required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Account{}, validationf("name", "required")
	}
	if !in.Type.Valid() {
		return model.Account{}, validationf("type", "must be one of asset, liability, equity, revenue, expense")
	}
	if strings.TrimSpace(in.Category) == "" {
		return model.Account{}, validationf("category", "required")
	}
	if _, exists := l.codeIndex[in.Code]; exists {
		return model.Account{}, ErrDuplicateCode
	}
	if in.ParentID != "" {
		if _, ok := l.accounts[in.ParentID]; !ok {
			return model.Account{}, ErrAccountNotFound
		}
	}

	now := l.now()
	acct := &model.Account{
		ID:        newID(),
		Code:      in.Code,
		Name:      in.Name,
		Type:      in.Type,
		Category:  in.Category,
		ParentID:  in.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	l.accounts[acct.ID] = acct
	l.accountOrder = append(l.accountOrder, acct.ID)
	l.codeIndex[acct.Code] = acct.ID
	return cloneAccount(acct), nil
}

// Account returns an account by id.
func (l *Ledger) Account(id string) (model.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	acct, ok := l.accounts[id]
	if !ok {
		return model.Account{}, ErrAccountNotFound
	}
	return cloneAccount(acct), nil
}

// AccountByCode returns an account by its human-readable code. Used by
// protocol adapters that address accounts by code rather than id.
func (l *Ledger) AccountByCode(code string) (model.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.codeIndex[code]
	if !ok {
		return model.Account{}, ErrAccountNotFound
	}
	return cloneAccount(l.accounts[id]), nil
}

// Accounts lists accounts in insertion order, optionally filtered by type.
func (l *Ledger) Accounts(filter AccountFilter) []model.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Account, 0, len(l.accountOrder))
	for _, id := range l.accountOrder {
		acct := l.accounts[id]
		if filter.Type != "" && acct.Type != filter.Type {
			continue
		}
		out = append(out, cloneAccount(acct))
	}
	return out
}

// UpdateAccount changes an account's name and/or category.
func (l *Ledger) UpdateAccount(id string, patch AccountPatch) (model.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.accounts[id]
	if !ok {
		return model.Account{}, ErrAccountNotFound
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Account{}, validationf("name", "required")
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return model.Account{}, validationf("category", "required")
	}
	if patch.Name != nil {
		acct.Name = *patch.Name
	}
	if patch.Category != nil {
		acct.Category = *patch.Category
	}
	acct.UpdatedAt = l.now()
	return cloneAccount(acct), nil
}

// DeleteAccount removes an account. Fails with ErrAccountInUse if any
// journal line references it. The usage check and the delete run under
// the same write lock, so no entry can slip in between them.
func (l *Ledger) DeleteAccount(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	if len(l.lineRefs[id]) > 0 {
		return ErrAccountInUse
	}
	delete(l.accounts, id)
	delete(l.codeIndex, acct.Code)
	l.accountOrder = removeID(l.accountOrder, id)
	return nil
}
