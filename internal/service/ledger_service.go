package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"minhas-financas/internal/domain"
	"minhas-financas/internal/repository"
)

// LedgerService books entries and aggregates them into a balance.
type LedgerService interface {
	BalanceForUser(ctx context.Context, userID int64) (decimal.Decimal, error)
	CreateEntry(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	GetEntry(ctx context.Context, id int64) (*domain.Entry, bool, error)
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)
	UpdateEntry(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	UpdateStatus(ctx context.Context, id int64, status domain.EntryStatus) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

type ledgerService struct {
	entries repository.EntryRepository
	users   repository.UserRepository
}

func NewLedgerService(entries repository.EntryRepository, users repository.UserRepository) LedgerService {
	return &ledgerService{
		entries: entries,
		users:   users,
	}
}

// BalanceForUser returns settled income minus settled expenses.
func (s *ledgerService) BalanceForUser(ctx context.Context, userID int64) (decimal.Decimal, error) {
	settled, err := s.entries.ListByStatuses(ctx, userID, domain.EntryStatusSettled)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list settled entries: %w", err)
	}

	balance := decimal.Zero
	for _, entry := range settled {
		switch entry.Type {
		case domain.EntryTypeIncome:
			balance = balance.Add(entry.Amount)
		case domain.EntryTypeExpense:
			balance = balance.Sub(entry.Amount)
		}
	}
	return balance, nil
}

func (s *ledgerService) CreateEntry(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if entry == nil {
		return nil, ruleError("entry is required")
	}
	if err := s.validate(ctx, entry); err != nil {
		return nil, err
	}

	entry.ID = 0
	entry.Status = domain.EntryStatusPending
	if _, err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) GetEntry(ctx context.Context, id int64) (*domain.Entry, bool, error) {
	entry, err := s.entries.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entry, true, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	if filter.UserID <= 0 {
		return nil, ruleError("user id is required to list entries")
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, ruleError(fmt.Sprintf("unknown entry type %q", filter.Type))
	}
	filter.Description = strings.TrimSpace(filter.Description)
	return s.entries.List(ctx, filter)
}

func (s *ledgerService) UpdateEntry(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if entry == nil {
		return nil, ruleError("entry is required")
	}
	current, err := s.entries.Get(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, entry); err != nil {
		return nil, err
	}

	if entry.UserID != current.UserID {
		return nil, ruleError("entry cannot be moved to another user")
	}

	entry.Status = current.Status
	entry.CreatedAt = current.CreatedAt
	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) UpdateStatus(ctx context.Context, id int64, status domain.EntryStatus) (*domain.Entry, error) {
	if !status.Valid() {
		return nil, ruleError(fmt.Sprintf("unknown entry status %q", status))
	}
	if err := s.entries.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.entries.Get(ctx, id)
}

func (s *ledgerService) DeleteEntry(ctx context.Context, id int64) error {
	return s.entries.Delete(ctx, id)
}

func (s *ledgerService) validate(ctx context.Context, entry *domain.Entry) error {
	entry.Description = strings.TrimSpace(entry.Description)
	switch {
	case entry.Description == "":
		return ruleError("description is required")
	case entry.Month < 1 || entry.Month > 12:
		return ruleError("month must be between 1 and 12")
	case entry.Year < 1000 || entry.Year > 9999:
		return ruleError("year must have four digits")
	case !entry.Amount.IsPositive():
		return ruleError("amount must be greater than zero")
	case !entry.Type.Valid():
		return ruleError("type must be INCOME or EXPENSE")
	case entry.UserID <= 0:
		return ruleError("user is required")
	}

	if _, err := s.users.FindByID(ctx, entry.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ruleError(fmt.Sprintf("user %d not found", entry.UserID))
		}
		return fmt.Errorf("find entry owner: %w", err)
	}
	return nil
}
