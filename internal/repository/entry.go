package repository

import (
	"context"

	"minhas-financas/internal/domain"
)

// EntryRepository exposes persistence operations for ledger entries.
type EntryRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, entry *domain.Entry) (int64, error)
	Update(ctx context.Context, entry *domain.Entry) error
	UpdateStatus(ctx context.Context, id int64, status domain.EntryStatus) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Entry, error)
	List(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)
	ListByStatuses(ctx context.Context, userID int64, statuses ...domain.EntryStatus) ([]domain.Entry, error)
}
