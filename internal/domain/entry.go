package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryTypeIncome  EntryType = "INCOME"
	EntryTypeExpense EntryType = "EXPENSE"
)

func (t EntryType) Valid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

type EntryStatus string

const (
	EntryStatusPending  EntryStatus = "PENDING"
	EntryStatusCanceled EntryStatus = "CANCELED"
	EntryStatusSettled  EntryStatus = "SETTLED"
)

func (s EntryStatus) Valid() bool {
	switch s {
	case EntryStatusPending, EntryStatusCanceled, EntryStatusSettled:
		return true
	}
	return false
}

// Entry is a single income or expense booked against a user's ledger.
type Entry struct {
	ID          int64
	UserID      int64
	Description string
	Month       int
	Year        int
	Amount      decimal.Decimal
	Type        EntryType
	Status      EntryStatus
	CreatedAt   time.Time
}

// EntryFilter narrows a ledger listing. Zero values are ignored.
type EntryFilter struct {
	UserID      int64
	Description string
	Month       int
	Year        int
	Type        EntryType
}
