package entity

import (
	"database/sql"

	"github.com/reelify-app/backend/pkg/enum"
)

type TransactionType string

var (
	TransactionEarning = enum.New(TransactionType("Earning"))
	TransactionDeposit = enum.New(TransactionType("Deposit"))
)

// Transaction is an immutable ledger record. There is no update or delete
// operation on this entity.
type Transaction struct {
	Base
	UserID string
	User   User `gorm:"foreignKey:UserID"`

	CampaignID sql.NullString
	Campaign   Campaign `gorm:"foreignKey:CampaignID"`

	Type   TransactionType
	Amount float64
	Note   string
}
