package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AdminUser struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	CreatedAt    time.Time
}

type Session struct {
	ID        int64
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Order struct {
	ID         int64
	PublicID   uuid.UUID
	Name       string
	Email      string
	Zipcode    string
	Product    string
	Quantity   string
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}

type OrderCreateParams struct {
	Name       string
	Email      string
	Zipcode    string
	Product    string
	Quantity   string
	TotalPrice decimal.Decimal
}

// OrderQuery filters the admin order listing. Search is a case-insensitive
// substring match on name, email and zipcode; Product is matched exactly.
type OrderQuery struct {
	Search  string
	Product string
	Limit   int
	Offset  int
}

type ContactMessage struct {
	ID        int64
	PublicID  uuid.UUID
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

type ContactMessageCreateParams struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type EmailStatus string

const (
	EmailPending EmailStatus = "pending"
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
)

// Terminal reports whether no further transitions are allowed from s.
func (s EmailStatus) Terminal() bool {
	return s == EmailSent || s == EmailFailed
}

type EmailJob struct {
	ID            int64
	OrderID       int64
	Recipient     string
	Subject       string
	HTMLBody      string
	Status        EmailStatus
	Attempts      int
	LastAttemptAt *time.Time
	SentAt        *time.Time
	ErrorMessage  string
	CreatedAt     time.Time
}

type EmailJobCreateParams struct {
	OrderID   int64
	Recipient string
	Subject   string
	HTMLBody  string
}

type EmailStats struct {
	Pending int
	Sent    int
	Failed  int
}

type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type OrderTotals struct {
	Count   int
	Revenue decimal.Decimal
}

type ProductStat struct {
	Product    string
	OrderCount int
	Revenue    decimal.Decimal
}

type ProductBreakdown struct {
	Product       string
	TotalOrders   int
	TotalUnits    int
	TotalRevenue  decimal.Decimal
	AvgOrderValue decimal.Decimal
}

type DashboardStats struct {
	Orders   OrderTotals
	Contacts int
	Emails   EmailStats
	Products []ProductStat
}
