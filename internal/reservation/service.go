// Package reservation accepts reservation and contact form submissions.
package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/horndawg/launchpad/internal/catalog"
	"github.com/horndawg/launchpad/internal/mail"
	"github.com/horndawg/launchpad/internal/metrics"
	"github.com/horndawg/launchpad/internal/models"
	"github.com/horndawg/launchpad/internal/store"
)

// Order sources, used as the metrics label.
const (
	SourceWeb    = "web"
	SourceImport = "import"
)

// Length limits follow the column sizes in the orders table.
type ReservationInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,max=255"`
	Zipcode  string `json:"zipcode" validate:"required,max=20"`
	Product  string `json:"product" validate:"required,max=100"`
	Quantity string `json:"quantity" validate:"required,max=50"`
}

func (in *ReservationInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Zipcode = strings.TrimSpace(in.Zipcode)
	in.Product = strings.TrimSpace(in.Product)
	in.Quantity = strings.TrimSpace(in.Quantity)
}

type ContactInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,max=255"`
	Subject string `json:"subject" validate:"required,max=500"`
	Message string `json:"message" validate:"required,max=10000"`
}

func (in *ContactInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
}

type PriceSource interface {
	UnitPrice(ctx context.Context) (decimal.Decimal, error)
}

type EmailEnqueuer interface {
	Enqueue(ctx context.Context, orderID int64, recipient, subject, body string) (*models.EmailJob, error)
}

type Service struct {
	orders   store.OrderStore
	contacts store.ContactMessageStore
	prices   PriceSource
	emails   EmailEnqueuer
}

func NewService(orders store.OrderStore, contacts store.ContactMessageStore, prices PriceSource, emails EmailEnqueuer) *Service {
	return &Service{
		orders:   orders,
		contacts: contacts,
		prices:   prices,
		emails:   emails,
	}
}

func (s *Service) SubmitReservation(ctx context.Context, in ReservationInput) (*models.Order, error) {
	return s.PlaceOrder(ctx, in, SourceWeb)
}

// PlaceOrder validates in, prices it at the current unit price, stores the
// order and queues the confirmation email. A failure to queue the email is
// logged and does not fail the order.
func (s *Service) PlaceOrder(ctx context.Context, in ReservationInput, source string) (*models.Order, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if _, err := catalog.ParseMultiplier(in.Quantity); err != nil {
		return nil, &ValidationError{Fields: []string{"quantity"}}
	}

	price, err := s.prices.UnitPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("load unit price: %w", err)
	}
	total, err := catalog.Total(price, in.Quantity)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.CreateOrder(ctx, models.OrderCreateParams{
		Name:       in.Name,
		Email:      in.Email,
		Zipcode:    in.Zipcode,
		Product:    in.Product,
		Quantity:   in.Quantity,
		TotalPrice: total,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	metrics.ReservationsTotal.WithLabelValues(source).Inc()

	if _, err := s.emails.Enqueue(ctx, order.ID, order.Email, mail.OrderConfirmationSubject, mail.OrderConfirmationBody(order)); err != nil {
		metrics.EmailEnqueueErrorsTotal.Inc()
		slog.ErrorContext(ctx, "queue confirmation email failed", "order_id", order.ID, "error", err)
	}

	slog.InfoContext(ctx, "reservation created",
		"order_id", order.ID,
		"product", order.Product,
		"quantity", order.Quantity,
		"source", source,
	)
	return order, nil
}

func (s *Service) SubmitContact(ctx context.Context, in ContactInput) (*models.ContactMessage, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return nil, err
	}

	msg, err := s.contacts.CreateContactMessage(ctx, models.ContactMessageCreateParams{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	metrics.ContactMessagesTotal.Inc()

	slog.InfoContext(ctx, "contact message received", "contact_id", msg.ID)
	return msg, nil
}
