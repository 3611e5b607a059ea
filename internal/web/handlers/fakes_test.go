package handlers

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/horndawg/launchpad/internal/auth"
	"github.com/horndawg/launchpad/internal/backoffice"
	"github.com/horndawg/launchpad/internal/models"
	"github.com/horndawg/launchpad/internal/reservation"
	"github.com/horndawg/launchpad/internal/web/render"
	"github.com/horndawg/launchpad/templates"
)

func newTestRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.NewRenderer(templates.FS)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	return r
}

// --- Intake ---

type fakeIntake struct {
	reservations []reservation.ReservationInput
	contacts     []reservation.ContactInput
	err          error
}

func (f *fakeIntake) SubmitReservation(_ context.Context, in reservation.ReservationInput) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	if in.Name == "" || in.Email == "" || in.Zipcode == "" || in.Product == "" || in.Quantity == "" {
		return nil, &reservation.ValidationError{Fields: []string{"email"}, Missing: true}
	}
	f.reservations = append(f.reservations, in)
	return &models.Order{
		ID:         int64(len(f.reservations)),
		PublicID:   uuid.MustParse("6f1c2d3e-4b5a-4c6d-8e9f-0a1b2c3d4e5f"),
		Name:       in.Name,
		TotalPrice: decimal.RequireFromString("24.99"),
	}, nil
}

func (f *fakeIntake) SubmitContact(_ context.Context, in reservation.ContactInput) (*models.ContactMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	if in.Message == "" {
		return nil, &reservation.ValidationError{Fields: []string{"message"}, Missing: true}
	}
	f.contacts = append(f.contacts, in)
	return &models.ContactMessage{ID: int64(len(f.contacts))}, nil
}

// --- Auth ---

type fakeAuth struct {
	sessions  map[string]*models.AdminUser
	loginErr  error
	loggedOut []string
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{sessions: map[string]*models.AdminUser{}}
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (*models.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if username != "admin" || password != "s3cret" {
		return nil, auth.ErrInvalidCredentials
	}
	token := "tok-" + username
	f.sessions[token] = &models.AdminUser{ID: 1, Username: username}
	return &models.Session{Token: token, UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeAuth) Logout(_ context.Context, token string) error {
	delete(f.sessions, token)
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

func (f *fakeAuth) ValidateSession(_ context.Context, token string) (*models.AdminUser, error) {
	u, ok := f.sessions[token]
	if !ok {
		return nil, auth.ErrInvalidSession
	}
	return u, nil
}

// --- Back-office ---

type fakeBackOffice struct {
	stats      *models.DashboardStats
	orders     *backoffice.OrderPage
	lastFilter backoffice.OrderFilter
	price      decimal.Decimal
	imported   []string
	importErr  error
	importRes  *backoffice.ImportResult
	contacts   *backoffice.ContactPage
	err        error
}

func newFakeBackOffice() *fakeBackOffice {
	return &fakeBackOffice{
		stats: &models.DashboardStats{
			Orders: models.OrderTotals{Count: 3, Revenue: decimal.RequireFromString("74.97")},
			Emails: models.EmailStats{Pending: 2, Sent: 1},
		},
		orders:    &backoffice.OrderPage{},
		price:     decimal.RequireFromString("24.99"),
		importRes: &backoffice.ImportResult{},
		contacts:  &backoffice.ContactPage{Page: 1},
	}
}

func (f *fakeBackOffice) Dashboard(context.Context) (*models.DashboardStats, error) {
	return f.stats, f.err
}

func (f *fakeBackOffice) ListOrders(_ context.Context, filter backoffice.OrderFilter) (*backoffice.OrderPage, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	page := *f.orders
	page.Filter = filter
	return &page, nil
}

func (f *fakeBackOffice) ProductBreakdown(context.Context) (*backoffice.Breakdown, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &backoffice.Breakdown{UnitPrice: f.price}, nil
}

func (f *fakeBackOffice) UnitPrice(context.Context) (decimal.Decimal, error) {
	return f.price, f.err
}

func (f *fakeBackOffice) UpdatePrice(_ context.Context, raw string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(raw)
	if err != nil || !p.IsPositive() {
		return decimal.Zero, backoffice.ErrInvalidPrice
	}
	f.price = p
	return p, nil
}

func (f *fakeBackOffice) BulkImport(_ context.Context, filename string, r io.Reader) (*backoffice.ImportResult, error) {
	if f.importErr != nil {
		return nil, f.importErr
	}
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	f.imported = append(f.imported, filename)
	return f.importRes, nil
}

func (f *fakeBackOffice) ListContactMessages(_ context.Context, page int) (*backoffice.ContactPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := *f.contacts
	p.Page = page
	return &p, nil
}

var errStoreDown = errors.New("connection refused")
