package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/horndawg/launchpad/internal/models"
	"github.com/horndawg/launchpad/internal/reservation"
)

const maxIntakeBody = 64 << 10

type Intake interface {
	SubmitReservation(ctx context.Context, in reservation.ReservationInput) (*models.Order, error)
	SubmitContact(ctx context.Context, in reservation.ContactInput) (*models.ContactMessage, error)
}

// APIHandler serves the public reservation and contact endpoints. Both accept
// a JSON body or an urlencoded form.
type APIHandler struct {
	intake Intake
}

func NewAPIHandler(intake Intake) *APIHandler {
	return &APIHandler{intake: intake}
}

// apiResponse is the envelope for intake responses.
type apiResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	OrderID   int64  `json:"orderId,omitempty"`
	Reference string `json:"reference,omitempty"`
}

func (h *APIHandler) HandleReservation(w http.ResponseWriter, r *http.Request) {
	var in reservation.ReservationInput
	if !decodeIntake(w, r, &in, func() {
		in = reservation.ReservationInput{
			Name:     r.PostFormValue("name"),
			Email:    r.PostFormValue("email"),
			Zipcode:  r.PostFormValue("zipcode"),
			Product:  r.PostFormValue("product"),
			Quantity: r.PostFormValue("quantity"),
		}
	}) {
		return
	}

	order, err := h.intake.SubmitReservation(r.Context(), in)
	if err != nil {
		writeIntakeError(w, "reservation", err)
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{
		Success:   true,
		Message:   "Reservation submitted successfully",
		OrderID:   order.ID,
		Reference: order.PublicID.String(),
	})
}

func (h *APIHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	var in reservation.ContactInput
	if !decodeIntake(w, r, &in, func() {
		in = reservation.ContactInput{
			Name:    r.PostFormValue("name"),
			Email:   r.PostFormValue("email"),
			Subject: r.PostFormValue("subject"),
			Message: r.PostFormValue("message"),
		}
	}) {
		return
	}

	if _, err := h.intake.SubmitContact(r.Context(), in); err != nil {
		writeIntakeError(w, "contact", err)
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Message sent successfully"})
}

// decodeIntake fills dst from a JSON body, or calls fromForm after parsing a
// form body. It writes a 400 and returns false on malformed input.
func decodeIntake(w http.ResponseWriter, r *http.Request, dst any, fromForm func()) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxIntakeBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			writeJSON(w, http.StatusBadRequest, apiResponse{Message: "Invalid request body"})
			return false
		}
		return true
	}

	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: "Invalid form data"})
		return false
	}
	fromForm()
	return true
}

func writeIntakeError(w http.ResponseWriter, kind string, err error) {
	if errors.Is(err, reservation.ErrValidation) {
		msg := "All fields are required"
		var verr *reservation.ValidationError
		if errors.As(err, &verr) && !verr.Missing {
			msg = "Some fields are invalid or too long"
		}
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: msg})
		return
	}
	slog.Error("intake submission failed", "kind", kind, "error", err)
	writeJSON(w, http.StatusInternalServerError, apiResponse{Message: "Server error. Please try again."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}
