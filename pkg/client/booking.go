package client

import (
	"context"
	"fmt"
	"net/http"

	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/model"
)

// BookingClient calls the booking API. Used by the terminal wizard to
// submit an accepted draft.
type BookingClient struct {
	http *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		http: NewHttpClient(baseURL),
	}
}

type bookingResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    *model.Booking         `json:"data"`
	Errors  []apperrors.FieldError `json:"errors"`
}

// Submit posts the draft as a booking request. Validation rejections
// come back as an AppError carrying the server's field errors.
func (c *BookingClient) Submit(ctx context.Context, draft model.BookingDraft) (*model.Booking, error) {
	resp, err := c.http.POST(ctx, "/api/v1/bookings", draft)
	if err != nil {
		return nil, fmt.Errorf("failed to submit booking: %w", err)
	}

	var body bookingResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("failed to decode booking response: %w", err)
	}

	if !body.Success {
		switch {
		case len(body.Errors) > 0:
			return nil, apperrors.Validation(body.Message, body.Errors)
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, apperrors.Unavailable("Booking service")
		default:
			return nil, apperrors.Internal(body.Message, nil)
		}
	}

	return body.Data, nil
}
