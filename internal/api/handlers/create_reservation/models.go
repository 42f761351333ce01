package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	VenueID       int64   `json:"venueId"`
	VenueName     string  `json:"venueName"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Date          string  `json:"date"`              // "2025-10-15"
	StartTime     string  `json:"startTime"`         // "10:00"
	EndTime       *string `json:"endTime,omitempty"` // "11:00"
	Price         float64 `json:"price"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64   `json:"id"`
	VenueID       int64   `json:"venueId"`
	VenueName     string  `json:"venueName"`
	CustomerID    int64   `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Price         float64 `json:"price"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Клиентом бронирования всегда считается автор запроса
func (r *CreateReservationRequest) ToUseCaseRequest(customerID int64) (*createReservation.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	var endTime *types.TimeString
	if r.EndTime != nil {
		parsed, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		endTime = &parsed
	}

	return &createReservation.Request{
		VenueID:       r.VenueID,
		VenueName:     r.VenueName,
		CustomerID:    customerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Date:          r.Date,
		StartTime:     startTime,
		EndTime:       endTime,
		Price:         r.Price,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		VenueID:       resp.VenueID,
		VenueName:     resp.VenueName,
		CustomerID:    resp.CustomerID,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		Date:          resp.Date,
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Price:         resp.Price,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
