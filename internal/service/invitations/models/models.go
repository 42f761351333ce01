package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модели

// ValidateCodeRequest запрос на проверку кода
type ValidateCodeRequest struct {
	Code string `json:"code"`
}

// RedeemCodeRequest запрос на активацию кода администратором
type RedeemCodeRequest struct {
	Code string `json:"code"`
}

// IssueCodeRequest запрос на выпуск кода для площадки
type IssueCodeRequest struct {
	VenueID   int64  `json:"venueId"`
	VenueName string `json:"venueName"`
}

// TransferVenueRequest запрос на передачу площадки другому администратору
type TransferVenueRequest struct {
	NewAdminID int64  `json:"newAdminId"`
	Detail     string `json:"detail,omitempty"`
}

// Response модели

// ValidationOutcome результат проверки кода
// Reason содержит вид ошибки при Success=false и не сериализуется
type ValidationOutcome struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	VenueID   int64  `json:"venueId,omitempty"`
	VenueName string `json:"venueName,omitempty"`
	Reason    error  `json:"-"`
}

// InvitationEventResponse событие журнала кода
type InvitationEventResponse struct {
	ID              int64   `json:"id"`
	VenueID         int64   `json:"venueId"`
	VenueName       string  `json:"venueName"`
	Code            string  `json:"code"`
	IssuedBy        int64   `json:"issuedBy"`
	Action          string  `json:"action"`
	PreviousAdminID *int64  `json:"previousAdminId,omitempty"`
	NewAdminID      *int64  `json:"newAdminId,omitempty"`
	ExpiresAt       *string `json:"expiresAt,omitempty"` // ISO 8601 format
	Detail          *string `json:"detail,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// InvitationHistoryResponse история кода
type InvitationHistoryResponse struct {
	Code   string                    `json:"code"`
	Events []InvitationEventResponse `json:"events"`
}

// Методы конвертации

// FromDomainEvent конвертирует domain модель в DTO
func FromDomainEvent(e *domain.InvitationEvent) *InvitationEventResponse {
	if e == nil {
		return nil
	}

	resp := &InvitationEventResponse{
		ID:              e.ID,
		VenueID:         e.VenueID,
		VenueName:       e.VenueName,
		Code:            e.Code,
		IssuedBy:        e.IssuedBy,
		Action:          string(e.Action),
		PreviousAdminID: e.PreviousAdminID,
		NewAdminID:      e.NewAdminID,
		Detail:          e.Detail,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
	}

	if e.ExpiresAt != nil {
		expiresStr := e.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &expiresStr
	}

	return resp
}

// FromDomainHistory конвертирует журнал кода в DTO
func FromDomainHistory(code string, events []*domain.InvitationEvent) *InvitationHistoryResponse {
	resp := &InvitationHistoryResponse{
		Code:   code,
		Events: make([]InvitationEventResponse, 0, len(events)),
	}
	for _, e := range events {
		if dto := FromDomainEvent(e); dto != nil {
			resp.Events = append(resp.Events, *dto)
		}
	}
	return resp
}
