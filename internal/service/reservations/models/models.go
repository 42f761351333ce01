package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модели

// ListReservationsRequest запрос на получение бронирований площадки
type ListReservationsRequest struct {
	VenueID int64   `json:"venueId"`
	Date    *string `json:"date,omitempty"`   // YYYY-MM-DD (опционально)
	Status  *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID            int64   `json:"id"`
	VenueID       int64   `json:"venueId"`
	VenueName     string  `json:"venueName"`
	CustomerID    int64   `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Date          string  `json:"date"`      // "2025-10-15"
	StartTime     string  `json:"startTime"` // "10:00"
	EndTime       string  `json:"endTime,omitempty"`
	Price         float64 `json:"price"`
	Kind          string  `json:"kind"`
	Status        string  `json:"status"`
	Version       int64   `json:"version"`

	PaymentMethod   *string `json:"paymentMethod,omitempty"`
	PaymentProofRef *string `json:"paymentProofRef,omitempty"`

	// Допустимые следующие статусы, для кнопок в админке
	NextStatuses []string `json:"nextStatuses"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований и счётчиками по статусам
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Counts       map[string]int        `json:"counts"`
	Total        int                   `json:"total"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	next := domain.ValidTransitionsFrom(r.Status)
	if r.IsBlock() {
		next = nil
	}
	nextStatuses := make([]string, 0, len(next))
	for _, s := range next {
		nextStatuses = append(nextStatuses, string(s))
	}

	return &ReservationResponse{
		ID:              r.ID,
		VenueID:         r.VenueID,
		VenueName:       r.VenueName,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		Date:            r.Date,
		StartTime:       r.StartTime.String(),
		EndTime:         r.EndTime.String(),
		Price:           r.Price,
		Kind:            string(r.Kind),
		Status:          string(r.Status),
		Version:         r.Version,
		PaymentMethod:   r.PaymentMethod,
		PaymentProofRef: r.PaymentProofRef,
		NextStatuses:    nextStatuses,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список в DTO
// counts считаются по всему дню, а не только по отфильтрованной выборке
func FromDomainReservationList(filtered, all []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(filtered)),
		Counts:       make(map[string]int, 4),
		Total:        len(all),
	}

	for _, r := range filtered {
		if dto := FromDomainReservation(r); dto != nil {
			resp.Reservations = append(resp.Reservations, *dto)
		}
	}

	for _, status := range []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	} {
		resp.Counts[string(status)] = domain.CountByStatus(all, status)
	}

	return resp
}

// SlotResponse часовой слот площадки
type SlotResponse struct {
	Time     string `json:"time"`  // "10:00"
	State    string `json:"state"` // past | occupied | available
	Bookable bool   `json:"bookable"`
}

// FromDomainSlots конвертирует слоты в DTO с сохранением порядка каталога
func FromDomainSlots(slots []domain.Slot) []SlotResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{
			Time:     s.ClockTime.String(),
			State:    string(s.State),
			Bookable: s.IsBookable(),
		}
	}
	return out
}

// FromDomainReservations конвертирует список бронирований в DTO
func FromDomainReservations(xs []*domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(xs))
	for _, r := range xs {
		if dto := FromDomainReservation(r); dto != nil {
			out = append(out, *dto)
		}
	}
	return out
}
