package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модели

// ChangePlanRequest запрос на смену тарифа
type ChangePlanRequest struct {
	PlanID string `json:"planId"`
}

// CancelSubscriptionRequest запрос на отмену подписки
type CancelSubscriptionRequest struct {
	Reason string `json:"reason"`
}

// Response модели

// PlanResponse ответ с данными тарифа
type PlanResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	CommissionRate float64  `json:"commissionRate"`
	Features       []string `json:"features"`
}

// PlanListResponse ответ со списком тарифов
type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// SubscriptionResponse ответ с данными подписки
type SubscriptionResponse struct {
	ID           int64   `json:"id"`
	AdminID      int64   `json:"adminId"`
	PlanID       string  `json:"planId"`
	Status       string  `json:"status"`
	StartedAt    string  `json:"startedAt"` // ISO 8601 format
	ExpiresAt    string  `json:"expiresAt"` // ISO 8601 format
	AutoRenew    bool    `json:"autoRenew"`
	CancelReason *string `json:"cancelReason,omitempty"`
	CancelledAt  *string `json:"cancelledAt,omitempty"`
}

// CurrentPlanResponse действующий тариф администратора
// Subscription пустой, если действует бесплатный тариф
type CurrentPlanResponse struct {
	Plan         PlanResponse          `json:"plan"`
	IsFree       bool                  `json:"isFree"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}

// Методы конвертации

// FromDomainPlan конвертирует domain модель в DTO
func FromDomainPlan(p *domain.Plan) PlanResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return PlanResponse{
		ID:             p.ID,
		Name:           p.Name,
		Price:          p.Price,
		CommissionRate: p.CommissionRate,
		Features:       features,
	}
}

// FromDomainPlanList конвертирует список тарифов в DTO
func FromDomainPlanList(plans []*domain.Plan) *PlanListResponse {
	resp := &PlanListResponse{Plans: make([]PlanResponse, 0, len(plans))}
	for _, p := range plans {
		if p != nil {
			resp.Plans = append(resp.Plans, FromDomainPlan(p))
		}
	}
	return resp
}

// FromDomainSubscription конвертирует domain модель в DTO
func FromDomainSubscription(s *domain.Subscription) *SubscriptionResponse {
	if s == nil {
		return nil
	}

	resp := &SubscriptionResponse{
		ID:           s.ID,
		AdminID:      s.AdminID,
		PlanID:       s.PlanID,
		Status:       string(s.Status),
		StartedAt:    s.StartedAt.Format(time.RFC3339),
		ExpiresAt:    s.ExpiresAt.Format(time.RFC3339),
		AutoRenew:    s.AutoRenew,
		CancelReason: s.CancelReason,
	}

	if s.CancelledAt != nil {
		cancelledStr := s.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}
