package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec

	ReservationTransitions *prometheus.CounterVec
	SlotToggles            *prometheus.CounterVec
	InvitationValidations  *prometheus.CounterVec
	PlanChanges            *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики в указанном реестре (используется в тестах)
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Общее количество HTTP запросов",
				ConstLabels: labels,
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "Время обработки HTTP запросов в секундах",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: labels,
			},
			[]string{"method", "route"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Время выполнения запросов к БД в секундах",
				Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
				ConstLabels: labels,
			},
			[]string{"operation", "status"},
		),
		DBConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_connections",
				Help:        "Состояние пула соединений с БД",
				ConstLabels: labels,
			},
			[]string{"state"}, // open, in_use, idle
		),
		ReservationTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "reservation_transitions_total",
				Help:        "Переходы статусов бронирований",
				ConstLabels: labels,
			},
			[]string{"from", "to", "result"},
		),
		SlotToggles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "slot_toggles_total",
				Help:        "Ручные блокировки и разблокировки слотов администраторами",
				ConstLabels: labels,
			},
			[]string{"action", "result"},
		),
		InvitationValidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "invitation_validations_total",
				Help:        "Проверки кодов приглашения администраторов",
				ConstLabels: labels,
			},
			[]string{"outcome"},
		),
		PlanChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "subscription_plan_changes_total",
				Help:        "Смены тарифных планов администраторов",
				ConstLabels: labels,
			},
			[]string{"plan", "result"},
		),
	}
}

// ObserveTransition учитывает попытку перехода статуса бронирования
func (m *Metrics) ObserveTransition(from, to, result string) {
	m.ReservationTransitions.WithLabelValues(from, to, result).Inc()
}

// ObserveSlotToggle учитывает блокировку/разблокировку слота
func (m *Metrics) ObserveSlotToggle(action, result string) {
	m.SlotToggles.WithLabelValues(action, result).Inc()
}

// ObserveInvitationValidation учитывает результат проверки кода
func (m *Metrics) ObserveInvitationValidation(outcome string) {
	m.InvitationValidations.WithLabelValues(outcome).Inc()
}

// ObservePlanChange учитывает смену тарифа
func (m *Metrics) ObservePlanChange(plan, result string) {
	m.PlanChanges.WithLabelValues(plan, result).Inc()
}

// Nop заглушка для запуска без метрик
type Nop struct{}

func (Nop) ObserveTransition(string, string, string) {}
func (Nop) ObserveSlotToggle(string, string)         {}
func (Nop) ObserveInvitationValidation(string)       {}
func (Nop) ObservePlanChange(string, string)         {}
