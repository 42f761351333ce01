package domain

// Daily catalog defaults
const (
	DefaultCatalogStartHour = 8
	DefaultCatalogEndHour   = 22
	SlotDurationMinutes     = 60
)

// Subscription defaults
const (
	DefaultSubscriptionPeriodDays = 30
	FreePlanID                    = "free"
)

// Business validation constants
const (
	MaxCustomerNameLength  = 200
	MaxCustomerPhoneLength = 32
	MaxCancelReasonLength  = 500
	MaxDetailLength        = 500
	MaxPaymentRefLength    = 512
	GeneratedCodeLength    = 8
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы записей, занимающих слот
// Отменённые записи слот не занимают
var OccupyingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
