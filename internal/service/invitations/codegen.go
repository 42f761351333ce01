package invitations

import (
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// UUIDCodeGenerator берёт первые символы случайного UUID в верхнем регистре
func UUIDCodeGenerator() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:domain.GeneratedCodeLength])
}
