package service

import (
	"fmt"
	"strings"

	"driver-auth/internal/auth-service/core/domain/dto"
	"driver-auth/internal/auth-service/core/myerrors"
)

func validateRegistration(regReq dto.DriverRegistrationRequest) error {
	return validateRequired(
		field{"nama", regReq.Nama},
		field{"email", regReq.Email},
		field{"no_hp", regReq.NoHP},
		field{"password", regReq.Password},
	)
}

func validateLogin(authReq dto.DriverAuthRequest) error {
	return validateRequired(
		field{"email", authReq.Email},
		field{"password", authReq.Password},
	)
}

type field struct {
	name  string
	value string
}

func validateRequired(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", myerrors.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// optional turns blank optional fields into NULLs.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
