package dto

import (
	"time"

	"driver-auth/internal/auth-service/core/domain/models"
)

type DriverRegistrationRequest struct {
	Nama      string  `json:"nama"`
	Email     string  `json:"email"`
	NoHP      string  `json:"no_hp"`
	Password  string  `json:"password"`
	Alamat    *string `json:"alamat"`
	Kendaraan *string `json:"kendaraan"`
}

type DriverAuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	Driver  models.Profile `json:"driver"`
}

type ProfileResponse struct {
	Driver models.Profile `json:"driver"`
}

// DriverRegisteredEvent is published after a driver row is created.
type DriverRegisteredEvent struct {
	DriverID     int64     `json:"driver_id"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}
