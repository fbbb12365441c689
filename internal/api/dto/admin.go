package dto

import "time"

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UpdateSettingsResponse struct {
	Success  bool              `json:"success"`
	Settings map[string]string `json:"settings"`
}
