package contexts

import "time"

type IssueTokenRequestDTO struct {
	Kind ContextKind `json:"kind"   binding:"required"`
	// page URL for content scripts; ignored for background
	Origin string `json:"origin"`
}

type IssueTokenResponseDTO struct {
	Token     string      `json:"token"`
	Kind      ContextKind `json:"kind"`
	Origin    string      `json:"origin"`
	ExpiresAt time.Time   `json:"expiresAt"`
}
