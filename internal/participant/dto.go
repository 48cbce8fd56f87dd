package participant

// CreateParticipantRequest represents the request body for adding a participant
type CreateParticipantRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Color     *string `json:"color,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// UpdateParticipantRequest represents the request body for updating a participant
type UpdateParticipantRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Color     *string `json:"color,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// ParticipantResponse represents the response for a single participant
type ParticipantResponse struct {
	ID        string  `json:"id"`
	GroupID   string  `json:"group_id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts a Participant model to a ParticipantResponse DTO
func (p *Participant) ToResponse() *ParticipantResponse {
	return &ParticipantResponse{
		ID:        p.ID.String(),
		GroupID:   p.GroupID.String(),
		Name:      p.Name,
		Color:     p.Color,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
