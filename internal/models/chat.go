package models

// Conversation is a 1:1 thread between two users. ParticipantA/B are stored
// in creation order; lookups check both orders.
type Conversation struct {
	BaseModel
	ParticipantAID string `gorm:"not null;index;uniqueIndex:idx_conversation_pair" json:"participant_a_id"`
	ParticipantA   *User  `gorm:"foreignKey:ParticipantAID;constraint:OnDelete:CASCADE" json:"participant_a,omitempty"`
	ParticipantBID string `gorm:"not null;index;uniqueIndex:idx_conversation_pair" json:"participant_b_id"`
	ParticipantB   *User  `gorm:"foreignKey:ParticipantBID;constraint:OnDelete:CASCADE" json:"participant_b,omitempty"`

	Messages []ChatMessage `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

// HasParticipant reports whether userID belongs to the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.ParticipantAID == userID || c.ParticipantBID == userID
}

// OtherParticipant returns the peer of userID.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.ParticipantAID == userID {
		return c.ParticipantBID
	}
	return c.ParticipantAID
}

type ChatMessage struct {
	BaseModel
	ConversationID string `gorm:"not null;index" json:"conversation_id"`
	SenderID       string `gorm:"not null;index" json:"sender_id"`
	Sender         *User  `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	Content        string `gorm:"not null" json:"content"`
	IsRead         bool   `gorm:"default:false" json:"is_read"`
}
