package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/furnifind/backend/pkg/logger"
)

// ContactMessage is a visitor's message from the contact form
type ContactMessage struct {
	Name    string `json:"name" binding:"required,max=120"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,max=5000"`
}

// ContactReceipt confirms a simulated submission
type ContactReceipt struct {
	Reference   string    `json:"reference"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ContactService simulates sending a contact message. Nothing leaves the process.
type ContactService struct {
	delay time.Duration
}

// NewContactService creates a contact service with the given artificial delay
func NewContactService(delay time.Duration) *ContactService {
	return &ContactService{delay: delay}
}

// Submit waits out the artificial delay and acknowledges the message
func (s *ContactService) Submit(ctx context.Context, msg ContactMessage) (*ContactReceipt, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	receipt := &ContactReceipt{
		Reference:   uuid.NewString(),
		Message:     "Message sent successfully!",
		SubmittedAt: time.Now().UTC(),
	}

	logger.Info(ctx).
		Str("reference", receipt.Reference).
		Int("message_length", len(msg.Message)).
		Msg("contact message received")

	return receipt, nil
}
