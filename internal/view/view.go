package view

import (
	"context"

	"github.com/zhouzirui/emotion-chat/internal/model/chat"
	"github.com/zhouzirui/emotion-chat/internal/model/user"
	"github.com/zhouzirui/emotion-chat/internal/service/backend"
)

// Backend is the slice of the API client the views depend on.
type Backend interface {
	TestConnection(ctx context.Context) bool
	AnalyzeEmotion(ctx context.Context, text string) (chat.EmotionResult, error)
	RegisterUser(ctx context.Context, nickname string) (user.User, error)
	LoginUser(ctx context.Context, nickname string) (user.User, error)
	CheckNicknameAvailability(ctx context.Context, nickname string) (backend.Availability, error)
}
