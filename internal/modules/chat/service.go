// README: Chat service: canned rules with a quota-guarded LLM upgrade path.
package chat

import (
	"context"

	"go.uber.org/zap"

	"carzz/internal/ai"
)

// Quota guards LLM usage per user; satisfied by QuotaStore. Optional.
type Quota interface {
	UseToken(ctx context.Context, userID string) error
	EnsureUser(ctx context.Context, userID string) error
}

type Service struct {
	provider ai.LLMProvider // nil: canned replies only
	quota    Quota          // nil: no per-user limit
	log      *zap.Logger
}

func NewService(provider ai.LLMProvider, quota Quota, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, quota: quota, log: log}
}

// Reply answers a support message. The LLM is tried first when available and
// the caller identifies themselves; any failure degrades to the canned rules,
// so this method never errors on provider problems.
func (s *Service) Reply(ctx context.Context, userID, message string) string {
	if s.provider == nil {
		return cannedReply(message)
	}
	if s.quota != nil {
		if userID == "" {
			// Anonymous visitors don't get metered LLM calls.
			return cannedReply(message)
		}
		if err := s.useToken(ctx, userID); err != nil {
			if err != ErrInsufficientTokens {
				s.log.Warn("chat quota check failed", zap.Error(err))
			}
			return cannedReply(message)
		}
	}

	reply, err := s.provider.Reply(ctx, message)
	if err != nil {
		s.log.Warn("llm reply failed, using canned response", zap.Error(err))
		return cannedReply(message)
	}
	return reply
}

// useToken deducts one token, initialising the user's row on first contact.
func (s *Service) useToken(ctx context.Context, userID string) error {
	err := s.quota.UseToken(ctx, userID)
	if err != ErrInsufficientTokens {
		return err
	}
	if initErr := s.quota.EnsureUser(ctx, userID); initErr != nil {
		return initErr
	}
	return s.quota.UseToken(ctx, userID)
}
