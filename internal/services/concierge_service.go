package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/llm"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultSessionTitle = "New conversation"
	maxTitleLength      = 60
	// chatHistoryLimit bounds how many turns are forwarded to the model.
	chatHistoryLimit = 20
)

type ConciergeService struct {
	repo      models.ConciergeRepo
	completer llm.Completer
	logger    *slog.Logger
}

// NewConciergeService accepts a nil repo; session routes then answer with
// ErrUnavailable while stateless chat keeps working.
func NewConciergeService(repo models.ConciergeRepo, completer llm.Completer, logger *slog.Logger) *ConciergeService {
	if completer == nil {
		completer = llm.Canned{}
	}
	return &ConciergeService{repo: repo, completer: completer, logger: logger}
}

func (cs *ConciergeService) ListSessions(ctx context.Context, userID string) ([]dto.ConciergeSessionResponse, error) {
	if cs.repo == nil {
		return nil, models.ErrUnavailable
	}
	sessions, err := cs.repo.ListSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConciergeSessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.ToConciergeSessionResponse(s, false))
	}
	return out, nil
}

func (cs *ConciergeService) CreateSession(ctx context.Context, userID string, req dto.CreateSessionRequest) (*dto.ConciergeSessionResponse, error) {
	if cs.repo == nil {
		return nil, models.ErrUnavailable
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultSessionTitle
	}
	now := timeNow()
	session, err := cs.repo.CreateSession(ctx, &models.ConciergeSession{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     truncate(title, maxTitleLength),
		Status:    models.SessionActive,
		Messages:  []models.ConciergeMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	res := dto.ToConciergeSessionResponse(session, true)
	return &res, nil
}

func (cs *ConciergeService) GetSession(ctx context.Context, userID, id string) (*dto.ConciergeSessionResponse, error) {
	session, err := cs.ownedSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	res := dto.ToConciergeSessionResponse(session, true)
	return &res, nil
}

func (cs *ConciergeService) UpdateSession(ctx context.Context, userID, id string, req dto.UpdateSessionRequest) (*dto.ConciergeSessionResponse, error) {
	session, err := cs.ownedSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{"updated_at": timeNow()}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, models.Invalid("title cannot be empty")
		}
		fields["title"] = truncate(title, maxTitleLength)
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if status != models.SessionActive && status != models.SessionArchived {
			return nil, models.Invalid("status must be %q or %q", models.SessionActive, models.SessionArchived)
		}
		fields["status"] = status
	}
	updated, err := cs.repo.UpdateSession(ctx, session.ID, fields)
	if err != nil {
		return nil, err
	}
	res := dto.ToConciergeSessionResponse(updated, true)
	return &res, nil
}

func (cs *ConciergeService) ListMessages(ctx context.Context, userID, id string) ([]dto.ConciergeMessageResponse, error) {
	session, err := cs.ownedSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return dto.ToConciergeMessages(session.Messages), nil
}

// AddMessage stores a message and, when asked, the assistant's answer to the
// whole conversation so far. The first user message names an untitled session.
func (cs *ConciergeService) AddMessage(ctx context.Context, userID, id string, req dto.AddMessageRequest) (*dto.ConciergeSessionResponse, error) {
	session, err := cs.ownedSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "user"
	}
	if !models.MessageRoles[role] {
		return nil, models.Invalid("unknown role %q", role)
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, models.Invalid("content is required")
	}

	msgs := []models.ConciergeMessage{{
		ID:        primitive.NewObjectID(),
		Role:      role,
		Content:   content,
		CreatedAt: timeNow(),
	}}

	if req.GenerateReply {
		history := make([]llm.Message, 0, len(session.Messages)+1)
		for _, m := range session.Messages {
			history = append(history, llm.Message{Role: m.Role, Content: m.Content})
		}
		history = append(history, llm.Message{Role: role, Content: content})
		msgs = append(msgs, models.ConciergeMessage{
			ID:        primitive.NewObjectID(),
			Role:      "assistant",
			Content:   cs.reply(ctx, history),
			CreatedAt: timeNow(),
		})
	}

	updated, err := cs.repo.AppendMessages(ctx, session.ID, msgs...)
	if err != nil {
		return nil, err
	}

	if role == "user" && session.Title == DefaultSessionTitle && session.MessageCount == 0 {
		renamed, err := cs.repo.UpdateSession(ctx, session.ID, map[string]interface{}{
			"title": truncate(content, maxTitleLength),
		})
		if err != nil {
			cs.logger.Warn("Failed to title concierge session", "session_id", session.ID.Hex(), "error", err)
		} else {
			updated = renamed
		}
	}

	res := dto.ToConciergeSessionResponse(updated, true)
	return &res, nil
}

// Chat answers a stateless conversation sent by the client.
func (cs *ConciergeService) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, models.Invalid("messages are required")
	}
	history := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := strings.TrimSpace(m.Role)
		if !models.MessageRoles[role] {
			return nil, models.Invalid("unknown role %q", m.Role)
		}
		history = append(history, llm.Message{Role: role, Content: strings.TrimSpace(m.Content)})
	}
	reply := cs.reply(ctx, history)
	return &dto.ChatResponse{
		Reply:   reply,
		Message: dto.ChatMessage{Role: "assistant", Content: reply},
	}, nil
}

// reply falls back to canned answers when the model is unreachable.
func (cs *ConciergeService) reply(ctx context.Context, history []llm.Message) string {
	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}
	answer, err := cs.completer.Complete(ctx, history)
	if err == nil && answer != "" {
		return answer
	}
	if err != nil {
		cs.logger.Error("Concierge completion failed", "error", err)
	}
	answer, _ = llm.Canned{}.Complete(ctx, history)
	return answer
}

func (cs *ConciergeService) ownedSession(ctx context.Context, userID, id string) (*models.ConciergeSession, error) {
	if cs.repo == nil {
		return nil, models.ErrUnavailable
	}
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, models.Invalid("session id must be a valid id")
	}
	session, err := cs.repo.GetSession(ctx, oid)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("concierge session %s: %w", id, models.ErrNotFound)
	}
	return session, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "…"
}
