package services

import (
	"context"
	"errors"
	"testing"

	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/llm"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply string
	err   error
	seen  []llm.Message
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.seen = messages
	return f.reply, f.err
}

func TestConciergeService_SessionFlow(t *testing.T) {
	freezeTime(t, carnivalMorning)
	repo := models.NewMemoryRepo()
	completer := &fakeCompleter{reply: "The parade starts at 10am."}
	svc := NewConciergeService(repo, completer, discardLogger())
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "user-1", dto.CreateSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionTitle, session.Title)
	assert.Equal(t, models.SessionActive, session.Status)

	updated, err := svc.AddMessage(ctx, "user-1", session.ID, dto.AddMessageRequest{
		Content:       "When does the parade start?",
		GenerateReply: true,
	})
	require.NoError(t, err)
	require.Len(t, updated.Messages, 2)
	assert.Equal(t, "user", updated.Messages[0].Role)
	assert.Equal(t, "assistant", updated.Messages[1].Role)
	assert.Equal(t, "The parade starts at 10am.", updated.Messages[1].Content)
	assert.Equal(t, 2, updated.MessageCount)
	assert.Equal(t, "When does the parade start?", updated.Title)
	require.Len(t, completer.seen, 1)

	list, err := svc.ListSessions(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Messages)
	assert.Equal(t, 2, list[0].MessageCount)

	archived, err := svc.UpdateSession(ctx, "user-1", session.ID, dto.UpdateSessionRequest{Status: ptr(models.SessionArchived)})
	require.NoError(t, err)
	assert.Equal(t, models.SessionArchived, archived.Status)

	_, err = svc.UpdateSession(ctx, "user-1", session.ID, dto.UpdateSessionRequest{Status: ptr("deleted")})
	assert.True(t, errors.Is(err, models.ErrValidation))

	msgs, err := svc.ListMessages(ctx, "user-1", session.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestConciergeService_OtherUsersSessionsAreHidden(t *testing.T) {
	repo := models.NewMemoryRepo()
	svc := NewConciergeService(repo, llm.Canned{}, discardLogger())
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "owner", dto.CreateSessionRequest{Title: "Hotels"})
	require.NoError(t, err)

	_, err = svc.GetSession(ctx, "intruder", session.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	_, err = svc.AddMessage(ctx, "intruder", session.ID, dto.AddMessageRequest{Content: "hi"})
	assert.True(t, errors.Is(err, models.ErrNotFound))
	_, err = svc.GetSession(ctx, "owner", "zzz")
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestConciergeService_FallsBackToCannedAnswers(t *testing.T) {
	repo := models.NewMemoryRepo()
	svc := NewConciergeService(repo, &fakeCompleter{err: models.ErrUpstream}, discardLogger())

	res, err := svc.Chat(context.Background(), dto.ChatRequest{Messages: []dto.ChatMessage{
		{Role: "user", Content: "How do I vote for a band?"},
	}})
	require.NoError(t, err)
	assert.Contains(t, res.Reply, "vote")
	assert.Equal(t, "assistant", res.Message.Role)
}

func TestConciergeService_ChatTrimsHistory(t *testing.T) {
	completer := &fakeCompleter{reply: "ok"}
	svc := NewConciergeService(nil, completer, discardLogger())

	req := dto.ChatRequest{}
	for i := 0; i < chatHistoryLimit+10; i++ {
		req.Messages = append(req.Messages, dto.ChatMessage{Role: "user", Content: "hello"})
	}
	res, err := svc.Chat(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Reply)
	assert.Len(t, completer.seen, chatHistoryLimit)

	_, err = svc.Chat(context.Background(), dto.ChatRequest{Messages: []dto.ChatMessage{{Role: "robot", Content: "x"}}})
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestConciergeService_WithoutStore(t *testing.T) {
	svc := NewConciergeService(nil, nil, discardLogger())

	_, err := svc.ListSessions(context.Background(), "u")
	assert.True(t, errors.Is(err, models.ErrUnavailable))
	_, err = svc.CreateSession(context.Background(), "u", dto.CreateSessionRequest{})
	assert.True(t, errors.Is(err, models.ErrUnavailable))
}
