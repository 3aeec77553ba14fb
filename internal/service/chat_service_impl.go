package service

import (
	"context"
	"slices"
	"strings"

	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/eschool"
)

const (
	threadPageSize  = 20
	messagePageSize = 25
)

type chatService struct {
	api      eschool.API
	session  *Session
	observer UseCaseObserver
}

func NewChatService(api eschool.API, session *Session, observers ...UseCaseObserver) ChatService {
	return &chatService{api: api, session: session, observer: useCaseObserverOrNoop(observers)}
}

func (s *chatService) Threads(ctx context.Context, newOnly bool) (threads []domain.Thread, err error) {
	done := track(ctx, s.observer, "threads", map[string]any{"new_only": newOnly})
	defer func() { done(err) }()

	return s.api.Threads(ctx, newOnly, 0, threadPageSize)
}

func (s *chatService) Messages(ctx context.Context, threadID int64) (msgs []domain.Message, err error) {
	done := track(ctx, s.observer, "messages", map[string]any{"thread_id": threadID})
	defer func() { done(err) }()

	if msgs, err = s.api.Messages(ctx, threadID, 0, messagePageSize); err != nil {
		return nil, err
	}
	msgs = slices.Clone(msgs)
	slices.Reverse(msgs)

	// The portal does not always flag own messages; fall back to matching
	// the caller's id or name.
	if st := s.session.Get(); st != nil && st.Profile != nil {
		me := st.Profile.FullName()
		for i := range msgs {
			if msgs[i].SenderFio == me || (st.User.PrsID != 0 && msgs[i].SenderID == st.User.PrsID) {
				msgs[i].IsOwner = true
			}
		}
	}
	return msgs, nil
}

func (s *chatService) Send(ctx context.Context, threadID int64, text string) (err error) {
	done := track(ctx, s.observer, "send-message", map[string]any{"thread_id": threadID})
	defer func() { done(err) }()

	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	return s.api.SendMessage(ctx, threadID, text)
}

func (s *chatService) OpenWith(ctx context.Context, prsID int64) (threadID int64, err error) {
	done := track(ctx, s.observer, "open-thread", map[string]any{"prs_id": prsID})
	defer func() { done(err) }()

	return s.api.SaveThread(ctx, prsID)
}
