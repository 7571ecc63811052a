package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	messageRepo "ehealth/database/repository/message"
	"ehealth/models"
)

type MessageRepo struct {
	mu   sync.RWMutex
	msgs []models.Message
}

func NewMessageRepo() *MessageRepo {
	return &MessageRepo{}
}

var _ messageRepo.MessageRepository = (*MessageRepo)(nil)

func (r *MessageRepo) Create(_ context.Context, msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.CreatedAt = time.Now()
	r.msgs = append(r.msgs, *msg)
	return nil
}

func isBetween(m models.Message, a, b string) bool {
	return (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a)
}

func (r *MessageRepo) Conversation(_ context.Context, a, b string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Message{}
	for _, m := range r.msgs {
		if isBetween(m, a, b) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MessageRepo) PartnerIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{}
	partners := []string{}
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			partners = append(partners, id)
		}
	}
	for _, m := range r.msgs {
		if m.SenderID == userID {
			add(m.RecipientID)
		}
	}
	for _, m := range r.msgs {
		if m.RecipientID == userID {
			add(m.SenderID)
		}
	}
	return partners, nil
}

func (r *MessageRepo) LastBetween(ctx context.Context, a, b string) (*models.Message, error) {
	conv, _ := r.Conversation(ctx, a, b)
	if len(conv) == 0 {
		return nil, nil
	}
	last := conv[len(conv)-1]
	return &last, nil
}

func (r *MessageRepo) CountUnread(_ context.Context, senderID, recipientID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, m := range r.msgs {
		if m.SenderID == senderID && m.RecipientID == recipientID && !m.Read {
			n++
		}
	}
	return n, nil
}

func (r *MessageRepo) MarkRead(_ context.Context, senderID, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for i := range r.msgs {
		m := &r.msgs[i]
		if m.SenderID == senderID && m.RecipientID == recipientID && !m.Read {
			m.Read = true
			n++
		}
	}
	return n, nil
}
