package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"prisoner-profile/internal/domain"
)

var ErrNoSession = errors.New("no session")

// Session 登录后由前端网关写入 redis 的会话（session:{id}）
type Session struct {
	Username         string            `json:"username"`
	Token            string            `json:"token"`
	ActiveCaseLoadID string            `json:"activeCaseLoadId"`
	CaseLoads        []domain.CaseLoad `json:"caseLoads"`
}

// CaseLoadIDs ids of every case load the viewer can access.
func (s *Session) CaseLoadIDs() []string {
	ids := make([]string, 0, len(s.CaseLoads))
	for _, c := range s.CaseLoads {
		ids = append(ids, c.CaseLoadID)
	}
	return ids
}

type SessionStore struct {
	kv     KV
	prefix string
}

func NewSessionStore(kv KV, prefix string) *SessionStore {
	return &SessionStore{kv: kv, prefix: prefix}
}

// Get returns ErrNoSession when the id is empty or unknown.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	raw, err := s.kv.Get(ctx, s.prefix+id)
	if err != nil {
		if errors.Is(err, ErrMiss) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if sess.Username == "" || sess.Token == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, id string, sess *Session, ttl time.Duration) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.prefix+id, string(b), ttl)
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.kv.Del(ctx, s.prefix+id)
}
