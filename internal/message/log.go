// Package message keeps the append-only contact message log.
package message

import (
	"context"
	"strings"
	"time"

	"github.com/yakotaki/chuanghua-shop/internal/docstore"
	"github.com/yakotaki/chuanghua-shop/internal/domain"
)

const docName = "messages"

type messagesDoc struct {
	Messages []domain.Message `json:"messages"`
}

type Log interface {
	// Append validates the body and prepends a timestamped record.
	Append(ctx context.Context, name, contact, body, lang string) (domain.Message, error)

	// List returns all messages, newest first, as stored.
	List(ctx context.Context) ([]domain.Message, error)
}

type documentLog struct {
	store *docstore.Store
	now   func() time.Time
}

func NewLog(store *docstore.Store) (Log, error) {
	if err := store.EnsureExists(docName, messagesDoc{Messages: []domain.Message{}}); err != nil {
		return nil, err
	}
	return &documentLog{store: store, now: time.Now}, nil
}

func (l *documentLog) Append(_ context.Context, name, contact, body, lang string) (domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Message{}, domain.RequiredField("message")
	}

	m := domain.Message{
		CreatedAt: l.now().UTC(),
		Name:      strings.TrimSpace(name),
		Contact:   strings.TrimSpace(contact),
		Body:      body,
		Lang:      domain.NormalizeLang(lang),
	}
	err := l.store.Update(docName, func() error {
		doc := docstore.Read(l.store, docName, messagesDoc{})
		doc.Messages = append([]domain.Message{m}, doc.Messages...)
		return l.store.Write(docName, doc)
	})
	if err != nil {
		return domain.Message{}, err
	}
	return m, nil
}

func (l *documentLog) List(_ context.Context) ([]domain.Message, error) {
	doc := docstore.Read(l.store, docName, messagesDoc{})
	return doc.Messages, nil
}
