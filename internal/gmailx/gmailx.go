// Package gmailx provides the mail access operations the import engine
// consumes: search by query and full fetch by message id, using
// google.golang.org/api/gmail/v1.
package gmailx

import (
	"context"
	"fmt"

	gm "google.golang.org/api/gmail/v1"
)

// Message is a fetched Gmail message with the headers the engine reads
// and the raw payload tree for body extraction.
type Message struct {
	ID      string
	Subject string
	From    string
	To      string
	Date    string
	Snippet string
	Payload *gm.MessagePart
}

// Client implements mail access over an authenticated Gmail service.
type Client struct {
	svc *gm.Service
}

// NewClient wraps an authenticated Gmail service.
func NewClient(svc *gm.Service) *Client {
	return &Client{svc: svc}
}

// Search returns the ids of messages matching a Gmail query, bounded by
// maxResults. Individual queries may fail transiently; the caller owns
// the retry/skip decision.
func (c *Client) Search(ctx context.Context, query string, maxResults int64) ([]string, error) {
	resp, err := c.svc.Users.Messages.List("me").
		Q(query).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		ids = append(ids, msg.Id)
	}
	return ids, nil
}

// Fetch retrieves a complete message by id, with headers flattened.
func (c *Client) Fetch(ctx context.Context, messageID string) (*Message, error) {
	msg, err := c.svc.Users.Messages.Get("me", messageID).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", messageID, err)
	}

	headers := headerMap(msg.Payload.Headers)
	return &Message{
		ID:      msg.Id,
		Subject: headers["Subject"],
		From:    headers["From"],
		To:      headers["To"],
		Date:    headers["Date"],
		Snippet: msg.Snippet,
		Payload: msg.Payload,
	}, nil
}

// headerMap converts Gmail API headers into a simple key-value map.
func headerMap(headers []*gm.MessagePartHeader) map[string]string {
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		m[h.Name] = h.Value
	}
	return m
}
