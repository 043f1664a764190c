package graph

import (
	"context"
	"time"

	"github.com/mkersey/graphmail/internal/query"
)

// EmailAddress is a display name plus SMTP address.
type EmailAddress struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// Recipient wraps an email address the way the Graph wire format
// does.
type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

// Message is an Outlook message decorated with the session it was
// fetched through, so instance actions (Delete, Move, MarkAsRead) and
// bulk actions can reach the API.
type Message struct {
	session *Session

	ID                   string      `json:"id"`
	Subject              string      `json:"subject"`
	BodyPreview          string      `json:"bodyPreview,omitempty"`
	From                 Recipient   `json:"from,omitempty"`
	Sender               Recipient   `json:"sender,omitempty"`
	ToRecipients         []Recipient `json:"toRecipients,omitempty"`
	CcRecipients         []Recipient `json:"ccRecipients,omitempty"`
	Categories           []string    `json:"categories,omitempty"`
	Importance           string      `json:"importance,omitempty"`
	IsRead               bool        `json:"isRead"`
	IsDraft              bool        `json:"isDraft"`
	HasAttachments       bool        `json:"hasAttachments"`
	ReceivedDateTime     time.Time   `json:"receivedDateTime,omitzero"`
	LastModifiedDateTime time.Time   `json:"lastModifiedDateTime,omitzero"`
}

// Delete removes the message.
func (m *Message) Delete(ctx context.Context) error {
	return m.session.delete(ctx, "/me/messages/"+m.ID)
}

// Move moves the message into the given folder.
func (m *Message) Move(ctx context.Context, dest *MessageFolder) error {
	return m.session.post(ctx, "/me/messages/"+m.ID+"/move", destinationBody{DestinationID: dest.ID}, nil)
}

// Copy copies the message into the given folder.
func (m *Message) Copy(ctx context.Context, dest *MessageFolder) error {
	return m.session.post(ctx, "/me/messages/"+m.ID+"/copy", destinationBody{DestinationID: dest.ID}, nil)
}

// MarkAsRead flags the message as read.
func (m *Message) MarkAsRead(ctx context.Context) error {
	return m.session.patch(ctx, "/me/messages/"+m.ID, map[string]bool{"isRead": true})
}

type destinationBody struct {
	DestinationID string `json:"destinationId"`
}

// MessageQuery is a query over the messages of one folder.
type MessageQuery struct {
	*query.Query[*Message]
}

// Bulk exposes bulk actions over this query's result set.
func (q *MessageQuery) Bulk() *BulkMessageAction {
	return &BulkMessageAction{query: q.Query}
}

// BulkMessageAction builds bulk-action contexts for a message query.
// Each method couples the query to one side effect; nothing runs
// until the returned context is executed or committed.
type BulkMessageAction struct {
	query *query.Query[*Message]
}

// Delete deletes every message matching the query.
func (a *BulkMessageAction) Delete() *query.BulkActionContext[*Message] {
	return query.NewBulkActionContext(a.query, "delete", func(ctx context.Context, m *Message) error {
		return m.Delete(ctx)
	})
}

// Move moves every message matching the query into the given folder.
func (a *BulkMessageAction) Move(dest *MessageFolder) *query.BulkActionContext[*Message] {
	return query.NewBulkActionContext(a.query, "move", func(ctx context.Context, m *Message) error {
		return m.Move(ctx, dest)
	})
}

// Copy copies every message matching the query into the given folder.
func (a *BulkMessageAction) Copy(dest *MessageFolder) *query.BulkActionContext[*Message] {
	return query.NewBulkActionContext(a.query, "copy", func(ctx context.Context, m *Message) error {
		return m.Copy(ctx, dest)
	})
}

// MarkAsRead marks every message matching the query as read.
func (a *BulkMessageAction) MarkAsRead() *query.BulkActionContext[*Message] {
	return query.NewBulkActionContext(a.query, "mark_as_read", func(ctx context.Context, m *Message) error {
		return m.MarkAsRead(ctx)
	})
}

// messageCollection adapts a folder's message listing to the
// query.Container contract.
type messageCollection struct {
	folder *MessageFolder
}

func (c *messageCollection) Protocol() query.Protocol { return Outlook }

func (c *messageCollection) Fetch(ctx context.Context, b query.Builder, limit int) ([]*Message, error) {
	msgs, err := fetchCollection[*Message](ctx, c.folder.session, "/me/mailFolders/"+c.folder.ID+"/messages", b, limit)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		m.session = c.folder.session
	}
	return msgs, nil
}
