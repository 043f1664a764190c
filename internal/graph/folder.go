package graph

import (
	"context"

	"github.com/mkersey/graphmail/internal/query"
)

// MessageFolder is a mail folder in the signed-in mailbox.
type MessageFolder struct {
	session *Session

	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	ChildFolderCount int    `json:"childFolderCount"`
	TotalItemCount   int    `json:"totalItemCount"`
	UnreadItemCount  int    `json:"unreadItemCount"`
}

// Inbox fetches the inbox folder.
func (s *Session) Inbox(ctx context.Context) (*MessageFolder, error) {
	return s.FolderByID(ctx, "inbox")
}

// Drafts fetches the drafts folder.
func (s *Session) Drafts(ctx context.Context) (*MessageFolder, error) {
	return s.FolderByID(ctx, "drafts")
}

// SentItems fetches the sent-items folder.
func (s *Session) SentItems(ctx context.Context) (*MessageFolder, error) {
	return s.FolderByID(ctx, "sentitems")
}

// JunkEmail fetches the junk folder.
func (s *Session) JunkEmail(ctx context.Context) (*MessageFolder, error) {
	return s.FolderByID(ctx, "junkemail")
}

// DeletedItems fetches the deleted-items folder.
func (s *Session) DeletedItems(ctx context.Context) (*MessageFolder, error) {
	return s.FolderByID(ctx, "deleteditems")
}

// FolderByID fetches a folder by ID or well-known name (inbox,
// drafts, sentitems, junkemail, deleteditems).
func (s *Session) FolderByID(ctx context.Context, id string) (*MessageFolder, error) {
	var f MessageFolder
	if err := s.get(ctx, "/me/mailFolders/"+id, nil, &f); err != nil {
		return nil, err
	}
	f.session = s
	return &f, nil
}

// Messages starts a query over the folder's messages.
func (f *MessageFolder) Messages() *MessageQuery {
	return &MessageQuery{query.New[*Message](&messageCollection{folder: f})}
}

// ChildFolders starts a query over the folder's direct children.
func (f *MessageFolder) ChildFolders() *FolderQuery {
	return &FolderQuery{query.New[*MessageFolder](&childFolderCollection{parent: f})}
}

// Delete removes the folder.
func (f *MessageFolder) Delete(ctx context.Context) error {
	return f.session.delete(ctx, "/me/mailFolders/"+f.ID)
}

// Move moves the folder under the given parent and returns the moved
// folder.
func (f *MessageFolder) Move(ctx context.Context, dest *MessageFolder) (*MessageFolder, error) {
	var moved MessageFolder
	if err := f.session.post(ctx, "/me/mailFolders/"+f.ID+"/move", destinationBody{DestinationID: dest.ID}, &moved); err != nil {
		return nil, err
	}
	moved.session = f.session
	return &moved, nil
}

// Copy copies the folder under the given parent and returns the copy.
func (f *MessageFolder) Copy(ctx context.Context, dest *MessageFolder) (*MessageFolder, error) {
	var copied MessageFolder
	if err := f.session.post(ctx, "/me/mailFolders/"+f.ID+"/copy", destinationBody{DestinationID: dest.ID}, &copied); err != nil {
		return nil, err
	}
	copied.session = f.session
	return &copied, nil
}

// CreateChild creates a child folder with the given display name.
func (f *MessageFolder) CreateChild(ctx context.Context, displayName string) (*MessageFolder, error) {
	var child MessageFolder
	body := map[string]string{"displayName": displayName}
	if err := f.session.post(ctx, "/me/mailFolders/"+f.ID+"/childFolders", body, &child); err != nil {
		return nil, err
	}
	child.session = f.session
	return &child, nil
}

// FolderQuery is a query over the child folders of one folder.
type FolderQuery struct {
	*query.Query[*MessageFolder]
}

// Bulk exposes bulk actions over this query's result set.
func (q *FolderQuery) Bulk() *BulkFolderAction {
	return &BulkFolderAction{query: q.Query}
}

// BulkFolderAction builds bulk-action contexts for a folder query.
type BulkFolderAction struct {
	query *query.Query[*MessageFolder]
}

// Delete deletes every folder matching the query.
func (a *BulkFolderAction) Delete() *query.BulkActionContext[*MessageFolder] {
	return query.NewBulkActionContext(a.query, "delete", func(ctx context.Context, f *MessageFolder) error {
		return f.Delete(ctx)
	})
}

// Move moves every folder matching the query under the given parent.
func (a *BulkFolderAction) Move(dest *MessageFolder) *query.BulkActionContext[*MessageFolder] {
	return query.NewBulkActionContext(a.query, "move", func(ctx context.Context, f *MessageFolder) error {
		_, err := f.Move(ctx, dest)
		return err
	})
}

// Copy copies every folder matching the query under the given parent.
func (a *BulkFolderAction) Copy(dest *MessageFolder) *query.BulkActionContext[*MessageFolder] {
	return query.NewBulkActionContext(a.query, "copy", func(ctx context.Context, f *MessageFolder) error {
		_, err := f.Copy(ctx, dest)
		return err
	})
}

// childFolderCollection adapts a folder's child listing to the
// query.Container contract.
type childFolderCollection struct {
	parent *MessageFolder
}

func (c *childFolderCollection) Protocol() query.Protocol { return Outlook }

func (c *childFolderCollection) Fetch(ctx context.Context, b query.Builder, limit int) ([]*MessageFolder, error) {
	folders, err := fetchCollection[*MessageFolder](ctx, c.parent.session, "/me/mailFolders/"+c.parent.ID+"/childFolders", b, limit)
	if err != nil {
		return nil, err
	}
	for _, f := range folders {
		f.session = c.parent.session
	}
	return folders, nil
}
