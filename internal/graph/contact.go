package graph

import (
	"context"
	"time"

	"github.com/mkersey/graphmail/internal/query"
)

// Contact is an entry in the signed-in user's address book.
type Contact struct {
	session *Session

	ID                   string         `json:"id"`
	GivenName            string         `json:"givenName,omitempty"`
	Surname              string         `json:"surname,omitempty"`
	MiddleName           string         `json:"middleName,omitempty"`
	DisplayName          string         `json:"displayName,omitempty"`
	CompanyName          string         `json:"companyName,omitempty"`
	Department           string         `json:"department,omitempty"`
	JobTitle             string         `json:"jobTitle,omitempty"`
	OfficeLocation       string         `json:"officeLocation,omitempty"`
	MobilePhone          string         `json:"mobilePhone,omitempty"`
	EmailAddresses       []EmailAddress `json:"emailAddresses,omitempty"`
	CreatedDateTime      time.Time      `json:"createdDateTime,omitzero"`
	LastModifiedDateTime time.Time      `json:"lastModifiedDateTime,omitzero"`
}

// Delete removes the contact.
func (c *Contact) Delete(ctx context.Context) error {
	return c.session.delete(ctx, "/me/contacts/"+c.ID)
}

// AddressBook is the signed-in user's default contacts folder.
type AddressBook struct {
	session *Session
}

// AddressBook returns the default contacts folder.
func (s *Session) AddressBook() *AddressBook {
	return &AddressBook{session: s}
}

// Contacts starts a query over the address book's contacts.
func (b *AddressBook) Contacts() *ContactQuery {
	return &ContactQuery{query.New[*Contact](&contactCollection{book: b})}
}

// ContactQuery is a query over an address book's contacts.
type ContactQuery struct {
	*query.Query[*Contact]
}

// Bulk exposes bulk actions over this query's result set.
func (q *ContactQuery) Bulk() *BulkContactAction {
	return &BulkContactAction{query: q.Query}
}

// BulkContactAction builds bulk-action contexts for a contact query.
type BulkContactAction struct {
	query *query.Query[*Contact]
}

// Delete deletes every contact matching the query.
func (a *BulkContactAction) Delete() *query.BulkActionContext[*Contact] {
	return query.NewBulkActionContext(a.query, "delete", func(ctx context.Context, c *Contact) error {
		return c.Delete(ctx)
	})
}

type contactCollection struct {
	book *AddressBook
}

func (c *contactCollection) Protocol() query.Protocol { return Outlook }

func (c *contactCollection) Fetch(ctx context.Context, b query.Builder, limit int) ([]*Contact, error) {
	contacts, err := fetchCollection[*Contact](ctx, c.book.session, "/me/contacts", b, limit)
	if err != nil {
		return nil, err
	}
	for _, contact := range contacts {
		contact.session = c.book.session
	}
	return contacts, nil
}
