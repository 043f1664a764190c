// Package graph is a thin domain layer over the Microsoft Graph
// Outlook resources: message folders, messages, contacts and calendar
// events.
//
// It exists to give the query layer something to run against. Each
// collection (a folder's messages, an address book's contacts, a
// calendar's events) implements query.Container, so the declarative
// expression DSL drives real Graph requests:
//
//	inbox, err := session.Inbox(ctx)
//	msgs, err := inbox.Messages().
//		Where(attr.MsgIsRead.Not().And(attr.MsgHasAttachments)).
//		OrderBy(attr.MsgReceived.Desc()).
//		Limit(50).
//		Execute(ctx)
//
// The Session is deliberately minimal: a base URL, a bearer token and
// an http.Client. Token acquisition and refresh, pagination and retry
// are out of scope; transport and API errors propagate unchanged to
// the caller, API errors as *APIError.
package graph
