package attr

import "fmt"

// Registry is an ordered, name-indexed set of attributes describing
// one remote collection kind.
type Registry struct {
	name   string
	attrs  []*Attribute
	byName map[string]*Attribute
}

// NewRegistry creates a registry from an ordered attribute list.
// Duplicate names are rejected.
func NewRegistry(name string, attrs ...*Attribute) (*Registry, error) {
	r := &Registry{
		name:   name,
		attrs:  attrs,
		byName: make(map[string]*Attribute, len(attrs)),
	}
	for _, a := range attrs {
		if _, dup := r.byName[a.name]; dup {
			return nil, fmt.Errorf("registry %q: duplicate attribute %q", name, a.name)
		}
		r.byName[a.name] = a
	}
	return r, nil
}

func mustRegistry(name string, attrs ...*Attribute) *Registry {
	r, err := NewRegistry(name, attrs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the registry name.
func (r *Registry) Name() string { return r.name }

// Attributes returns the attributes in declaration order.
func (r *Registry) Attributes() []*Attribute { return r.attrs }

// Lookup returns the attribute with the given registry name.
func (r *Registry) Lookup(name string) (*Attribute, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// ImportanceLevels is the value set of the message/event importance
// attribute.
var ImportanceLevels = []EnumValue{
	{Name: "LOW", Value: "low"},
	{Name: "NORMAL", Value: "normal"},
	{Name: "HIGH", Value: "high"},
}

// SensitivityLevels is the value set of the event sensitivity
// attribute.
var SensitivityLevels = []EnumValue{
	{Name: "NORMAL", Value: "normal"},
	{Name: "PERSONAL", Value: "personal"},
	{Name: "PRIVATE", Value: "private"},
	{Name: "CONFIDENTIAL", Value: "confidential"},
}

// Message attributes.
var (
	MsgFrom               = New("from", Plain)
	MsgSender             = New("sender", Plain)
	MsgSubject            = New("subject", Plain)
	MsgReceived           = New("received_date_time", Plain)
	MsgLastModified       = New("last_modified_date_time", Plain)
	MsgCategories         = New("categories", Plain)
	MsgIsRead             = New("is_read", Boolean)
	MsgHasAttachments     = New("has_attachments", Boolean)
	MsgIsDraft            = New("is_draft", Boolean)
	MsgHasDeliveryReceipt = New("is_delivery_receipt_requested", Boolean)
	MsgHasReadReceipt     = New("is_read_receipt_requested", Boolean)
	MsgImportance         = NewEnum("importance", ImportanceLevels...)
	MsgBody               = New("body", NonFilterable)
	MsgTo                 = New("to_recipients", NonFilterable)
	MsgCc                 = New("cc_recipients", NonFilterable)
	MsgBcc                = New("bcc_recipients", NonFilterable)
)

// Message folder attributes.
var (
	FolderName             = New("display_name", Plain)
	FolderChildFolderCount = New("child_folder_count", Plain)
	FolderTotalItemCount   = New("total_item_count", Plain)
	FolderUnreadItemCount  = New("unread_item_count", Plain)
	FolderChildFolders     = New("child_folders", NonFilterable)
	FolderMessages         = New("messages", NonFilterable)
)

// Contact attributes.
var (
	ContactGivenName      = New("given_name", Plain)
	ContactSurname        = New("surname", Plain)
	ContactMiddleName     = New("middle_name", Plain)
	ContactDisplayName    = New("display_name", Plain)
	ContactCompany        = New("company_name", Plain)
	ContactDepartment     = New("department", Plain)
	ContactJobTitle       = New("job_title", Plain)
	ContactOfficeLocation = New("office_location", Plain)
	ContactMobile         = New("mobile_phone1", Plain)
	ContactCreated        = New("created_date_time", Plain)
	ContactLastModified   = New("last_modified_date_time", Plain)
	ContactEmailAddresses = New("email_addresses", NonFilterable)
)

// Calendar event attributes.
var (
	EventSubject     = New("subject", Plain)
	EventStart       = New("start", Plain)
	EventEnd         = New("end", Plain)
	EventCreated     = New("created_date_time", Plain)
	EventIsAllDay    = New("is_all_day", Boolean)
	EventIsCancelled = New("is_cancelled", Boolean)
	EventIsOrganizer = New("is_organizer", Boolean)
	EventImportance  = NewEnum("importance", ImportanceLevels...)
	EventSensitivity = NewEnum("sensitivity", SensitivityLevels...)
	EventBody        = New("body", NonFilterable)
	EventAttendees   = New("attendees", NonFilterable)
)

// Built-in registries for the Outlook domain.
var (
	Messages = mustRegistry("message",
		MsgFrom, MsgSender, MsgSubject, MsgReceived, MsgLastModified,
		MsgCategories, MsgIsRead, MsgHasAttachments, MsgIsDraft,
		MsgHasDeliveryReceipt, MsgHasReadReceipt, MsgImportance,
		MsgBody, MsgTo, MsgCc, MsgBcc)

	Folders = mustRegistry("folder",
		FolderName, FolderChildFolderCount, FolderTotalItemCount,
		FolderUnreadItemCount, FolderChildFolders, FolderMessages)

	Contacts = mustRegistry("contact",
		ContactGivenName, ContactSurname, ContactMiddleName,
		ContactDisplayName, ContactCompany, ContactDepartment,
		ContactJobTitle, ContactOfficeLocation, ContactMobile,
		ContactCreated, ContactLastModified, ContactEmailAddresses)

	Events = mustRegistry("event",
		EventSubject, EventStart, EventEnd, EventCreated,
		EventIsAllDay, EventIsCancelled, EventIsOrganizer,
		EventImportance, EventSensitivity, EventBody, EventAttendees)
)

// BuiltinRegistry returns a built-in registry by name.
func BuiltinRegistry(name string) (*Registry, bool) {
	switch name {
	case "message":
		return Messages, true
	case "folder":
		return Folders, true
	case "contact":
		return Contacts, true
	case "event":
		return Events, true
	default:
		return nil, false
	}
}
