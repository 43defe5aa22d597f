package schema

// TabEventType describes a tab list change.
type TabEventType string

const (
	// TabEventCreated signals a new tab.
	TabEventCreated TabEventType = "created"
	// TabEventClosed signals a removed tab.
	TabEventClosed TabEventType = "closed"
	// TabEventActivated signals a change of the active tab.
	TabEventActivated TabEventType = "activated"
	// TabEventUpdated signals a title or path change.
	TabEventUpdated TabEventType = "updated"
	// TabEventReordered signals a change of tab order.
	TabEventReordered TabEventType = "reordered"
	// TabEventRestored signals the tab list was replaced from storage.
	TabEventRestored TabEventType = "restored"
)

// TabEvent notifies observers of tab list changes.
type TabEvent struct {
	Type      TabEventType
	Tab       Tab
	ActiveTab TabID
}
