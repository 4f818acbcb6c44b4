package domain

type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifySuccess NotificationKind = "success"
	NotifyWarning NotificationKind = "warning"
	NotifyError   NotificationKind = "error"
)

// Notification is a user-facing toast. Display concerns (duration, stacking,
// eviction) belong to the renderer, not to producers.
type Notification struct {
	Message string           `json:"message"`
	Kind    NotificationKind `json:"kind"`
}
