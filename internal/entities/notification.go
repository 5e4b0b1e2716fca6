package entities

import "time"

type NotificationKind string

const (
	NotificationMissionExpired   NotificationKind = "mission_expired"
	NotificationMissionOrphaned  NotificationKind = "mission_orphaned"
	NotificationMissionDelivered NotificationKind = "mission_delivered"
	NotificationReleaseWarning   NotificationKind = "release_warning"
	NotificationReleaseCooldown  NotificationKind = "release_cooldown"
)

func (k NotificationKind) String() string {
	return string(k)
}

type Notification struct {
	DriverID  string
	Kind      NotificationKind
	BOLID     int64
	Message   string
	CreatedAt time.Time
}
