package model

import "time"

// PushSubscription holds the information for a browser push subscription.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey;size:512"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// SubscriptionMachine maps a push subscription to one machine it watches.
type SubscriptionMachine struct {
	Endpoint  string `gorm:"primaryKey;size:512"`
	MachineID string `gorm:"primaryKey;size:36;index"`
}
