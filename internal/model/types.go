package model

import "time"

// OnlineWindow is how recently a device must have checked in to count as
// online. Liveness is derived from last_seen, never stored.
const OnlineWindow = 10 * time.Minute

// DeviceActive is the only status the protocol ever writes; anything else
// is set administratively.
const DeviceActive = "active"

// Command lifecycle. Transitions are forward-only:
// pending -> in_progress -> complete.
const (
	CommandPending    = "pending"
	CommandInProgress = "in_progress"
	CommandComplete   = "complete"
)

type Device struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	DeviceID  string    `gorm:"size:64;uniqueIndex;not null" json:"device_id"`
	Name      string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	OS        string    `gorm:"size:100;not null" json:"os"`
	IPAddress string    `gorm:"size:45;not null" json:"ip_address"`
	AuthToken string    `gorm:"size:255;not null" json:"-"`
	LastSeen  time.Time `gorm:"not null" json:"last_seen"`
	Status    string    `gorm:"size:20;not null;default:active" json:"status"`

	Commands []Command  `gorm:"foreignKey:DeviceID;references:DeviceID;constraint:OnDelete:CASCADE" json:"-"`
	Logs     []LogEntry `gorm:"foreignKey:DeviceID;references:DeviceID;constraint:OnDelete:CASCADE" json:"-"`
}

// Online reports whether the device has been seen within OnlineWindow.
func (d *Device) Online(now time.Time) bool {
	return now.Sub(d.LastSeen) < OnlineWindow
}

type Command struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	DeviceID string    `gorm:"size:64;index;not null" json:"device_id"`
	Command  string    `gorm:"type:text;not null" json:"command"`
	IssuedAt time.Time `gorm:"not null;index" json:"issued_at"`
	Status   string    `gorm:"size:20;not null;default:pending" json:"status"`
	Output   string    `gorm:"type:text" json:"output"`
}

type LogEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DeviceID  string    `gorm:"size:64;index;not null" json:"device_id"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

func (LogEntry) TableName() string { return "logs" }

type Admin struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
}
