package band

import "time"

// Status is the lifecycle state of a band.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusArchived Status = "ARCHIVED"
)

// MemberRole describes a user's role inside a band.
type MemberRole string

const (
	RoleLeader MemberRole = "LEADER"
	RoleMember MemberRole = "MEMBER"
)

// MemberStatus describes a user's membership state inside a band.
type MemberStatus string

const (
	MemberInvited  MemberStatus = "INVITED"
	MemberActive   MemberStatus = "ACTIVE"
	MemberInactive MemberStatus = "INACTIVE"
)

// Band is the tenancy root. Every other domain entity belongs to exactly
// one band.
type Band struct {
	ID          string
	Name        string
	Description string
	Genre       string
	CreatedByID string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Member ties a user to a band with a role and membership status.
// Creating a band always creates one LEADER/ACTIVE member for the creator.
type Member struct {
	ID        string
	BandID    string
	UserID    string
	Role      MemberRole
	Status    MemberStatus
	JoinedAt  time.Time
	LeftAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
