package models

type Rank string

const (
	RankMember  Rank = "Member"
	RankVIP     Rank = "VIP"
	RankVIPPlus Rank = "VIP+"
	RankMVP     Rank = "MVP"
	RankMVPPlus Rank = "MVP+"
	RankAdmin   Rank = "Admin"
	RankOwner   Rank = "Owner"
)

// Valid reports whether r is one of the enumerated membership tiers.
func (r Rank) Valid() bool {
	switch r {
	case RankMember, RankVIP, RankVIPPlus, RankMVP, RankMVPPlus, RankAdmin, RankOwner:
		return true
	}
	return false
}

// UserProfile is the durable account record. Username is fixed at
// registration; submissions copy it at submit time, so later display
// name edits never rewrite history.
type UserProfile struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName,omitempty"`
	Rank         Rank   `json:"rank"`
	JoinDate     string `json:"joinDate"`
	PasswordHash []byte `json:"passwordHash,omitempty"`
}

type NotificationPrefs struct {
	Email   bool `json:"email"`
	Discord bool `json:"discord"`
}

// UserSettings holds per-user appearance preferences, stored under a
// key suffixed with the user id.
type UserSettings struct {
	SchemaVersion int               `json:"schemaVersion"`
	DisplayName   string            `json:"displayName"`
	Bio           string            `json:"bio"`
	Theme         string            `json:"theme"`
	Notifications NotificationPrefs `json:"notifications"`
}

type UserCollection struct {
	SchemaVersion int           `json:"schemaVersion"`
	Users         []UserProfile `json:"users"`
}
