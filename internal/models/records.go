package models

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

type ApplicationType string

const (
	ApplicationStaff ApplicationType = "staff"
	ApplicationMedia ApplicationType = "media"
)

// Application is a staff or media team application. Everything but
// Status is immutable once submitted.
type Application struct {
	ID           string           `json:"id"`
	Type         ApplicationType  `json:"type"`
	Username     string           `json:"username"`
	Email        string           `json:"email"`
	Age          string           `json:"age"`
	DiscordID    string           `json:"discordId"`
	ChannelLink  string           `json:"channelLink,omitempty"`
	Experience   string           `json:"experience"`
	Reason       string           `json:"reason"`
	Timezone     string           `json:"timezone"`
	Availability string           `json:"availability"`
	Status       SubmissionStatus `json:"status"`
	Timestamp    string           `json:"timestamp"`
}

type BanAppeal struct {
	ID            string           `json:"id"`
	Username      string           `json:"username"`
	DiscordTag    string           `json:"discordTag"`
	BanReason     string           `json:"banReason,omitempty"`
	AppealMessage string           `json:"appealMessage"`
	Status        SubmissionStatus `json:"status"`
	Timestamp     string           `json:"timestamp"`
}

type NewsItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"type"`
	Date      string `json:"date"`
	Published bool   `json:"published"`
}

type PriceCategory string

const (
	PriceRanks PriceCategory = "ranks"
	PriceCoins PriceCategory = "coins"
	PriceItems PriceCategory = "items"
)

// PriceItem is a shop catalog entry. Only Price is admin-editable;
// the rest is fixed at seed time.
type PriceItem struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    PriceCategory `json:"category"`
	Price       string        `json:"price"`
	Description string        `json:"description"`
}

type AdminSettings struct {
	SchemaVersion     int  `json:"schemaVersion"`
	StaffApplications bool `json:"staffApplications"`
	MediaApplications bool `json:"mediaApplications"`
	BanAppeals        bool `json:"banAppeals"`
}

// VoteSite is one of the listing sites players vote on.
type VoteSite struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// VoteTally maps site id to aggregate vote count. No per-user
// attribution beyond the cooldown keys held in redis.
type VoteTally struct {
	SchemaVersion int            `json:"schemaVersion"`
	Counts        map[string]int `json:"counts"`
}

type ApplicationCollection struct {
	SchemaVersion int           `json:"schemaVersion"`
	Items         []Application `json:"items"`
}

type BanAppealCollection struct {
	SchemaVersion int         `json:"schemaVersion"`
	Items         []BanAppeal `json:"items"`
}

type NewsCollection struct {
	SchemaVersion int        `json:"schemaVersion"`
	Items         []NewsItem `json:"items"`
}

type PriceCollection struct {
	SchemaVersion int         `json:"schemaVersion"`
	Items         []PriceItem `json:"items"`
}

type DiscordLink struct {
	SchemaVersion int    `json:"schemaVersion"`
	URL           string `json:"url"`
}
