package newsletter

import "time"

const (
	StatusSubscribed   = "subscribed"
	StatusUnsubscribed = "unsubscribed"
)

type Subscriber struct {
	Email            string     `bson:"email" json:"email"`
	Status           string     `bson:"status" json:"status"`
	SubscribedAt     time.Time  `bson:"subscribedAt" json:"subscribedAt"`
	UnsubscribedAt   *time.Time `bson:"unsubscribedAt,omitempty" json:"unsubscribedAt,omitempty"`
	UnsubscribeToken string     `bson:"unsubscribeToken,omitempty" json:"-"`
	LastUpdated      time.Time  `bson:"lastUpdated" json:"lastUpdated"`
}

// SendStats summarises a bulk newsletter send.
type SendStats struct {
	TotalSubscribers int      `json:"totalSubscribers"`
	SuccessfulSends  int      `json:"successfulSends"`
	FailedSends      int      `json:"failedSends"`
	FailedEmails     []string `json:"failedEmails,omitempty"`
}
