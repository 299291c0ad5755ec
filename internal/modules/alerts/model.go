// README: Live trip alerts kept in a bounded most-recent-first feed.
package alerts

import (
	"time"

	"roadtrip/internal/types"
)

type Type string

const (
	TypeWeather Type = "weather"
	TypeTraffic Type = "traffic"
	TypeClosure Type = "closure"
)

// Alert is one live alert in the feed. IDs are assigned at merge time and
// only exist for the current session.
type Alert struct {
	ID        types.ID  `json:"id"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// DefaultCapacity bounds the feed when config does not say otherwise.
const DefaultCapacity = 5
