package webpush

import (
	"context"
	"errors"
)

// ErrSubscriptionGone is returned when the push service reports the endpoint
// no longer exists. Callers should drop the stored subscription.
var ErrSubscriptionGone = errors.New("push subscription gone")

// Subscription is a browser push subscription as produced by the Push API.
type Subscription struct {
	// Endpoint is the push service URL for this subscription.
	Endpoint string
	// P256dh is the client public key, base64 URL encoded.
	P256dh string
	// Auth is the client auth secret, base64 URL encoded.
	Auth string
}

// Payload is the JSON document delivered to the service worker.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

// WebPush abstracts a Web Push (RFC 8030) sender.
type WebPush interface {
	// Send encrypts and delivers the payload to one subscription.
	Send(ctx context.Context, sub Subscription, payload Payload) error
	// PublicKey returns the VAPID public key clients subscribe with.
	PublicKey() string
}
