package webpush

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// ErrVAPIDKeysRequired is returned when the key pair is missing.
var ErrVAPIDKeysRequired = errors.New("vapid public and private keys are required")

// VAPID is a WebPush implementation using VAPID-authenticated requests.
type VAPID struct {
	publicKey  string
	privateKey string
	subscriber string
	ttl        int
}

// VAPIDConfig configures the VAPID implementation.
type VAPIDConfig struct {
	// PublicKey is the base64 URL encoded VAPID public key.
	PublicKey string
	// PrivateKey is the base64 URL encoded VAPID private key.
	PrivateKey string
	// Subscriber is the contact address sent to the push service, usually mailto.
	Subscriber string
	// TTL is how long the push service may retain an undelivered message.
	TTL time.Duration
}

// NewVAPID constructs a VAPID web push sender.
func NewVAPID(cfg VAPIDConfig) (*VAPID, error) {
	if cfg.PublicKey == "" || cfg.PrivateKey == "" {
		return nil, ErrVAPIDKeysRequired
	}

	ttl := int(cfg.TTL.Seconds())
	if ttl <= 0 {
		ttl = 86400
	}

	return &VAPID{
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		subscriber: cfg.Subscriber,
		ttl:        ttl,
	}, nil
}

// PublicKey returns the VAPID public key clients subscribe with.
func (v *VAPID) PublicKey() string {
	return v.publicKey
}

// Send encrypts and delivers the payload to one subscription.
func (v *VAPID) Send(ctx context.Context, sub Subscription, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, data, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		VAPIDPublicKey:  v.publicKey,
		VAPIDPrivateKey: v.privateKey,
		Subscriber:      v.subscriber,
		TTL:             v.ttl,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}

	return nil
}

// GenerateVAPIDKeys creates a new VAPID key pair, base64 URL encoded.
func GenerateVAPIDKeys() (privateKey, publicKey string, err error) {
	return webpush.GenerateVAPIDKeys()
}
