package realtime

import (
	"net/http"
	"strings"
	"time"

	pusher "github.com/pusher/pusher-http-go/v5"
)

// PusherPublisher forwards events to a hosted Pusher app for browser clients.
type PusherPublisher struct {
	client *pusher.Client
}

func NewPusherPublisher(appID string, key string, secret string, cluster string) *PusherPublisher {
	return &PusherPublisher{
		client: &pusher.Client{
			AppID:      appID,
			Key:        key,
			Secret:     secret,
			Cluster:    cluster,
			Secure:     true,
			HTTPClient: &http.Client{Timeout: 5 * time.Second},
		},
	}
}

func (publisher *PusherPublisher) Trigger(channel string, event string, payload any) error {
	return publisher.client.Trigger(PusherChannelName(channel), event, payload)
}

// PusherChannelName maps a channel onto Pusher's allowed alphabet, which excludes ':'.
func PusherChannelName(channel string) string {
	return "taskflow-" + strings.ReplaceAll(channel, ":", "-")
}
