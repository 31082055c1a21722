package sparkapi

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mintgate/sparkd/wallet"
	log "github.com/sirupsen/logrus"
)

// notificationDto is one line of the gateway's newline-delimited JSON event
// stream.
type notificationDto struct {
	Kind    string     `json:"kind"`
	Payment paymentDto `json:"payment"`
}

// SubscribeEvents opens the gateway's event stream and returns the
// subscription handle. The reader goroutine runs until the stream ends, the
// context is cancelled, or the handle is closed; closing the handle tears
// down the HTTP request, which deregisters the listener gateway-side.
func (c *Client) SubscribeEvents(ctx context.Context) (*wallet.Subscription, error) {
	streamCtx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, c.baseURL+"/api/v1/events", nil)
	if err != nil {
		cancel()

		return nil, err
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()

		return nil, fmt.Errorf("opening gateway event stream: %w", err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		cancel()

		return nil, fmt.Errorf("opening gateway event stream: %d - %s", resp.StatusCode, resp.Status)
	}

	events := make(chan wallet.Notification)
	go func() {
		defer close(events)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			var dto notificationDto
			if err := json.Unmarshal(line, &dto); err != nil {
				log.WithError(err).Warn("skipping undecodable gateway event")

				continue
			}

			p, err := dto.Payment.toPayment()
			if err != nil {
				log.WithError(err).Warn("skipping gateway event with invalid payment")

				continue
			}

			select {
			case events <- wallet.Notification{Kind: wallet.NotificationKind(dto.Kind), Payment: p}:
			case <-streamCtx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil && streamCtx.Err() == nil {
			log.WithError(err).Warn("gateway event stream closed with error")
		}
	}()

	return wallet.NewSubscription(events, cancel), nil
}
