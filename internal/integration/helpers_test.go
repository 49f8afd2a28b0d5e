//go:build integration

package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/customer"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/notify"
)

func call[T any](t *testing.T, srv *httptest.Server, method, path, body string, wantStatus int) T {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equalf(t, wantStatus, resp.StatusCode, "%s %s: %s", method, path, raw)

	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func newCustomer(email, first, last *string) customer.Input {
	return customer.Input{Email: email, FirstName: first, LastName: last}
}

// bindQueue binds an exclusive queue to the events exchange and decodes
// every OrderPlaced message it receives.
func bindQueue(t *testing.T, conn *amqp.Connection) <-chan notify.OrderPlacedEvent {
	t.Helper()

	ch, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	require.NoError(t, ch.ExchangeDeclare(notify.EventsExchange, "topic", true, false, false, false, nil))
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, notify.OrderPlacedRoutingKey, notify.EventsExchange, false, nil))

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	out := make(chan notify.OrderPlacedEvent, 4)
	go func() {
		for d := range deliveries {
			var ev notify.OrderPlacedEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				continue
			}
			out <- ev
		}
	}()
	return out
}
