//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/bookhaven/order-service/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type orderPayload struct {
	OrderID     int64   `json:"orderId"`
	UserID      int64   `json:"userId"`
	TotalAmount float64 `json:"totalAmount"`
}

type placeOrderResult struct {
	TotalAmount float64 `json:"totalAmount"`
}

func TestStorefrontOrderContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.StorefrontConsumer,
		Provider: pacttest.OrderServiceName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	orderBodyMatcher := matchers.Map{
		"orderId":     matchers.Like(1),
		"userId":      matchers.Like(pacttest.ExistingUserID),
		"totalAmount": matchers.Like(20.0),
		"orderDate":   matchers.Like("2024-03-11T00:00:00Z"),
	}
	bookingMatcher := matchers.Map{
		"bookingId": matchers.Like(1),
		"orderId":   matchers.Like(1),
		"item": matchers.Map{
			"bookInventoryId": matchers.Like(pacttest.ExistingItemID),
			"stock":           matchers.Like(3),
			"deliveryInDays":  matchers.Like(2),
			"book": matchers.Map{
				"bookId": matchers.Like(int64(100)),
				"title":  matchers.Like("The Go Programming Language"),
				"price":  matchers.Like(10.0),
			},
		},
		"quantity":     matchers.Like(2),
		"deliveryDate": matchers.Like("2024-03-13T00:00:00Z"),
	}

	pact.AddInteraction().
		Given(pacttest.StateOrdersEmpty).
		UponReceiving("a request to place an order").
		WithRequest("POST", fmt.Sprintf("/order/place/%d", pacttest.ExistingUserID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.ArrayMinLike(matchers.Map{
				"bookInventoryId": matchers.Like(pacttest.ExistingItemID),
				"quantity":        matchers.Like(2),
			}, 1))
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"totalAmount": matchers.Like(20.0)})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request for an existing order").
		WithRequest("GET", "/order/1").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request for the bookings of an existing order").
		WithRequest("GET", "/order/1/bookings").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.ArrayMinLike(bookingMatcher, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateOrdersEmpty).
		UponReceiving("a request for a missing order").
		WithRequest("GET", fmt.Sprintf("/order/%d", pacttest.MissingOrderID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to cancel an existing order").
		WithRequest("DELETE", "/order/1").
		WillRespondWith(http.StatusNoContent, func(b *pactconsumer.V2ResponseBuilder) {})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := &http.Client{Timeout: 10 * time.Second}
		baseURL := fmt.Sprintf("http://%s:%d", config.Host, config.Port)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		placed, err := placeOrder(ctx, client, baseURL, pacttest.ExistingUserID)
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if placed.TotalAmount == 0 {
			return fmt.Errorf("expected a non-zero order total")
		}

		order, status, err := getOrder(ctx, client, baseURL, 1)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if status != http.StatusOK || order.OrderID != 1 {
			return fmt.Errorf("expected order 1, got status %d order %+v", status, order)
		}

		if status, err := getJSON(ctx, client, baseURL+"/order/1/bookings", nil); err != nil {
			return fmt.Errorf("get bookings: %w", err)
		} else if status != http.StatusOK {
			return fmt.Errorf("expected 200 for bookings, got %d", status)
		}

		if _, status, err := getOrder(ctx, client, baseURL, pacttest.MissingOrderID); err != nil {
			return fmt.Errorf("get missing order: %w", err)
		} else if status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for order %d, got %d", pacttest.MissingOrderID, status)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, baseURL+"/order/1", nil)
		if err != nil {
			return err
		}
		res, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("cancel order: %w", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusNoContent {
			return fmt.Errorf("expected 204 for cancellation, got %d", res.StatusCode)
		}

		return nil
	})
	require.NoError(t, err)
}

func placeOrder(ctx context.Context, client *http.Client, baseURL string, userID int64) (*placeOrderResult, error) {
	body, err := json.Marshal([]map[string]any{{"bookInventoryId": pacttest.ExistingItemID, "quantity": 2}})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/order/place/%d", baseURL, userID), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	var result placeOrderResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func getOrder(ctx context.Context, client *http.Client, baseURL string, orderID int64) (*orderPayload, int, error) {
	var order orderPayload
	status, err := getJSON(ctx, client, fmt.Sprintf("%s/order/%d", baseURL, orderID), &order)
	if err != nil {
		return nil, 0, err
	}
	return &order, status, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	res, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if out != nil && res.StatusCode == http.StatusOK {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return res.StatusCode, err
		}
	}
	return res.StatusCode, nil
}
