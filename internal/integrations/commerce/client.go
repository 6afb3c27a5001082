package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// PublishableKeyHeader заголовок ключа витрины store API
const PublishableKeyHeader = "x-publishable-api-key"

// Client клиент store API коммерческой платформы
type Client struct {
	baseURL        string
	publishableKey string
	httpClient     *http.Client
	log            Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL, publishableKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:        baseURL,
		publishableKey: publishableKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCart получает корзину по ID
func (c *Client) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	endpoint := fmt.Sprintf("%s/store/carts/%s", c.baseURL, url.PathEscape(cartID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.publishableKey != "" {
		req.Header.Set(PublishableKeyHeader, c.publishableKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrCartNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var cartResp CartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cartResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &cartResp.Cart, nil
}

// GetLineItem находит позицию корзины и разбирает её метаданные в типизированный вариант
func (c *Client) GetLineItem(ctx context.Context, cartID, lineItemID string) (domain.LineItem, error) {
	cart, err := c.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	for _, item := range cart.Items {
		if item.ID != lineItemID {
			continue
		}
		lineItem, err := domain.NewLineItem(item.ID, item.Metadata)
		if err != nil {
			return nil, fmt.Errorf("%w: line item %s: %v", ErrInvalidResponse, item.ID, err)
		}
		return lineItem, nil
	}

	return nil, ErrLineItemNotFound
}

// GetLineItemWithGracefulDegradation как GetLineItem, но недоступность платформы
// превращается в ErrServiceDegraded. Бизнес-ошибки (нет корзины или позиции) пробрасываются как есть.
func (c *Client) GetLineItemWithGracefulDegradation(ctx context.Context, cartID, lineItemID string) (domain.LineItem, error) {
	c.log.Info("Fetching line item cart_id=%s, line_item_id=%s", cartID, lineItemID)

	item, err := c.GetLineItem(ctx, cartID, lineItemID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) || errors.Is(err, ErrLineItemNotFound) {
			c.log.Info("Line item not found cart_id=%s, line_item_id=%s: %v", cartID, lineItemID, err)
			return nil, err
		}

		c.log.Error("Commerce platform unavailable, applying graceful degradation for cart_id=%s: %v", cartID, err)
		return nil, fmt.Errorf("%w: cart_id=%s, error=%v", ErrServiceDegraded, cartID, err)
	}

	c.log.Info("Successfully fetched line item cart_id=%s, line_item_id=%s", cartID, lineItemID)
	return item, nil
}
