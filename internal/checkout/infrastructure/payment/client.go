package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/essenza-labs/storefront/internal/checkout/domain"
)

// Client talks to the hosted payment gateway's intent API. The gateway's
// embedded UI collects card data; this client only ever sees the opaque
// payment-method reference.
type Client struct {
	log       *slog.Logger
	http      *http.Client
	baseURL   string
	secretKey string
}

func New(log *slog.Logger, baseURL, secretKey string) *Client {
	return &Client{
		log:       log,
		http:      &http.Client{Timeout: 15 * time.Second},
		baseURL:   baseURL,
		secretKey: secretKey,
	}
}

type intentPayload struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
	LastPaymentError *struct {
		Message string `json:"message"`
	} `json:"last_payment_error"`
}

func (c *Client) CreateAuthorization(ctx context.Context, amountCents int64, currency string) (domain.Authorization, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)

	var payload intentPayload
	if err := c.post(ctx, "/v1/payment_intents", form, &payload); err != nil {
		return domain.Authorization{}, err
	}
	return domain.Authorization{
		Handle:       payload.ID,
		ClientSecret: payload.ClientSecret,
	}, nil
}

func (c *Client) Confirm(ctx context.Context, handle, paymentMethodRef, billingName, email string) (domain.Confirmation, error) {
	form := url.Values{}
	form.Set("payment_method", paymentMethodRef)
	form.Set("payment_method_data[billing_details][name]", billingName)
	form.Set("payment_method_data[billing_details][email]", email)

	var payload intentPayload
	err := c.post(ctx, "/v1/payment_intents/"+url.PathEscape(handle)+"/confirm", form, &payload)
	if err != nil {
		return domain.Confirmation{}, err
	}

	if payload.Status == "succeeded" {
		return domain.Confirmation{
			Status:    domain.ConfirmationSucceeded,
			Reference: payload.ID,
		}, nil
	}

	message := "Payment failed"
	if payload.LastPaymentError != nil && payload.LastPaymentError.Message != "" {
		message = payload.LastPaymentError.Message
	} else if payload.Error != nil && payload.Error.Message != "" {
		message = payload.Error.Message
	}
	return domain.Confirmation{
		Status:    domain.ConfirmationFailed,
		Reference: payload.ID,
		Message:   message,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out *intentPayload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("payment gateway: %s: %w", resp.Status, err)
	}
	// Declines come back with a 402 and an error message; those are a
	// confirmation verdict, not a transport failure.
	if resp.StatusCode >= 400 && out.Error == nil && out.LastPaymentError == nil {
		return fmt.Errorf("payment gateway: %s", resp.Status)
	}
	return nil
}
