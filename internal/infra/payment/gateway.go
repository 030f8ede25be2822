package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	repo "shop/internal/repository"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// 外部決済ゲートウェイのHTTPクライアント。
// ゲートウェイ障害時に叩き続けないようサーキットブレーカーを挟む。
// リトライはしない（失敗はユーザーの再操作待ち）。
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[chargeOutcome]
}

// ゲートウェイの応答。拒否（カード不備など）は通信成功として数え、
// ブレーカーを開かせない。
type chargeOutcome struct {
	Reference string
	Declined  bool
	Reason    string
}

func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	settings := gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[chargeOutcome](settings),
	}
}

type chargeRequest struct {
	Amount         string            `json:"amount"`
	Currency       string            `json:"currency"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	IdempotencyKey string            `json:"idempotency_key"`
}

type chargeResponse struct {
	Reference string `json:"reference"`
	Error     string `json:"error"`
}

func (g *HTTPGateway) Charge(ctx context.Context, in repo.ChargeInput) (repo.ChargeResult, error) {
	body, err := json.Marshal(chargeRequest{
		Amount:         in.Amount.StringFixed(2),
		Currency:       in.Currency,
		Metadata:       in.Metadata,
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return repo.ChargeResult{}, err
	}

	out, err := g.breaker.Execute(func() (chargeOutcome, error) {
		return g.doCharge(ctx, body)
	})
	if err != nil {
		return repo.ChargeResult{}, fmt.Errorf("payment gateway: %w", err)
	}
	if out.Declined {
		return repo.ChargeResult{}, fmt.Errorf("%w: %s", repo.ErrChargeDeclined, out.Reason)
	}

	return repo.ChargeResult{Reference: out.Reference}, nil
}

func (g *HTTPGateway) doCharge(ctx context.Context, body []byte) (chargeOutcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/charges", bytes.NewReader(body))
	if err != nil {
		return chargeOutcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	res, err := g.client.Do(req)
	if err != nil {
		return chargeOutcome{}, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return chargeOutcome{}, err
	}

	var cr chargeResponse
	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		if err := json.Unmarshal(data, &cr); err != nil {
			return chargeOutcome{}, fmt.Errorf("decode charge response: %w", err)
		}
		if cr.Reference == "" {
			return chargeOutcome{}, fmt.Errorf("charge response without reference")
		}
		return chargeOutcome{Reference: cr.Reference}, nil

	case res.StatusCode >= 400 && res.StatusCode < 500:
		//拒否。理由はエラーボディから取る
		reason := "declined"
		if err := json.Unmarshal(data, &cr); err == nil && cr.Error != "" {
			reason = cr.Error
		}
		return chargeOutcome{Declined: true, Reason: reason}, nil

	default:
		return chargeOutcome{}, fmt.Errorf("charge failed with status %d", res.StatusCode)
	}
}

var _ repo.PaymentGateway = (*HTTPGateway)(nil)
