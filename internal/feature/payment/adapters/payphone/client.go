package payphone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"courier_backend/internal/feature/payment/adapters/payphone/dto"
	"courier_backend/internal/feature/payment/usecase"
)

// currency は固定の決済通貨です。ゲートウェイはUSDのみ受け付けます。
const currency = "USD"

// Client は外部決済ゲートウェイに課金リクエストを送信するGateway実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがGatewayを実装していることをコンパイル時に検証します。
var _ usecase.Gateway = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Charge はゲートウェイに1回だけ課金リクエストをPOSTします。
// リトライは行いません。冪等性キーはそのまま転送され、再試行時の
// 二重課金の照合はゲートウェイと呼び出し側の記録に委ねられます。
func (p *Client) Charge(ctx context.Context, in usecase.GatewayRequest) (*usecase.ChargeResult, error) {
	body := dto.ChargeRequest{
		Identifier:     p.cfg.Identifier,
		Amount:         in.Amount,
		Currency:       currency,
		OrderID:        in.OrderID,
		IdempotencyKey: in.IdempotencyKey,
		Card: dto.Card{
			Number: in.CardNumber,
			Expiry: in.Expiry,
			CVC:    in.CVC,
			Name:   in.HolderName,
		},
		Items: in.Items,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal charge request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	// Basic認証ヘッダー: base64(clientId:secretKey)
	req.SetBasicAuth(p.cfg.ClientID, p.cfg.SecretKey)

	res, err := p.client.Do(req)
	if err != nil {
		// ネットワーク障害。課金が成立したかは不明なため、呼び出し側は
		// 盲目的に再試行してはならない。
		return nil, fmt.Errorf("%w: %v", usecase.ErrGatewayUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	var out dto.ChargeResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil && res.StatusCode < 400 {
		return nil, fmt.Errorf("decode charge response: %w", err)
	}

	if res.StatusCode >= 400 {
		// ゲートウェイのエラーメッセージをそのまま伝播する
		msg := out.Message
		if msg == "" {
			msg = fmt.Sprintf("gateway http %d", res.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", usecase.ErrGatewayDeclined, msg)
	}

	return &usecase.ChargeResult{TransactionID: out.TransactionID}, nil
}
