package payment

import "time"

const (
	RetFailure = 0
	RetSuccess = 1
)

// Response is the {ret, msg} envelope shared by purchase and webhook replies.
type Response struct {
	Ret int    `json:"ret"`
	Msg string `json:"msg"`
}

type TradeResponse struct {
	Ret  int       `json:"ret"`
	Data TradeData `json:"data"`
}

type TradeData struct {
	TradeNo   string     `json:"trade_no"`
	InvoiceID string     `json:"invoice_id"`
	Amount    string     `json:"amount"`
	Gateway   string     `json:"gateway"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

type GatewayData struct {
	Name         string `json:"name"`
	ReadableName string `json:"readable_name"`
}

type GatewaysResponse struct {
	Ret  int           `json:"ret"`
	Data []GatewayData `json:"data"`
}
