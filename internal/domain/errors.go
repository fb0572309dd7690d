package domain

import "errors"

var (
	ErrValidation        = errors.New("invalid amount")
	ErrRateUnavailable   = errors.New("exchange rate unavailable")
	ErrProcessorRejected = errors.New("payment processor rejected request")
	ErrMalformedPayload  = errors.New("malformed webhook payload")
	ErrSignatureInvalid  = errors.New("webhook signature verification failed")
	ErrTradeNotFound     = errors.New("trade not found")
	ErrTokenCollision    = errors.New("correlation token collision")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrGatewayDisabled   = errors.New("payment gateway not enabled")
)
