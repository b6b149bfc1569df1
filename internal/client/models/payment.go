package models

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// OrderRequest is the payload of POST /api/payment/create-order.
type OrderRequest struct {
	Amount Amount `json:"amount"`
}

// Order is the payment-gateway order created by the backend. Amount is in
// the smallest currency unit.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency,omitempty"`
}

// PaymentResult is what the payment widget hands back once the user has paid.
type PaymentResult struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// VerifyRequest is the payload of POST /api/payment/verify.
type VerifyRequest struct {
	PaymentResult
	CourseID ID `json:"courseId"`
}

// VerifyResponse is the backend's verdict on a payment. Older backend builds
// answer with {"status":"success"} instead of {"success":true}.
type VerifyResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// Verified reports whether the backend accepted the payment.
func (v VerifyResponse) Verified() bool {
	return v.Success || strings.EqualFold(v.Status, "success")
}

// SignPayment computes the gateway signature of a payment: hex HMAC-SHA256 of
// "orderID|paymentID" under the merchant secret.
func SignPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
