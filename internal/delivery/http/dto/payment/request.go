package payment

type PurchaseRequest struct {
	Price     string `form:"price" json:"price"`
	InvoiceID string `form:"invoice_id" json:"invoice_id"`
}
