package payment

import "context"

// RefundOptions selects how much of a captured payment is reversed.
// A full refund reverses both the platform's application fee and the transfer
// to the provider; a partial refund reverses only the transfer, so the
// platform keeps its fee.
type RefundOptions struct {
	RefundApplicationFee bool
	ReverseTransfer      bool
}

// FullRefund makes the booker whole; the provider absorbs nothing.
func FullRefund() RefundOptions {
	return RefundOptions{RefundApplicationFee: true, ReverseTransfer: true}
}

// PartialRefund reverses the provider transfer but keeps the platform fee.
func PartialRefund() RefundOptions {
	return RefundOptions{RefundApplicationFee: false, ReverseTransfer: true}
}

// RefundResult is what the processor reports back. The booking record, not
// the processor, is authoritative once these are stored.
type RefundResult struct {
	ID     string
	Amount int64
	Status string
}

// Refunder reverses captured payments.
type Refunder interface {
	Refund(ctx context.Context, paymentIntentID string, opts RefundOptions) (*RefundResult, error)
}
