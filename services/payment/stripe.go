package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// StripeRefunder issues refunds against Stripe payment intents. The global
// stripe.Key is set once at startup.
type StripeRefunder struct {
	logger *zap.Logger
}

func NewStripeRefunder(logger *zap.Logger) *StripeRefunder {
	return &StripeRefunder{logger: logger}
}

func (r *StripeRefunder) Refund(ctx context.Context, paymentIntentID string, opts RefundOptions) (*RefundResult, error) {
	if paymentIntentID == "" {
		return nil, fmt.Errorf("refund: missing payment intent id")
	}

	params := &stripe.RefundParams{
		PaymentIntent:        stripe.String(paymentIntentID),
		RefundApplicationFee: stripe.Bool(opts.RefundApplicationFee),
		ReverseTransfer:      stripe.Bool(opts.ReverseTransfer),
	}
	params.Context = ctx

	ref, err := refund.New(params)
	if err != nil {
		return nil, fmt.Errorf("refund: stripe refund for %s failed: %w", paymentIntentID, err)
	}

	r.logger.Info("refund issued",
		zap.String("paymentIntent", paymentIntentID),
		zap.String("refundID", ref.ID),
		zap.Int64("amount", ref.Amount),
		zap.Bool("refundApplicationFee", opts.RefundApplicationFee))

	return &RefundResult{
		ID:     ref.ID,
		Amount: ref.Amount,
		Status: string(ref.Status),
	}, nil
}
