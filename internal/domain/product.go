package domain

import "fmt"

type ProductType string

const (
	ProductSubscription         ProductType = "subscription"
	ProductVariableSubscription ProductType = "variable-subscription"
)

// SubscriptionScheme holds the recurring-billing fields exposed on a product
// over the HTTP API.
type SubscriptionScheme struct {
	BillingPeriod      BillingPeriod `json:"billing_period"`
	BillingInterval    int           `json:"billing_interval"`
	SubscriptionLength int           `json:"subscription_length"`
	TrialLength        int           `json:"trial_length"`
	TrialPeriod        BillingPeriod `json:"trial_period"`
	SignUpFeeCents     int64         `json:"sign_up_fees"`
}

func (s SubscriptionScheme) Validate() error {
	if !s.BillingPeriod.Valid() {
		return fmt.Errorf("billing_period: %q is not one of day, week, month, year", s.BillingPeriod)
	}
	if s.BillingInterval < 1 {
		return fmt.Errorf("billing_interval: must be at least 1, got %d", s.BillingInterval)
	}
	if s.SubscriptionLength < 0 {
		return fmt.Errorf("subscription_length: must not be negative, got %d", s.SubscriptionLength)
	}
	if s.TrialLength < 0 {
		return fmt.Errorf("trial_length: must not be negative, got %d", s.TrialLength)
	}
	if s.TrialLength > 0 && !s.TrialPeriod.Valid() {
		return fmt.Errorf("trial_period: %q is not one of day, week, month, year", s.TrialPeriod)
	}
	if s.SignUpFeeCents < 0 {
		return fmt.Errorf("sign_up_fees: must not be negative, got %d", s.SignUpFeeCents)
	}
	return nil
}

// Variation is one purchasable variant of a variable subscription product.
type Variation struct {
	ID             string `json:"variation_id"`
	PriceCents     int64  `json:"price_cents"`
	SignUpFeeCents int64  `json:"sign_up_fee_cents"`
	TrialLength    int    `json:"trial_length"`
	// Visible variations participate in the product price range; hidden ones
	// are skipped but still purchasable by direct link.
	Visible bool `json:"visible"`
}

type Product struct {
	ID         string             `json:"product_id"`
	Type       ProductType        `json:"type"`
	Scheme     SubscriptionScheme `json:"scheme"`
	Variations []Variation        `json:"variations,omitempty"`
}
