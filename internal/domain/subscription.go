package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionPending       SubscriptionStatus = "pending"
	SubscriptionActive        SubscriptionStatus = "active"
	SubscriptionOnHold        SubscriptionStatus = "on-hold"
	SubscriptionPendingCancel SubscriptionStatus = "pending-cancel"
	SubscriptionCancelled     SubscriptionStatus = "cancelled"
	SubscriptionExpired       SubscriptionStatus = "expired"
)

type BillingPeriod string

const (
	PeriodDay   BillingPeriod = "day"
	PeriodWeek  BillingPeriod = "week"
	PeriodMonth BillingPeriod = "month"
	PeriodYear  BillingPeriod = "year"
)

func (p BillingPeriod) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

type LineItem struct {
	ProductID      string `json:"product_id"`
	VariationID    string `json:"variation_id,omitempty"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	TotalCents     int64  `json:"total_cents"`
	SignUpFeeCents int64  `json:"sign_up_fee_cents,omitempty"`
}

type Subscription struct {
	ID              string             `json:"subscription_uid"`
	CustomerID      string             `json:"customer_id"`
	Status          SubscriptionStatus `json:"status"`
	BillingPeriod   BillingPeriod      `json:"billing_period"`
	BillingInterval int                `json:"billing_interval"`
	// Length is the total number of billing periods; 0 means until cancelled.
	Length         int           `json:"subscription_length"`
	TrialPeriod    BillingPeriod `json:"trial_period,omitempty"`
	TrialLength    int           `json:"trial_length"`
	SignUpFeeCents int64         `json:"sign_up_fee_cents"`
	RecurringCents int64         `json:"recurring_cents"`
	Currency       string        `json:"currency"`
	NextPaymentAt  time.Time     `json:"next_payment_at"`
	CreatedAt      time.Time     `json:"created_at"`
	Items          []LineItem    `json:"items,omitempty"`
}

// HasEnded reports whether the subscription is in a terminal status.
func (s *Subscription) HasEnded() bool {
	return s.Status == SubscriptionCancelled || s.Status == SubscriptionExpired
}
