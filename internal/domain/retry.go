package domain

import "time"

type RetryStatus string

const (
	RetryPending    RetryStatus = "pending"
	RetryProcessing RetryStatus = "processing"
	RetryFailed     RetryStatus = "failed"
	RetryComplete   RetryStatus = "complete"
	RetryCancelled  RetryStatus = "cancelled"
)

// RetryRule captures what a single retry attempt should do: when to run,
// which emails to send, and which statuses to apply while waiting.
type RetryRule struct {
	RetryAfter            time.Duration `json:"retry_after"`
	EmailTemplateCustomer string        `json:"email_template_customer,omitempty"`
	EmailTemplateAdmin    string        `json:"email_template_admin,omitempty"`
	// OrderStatus and SubscriptionStatus are applied when the attempt is
	// scheduled; empty means leave as is.
	OrderStatus        OrderStatus        `json:"order_status,omitempty"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status,omitempty"`
}

// RetryRecord is one payment-retry attempt for an order.
type RetryRecord struct {
	ID      string      `json:"retry_id"`
	OrderID string      `json:"order_uid"`
	Status  RetryStatus `json:"status"`
	// Date is when the re-attempt is due.
	Date time.Time `json:"date"`
	Rule RetryRule `json:"rule"`
}

// Due reports whether the record is pending and its date has passed.
func (r *RetryRecord) Due(now time.Time) bool {
	return r.Status == RetryPending && !r.Date.After(now)
}
