package retries

import (
	"time"

	"github.com/subhub/subhub/internal/domain"
)

const (
	TemplateCustomerRetry = "customer_payment_retry"
	TemplateAdminRetry    = "admin_payment_retry"
)

// Rules is the retry ladder: rule n applies to the n-th failed payment of an
// order. Once the ladder is exhausted no further retries are scheduled.
type Rules struct {
	ladder []domain.RetryRule
}

// DefaultRules mirrors the stock retry behaviour: five attempts spread over
// roughly a week, the first one silent, the rest notifying the customer and
// the store manager while the order and subscription sit on hold.
func DefaultRules() *Rules {
	return &Rules{ladder: []domain.RetryRule{
		{
			RetryAfter:         12 * time.Hour,
			OrderStatus:        domain.OrderPending,
			SubscriptionStatus: domain.SubscriptionOnHold,
		},
		{
			RetryAfter:            12 * time.Hour,
			EmailTemplateCustomer: TemplateCustomerRetry,
			OrderStatus:           domain.OrderPending,
			SubscriptionStatus:    domain.SubscriptionOnHold,
		},
		{
			RetryAfter:            24 * time.Hour,
			EmailTemplateCustomer: TemplateCustomerRetry,
			EmailTemplateAdmin:    TemplateAdminRetry,
			OrderStatus:           domain.OrderPending,
			SubscriptionStatus:    domain.SubscriptionOnHold,
		},
		{
			RetryAfter:            48 * time.Hour,
			EmailTemplateCustomer: TemplateCustomerRetry,
			OrderStatus:           domain.OrderPending,
			SubscriptionStatus:    domain.SubscriptionOnHold,
		},
		{
			RetryAfter:            72 * time.Hour,
			EmailTemplateCustomer: TemplateCustomerRetry,
			EmailTemplateAdmin:    TemplateAdminRetry,
			OrderStatus:           domain.OrderPending,
			SubscriptionStatus:    domain.SubscriptionOnHold,
		},
	}}
}

func NewRules(ladder []domain.RetryRule) *Rules { return &Rules{ladder: ladder} }

// RuleFor returns the rule for the given 0-based attempt number. ok is false
// when the ladder is exhausted.
func (r *Rules) RuleFor(attempt int) (domain.RetryRule, bool) {
	if attempt < 0 || attempt >= len(r.ladder) {
		return domain.RetryRule{}, false
	}
	return r.ladder[attempt], true
}

func (r *Rules) Count() int { return len(r.ladder) }
