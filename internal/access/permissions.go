package access

import (
	"github.com/subhub/subhub/internal/domain"
)

// CanViewSubscription: the owner or a store manager.
func CanViewSubscription(u *User, sub *domain.Subscription) bool {
	if u == nil || sub == nil {
		return false
	}
	return u.Privileged() || u.ID == sub.CustomerID
}

// CanEditSubscription: managers edit anything, owners edit their own as long
// as it has not ended.
func CanEditSubscription(u *User, sub *domain.Subscription) bool {
	if u == nil || sub == nil {
		return false
	}
	if u.Privileged() {
		return true
	}
	return u.ID == sub.CustomerID && !sub.HasEnded()
}

// CanResubscribe: only the owner, and only once the subscription has ended.
func CanResubscribe(u *User, sub *domain.Subscription) bool {
	if u == nil || sub == nil {
		return false
	}
	return u.ID == sub.CustomerID && sub.HasEnded()
}

// CanSwitch: only the owner of a currently active subscription.
func CanSwitch(u *User, sub *domain.Subscription) bool {
	if u == nil || sub == nil {
		return false
	}
	return u.ID == sub.CustomerID && sub.Status == domain.SubscriptionActive
}

// CanViewOrder: the order's customer or a store manager.
func CanViewOrder(u *User, o *domain.Order) bool {
	if u == nil || o == nil {
		return false
	}
	return u.Privileged() || u.ID == o.CustomerID
}
