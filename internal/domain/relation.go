package domain

import "strings"

// RelationType classifies how a generated order relates to its parent
// subscription.
type RelationType string

const (
	RelationRenewal     RelationType = "renewal"
	RelationSwitch      RelationType = "switch"
	RelationResubscribe RelationType = "resubscribe"
)

// DefaultMetaPrefix matches the historical attachment key convention,
// e.g. "_subscription_renewal".
const DefaultMetaPrefix = "_"

func (t RelationType) Valid() bool {
	switch t {
	case RelationRenewal, RelationSwitch, RelationResubscribe:
		return true
	}
	return false
}

// MetaKey returns the attachment key the relation is stored under. An empty
// prefix falls back to DefaultMetaPrefix.
func (t RelationType) MetaKey(prefix string) string {
	if prefix == "" {
		prefix = DefaultMetaPrefix
	}
	return prefix + "subscription_" + string(t)
}

// RelationTypeFromMetaKey is the inverse of MetaKey. ok is false when the key
// does not carry the given prefix or names an unknown relation type.
func RelationTypeFromMetaKey(prefix, key string) (RelationType, bool) {
	if prefix == "" {
		prefix = DefaultMetaPrefix
	}
	rest, found := strings.CutPrefix(key, prefix+"subscription_")
	if !found {
		return "", false
	}
	t := RelationType(rest)
	return t, t.Valid()
}

// Relation is a tagged attachment on an order pointing at a subscription.
// Multiple relations per (order, type) are permitted: a single renewal order
// may pay for several subscriptions at once.
type Relation struct {
	OrderID        string       `json:"order_uid"`
	Type           RelationType `json:"type"`
	SubscriptionID string       `json:"subscription_uid"`
}
