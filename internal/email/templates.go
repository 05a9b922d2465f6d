package email

// Template names. The retry ladder references the two retry templates by
// these names.
const (
	TemplateRenewalProcessing     = "renewal_processing"
	TemplateRenewalCompleted      = "renewal_completed"
	TemplateCustomerPaymentRetry  = "customer_payment_retry"
	TemplateAdminPaymentRetry     = "admin_payment_retry"
	TemplateSubscriptionCancelled = "subscription_cancelled"
)

var subjects = map[string]string{
	TemplateRenewalProcessing:     "Your renewal order {{.Order.ID}} has been received",
	TemplateRenewalCompleted:      "Your renewal order {{.Order.ID}} is complete",
	TemplateCustomerPaymentRetry:  "Automatic payment for order {{.Order.ID}} failed, retry scheduled",
	TemplateAdminPaymentRetry:     "[admin] Payment retry scheduled for order {{.Order.ID}}",
	TemplateSubscriptionCancelled: "Subscription {{.Subscription.ID}} cancelled",
}

var templates = map[string]string{
	TemplateRenewalProcessing: `Hello,

We have received your renewal order {{.Order.ID}} for subscription {{.Subscription.ID}}.
It is currently being processed.
{{- if .AdditionalContent}}

{{.AdditionalContent}}
{{- end}}
`,
	TemplateRenewalCompleted: `Hello,

Your renewal order {{.Order.ID}} for subscription {{.Subscription.ID}} is complete.
The next payment is due on {{.Subscription.NextPaymentAt.Format "2006-01-02"}}.
{{- if .AdditionalContent}}

{{.AdditionalContent}}
{{- end}}
`,
	TemplateCustomerPaymentRetry: `Hello,

The automatic payment for order {{.Order.ID}} (subscription {{.Subscription.ID}}) failed.
We will retry the payment shortly; no action is needed unless the retry fails as well.
{{- if .AdditionalContent}}

{{.AdditionalContent}}
{{- end}}
`,
	TemplateAdminPaymentRetry: `Payment for order {{.Order.ID}} failed and a retry has been scheduled.

Subscription: {{.Subscription.ID}}
Customer: {{.Subscription.CustomerID}}
Status: {{.Subscription.Status}}
`,
	TemplateSubscriptionCancelled: `Hello,

Subscription {{.Subscription.ID}} has been cancelled.
{{- if .AdditionalContent}}

{{.AdditionalContent}}
{{- end}}
`,
}
