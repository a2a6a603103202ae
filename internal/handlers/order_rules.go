package handlers

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	OrderStatusPending  = "pending"
	OrderStatusReceived = "received"
	OrderStatusSent     = "sent"
)

// The admin list offers all three statuses at any time, so there is no
// transition ordering here, only set membership.
var orderStatuses = map[string]struct{}{
	OrderStatusPending:  {},
	OrderStatusReceived: {},
	OrderStatusSent:     {},
}

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

func validateOrderStatus(status string) error {
	if _, ok := orderStatuses[status]; !ok {
		return fmt.Errorf("invalid status: %q", status)
	}
	return nil
}

func validateCustomerEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return fmt.Errorf("customerEmail required")
	}
	if !emailPattern.MatchString(trimmed) {
		return fmt.Errorf("please enter a valid email address")
	}
	return nil
}
