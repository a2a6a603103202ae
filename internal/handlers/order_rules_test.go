package handlers

import (
	"testing"
)

func TestValidateOrderStatusAcceptsKnownStatuses(t *testing.T) {
	for _, status := range []string{"pending", "received", "sent"} {
		if err := validateOrderStatus(status); err != nil {
			t.Fatalf("expected %q to be valid, got %v", status, err)
		}
	}
}

func TestValidateOrderStatusRejectsUnknownValues(t *testing.T) {
	for _, status := range []string{"", "shipped", "PENDING", "done"} {
		if err := validateOrderStatus(status); err == nil {
			t.Fatalf("expected %q to be rejected", status)
		}
	}
}

func TestValidateCustomerEmail(t *testing.T) {
	valid := []string{"a@b.com", "user.name@shop.example.org"}
	for _, email := range valid {
		if err := validateCustomerEmail(email); err != nil {
			t.Fatalf("expected %q to be valid, got %v", email, err)
		}
	}

	invalid := []string{"", "   ", "nodomain", "missing@tld", "@b.com"}
	for _, email := range invalid {
		if err := validateCustomerEmail(email); err == nil {
			t.Fatalf("expected %q to be rejected", email)
		}
	}
}

func TestBuildOrderFromRequestDefaults(t *testing.T) {
	order, err := buildOrderFromRequest(createOrderRequest{
		CustomerEmail: "a@b.com",
		Items: []createOrderItemRequest{
			{ID: "p1", Name: " Rose ", Price: 10, Quantity: 2},
		},
		Total: 20,
	})
	if err != nil {
		t.Fatalf("buildOrderFromRequest returned error: %v", err)
	}

	if order.Status != OrderStatusPending {
		t.Fatalf("expected status pending, got %q", order.Status)
	}
	if order.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}
	if order.Total != 20 {
		t.Fatalf("expected total to be kept as supplied, got %v", order.Total)
	}
	if len(order.Items) != 1 || order.Items[0].Name != "Rose" || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items snapshot: %+v", order.Items)
	}
}

func TestBuildOrderFromRequestRequiresEmail(t *testing.T) {
	_, err := buildOrderFromRequest(createOrderRequest{
		Items: []createOrderItemRequest{{Name: "X", Price: 10, Quantity: 1}},
		Total: 10,
	})
	if err == nil {
		t.Fatal("expected error when customerEmail is missing")
	}
}
