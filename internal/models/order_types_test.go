package models

import "testing"

func TestIsValidOrderStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "PROCESSING", "DELIVERED", "CANCELED"} {
		if !IsValidOrderStatus(valid) {
			t.Errorf("IsValidOrderStatus(%q) = false, want true", valid)
		}
	}

	for _, invalid := range []string{"", "pending", "SHIPPED", "CANCELLED", "done"} {
		if IsValidOrderStatus(invalid) {
			t.Errorf("IsValidOrderStatus(%q) = true, want false", invalid)
		}
	}
}
