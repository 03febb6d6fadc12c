// AngelaMos | 2026
// provider_test.go

package payment

import (
	"testing"
	"time"

	"github.com/stripe/stripe-go/v79"
)

func TestNewStripeProviderBoundsRequestTimeout(t *testing.T) {
	provider := NewStripeProvider("sk_test_fake", 7*time.Second)

	sp, ok := provider.(*stripeProvider)
	if !ok {
		t.Fatalf("provider type = %T, want *stripeProvider", provider)
	}

	backend, ok := sp.api.CheckoutSessions.B.(*stripe.BackendImplementation)
	if !ok {
		t.Fatalf("backend type = %T, want *stripe.BackendImplementation",
			sp.api.CheckoutSessions.B)
	}

	if backend.HTTPClient.Timeout != 7*time.Second {
		t.Errorf("HTTPClient.Timeout = %v, want 7s", backend.HTTPClient.Timeout)
	}
}
