package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frahmantamala/commerce-management/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Client", "client"},
		{"spaces", "Order Manager", "order-manager"},
		{"punctuation runs", "Read & Write!!", "read-write"},
		{"leading and trailing junk", "  --Product Manager--  ", "product-manager"},
		{"digits", "Tier 2 Support", "tier-2-support"},
		{"already a slug", "product-manager", "product-manager"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slug.Make(tc.in))
		})
	}
}

func TestMakeIsDeterministic(t *testing.T) {
	first := slug.Make("Order Manager")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, slug.Make("Order Manager"))
	}
}
