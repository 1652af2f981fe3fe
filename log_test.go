package storefront_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/storefront"
)

func TestMask(t *testing.T) {
	for _, tc := range []struct {
		name string
		vals url.Values
		key  string
		want url.Values
	}{
		{"zero", url.Values{}, "", url.Values{}},
		{
			"mismatch",
			url.Values{"token": []string{"abc123"}},
			"tokne",
			url.Values{"token": []string{"abc123"}},
		},
		{
			"match",
			url.Values{"token": []string{"abc123"}},
			"token",
			url.Values{"token": []string{storefront.LogMaskVal}},
		},
		{
			"squash-multiple",
			url.Values{"password": []string{"hunter2", "hunter3"}, "search": []string{"mat"}},
			"password",
			url.Values{"password": []string{storefront.LogMaskVal}, "search": []string{"mat"}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			storefront.Mask(tc.vals, tc.key)
			require.Equal(t, tc.want, tc.vals)
		})
	}
}
