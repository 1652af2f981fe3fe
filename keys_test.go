package storefront_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/storefront"
)

func TestKeyString(t *testing.T) {
	require.Equal(t, "storefront context key: RouterKey", storefront.RouterKey.String())
}
