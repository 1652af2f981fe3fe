package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPending(t *testing.T) {
	all := []Migration{{Key: "a"}, {Key: "b"}, {Key: "c"}}
	for _, tc := range []struct {
		name     string
		ran      []string
		expected []string
	}{
		{"None-Ran", nil, []string{"a", "b", "c"}},
		{"Some-Ran", []string{"b"}, []string{"a", "c"}},
		{"All-Ran", []string{"c", "a", "b"}, nil},
		{"Unknown-Ran", []string{"z"}, []string{"a", "b", "c"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual := pending(tc.ran, all)

			// Assert
			var keys []string
			for _, m := range actual {
				keys = append(keys, m.Key)
			}
			require.Equal(t, tc.expected, keys)
		})
	}
}

func TestBuildCxnStr(t *testing.T) {
	// Arrange
	cfg := &CxnConfig{Host: "localhost", Port: "5432", Name: "storefront", User: "u", Password: "p"}

	// Act
	actual := buildCxnStr(cfg)

	// Assert
	require.Equal(t, "host=localhost port=5432 dbname=storefront user=u password=p sslmode=prefer", actual)
	require.Equal(t, "postgres://x", buildCxnStr(&CxnConfig{URL: "postgres://x", Host: "ignored"}))
}
