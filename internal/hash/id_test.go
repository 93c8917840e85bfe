package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"column name", "Periodo", ID("Periodo")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestSumMatchesID(t *testing.T) {
	// Sum over the raw bytes must agree with ID over the equivalent string.
	require.Equal(t, ID("DecimaisApresentacao"), Sum([]byte("DecimaisApresentacao")))
	require.NotEqual(t, Sum([]byte("a")), Sum([]byte("b")))
}
