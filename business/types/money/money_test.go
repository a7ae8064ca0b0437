package money_test

import (
	"testing"

	"github.com/sellerdesk/console/business/types/money"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	m, err := money.Parse(19.90)
	require.NoError(t, err)
	require.Equal(t, 19.90, m.Value())
	require.Equal(t, "19.9", m.String())

	_, err = money.Parse(0)
	require.NoError(t, err)

	_, err = money.Parse(-0.01)
	require.Error(t, err)
}
