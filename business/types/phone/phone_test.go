package phone_test

import (
	"testing"

	"github.com/sellerdesk/console/business/types/phone"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{value: "+55 11 98765-4321", want: "+5511987654321"},
		{value: "(11) 98765.4321", want: "11987654321"},
		{value: "5511987654321", want: "5511987654321"},
		{value: "123456", wantErr: true},
		{value: "55+11987654321", wantErr: true},
		{value: "phone me", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			p, err := phone.Parse(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, p.String())
		})
	}
}

func TestParseNull(t *testing.T) {
	n, err := phone.ParseNull("")
	require.NoError(t, err)
	require.False(t, phone.ToSQLNullString(n).Valid)

	n, err = phone.ParseNull("+55 11 98765-4321")
	require.NoError(t, err)
	require.Equal(t, "+5511987654321", phone.ToSQLNullString(n).String)
}
