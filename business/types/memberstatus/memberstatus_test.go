package memberstatus_test

import (
	"testing"

	"github.com/sellerdesk/console/business/types/memberstatus"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		value   string
		want    memberstatus.Status
		wantErr bool
	}{
		{value: "PENDING", want: memberstatus.Pending},
		{value: "ACTIVE", want: memberstatus.Active},
		{value: "SUSPENDED", want: memberstatus.Suspended},
		{value: "active", wantErr: true},
		{value: "DELETED", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			s, err := memberstatus.Parse(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, s.Equal(tt.want))
			require.Equal(t, tt.value, s.String())
		})
	}
}
