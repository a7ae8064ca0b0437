package role_test

import (
	"testing"

	"github.com/sellerdesk/console/business/types/role"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		value   string
		want    role.Role
		wantErr bool
	}{
		{value: "OWNER", want: role.Owner},
		{value: "ADMIN", want: role.Admin},
		{value: "MANAGER", want: role.Manager},
		{value: "STAFF", want: role.Staff},
		{value: "owner", wantErr: true},
		{value: "ROOT", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r, err := role.Parse(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, r.Equal(tt.want))
			require.Equal(t, tt.value, r.String())
		})
	}
}
