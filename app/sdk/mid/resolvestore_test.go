package mid

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestLocateStoreID(t *testing.T) {
	headerID := uuid.New()
	queryID := uuid.New()
	pathID := uuid.New()
	bodyID := uuid.New()

	body := `{"store_id":"` + bodyID.String() + `","name":"widget"}`

	tests := []struct {
		name   string
		header bool
		query  bool
		path   bool
		body   bool
		want   uuid.UUID
	}{
		{name: "header wins over everything", header: true, query: true, path: true, body: true, want: headerID},
		{name: "query wins over path and body", query: true, path: true, body: true, want: queryID},
		{name: "path wins over body", path: true, body: true, want: pathID},
		{name: "body as last resort", body: true, want: bodyID},
		{name: "nothing present", want: uuid.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/v1/products"
			if tt.query {
				target += "?store_id=" + queryID.String()
			}

			var rdr io.Reader
			if tt.body {
				rdr = strings.NewReader(body)
			}

			r := httptest.NewRequest("POST", target, rdr)
			if tt.header {
				r.Header.Set(StoreHeader, headerID.String())
			}
			if tt.path {
				r.SetPathValue("store_id", pathID.String())
			}

			got, err := locateStoreID(r)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLocateStoreIDMalformed(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/products", nil)
	r.Header.Set(StoreHeader, "not-a-uuid")

	_, err := locateStoreID(r)
	require.Error(t, err)
}

func TestLocateStoreIDRestoresBody(t *testing.T) {
	id := uuid.New()
	payload := `{"store_id":"` + id.String() + `","name":"widget"}`

	r := httptest.NewRequest("POST", "/v1/products", strings.NewReader(payload))

	got, err := locateStoreID(r)
	require.NoError(t, err)
	require.Equal(t, id, got)

	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	require.Equal(t, payload, string(data))
}

func TestLocateStoreIDHugeBody(t *testing.T) {
	padding := strings.Repeat("x", maxPeekBytes)
	payload := `{"note":"` + padding + `","store_id":"` + uuid.NewString() + `"}`

	r := httptest.NewRequest("POST", "/v1/products", strings.NewReader(payload))

	got, err := locateStoreID(r)
	require.NoError(t, err)
	require.Equal(t, uuid.Nil, got)

	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	require.Equal(t, payload, string(data))
}

func TestLocateStoreIDNonJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/products", strings.NewReader("plain text"))

	got, err := locateStoreID(r)
	require.NoError(t, err)
	require.Equal(t, uuid.Nil, got)
}
