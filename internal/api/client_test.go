package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/api"
	"centavo/internal/auth"
	"centavo/internal/date"
	"centavo/internal/report"
	"centavo/internal/transaction"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return api.NewClient(server.URL, 5*time.Second, staticToken(token))
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, "my-token")

	_, err := client.ListIncomes(context.Background(), transaction.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer my-token", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var hasAuth bool

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}, "")

	_, err := client.ListIncomes(context.Background(), transaction.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.False(t, hasAuth)
}

func TestClient_ListFilterQuery(t *testing.T) {
	category := uuid.New()
	from := date.New(2026, time.January, 1)
	to := date.New(2026, time.January, 31)

	var gotQuery map[string][]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"results": []}`))
	}, "tok")

	_, err := client.ListExpenses(context.Background(), transaction.ListFilter{
		Category:  &category,
		StartDate: &from,
		EndDate:   &to,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{category.String()}, gotQuery["category"])
	assert.Equal(t, []string{"2026-01-01"}, gotQuery["date_from"])
	assert.Equal(t, []string{"2026-01-31"}, gotQuery["date_to"])
}

func TestClient_ListEnvelopeShapes(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name string
		body string
	}

	tests := []testCase{
		{
			name: "BareArray",
			body: `[{"id": "` + id.String() + `", "amount": "12.50", "date": "2026-02-01"}]`,
		},
		{
			name: "ResultsEnvelope",
			body: `{"count": 1, "results": [{"id": "` + id.String() + `", "amount": "12.50", "date": "2026-02-01"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}, "tok")

			got, err := client.ListIncomes(context.Background(), transaction.ListFilter{})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, id, got[0].ID)
			assert.Equal(t, "12.50", got[0].Amount.String())
		})
	}
}

func TestClient_ErrorShape(t *testing.T) {
	type testCase struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantData    string
	}

	tests := []testCase{
		{
			name:        "DetailField",
			status:      http.StatusUnauthorized,
			body:        `{"detail": "token expired"}`,
			wantMessage: "token expired",
			wantData:    `{"detail": "token expired"}`,
		},
		{
			name:        "MessageField",
			status:      http.StatusBadRequest,
			body:        `{"message": "amount required"}`,
			wantMessage: "amount required",
			wantData:    `{"message": "amount required"}`,
		},
		{
			name:        "NonJSONBody",
			status:      http.StatusBadGateway,
			body:        `<html>upstream down</html>`,
			wantMessage: "Bad Gateway",
			wantData:    `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, "tok")

			_, err := client.ListIncomes(context.Background(), transaction.ListFilter{})
			require.Error(t, err)

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantMessage, apiErr.Error())
			assert.JSONEq(t, tt.wantData, string(apiErr.Data))
		})
	}
}

func TestClient_Login(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds auth.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "maria", creds.Username)

		json.NewEncoder(w).Encode(auth.Session{
			AccessToken:  "access",
			RefreshToken: "refresh",
			User:         auth.User{Username: creds.Username},
		})
	}, "")

	session, err := client.Login(context.Background(), auth.Credentials{Username: "maria", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "access", session.AccessToken)
	assert.Equal(t, "maria", session.User.Username)
}

func TestClient_MarkAlertRead(t *testing.T) {
	id := uuid.New()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/reports/alerts/"+id.String()+"/", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["is_read"])

		json.NewEncoder(w).Encode(report.Alert{ID: id, IsRead: true})
	}, "tok")

	alert, err := client.MarkAlertRead(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, alert.IsRead)
}

func TestClient_ListUnreadAlerts_Shapes(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name string
		body string
	}

	tests := []testCase{
		{
			name: "AlertsEnvelope",
			body: `{"alerts": [{"id": "` + id.String() + `", "title": "Budget Warning"}]}`,
		},
		{
			name: "BareArray",
			body: `[{"id": "` + id.String() + `", "title": "Budget Warning"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/reports/alerts/unread/", r.URL.Path)
				w.Write([]byte(tt.body))
			}, "tok")

			got, err := client.ListUnreadAlerts(context.Background())
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "Budget Warning", got[0].Title)
		})
	}
}

func TestClient_DeleteIncome(t *testing.T) {
	id := uuid.New()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/transactions/income/"+id.String()+"/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}, "tok")

	require.NoError(t, client.DeleteIncome(context.Background(), id))
}

func TestClient_MonthlyReportPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/monthly/2026/3/", r.URL.Path)
		w.Write([]byte(`{"year": 2026, "month": 3}`))
	}, "tok")

	monthly, err := client.MonthlyReport(context.Background(), 2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, 2026, monthly.Year)
	assert.Equal(t, 3, monthly.Month)
}
