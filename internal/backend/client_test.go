package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masjid-admin/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api/")
}

func TestClient_ListMembers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/members", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`[{"id":"m-1","account_number":"MM00000001","name":"Ali","is_committee_member":false,"created_at":"2026-10-01T10:00:00"}]`))
	})

	members, err := c.ListMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Ali", members[0].Name)
	assert.Nil(t, members[0].Email)
}

func TestClient_CreatePaymentSendsJSON(t *testing.T) {
	var got models.CreatePaymentRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/payments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":"p-9","member_id":"m-1","amount":250,"payment_type":"donation","receipt_number":"RCP20261014FFFFFF"}`))
	})

	p, err := c.CreatePayment(context.Background(), models.CreatePaymentRequest{
		MemberID: "m-1", Amount: 250, PaymentType: models.PaymentTypeDonation, MonthYear: "2026-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "RCP20261014FFFFFF", p.ReceiptNumber)
	assert.Equal(t, "m-1", got.MemberID)
	assert.Equal(t, "2026-10", got.MonthYear)
}

func TestClient_ErrorDetailString(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"insufficient member balance"}`))
	})

	_, err := c.CreatePayment(context.Background(), models.CreatePaymentRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	detail, ok := DetailOf(err)
	assert.True(t, ok)
	assert.Equal(t, "insufficient member balance", detail)
}

func TestClient_ErrorDetailList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","amount"],"msg":"field required","type":"value_error.missing"},{"loc":["body","member_id"],"msg":"field required"}]}`))
	})

	_, err := c.CreatePayment(context.Background(), models.CreatePaymentRequest{})
	detail, ok := DetailOf(err)
	assert.True(t, ok)
	assert.Equal(t, "field required; field required", detail)
}

func TestClient_ErrorWithoutDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`Internal Server Error`))
	})

	_, err := c.DashboardStats(context.Background())
	require.Error(t, err)
	_, ok := DetailOf(err)
	assert.False(t, ok)
	assert.Equal(t, "Request failed with status code 500", err.Error())
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/members/no%20such", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Member not found"}`))
	})

	_, err := c.GetMember(context.Background(), "no such")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Member not found")
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := New(srv.URL + "/api")
	srv.Close()

	_, err := c.PrayerTimes(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "GET prayer-times")
}

func TestClient_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListPayments(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResourceOf(t *testing.T) {
	assert.Equal(t, "members", resourceOf("members/abc"))
	assert.Equal(t, "dashboard", resourceOf("/dashboard/stats"))
	assert.Equal(t, "root", resourceOf(""))
}

func TestClient_ActiveImam(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/imam", r.URL.Path)
		w.Write([]byte(`{"id":"i-1","name":"Maulana Ismail","phone":"9000000000","qualification":"Alim","experience_years":12,"appointment_date":"2020-06-01","salary":null,"is_active":true}`))
	})

	imam, err := c.ActiveImam(context.Background())
	require.NoError(t, err)
	require.NotNil(t, imam)
	assert.Equal(t, "Maulana Ismail", imam.Name)
	assert.Equal(t, 12, imam.ExperienceYears)
	assert.Nil(t, imam.Salary)
}

func TestClient_ActiveImam_None(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})

	imam, err := c.ActiveImam(context.Background())
	require.NoError(t, err)
	assert.Nil(t, imam)
}

func TestClient_Announcements(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/announcements", r.URL.Path)
		w.Write([]byte(`[{"id":"a-1","title":"Jumu'ah","content":"Khutbah at 1:15","created_by":"Secretary","created_at":"2026-10-12T08:00:00","is_active":true,"priority":"high"}]`))
	})

	list, err := c.Announcements(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsHighPriority())
	assert.Equal(t, 2026, list[0].CreatedAt.Year())
}
