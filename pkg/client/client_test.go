package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fonsecabarber/barber-api/internal/model"
)

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("5511988887777", model.CreateAppointmentRequest{
		ClientName: "João", ServiceName: "Corte & Barba", Date: "2024-06-01", Time: "14:00",
	})

	require.True(t, strings.HasPrefix(link, "https://wa.me/5511988887777?text="))
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t,
		"Olá! Meu nome é João. Gostaria de agendar Corte & Barba para o dia 2024-06-01 às 14:00.",
		u.Query().Get("text"))
}

func TestWhatsAppLinkDefaults(t *testing.T) {
	link := WhatsAppLink("", model.CreateAppointmentRequest{ClientName: "Ana", Date: "2024-06-02", Time: "09:30"})

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/"+model.DefaultWhatsAppNumber, u.Path)
	assert.Contains(t, u.Query().Get("text"), "agendar Geral para")
}

func newAPI(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestBookPostsThenLinks(t *testing.T) {
	posted := make(chan model.CreateAppointmentRequest, 1)
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/admin/appointments":
			var req model.CreateAppointmentRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			posted <- req
			_, _ = w.Write([]byte(`{"success":true}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/content":
			_, _ = w.Write([]byte(`{"settings":{"whatsapp_number":"5511900000000"},"appointments":[{"id":1,"client_name":"João","status":"Pendente"}]}`))
		default:
			http.NotFound(w, r)
		}
	})

	store := NewStore()
	link, err := NewBooker(c, store).Book(context.Background(), model.CreateAppointmentRequest{
		ClientName: "João", Date: "2024-06-01", Time: "14:00",
	})
	require.NoError(t, err)

	req := <-posted
	assert.Equal(t, model.DefaultServiceName, req.ServiceName)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/"+model.DefaultWhatsAppNumber+"?text="))

	doc := store.Snapshot()
	require.Len(t, doc.Appointments, 1)
	assert.Equal(t, "5511900000000", doc.Settings[model.SettingWhatsAppNumber])
}

func TestBookReturnsLinkWhenRecordingFails(t *testing.T) {
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"permission denied","code":"internal"}`))
	})

	link, err := NewBooker(c, NewStore()).Book(context.Background(), model.CreateAppointmentRequest{
		ClientName: "Ana", ServiceName: "Barba", Date: "2024-06-02", Time: "09:30",
	})
	require.Error(t, err)
	assert.NotEmpty(t, link)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "permission denied", apiErr.Message)
	assert.Equal(t, "internal", apiErr.Code)
}

func TestAPIErrorFallsBackToRawBody(t *testing.T) {
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	err := c.Health(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad gateway", apiErr.Message)
	assert.Equal(t, "HTTP 502: bad gateway", apiErr.Error())
}
