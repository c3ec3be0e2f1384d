package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/fonsecabarber/barber-api/pkg/errors"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "barberctl", SilenceUsage: true, SilenceErrors: true}
	AddAPIFlag(root)
	root.AddCommand(ContentCmd(), BookCmd(), AppointmentCmd())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestContentShowsDefaultsWhenOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	out, err := run(t, "--api", srv.URL, "content")
	require.NoError(t, err)
	assert.Contains(t, out, "showing defaults")
	assert.Contains(t, out, "Rua Exemplo, 123")
	assert.Contains(t, out, "Services (0)")
}

func TestContentMergesServerDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"settings":{"address":"Av. Paulista, 1000"},"services":[{"name":"Corte","price":"R$30"}],"gallery":[],"video_gallery":[],"appointments":[{"id":3,"client_name":"João","date":"2024-06-01","time":"14:00","status":"Pendente"}]}`))
	}))
	defer srv.Close()

	out, err := run(t, "--api", srv.URL, "content")
	require.NoError(t, err)
	assert.Contains(t, out, "Av. Paulista, 1000")
	assert.Contains(t, out, "Services (1)")
	assert.Contains(t, out, "#3")
	assert.NotContains(t, out, "showing defaults")
}

func TestBookValidatesBeforeCalling(t *testing.T) {
	called := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called <- struct{}{}
	}))
	defer srv.Close()

	_, err := run(t, "--api", srv.URL, "book", "--name", "Ana", "--date", "02/06/2024", "--time", "09:30")
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"date"}, appErr.Fields)
	assert.Empty(t, called)
}

func TestBookPrintsLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/content":
			_, _ = w.Write([]byte(`{"settings":{"whatsapp_number":"5511912345678"}}`))
		default:
			_, _ = w.Write([]byte(`{"success":true}`))
		}
	}))
	defer srv.Close()

	out, err := run(t, "--api", srv.URL, "book", "--name", "Ana", "--date", "2024-06-02", "--time", "09:30")
	require.NoError(t, err)
	assert.Contains(t, out, "Appointment recorded for Ana")
	assert.Contains(t, out, "https://wa.me/5511912345678?text=")
}

func TestAppointmentStatusRejectsUnknownStatus(t *testing.T) {
	_, err := run(t, "appointment", "status", "1", "Feito")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status")

	_, err = run(t, "appointment", "status", "x", "Cancelado")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid appointment ID")
}
