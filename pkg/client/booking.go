package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fonsecabarber/barber-api/internal/model"
)

// WhatsAppLink builds the prefilled wa.me link for a booking request.
func WhatsAppLink(number string, req model.CreateAppointmentRequest) string {
	if number == "" {
		number = model.DefaultWhatsAppNumber
	}
	service := req.ServiceName
	if service == "" {
		service = model.DefaultServiceName
	}
	msg := fmt.Sprintf("Olá! Meu nome é %s. Gostaria de agendar %s para o dia %s às %s.",
		req.ClientName, service, req.Date, req.Time)
	return "https://wa.me/" + number + "?text=" + encodeComponent(msg)
}

// encodeComponent escapes like a URI component: spaces become %20, not +.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Booker records a booking and hands the customer over to WhatsApp.
type Booker struct {
	client *Client
	store  *Store
}

func NewBooker(client *Client, store *Store) *Booker {
	return &Booker{client: client, store: store}
}

// Book posts the appointment and returns the deep link. The link is returned
// even when recording fails, since the conversation on WhatsApp is what
// actually confirms the slot; the error tells the caller the panel missed it.
// On success the store is refreshed so the new appointment is visible.
func (b *Booker) Book(ctx context.Context, req model.CreateAppointmentRequest) (string, error) {
	if req.ServiceName == "" {
		req.ServiceName = model.DefaultServiceName
	}
	link := WhatsAppLink(b.store.Setting(model.SettingWhatsAppNumber), req)

	if err := b.client.CreateAppointment(ctx, req); err != nil {
		return link, fmt.Errorf("failed to record appointment: %w", err)
	}
	// A stale listing is not a booking failure.
	_, _ = b.store.Refresh(ctx, b.client)
	return link, nil
}
