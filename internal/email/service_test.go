package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fonsecabarber/barber-api/internal/config"
)

func TestComposeSetsHeaders(t *testing.T) {
	svc := NewSMTPService(config.NotifyConfig{SMTPHost: "localhost", SMTPPort: 2525, From: "agenda@fonseca.test"})

	var buf bytes.Buffer
	_, err := svc.compose(Message{To: "dono@fonseca.test", Subject: "Novo agendamento", Body: "João"}).WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "From: agenda@fonseca.test")
	assert.Contains(t, raw, "To: dono@fonseca.test")
	assert.Contains(t, raw, "Subject: Novo agendamento")
	assert.Contains(t, raw, "Jo")
}

func TestSendHonoursCancelledContext(t *testing.T) {
	svc := NewSMTPService(config.NotifyConfig{SMTPHost: "localhost", SMTPPort: 2525})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, svc.Send(ctx, Message{To: "x@y.z"}), context.Canceled)
}
