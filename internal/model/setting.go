package model

// Setting is a single key/value row of the settings table.
type Setting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

const (
	SettingWhatsAppNumber = "whatsapp_number"
	SettingAddress        = "address"
	SettingHeroVideo      = "hero_video"
)

const (
	DefaultWhatsAppNumber = "5511999999999"
	DefaultAddress        = "Rua Exemplo, 123"
	DefaultHeroVideo      = "https://oacqvijuafuzsbyyqdtt.supabase.co/storage/v1/object/public/barber-assets/gallery-video-1771970955047.MOV"
)

// DefaultSettings returns a fresh copy of the compiled-in settings.
func DefaultSettings() map[string]string {
	return map[string]string{
		SettingWhatsAppNumber: DefaultWhatsAppNumber,
		SettingAddress:        DefaultAddress,
		SettingHeroVideo:      DefaultHeroVideo,
	}
}

// FlattenSettings starts from defaults and applies every stored row in order.
// A duplicate key keeps the last row seen.
func FlattenSettings(defaults map[string]string, rows []Setting) map[string]string {
	out := make(map[string]string, len(defaults)+len(rows))
	for k, v := range defaults {
		out[k] = v
	}
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out
}
