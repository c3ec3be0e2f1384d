package model

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenSettingsKeepsDefaultKeys(t *testing.T) {
	rows := []Setting{
		{Key: SettingAddress, Value: "Av. Paulista, 1000"},
		{Key: "instagram", Value: "@fonseca"},
	}

	got := FlattenSettings(DefaultSettings(), rows)

	assert.Equal(t, DefaultWhatsAppNumber, got[SettingWhatsAppNumber])
	assert.Equal(t, DefaultHeroVideo, got[SettingHeroVideo])
	assert.Equal(t, "Av. Paulista, 1000", got[SettingAddress])
	assert.Equal(t, "@fonseca", got["instagram"])
}

func TestFlattenSettingsLastDuplicateWins(t *testing.T) {
	got := FlattenSettings(DefaultSettings(), []Setting{
		{Key: SettingWhatsAppNumber, Value: "1"},
		{Key: SettingWhatsAppNumber, Value: "2"},
	})
	assert.Equal(t, "2", got[SettingWhatsAppNumber])
}

func TestFlattenSettingsDoesNotMutateDefaults(t *testing.T) {
	defaults := DefaultSettings()
	FlattenSettings(defaults, []Setting{{Key: SettingAddress, Value: "x"}})
	assert.Equal(t, DefaultAddress, defaults[SettingAddress])
}

func TestMediaItemAcceptsStringOrObject(t *testing.T) {
	var items []MediaItem
	require.NoError(t, json.Unmarshal([]byte(`["https://a/1.jpg", {"id": 7, "url": "https://a/2.jpg"}]`), &items))

	require.Len(t, items, 2)
	assert.Equal(t, MediaItem{URL: "https://a/1.jpg"}, items[0])
	assert.Equal(t, MediaItem{ID: 7, URL: "https://a/2.jpg"}, items[1])
	assert.Equal(t, []string{"https://a/1.jpg", "https://a/2.jpg"}, MediaURLs(items))

	var bad MediaItem
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestFallbackDocumentEncodesEmptyLists(t *testing.T) {
	doc := FallbackDocument(SourceTimeout)
	assert.True(t, doc.Degraded())

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"services", "gallery", "video_gallery", "appointments"} {
		assert.JSONEq(t, `[]`, string(decoded[key]), key)
	}
	assert.NotContains(t, decoded, "Source")
}

func TestCloneDoesNotShareState(t *testing.T) {
	doc := ContentDocument{
		Settings: map[string]string{"a": "1"},
		Services: []Service{{Name: "Corte"}},
		Source:   SourceStore,
	}
	clone := doc.Clone()
	clone.Settings["a"] = "2"
	clone.Services[0].Name = "Barba"

	assert.Equal(t, "1", doc.Settings["a"])
	assert.Equal(t, "Corte", doc.Services[0].Name)
	assert.Equal(t, SourceStore, clone.Source)
	assert.False(t, clone.Degraded())
}

func TestNewestFirst(t *testing.T) {
	list := []Appointment{
		{ID: 1, Date: "2024-06-01", Time: "10:00"},
		{ID: 2, Date: "2024-06-02", Time: "09:00"},
		{ID: 3, Date: "2024-06-01", Time: "14:00"},
	}
	sort.Slice(list, func(i, j int) bool { return NewestFirst(list[i], list[j]) })
	assert.Equal(t, []int64{2, 3, 1}, []int64{list[0].ID, list[1].ID, list[2].ID})
}

func TestAppointmentStatusValid(t *testing.T) {
	assert.True(t, AppointmentStatusPending.Valid())
	assert.True(t, AppointmentStatus("Concluído").Valid())
	assert.False(t, AppointmentStatus("done").Valid())
}
