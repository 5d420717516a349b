package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNotificationPreferences(t *testing.T) {
	p := DefaultNotificationPreferences()
	assert.True(t, p.WarrantyExpiration)
	assert.True(t, p.UpcomingExpiration)
	assert.True(t, p.EmailNotifications)
	assert.True(t, p.PushNotifications)
	assert.False(t, p.NewFeatures)
	assert.False(t, p.WeeklyDigest)
}

func TestNotificationPreferences_Toggle(t *testing.T) {
	p := DefaultNotificationPreferences()

	v, err := p.Toggle("weeklyDigest")
	require.NoError(t, err)
	assert.True(t, v)
	assert.True(t, p.WeeklyDigest)

	v, err = p.Toggle("pushNotifications")
	require.NoError(t, err)
	assert.False(t, v)
	assert.False(t, p.PushNotifications)

	_, err = p.Toggle("sms")
	require.Error(t, err)
}

func TestNotificationPreferences_NamesAndValue(t *testing.T) {
	p := DefaultNotificationPreferences()
	names := p.Names()
	require.Len(t, names, 6)
	assert.Equal(t, "emailNotifications", names[0])

	v, ok := p.Value("newFeatures")
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = p.Value("nope")
	assert.False(t, ok)
}
