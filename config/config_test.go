package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AVAILABILITY_STRICT", "true")

	LoadConfig()

	assert.Equal(t, "9090", AppConfig.AppPort, "APP_PORT from env")
	assert.True(t, AppConfig.AvailabilityStrict)
	assert.False(t, AppConfig.BookingUniqueIndex, "BOOKING_UNIQUE_INDEX defaults to false")
	assert.Equal(t, 24, AppConfig.TokenTTLHours)
	assert.Equal(t, "telemedicine", AppConfig.DatabaseName)
	assert.False(t, IsProduction(), "development environment by default")
}

func TestUsesMemoryStore(t *testing.T) {
	AppConfig.DatabaseURL = "memory://"
	assert.True(t, UsesMemoryStore())

	AppConfig.DatabaseURL = "mongodb://localhost:27017"
	assert.False(t, UsesMemoryStore())
}
