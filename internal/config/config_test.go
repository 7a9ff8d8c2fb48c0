package config

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.PoolSize)
	assert.Equal(t, "3000", cfg.Srv.AuthServicePort)
	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.False(t, cfg.RabbitMq.Enabled)
	assert.Equal(t, "test-secret", cfg.App.PublicJwtSecret)
	assert.Contains(t, cfg.Defaulted, "DB_HOST")
	assert.NotContains(t, cfg.Defaulted, "JWT_SECRET")
}

func TestNew_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_POOL_SIZE", "4")
	t.Setenv("AUTH_SERVICE_PORT", "8081")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RABBITMQ_ENABLED", "true")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 4, cfg.DB.PoolSize)
	assert.Equal(t, "8081", cfg.Srv.AuthServicePort)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
	assert.True(t, cfg.RabbitMq.Enabled)
	assert.NotContains(t, cfg.Defaulted, "DB_HOST")
}

func TestNew_MissingSecretFailsClosed(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := New()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingJwtSecret)
}

func TestNew_BlankSecretFailsClosed(t *testing.T) {
	t.Setenv("JWT_SECRET", "   ")

	_, err := New()
	assert.ErrorIs(t, err, ErrMissingJwtSecret)
}

func TestNew_InvalidValues(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"non numeric db port", "DB_PORT", "abc", nil},
		{"zero pool size", "DB_POOL_SIZE", "0", ErrInvalidPoolSize},
		{"port out of range", "AUTH_SERVICE_PORT", "70000", ErrInvalidPort},
		{"bad bool", "RABBITMQ_ENABLED", "maybe", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "secret")
			t.Setenv(tc.key, tc.value)

			_, err := New()
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestDBconfig_ConnString(t *testing.T) {
	c := &DBconfig{Host: "h", Port: 5432, User: "u", Password: "p", Database: "d", PoolSize: 10}
	assert.Equal(t, "postgres://u:p@h:5432/d?pool_max_conns=10&sslmode=disable", c.ConnString())
}

func TestDBconfig_ConnString_EscapesCredentials(t *testing.T) {
	c := &DBconfig{Host: "db", Port: 5432, User: "dr:iver", Password: "p@ss/w#rd", Database: "driver_auth", PoolSize: 7}

	poolCfg, err := pgxpool.ParseConfig(c.ConnString())
	require.NoError(t, err)

	assert.Equal(t, "db", poolCfg.ConnConfig.Host)
	assert.Equal(t, uint16(5432), poolCfg.ConnConfig.Port)
	assert.Equal(t, "dr:iver", poolCfg.ConnConfig.User)
	assert.Equal(t, "p@ss/w#rd", poolCfg.ConnConfig.Password)
	assert.Equal(t, "driver_auth", poolCfg.ConnConfig.Database)
	assert.Equal(t, int32(7), poolCfg.MaxConns)
}

func TestRabbitMqconfig_URL(t *testing.T) {
	testCases := []struct {
		name      string
		vhost     string
		wantVhost string
	}{
		{"default vhost", "", "/"},
		{"named vhost", "prod", "prod"},
		{"vhost with slash", "team/a", "team/a"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &RabbitMqconfig{Host: "mq", Port: 5672, User: "guest", Password: "p@ss/w#rd", VHost: tc.vhost}

			uri, err := amqp.ParseURI(c.URL())
			require.NoError(t, err)

			assert.Equal(t, "mq", uri.Host)
			assert.Equal(t, 5672, uri.Port)
			assert.Equal(t, "guest", uri.Username)
			assert.Equal(t, "p@ss/w#rd", uri.Password)
			assert.Equal(t, tc.wantVhost, uri.Vhost)
		})
	}
}

func TestConfig_OverridePort(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := New()
	require.NoError(t, err)
	require.Contains(t, cfg.Defaulted, "AUTH_SERVICE_PORT")

	require.NoError(t, cfg.OverridePort("8088"))
	assert.Equal(t, "8088", cfg.Srv.AuthServicePort)
	assert.NotContains(t, cfg.Defaulted, "AUTH_SERVICE_PORT")
	assert.Contains(t, cfg.Defaulted, "DB_HOST")

	assert.ErrorIs(t, cfg.OverridePort("70000"), ErrInvalidPort)
	assert.Error(t, cfg.OverridePort("http"))
}
