package utils

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var V = viper.New()

func InitConfig() {
	// .env is optional; values in it become visible to AutomaticEnv below.
	_ = godotenv.Load()

	V.SetConfigName("app")
	V.SetConfigType("yaml")
	V.AddConfigPath("./config")
	V.AddConfigPath(".")
	V.AutomaticEnv()
	V.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(V)

	err := V.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}
		panic(err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})

	v.SetDefault("auth.cookie_name", "session")
	v.SetDefault("auth.token_ttl", "12h")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.file_path", "officerchat.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("redis.address", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("push.driver", "local")
	v.SetDefault("push.channel", "leo:officer-chat")

	v.SetDefault("duty.cache_ttl", "0s")

	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 4096)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("snowflake.node", 1)
	v.SetDefault("chat.history_limit", DefaultChatHistoryLimit)
}

const (
	DefaultChatHistoryLimit = 100
	maxChatHistoryLimit     = 100
)

// ChatHistoryLimit returns the configured history window, never above 100.
func ChatHistoryLimit() int {
	n := V.GetInt("chat.history_limit")
	if n <= 0 {
		n = DefaultChatHistoryLimit
	}
	if n > maxChatHistoryLimit {
		n = maxChatHistoryLimit
	}
	return n
}
