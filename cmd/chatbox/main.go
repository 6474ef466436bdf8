package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nanami9426/officerchat/internal/chatbox"
	"github.com/spf13/viper"
)

func loadConfig() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CHATBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_url", "http://127.0.0.1:8000")
	v.SetDefault("duty_poll_interval", "5s")
	defaults := chatbox.DefaultCallsignTemplates()
	v.SetDefault("callsign_template", defaults.Single)
	v.SetDefault("paired_unit_template", defaults.Paired)

	v.SetConfigName("chatbox")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "read config: %v\n", err)
			os.Exit(1)
		}
	}
	return v
}

func main() {
	v := loadConfig()
	token := v.GetString("token")
	if token == "" {
		fmt.Fprintln(os.Stderr, "CHATBOX_TOKEN is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := chatbox.NewClient(v.GetString("api_url"), token)
	err := chatbox.Run(ctx, client, chatbox.Options{
		PollInterval: v.GetDuration("duty_poll_interval"),
		Templates: chatbox.CallsignTemplates{
			Single: v.GetString("callsign_template"),
			Paired: v.GetString("paired_unit_template"),
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatbox: %v\n", err)
		os.Exit(1)
	}
}
