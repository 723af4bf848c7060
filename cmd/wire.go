package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	apigw "github.com/alnitaka/zenon-cli/internal/adapters/api"
	chainstore "github.com/alnitaka/zenon-cli/internal/adapters/secrets/chain"
	"github.com/alnitaka/zenon-cli/internal/application"
	"github.com/alnitaka/zenon-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	configDirName = ".zenon"
	configName    = "config"
	configType    = "toml"

	baseURLKey     = "api.base_url"
	serviceKey     = "auth.service"
	secretsRootKey = "secrets.root"

	defaultBaseURL = "http://localhost:8080"
	defaultService = "org.alnitaka.zenon"

	requestTimeout = 30 * time.Second
)

type app struct {
	gateway     *apigw.Gateway
	session     *application.SessionService
	secretStore ports.SecretStore
	configPath  string
	now         func() time.Time
}

func wireApp() (*app, error) {
	cfg, configDir, err := loadConfig()
	if err != nil {
		return nil, err
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(cfg.GetString(secretsRootKey))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	gateway := apigw.NewGateway(cfg.GetString(baseURLKey), http.DefaultClient, requestTimeout)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	session := application.NewSessionService(gateway, secretStore, cfg.GetString(serviceKey), ports.SystemClock{}, logger)

	return &app{
		gateway:     gateway,
		session:     session,
		secretStore: secretStore,
		configPath:  filepath.Join(configDir, configName+"."+configType),
		now:         time.Now,
	}, nil
}

func loadConfig() (*viper.Viper, string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("resolve home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, configDirName)

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(configDir)
	cfg.SetDefault(baseURLKey, defaultBaseURL)
	cfg.SetDefault(serviceKey, defaultService)
	cfg.SetDefault(secretsRootKey, filepath.Join(configDir, "secrets"))
	cfg.SetEnvPrefix("ZN")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, "", fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, configDir, nil
}
