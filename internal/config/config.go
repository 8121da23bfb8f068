package config

import (
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
}

type PostgresConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
	SSLMode      string `toml:"sslMode"`
}

type LogConfig struct {
	LogPath string `toml:"logPath"`
}

type AIChatModelConfig struct {
	APIKey         string  `toml:"apiKey"`
	BaseURL        string  `toml:"baseURL"`
	Model          string  `toml:"model"`
	TimeoutSeconds int     `toml:"timeoutSeconds"`
	Temperature    float32 `toml:"temperature"`
}

type AIImageConfig struct {
	Enabled bool   `toml:"enabled"`
	APIKey  string `toml:"apiKey"`
	BaseURL string `toml:"baseURL"`
	Model   string `toml:"model"`
	Size    string `toml:"size"`
}

type AIConfig struct {
	ChatModel AIChatModelConfig `toml:"chatModel"`
	Image     AIImageConfig     `toml:"image"`
}

type StorageConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"apiKey"`
	Bucket string `toml:"bucket"`
}

type Config struct {
	MainConfig     `toml:"mainConfig"`
	PostgresConfig `toml:"postgresConfig"`
	LogConfig      `toml:"logConfig"`
	AIConfig       `toml:"aiConfig"`
	StorageConfig  `toml:"storageConfig"`
}

var config *Config

func LoadConfig() error {
	// .env 先于配置文件加载，密钥兜底依赖它
	_ = godotenv.Load()

	configPath := "configs/config_local.toml"
	if p := os.Getenv("SADAM_CONFIG"); p != "" {
		configPath = p
	}
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Printf("加载配置文件失败: %v, 尝试使用默认设置", err)
		return err
	}
	applyEnvOverrides(config)
	return nil
}

// applyEnvOverrides 密钥类配置允许用环境变量兜底
func applyEnvOverrides(c *Config) {
	if c.AIConfig.ChatModel.APIKey == "" {
		c.AIConfig.ChatModel.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.AIConfig.ChatModel.Model == "" {
		c.AIConfig.ChatModel.Model = os.Getenv("GPT_MODEL")
	}
	if c.AIConfig.Image.APIKey == "" {
		c.AIConfig.Image.APIKey = c.AIConfig.ChatModel.APIKey
	}
	if c.StorageConfig.URL == "" {
		c.StorageConfig.URL = os.Getenv("SUPABASE_URL")
	}
	if c.StorageConfig.APIKey == "" {
		c.StorageConfig.APIKey = os.Getenv("SUPABASE_KEY")
	}
}

func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
	}
	return config
}
