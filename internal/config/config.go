// 包 config 负责加载与校验应用配置（settings.yaml），
// 对外提供结构体 Config 及默认值/合法性校验；
// API Key 可放在 .env 或环境变量中，避免写入配置文件。
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// apiKeyLen 为平台 Web API Key 的固定长度。
const apiKeyLen = 32

// 仅保留采集所需的字段，避免过度设计（KISS/YAGNI）。
type Config struct {
	APIKey    string `yaml:"STEAM_API_KEY"`
	Delay     int    `yaml:"DELAY"` // 相邻档案间延迟（秒），1-10
	Proxy     Proxy  `yaml:"PROXY"`
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"` // text|json|pretty
	LogColor  string `yaml:"LOG_COLOR"`  // auto|always|never
}

type Proxy struct {
	HTTP  string `yaml:"http"`
	HTTPS string `yaml:"https"`
}

// Load 从文件读取 YAML 并反序列化为 Config，同时进行基础校验与默认值填充。
// STEAM_API_KEY 为空时回退到环境变量（.env 存在时先加载，缺失则静默忽略）。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	if c.APIKey == "" {
		_ = godotenv.Load()
		c.APIKey = os.Getenv("STEAM_API_KEY")
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Validate 负责合法性检查与默认值设置，避免在业务层分散判空逻辑。
func (c *Config) Validate() error {
	if len(c.APIKey) != apiKeyLen {
		return fmt.Errorf("STEAM_API_KEY must be %d characters, got %d", apiKeyLen, len(c.APIKey))
	}
	if c.Delay == 0 {
		c.Delay = 3
	}
	if c.Delay < 1 || c.Delay > 10 {
		return errors.New("DELAY must be within 1..10 seconds")
	}
	if c.LogFormat == "" {
		c.LogFormat = "pretty"
	}
	if c.LogColor == "" {
		c.LogColor = "auto"
	}
	return nil
}
