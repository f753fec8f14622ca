package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Site      SiteConfig      `mapstructure:"site"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	Chat      ChatConfig      `mapstructure:"chat"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	Mode         string
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type SiteConfig struct {
	BaseURL       string `mapstructure:"base_url"`       // 站点对外地址，用于sitemap
	DefaultLocale string `mapstructure:"default_locale"` // 默认语言
}

type DatabaseConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	Database     string
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	LogLevel     string `mapstructure:"log_level"`

	// SSL配置 (用于云数据库如 TiDB Cloud)
	SSLMode     bool   `mapstructure:"ssl_mode"`
	SSLCert     string `mapstructure:"ssl_cert"`
	SSLKey      string `mapstructure:"ssl_key"`
	SSLRootCert string `mapstructure:"ssl_root_cert"`
	TLSConfig   string `mapstructure:"tls_config"`
}

type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int `mapstructure:"pool_size"`
	MinIdleConns int `mapstructure:"min_idle_conns"`
}

type CacheConfig struct {
	ListTTL   int `mapstructure:"list_ttl"`   // 列表缓存秒数
	DetailTTL int `mapstructure:"detail_ttl"` // 详情缓存秒数
}

// CrawlerConfig 外部自动化(采集/富化/巡检)接口配置
type CrawlerConfig struct {
	Secret               string `mapstructure:"secret"` // 共享密钥，Bearer token
	HealthCheckBatch     int    `mapstructure:"health_check_batch"`
	HealthCheckTimeout   int    `mapstructure:"health_check_timeout"` // 单个URL探测超时(秒)
	HealthCheckUserAgent string `mapstructure:"health_check_user_agent"`
}

// ChatConfig Copilot聊天中转配置
type ChatConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // 上游请求超时(秒)
}

type JWTConfig struct {
	Secret      string
	ExpireHours int `mapstructure:"expire_hours"`
}

// AdminConfig 初始管理员账号，启动时显式种入数据库
type AdminConfig struct {
	Username string
	Password string
}

type LogConfig struct {
	Level    string
	FilePath string `mapstructure:"file_path"`
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int
}

var GlobalConfig *Config

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	GlobalConfig = &config
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 6060)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", 60)
	viper.SetDefault("server.write_timeout", 60)
	viper.SetDefault("site.base_url", "https://www.aigcpilot.com")
	viper.SetDefault("site.default_locale", "zh")
	viper.SetDefault("cache.list_ttl", 300)
	viper.SetDefault("cache.detail_ttl", 3600)
	viper.SetDefault("crawler.health_check_batch", 50)
	viper.SetDefault("crawler.health_check_timeout", 10)
	viper.SetDefault("crawler.health_check_user_agent", "AIGCPilot HealthBot/1.0")
	viper.SetDefault("chat.base_url", "https://api.deepseek.com")
	viper.SetDefault("chat.model", "deepseek-chat")
	viper.SetDefault("chat.timeout", 120)
	viper.SetDefault("jwt.expire_hours", 24)
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_second", 10)
	viper.SetDefault("rate_limit.burst", 20)
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)

	if c.SSLMode {
		if c.SSLRootCert == "" && c.SSLCert == "" && c.SSLKey == "" {
			dsn += "&tls=skip-verify"
		} else if c.TLSConfig != "" {
			dsn += "&tls=" + c.TLSConfig
		} else {
			dsn += "&tls=custom"
		}
	}

	return dsn
}

// GetAddr 获取Redis地址
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetListTTL 列表缓存过期时间
func (c *CacheConfig) GetListTTL() time.Duration {
	return time.Duration(c.ListTTL) * time.Second
}

// GetDetailTTL 详情缓存过期时间
func (c *CacheConfig) GetDetailTTL() time.Duration {
	return time.Duration(c.DetailTTL) * time.Second
}

// GetProbeTimeout 健康巡检单个URL的探测超时
func (c *CrawlerConfig) GetProbeTimeout() time.Duration {
	return time.Duration(c.HealthCheckTimeout) * time.Second
}

// GetTimeout 上游聊天请求超时
func (c *ChatConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
