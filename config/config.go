package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultWebhookURL 默认的搜索webhook地址
const DefaultWebhookURL = "https://automation.invarianceai.io/webhook/shanthan"

// 会话存储类型
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMySQL  = "mysql"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // 不从配置文件读取，而是在加载后计算
	} `yaml:"server"`
	Webhook struct {
		URL           string `yaml:"url"`
		TimeoutSec    int    `yaml:"timeout_sec"`    // 0 表示不设置超时
		MaxConcurrent int    `yaml:"max_concurrent"` // 同时进行的webhook请求上限，0 表示不限制
	} `yaml:"webhook"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`
	Session struct {
		Store          string `yaml:"store"`            // memory / redis / mysql
		CookieName     string `yaml:"cookie_name"`      // 会话cookie名称
		IdleTimeoutMin int    `yaml:"idle_timeout_min"` // 会话空闲过期时间（分钟）
		OrphanAfterSec int    `yaml:"orphan_after_sec"` // 无本地运行时的加载状态超过该时间视为失败
	} `yaml:"session"`
	Results struct {
		Selectable bool `yaml:"selectable"` // 是否启用选择 + 深入查看
	} `yaml:"results"`

	DB struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"-"`                 // 不从配置文件读取，而是在加载后计算
		MaxOpenConns    int    `yaml:"max_open_conns"`    // 最大打开连接数
		MaxIdleConns    int    `yaml:"max_idle_conns"`    // 最大空闲连接数
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 连接最大生命周期（分钟）
	} `yaml:"database"`
	Redis struct {
		Addr      string `yaml:"addr"`
		Password  string `yaml:"password"`
		DB        int    `yaml:"db"`
		KeyPrefix string `yaml:"key_prefix"`
	} `yaml:"redis"`
	Scheduler struct {
		CheckIntervalSec int `yaml:"check_interval_sec"` // 会话清理检查间隔（秒）
	} `yaml:"scheduler"`
	Timeouts struct {
		RequestSec  int `yaml:"request_sec"`  // 请求超时，单位：秒
		ResponseSec int `yaml:"response_sec"` // 响应超时，单位：秒
		IdleSec     int `yaml:"idle_sec"`     // 空闲超时，单位：秒
	} `yaml:"timeouts"`
}

// Load 加载配置：.env -> config.yaml -> 环境变量覆盖
func Load() *Config {
	// 首先尝试加载.env文件中的环境变量
	_ = godotenv.Load() // 忽略错误，如果.env文件不存在，继续使用系统环境变量

	cfg, err := LoadFile("config.yaml")
	if err != nil {
		log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
		return loadFromEnv()
	}
	log.Println("Loading configuration from config.yaml")
	return cfg
}

// LoadFile 从指定的yaml文件加载配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	// 未出现在yaml中的开关默认开启
	cfg.Results.Selectable = true
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyEnv(&cfg)
	finalize(&cfg)
	return &cfg, nil
}

func loadFromEnv() *Config {
	// 当config.yaml加载失败时，创建一个最小配置
	var cfg Config
	cfg.Results.Selectable = true

	applyEnv(&cfg)
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}
	finalize(&cfg)

	log.Println("配置从环境变量加载，部分配置可能缺失")
	return &cfg
}

// applyEnv 从环境变量中加载敏感信息和部署相关配置
func applyEnv(cfg *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if url := os.Getenv("WEBHOOK_URL"); url != "" {
		cfg.Webhook.URL = url
	}
	if store := os.Getenv("SESSION_STORE"); store != "" {
		cfg.Session.Store = store
	}

	// 数据库用户名和密码
	if envUsername := os.Getenv("DATABASE_USERNAME"); envUsername != "" {
		cfg.DB.Username = envUsername
	}
	if envPassword := os.Getenv("DATABASE_PASSWORD"); envPassword != "" {
		cfg.DB.Password = envPassword
	}

	if envPassword := os.Getenv("REDIS_PASSWORD"); envPassword != "" {
		cfg.Redis.Password = envPassword
	}
}

// finalize 设置默认值并计算派生字段
func finalize(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	// 计算 Server.Addr 字段
	cfg.Server.Addr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	if cfg.Webhook.URL == "" {
		cfg.Webhook.URL = DefaultWebhookURL
	}

	if cfg.Session.Store == "" {
		cfg.Session.Store = StoreMemory
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "pf_session"
	}
	if cfg.Session.IdleTimeoutMin <= 0 {
		cfg.Session.IdleTimeoutMin = 60
	}
	if cfg.Session.OrphanAfterSec <= 0 {
		cfg.Session.OrphanAfterSec = 600
	}

	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "profile_finder:session:"
	}
	if cfg.Scheduler.CheckIntervalSec <= 0 {
		cfg.Scheduler.CheckIntervalSec = 60
	}

	// 计算 DB.DSN 字段
	if cfg.DB.DSN == "" && cfg.DB.Host != "" {
		if cfg.DB.Charset == "" {
			cfg.DB.Charset = "utf8mb4"
		}
		if cfg.DB.Port == 0 {
			cfg.DB.Port = 3306
		}

		parseTime := ""
		if cfg.DB.ParseTime {
			parseTime = "&parseTime=true"
		}

		cfg.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
			cfg.DB.Username,
			cfg.DB.Password,
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.Database,
			cfg.DB.Charset,
			parseTime)
	}
}
