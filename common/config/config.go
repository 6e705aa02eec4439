package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func loadEnvString(key string, result *string) {
	s, ok := os.LookupEnv(key)

	if !ok {
		return
	}
	*result = s
}

func loadEnvUint(key string, result *uint) {
	s, ok := os.LookupEnv(key)

	if !ok {
		return
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return
	}
	*result = uint(n)
}

func loadEnvBool(key string, result *bool) {
	s, ok := os.LookupEnv(key)

	if !ok {
		return
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return
	}
	*result = b
}

/* Configuration */

/* PgSQL Configuration */
type pgSqlConfig struct {
	Host     string `json:"host"`
	Port     uint   `json:"port"`
	Database string `json:"database"`
	SslMode  string `json:"ssl_mode"`
	User     string `json:"user"`
	Password string `json:"password"`
}

func (p pgSqlConfig) ConnStr() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s database=%s sslmode=%s", p.Host, p.Port, p.User, p.Password, p.Database, p.SslMode)
}

func defaultPgSql() pgSqlConfig {
	return pgSqlConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "crawler_results",
		User:     "",
		Password: "",
		SslMode:  "disable",
	}
}

func (p *pgSqlConfig) loadFromEnv() {
	loadEnvString("POSTGRES_HOST", &p.Host)
	loadEnvUint("POSTGRES_PORT", &p.Port)
	loadEnvString("POSTGRES_DB_NAME", &p.Database)
	loadEnvString("POSTGRES_SSLMODE", &p.SslMode)
	loadEnvString("POSTGRES_USERNAME", &p.User)
	loadEnvString("POSTGRES_PASSWORD", &p.Password)
}

/* Listen Configuration */

type listenConfig struct {
	Host string `json:"host"`
	Port uint   `json:"port"`
}

func (l listenConfig) Addr() string {
	return fmt.Sprintf("%s:%d", l.Host, l.Port)
}

func defaultListenConfig() listenConfig {
	return listenConfig{
		Host: "127.0.0.1",
		Port: 8080,
	}
}

func (l *listenConfig) loadFromEnv() {
	loadEnvString("LISTEN_HOST", &l.Host)
	loadEnvUint("LISTEN_PORT", &l.Port)
}

/* NATS Configuration */

type natsConfig struct {
	Enabled  bool
	Host     string
	Port     uint
	Username string
	Password string
}

func (c *natsConfig) loadFromEnv() {
	loadEnvBool("NATS_ENABLED", &c.Enabled)
	loadEnvString("NATS_HOST", &c.Host)
	loadEnvUint("NATS_PORT", &c.Port)
	c.Username = getEnv("NATS_USER", "")
	c.Password = getEnv("NATS_PASSWORD", "")
}

func (c *natsConfig) URL() string {
	return fmt.Sprintf("nats://%s:%d", c.Host, c.Port)
}

func defaultNatsConfig() natsConfig {
	return natsConfig{
		Enabled:  false,
		Host:     "localhost",
		Port:     4222,
		Username: "",
		Password: "",
	}
}

/* Redis Configuration */

type redisConfig struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     uint   `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

func (r *redisConfig) loadFromEnv() {
	loadEnvBool("REDIS_ENABLED", &r.Enabled)
	loadEnvString("REDIS_HOST", &r.Host)
	loadEnvUint("REDIS_PORT", &r.Port)
	loadEnvString("REDIS_PASSWORD", &r.Password)

	if dbStr := getEnv("REDIS_DB", "0"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			r.DB = db
		}
	}
}

func defaultRedisConfig() redisConfig {
	return redisConfig{
		Enabled:  false,
		Host:     "localhost",
		Port:     6379,
		Password: "",
		DB:       0,
	}
}

/* GCS Configuration */

type GCSConfig struct {
	ProjectID       string
	CredentialsFile string
	Bucket          string
}

func (g *GCSConfig) loadFromEnv() {
	g.ProjectID = getEnv("GCS_PROJECT_ID", "")
	g.CredentialsFile = getEnv("GCS_CREDENTIALS_FILE", "")
	g.Bucket = getEnv("GCS_STORAGE_BUCKET", "")
}

func defaultGcsConfig() GCSConfig {
	return GCSConfig{
		ProjectID:       "",
		CredentialsFile: "",
		Bucket:          "",
	}
}

/* Crawler Configuration */

type crawlerConfig struct {
	UserAgent           string
	FetchTimeoutSeconds uint
	DomainWorkers       uint
	Seeds               []string
}

func (c *crawlerConfig) loadFromEnv() {
	loadEnvString("CRAWLER_USER_AGENT", &c.UserAgent)
	loadEnvUint("CRAWLER_FETCH_TIMEOUT_SECONDS", &c.FetchTimeoutSeconds)
	loadEnvUint("CRAWLER_DOMAIN_WORKERS", &c.DomainWorkers)

	if seeds := getEnv("CRAWLER_SEEDS", ""); seeds != "" {
		c.Seeds = nil
		for _, seed := range strings.Split(seeds, ",") {
			seed = strings.TrimSpace(seed)
			if seed != "" {
				c.Seeds = append(c.Seeds, seed)
			}
		}
	}
}

func defaultCrawlerConfig() crawlerConfig {
	return crawlerConfig{
		UserAgent:           "coast-crawler/1.0",
		FetchTimeoutSeconds: 5,
		DomainWorkers:       1,
		Seeds:               nil,
	}
}

type Config struct {
	Listen  listenConfig
	PgSql   pgSqlConfig
	Nats    natsConfig
	Redis   redisConfig
	GCS     GCSConfig
	Crawler crawlerConfig
}

func (c *Config) LoadFromEnv() {
	c.Listen.loadFromEnv()
	c.PgSql.loadFromEnv()
	c.Nats.loadFromEnv()
	c.Redis.loadFromEnv()
	c.GCS.loadFromEnv()
	c.Crawler.loadFromEnv()
}

func DefaultConfig() Config {
	return Config{
		Listen:  defaultListenConfig(),
		PgSql:   defaultPgSql(),
		Nats:    defaultNatsConfig(),
		Redis:   defaultRedisConfig(),
		GCS:     defaultGcsConfig(),
		Crawler: defaultCrawlerConfig(),
	}
}
