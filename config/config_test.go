package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Server:    ServerConfig{Port: 8080},
		Auth:      AuthConfig{JWTSecret: "0123456789abcdef"},
		Calendar:  CalendarConfig{Timezone: "UTC"},
		RateLimit: RateLimitConfig{Enabled: true, Requests: 10, Window: time.Minute},
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("合法配置不应报错: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"EmptySecret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"ShortSecret", func(c *Config) { c.Auth.JWTSecret = "short" }},
		{"PortOutOfRange", func(c *Config) { c.Server.Port = 70000 }},
		{"UnknownTimezone", func(c *Config) { c.Calendar.Timezone = "Mars/Olympus" }},
		{"ZeroWindow", func(c *Config) { c.RateLimit.Window = 0 }},
	}
	for _, tt := range cases {
		c := validConfig()
		tt.mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: 期望校验失败", tt.name)
		}
	}

	c := validConfig()
	c.RateLimit = RateLimitConfig{Enabled: false}
	if err := c.Validate(); err != nil {
		t.Errorf("关闭限流时不应校验窗口: %v", err)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 9090\nauth:\n  jwt_secret: file-secret-0123456789\ncalendar:\n  timezone: UTC\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EDUOPS_SERVER_PORT", "9191")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("环境变量应覆盖配置文件: 期望 9191，实际 %d", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != "file-secret-0123456789" {
		t.Errorf("jwt_secret 读取失败: %q", cfg.Auth.JWTSecret)
	}
	if cfg.Database.Name != "eduops" || cfg.RateLimit.Window != time.Minute {
		t.Errorf("默认值未生效: db=%s window=%s", cfg.Database.Name, cfg.RateLimit.Window)
	}
	loc, err := cfg.Calendar.Location()
	if err != nil || loc != time.UTC {
		t.Errorf("时区解析失败: %v %v", loc, err)
	}
}
