package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Database struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

type RabbitMQ struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type Redis struct {
	Host string
	Port int
}

type HTTP struct {
	APIPort     int
	GatewayPort int
}

type App struct {
	Database Database
	Rabbit   RabbitMQ
	Redis    Redis
	HTTP     HTTP
}

func (r Redis) Addr() string { return fmt.Sprintf("%s:%d", r.Host, r.Port) }

// Load reads the application config. The format is a two-level YAML subset
// (sections `database:`, `rabbitmq:`, `redis:`, `http:` with key: value
// pairs); a purpose-built reader keeps the config path dependency-free.
func Load(path string) (App, error) {
	f, err := os.Open(path)
	if err != nil {
		return App{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := App{
		Database: Database{Port: 5432, SSLMode: "disable", MaxConns: 10},
		Rabbit:   RabbitMQ{Port: 5672, VHost: "/"},
		Redis:    Redis{Port: 6379},
		HTTP:     HTTP{APIPort: 3000, GatewayPort: 3001},
	}

	var section string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			section = strings.TrimSuffix(line, ":")
			continue
		}
		kv := strings.SplitN(line, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		val := strings.Trim(strings.TrimSpace(kv[1]), `"'`)

		switch section {
		case "database":
			cfg.Database.assign(key, val)
		case "rabbitmq":
			cfg.Rabbit.assign(key, val)
		case "redis":
			cfg.Redis.assign(key, val)
		case "http":
			cfg.HTTP.assign(key, val)
		}
	}
	if err := sc.Err(); err != nil {
		return App{}, fmt.Errorf("read config: %w", err)
	}

	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Name == "" {
		return App{}, fmt.Errorf("database config incomplete")
	}
	if cfg.Rabbit.Host == "" || cfg.Rabbit.User == "" {
		return App{}, fmt.Errorf("rabbitmq config incomplete")
	}
	if cfg.Redis.Host == "" {
		return App{}, fmt.Errorf("redis config incomplete")
	}
	return cfg, nil
}

func (d *Database) assign(key, val string) {
	switch key {
	case "host":
		d.Host = val
	case "port":
		d.Port = atoi(val, 5432)
	case "user":
		d.User = val
	case "password":
		d.Password = val
	case "database":
		d.Name = val
	case "sslmode":
		if val != "" {
			d.SSLMode = val
		}
	case "max_conns":
		d.MaxConns = atoi(val, 10)
	}
}

func (m *RabbitMQ) assign(key, val string) {
	switch key {
	case "host":
		m.Host = val
	case "port":
		m.Port = atoi(val, 5672)
	case "user":
		m.User = val
	case "password":
		m.Password = val
	case "vhost":
		if val != "" {
			m.VHost = val
		}
	}
}

func (r *Redis) assign(key, val string) {
	switch key {
	case "host":
		r.Host = val
	case "port":
		r.Port = atoi(val, 6379)
	}
}

func (h *HTTP) assign(key, val string) {
	switch key {
	case "api_port":
		h.APIPort = atoi(val, 3000)
	case "gateway_port":
		h.GatewayPort = atoi(val, 3001)
	}
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// FindConfig returns the first config path that exists.
func FindConfig() (string, error) {
	for _, p := range []string{"config.yaml", "deploy/config.example.yaml"} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", os.ErrNotExist
}
