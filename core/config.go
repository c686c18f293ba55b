package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Config custody config
type Config struct {
	App     App       `json:"app"`
	DB      db.Config `json:"db"`
	Vault   Vault     `json:"vault"`
	Auth    Auth      `json:"auth"`
	Redis   Redis     `json:"redis"`
	Webhook Webhook   `json:"webhook"`
	Relay   Relay     `json:"relay"`
}

// App app config
type App struct {
	Location string `json:"location"`
}

// Vault vault identity
type Vault struct {
	// ChainID domain separator mixed into every correlation token
	ChainID string `json:"chain_id" valid:"required"`
	// Address identity the vault holds custody under
	Address string `json:"address" valid:"uuid,required"`
	// Admin initial admin, granted once on a fresh store
	Admin string `json:"admin" valid:"uuid,required"`
}

// Auth api auth config
type Auth struct {
	SigningKey string `json:"signing_key" valid:"required"`
	Issuer     string `json:"issuer"`
}

// Redis redis stream relay target
type Redis struct {
	Addr   string `json:"addr"`
	DB     int    `json:"db"`
	Stream string `json:"stream"`
}

// Webhook http relay target
type Webhook struct {
	URL     string        `json:"url" valid:"url,optional"`
	Timeout time.Duration `json:"timeout"`
}

// Relay notification relay worker config
type Relay struct {
	Batch    int           `json:"batch"`
	Interval time.Duration `json:"interval"`
	// Settle how long an outbox gap may still be filled by a slower writer
	Settle time.Duration `json:"settle"`
}
