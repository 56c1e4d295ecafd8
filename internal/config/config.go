// Package config is used to load the configuration file
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/smallyu/pubcrypt/internal/ciphertext"
	"github.com/smallyu/pubcrypt/internal/crypto/elgamal"
)

type crypt struct {
	Format string `mapstructure:"format"`
}

type genkey struct {
	Min   uint64 `mapstructure:"min"`
	Max   uint64 `mapstructure:"max"`
	Armor bool   `mapstructure:"armor"`
}

// Config is the configuration struct
type Config struct {
	Verbose bool   `mapstructure:"verbose"`
	Crypt   crypt  `mapstructure:"crypt"`
	Genkey  genkey `mapstructure:"genkey"`
}

// Format returns the configured ciphertext format.
func (c *Config) Format() ciphertext.Format {
	return ciphertext.Format(c.Crypt.Format)
}

func (c *Config) verify() error {
	if c.Crypt.Format == "" {
		c.Crypt.Format = string(ciphertext.FormatBinary)
	}
	if _, err := ciphertext.ParseFormat(c.Crypt.Format); err != nil {
		return fmt.Errorf("config: crypt.format: %v", err)
	}

	if c.Genkey.Min == 0 {
		c.Genkey.Min = elgamal.PrimeMin
	}
	if c.Genkey.Max == 0 {
		c.Genkey.Max = elgamal.PrimeMax
	}
	if c.Genkey.Min < elgamal.PrimeMin {
		return fmt.Errorf("config: genkey.min must be at least %d", elgamal.PrimeMin)
	}
	if c.Genkey.Min > c.Genkey.Max {
		return fmt.Errorf("config: genkey.min (%d) must not exceed genkey.max (%d)", c.Genkey.Min, c.Genkey.Max)
	}

	return nil
}

// LoadConfig loads the configuration file
func LoadConfig() (*Config, error) {
	return load(viper.GetViper())
}

func load(v *viper.Viper) (*Config, error) {
	var c Config

	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %v", err)
	}

	if err := c.verify(); err != nil {
		return nil, fmt.Errorf("config: failed to verify: %v", err)
	}

	return &c, nil
}
