package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWalkers = 16
	DefaultSteps   = 1000
	DefaultBurnIn  = 200
	DefaultSeed    = 42
	DefaultH0      = -6.73
	DefaultMBH     = 1e23
	DefaultTFall   = 13.8
	DefaultOmegaM  = 0.3
)

type Config struct {
	Model   string     `yaml:"model"`
	Move    string     `yaml:"move"`
	Walkers int        `yaml:"walkers"`
	Steps   int        `yaml:"steps"`
	BurnIn  int        `yaml:"burn_in"`
	Seed    int64      `yaml:"seed"`
	Workers int        `yaml:"workers"`
	Init    InitConfig `yaml:"init"`
}

type InitConfig struct {
	H0     float64 `yaml:"h0"`
	MBH    float64 `yaml:"m_bh"`
	TFall  float64 `yaml:"t_fall"`
	OmegaM float64 `yaml:"omega_m"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:   "lvilc",
		Move:    "stretch",
		Walkers: DefaultWalkers,
		Steps:   DefaultSteps,
		BurnIn:  DefaultBurnIn,
		Seed:    DefaultSeed,
		Init: InitConfig{
			H0:     DefaultH0,
			MBH:    DefaultMBH,
			TFall:  DefaultTFall,
			OmegaM: DefaultOmegaM,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) GetInitial() []float64 {
	switch c.Model {
	case "lcdm", "lcdm-approx":
		return []float64{c.Init.H0, c.Init.OmegaM}
	case "eds":
		return []float64{c.Init.H0}
	default:
		return []float64{c.Init.H0, c.Init.MBH, c.Init.TFall}
	}
}
