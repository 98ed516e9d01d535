package config

var Presets = map[string]map[string]*Config{
	"lvilc": {
		"quick": {
			Model: "lvilc", Move: "stretch", Walkers: 16, Steps: 1000, BurnIn: 200, Seed: 42,
			Init: InitConfig{H0: -6.73, MBH: 1e23, TFall: 13.8},
		},
		"standard": {
			Model: "lvilc", Move: "stretch", Walkers: 32, Steps: 4000, BurnIn: 800, Seed: 42,
			Init: InitConfig{H0: -6.73, MBH: 1e23, TFall: 13.8},
		},
		"thorough": {
			Model: "lvilc", Move: "stretch", Walkers: 64, Steps: 16000, BurnIn: 4000, Seed: 42,
			Init: InitConfig{H0: -6.73, MBH: 1e23, TFall: 13.8},
		},
		"wide": {
			Model: "lvilc", Move: "walk", Walkers: 64, Steps: 4000, BurnIn: 1000, Seed: 42,
			Init: InitConfig{H0: -10.0, MBH: 5e24, TFall: 10.0},
		},
		"metropolis": {
			Model: "lvilc", Move: "mh", Walkers: 16, Steps: 8000, BurnIn: 2000, Seed: 42,
			Init: InitConfig{H0: -6.73, MBH: 1e23, TFall: 13.8},
		},
	},
	"lcdm": {
		"quick": {
			Model: "lcdm", Move: "stretch", Walkers: 16, Steps: 1000, BurnIn: 200, Seed: 42,
			Init: InitConfig{H0: 70.0, OmegaM: 0.3},
		},
		"standard": {
			Model: "lcdm", Move: "stretch", Walkers: 32, Steps: 4000, BurnIn: 800, Seed: 42,
			Init: InitConfig{H0: 70.0, OmegaM: 0.3},
		},
	},
	"lcdm-approx": {
		"quick": {
			Model: "lcdm-approx", Move: "stretch", Walkers: 16, Steps: 1000, BurnIn: 200, Seed: 42,
			Init: InitConfig{H0: 70.0, OmegaM: 0.3},
		},
	},
	"eds": {
		"quick": {
			Model: "eds", Move: "stretch", Walkers: 16, Steps: 1000, BurnIn: 200, Seed: 42,
			Init: InitConfig{H0: 70.0},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
