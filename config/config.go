package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds everything the server needs at startup. Values come from the
// YAML file first; environment variables override individual fields so the
// same file works across deployments.
type Config struct {
	Port           string         `yaml:"port"`
	PostgresConfig PostgresConfig `yaml:"database"`
	JWTSecretKey   string         `yaml:"jwt_secret"`
	ModelPath      string         `yaml:"model_path"`
	NutritionPath  string         `yaml:"nutrition_path"`
	Validation     Validation     `yaml:"validation"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Port     string `yaml:"port"`
	SSLMode  string `yaml:"sslmode"`
}

// Range bounds one clinical input field. Bounds are configuration, not code:
// they can be tightened without touching the pipeline.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Validation carries the accepted domain for each clinical input.
type Validation struct {
	Pregnancies   Range `yaml:"pregnancies"`
	Glucose       Range `yaml:"glucose"`
	BloodPressure Range `yaml:"blood_pressure"`
	BMI           Range `yaml:"bmi"`
	Pedigree      Range `yaml:"pedigree"`
}

// Default returns a Config with development defaults.
func Default() *Config {
	return &Config{
		Port: "8080",
		PostgresConfig: PostgresConfig{
			Host:     "localhost",
			User:     "postgres",
			Password: "password",
			DBName:   "glucheck",
			Port:     "5432",
			SSLMode:  "disable",
		},
		JWTSecretKey:  "dev-secret",
		ModelPath:     "data/model.json",
		NutritionPath: "data/nutrition.csv",
		Validation: Validation{
			Pregnancies:   Range{Min: 0, Max: 20},
			Glucose:       Range{Min: 0, Max: 300},
			BloodPressure: Range{Min: 0, Max: 250},
			BMI:           Range{Min: 0, Max: 80},
			Pedigree:      Range{Min: 0, Max: 3},
		},
	}
}

// Load reads the configuration from the YAML file at path, then applies
// environment overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.Port = GetEnv("PORT", cfg.Port)
	cfg.PostgresConfig.Host = GetEnv("DB_HOST", cfg.PostgresConfig.Host)
	cfg.PostgresConfig.User = GetEnv("DB_USER", cfg.PostgresConfig.User)
	cfg.PostgresConfig.Password = GetEnv("DB_PASSWORD", cfg.PostgresConfig.Password)
	cfg.PostgresConfig.DBName = GetEnv("DB_NAME", cfg.PostgresConfig.DBName)
	cfg.PostgresConfig.Port = GetEnv("DB_PORT", cfg.PostgresConfig.Port)
	cfg.PostgresConfig.SSLMode = GetEnv("DB_SSLMODE", cfg.PostgresConfig.SSLMode)
	cfg.JWTSecretKey = GetEnv("JWT_SECRET", cfg.JWTSecretKey)
	cfg.ModelPath = GetEnv("MODEL_PATH", cfg.ModelPath)
	cfg.NutritionPath = GetEnv("NUTRITION_PATH", cfg.NutritionPath)

	return cfg, nil
}

// GetEnv returns the environment variable for key, or fallback when unset.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
