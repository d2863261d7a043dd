package config

import (
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting of the service.
type Config struct {
	Port string `env:"PORT,default=3000"`

	MongoURI      string `env:"MONGODB_URI,required"`
	MongoDatabase string `env:"MONGODB_DATABASE,default=homeNestDB"`

	// Service-account JSON of the identity provider, raw or base64-encoded.
	FirebaseServiceKey string `env:"FIREBASE_SERVICE_KEY,required"`

	// Endpoint serving the provider's token-signing certificates.
	IdentityCertsURL string `env:"IDENTITY_CERTS_URL,default=https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"`

	// Optional second-level cache for signer certificates.
	MemcachedHost string `env:"MEMCACHED_HOST,default="`

	// Optional broker for resource-change events.
	RabbitMQURL string `env:"RABBITMQ_URL,default="`

	LogLevel string `env:"LOG_LEVEL,default=info"`
}

// Load reads the configuration from the environment. A .env file is loaded
// first when present so local development matches the deployed setup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
