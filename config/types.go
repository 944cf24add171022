package config

// Config represents the structure of approval-service.json
type Config struct {
	Port         string            `json:"port"`
	StoreBackend string            `json:"store_backend"`
	Redis        *RedisCredentials `json:"redis,omitempty"`
	CorsOrigin   string            `json:"cors_origin,omitempty"`
}

// RedisCredentials holds the connection settings for the Redis backend
type RedisCredentials struct {
	Address  string `json:"address"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// GetSanitized returns a version of the config safe to expose in the
// service report, with credentials masked.
func (c *Config) GetSanitized() map[string]interface{} {
	sanitized := make(map[string]interface{})
	sanitized["port"] = c.Port
	sanitized["store_backend"] = c.StoreBackend
	sanitized["cors_origin"] = c.CorsOrigin
	if c.Redis != nil {
		sanitized["redis"] = map[string]interface{}{
			"address":  c.Redis.Address,
			"username": c.Redis.Username,
			"password": "********",
			"db":       c.Redis.DB,
		}
	}
	return sanitized
}
