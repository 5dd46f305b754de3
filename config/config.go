package config

import "os"

type Config struct {
	ServerPort  string
	MongoURI    string
	MongoDBName string
	JWTSecret   string
}

// Load collects configuration from the environment. Call after godotenv has
// populated it. Defaults cover local development; JWT_SECRET has no default
// on purpose.
func Load() Config {
	return Config{
		ServerPort:  getenv("SERVER_PORT", "8080"),
		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getenv("MONGO_DB_NAME", "timetree"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
