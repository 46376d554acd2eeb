package config // package config loads application configuration from environment variables

import (
	"log"     // log reports when insecure fallback values are in effect
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Unlike stricter deployments, every value here has
// a hardcoded fallback so the server starts with zero configuration; the
// token secret default is insecure and a warning is logged when it is used.
type Config struct {
	Port         string // HTTP port to listen on
	MongoURI     string // MongoDB connection string
	JWTSecret    string // secret used to sign session tokens
	AdminCode    string // secret code that elevates a registration to admin ("" disables)
	UploadDir    string // directory where uploaded images are stored
	BcryptCost   int    // bcrypt cost for password hashing
	TokenTTLDays int    // session token time-to-live in days
}

// Load reads configuration values from environment variables and returns a
// Config.  Missing values fall back to the documented insecure defaults
// instead of aborting startup.
func Load() Config {
	cfg := Config{
		Port:         getenv("PORT", "4000"),
		MongoURI:     getenv("MONGODB_URI", "mongodb://127.0.0.1:27017/catalogodb"),
		JWTSecret:    getenv("JWT_SECRET", "secret_jwt"),
		AdminCode:    os.Getenv("ADMIN_CODE"), // empty means no registration can become admin
		UploadDir:    getenv("UPLOAD_DIR", "uploads"),
		BcryptCost:   atoiDefault(getenv("BCRYPT_COST", "10"), 10),
		TokenTTLDays: atoiDefault(getenv("TOKEN_TTL_DAYS", "7"), 7),
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("config: JWT_SECRET not set, using insecure default secret")
	}
	return cfg
}

// getenv returns the value of an environment variable or a default when the
// variable is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// atoiDefault converts s to an int, falling back to def on failure.
func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
