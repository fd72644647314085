package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host            string        `validate:"required"`
	Port            string        `validate:"required,numeric"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	// "RO" rejects every write request, "RW" serves all.
	Mode string `validate:"oneof=RW RO"`
}

type RedisCache struct {
	Host     string `validate:"required"`
	Port     string `validate:"required,numeric"`
	Password string
	DB       int `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required"`
	Port     string `validate:"required,numeric"`
	User     string `validate:"required"`
	Password string
	DBName   string `validate:"required"`
	SSLMode  string `validate:"oneof=disable require verify-ca verify-full"`
}

type TelegramBot struct {
	Token string
	// Messages per second towards the Telegram API.
	RateLimit   float64       `validate:"gt=0"`
	SendTimeout time.Duration `validate:"gt=0"`
}

type Kinopoisk struct {
	APIKey    string
	BaseURL   string        `validate:"required,url"`
	Timeout   time.Duration `validate:"gt=0"`
	RateLimit float64       `validate:"gt=0"`
}

type Catalog struct {
	MinActive       int           `validate:"gte=0"`
	MaxSize         int           `validate:"gtefield=MinActive"`
	ImportPages     int           `validate:"gte=1"`
	RefreshInterval time.Duration `validate:"gt=0"`
	CacheTTL        time.Duration `validate:"gt=0"`
}

type Rooms struct {
	MaxSize      int `validate:"gte=2"`
	CodeLength   int `validate:"gte=4,lte=12"`
	CodeAttempts int `validate:"gte=1"`
}

type Matching struct {
	MaxGroupSize    int           `validate:"gte=2"`
	DispatchTimeout time.Duration `validate:"gt=0"`
}

type Queue struct {
	// "asynq" uses Redis, "memory" keeps tasks in process.
	Backend     string `validate:"oneof=asynq memory"`
	Concurrency int    `validate:"gte=1"`
	MaxRetry    int    `validate:"gte=0"`
}

type S3 struct {
	Bucket          string
	Prefix          string
	Endpoint        string
	Region          string
	PublicURL       string
	AccessKeyID     string
	SecretAccessKey string
}

func (s S3) Enabled() bool {
	return s.Bucket != ""
}

type Log struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json text"`
}

type Config struct {
	HTTP        HTTPServer
	Redis       RedisCache
	Postgres    Postgres
	TelegramBot TelegramBot
	Kinopoisk   Kinopoisk
	Catalog     Catalog
	Rooms       Rooms
	Matching    Matching
	Queue       Queue
	S3          S3
	Log         Log
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%s invalid config : %v", logtag, err)
	}

	return cfg
}

// FromEnv builds the config from the current environment without validating it.
func FromEnv() *Config {
	return &Config{
		HTTP:        *newHTTP(),
		Redis:       *newRedis(),
		Postgres:    *newPostgres(),
		TelegramBot: *newTelegramBot(),
		Kinopoisk:   *newKinopoisk(),
		Catalog:     *newCatalog(),
		Rooms:       *newRooms(),
		Matching:    *newMatching(),
		Queue:       *newQueue(),
		S3:          *newS3(),
		Log:         *newLog(),
	}
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port:            getenv("HTTP_PORT", "8080"),
		Host:            getenv("HTTP_HOST", "localhost"),
		ShutdownTimeout: getduration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		Mode:            getenv("HTTP_MODE", "RW"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getsecret("REDIS_PASSWORD", "shared"),
		DB:       getint("REDIS_DB", 0),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getsecret("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "moviematch"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newTelegramBot() *TelegramBot {
	return &TelegramBot{
		Token:       getsecret("TELEGRAM_BOT_TOKEN", ""),
		RateLimit:   getfloat("TELEGRAM_RATE_LIMIT", 25),
		SendTimeout: getduration("TELEGRAM_SEND_TIMEOUT", 5*time.Second),
	}
}

func newKinopoisk() *Kinopoisk {
	return &Kinopoisk{
		APIKey:    getsecret("KINOPOISK_API_KEY", ""),
		BaseURL:   getenv("KINOPOISK_BASE_URL", "https://kinopoiskapiunofficial.tech/api"),
		Timeout:   getduration("KINOPOISK_TIMEOUT", 10*time.Second),
		RateLimit: getfloat("KINOPOISK_RATE_LIMIT", 5),
	}
}

func newCatalog() *Catalog {
	return &Catalog{
		MinActive:       getint("CATALOG_MIN_ACTIVE", 50),
		MaxSize:         getint("CATALOG_MAX_SIZE", 500),
		ImportPages:     getint("CATALOG_IMPORT_PAGES", 5),
		RefreshInterval: getduration("CATALOG_REFRESH_INTERVAL", time.Hour),
		CacheTTL:        getduration("MOVIE_CACHE_TTL", time.Hour),
	}
}

func newRooms() *Rooms {
	return &Rooms{
		MaxSize:      getint("ROOM_MAX_SIZE", 5),
		CodeLength:   getint("ROOM_CODE_LENGTH", 6),
		CodeAttempts: getint("ROOM_CODE_ATTEMPTS", 10),
	}
}

func newMatching() *Matching {
	return &Matching{
		MaxGroupSize:    getint("MATCH_MAX_GROUP_SIZE", 5),
		DispatchTimeout: getduration("MATCH_DISPATCH_TIMEOUT", 3*time.Second),
	}
}

func newQueue() *Queue {
	return &Queue{
		Backend:     getenv("QUEUE_BACKEND", "asynq"),
		Concurrency: getint("QUEUE_CONCURRENCY", 4),
		MaxRetry:    getint("QUEUE_MAX_RETRY", 3),
	}
}

func newS3() *S3 {
	return &S3{
		Bucket:    getenv("S3_BUCKET", ""),
		Prefix:    getenv("S3_PREFIX", "posters"),
		Endpoint:  getenv("S3_ENDPOINT", ""),
		Region:    getenv("S3_REGION", "ru-central1"),
		PublicURL: getenv("S3_PUBLIC_URL", ""),

		AccessKeyID:     getsecret("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getsecret("S3_SECRET_ACCESS_KEY", ""),
	}
}

func newLog() *Log {
	return &Log{
		Level:  getenv("LOG_LEVEL", "info"),
		Format: getenv("LOG_FORMAT", "json"),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

// getsecret is getenv that never prints the value.
func getsecret(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value\n", logtag, key)
		return defaultValue
	}
	fmt.Printf("%s %s is set\n", logtag, key)
	return val
}

func getint(key string, defaultValue int) int {
	raw := getenv(key, strconv.Itoa(defaultValue))
	val, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Printf("%s %s is not an integer. Using default value %d\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}

func getfloat(key string, defaultValue float64) float64 {
	raw := getenv(key, strconv.FormatFloat(defaultValue, 'f', -1, 64))
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Printf("%s %s is not a number. Using default value %v\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}

func getduration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	val, err := time.ParseDuration(raw)
	if err != nil {
		// Plain integers are seconds.
		if secs, convErr := strconv.Atoi(raw); convErr == nil {
			return time.Duration(secs) * time.Second
		}
		fmt.Printf("%s %s is not a duration. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}
