package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort      string
	MetricsPort      string
	Environment      string
	LogLevel         string
	PostgreSQLConfig PostgreSQLConfig
	JWTConfig        JWTConfig
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
	OSSConfig        OSSConfig
	SMTPConfig       SMTPConfig
	ArticleConfig    ArticleConfig
	ReaperConfig     ReaperConfig
}

type PostgreSQLConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUsername string
	DBPassword string
}

type JWTConfig struct {
	JWTSecret          string
	JWTExpirationHours int
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
	GroupID         string
}

type TracingConfig struct {
	CollectorHost string
}

type OSSConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	PublicBase string
	Prefix     string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// ArticleConfig holds the constants the article rules depend on.
type ArticleConfig struct {
	NoImage              string
	NumOfRegisterableImg int
	ProductImgDir        string
	ProfileImgDir        string
}

type ReaperConfig struct {
	IntervalMinutes int
	RetentionHours  int
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("SERVICE_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		JWTConfig: JWTConfig{
			JWTSecret:          os.Getenv("JWT_SECRET"),
			JWTExpirationHours: getEnvInt("JWT_EXPIRATION_HOURS", 24),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress:   os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:     getEnv("BROKER_TOPIC", "article-events"),
			BrokerPartition: getEnvInt("BROKER_PARTITION", 0),
			GroupID:         getEnv("BROKER_GROUP_ID", "offer-be"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		OSSConfig: OSSConfig{
			Endpoint:   os.Getenv("ALI_OSS_ENDPOINT"),
			AccessKey:  os.Getenv("ALI_OSS_ACCESS_KEY"),
			SecretKey:  os.Getenv("ALI_OSS_SECRET_KEY"),
			Bucket:     os.Getenv("ALI_OSS_BUCKET"),
			PublicBase: os.Getenv("ALI_OSS_PUBLIC_BASE"),
			Prefix:     os.Getenv("ALI_OSS_PREFIX"),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		ArticleConfig: ArticleConfig{
			NoImage:              getEnv("NO_IMG", "no_img"),
			NumOfRegisterableImg: getEnvInt("NUM_OF_REGISTERABLE_IMG", 5),
			ProductImgDir:        getEnv("PRODUCT_IMG_DIR", "productImage"),
			ProfileImgDir:        getEnv("PROFILE_IMG_DIR", "profileImage"),
		},
		ReaperConfig: ReaperConfig{
			IntervalMinutes: getEnvInt("IMAGE_REAPER_INTERVAL_MINUTES", 60),
			RetentionHours:  getEnvInt("IMAGE_REAPER_RETENTION_HOURS", 24),
		},
	}

	return &conf
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return i
}
