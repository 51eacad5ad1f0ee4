package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	StorageBackendLocal  = "local"
	StorageBackendS3     = "s3"
	StorageBackendMemory = "memory"
)

type (
	APP struct {
		Name             string
		Host             string
		Port             string
		Env              string
		BaseURL          string
		JWTSecret        string
		ClientSecretHash string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	Upload struct {
		Backend            string
		Directory          string
		SubdirectoryRegexp string
		Whitelist          []string
		FilenameFormat     string
		UnknownFilename    string
		RandomizerLimit    int
		TimestampFormat    string
		TimestampTZ        string
	}
	S3 struct {
		Region          string
		AccessKeyID     string
		SecretAccessKey string
		BaseEndpoint    string
		BucketUploads   string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App    APP
		DB     DB
		Upload Upload
		S3     S3
		MQ     MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvList(key, def string) []string {
	raw := getEnv(key, def)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() Config {
	app := APP{
		Name:             getEnv("SERVICE_NAME", "galleryapi"),
		Host:             getEnv("SERVICE_HOST", ""),
		Port:             getEnv("SERVICE_PORT", "8080"),
		Env:              getEnv("SERVICE_ENV", ""),
		BaseURL:          getEnv("SERVICE_BASE_URL", "http://localhost:8080"),
		JWTSecret:        getEnv("SERVICE_JWT_SECRET", ""),
		ClientSecretHash: getEnv("SERVICE_CLIENT_SECRET_HASH", ""),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	upload := Upload{
		Backend:            getEnv("STORAGE_BACKEND", StorageBackendLocal),
		Directory:          getEnv("UPLOAD_DIRECTORY", "uploads"),
		SubdirectoryRegexp: getEnv("UPLOAD_SUBDIRECTORY_REGEXP", `^(.{4})(.{2})(.{2}).*$`),
		Whitelist:          getEnvList("UPLOAD_WHITELIST", "image/png,image/jpeg,image/gif,image/webp"),
		FilenameFormat:     getEnv("UPLOAD_FILENAME_FORMAT", "%s-%d%s"),
		UnknownFilename:    getEnv("UPLOAD_UNKNOWN_FILENAME", "untitled"),
		RandomizerLimit:    getEnvInt("UPLOAD_RANDOMIZER_LIMIT", 1_000_000),
		TimestampFormat:    getEnv("UPLOAD_TIMESTAMP_FORMAT", "20060102150405.000"),
		TimestampTZ:        getEnv("UPLOAD_TIMESTAMP_TZ", "UTC"),
	}
	s3 := S3{
		Region:          getEnv("S3_REGION", ""),
		AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		BaseEndpoint:    getEnv("S3_BASE_ENDPOINT", ""),
		BucketUploads:   getEnv("S3_BUCKET_UPLOADS", ""),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", ""),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", ""),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", ""),
	}

	return Config{
		App:    app,
		DB:     db,
		Upload: upload,
		S3:     s3,
		MQ:     mq,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
