package main

import (
	"os"
	"strconv"
	"time"

	"github.com/buzkaaclicker/vitae/persistent"
	"github.com/buzkaaclicker/vitae/transport/rest"
	"github.com/sirupsen/logrus"
)

type storageConfig struct {
	minio     persistent.MinioConfig
	bucket    string
	cdnDomain string
}

// Credentials are not required to start. Uploads fail without them.
func (c storageConfig) hasCredentials() bool {
	return c.minio.AccessKeyId != "" && c.minio.SecretAccessKey != ""
}

type config struct {
	listenAddr  string
	profilePath string
	activityDb  string
	activityTTL time.Duration
	storage     storageConfig
	server      rest.ServerConfig
	debug       bool
	logFile     string
	syslog      bool
}

func configFromEnv() config {
	region := getEnv("STORAGE_REGION", "ap-guangzhou")
	return config{
		listenAddr:  getEnv("LISTEN_ADDR", ":3000"),
		profilePath: getEnv("PROFILE_PATH", "data/profile.json"),
		activityDb:  getEnv("ACTIVITY_DB", "data/activity.db"),
		activityTTL: getEnvAsDuration("ACTIVITY_TTL", 720*time.Hour),
		storage: storageConfig{
			minio: persistent.MinioConfig{
				Endpoint:        getEnv("STORAGE_ENDPOINT", "cos."+region+".myqcloud.com"),
				AccessKeyId:     os.Getenv("STORAGE_SECRET_ID"),
				SecretAccessKey: os.Getenv("STORAGE_SECRET_KEY"),
				Region:          region,
				UseSSL:          getEnvAsBool("STORAGE_USE_SSL", true),
				PathStyle:       getEnvAsBool("STORAGE_PATH_STYLE", false),
			},
			bucket:    os.Getenv("STORAGE_BUCKET"),
			cdnDomain: os.Getenv("CDN_DOMAIN"),
		},
		server: rest.ServerConfig{
			BodyLimit:    getEnvAsInt("BODY_LIMIT", rest.DefaultBodyLimit),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 10*time.Second),
		},
		debug:   getEnvAsBool("DEBUG", false),
		logFile: os.Getenv("LOG_FILE"),
		syslog:  getEnvAsBool("SYSLOG", false),
	}
}

func getEnv(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Warningln("Invalid bool in environment, using default.")
		return defaultValue
	}
	return parsed
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Warningln("Invalid int in environment, using default.")
		return defaultValue
	}
	return parsed
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Warningln("Invalid duration in environment, using default.")
		return defaultValue
	}
	return parsed
}
