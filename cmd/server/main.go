package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"io/fs"
	"log/syslog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/buzkaaclicker/vitae"
	"github.com/buzkaaclicker/vitae/persistent"
	"github.com/buzkaaclicker/vitae/transport/rest"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	logrusys "github.com/sirupsen/logrus/hooks/syslog"
	"github.com/tidwall/buntdb"
	"gopkg.in/natefinch/lumberjack.v2"
)

func newServer(
	cfg config,
	profileStore vitae.ProfileStore,
	avatarStore vitae.AvatarStore,
	activityStore vitae.ActivityStore,
) *fiber.App {
	profileController := &rest.ProfileController{
		Store:      profileStore,
		Activities: activityStore,
	}
	avatarController := &rest.AvatarController{
		Store:      avatarStore,
		Activities: activityStore,
		CdnDomain:  cfg.storage.cdnDomain,
	}
	return rest.NewRouter(cfg.server, profileController, avatarController)
}

func listenAndServe(server *fiber.App, addr string) func() error {
	go func() {
		err := server.Listen(addr)
		if err != nil {
			logrus.WithError(err).Fatalln("Could not listen.")
		}
	}()

	return server.Shutdown
}

func setupLogger(verbose bool, logFile string, useSyslog bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.Stamp,
		FullTimestamp:   true,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if logFile != "" {
		logrus.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50, // megabytes
			MaxAge:     28, // days
			MaxBackups: 5,
			Compress:   true,
		}))
	}

	if useSyslog {
		syslogHook, err := logrusys.NewSyslogHook("", "", syslog.LOG_USER, "vitae_backend")
		if err != nil {
			logrus.WithError(err).Warningln("Could not create syslog hook.")
			return
		}
		logrus.AddHook(syslogHook)
	}
}

func openAvatarStore(cfg storageConfig) vitae.AvatarStore {
	if !cfg.hasCredentials() {
		logrus.Warningln("STORAGE_SECRET_ID or STORAGE_SECRET_KEY not set, uploads will fail.")
	}
	if cfg.bucket == "" {
		logrus.Warningln("STORAGE_BUCKET not set, uploads will fail.")
	}
	client, err := persistent.MinioOpen(cfg.minio)
	if err != nil {
		logrus.WithError(err).Fatalln("Could not create storage client.")
	}
	store := &persistent.AvatarStore{
		Client:    client,
		Bucket:    cfg.bucket,
		PathStyle: cfg.minio.PathStyle,
	}

	if cfg.hasCredentials() && cfg.bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		exists, err := store.BucketExists(ctx)
		switch {
		case err != nil:
			logrus.WithError(err).Warningln("Could not check storage bucket.")
		case !exists:
			logrus.WithField("bucket", cfg.bucket).Warningln("Storage bucket does not exist.")
		}
	}
	return store
}

func awaitInterruption() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}

func main() {
	flag.Parse()
	envErr := godotenv.Load()
	cfg := configFromEnv()
	setupLogger(cfg.debug, cfg.logFile, cfg.syslog)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logrus.WithError(envErr).Warningln("Could not load .env file.")
	}
	logrus.Infoln("Starting backend.")

	for _, path := range []string{cfg.profilePath, cfg.activityDb} {
		if path == ":memory:" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			logrus.WithError(err).WithField("path", path).Fatalln("Could not create data directory.")
		}
	}

	bdb, err := buntdb.Open(cfg.activityDb)
	if err != nil {
		logrus.WithError(err).Fatalln("Could not open buntdb.")
	}

	server := newServer(cfg,
		&persistent.ProfileStore{Path: cfg.profilePath},
		openAvatarStore(cfg.storage),
		&persistent.ActivityStore{Buntdb: bdb, TTL: cfg.activityTTL},
	)

	logrus.WithField("addr", cfg.listenAddr).Infoln("Starting listening... To shut down use ^C")
	shutdown := listenAndServe(server, cfg.listenAddr)

	awaitInterruption()

	logrus.Infoln("Shutting down...")
	err = shutdown()
	if err != nil {
		logrus.WithError(err).Warningln("Fiber shutdown failed.")
	}
	if err := bdb.Close(); err != nil {
		logrus.WithError(err).Warningln("Could not close buntdb.")
	}
	logrus.Exit(0)
}
