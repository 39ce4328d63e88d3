// Package bootstrap builds the subjects service from settings. Both
// binaries share it.
package bootstrap

import (
	"context"
	"time"

	"github.com/CPU-commits/Intranet_BSubjects/db"
	"github.com/CPU-commits/Intranet_BSubjects/models"
	"github.com/CPU-commits/Intranet_BSubjects/repositories"
	"github.com/CPU-commits/Intranet_BSubjects/services"
	"github.com/CPU-commits/Intranet_BSubjects/settings"
	"github.com/CPU-commits/Intranet_BSubjects/stack"
	"go.uber.org/zap"
)

const CONNECT_TIMEOUT = time.Second * 30

type Config struct {
	MongoURI    string
	MongoDB     string
	NatsHost    string
	Es          db.EsConfig
	CollegeName string
}

type App struct {
	SubjectsService *services.SubjectsService
	// Nil when NATS_HOST is not set
	Nats  *stack.NatsClient
	mongo *db.MongoConnection
}

func (a *App) Close(ctx context.Context) {
	if a.Nats != nil {
		a.Nats.Close()
	}
	_ = a.mongo.Disconnect(ctx)
}

func Init(ctx context.Context, config Config, logger *zap.Logger) (*App, error) {
	connectCtx, cancel := context.WithTimeout(ctx, CONNECT_TIMEOUT)
	defer cancel()

	mongo, err := db.NewConnection(connectCtx, config.MongoURI, config.MongoDB)
	if err != nil {
		return nil, err
	}
	subjectRepository := repositories.NewSubjectRepository(
		models.NewSubjectModel(mongo.GetCollection(models.SUBJECT_COLLECTION)),
	)

	app := &App{mongo: mongo}
	var publisher services.Publisher
	if config.NatsHost != "" {
		nats, err := stack.NewNats(config.NatsHost)
		if err != nil {
			_ = mongo.Disconnect(ctx)
			return nil, err
		}
		app.Nats = nats
		publisher = nats
	} else {
		logger.Warn("NATS_HOST not set, subject events are disabled")
	}

	var indexer services.SubjectIndexer = services.DisabledIndexer{}
	if config.Es.Host != "" {
		es, err := db.NewConnectionEs(config.Es)
		if err != nil {
			app.Close(ctx)
			return nil, err
		}
		indexer = services.NewEsSubjectIndexer(es)
	} else {
		logger.Warn("ELS_HOST not set, subject search is disabled")
	}

	app.SubjectsService = services.NewSubjectsService(
		subjectRepository,
		publisher,
		indexer,
		logger,
		config.CollegeName,
	)
	return app, nil
}

func ConfigFromSettings() Config {
	settingsData := settings.GetSettings()
	return Config{
		MongoURI:    settingsData.MongoURI(),
		MongoDB:     settingsData.MONGO_DB,
		NatsHost:    settingsData.NATS_HOST,
		CollegeName: settingsData.COLLEGE_NAME,
		Es: db.EsConfig{
			Host:     settingsData.ELS_HOST,
			Port:     settingsData.ELS_PORT,
			Username: settingsData.ELS_USERNAME,
			Password: settingsData.ELS_PASSWORD,
			Secure:   settingsData.IsProd(),
		},
	}
}
