package container

import (
	"log/slog"

	"github.com/rdityo/nearbox/internal/config"
	"github.com/rdityo/nearbox/internal/models"
	"github.com/rdityo/nearbox/internal/notify"
	"github.com/rdityo/nearbox/internal/services"
	"github.com/rdityo/nearbox/internal/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	MongoDBClient *mongo.Client
	UserRepo      models.UserRepo
	AuthService   *services.AuthService
	UserService   *services.UserService
	PostService   *services.PostService
	BlobStore     storage.BlobStore
	Notifier      notify.Notifier
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	mongoDBClient *mongo.Client,
	bucket *gridfs.Bucket,
) *Container {
	// Initialize repositories
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBName)
	notifier := notify.NewLogNotifier(logger)
	blobStore := storage.NewGridFSStore(bucket)

	authService := services.NewAuthService(repo, notifier, cfg.JWTSecret, cfg.BaseURL)
	userService := services.NewUserService(repo)
	postService := services.NewPostService(repo)

	return &Container{
		Config:        cfg,
		Logger:        logger,
		MongoDBClient: mongoDBClient,
		UserRepo:      repo,
		AuthService:   authService,
		UserService:   userService,
		PostService:   postService,
		BlobStore:     blobStore,
		Notifier:      notifier,
	}
}
