package services

import (
	"bookcatalog_server/database"
	"bookcatalog_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

type ServiceManager struct {
	AuthService         *AuthService
	BookService         *BookService
	FavoriteService     *FavoriteService
	CatalogAdminService *CatalogAdminService
	EmailService        *EmailService
	QueueService        *QueueService
	CacheService        *CacheService
	HealthService       *HealthService
	NotificationWorker  *NotificationWorker
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, redisClient *redis.Client) *ServiceManager {
	users := database.NewUserStore(db)
	tokens := database.NewTokenStore(db)
	books := database.NewBookStore(db)
	favorites := database.NewFavoriteStore(db)

	cacheService := NewCacheService(logger, cfg, redisClient)
	emailService := NewEmailService(logger, cfg)
	queueService := NewQueueService(logger, cfg.Queue, redisClient, emailService)
	bookService := NewBookService(logger, cfg, books, favorites, cacheService)

	return &ServiceManager{
		AuthService:         NewAuthService(logger, cfg, users, tokens, queueService, cacheService),
		BookService:         bookService,
		FavoriteService:     NewFavoriteService(logger, books, favorites),
		CatalogAdminService: NewCatalogAdminService(logger, books, cacheService, bookService),
		EmailService:        emailService,
		QueueService:        queueService,
		CacheService:        cacheService,
		HealthService:       NewHealthService(logger, db, cacheService),
		NotificationWorker:  NewNotificationWorker(logger, queueService, emailService, cfg.Queue),
	}
}
