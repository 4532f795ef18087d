package config

import (
	"os"
	"recipedia/internal/api/handlers"
	"recipedia/internal/api/routes"
	"recipedia/internal/middleware"
	"recipedia/internal/utils"
	"recipedia/internal/utils/storage"
	"recipedia/pkg/category"
	"recipedia/pkg/favorite"
	"recipedia/pkg/jwt"
	"recipedia/pkg/recipe"
	"recipedia/pkg/review"
	"recipedia/pkg/shoppinglist"
	"recipedia/pkg/user"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	categoryRepository := category.NewCategoryRepository(db)
	favoriteRepository := favorite.NewFavoriteRepository(db)
	reviewRepository := review.NewReviewRepository(db)
	shoppingListRepository := shoppinglist.NewShoppingListRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, s3)
	categoryService := category.NewCategoryService(categoryRepository)
	favoriteService := favorite.NewFavoriteService(favoriteRepository)
	reviewService := review.NewReviewService(reviewRepository)
	shoppingListService := shoppinglist.NewShoppingListService(shoppingListRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	categoryHandler := handlers.NewCategoryHandler(categoryService, validator)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, validator)
	reviewHandler := handlers.NewReviewHandler(reviewService, validator)
	shoppingListHandler := handlers.NewShoppingListHandler(shoppingListService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		RecipeHandler:       recipeHandler,
		CategoryHandler:     categoryHandler,
		FavoriteHandler:     favoriteHandler,
		ReviewHandler:       reviewHandler,
		ShoppingListHandler: shoppingListHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
