package routes

import (
	"recipedia/internal/api/handlers"
	"recipedia/internal/middleware"
	"recipedia/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	RecipeHandler       handlers.RecipeHandler
	CategoryHandler     handlers.CategoryHandler
	FavoriteHandler     handlers.FavoriteHandler
	ReviewHandler       handlers.ReviewHandler
	ShoppingListHandler handlers.ShoppingListHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Categories()
	c.Favorites()
	c.Reviews()
	c.ShoppingList()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")

	// public catalog; viewer identity is optional and only fills is_favorited
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/mine", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.GetMyRecipes)
	recipes.Get("/mine/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.GetMyRecipeDetail)
	recipes.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipeDetail)
	recipes.Get("/:recipe_id/reviews", c.ReviewHandler.GetReviews)

	// authoring
	auth := recipes.Group("", c.Middleware.AuthMiddleware(c.JWTService))
	auth.Post("", c.RecipeHandler.CreateRecipe)
	auth.Patch("/:id", c.RecipeHandler.UpdateRecipe)
	auth.Post("/:id/publish", c.RecipeHandler.PublishRecipe)
	auth.Delete("/:id", c.RecipeHandler.DeleteRecipe)
	auth.Post("/photo", c.RecipeHandler.UploadRecipePhoto)
}

func (c *Config) Categories() {
	categories := c.App.Group("/api/v1/categories")
	categories.Get("", c.CategoryHandler.GetCategories)
	categories.Get("/:id", c.CategoryHandler.GetCategory)

	admin := categories.Group("", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.OnlyAdmin)
	admin.Post("", c.CategoryHandler.CreateCategory)
	admin.Patch("/:id", c.CategoryHandler.UpdateCategory)
	admin.Delete("/:id", c.CategoryHandler.DeleteCategory)
}

func (c *Config) Favorites() {
	favorites := c.App.Group("/api/v1/favorites", c.Middleware.AuthMiddleware(c.JWTService))
	favorites.Get("", c.FavoriteHandler.GetFavorites)
	favorites.Get("/stats", c.FavoriteHandler.GetFavoriteStats)
	favorites.Post("", c.FavoriteHandler.AddFavorite)
	favorites.Delete("/:recipe_id", c.FavoriteHandler.RemoveFavorite)
}

func (c *Config) Reviews() {
	reviews := c.App.Group("/api/v1/reviews", c.Middleware.AuthMiddleware(c.JWTService))
	reviews.Post("", c.ReviewHandler.CreateReview)
	reviews.Patch("/:id", c.ReviewHandler.UpdateReview)
	reviews.Delete("/:id", c.ReviewHandler.DeleteReview)
}

func (c *Config) ShoppingList() {
	list := c.App.Group("/api/v1/shopping-list", c.Middleware.AuthMiddleware(c.JWTService))
	list.Get("", c.ShoppingListHandler.GetShoppingList)
	list.Post("/items", c.ShoppingListHandler.AddItem)
	list.Patch("/items/:id", c.ShoppingListHandler.UpdateItem)
	list.Delete("/items/:id", c.ShoppingListHandler.DeleteItem)
	list.Post("/items/:id/toggle", c.ShoppingListHandler.ToggleItem)
	list.Delete("/checked", c.ShoppingListHandler.ClearChecked)
	list.Post("/recipes/:recipe_id", c.ShoppingListHandler.AddRecipeIngredients)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.OnlyAdmin)
	admin.Get("/recipes/:id", c.RecipeHandler.GetRecipeForAdmin)
	admin.Post("/recipes/:id/moderate", c.RecipeHandler.ModerateRecipe)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
