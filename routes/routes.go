package routes

import (
	"net/http"

	"plateful/admin"
	"plateful/auth"
	"plateful/ingredients"
	"plateful/middleware"
	"plateful/ratelim"
	"plateful/recipes"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/recipepic/*filepath", http.Dir("static/recipepic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddRecipeRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/recipes", recipes.GetRecipes)
	router.GET("/api/recipes/:id", recipes.GetRecipe)
	router.GET("/api/recipes/:id/export", rl.Limit(recipes.ExportRecipePDF))
	router.POST("/api/recipes", middleware.Authenticate(recipes.CreateRecipe))
	router.PUT("/api/recipes/:id", middleware.Authenticate(recipes.UpdateRecipe))
	router.DELETE("/api/recipes/:id", middleware.Authenticate(recipes.DeleteRecipe))
}

func AddIngredientRoutes(router *httprouter.Router) {
	router.GET("/api/ingredients", ingredients.GetIngredients)
	router.GET("/api/ingredients/:id", ingredients.GetIngredient)
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/stats", middleware.RequireRole("admin", admin.GetStats))
}
