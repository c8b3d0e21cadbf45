package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"recipebook/internal/config"
	"recipebook/internal/database"
	"recipebook/internal/domain"
	"recipebook/internal/middleware"
	"recipebook/internal/modules/auth"
	"recipebook/internal/modules/catalog"
	"recipebook/internal/modules/recipe"
	"recipebook/internal/modules/shoppinglist"
	"recipebook/internal/modules/users"
	"recipebook/internal/pkg/images"
	jwtsvc "recipebook/internal/pkg/jwt"
	"recipebook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(domain.Models()...); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	shoppingListRepo := repository.NewShoppingListRepository(db)
	followRepo := repository.NewFollowRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	imageStore := images.NewStore(cfg.MediaDir)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	usersHandler := users.NewHandler(users.NewService(userRepo, followRepo, recipeRepo))
	catalogHandler := catalog.NewHandler(catalog.NewService(tagRepo, ingredientRepo))
	recipeHandler := recipe.NewHandler(recipe.NewService(
		recipeRepo,
		tagRepo,
		ingredientRepo,
		favoriteRepo,
		shoppingListRepo,
		followRepo,
		imageStore,
		cfg.MinCookingTime,
		cfg.MinAmount,
	))
	shoppingListHandler := shoppinglist.NewHandler(shoppinglist.NewService(
		shoppingListRepo,
		shoppinglist.NewPDFRenderer(cfg.ShoppingListPDF),
	))

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Static("/media", cfg.MediaDir)

	v1 := r.Group("/api/v1")
	{
		public := v1.Group("/")
		public.Use(middleware.OptionalAuth(j))

		authed := v1.Group("/")
		authed.Use(middleware.RequireAuth(j))

		authHandler.RegisterRoutes(v1, authed)
		catalogHandler.RegisterRoutes(v1)
		usersHandler.RegisterRoutes(public, authed)
		recipeHandler.RegisterRoutes(public, authed)
		shoppingListHandler.RegisterRoutes(authed)
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
