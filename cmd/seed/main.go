package main

import (
	"fmt"
	"log"

	"recipebook/internal/config"
	"recipebook/internal/database"
	"recipebook/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM shopping_list_entries")
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM follows")
	db.Exec("DELETE FROM recipe_ingredients")
	db.Exec("DELETE FROM recipe_tags")
	db.Exec("DELETE FROM recipes")
	db.Exec("DELETE FROM ingredients")
	db.Exec("DELETE FROM tags")
	db.Exec("DELETE FROM users")

	// ================== TAGS ==================
	log.Println("Creating tags...")
	tagSpecs := []struct{ name, color, slug string }{
		{"breakfast", "#E26C2D", "breakfast"},
		{"lunch", "#49B64E", "lunch"},
		{"dinner", "#8775D2", "dinner"},
	}
	tags := make([]domain.Tag, 0, len(tagSpecs))
	for _, t := range tagSpecs {
		color, slug := t.color, t.slug
		tag := domain.Tag{Name: t.name, Color: &color, Slug: &slug}
		db.Create(&tag)
		tags = append(tags, tag)
	}

	// ================== INGREDIENTS ==================
	log.Println("Creating ingredients...")
	ingredientSpecs := []struct{ name, unit string }{
		{"beet", "g"},
		{"cabbage", "g"},
		{"carrot", "g"},
		{"egg", "pcs"},
		{"flour", "g"},
		{"milk", "ml"},
		{"olive oil", "ml"},
		{"onion", "pcs"},
		{"potato", "g"},
		{"salt", "g"},
		{"sugar", "g"},
		{"water", "ml"},
	}
	ingredients := make([]domain.Ingredient, 0, len(ingredientSpecs))
	for _, in := range ingredientSpecs {
		ing := domain.Ingredient{Name: in.name, MeasurementUnit: in.unit}
		db.Create(&ing)
		ingredients = append(ingredients, ing)
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	userSpecs := []struct{ email, username, first, last string }{
		{"alice@example.com", "alice", "Alice", "Anders"},
		{"bob@example.com", "bob", "Bob", "Baker"},
		{"carol@example.com", "carol", "Carol", "Cook"},
	}
	seeded := make([]domain.User, 0, len(userSpecs))
	for _, u := range userSpecs {
		hash, _ := bcrypt.GenerateFromPassword([]byte("recipe123"), bcrypt.DefaultCost)
		user := domain.User{
			Email:        u.email,
			Username:     u.username,
			FirstName:    u.first,
			LastName:     u.last,
			PasswordHash: string(hash),
		}
		db.Create(&user)
		seeded = append(seeded, user)
	}

	// ================== RECIPES ==================
	log.Println("Creating recipes...")
	recipeSpecs := []struct {
		name, text  string
		cookingTime int
		author      int
		tag         int
		items       map[int]int // ingredient index -> amount
	}{
		{
			name: "Borscht", text: "Simmer beets, cabbage and potato for an hour.",
			cookingTime: 90, author: 0, tag: 2,
			items: map[int]int{0: 300, 1: 200, 8: 400, 9: 10, 11: 2000},
		},
		{
			name: "Pancakes", text: "Whisk, fry, flip.",
			cookingTime: 20, author: 1, tag: 0,
			items: map[int]int{3: 2, 4: 200, 5: 300, 10: 30},
		},
		{
			name: "Carrot salad", text: "Grate carrots, dress with olive oil.",
			cookingTime: 10, author: 0, tag: 1,
			items: map[int]int{2: 250, 6: 20, 9: 5},
		},
	}
	recipes := make([]domain.Recipe, 0, len(recipeSpecs))
	for _, rs := range recipeSpecs {
		r := domain.Recipe{
			Name:        rs.name,
			AuthorID:    seeded[rs.author].ID,
			Image:       fmt.Sprintf("media/seed-%s.png", tagSpecs[rs.tag].slug),
			Text:        rs.text,
			CookingTime: rs.cookingTime,
		}
		db.Create(&r)
		db.Model(&r).Association("Tags").Append(&tags[rs.tag])
		for idx, amount := range rs.items {
			db.Create(&domain.RecipeIngredient{
				RecipeID:     r.ID,
				IngredientID: ingredients[idx].ID,
				Amount:       amount,
			})
		}
		recipes = append(recipes, r)
	}

	// ================== RELATIONS ==================
	log.Println("Creating favorites, carts and follows...")
	db.Create(&domain.Favorite{UserID: seeded[2].ID, RecipeID: recipes[0].ID})
	db.Create(&domain.Favorite{UserID: seeded[2].ID, RecipeID: recipes[1].ID})
	db.Create(&domain.ShoppingListEntry{UserID: seeded[2].ID, RecipeID: recipes[0].ID})
	db.Create(&domain.ShoppingListEntry{UserID: seeded[2].ID, RecipeID: recipes[2].ID})
	db.Create(&domain.Follow{UserID: seeded[2].ID, AuthorID: seeded[0].ID})
	db.Create(&domain.Follow{UserID: seeded[1].ID, AuthorID: seeded[0].ID})

	log.Println("Seed completed!")
	log.Println("Test accounts: alice@example.com, bob@example.com, carol@example.com / recipe123")
}
