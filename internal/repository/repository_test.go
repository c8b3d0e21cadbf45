package repository

import (
	"context"
	"testing"

	"recipebook/internal/database"
	"recipebook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Models()...))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, username string) *domain.User {
	u := &domain.User{
		Email:        email,
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createTag(t *testing.T, db *gorm.DB, name, slug, color string) *domain.Tag {
	c, s := color, slug
	tag := &domain.Tag{Name: name, Color: &c, Slug: &s}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) *domain.Ingredient {
	ing := &domain.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ing).Error)
	return ing
}

func mustCreateRecipe(t *testing.T, repo *RecipeRepository, authorID int64, name string, tags []domain.Tag, items []domain.RecipeIngredient) *domain.Recipe {
	r := &domain.Recipe{
		Name:        name,
		AuthorID:    authorID,
		Image:       "media/" + name + ".png",
		Text:        "text",
		CookingTime: 30,
	}
	require.NoError(t, repo.Create(context.Background(), r, tags, items))
	return r
}

func TestRecipeList_TagUnion(t *testing.T) {
	db := setupDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "a@test.com", "a")
	breakfast := createTag(t, db, "breakfast", "breakfast", "#E26C2D")
	dinner := createTag(t, db, "dinner", "dinner", "#8775D2")

	mustCreateRecipe(t, repo, author.ID, "pancakes", []domain.Tag{*breakfast}, nil)
	mustCreateRecipe(t, repo, author.ID, "soup", []domain.Tag{*dinner}, nil)
	// Tagged with both; must appear once even when both slugs are requested.
	mustCreateRecipe(t, repo, author.ID, "omelette", []domain.Tag{*breakfast, *dinner}, nil)

	list, total, err := repo.List(ctx, RecipeFilters{TagSlugs: []string{"breakfast", "dinner"}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 3)

	list, total, err = repo.List(ctx, RecipeFilters{TagSlugs: []string{"dinner"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	names := []string{list[0].Name, list[1].Name}
	assert.ElementsMatch(t, []string{"soup", "omelette"}, names)
}

func TestRecipeList_FavoriteAndCartFilters(t *testing.T) {
	db := setupDB(t)
	repo := NewRecipeRepository(db)
	favorites := NewFavoriteRepository(db)
	cart := NewShoppingListRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "a@test.com", "a")
	reader := createUser(t, db, "r@test.com", "r")

	soup := mustCreateRecipe(t, repo, author.ID, "soup", nil, nil)
	bread := mustCreateRecipe(t, repo, author.ID, "bread", nil, nil)

	require.NoError(t, favorites.Add(ctx, reader.ID, soup.ID))
	require.NoError(t, cart.Add(ctx, reader.ID, bread.ID))

	list, total, err := repo.List(ctx, RecipeFilters{FavoritedBy: reader.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "soup", list[0].Name)

	list, _, err = repo.List(ctx, RecipeFilters{InShoppingListOf: reader.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bread", list[0].Name)
}

func TestRecipeUpdate_ReplacesLineItems(t *testing.T) {
	db := setupDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "a@test.com", "a")
	salt := createIngredient(t, db, "salt", "g")
	water := createIngredient(t, db, "water", "ml")
	flour := createIngredient(t, db, "flour", "g")

	r := mustCreateRecipe(t, repo, author.ID, "dough", nil, []domain.RecipeIngredient{
		{IngredientID: salt.ID, Amount: 5},
		{IngredientID: water.ID, Amount: 200},
	})

	err := repo.Update(ctx, r, nil, []domain.RecipeIngredient{
		{IngredientID: flour.ID, Amount: 300},
	}, false, true)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.RecipeIngredient{}).
		Where("recipe_id = ?", r.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, flour.ID, got.Ingredients[0].IngredientID)
	assert.Equal(t, 300, got.Ingredients[0].Amount)
}

func TestRecipeDelete_RemovesDependents(t *testing.T) {
	db := setupDB(t)
	repo := NewRecipeRepository(db)
	favorites := NewFavoriteRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "a@test.com", "a")
	reader := createUser(t, db, "r@test.com", "r")
	tag := createTag(t, db, "dinner", "dinner", "#8775D2")
	salt := createIngredient(t, db, "salt", "g")

	r := mustCreateRecipe(t, repo, author.ID, "soup", []domain.Tag{*tag},
		[]domain.RecipeIngredient{{IngredientID: salt.ID, Amount: 5}})
	require.NoError(t, favorites.Add(ctx, reader.ID, r.ID))

	require.NoError(t, repo.Delete(ctx, r.ID))

	_, err := repo.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var items, favs, links int64
	db.Model(&domain.RecipeIngredient{}).Where("recipe_id = ?", r.ID).Count(&items)
	db.Model(&domain.Favorite{}).Where("recipe_id = ?", r.ID).Count(&favs)
	db.Table("recipe_tags").Where("recipe_id = ?", r.ID).Count(&links)
	assert.Zero(t, items)
	assert.Zero(t, favs)
	assert.Zero(t, links)
}

func TestAggregateIngredients_SumsByNaturalKey(t *testing.T) {
	db := setupDB(t)
	repo := NewRecipeRepository(db)
	cart := NewShoppingListRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "a@test.com", "a")
	reader := createUser(t, db, "r@test.com", "r")

	// Two distinct rows with the same natural key must merge in the report.
	salt1 := createIngredient(t, db, "salt", "g")
	salt2 := createIngredient(t, db, "salt", "g")
	water := createIngredient(t, db, "water", "ml")

	soup := mustCreateRecipe(t, repo, author.ID, "soup", nil, []domain.RecipeIngredient{
		{IngredientID: salt1.ID, Amount: 10},
		{IngredientID: water.ID, Amount: 200},
	})
	bread := mustCreateRecipe(t, repo, author.ID, "bread", nil, []domain.RecipeIngredient{
		{IngredientID: salt2.ID, Amount: 5},
	})
	// Not on the shopping list, must not contribute.
	mustCreateRecipe(t, repo, author.ID, "cake", nil, []domain.RecipeIngredient{
		{IngredientID: salt1.ID, Amount: 100},
	})

	require.NoError(t, cart.Add(ctx, reader.ID, soup.ID))
	require.NoError(t, cart.Add(ctx, reader.ID, bread.ID))

	totals, err := cart.AggregateIngredients(ctx, reader.ID)
	require.NoError(t, err)

	require.Len(t, totals, 2)
	assert.Equal(t, IngredientTotal{Name: "salt", MeasurementUnit: "g", Total: 15}, totals[0])
	assert.Equal(t, IngredientTotal{Name: "water", MeasurementUnit: "ml", Total: 200}, totals[1])
}

func TestToggleRepositories_ConstraintBacked(t *testing.T) {
	db := setupDB(t)
	repo := NewRecipeRepository(db)
	favorites := NewFavoriteRepository(db)
	cart := NewShoppingListRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "a@test.com", "a")
	reader := createUser(t, db, "r@test.com", "r")
	r := mustCreateRecipe(t, repo, author.ID, "soup", nil, nil)

	require.NoError(t, favorites.Add(ctx, reader.ID, r.ID))
	assert.ErrorIs(t, favorites.Add(ctx, reader.ID, r.ID), gorm.ErrDuplicatedKey)

	assert.ErrorIs(t, cart.Remove(ctx, reader.ID, r.ID), gorm.ErrRecordNotFound)
	require.NoError(t, cart.Add(ctx, reader.ID, r.ID))
	require.NoError(t, cart.Remove(ctx, reader.ID, r.ID))

	marked, err := favorites.RecipeIDs(ctx, reader.ID, []int64{r.ID})
	require.NoError(t, err)
	assert.True(t, marked[r.ID])
}

func TestFollowRepository_Flow(t *testing.T) {
	db := setupDB(t)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "a@test.com", "a")
	reader := createUser(t, db, "r@test.com", "r")

	require.NoError(t, follows.Add(ctx, reader.ID, author.ID))
	assert.ErrorIs(t, follows.Add(ctx, reader.ID, author.ID), gorm.ErrDuplicatedKey)

	exists, err := follows.Exists(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	authors, total, err := follows.ListAuthors(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, authors, 1)
	assert.Equal(t, "a", authors[0].Username)

	require.NoError(t, follows.Remove(ctx, reader.ID, author.ID))
	assert.ErrorIs(t, follows.Remove(ctx, reader.ID, author.ID), gorm.ErrRecordNotFound)
}

func TestIngredientList_PrefixSearch(t *testing.T) {
	db := setupDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	createIngredient(t, db, "Salt", "g")
	createIngredient(t, db, "salmon", "g")
	createIngredient(t, db, "water", "ml")

	list, err := repo.List(ctx, "sal")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Salt", list[0].Name)
	assert.Equal(t, "salmon", list[1].Name)

	list, err = repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestUserRepository_LowercasesEmail(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{
		Email:        "Mixed@Case.COM",
		Username:     "mixed",
		FirstName:    "M",
		LastName:     "C",
		PasswordHash: "x",
	}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByEmail(ctx, "mixed@case.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestIsUniqueViolation_SQLiteDriver(t *testing.T) {
	db := setupDB(t)

	createUser(t, db, "a@test.com", "a")
	dup := &domain.User{
		Email:        "a@test.com",
		Username:     "other",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	}
	err := db.Create(dup).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
}

func TestIngredientList_EscapesLikeMetacharacters(t *testing.T) {
	db := setupDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	createIngredient(t, db, "salt", "g")
	createIngredient(t, db, "100% cocoa", "g")

	list, err := repo.List(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "100% cocoa", list[0].Name)

	// "_" must match literally, not as a single-character wildcard.
	list, err = repo.List(ctx, "s_")
	require.NoError(t, err)
	assert.Empty(t, list)
}
