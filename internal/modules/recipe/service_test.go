package recipe

import (
	"context"
	"testing"

	"recipebook/internal/domain"
	"recipebook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockRecipeRepo struct {
	mock.Mock
}

func (m *mockRecipeRepo) Create(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, items []domain.RecipeIngredient) error {
	args := m.Called(ctx, recipe, tags, items)
	return args.Error(0)
}

func (m *mockRecipeRepo) Update(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, items []domain.RecipeIngredient, replaceTags, replaceItems bool) error {
	args := m.Called(ctx, recipe, tags, items, replaceTags, replaceItems)
	return args.Error(0)
}

func (m *mockRecipeRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRecipeRepo) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *mockRecipeRepo) List(ctx context.Context, f repository.RecipeFilters) ([]domain.Recipe, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Recipe), args.Get(1).(int64), args.Error(2)
}

type mockTagRepo struct {
	mock.Mock
}

func (m *mockTagRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

type mockIngredientRepo struct {
	mock.Mock
}

func (m *mockIngredientRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ingredient), args.Error(1)
}

type mockToggleRepo struct {
	mock.Mock
}

func (m *mockToggleRepo) Add(ctx context.Context, userID, recipeID int64) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *mockToggleRepo) Remove(ctx context.Context, userID, recipeID int64) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *mockToggleRepo) RecipeIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, recipeIDs)
	return args.Get(0).(map[int64]bool), args.Error(1)
}

type mockFollowRepo struct {
	mock.Mock
}

func (m *mockFollowRepo) AuthorIDs(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, authorIDs)
	return args.Get(0).(map[int64]bool), args.Error(1)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Save(payload string) (string, error) {
	args := m.Called(payload)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Remove(rel string) error {
	args := m.Called(rel)
	return args.Error(0)
}

type serviceMocks struct {
	recipes     *mockRecipeRepo
	tags        *mockTagRepo
	ingredients *mockIngredientRepo
	favorites   *mockToggleRepo
	cart        *mockToggleRepo
	follows     *mockFollowRepo
	images      *mockImageStore
}

func newTestService() (*Service, *serviceMocks) {
	m := &serviceMocks{
		recipes:     new(mockRecipeRepo),
		tags:        new(mockTagRepo),
		ingredients: new(mockIngredientRepo),
		favorites:   new(mockToggleRepo),
		cart:        new(mockToggleRepo),
		follows:     new(mockFollowRepo),
		images:      new(mockImageStore),
	}
	svc := NewService(m.recipes, m.tags, m.ingredients, m.favorites, m.cart, m.follows, m.images, 1, 1)
	return svc, m
}

func sampleRecipe(id, authorID int64) *domain.Recipe {
	return &domain.Recipe{
		ID:          id,
		Name:        "Borscht",
		AuthorID:    authorID,
		Image:       "media/borscht.png",
		Text:        "Simmer for an hour.",
		CookingTime: 60,
		Author: &domain.User{
			ID:       authorID,
			Email:    "chef@example.com",
			Username: "chef",
		},
	}
}

func expectAnnotation(m *serviceMocks, userID int64, r *domain.Recipe, favorited, inCart, followed bool) {
	m.favorites.On("RecipeIDs", mock.Anything, userID, []int64{r.ID}).
		Return(map[int64]bool{r.ID: favorited}, nil)
	m.cart.On("RecipeIDs", mock.Anything, userID, []int64{r.ID}).
		Return(map[int64]bool{r.ID: inCart}, nil)
	m.follows.On("AuthorIDs", mock.Anything, userID, []int64{r.AuthorID}).
		Return(map[int64]bool{r.AuthorID: followed}, nil)
}

func validCreateRequest() CreateRecipeRequest {
	return CreateRecipeRequest{
		Name:        "Borscht",
		Text:        "Simmer for an hour.",
		CookingTime: 60,
		Image:       "data:image/png;base64,aGVsbG8=",
		TagIDs:      []int64{1},
		Ingredients: []IngredientSpec{{ID: 5, Amount: 200}},
	}
}

func TestCreate_Success(t *testing.T) {
	svc, m := newTestService()

	m.tags.On("GetByIDs", mock.Anything, []int64{1}).
		Return([]domain.Tag{{ID: 1, Name: "dinner"}}, nil)
	m.ingredients.On("GetByIDs", mock.Anything, []int64{5}).
		Return([]domain.Ingredient{{ID: 5, Name: "beet", MeasurementUnit: "g"}}, nil)
	m.images.On("Save", mock.Anything).Return("media/abc.png", nil)
	m.recipes.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Recipe).ID = 7
		}).
		Return(nil)

	stored := sampleRecipe(7, 3)
	m.recipes.On("GetByID", mock.Anything, int64(7)).Return(stored, nil)
	expectAnnotation(m, 3, stored, false, false, false)

	resp, err := svc.Create(context.Background(), 3, validCreateRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Borscht", resp.Name)
	m.recipes.AssertExpectations(t)
}

func TestCreate_EmptyIngredients(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Ingredients = []IngredientSpec{}

	_, err := svc.Create(context.Background(), 3, req)

	assert.ErrorIs(t, err, ErrEmptyIngredients)
}

func TestCreate_DuplicateIngredient(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Ingredients = []IngredientSpec{{ID: 5, Amount: 200}, {ID: 5, Amount: 50}}

	_, err := svc.Create(context.Background(), 3, req)

	assert.ErrorIs(t, err, ErrDuplicateIngredient)
}

func TestCreate_AmountTooSmall(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Ingredients = []IngredientSpec{{ID: 5, Amount: 0}}

	_, err := svc.Create(context.Background(), 3, req)

	assert.ErrorIs(t, err, ErrAmountTooSmall)
}

func TestCreate_CookingTimeTooSmall(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.CookingTime = 0

	_, err := svc.Create(context.Background(), 3, req)

	assert.ErrorIs(t, err, ErrCookingTimeTooSmall)
}

func TestCreate_UnknownIngredient(t *testing.T) {
	svc, m := newTestService()

	m.tags.On("GetByIDs", mock.Anything, []int64{1}).
		Return([]domain.Tag{{ID: 1}}, nil)
	m.ingredients.On("GetByIDs", mock.Anything, []int64{5}).
		Return([]domain.Ingredient{}, nil)

	_, err := svc.Create(context.Background(), 3, validCreateRequest())

	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestCreate_UnknownTag(t *testing.T) {
	svc, m := newTestService()

	m.tags.On("GetByIDs", mock.Anything, []int64{1}).
		Return([]domain.Tag{}, nil)

	_, err := svc.Create(context.Background(), 3, validCreateRequest())

	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestUpdate_ReplacesIngredients(t *testing.T) {
	svc, m := newTestService()

	stored := sampleRecipe(7, 3)
	m.recipes.On("GetByID", mock.Anything, int64(7)).Return(stored, nil)
	m.ingredients.On("GetByIDs", mock.Anything, []int64{9}).
		Return([]domain.Ingredient{{ID: 9, Name: "salt", MeasurementUnit: "g"}}, nil)
	m.recipes.On("Update", mock.Anything, mock.Anything, mock.Anything,
		[]domain.RecipeIngredient{{IngredientID: 9, Amount: 15}}, false, true).
		Return(nil)
	expectAnnotation(m, 3, stored, false, false, false)

	specs := []IngredientSpec{{ID: 9, Amount: 15}}
	_, err := svc.Update(context.Background(), 3, 7, UpdateRecipeRequest{Ingredients: &specs})

	assert.NoError(t, err)
	m.recipes.AssertExpectations(t)
}

func TestUpdate_NotAuthor(t *testing.T) {
	svc, m := newTestService()

	m.recipes.On("GetByID", mock.Anything, int64(7)).Return(sampleRecipe(7, 3), nil)

	name := "Stolen"
	_, err := svc.Update(context.Background(), 99, 7, UpdateRecipeRequest{Name: &name})

	assert.ErrorIs(t, err, ErrForbidden)
	m.recipes.AssertNotCalled(t, "Update")
}

func TestUpdate_ReplacesImage(t *testing.T) {
	svc, m := newTestService()

	stored := sampleRecipe(7, 3)
	m.recipes.On("GetByID", mock.Anything, int64(7)).Return(stored, nil)
	m.images.On("Save", "data:image/png;base64,aGVsbG8=").Return("media/new.png", nil)
	m.recipes.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, false, false).
		Return(nil)
	m.images.On("Remove", "media/borscht.png").Return(nil)
	expectAnnotation(m, 3, stored, false, false, false)

	img := "data:image/png;base64,aGVsbG8="
	resp, err := svc.Update(context.Background(), 3, 7, UpdateRecipeRequest{Image: &img})

	assert.NoError(t, err)
	assert.Equal(t, "media/new.png", resp.Image)
	m.images.AssertExpectations(t)
}

func TestDelete_RemovesImage(t *testing.T) {
	svc, m := newTestService()

	m.recipes.On("GetByID", mock.Anything, int64(7)).Return(sampleRecipe(7, 3), nil)
	m.recipes.On("Delete", mock.Anything, int64(7)).Return(nil)
	m.images.On("Remove", "media/borscht.png").Return(nil)

	err := svc.Delete(context.Background(), 3, 7)

	assert.NoError(t, err)
	m.images.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	svc, m := newTestService()

	m.recipes.On("GetByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 3, 7)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_NotAuthor(t *testing.T) {
	svc, m := newTestService()

	m.recipes.On("GetByID", mock.Anything, int64(7)).Return(sampleRecipe(7, 3), nil)

	err := svc.Delete(context.Background(), 99, 7)

	assert.ErrorIs(t, err, ErrForbidden)
	m.recipes.AssertNotCalled(t, "Delete")
}

func TestFavorite_Success(t *testing.T) {
	svc, m := newTestService()

	m.recipes.On("GetByID", mock.Anything, int64(7)).Return(sampleRecipe(7, 3), nil)
	m.favorites.On("Add", mock.Anything, int64(4), int64(7)).Return(nil)

	short, err := svc.Favorite(context.Background(), 4, 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), short.ID)
	assert.Equal(t, "Borscht", short.Name)
}

func TestFavorite_Duplicate(t *testing.T) {
	svc, m := newTestService()

	m.recipes.On("GetByID", mock.Anything, int64(7)).Return(sampleRecipe(7, 3), nil)
	m.favorites.On("Add", mock.Anything, int64(4), int64(7)).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Favorite(context.Background(), 4, 7)

	assert.ErrorIs(t, err, ErrAlreadyFavorited)
}

func TestUnfavorite_NotFavorited(t *testing.T) {
	svc, m := newTestService()

	m.recipes.On("GetByID", mock.Anything, int64(7)).Return(sampleRecipe(7, 3), nil)
	m.favorites.On("Remove", mock.Anything, int64(4), int64(7)).Return(gorm.ErrRecordNotFound)

	err := svc.Unfavorite(context.Background(), 4, 7)

	assert.ErrorIs(t, err, ErrNotFavorited)
}

func TestAddToShoppingList_Duplicate(t *testing.T) {
	svc, m := newTestService()

	m.recipes.On("GetByID", mock.Anything, int64(7)).Return(sampleRecipe(7, 3), nil)
	m.cart.On("Add", mock.Anything, int64(4), int64(7)).Return(gorm.ErrDuplicatedKey)

	_, err := svc.AddToShoppingList(context.Background(), 4, 7)

	assert.ErrorIs(t, err, ErrAlreadyInShoppingList)
}

func TestList_AnonymousIgnoresPersonalFilters(t *testing.T) {
	svc, m := newTestService()

	recipes := []domain.Recipe{*sampleRecipe(7, 3)}
	m.recipes.On("List", mock.Anything, mock.MatchedBy(func(f repository.RecipeFilters) bool {
		return f.FavoritedBy == 0 && f.InShoppingListOf == 0
	})).Return(recipes, int64(1), nil)
	m.favorites.On("RecipeIDs", mock.Anything, int64(0), []int64{7}).
		Return(map[int64]bool{}, nil)
	m.cart.On("RecipeIDs", mock.Anything, int64(0), []int64{7}).
		Return(map[int64]bool{}, nil)
	m.follows.On("AuthorIDs", mock.Anything, int64(0), []int64{3}).
		Return(map[int64]bool{}, nil)

	out, total, err := svc.List(context.Background(), 0, ListQuery{IsFavorited: true, Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, out, 1)
	assert.False(t, out[0].IsFavorited)
}

func TestList_AnnotatesFlags(t *testing.T) {
	svc, m := newTestService()

	recipes := []domain.Recipe{*sampleRecipe(7, 3)}
	m.recipes.On("List", mock.Anything, mock.Anything).Return(recipes, int64(1), nil)
	m.favorites.On("RecipeIDs", mock.Anything, int64(4), []int64{7}).
		Return(map[int64]bool{7: true}, nil)
	m.cart.On("RecipeIDs", mock.Anything, int64(4), []int64{7}).
		Return(map[int64]bool{}, nil)
	m.follows.On("AuthorIDs", mock.Anything, int64(4), []int64{3}).
		Return(map[int64]bool{3: true}, nil)

	out, _, err := svc.List(context.Background(), 4, ListQuery{Limit: 10})

	assert.NoError(t, err)
	assert.True(t, out[0].IsFavorited)
	assert.False(t, out[0].IsInShoppingCart)
	assert.True(t, out[0].Author.IsSubscribed)
}
