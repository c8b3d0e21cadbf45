package recipe

import (
	"context"
	"errors"

	"recipebook/internal/domain"
	"recipebook/internal/repository"

	"gorm.io/gorm"
)

// ListQuery is the filter surface of the recipe listing. The boolean filters
// are relative to the requesting user and become no-ops for anonymous
// readers or when false.
type ListQuery struct {
	TagSlugs         []string
	AuthorID         int64
	IsFavorited      bool
	IsInShoppingCart bool
	Limit            int
	Offset           int
}

type Service struct {
	recipes     RecipeRepository
	tags        TagRepository
	ingredients IngredientRepository
	favorites   ToggleRepository
	cart        ToggleRepository
	follows     FollowRepository
	imageStore  ImageStore

	minCookingTime int
	minAmount      int
}

func NewService(
	recipes RecipeRepository,
	tags TagRepository,
	ingredients IngredientRepository,
	favorites ToggleRepository,
	cart ToggleRepository,
	follows FollowRepository,
	imageStore ImageStore,
	minCookingTime int,
	minAmount int,
) *Service {
	return &Service{
		recipes:        recipes,
		tags:           tags,
		ingredients:    ingredients,
		favorites:      favorites,
		cart:           cart,
		follows:        follows,
		imageStore:     imageStore,
		minCookingTime: minCookingTime,
		minAmount:      minAmount,
	}
}

func (s *Service) List(ctx context.Context, currentUserID int64, q ListQuery) ([]RecipeResponse, int64, error) {
	f := repository.RecipeFilters{
		TagSlugs: q.TagSlugs,
		AuthorID: q.AuthorID,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if currentUserID != 0 && q.IsFavorited {
		f.FavoritedBy = currentUserID
	}
	if currentUserID != 0 && q.IsInShoppingCart {
		f.InShoppingListOf = currentUserID
	}

	list, total, err := s.recipes.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	recipeIDs := make([]int64, len(list))
	authorIDs := make([]int64, len(list))
	for i := range list {
		recipeIDs[i] = list[i].ID
		authorIDs[i] = list[i].AuthorID
	}

	favorited, err := s.favorites.RecipeIDs(ctx, currentUserID, recipeIDs)
	if err != nil {
		return nil, 0, err
	}
	inCart, err := s.cart.RecipeIDs(ctx, currentUserID, recipeIDs)
	if err != nil {
		return nil, 0, err
	}
	followed, err := s.follows.AuthorIDs(ctx, currentUserID, authorIDs)
	if err != nil {
		return nil, 0, err
	}

	out := make([]RecipeResponse, len(list))
	for i := range list {
		r := &list[i]
		out[i] = toRecipeResponse(r, favorited[r.ID], inCart[r.ID], followed[r.AuthorID])
	}
	return out, total, nil
}

func (s *Service) Get(ctx context.Context, currentUserID, id int64) (*RecipeResponse, error) {
	r, err := s.getRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, currentUserID, r)
}

// Create validates the request, stores the uploaded image and writes the
// recipe with its tag links and line items in one transaction.
func (s *Service) Create(ctx context.Context, authorID int64, req CreateRecipeRequest) (*RecipeResponse, error) {
	if err := s.validateSpecs(req.CookingTime, req.Ingredients); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}
	items, err := s.resolveItems(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	imagePath, err := s.imageStore.Save(req.Image)
	if err != nil {
		return nil, ErrInvalidImage
	}

	r := &domain.Recipe{
		Name:        req.Name,
		AuthorID:    authorID,
		Image:       imagePath,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if err := s.recipes.Create(ctx, r, tags, items); err != nil {
		return nil, err
	}

	created, err := s.getRecipe(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, authorID, created)
}

// Update applies the supplied scalar fields and, when present, replaces the
// tag set and the full ingredient set. Only the author may update;
// pub_date never changes.
func (s *Service) Update(ctx context.Context, userID, recipeID int64, req UpdateRecipeRequest) (*RecipeResponse, error) {
	r, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if r.AuthorID != userID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		r.Name = *req.Name
	}
	if req.Text != nil {
		r.Text = *req.Text
	}
	if req.CookingTime != nil {
		r.CookingTime = *req.CookingTime
	}

	var specs []IngredientSpec
	if req.Ingredients != nil {
		specs = *req.Ingredients
	}
	if err := s.validateSpecs(r.CookingTime, specs); err != nil {
		return nil, err
	}

	var tags []domain.Tag
	if req.TagIDs != nil {
		tags, err = s.resolveTags(ctx, *req.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	var items []domain.RecipeIngredient
	if req.Ingredients != nil {
		items, err = s.resolveItems(ctx, *req.Ingredients)
		if err != nil {
			return nil, err
		}
	}

	oldImage := r.Image
	if req.Image != nil {
		imagePath, err := s.imageStore.Save(*req.Image)
		if err != nil {
			return nil, ErrInvalidImage
		}
		r.Image = imagePath
	}

	if err := s.recipes.Update(ctx, r, tags, items, req.TagIDs != nil, req.Ingredients != nil); err != nil {
		return nil, err
	}

	if req.Image != nil && oldImage != r.Image {
		_ = s.imageStore.Remove(oldImage)
	}

	updated, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, userID, updated)
}

func (s *Service) Delete(ctx context.Context, userID, recipeID int64) error {
	r, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if r.AuthorID != userID {
		return ErrForbidden
	}
	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return err
	}
	_ = s.imageStore.Remove(r.Image)
	return nil
}

func (s *Service) Favorite(ctx context.Context, userID, recipeID int64) (*ShortResponse, error) {
	return s.addToggle(ctx, s.favorites, userID, recipeID, ErrAlreadyFavorited)
}

func (s *Service) Unfavorite(ctx context.Context, userID, recipeID int64) error {
	return s.removeToggle(ctx, s.favorites, userID, recipeID, ErrNotFavorited)
}

func (s *Service) AddToShoppingList(ctx context.Context, userID, recipeID int64) (*ShortResponse, error) {
	return s.addToggle(ctx, s.cart, userID, recipeID, ErrAlreadyInShoppingList)
}

func (s *Service) RemoveFromShoppingList(ctx context.Context, userID, recipeID int64) error {
	return s.removeToggle(ctx, s.cart, userID, recipeID, ErrNotInShoppingList)
}

// addToggle inserts the pair and maps the store's duplicate-key rejection to
// the toggle's conflict error. The insert is the only duplicate check.
func (s *Service) addToggle(ctx context.Context, repo ToggleRepository, userID, recipeID int64, conflict error) (*ShortResponse, error) {
	r, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := repo.Add(ctx, userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict
		}
		return nil, err
	}

	resp := toShortResponse(r)
	return &resp, nil
}

func (s *Service) removeToggle(ctx context.Context, repo ToggleRepository, userID, recipeID int64, absent error) error {
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return err
	}

	if err := repo.Remove(ctx, userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return absent
		}
		return err
	}
	return nil
}

// validateSpecs enforces the input floors. Duplicate ingredient ids within
// one request are rejected outright rather than merged or overwritten.
func (s *Service) validateSpecs(cookingTime int, specs []IngredientSpec) error {
	if cookingTime < s.minCookingTime {
		return ErrCookingTimeTooSmall
	}
	if specs == nil {
		return nil
	}
	if len(specs) == 0 {
		return ErrEmptyIngredients
	}

	seen := make(map[int64]bool, len(specs))
	for _, spec := range specs {
		if spec.Amount < s.minAmount {
			return ErrAmountTooSmall
		}
		if seen[spec.ID] {
			return ErrDuplicateIngredient
		}
		seen[spec.ID] = true
	}
	return nil
}

func (s *Service) resolveTags(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tags, err := s.tags.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(uniqueIDs(ids)) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

func (s *Service) resolveItems(ctx context.Context, specs []IngredientSpec) ([]domain.RecipeIngredient, error) {
	ids := make([]int64, len(specs))
	for i, spec := range specs {
		ids[i] = spec.ID
	}
	found, err := s.ingredients.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(specs) {
		return nil, ErrIngredientNotFound
	}

	items := make([]domain.RecipeIngredient, len(specs))
	for i, spec := range specs {
		items[i] = domain.RecipeIngredient{
			IngredientID: spec.ID,
			Amount:       spec.Amount,
		}
	}
	return items, nil
}

func (s *Service) getRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	r, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) annotate(ctx context.Context, currentUserID int64, r *domain.Recipe) (*RecipeResponse, error) {
	favorited, err := s.favorites.RecipeIDs(ctx, currentUserID, []int64{r.ID})
	if err != nil {
		return nil, err
	}
	inCart, err := s.cart.RecipeIDs(ctx, currentUserID, []int64{r.ID})
	if err != nil {
		return nil, err
	}
	followed, err := s.follows.AuthorIDs(ctx, currentUserID, []int64{r.AuthorID})
	if err != nil {
		return nil, err
	}

	resp := toRecipeResponse(r, favorited[r.ID], inCart[r.ID], followed[r.AuthorID])
	return &resp, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
