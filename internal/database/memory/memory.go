// Package memory — хранилище в памяти, реализующее те же порты, что и
// PostgreSQL-хранилища. Используется в тестах и для локального запуска
// без базы данных; для продакшена не предназначено.
package memory

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GoArmGo/RecipeApp/internal/domain"
	"github.com/google/uuid"
)

// Store держит все таблицы в памяти под одним мьютексом:
// операция "проверил-записал" выполняется атомарно, как транзакция в бд.
type Store struct {
	mu          sync.Mutex
	users       map[uuid.UUID]domain.User
	tokens      map[string]domain.Token
	tokenByUser map[uuid.UUID]string
	tags        map[int64]domain.Tag
	ingredients map[int64]domain.Ingredient
	recipes     map[int64]domain.Recipe
	seq         int64
}

func NewStore() *Store {
	return &Store{
		users:       map[uuid.UUID]domain.User{},
		tokens:      map[string]domain.Token{},
		tokenByUser: map[uuid.UUID]string{},
		tags:        map[int64]domain.Tag{},
		ingredients: map[int64]domain.Ingredient{},
		recipes:     map[int64]domain.Recipe{},
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// --- UserStorage ---

func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			ve := domain.NewValidationError()
			ve.Add("email", "user with this email already exists")
			return ve
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := u
	return &out, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, u := range s.users {
		if id != user.ID && u.Email == user.Email {
			ve := domain.NewValidationError()
			ve.Add("email", "user with this email already exists")
			return ve
		}
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

// --- TokenStorage ---

func (s *Store) ReplaceToken(ctx context.Context, token *domain.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.tokenByUser[token.UserID]; ok {
		delete(s.tokens, old)
	}
	token.CreatedAt = time.Now()
	s.tokens[token.Key] = *token
	s.tokenByUser[token.UserID] = token.Key
	return nil
}

func (s *Store) GetToken(ctx context.Context, key string) (*domain.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := t
	return &out, nil
}

// --- TagStorage ---

func (s *Store) ListTags(ctx context.Context, ownerID uuid.UUID) ([]domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Tag
	for _, t := range s.tags {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) CreateTag(ctx context.Context, tag *domain.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tags {
		if t.UserID == tag.UserID && strings.EqualFold(t.Name, tag.Name) {
			ve := domain.NewValidationError()
			ve.Add("name", "tag with this name already exists")
			return ve
		}
	}
	tag.ID = s.nextID()
	s.tags[tag.ID] = *tag
	return nil
}

func (s *Store) GetTagsByIDs(ctx context.Context, ownerID uuid.UUID, ids []int64) ([]domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Tag{}
	for _, id := range ids {
		if t, ok := s.tags[id]; ok && t.UserID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

// --- IngredientStorage ---

func (s *Store) ListIngredients(ctx context.Context, ownerID uuid.UUID) ([]domain.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Ingredient
	for _, i := range s.ingredients {
		if i.UserID == ownerID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) CreateIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, i := range s.ingredients {
		if i.UserID == ingredient.UserID && strings.EqualFold(i.Name, ingredient.Name) {
			ve := domain.NewValidationError()
			ve.Add("name", "ingredient with this name already exists")
			return ve
		}
	}
	ingredient.ID = s.nextID()
	s.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (s *Store) GetIngredientsByIDs(ctx context.Context, ownerID uuid.UUID, ids []int64) ([]domain.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Ingredient{}
	for _, id := range ids {
		if i, ok := s.ingredients[id]; ok && i.UserID == ownerID {
			out = append(out, i)
		}
	}
	return out, nil
}

// --- RecipeStorage ---

func copyRecipe(r domain.Recipe) domain.Recipe {
	out := r
	out.Tags = append([]domain.Tag(nil), r.Tags...)
	out.Ingredients = append([]domain.Ingredient(nil), r.Ingredients...)
	return out
}

func (s *Store) ListRecipes(ctx context.Context, ownerID uuid.UUID, filter domain.RecipeFilter) ([]domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matchTags := func(r domain.Recipe) bool {
		if len(filter.TagIDs) == 0 {
			return true
		}
		for _, t := range r.Tags {
			for _, id := range filter.TagIDs {
				if t.ID == id {
					return true
				}
			}
		}
		return false
	}
	matchIngredients := func(r domain.Recipe) bool {
		if len(filter.IngredientIDs) == 0 {
			return true
		}
		for _, i := range r.Ingredients {
			for _, id := range filter.IngredientIDs {
				if i.ID == id {
					return true
				}
			}
		}
		return false
	}

	out := []domain.Recipe{}
	for _, r := range s.recipes {
		if r.UserID == ownerID && matchTags(r) && matchIngredients(r) {
			out = append(out, copyRecipe(r))
		}
	}
	// Контрактный порядок списка: новые (больший id) первыми
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) GetRecipe(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok || r.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	out := copyRecipe(r)
	return &out, nil
}

func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe.ID = s.nextID()
	now := time.Now()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	s.recipes[recipe.ID] = copyRecipe(*recipe)
	return nil
}

func (s *Store) UpdateRecipe(ctx context.Context, recipe *domain.Recipe, replaceTags, replaceIngredients bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.recipes[recipe.ID]
	if !ok || stored.UserID != recipe.UserID {
		return domain.ErrNotFound
	}

	stored.Title = recipe.Title
	stored.TimeMinutes = recipe.TimeMinutes
	stored.Price = recipe.Price
	stored.Link = recipe.Link
	stored.ImageURL = recipe.ImageURL
	stored.UpdatedAt = time.Now()
	if replaceTags {
		stored.Tags = append([]domain.Tag(nil), recipe.Tags...)
	}
	if replaceIngredients {
		stored.Ingredients = append([]domain.Ingredient(nil), recipe.Ingredients...)
	}
	s.recipes[recipe.ID] = stored
	return nil
}

func (s *Store) DeleteRecipe(ctx context.Context, ownerID uuid.UUID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok || r.UserID != ownerID {
		return domain.ErrNotFound
	}
	delete(s.recipes, id)
	return nil
}

// FileStore — файловое хранилище в памяти, реализует ports.FileStorage.
type FileStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewFileStore() *FileStore {
	return &FileStore{objects: map[string][]byte{}}
}

func (f *FileStore) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения содержимого файла: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return "memory://" + key, nil
}

func (f *FileStore) DeleteFile(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

// Has сообщает, лежит ли объект в хранилище (для проверок в тестах).
func (f *FileStore) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}
