package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/GoArmGo/RecipeApp/internal/database/memory"
	"github.com/GoArmGo/RecipeApp/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer поднимает полный HTTP-стек приложения поверх хранилища
// в памяти: все слои настоящие, подменены только база и файловое хранилище.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	files := memory.NewFileStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userUC := usecase.NewUserUseCase(store, store, logger)
	recipeUC := usecase.NewRecipeUseCase(store, store, store, files, logger)
	tagUC := usecase.NewTagUseCase(store, logger)
	ingredientUC := usecase.NewIngredientUseCase(store, logger)

	srv := httptest.NewServer(NewRouter(logger, 30*time.Second, userUC, recipeUC, tagUC, ingredientUC))
	t.Cleanup(srv.Close)
	return srv
}

// doJSON выполняет запрос с JSON-телом и декодирует JSON-ответ в out (если out != nil).
func doJSON(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func registerUser(t *testing.T, baseURL, email, password string) {
	t.Helper()
	status := doJSON(t, http.MethodPost, baseURL+"/users/create", "",
		map[string]string{"email": email, "password": password, "name": "Test Name"}, nil)
	require.Equal(t, http.StatusCreated, status)
}

func loginUser(t *testing.T, baseURL, email, password string) string {
	t.Helper()
	var body map[string]string
	status := doJSON(t, http.MethodPost, baseURL+"/users/token", "",
		map[string]string{"email": email, "password": password}, &body)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func TestRegisterEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]any
	status := doJSON(t, http.MethodPost, srv.URL+"/users/create", "",
		map[string]string{"email": "test@example.com", "password": "password123", "name": "Test Name"}, &body)

	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "test@example.com", body["email"])
	assert.Equal(t, "Test Name", body["name"])
	assert.NotContains(t, body, "password", "password must never appear in a response")
	assert.NotContains(t, body, "password_hash")
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "test@example.com", "password123")

	var body map[string]any
	status := doJSON(t, http.MethodPost, srv.URL+"/users/create", "",
		map[string]string{"email": "test@example.com", "password": "password456", "name": "Other"}, &body)

	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "email")
}

func TestRegisterEndpoint_ShortPassword(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]any
	status := doJSON(t, http.MethodPost, srv.URL+"/users/create", "",
		map[string]string{"email": "test@example.com", "password": "pass", "name": "Test"}, &body)

	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "password")
}

func TestTokenEndpoint(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "test@example.com", "password123")

	token := loginUser(t, srv.URL, "test@example.com", "password123")
	assert.Len(t, token, 40)

	// Неверный пароль: 400 с non_field_errors, токена в ответе нет
	var body map[string]any
	status := doJSON(t, http.MethodPost, srv.URL+"/users/token", "",
		map[string]string{"email": "test@example.com", "password": "wrongpassword"}, &body)

	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "non_field_errors")
	assert.NotContains(t, body, "token")
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]any
	status := doJSON(t, http.MethodGet, srv.URL+"/recipes", "", nil, &body)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "detail")

	status = doJSON(t, http.MethodGet, srv.URL+"/recipes", "totally-bogus-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "test@example.com", "password123")
	token := loginUser(t, srv.URL, "test@example.com", "password123")

	status := doJSON(t, http.MethodPost, srv.URL+"/users/me", token, map[string]string{}, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestProfileEndpoint(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "test@example.com", "password123")
	token := loginUser(t, srv.URL, "test@example.com", "password123")

	var body map[string]any
	status := doJSON(t, http.MethodGet, srv.URL+"/users/me", token, nil, &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "test@example.com", body["email"])

	status = doJSON(t, http.MethodPatch, srv.URL+"/users/me", token,
		map[string]string{"name": "Renamed"}, &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Renamed", body["name"])
	assert.Equal(t, "test@example.com", body["email"], "omitted fields stay untouched")
}

func TestRecipeCreateAndList(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "test@example.com", "password123")
	token := loginUser(t, srv.URL, "test@example.com", "password123")

	var created map[string]any
	status := doJSON(t, http.MethodPost, srv.URL+"/recipes", token,
		map[string]any{"title": "Bread", "time_minutes": 1, "price": 5.50}, &created)

	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Bread", created["title"])
	assert.Equal(t, float64(1), created["time_minutes"])
	assert.Equal(t, 5.50, created["price"])

	var list []map[string]any
	status = doJSON(t, http.MethodGet, srv.URL+"/recipes", token, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, created["id"], list[0]["id"])
}

func TestRecipeList_ScopedToOwner(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "a@example.com", "password123")
	registerUser(t, srv.URL, "b@example.com", "password123")
	tokenA := loginUser(t, srv.URL, "a@example.com", "password123")
	tokenB := loginUser(t, srv.URL, "b@example.com", "password123")

	for _, title := range []string{"Bread", "Cookies"} {
		status := doJSON(t, http.MethodPost, srv.URL+"/recipes", tokenA,
			map[string]any{"title": title, "time_minutes": 5, "price": 3.00}, nil)
		require.Equal(t, http.StatusCreated, status)
	}
	status := doJSON(t, http.MethodPost, srv.URL+"/recipes", tokenB,
		map[string]any{"title": "Cake", "time_minutes": 45, "price": 12.00}, nil)
	require.Equal(t, http.StatusCreated, status)

	var list []map[string]any
	status = doJSON(t, http.MethodGet, srv.URL+"/recipes", tokenA, nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 2)
}

func TestRecipeDetail_OtherUserIs404(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "a@example.com", "password123")
	registerUser(t, srv.URL, "b@example.com", "password123")
	tokenA := loginUser(t, srv.URL, "a@example.com", "password123")
	tokenB := loginUser(t, srv.URL, "b@example.com", "password123")

	var created map[string]any
	status := doJSON(t, http.MethodPost, srv.URL+"/recipes", tokenA,
		map[string]any{"title": "Secret", "time_minutes": 5, "price": 3.00}, &created)
	require.Equal(t, http.StatusCreated, status)

	url := fmt.Sprintf("%s/recipes/%v", srv.URL, created["id"])
	status = doJSON(t, http.MethodGet, url, tokenB, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status = doJSON(t, http.MethodGet, srv.URL+"/recipes/99999", tokenA, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRecipeSerialization_ListIDsDetailObjects(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "test@example.com", "password123")
	token := loginUser(t, srv.URL, "test@example.com", "password123")

	var tag map[string]any
	status := doJSON(t, http.MethodPost, srv.URL+"/tags", token, map[string]string{"name": "Vegan"}, &tag)
	require.Equal(t, http.StatusCreated, status)

	var created map[string]any
	status = doJSON(t, http.MethodPost, srv.URL+"/recipes", token,
		map[string]any{"title": "Salad", "time_minutes": 5, "price": 3.00, "tags": []any{tag["id"]}}, &created)
	require.Equal(t, http.StatusCreated, status)

	// Детальный ответ: вложенные объекты {id, name}
	detailTags, ok := created["tags"].([]any)
	require.True(t, ok)
	require.Len(t, detailTags, 1)
	nested, ok := detailTags[0].(map[string]any)
	require.True(t, ok, "detail response carries tags as objects")
	assert.Equal(t, tag["id"], nested["id"])
	assert.Equal(t, "Vegan", nested["name"])

	// Списочный ответ: голые id
	var list []map[string]any
	status = doJSON(t, http.MethodGet, srv.URL+"/recipes", token, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	listTags, ok := list[0]["tags"].([]any)
	require.True(t, ok)
	require.Len(t, listTags, 1)
	assert.Equal(t, tag["id"], listTags[0], "list response carries tags as bare ids")
}

func TestRecipeUpdate_PutClearsPatchKeeps(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "test@example.com", "password123")
	token := loginUser(t, srv.URL, "test@example.com", "password123")

	var tag map[string]any
	status := doJSON(t, http.MethodPost, srv.URL+"/tags", token, map[string]string{"name": "Dessert"}, &tag)
	require.Equal(t, http.StatusCreated, status)

	var created map[string]any
	status = doJSON(t, http.MethodPost, srv.URL+"/recipes", token,
		map[string]any{"title": "Cake", "time_minutes": 45, "price": 12.00, "tags": []any{tag["id"]}}, &created)
	require.Equal(t, http.StatusCreated, status)
	url := fmt.Sprintf("%s/recipes/%v", srv.URL, created["id"])

	// PATCH без поля tags: связи остаются
	var patched map[string]any
	status = doJSON(t, http.MethodPatch, url, token, map[string]any{"title": "Carrot cake"}, &patched)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Carrot cake", patched["title"])
	assert.Len(t, patched["tags"], 1)

	// PUT без поля tags: связи очищаются
	var replaced map[string]any
	status = doJSON(t, http.MethodPut, url, token,
		map[string]any{"title": "Plain cake", "time_minutes": 30, "price": 10.00}, &replaced)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Plain cake", replaced["title"])
	assert.Empty(t, replaced["tags"])
}

func TestRecipeDelete(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "test@example.com", "password123")
	token := loginUser(t, srv.URL, "test@example.com", "password123")

	var created map[string]any
	status := doJSON(t, http.MethodPost, srv.URL+"/recipes", token,
		map[string]any{"title": "Bread", "time_minutes": 1, "price": 5.50}, &created)
	require.Equal(t, http.StatusCreated, status)
	url := fmt.Sprintf("%s/recipes/%v", srv.URL, created["id"])

	status = doJSON(t, http.MethodDelete, url, token, nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	status = doJSON(t, http.MethodGet, url, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTagEndpoints(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "test@example.com", "password123")
	token := loginUser(t, srv.URL, "test@example.com", "password123")

	var created map[string]any
	status := doJSON(t, http.MethodPost, srv.URL+"/tags", token, map[string]string{"name": "Vegan"}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Vegan", created["name"])

	var list []map[string]any
	status = doJSON(t, http.MethodGet, srv.URL+"/tags", token, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "Vegan", list[0]["name"])

	status = doJSON(t, http.MethodPost, srv.URL+"/tags", token, map[string]string{"name": ""}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestIngredientEndpoints(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "test@example.com", "password123")
	token := loginUser(t, srv.URL, "test@example.com", "password123")

	status := doJSON(t, http.MethodPost, srv.URL+"/ingredients", token, map[string]string{"name": "Salt"}, nil)
	require.Equal(t, http.StatusCreated, status)

	var list []map[string]any
	status = doJSON(t, http.MethodGet, srv.URL+"/ingredients", token, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "Salt", list[0]["name"])
}

func TestUploadImageEndpoint(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "test@example.com", "password123")
	token := loginUser(t, srv.URL, "test@example.com", "password123")

	var created map[string]any
	status := doJSON(t, http.MethodPost, srv.URL+"/recipes", token,
		map[string]any{"title": "Bread", "time_minutes": 1, "price": 5.50}, &created)
	require.Equal(t, http.StatusCreated, status)

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="image"; filename="bread.jpg"`},
		"Content-Type":        {"image/jpeg"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("fake jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	url := fmt.Sprintf("%s/recipes/%v/upload-image", srv.URL, created["id"])
	req, err := http.NewRequest(http.MethodPost, url, &form)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Token "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	imageURL, _ := body["image_url"].(string)
	assert.NotEmpty(t, imageURL)
}
