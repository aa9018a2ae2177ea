package router_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/router"
)

// client mantiene cookies (csrf + flash) y no sigue redirects.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newTestServer(t *testing.T, repo pets.Repository) *client {
	t.Helper()

	ts := httptest.NewServer(router.NewRouter(router.Options{PetRepo: repo}))
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	hc := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	t.Cleanup(hc.CloseIdleConnections)

	return &client{t: t, base: ts.URL, http: hc}
}

func (c *client) get(path string) (*http.Response, string) {
	c.t.Helper()

	res, err := c.http.Get(c.base + path)
	require.NoError(c.t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	return res, string(body)
}

// postForm agrega el csrf_token de la cookie (si ya hay una) al formulario.
func (c *client) postForm(path string, form url.Values) (*http.Response, string) {
	c.t.Helper()

	if token := c.csrfToken(); token != "" && form.Get(middleware.CSRFFieldName) == "" {
		form.Set(middleware.CSRFFieldName, token)
	}

	res, err := c.http.PostForm(c.base+path, form)
	require.NoError(c.t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	return res, string(body)
}

func (c *client) csrfToken() string {
	u, _ := url.Parse(c.base)
	for _, ck := range c.http.Jar.Cookies(u) {
		if ck.Name == middleware.CSRFCookieName {
			return ck.Value
		}
	}
	return ""
}

func TestHTTP_EndToEnd_AddEditView(t *testing.T) {
	repo := memory.NewPetRepo()
	c := newTestServer(t, repo)

	// 1) Form vacío (de paso recibe la cookie csrf)
	{
		res, body := c.get("/add")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, `name="csrf_token"`)
		assert.Contains(t, body, `<option value="porcupine"`)
		require.NotEmpty(t, c.csrfToken())
	}

	// 2) Alta válida => 302 a /
	{
		res, _ := c.postForm("/add", url.Values{
			"name":    {"Fido"},
			"species": {"dog"},
			"age":     {"5"},
		})
		require.Equal(t, http.StatusFound, res.StatusCode)
		assert.Equal(t, "/", res.Header.Get("Location"))
	}

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	fido := all[0]
	assert.True(t, fido.Available)
	assert.Nil(t, fido.PhotoURL)
	assert.Equal(t, pets.GenericImageURL, fido.ImageURL())

	// 3) Listado muestra el aviso una sola vez y la imagen genérica
	{
		res, body := c.get("/")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Fido added.")
		assert.Contains(t, body, pets.GenericImageURL)
		assert.Contains(t, body, `href="/1"`)

		_, again := c.get("/")
		assert.NotContains(t, again, "Fido added.")
	}

	// 4) API JSON
	{
		res, body := c.get("/api/pets/1")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"name":"Fido","age":5}`, body)
	}

	// 5) Form de edición precargado
	{
		res, body := c.get("/1")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Fido")
		assert.Contains(t, body, `name="available" value="y" checked`)
	}

	// 6) Edición válida: checkbox sin marcar => available=false
	{
		res, _ := c.postForm("/1", url.Values{
			"photo_url": {"http://x.com/a.png"},
			"notes":     {"ten+chars!"},
		})
		require.Equal(t, http.StatusFound, res.StatusCode)

		_, body := c.get("/")
		assert.Contains(t, body, "Fido updated.")
		assert.Contains(t, body, "http://x.com/a.png")
	}

	got, err := repo.GetByID(context.Background(), fido.ID)
	require.NoError(t, err)
	assert.Equal(t, fido.Name, got.Name)
	assert.Equal(t, fido.Species, got.Species)
	assert.Equal(t, fido.Age, got.Age)
	require.NotNil(t, got.PhotoURL)
	assert.Equal(t, "http://x.com/a.png", *got.PhotoURL)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "ten+chars!", *got.Notes)
	assert.False(t, got.Available)
}

func TestHTTP_Add_InvalidRerendersWithErrors(t *testing.T) {
	repo := memory.NewPetRepo()
	c := newTestServer(t, repo)
	c.get("/add")

	res, body := c.postForm("/add", url.Values{
		"name":      {"Rex"},
		"species":   {"lizard"},
		"photo_url": {"not a url"},
		"age":       {"31"},
		"notes":     {"too short"},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	assert.Contains(t, body, pets.MsgSpeciesChoice)
	assert.Contains(t, body, pets.MsgInvalidURL)
	assert.Contains(t, body, pets.MsgAgeRange)
	assert.Contains(t, body, pets.MsgNotesLength)
	// conserva lo enviado
	assert.Contains(t, body, `value="Rex"`)
	assert.Contains(t, body, `value="31"`)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "invalid add must not persist anything")
}

func TestHTTP_Edit_InvalidKeepsPet(t *testing.T) {
	repo := memory.NewPetRepo()
	notes := "a calm and friendly cat"
	p, err := repo.Create(context.Background(), pets.NewPet{Name: "Milo", Species: pets.SpeciesCat, Notes: &notes})
	require.NoError(t, err)

	c := newTestServer(t, repo)
	c.get("/1")

	res, body := c.postForm("/1", url.Values{
		"photo_url": {"ftp//broken"},
		"notes":     {"short"},
		"available": {"y"},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, pets.MsgInvalidURL)
	assert.Contains(t, body, pets.MsgNotesLength)

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestHTTP_NotFound(t *testing.T) {
	c := newTestServer(t, memory.NewPetRepo())
	c.get("/")

	for _, path := range []string{"/999", "/api/pets/999", "/api/pets/abc", "/abc", "/99999999999999999999999"} {
		res, _ := c.get(path)
		assert.Equal(t, http.StatusNotFound, res.StatusCode, "GET %s", path)
	}

	res, _ := c.postForm("/999", url.Values{"notes": {"long enough notes"}})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHTTP_API_NullAge(t *testing.T) {
	repo := memory.NewPetRepo()
	_, err := repo.Create(context.Background(), pets.NewPet{Name: "Quill", Species: pets.SpeciesPorcupine})
	require.NoError(t, err)

	c := newTestServer(t, repo)
	res, body := c.get("/api/pets/1")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, `{"name":"Quill","age":null}`, strings.TrimSpace(body))
}

func TestHTTP_API_CORS(t *testing.T) {
	repo := memory.NewPetRepo()
	_, err := repo.Create(context.Background(), pets.NewPet{Name: "Quill", Species: pets.SpeciesPorcupine})
	require.NoError(t, err)
	c := newTestServer(t, repo)

	req, err := http.NewRequest(http.MethodGet, c.base+"/api/pets/1", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://frontend.example.com")

	res, err := c.http.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestHTTP_PostWithoutCSRFIsForbidden(t *testing.T) {
	repo := memory.NewPetRepo()
	c := newTestServer(t, repo)

	res, _ := c.postForm("/add", url.Values{"name": {"Fido"}, "species": {"dog"}})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHTTP_HealthAndSwagger(t *testing.T) {
	c := newTestServer(t, nil)

	res, body := c.get("/health")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	res, body = c.get("/swagger/doc.json")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "/api/pets/{petID}")
}

type brokenRepo struct{ pets.Repository }

var errDBDown = errors.New("db down")

func (brokenRepo) List(context.Context) ([]pets.Pet, error)              { return nil, errDBDown }
func (brokenRepo) GetByID(context.Context, int64) (pets.Pet, error)      { return pets.Pet{}, errDBDown }
func (brokenRepo) Create(context.Context, pets.NewPet) (pets.Pet, error) { return pets.Pet{}, errDBDown }

func TestHTTP_PersistenceFailureIs500(t *testing.T) {
	c := newTestServer(t, brokenRepo{})

	res, _ := c.get("/")
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	res, _ = c.get("/api/pets/1")
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	c.get("/add")
	res, _ = c.postForm("/add", url.Values{"name": {"Fido"}, "species": {"dog"}})
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}
