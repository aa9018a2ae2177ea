package pets

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pet-adoption/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageList = "pet_list.html"
	pageAdd  = "pet_add_form.html"
	pageEdit = "pet_edit_form.html"
)

// Un template por página: base.html + la página (cada una define "content").
var pages = func() map[string]*template.Template {
	out := map[string]*template.Template{}
	for _, p := range []string{pageList, pageAdd, pageEdit} {
		out[p] = template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/"+p))
	}
	return out
}()

// page son los datos comunes a todas las vistas.
type page struct {
	Flash string
	CSRF  string
}

type petView struct {
	ID        int64
	Name      string
	Species   Species
	Age       string
	ImageURL  string
	Available bool
}

func toPetView(p Pet) petView {
	v := petView{
		ID:        p.ID,
		Name:      p.Name,
		Species:   p.Species,
		ImageURL:  p.ImageURL(),
		Available: p.Available,
	}
	if p.Age != nil {
		v.Age = strconv.Itoa(*p.Age)
	}
	return v
}

type listView struct {
	page
	Pets []petView
}

type addView struct {
	page
	Form    AddForm
	Errors  map[string][]string
	Species []SpeciesChoice
}

type editView struct {
	page
	Pet    petView
	Form   EditForm
	Errors map[string][]string
}

func errorsByField(errs ValidationErrors) map[string][]string {
	out := map[string][]string{}
	for _, fe := range errs {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

func newPage(r *http.Request) page {
	return page{CSRF: middleware.CSRFToken(r.Context())}
}

// render ejecuta en un buffer para no mandar HTML a medias si el template falla.
func render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := pages[name].ExecuteTemplate(&buf, "base", data); err != nil {
		middleware.Log(r.Context()).Error("render template failed", map[string]any{"template": name, "err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

const flashCookie = "flash"

// setFlash guarda un aviso que se muestra una vez, después del redirect.
func setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash lee el aviso pendiente y borra la cookie.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}
