package pets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"pet-adoption/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta las páginas HTML.
// {petID} solo acepta dígitos; cualquier otra cosa cae en 404.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/", listPetsHandler(svc))

	r.Get("/add", showAddFormHandler())
	r.Post("/add", addPetHandler(svc))

	r.Get("/{petID:[0-9]+}", showEditFormHandler(svc))
	r.Post("/{petID:[0-9]+}", editPetHandler(svc))
}

// RegisterAPIRoutes monta la API JSON (el router la cuelga de /api).
func RegisterAPIRoutes(r chi.Router, svc *Service) {
	r.Get("/pets/{petID:[0-9]+}", apiGetPetHandler(svc))
}

// petSummaryResponse: exactamente name + age (age null si no hay).
type petSummaryResponse struct {
	Name string `json:"name" example:"Fido"`
	Age  *int   `json:"age" example:"5"`
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			internalError(w, r, "list pets failed", err)
			return
		}

		view := listView{page: newPage(r), Pets: make([]petView, 0, len(items))}
		view.Flash = popFlash(w, r)
		for _, p := range items {
			view.Pets = append(view.Pets, toPetView(p))
		}

		render(w, r, pageList, view)
	}
}

func showAddFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, pageAdd, addView{
			page:    newPage(r),
			Errors:  map[string][]string{},
			Species: SpeciesChoices,
		})
	}
}

func addPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		form := AddForm{
			Name:     r.PostForm.Get(FieldName),
			Species:  r.PostForm.Get(FieldSpecies),
			PhotoURL: r.PostForm.Get(FieldPhotoURL),
			Age:      r.PostForm.Get(FieldAge),
			Notes:    r.PostForm.Get(FieldNotes),
		}

		p, err := svc.Create(r.Context(), form)
		if err != nil {
			var verrs ValidationErrors
			if errors.As(err, &verrs) {
				// Re-render con los valores enviados y los errores por campo.
				render(w, r, pageAdd, addView{
					page:    newPage(r),
					Form:    form,
					Errors:  errorsByField(verrs),
					Species: SpeciesChoices,
				})
				return
			}
			internalError(w, r, "create pet failed", err)
			return
		}

		middleware.Log(r.Context()).Info("pet created", map[string]any{"pet_id": p.ID, "species": string(p.Species)})
		setFlash(w, fmt.Sprintf("%s added.", p.Name))
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func showEditFormHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadPet(w, r, svc)
		if !ok {
			return
		}

		render(w, r, pageEdit, editView{
			page:   newPage(r),
			Pet:    toPetView(p),
			Form:   EditFormFrom(p),
			Errors: map[string][]string{},
		})
	}
}

func editPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := loadPet(w, r, svc)
		if !ok {
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		// checkbox sin marcar no viaja en el form => false
		form := EditForm{
			PhotoURL:  r.PostForm.Get(FieldPhotoURL),
			Notes:     r.PostForm.Get(FieldNotes),
			Available: ParseCheckbox(r.PostForm.Get(FieldAvailable)),
		}

		updated, err := svc.Update(r.Context(), current.ID, form)
		if err != nil {
			var verrs ValidationErrors
			switch {
			case errors.As(err, &verrs):
				render(w, r, pageEdit, editView{
					page:   newPage(r),
					Pet:    toPetView(current),
					Form:   form,
					Errors: errorsByField(verrs),
				})
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				internalError(w, r, "update pet failed", err)
			}
			return
		}

		middleware.Log(r.Context()).Info("pet updated", map[string]any{"pet_id": updated.ID})
		setFlash(w, fmt.Sprintf("%s updated.", updated.Name))
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// apiGetPetHandler godoc
//
//	@Summary		Get basic info about a pet
//	@Description	Returns only the pet's name and age (null when unknown).
//	@Tags			pets
//	@Produce		json
//	@Param			petID	path		int	true	"Pet ID"
//	@Success		200		{object}	petSummaryResponse
//	@Failure		404		{string}	string	"pet not found"
//	@Router			/api/pets/{petID} [get]
func apiGetPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parsePetID(r)
		if !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		p, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			internalError(w, r, "get pet failed", err)
			return
		}

		writeJSON(w, http.StatusOK, petSummaryResponse{Name: p.Name, Age: p.Age})
	}
}

// loadPet resuelve {petID}; si no existe ya respondió 404 (o 500) y devuelve false.
func loadPet(w http.ResponseWriter, r *http.Request, svc *Service) (Pet, bool) {
	id, ok := parsePetID(r)
	if !ok {
		http.Error(w, "pet not found", http.StatusNotFound)
		return Pet{}, false
	}

	p, err := svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "pet not found", http.StatusNotFound)
			return Pet{}, false
		}
		internalError(w, r, "get pet failed", err)
		return Pet{}, false
	}
	return p, true
}

// parsePetID: ids fuera de rango de int64 también son "no encontrado".
func parsePetID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	middleware.Log(r.Context()).Error(msg, map[string]any{"err": err, "path": r.URL.Path})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
