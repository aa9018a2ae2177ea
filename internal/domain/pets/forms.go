package pets

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MinAge        = 0
	MaxAge        = 30
	MinNotesRunes = 10
)

// Mensajes de validación por campo.
const (
	MsgNameRequired    = "Pet name is required"
	MsgSpeciesRequired = "Please select a species"
	MsgSpeciesChoice   = "Not a valid choice"
	MsgInvalidURL      = "Invalid URL"
	MsgAgeInteger      = "Not a valid integer value"
	MsgAgeRange        = "Age must be between 0 and 30"
	MsgNotesLength     = "Comments must be at least 10 characters long"
)

// Nombres de campo, iguales a los name="" de los formularios HTML.
const (
	FieldName      = "name"
	FieldSpecies   = "species"
	FieldPhotoURL  = "photo_url"
	FieldAge       = "age"
	FieldNotes     = "notes"
	FieldAvailable = "available"
)

type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors junta todos los campos inválidos de una operación.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// For devuelve los mensajes de un campo (para pintarlos en el template).
func (v ValidationErrors) For(field string) []string {
	var out []string
	for _, fe := range v {
		if fe.Field == field {
			out = append(out, fe.Message)
		}
	}
	return out
}

func (v ValidationErrors) Has(field string) bool {
	return len(v.For(field)) > 0
}

func (v *ValidationErrors) add(field, msg string) {
	*v = append(*v, FieldError{Field: field, Message: msg})
}

// AddForm es el input crudo del alta, tal como llega del formulario.
type AddForm struct {
	Name     string
	Species  string
	PhotoURL string
	Age      string
	Notes    string
}

// Validate aplica las reglas de alta. Si hay errores, NewPet no se usa.
func (f AddForm) Validate() (NewPet, ValidationErrors) {
	var errs ValidationErrors
	var out NewPet

	out.Name = strings.TrimSpace(f.Name)
	if out.Name == "" {
		errs.add(FieldName, MsgNameRequired)
	}

	species := strings.TrimSpace(f.Species)
	switch {
	case species == "":
		errs.add(FieldSpecies, MsgSpeciesRequired)
	case !Species(species).Valid():
		errs.add(FieldSpecies, MsgSpeciesChoice)
	default:
		out.Species = Species(species)
	}

	if u, ok := optional(f.PhotoURL); ok {
		if !ValidURL(u) {
			errs.add(FieldPhotoURL, MsgInvalidURL)
		} else {
			out.PhotoURL = &u
		}
	}

	if raw, ok := optional(f.Age); ok {
		age, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.add(FieldAge, MsgAgeInteger)
		case age < MinAge || age > MaxAge:
			errs.add(FieldAge, MsgAgeRange)
		default:
			out.Age = &age
		}
	}

	if n, ok := optional(f.Notes); ok {
		if !validNotes(n) {
			errs.add(FieldNotes, MsgNotesLength)
		} else {
			out.Notes = &n
		}
	}

	return out, errs
}

// EditForm es el input crudo de la edición. Solo trae los campos mutables.
type EditForm struct {
	PhotoURL  string
	Notes     string
	Available bool
}

// EditFormFrom precarga el formulario con los valores actuales.
func EditFormFrom(p Pet) EditForm {
	f := EditForm{Available: p.Available}
	if p.PhotoURL != nil {
		f.PhotoURL = *p.PhotoURL
	}
	if p.Notes != nil {
		f.Notes = *p.Notes
	}
	return f
}

func (f EditForm) Validate() (Changes, ValidationErrors) {
	var errs ValidationErrors
	out := Changes{Available: f.Available}

	if u, ok := optional(f.PhotoURL); ok {
		if !ValidURL(u) {
			errs.add(FieldPhotoURL, MsgInvalidURL)
		} else {
			out.PhotoURL = &u
		}
	}

	if n, ok := optional(f.Notes); ok {
		if !validNotes(n) {
			errs.add(FieldNotes, MsgNotesLength)
		} else {
			out.Notes = &n
		}
	}

	return out, errs
}

// ParseCheckbox interpreta el valor de un checkbox HTML.
// Ausente o "false"/"0"/"off" => false; cualquier otro valor => true.
func ParseCheckbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "0", "off":
		return false
	default:
		return true
	}
}

// optional: vacío o solo espacios cuenta como "no enviado".
func optional(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	return v, v != ""
}

func validNotes(n string) bool {
	return utf8.RuneCountInString(n) >= MinNotesRunes
}

var (
	schemeRe = regexp.MustCompile(`^[a-zA-Z]+$`)
	labelRe  = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)
	tldRe    = regexp.MustCompile(`^([a-zA-Z]{2,20}|[xX][nN]--([a-zA-Z0-9]+-)*[a-zA-Z0-9]+)$`)
)

// ValidURL exige scheme://host con host IPv4 o dominio con TLD.
func ValidURL(raw string) bool {
	if strings.ContainsAny(raw, " \t\r\n") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if !schemeRe.MatchString(u.Scheme) || u.Opaque != "" || u.User != nil {
		return false
	}

	host := u.Hostname()
	if host == "" || strings.Contains(host, ":") {
		return false
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.To4() != nil
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if !labelRe.MatchString(l) {
			return false
		}
	}
	return tldRe.MatchString(labels[len(labels)-1])
}
