package pets

// GenericImageURL es la imagen compartida para mascotas sin foto propia.
const GenericImageURL = "https://mylostpetalert.com/wp-content/themes/mlpa-child/images/nophoto.gif"

// Species define las especies soportadas.
// @Enum cat, dog, porcupine
type Species string

const (
	SpeciesCat       Species = "cat"
	SpeciesDog       Species = "dog"
	SpeciesPorcupine Species = "porcupine"
)

// SpeciesChoice es una opción del select de especie (valor + etiqueta).
type SpeciesChoice struct {
	Value Species
	Label string
}

// SpeciesChoices en el orden en que se muestran en el formulario.
var SpeciesChoices = []SpeciesChoice{
	{Value: SpeciesCat, Label: "Cat"},
	{Value: SpeciesDog, Label: "Dog"},
	{Value: SpeciesPorcupine, Label: "Porcupine"},
}

func (s Species) Valid() bool {
	for _, c := range SpeciesChoices {
		if c.Value == s {
			return true
		}
	}
	return false
}

// Pet representa una mascota en adopción.
// Name, Species y Age se fijan al crear y no se editan nunca.
type Pet struct {
	ID int64

	Name    string
	Species Species

	PhotoURL *string
	Age      *int
	Notes    *string

	Available bool
}

// ImageURL devuelve la foto propia o, si no hay, la genérica.
func (p Pet) ImageURL() string {
	if p.PhotoURL != nil && *p.PhotoURL != "" {
		return *p.PhotoURL
	}
	return GenericImageURL
}

// NewPet son los datos ya validados para crear una mascota.
// El store asigna el ID; Available arranca en true.
type NewPet struct {
	Name     string
	Species  Species
	PhotoURL *string
	Age      *int
	Notes    *string
}

// Changes son los únicos campos mutables de una mascota.
type Changes struct {
	PhotoURL  *string
	Notes     *string
	Available bool
}
