package models

import "time"

// Criterion is one named ethical concern flagged by an evaluation. Label and
// description come from the local catalog; the remote store only keeps the id
// and the boolean.
type Criterion struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Checked     bool   `json:"checked"`
}

// Evaluation represents one user's ethical judgment on one media item
type Evaluation struct {
	ID        string        `json:"id"`
	MediaID   int64         `json:"media_id"`
	MediaType MediaType     `json:"media_type"`
	Username  string        `json:"username"`
	Rating    EthicalRating `json:"rating"`
	Comment   string        `json:"comment,omitempty"`
	Criteria  []Criterion   `json:"criteria"`
	CreatedAt time.Time     `json:"created_at"`
}

// Key returns the identity pair of the evaluated item
func (e Evaluation) Key() MediaKey {
	return MediaKey{ID: e.MediaID, Type: e.MediaType}
}

// CriteriaCatalog is the static list of ethical concerns an evaluation can
// flag. Descriptions are resolved locally from this catalog, the store does
// not persist them.
var CriteriaCatalog = []Criterion{
	{
		ID:          "animal_violence",
		Label:       "Violence envers les animaux",
		Description: "Scènes de maltraitance, abattage, souffrance animale (même implicite)",
	},
	{
		ID:          "hunting_fishing",
		Label:       "Scènes de pêche / chasse",
		Description: "Présence explicite ou valorisation implicite",
	},
	{
		ID:          "entertainment_use",
		Label:       "Animaux utilisés comme divertissement",
		Description: "Cirque, zoo, aquarium, corrida, équitation, etc.",
	},
	{
		ID:          "constraining_treatment",
		Label:       "Traitement contraignant ou humiliant",
		Description: "Dressage, captivité, comportement stressé ou forcé",
	},
	{
		ID:          "speciesist_content",
		Label:       "Contenu pro-spéciste",
		Description: "Hiérarchie implicite, justification de l'exploitation, moquerie ou invisibilisation des animaux",
	},
	{
		ID:          "animal_consumption",
		Label:       "Glorification de la consommation animale",
		Description: "Barbecue, steak, lait, chasse ou pêche présentés sans nuance",
	},
	{
		ID:          "problematic_context",
		Label:       "Présence d'animaux dans un cadre problématique",
		Description: "Animaux visibles à l'écran dans un contexte de captivité, de contrainte ou de détournement de leur environnement naturel",
	},
	{
		ID:          "problematic_representation",
		Label:       "Représentation animale problématique (même animée)",
		Description: "Stéréotype, enfermement ou exploitation banalisés dans une œuvre animée ou en image de synthèse",
	},
	{
		ID:          "vegan_character",
		Label:       "Présence d'un personnage végane ou antispéciste",
		Description: "Un personnage remet en question l'usage des animaux ou exprime une sensibilité éthique",
	},
	{
		ID:          "educational_message",
		Label:       "Message critique ou éducatif sur l'exploitation animale",
		Description: "Le film sensibilise clairement sur la souffrance ou les droits des animaux",
	},
}

// CriterionByID looks up a catalog entry. Unknown ids come back with the id
// as label so remote data never gets dropped silently.
func CriterionByID(id string) Criterion {
	for _, c := range CriteriaCatalog {
		if c.ID == id {
			return c
		}
	}
	return Criterion{ID: id, Label: id}
}
