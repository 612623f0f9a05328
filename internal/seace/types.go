package seace

// Etapa is one row of the cronograma table, in display order.
type Etapa struct {
	Etapa       string `json:"etapa"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
}

// InfoAdicional holds supplementary fields scraped from the ficha.
// Every field degrades to empty when the source is unavailable.
type InfoAdicional struct {
	NumeroContrato string            `json:"numero_contrato,omitempty"`
	Extra          map[string]string `json:"extra,omitempty"`
}

// Resultado is the terminal artifact of one query.
type Resultado struct {
	CUI            string        `json:"cui"`
	Anio           int           `json:"anio"`
	Cronograma     []Etapa       `json:"cronograma"`
	NumeroContrato string        `json:"numero_contrato,omitempty"`
	InfoAdicional  InfoAdicional `json:"informacion_adicional"`
}
