package address

import (
	"encoding/json"
	"sync"
	"time"
)

// Address holds the fields a postal code lookup fills in.
type Address struct {
	PostalCode   string
	Street       string
	Neighborhood string
	City         string
	UF           string
	LastUpdated  time.Time
}

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type Cache struct {
	entries map[string]*Address
	mu      sync.RWMutex
	ttl     time.Duration
}

// viaCEPResponse is the directory's JSON shape. A missing postal code is
// reported as {"erro": true}, and some deployments send the flag as the
// string "true".
type viaCEPResponse struct {
	CEP        string          `json:"cep"`
	Logradouro string          `json:"logradouro"`
	Bairro     string          `json:"bairro"`
	Localidade string          `json:"localidade"`
	UF         string          `json:"uf"`
	Erro       json.RawMessage `json:"erro,omitempty"`
}

func (r viaCEPResponse) notFound() bool {
	switch string(r.Erro) {
	case "true", `"true"`:
		return true
	default:
		return false
	}
}
