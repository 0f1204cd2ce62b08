package domain

// Store is one physical unit of the chain.
type Store struct {
	CNPJ       string `json:"CNPJ"`
	Name       string `json:"Nome_loja"`
	Address    string `json:"Endereco_Loja"`
	CEP        string `json:"Cep_loja"`
	Complement string `json:"Complemento_Loja"`
}

// Fulfillment says how a section's order leaves the store.
type Fulfillment int

const (
	FulfillmentPickup   Fulfillment = 1
	FulfillmentDelivery Fulfillment = 2
)

func (f Fulfillment) String() string {
	switch f {
	case FulfillmentPickup:
		return "retirada"
	case FulfillmentDelivery:
		return "entrega"
	}
	return "desconhecido"
}

// Section is an open shopping session binding a customer to a store.
// The backend only returns the id; Fulfillment is filled in by the
// client that opened it.
type Section struct {
	ID          int64       `json:"ID"`
	Fulfillment Fulfillment `json:"tipo_secao"`
}

// CreateSectionRequest opens a section. Situacao 1 means open.
type CreateSectionRequest struct {
	CustomerCPF string `json:"CPF_cliente"`
	StoreCNPJ   string `json:"CNPJ_loja"`
	Situation   int    `json:"Situacao"`
	Fulfillment int    `json:"tipo_secao"`
}
