package domain

// User is the logged in customer as the backend returns it.
type User struct {
	CPF        string `json:"CPF"`
	Name       string `json:"nome"`
	Email      string `json:"email"`
	Phone      string `json:"telefone"`
	CEP        string `json:"cep"`
	Address    string `json:"endereco"`
	Complement string `json:"complemento"`
	Number     string `json:"numero"`
}

// RegisterRequest creates a new customer account.
type RegisterRequest struct {
	CPF        string `json:"CPF"`
	Name       string `json:"nome"`
	Email      string `json:"email"`
	Password   string `json:"senha"`
	Phone      string `json:"telefone"`
	CEP        string `json:"cep"`
	Address    string `json:"endereco"`
	Complement string `json:"complemento"`
	Number     string `json:"numero"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}
