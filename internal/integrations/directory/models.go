package directory

// Resident modelo do morador vindo do serviço de cadastro
type Resident struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Apartment string `json:"apartment"` // vazio para perfis administrativos
	Role      string `json:"role"`      // manager | resident
}

// ErrorResponse modelo de erro do serviço de cadastro
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
