package domain

// User roles (Usuario.funcao in the legacy schema).
const (
	RoleAgent     = "agente"
	RoleAdmin     = "adm"
	RoleInspector = "fiscal"
)

// User field staff record (users table). Authentication and token
// issuance live in the gateway; this service only needs identity and
// role for references and the admin-only cycle operations.
type User struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	CPF          string `db:"cpf"`           // unique
	PasswordHash string `db:"password_hash"` // written by the auth service, opaque here
	Role         string `db:"role"`          // NOT NULL, default 'agente'
}
