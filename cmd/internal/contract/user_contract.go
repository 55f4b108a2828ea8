package contract

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=6,max=64"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"usuario"`
}

// UserInfo is the identity payload returned by login and /auth/me.
type UserInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CreateUserRequest struct {
	Name     string `json:"nome" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=6,max=64"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
	Active   *bool  `json:"ativo"`
	CanBatch *bool  `json:"pode_lote"`
}

type UpdateUserRequest struct {
	Name     *string `json:"nome" validate:"omitempty,min=2,max=80"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"senha" validate:"omitempty,min=6,max=64"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin user"`
	Active   *bool   `json:"ativo"`
	CanBatch *bool   `json:"pode_lote"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"nome"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"ativo"`
	CanBatch  bool   `json:"pode_lote"`
	CreatedAt string `json:"criado_em"`
}
