package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"error"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedBodyError  = NewSimple(400, "Corpo da requisição inválido")
	InternalServerError = NewSimple(500, "Erro interno no servidor")

	MissingCNPJError = NewSimple(400, "CNPJ obrigatório")

	TokenMissingError = NewSimple(401, "Token não informado")
	TokenFormatError  = NewSimple(401, "Formato de token inválido")
	InvalidTokenError = NewSimple(401, "Token inválido ou expirado")
	CredentialsError  = NewSimple(401, "Usuário ou senha inválidos.")

	AdminOnlyError    = NewSimple(403, "Acesso restrito ao administrador")
	InactiveUserError = NewSimple(403, "Usuário inativo ou não encontrado.")
	BatchDeniedError  = NewSimple(403, "Você não tem permissão para consultas em lote.")

	UserNotFoundError   = NewSimple(404, "Usuário não encontrado.")
	DuplicateEmailError = NewSimple(400, "Já existe um usuário com esse e-mail.")

	UpstreamsDownError = NewSimple(502, "Nenhuma das APIs (RADAR/Receita) respondeu.")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "Campo obrigatório")
		case "min":
			problems[field] = append(problems[field], "Valor muito curto, mínimo: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Valor muito longo, máximo: "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "E-mail inválido")
		case "oneof":
			problems[field] = append(problems[field], "Valor deve ser um de: "+fe.Param())

		default:
			problems[field] = append(problems[field], "Valor inválido")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewMissingParamError(name string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parâmetro '%s' obrigatório", name)
}

func NewForbiddenError(msg string) *APIError {
	return NewSimple(http.StatusForbidden, msg)
}
