package domain

import "errors"

// ErrorKind classifies a domain failure so the transport layer can pick a status code.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindConflict    ErrorKind = "conflict"
	KindCapacity    ErrorKind = "capacity"
	KindNotFound    ErrorKind = "not_found"
	KindAuth        ErrorKind = "auth"
	KindRateLimited ErrorKind = "rate_limited"
)

// Error is a classified domain error whose Message is safe to show to API clients.
type Error struct {
	Kind    ErrorKind
	Message string
	base    *Error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the sentinel a WithMessage error was derived from.
func (e *Error) Unwrap() error {
	if e.base == nil {
		return nil
	}
	return e.base
}

// WithMessage returns an error of the same kind with a more specific message.
// errors.Is still matches the original sentinel.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Kind: e.Kind, Message: msg, base: e}
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Validation
var (
	ErrMissingFields      = newError(KindValidation, "Preencha todos os campos")
	ErrPasswordMismatch   = newError(KindValidation, "As senhas não conferem")
	ErrPasswordTooLong    = newError(KindValidation, "Senha muito longa")
	ErrInvalidEmailFormat = newError(KindValidation, "Formato de email inválido")
	ErrDomainNotAllowed   = newError(KindValidation, "Por favor, utilize um email institucional")
	ErrDomainUnreachable  = newError(KindValidation, "O domínio do email não possui registros válidos")
	ErrInvalidDate        = newError(KindValidation, "Data inválida")
	ErrInvalidStudents    = newError(KindValidation, "Quantidade de alunos inválida")
)

// Conflict / capacity
var (
	ErrUserExists       = newError(KindConflict, "Email já cadastrado")
	ErrLabAlreadyBooked = newError(KindConflict, "Laboratório já possui uma solicitação para esse dia")
	ErrCapacityReached  = newError(KindCapacity, "Laboratório Esgotado para esse dia")
)

// Lookup / auth
var (
	ErrUserNotFound    = newError(KindNotFound, "Usuário não encontrado!")
	ErrInvalidPassword = newError(KindAuth, "Senha incorreta")
	ErrInvalidToken    = newError(KindAuth, "Token inválido!")
	ErrTooManyAttempts = newError(KindRateLimited, "Muitas tentativas de login. Tente novamente mais tarde")
	ErrTooManyRequests = newError(KindRateLimited, "Muitas requisições. Aguarde um momento")
)

// KindOf returns the kind of a domain error, or "" when err is not one.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
