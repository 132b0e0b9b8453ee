package services

import (
	"errors"
	"fmt"
)

// ErrorKind discrimina a categoria de falha de uma operação. Toda falha
// aborta a operação inteira sem nenhum efeito parcial no store.
type ErrorKind string

const (
	// KindValidation: input malformado ou fora de faixa.
	KindValidation ErrorKind = "validation"
	// KindAuthorization: o caller não tem o papel exigido (dono, staker, admin).
	KindAuthorization ErrorKind = "authorization"
	// KindState: entidade inexistente, queimada ou em estado incompatível.
	KindState ErrorKind = "state"
	// KindPayment: o valor anexado não satisfaz a regra de pagamento da operação.
	KindPayment ErrorKind = "payment"
)

// Códigos de erro retornados pelos serviços.
const (
	CodeNotFound            = "not_found"
	CodeNotForSale          = "not_for_sale"
	CodeAlreadyVoted        = "already_voted"
	CodeAmountMismatch      = "amount_mismatch"
	CodeInsufficientFee     = "insufficient_fee"
	CodeInsufficientBalance = "insufficient_balance"
	CodeInsufficientStake   = "insufficient_stake"
	CodeNotOwner            = "not_owner"
	CodeNotAdmin            = "not_admin"
	CodeMustBeStaker        = "must_be_staker"
	CodeSelfPurchase        = "self_purchase"
	CodeBadInput            = "bad_input"
)

// Error é o erro discriminado retornado por todas as operações dos ledgers.
type Error struct {
	Kind   ErrorKind
	Code   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Reason)
}

func newError(kind ErrorKind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Reason: fmt.Sprintf(format, args...)}
}

func validationError(code, format string, args ...any) *Error {
	return newError(KindValidation, code, format, args...)
}

func authorizationError(code, format string, args ...any) *Error {
	return newError(KindAuthorization, code, format, args...)
}

func stateError(code, format string, args ...any) *Error {
	return newError(KindState, code, format, args...)
}

func paymentError(code, format string, args ...any) *Error {
	return newError(KindPayment, code, format, args...)
}

// IsKind informa se err é um *Error da categoria dada.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// ErrorCode extrai o código de um *Error, ou "" para outros erros.
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
