package service

import "fmt"

// Причина отказа в бронировании. Отказы — ожидаемый исход для вызывающей
// стороны, UI различает их по коду, а не по тексту.
type RejectReason string

const (
	ReasonMissingFields RejectReason = "MISSING_FIELDS"
	ReasonAlreadyBooked RejectReason = "ALREADY_BOOKED"
	ReasonSessionFull   RejectReason = "SESSION_FULL"
	ReasonQuotaExceeded RejectReason = "QUOTA_EXCEEDED"
	ReasonStorageError  RejectReason = "STORAGE_ERROR"
)

// Rejection — бизнес-отказ гварда бронирования.
type Rejection struct {
	Reason  RejectReason
	Message string

	// Числовая квота, заполняется для QUOTA_EXCEEDED.
	Quota int

	// Исходная ошибка хранилища для STORAGE_ERROR.
	Err error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Reason, r.Message)
}

func (r *Rejection) Unwrap() error { return r.Err }

func reject(reason RejectReason, msg string) *Rejection {
	return &Rejection{Reason: reason, Message: msg}
}

func storageError(err error) *Rejection {
	return &Rejection{Reason: ReasonStorageError, Message: err.Error(), Err: err}
}
