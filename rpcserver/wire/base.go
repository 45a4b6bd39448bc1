package wire

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
)

const CTX_KEY_CALLER = "caller"

type BaseResp struct {
	Code int    `json:"code" example:"0"`
	Msg  string `json:"msg" example:"ok"`
}

func OkResp() BaseResp {
	return BaseResp{Code: 0, Msg: "ok"}
}

type ListResp struct {
	Start uint64 `json:"start" example:"0"`
	Total uint64 `json:"total" example:"9992"`
}

// ErrorStatus maps an error kind to its HTTP status.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotInitialized),
		errors.Is(err, common.ErrAccountNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, common.ErrAlreadyInitialized),
		errors.Is(err, common.ErrIntervalNotElapsed),
		errors.Is(err, common.ErrNoPendingTransfer):
		return http.StatusConflict
	case errors.Is(err, common.ErrInsufficientPoolBalance),
		errors.Is(err, common.ErrInsufficientDeposit),
		errors.Is(err, common.ErrInsufficientBalance),
		errors.Is(err, common.ErrArithmeticOverflow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrInvalidArgument):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ErrorResp fills the envelope from err and returns the HTTP status to use.
func ErrorResp(err error) (int, BaseResp) {
	status := ErrorStatus(err)
	return status, BaseResp{Code: status, Msg: err.Error()}
}
