package wire

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/contract"
)

// CallerOf returns the account bound to the request's API key.
func CallerOf(c *gin.Context) (common.AccountId, bool) {
	v, ok := c.Get(CTX_KEY_CALLER)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	if !ok || name == "" {
		return "", false
	}
	return common.AccountId(name), true
}

// NewEnv builds the call environment of a signed request.
func NewEnv(c *gin.Context, attached common.U128, now uint64) (*contract.Env, error) {
	caller, ok := CallerOf(c)
	if !ok {
		return nil, errors.Wrap(common.ErrUnauthorized, "a valid API key is required")
	}
	return &contract.Env{
		Caller:          caller,
		AttachedDeposit: attached.Uint128,
		Timestamp:       now,
	}, nil
}

func Fail(c *gin.Context, err error) {
	status, resp := ErrorResp(err)
	c.JSON(status, resp)
}

// BindJSON decodes the request body into req, answering 400 on failure.
func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		Fail(c, errors.Wrap(common.ErrInvalidArgument, err.Error()))
		return false
	}
	return true
}
