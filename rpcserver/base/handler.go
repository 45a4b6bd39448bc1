package base

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/rpcserver/wire"
)

// getHealth reports liveness. It answers 201 until the contract state has
// been initialized.
func (s *Service) getHealth(c *gin.Context) {
	rsp := &wire.HealthStatusResp{
		Status:     "ok",
		Version:    common.EMISSION_ENGINE_VERSION,
		StateDBVer: common.STATE_DB_VERSION,
		ContractId: s.contractId,
	}

	ok, err := s.contract.IsInitialized()
	if err != nil {
		rsp.Status = err.Error()
		c.JSON(http.StatusServiceUnavailable, rsp)
		return
	}
	rsp.Initialized = ok
	code := http.StatusOK
	if !ok {
		code = http.StatusCreated
		rsp.Status = "uninitialized"
	} else if ver, err := s.contract.StateVersion(); err == nil {
		rsp.StateDBVer = ver
	}
	c.JSON(code, rsp)
}
