package ft

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/rpcserver/wire"
)

func (s *Service) getMetadata(c *gin.Context) {
	m, err := s.contract.FtMetadata()
	if err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &wire.MetadataResp{BaseResp: wire.OkResp(), Data: m})
}

func (s *Service) getTotalSupply(c *gin.Context) {
	total, err := s.contract.FtTotalSupply()
	if err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &wire.AmountResp{BaseResp: wire.OkResp(), Data: common.NewU128(total)})
}

func (s *Service) getBalance(c *gin.Context) {
	account, err := common.ParseAccountId(c.Param("account"))
	if err != nil {
		wire.Fail(c, err)
		return
	}
	bal, err := s.contract.FtBalanceOf(account)
	if err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &wire.AmountResp{BaseResp: wire.OkResp(), Data: common.NewU128(bal)})
}

func (s *Service) transfer(c *gin.Context) {
	var req wire.FtTransferReq
	if !wire.BindJSON(c, &req) {
		return
	}
	env, err := wire.NewEnv(c, req.Attached(), s.now())
	if err != nil {
		wire.Fail(c, err)
		return
	}
	err = s.contract.FtTransfer(env, common.AccountId(req.ReceiverId), req.Amount.Uint128, req.Memo)
	if err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.OkResp())
}

func (s *Service) storageDeposit(c *gin.Context) {
	var req wire.StorageDepositReq
	if !wire.BindJSON(c, &req) {
		return
	}
	env, err := wire.NewEnv(c, req.Attached(), s.now())
	if err != nil {
		wire.Fail(c, err)
		return
	}
	bal, refund, err := s.contract.StorageDeposit(env, common.AccountId(req.AccountId))
	if err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &wire.StorageDepositResp{
		BaseResp: wire.OkResp(),
		Data: &wire.StorageDepositData{
			Balance: bal,
			Refund:  common.NewU128(refund),
		},
	})
}

// getStorageBalance answers with null data for unregistered accounts.
func (s *Service) getStorageBalance(c *gin.Context) {
	account, err := common.ParseAccountId(c.Param("account"))
	if err != nil {
		wire.Fail(c, err)
		return
	}
	sb, err := s.contract.StorageBalanceOf(account)
	if err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &wire.StorageBalanceResp{BaseResp: wire.OkResp(), Data: sb})
}

func (s *Service) getStorageBounds(c *gin.Context) {
	bounds := s.contract.StorageBalanceBounds()
	c.JSON(http.StatusOK, &wire.StorageBoundsResp{BaseResp: wire.OkResp(), Data: &bounds})
}
