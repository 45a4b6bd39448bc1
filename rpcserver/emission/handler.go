package emission

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/rpcserver/wire"
)

func (s *Service) init(c *gin.Context) {
	var req wire.InitReq
	if !wire.BindJSON(c, &req) {
		return
	}
	env, err := wire.NewEnv(c, req.Attached(), s.now())
	if err != nil {
		wire.Fail(c, err)
		return
	}
	if err := s.model.contract.NewDefaultMeta(env, req.TotalSupply.Uint128); err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.OkResp())
}

func (s *Service) mint(c *gin.Context) {
	var req wire.MintReq
	if !wire.BindJSON(c, &req) {
		return
	}
	env, err := wire.NewEnv(c, req.Attached(), s.now())
	if err != nil {
		wire.Fail(c, err)
		return
	}
	minted, err := s.model.contract.Mint(env)
	if err != nil {
		wire.Fail(c, err)
		return
	}
	data := &wire.MintData{Minted: common.NewU128(minted)}
	if acct, err := s.model.contract.EmissionsAccount(env.Caller); err == nil {
		data.Month = acct.CurrentMonth
	}
	c.JSON(http.StatusOK, &wire.MintResp{BaseResp: wire.OkResp(), Data: data})
}

func (s *Service) burn(c *gin.Context) {
	var req wire.BurnReq
	if !wire.BindJSON(c, &req) {
		return
	}
	env, err := wire.NewEnv(c, req.Attached(), s.now())
	if err != nil {
		wire.Fail(c, err)
		return
	}
	if err := s.model.contract.Burn(env, req.Amount.Uint128); err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.OkResp())
}

func (s *Service) claimRewards(c *gin.Context) {
	var req wire.ClaimRewardsReq
	if !wire.BindJSON(c, &req) {
		return
	}
	env, err := wire.NewEnv(c, req.Attached(), s.now())
	if err != nil {
		wire.Fail(c, err)
		return
	}
	err = s.model.contract.ClaimRewards(env, req.Amount.Uint128, req.PoolId, common.AccountId(req.UserAccount))
	if err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.OkResp())
}

func (s *Service) initiateTransfer(c *gin.Context) {
	var req wire.InitiateTransferReq
	if !wire.BindJSON(c, &req) {
		return
	}
	env, err := wire.NewEnv(c, req.Attached(), s.now())
	if err != nil {
		wire.Fail(c, err)
		return
	}
	if err := s.model.contract.InitiateOwnershipTransfer(env, common.AccountId(req.NewOwner)); err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.OkResp())
}

func (s *Service) acceptTransfer(c *gin.Context) {
	var req wire.AcceptTransferReq
	if !wire.BindJSON(c, &req) {
		return
	}
	env, err := wire.NewEnv(c, req.Attached(), s.now())
	if err != nil {
		wire.Fail(c, err)
		return
	}
	if err := s.model.contract.AcceptOwnership(env); err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.OkResp())
}

func (s *Service) getOwners(c *gin.Context) {
	owners, err := s.model.getOwners()
	if err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &wire.OwnersResp{BaseResp: wire.OkResp(), Data: owners})
}

func (s *Service) getEmissionsAccount(c *gin.Context) {
	acct, err := s.model.getEmissionsAccount(c.Param("account"))
	if err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &wire.EmissionsAccountResp{BaseResp: wire.OkResp(), Data: acct})
}

func (s *Service) getPools(c *gin.Context) {
	pools, err := s.model.getPools()
	if err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &wire.PoolsResp{BaseResp: wire.OkResp(), Data: pools})
}

func (s *Service) getEvents(c *gin.Context) {
	start, err := strconv.ParseUint(c.DefaultQuery("start", "1"), 10, 64)
	if err != nil {
		start = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 || limit > 1000 {
		limit = 100
	}
	logs, err := s.model.contract.EventLogs(start, limit)
	if err != nil {
		wire.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &wire.EventsResp{
		BaseResp: wire.OkResp(),
		ListResp: wire.ListResp{Start: start, Total: uint64(len(logs))},
		Data:     logs,
	})
}
