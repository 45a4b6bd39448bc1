package ft

import (
	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/emission/contract"
)

type Service struct {
	contract *contract.Contract
	now      func() uint64
}

func NewService(c *contract.Contract, now func() uint64) *Service {
	return &Service{
		contract: c,
		now:      now,
	}
}

func (s *Service) InitRouter(r *gin.Engine, basePath string) {
	r.GET(basePath+"/ft/metadata", s.getMetadata)
	r.GET(basePath+"/ft/total_supply", s.getTotalSupply)
	r.GET(basePath+"/ft/balance/:account", s.getBalance)
	r.POST(basePath+"/ft/transfer", s.transfer)

	r.POST(basePath+"/storage/deposit", s.storageDeposit)
	r.GET(basePath+"/storage/balance/:account", s.getStorageBalance)
	r.GET(basePath+"/storage/bounds", s.getStorageBounds)
}
