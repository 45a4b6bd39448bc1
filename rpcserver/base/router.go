package base

import (
	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/emission/contract"
)

type Service struct {
	contract   *contract.Contract
	contractId string
}

func NewService(c *contract.Contract, contractId string) *Service {
	return &Service{
		contract:   c,
		contractId: contractId,
	}
}

func (s *Service) InitRouter(r *gin.Engine, basePath string) {
	r.GET(basePath+"/health", s.getHealth)
}
