package emission

import (
	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/emission/contract"
)

type Service struct {
	model *Model
	now   func() uint64
}

func NewService(c *contract.Contract, now func() uint64) *Service {
	return &Service{
		model: NewModel(c),
		now:   now,
	}
}

func (s *Service) InitRouter(r *gin.Engine, basePath string) {
	g := r.Group(basePath + "/contract")
	// state creation
	g.POST("/init", s.init)
	// emission cycle
	g.POST("/mint", s.mint)
	g.POST("/burn", s.burn)
	g.POST("/claim_rewards", s.claimRewards)
	// ownership handshake
	g.POST("/ownership/initiate", s.initiateTransfer)
	g.POST("/ownership/accept", s.acceptTransfer)
	g.GET("/ownership", s.getOwners)
	// views
	g.GET("/emissions/:account", s.getEmissionsAccount)
	g.GET("/pools", s.getPools)
	g.GET("/events", s.getEvents)
}
