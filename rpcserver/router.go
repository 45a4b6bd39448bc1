package rpcserver

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/config"
	"github.com/sat20-labs/emission/contract"
	"github.com/sat20-labs/emission/rpcserver/base"
	"github.com/sat20-labs/emission/rpcserver/emission"
	"github.com/sat20-labs/emission/rpcserver/ft"
)

const (
	STRICT_TRANSPORT_SECURITY   = "strict-transport-security"
	CONTENT_SECURITY_POLICY     = "content-security-policy"
	CACHE_CONTROL               = "cache-control"
	VARY                        = "vary"
	ACCESS_CONTROL_ALLOW_ORIGIN = "access-control-allow-origin"
	CONTENT_ENCODING            = "content-encoding"
)

type Rpc struct {
	basicService    *base.Service
	emissionService *emission.Service
	ftService       *ft.Service

	apiConfMutex sync.RWMutex
	api          *config.API
	apiLimitMap  cmap.ConcurrentMap[string, *RateLimit]

	server *http.Server
}

// NewRpc wires the HTTP services to c. now supplies the block time of every
// call in nanoseconds; nil means the wall clock.
func NewRpc(c *contract.Contract, contractId string, now func() uint64) *Rpc {
	if now == nil {
		now = func() uint64 { return uint64(time.Now().UnixNano()) }
	}
	return &Rpc{
		basicService:    base.NewService(c, contractId),
		emissionService: emission.NewService(c, now),
		ftService:       ft.NewService(c, now),
		apiLimitMap:     cmap.New[*RateLimit](),
	}
}

// Engine builds the gin router for basePath.
func (s *Rpc) Engine(basePath string, apiConf *config.API, accessLog io.Writer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	if accessLog != nil {
		r.Use(gin.LoggerWithWriter(accessLog))
	}
	r.Use(gin.Recovery())

	corsConf := cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	corsConf.OptionsResponseStatusCode = 200
	r.Use(cors.New(corsConf))

	s.InitApiConf(apiConf)
	s.applyApiConf(r, basePath)

	// common header
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set(VARY, "Origin")
		c.Writer.Header().Add(VARY, "Access-Control-Request-Method")
		c.Writer.Header().Add(VARY, "Access-Control-Request-Headers")
		c.Writer.Header().Set(CONTENT_SECURITY_POLICY, "default-src 'self'")
		c.Writer.Header().Set(STRICT_TRANSPORT_SECURITY, "max-age=31536000; includeSubDomains; preload")
		c.Writer.Header().Set(CACHE_CONTROL, "no-store")
		c.Next()
	})

	r.Use(CompressionMiddleware())

	s.basicService.InitRouter(r, basePath)
	s.emissionService.InitRouter(r, basePath)
	s.ftService.InitRouter(r, basePath)
	return r
}

func (s *Rpc) Start(conf *config.RPCService) error {
	var writers []io.Writer
	if conf.LogPath != "" {
		exePath, _ := os.Executable()
		executableName := filepath.Base(exePath) + ".rpc"
		fileHook, err := config.NewRotateWriter(conf.LogPath, executableName, 7*24*time.Hour)
		if err != nil {
			return err
		}
		writers = append(writers, fileHook)
	}
	writers = append(writers, os.Stdout)
	r := s.Engine(conf.Proxy, &conf.API, io.MultiWriter(writers...))

	rpcUrl := conf.Addr
	parts := strings.Split(rpcUrl, ":")
	var port string
	if len(parts) < 2 {
		rpcUrl += ":80"
		port = "80"
	} else {
		port = parts[len(parts)-1]
	}

	if err := checkPort(port); err != nil {
		return err
	}

	s.server = &http.Server{
		Addr:              rpcUrl,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.Log.Errorf("rpc server stopped: %v", err)
		}
	}()
	return nil
}

func (s *Rpc) Stop() {
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		common.Log.Errorf("rpc server shutdown: %v", err)
	}
}

func checkPort(port string) error {
	addr := fmt.Sprintf(":%s", port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %s is in use: %v", port, err)
	}
	l.Close()
	return nil
}
