package rpcserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/config"
	"github.com/sat20-labs/emission/rpcserver/wire"
)

type RateLimit struct {
	mutex    sync.Mutex
	limit    *limiter.Limiter
	day      time.Time
	reqCount int
}

func (s *Rpc) InitApiConf(api *config.API) {
	s.apiConfMutex.Lock()
	defer s.apiConfMutex.Unlock()
	if api == nil {
		s.api = &config.API{APIKeyList: map[string]*config.APIKey{}}
		return
	}
	s.api = api
	s.apiLimitMap.Clear()
}

func (s *Rpc) isNoLimit(c *gin.Context, basePath string) bool {
	for _, apiUrl := range s.api.NoLimitApiList {
		if basePath+apiUrl == c.Request.URL.Path {
			return true
		}
	}
	clientIp := c.ClientIP()
	for _, host := range s.api.NoLimitHostList {
		if clientIp == host {
			return true
		}
	}
	return false
}

// applyApiConf binds the caller named by the Authorization key to the
// request, rejects unknown keys and enforces each key's rate limit.
func (s *Rpc) applyApiConf(r *gin.Engine, basePath string) {
	r.Use(func(c *gin.Context) {
		s.apiConfMutex.RLock()
		defer s.apiConfMutex.RUnlock()

		authorization := c.GetHeader("Authorization")
		apiKey := s.api.APIKeyList[authorization]
		if apiKey != nil {
			c.Set(wire.CTX_KEY_CALLER, apiKey.UserName)
		}

		if s.isNoLimit(c, basePath) {
			c.Next()
			return
		}

		if apiKey == nil {
			if authorization == "" && len(s.api.APIKeyList) == 0 {
				// keyless deployment, read only
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key"})
			return
		}
		if apiKey.RateLimit == nil || apiKey.RateLimit.PerSecond == 0 || apiKey.RateLimit.PerDay == 0 {
			c.Next()
			return
		}

		rateLimit := s.getRateLimit(authorization, apiKey.RateLimit)
		if !rateLimit.allowToday(apiKey.RateLimit.PerDay) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		if httpError := tollbooth.LimitByKeys(rateLimit.limit, []string{authorization}); httpError != nil {
			common.Log.Debugf("rate limit for %s: %s", apiKey.UserName, httpError.Message)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		c.Next()
	})
}

func (s *Rpc) getRateLimit(key string, conf *config.RateLimit) *RateLimit {
	return s.apiLimitMap.Upsert(key, nil, func(exist bool, old, _ *RateLimit) *RateLimit {
		if exist {
			return old
		}
		lmt := tollbooth.NewLimiter(float64(conf.PerSecond), &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
		if conf.Max > 0 {
			lmt.SetMax(float64(conf.Max))
		}
		if conf.Burst > 0 {
			lmt.SetBurst(conf.Burst)
		}
		lmt.SetTokenBucketExpirationTTL(time.Minute)
		return &RateLimit{limit: lmt}
	})
}

// allowToday counts the request against the daily quota, restarting the
// count at local midnight.
func (p *RateLimit) allowToday(perDay int) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if !p.day.Equal(today) {
		p.day = today
		p.reqCount = 0
	}
	p.reqCount++
	return p.reqCount <= perDay
}
