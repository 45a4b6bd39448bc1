package rpcserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/config"
	"github.com/sat20-labs/emission/contract"
	"github.com/sat20-labs/emission/db"
	"github.com/sat20-labs/emission/ledger"
	"github.com/pkg/errors"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerKey = "owner-key"
	aliceKey = "alice-key"
	genesis  = uint64(1_700_000_000) * common.NANOS_PER_SECOND
)

type testServer struct {
	engine *gin.Engine
	now    uint64
}

func newTestServer(t *testing.T, api *config.API) *testServer {
	kv, err := db.NewMemKVDB(db.DB_TYPE_PEBBLE)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	c, err := contract.NewContract(kv, ledger.NewFungibleToken(common.DEFAULT_MIN_STORAGE_BALANCE), contract.DefaultParams())
	require.NoError(t, err)

	ts := &testServer{now: genesis}
	if api == nil {
		api = &config.API{
			APIKeyList: map[string]*config.APIKey{
				ownerKey: {UserName: "owner.near"},
				aliceKey: {UserName: "alice.near"},
			},
			NoLimitApiList: []string{"/health"},
		}
	}
	rpc := NewRpc(c, "ptb.near", func() uint64 { return ts.now })
	ts.engine = rpc.Engine("", api, nil)
	return ts
}

func (ts *testServer) do(method, path, key, body string, header map[string]string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set("Authorization", key)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/health", "", "", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	m := decode(t, w)
	assert.Equal(t, false, m["initialized"])

	w = ts.do(http.MethodPost, "/contract/init", ownerKey, `{"total_supply":"1000000000000"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(http.MethodGet, "/health", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	m = decode(t, w)
	assert.Equal(t, true, m["initialized"])
	assert.Equal(t, common.STATE_DB_VERSION, m["state_db_ver"])
}

func TestUnauthorized(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/ft/metadata", "bogus", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// a read without any key is refused once keys are configured
	w = ts.do(http.MethodGet, "/ft/metadata", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestKeylessDeploymentIsReadOnly(t *testing.T) {
	ts := newTestServer(t, &config.API{})

	w := ts.do(http.MethodGet, "/health", "", "", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(http.MethodPost, "/contract/init", "", `{"total_supply":"1"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	m := decode(t, w)
	assert.Equal(t, float64(http.StatusUnauthorized), m["code"])
}

func TestMintAndClaimOverHttp(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodPost, "/contract/mint", ownerKey, `{"attached_deposit":"1"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodPost, "/contract/init", ownerKey, `{"total_supply":"1000000000000"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = ts.do(http.MethodPost, "/contract/init", ownerKey, `{"total_supply":"1"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// only the owner may mint
	w = ts.do(http.MethodPost, "/contract/mint", aliceKey, `{"attached_deposit":"1"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ts.now = genesis + 1
	w = ts.do(http.MethodPost, "/contract/mint", ownerKey, `{"attached_deposit":"1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "300000000000000", data["minted"])
	assert.Equal(t, float64(1), data["current_month"])

	w = ts.do(http.MethodPost, "/contract/mint", ownerKey, `{"attached_deposit":"1"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(http.MethodPost, "/contract/claim_rewards", ownerKey,
		`{"attached_deposit":"1250000000000000000000","amount":"1000000","pool_id":1,"user_account":"alice.near"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(http.MethodGet, "/ft/balance/alice.near", aliceKey, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1000000", decode(t, w)["data"])

	w = ts.do(http.MethodGet, "/contract/pools", aliceKey, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	raffle := decode(t, w)["data"].(map[string]any)["raffle"].(map[string]any)
	assert.Equal(t, "4999999000000", raffle["amount"])
	assert.Equal(t, "5000000000000", raffle["total_amount"])

	w = ts.do(http.MethodPost, "/contract/claim_rewards", ownerKey,
		`{"attached_deposit":"1","amount":"1","pool_id":3,"user_account":"alice.near"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/contract/claim_rewards", ownerKey,
		`{"attached_deposit":"1","amount":"100000000000000000","pool_id":1,"user_account":"alice.near"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ts.do(http.MethodGet, "/contract/events?start=1&limit=10", aliceKey, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	m := decode(t, w)
	assert.Equal(t, float64(3), m["total"])
}

func TestOwnershipOverHttp(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(http.MethodPost, "/contract/init", ownerKey, `{"total_supply":"1000"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(http.MethodPost, "/contract/ownership/accept", aliceKey, `{"attached_deposit":"1"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(http.MethodPost, "/contract/ownership/initiate", ownerKey, `{"attached_deposit":"1","new_owner":"alice.near"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(http.MethodGet, "/contract/ownership", aliceKey, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "owner.near", data["owner_id"])
	assert.Equal(t, "alice.near", data["proposed_owner"])

	w = ts.do(http.MethodPost, "/contract/ownership/accept", aliceKey, `{"attached_deposit":"1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(http.MethodGet, "/contract/ownership", aliceKey, "", nil)
	data = decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "alice.near", data["owner_id"])
	assert.Nil(t, data["proposed_owner"])

	w = ts.do(http.MethodGet, "/contract/emissions/alice.near", aliceKey, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	acct := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "3000000000", acct["current_emissions"])
}

func TestBadRequestBody(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(http.MethodPost, "/contract/init", ownerKey, `{"total_supply":12}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = ts.do(http.MethodPost, "/contract/init", ownerKey, `not json`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimitPerDay(t *testing.T) {
	ts := newTestServer(t, &config.API{
		APIKeyList: map[string]*config.APIKey{
			aliceKey: {UserName: "alice.near", RateLimit: &config.RateLimit{PerSecond: 1000, PerDay: 2}},
		},
		NoLimitApiList: []string{"/health"},
	})

	for i := 0; i < 2; i++ {
		w := ts.do(http.MethodGet, "/ft/metadata", aliceKey, "", nil)
		assert.NotEqual(t, http.StatusTooManyRequests, w.Code)
	}
	w := ts.do(http.MethodGet, "/ft/metadata", aliceKey, "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = ts.do(http.MethodGet, "/health", aliceKey, "", nil)
	assert.NotEqual(t, http.StatusTooManyRequests, w.Code)
}

func TestCompression(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/health", "", "", map[string]string{"Accept-Encoding": "gzip, br"})
	require.Equal(t, "br", w.Header().Get("Content-Encoding"))
	body, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"contract_id":"ptb.near"`)

	w = ts.do(http.MethodGet, "/health", "", "", map[string]string{"Accept-Encoding": "gzip"})
	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err = io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"contract_id":"ptb.near"`)

	w = ts.do(http.MethodGet, "/health", "", "", nil)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Contains(t, w.Body.String(), `"contract_id":"ptb.near"`)
}

func TestAcceptedEncoding(t *testing.T) {
	assert.Equal(t, "br", acceptedEncoding("gzip, deflate, br"))
	assert.Equal(t, "gzip", acceptedEncoding("gzip;q=0.8, deflate"))
	assert.Equal(t, "", acceptedEncoding("identity"))
}

type brokenStream struct{}

func (brokenStream) Write(p []byte) (int, error) { return len(p), nil }
func (brokenStream) Close() error              { return errors.New("connection reset") }

func TestCompressFlushErrorIsLogged(t *testing.T) {
	hook := logtest.NewLocal(common.Log)
	defer hook.Reset()

	cw := &compressWriter{encoding: ENCODING_GZIP, w: brokenStream{}}
	cw.close()
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, "flush gzip response failed: connection reset")
}
