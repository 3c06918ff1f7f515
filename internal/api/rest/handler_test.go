package rest_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger/internal/api/rest"
	"github.com/feral-file/ff-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-ledger/internal/mocks"
)

const testAddress = "0x9ca8887d13bc4591ae36972702fdf9de2c97957f"

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

func setupHandler(t *testing.T) (*gin.Engine, *mocks.MockAPIExecutor) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(exec))
	return router, exec
}

func serve(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetAccountDatabaseError(t *testing.T) {
	router, exec := setupHandler(t)

	exec.EXPECT().
		GetAccount(gomock.Any(), testAddress, gomock.Any(), gomock.Any()).
		Return(nil, apierrors.NewDatabaseError("Failed to get account: boom"))

	w := serve(router, "/api/v1/accounts/"+testAddress)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(apierrors.ErrCodeDatabaseError), body.Error.Code)
	assert.Equal(t, "Failed to get account", body.Error.Message)
	assert.Empty(t, body.Error.Details)
}

func TestPaginationDefaultsAndCap(t *testing.T) {
	router, exec := setupHandler(t)

	exec.EXPECT().
		GetContract(gomock.Any(), testAddress, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, _ string, limit *int, offset *uint64) (*dto.ContractResponse, error) {
			assert.Equal(t, 20, *limit)
			assert.Equal(t, uint64(0), *offset)
			return &dto.ContractResponse{Address: testAddress}, nil
		})
	exec.EXPECT().
		GetContract(gomock.Any(), testAddress, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, _ string, limit *int, offset *uint64) (*dto.ContractResponse, error) {
			assert.Equal(t, 100, *limit)
			assert.Equal(t, uint64(40), *offset)
			return &dto.ContractResponse{Address: testAddress}, nil
		})

	assert.Equal(t, http.StatusOK, serve(router, "/api/v1/contracts/"+testAddress).Code)
	assert.Equal(t, http.StatusOK, serve(router, "/api/v1/contracts/"+testAddress+"?limit=500&offset=40").Code)
}

func TestGetTokenParsesTokenID(t *testing.T) {
	router, exec := setupHandler(t)

	exec.EXPECT().
		GetToken(gomock.Any(), testAddress, big.NewInt(255), gomock.Any(), gomock.Any()).
		Return(nil, nil).
		Times(2)

	assert.Equal(t, http.StatusNotFound, serve(router, "/api/v1/tokens/"+testAddress+"/255").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, "/api/v1/tokens/"+testAddress+"/0xff").Code)

	// above uint256 never reaches the executor
	tooLarge := "0x1" + "0000000000000000000000000000000000000000000000000000000000000000"
	w := serve(router, "/api/v1/tokens/"+testAddress+"/"+tooLarge)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTransfersNormalizesFilters(t *testing.T) {
	router, exec := setupHandler(t)

	exec.EXPECT().
		GetTransfers(gomock.Any(), testAddress+"-0xff", testAddress, "", gomock.Any(), gomock.Any()).
		Return(&dto.TransferListResponse{Transfers: []dto.TransferResponse{}}, nil)

	w := serve(router, "/api/v1/transfers?token=0x9CA8887D13BC4591AE36972702FDF9DE2C97957F-255&contract=0x9CA8887D13BC4591AE36972702FDF9DE2C97957F")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListTransfersInternalError(t *testing.T) {
	router, exec := setupHandler(t)

	exec.EXPECT().
		GetTransfers(gomock.Any(), "", "", "", gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	w := serve(router, "/api/v1/transfers")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(apierrors.ErrCodeInternalError), body.Error.Code)
}
