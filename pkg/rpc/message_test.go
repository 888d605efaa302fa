package rpc_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/rpc"
)

func TestNewRequest_WireFormat(t *testing.T) {
	t.Parallel()

	payload := rpc.NewEthCallPayload("0xAAA", "0x1626ba7e", "")
	req, err := rpc.NewRequest("req-1", rpc.RPCCallMethod, payload, rpc.Env{SDKVersion: "1.0.0"})
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "req-1",
		"method": "rpcCall",
		"params": {"call": "eth_call", "params": [{"to": "0xAAA", "data": "0x1626ba7e"}, "latest"]},
		"env": {"sdkVersion": "1.0.0"}
	}`, string(data))

	req, err = rpc.NewRequest("req-2", rpc.GetSafeInfoMethod, nil, rpc.Env{})
	require.NoError(t, err)
	data, err = json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "params")
}

func TestResponse(t *testing.T) {
	t.Parallel()

	var res rpc.Response
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","success":true,"version":"1.0.0","data":{"origin":"x"}}`), &res))
	assert.NoError(t, res.Err())

	var info envInfo
	require.NoError(t, res.Translate(&info))
	assert.Equal(t, "x", info.Origin)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"2","success":false,"error":"rejected","errorCode":4001}`), &res))
	var hostErr *rpc.HostError
	require.ErrorAs(t, res.Err(), &hostErr)
	assert.Equal(t, 4001, hostErr.Code)
	assert.Equal(t, "host error 4001: rejected", hostErr.Error())

	empty := rpc.Response{ID: "3", Success: true}
	assert.ErrorIs(t, empty.Translate(&info), rpc.ErrMalformedResponse)
}

func TestMethod_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, rpc.GetAddressBookMethod.IsValid())
	assert.True(t, rpc.WalletRequestPermissionsMethod.IsValid())
	assert.False(t, rpc.Method("getSafeInfo ").IsValid())
}
