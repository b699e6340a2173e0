package chatapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_Success(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"response":"hello!","threadId":"TH1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	reply, err := c.Chat(context.Background(), Request{Input: "hi", UserID: "U1"})
	require.NoError(t, err)
	assert.True(t, reply.Success)
	assert.Equal(t, "hello!", reply.Response)
	assert.Equal(t, "TH1", reply.ThreadID)
	assert.Equal(t, Request{Input: "hi", UserID: "U1", ThreadID: "", Image: ""}, got)
}

func TestChat_RequestAlwaysCarriesEmptyStrings(t *testing.T) {
	b, err := json.Marshal(Request{Input: "x", UserID: "U1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":"x","userId":"U1","threadId":"","image":""}`, string(b))
}

func TestChat_SuccessFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	reply, err := NewClient(srv.URL, time.Second).Chat(context.Background(), Request{})
	require.NoError(t, err)
	assert.False(t, reply.Success)
}

func TestChat_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"Conversation failed"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Chat(context.Background(), Request{})
	assert.ErrorContains(t, err, "status code 502")
}

func TestChat_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Chat(context.Background(), Request{})
	assert.ErrorContains(t, err, "decode chat reply")
}

func TestChat_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Chat(context.Background(), Request{})
	assert.ErrorContains(t, err, "chat request")
}
