package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticToken(token string) TokenSource {
	return func(ctx context.Context) (string, error) { return token, nil }
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"response": "hi there"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("session-token"))
	reply, err := c.SendChatMessage(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	assert.Equal(t, "Bearer session-token", gotAuth)
}

func TestClient_SendChatMessage_PostsMessageAndContext(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	_, err := c.SendChatMessage(context.Background(), "what is a variable?", []Turn{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello!"},
	})
	require.NoError(t, err)
	assert.Equal(t, "what is a variable?", gotBody["message"])
	assert.Len(t, gotBody["context"], 2)
}

func TestClient_NonSuccessStatus_ReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	_, err := c.GetProgress(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not found", apiErr.Message)
}

func TestClient_NoSession_FailsBeforeRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL, func(ctx context.Context) (string, error) {
		return "", errors.New("no session")
	})
	_, err := c.GetProgress(context.Background())
	require.Error(t, err)
	assert.False(t, called, "no request should be sent without a token")
}

func TestClient_UpdateProgress_RoundTrips(t *testing.T) {
	var gotBody Progress
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/progress", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	err := c.UpdateProgress(context.Background(), Progress{
		CurrentLesson:    2,
		CompletedQuizzes: []string{"q1"},
		QuizScores:       map[string]float64{"q1": 90},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, gotBody.CurrentLesson)
	assert.Equal(t, []string{"q1"}, gotBody.CompletedQuizzes)
}

func TestClient_GetRewards_ParsesAggregates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rewards", r.URL.Path)
		json.NewEncoder(w).Encode(Rewards{
			Stickers: []Sticker{{ID: "s1", Name: "ByteBuddy"}},
			Streak:   Streak{CurrentStreak: 4},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	rewards, err := c.GetRewards(context.Background())
	require.NoError(t, err)
	require.Len(t, rewards.Stickers, 1)
	assert.Equal(t, 4, rewards.Streak.CurrentStreak)
}
