package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/neurobot-go/internal/domain/entities"
)

func chatMessages() []entities.ChatMessage {
	return []entities.ChatMessage{
		{Role: entities.RoleSystem, Content: "sys"},
		{Role: entities.RoleUser, Content: "hello"},
	}
}

func writeChoice(w http.ResponseWriter, content string) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
}

func TestOpenAIAdapter_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body.Model)
		assert.Equal(t, chatMessages(), body.Messages)

		writeChoice(w, "  Hello there!  ")
	}))
	defer server.Close()

	adapter, err := NewOpenAIAdapter(Options{BaseURL: server.URL, APIKey: "secret", Model: "test-model"})
	require.NoError(t, err)

	resp, err := adapter.Complete(context.Background(), chatMessages())

	require.NoError(t, err)
	assert.Equal(t, "  Hello there!  ", resp, "trimming is the caller's job")
}

func TestOpenAIAdapter_ServerError(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusUnauthorized} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		adapter, _ := NewOpenAIAdapter(Options{BaseURL: server.URL, APIKey: "k"})
		_, err := adapter.Complete(context.Background(), chatMessages())

		var se *StatusError
		require.ErrorAs(t, err, &se, "status %d", status)
		assert.Equal(t, status, se.StatusCode)
		server.Close()
	}
}

func TestOpenAIAdapter_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	adapter, _ := NewOpenAIAdapter(Options{BaseURL: server.URL, APIKey: "k"})
	_, err := adapter.Complete(context.Background(), chatMessages())

	assert.Error(t, err)
}

func TestOpenAIAdapter_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	adapter, _ := NewOpenAIAdapter(Options{BaseURL: server.URL, APIKey: "k"})
	_, err := adapter.Complete(context.Background(), chatMessages())

	assert.ErrorContains(t, err, "no choices")
}

func TestOpenAIAdapter_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	adapter, _ := NewOpenAIAdapter(Options{BaseURL: server.URL, APIKey: "k", MaxRetries: 3})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := adapter.Complete(ctx, chatMessages())

	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestOpenAIAdapter_NoRetryByDefault(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter, _ := NewOpenAIAdapter(Options{BaseURL: server.URL, APIKey: "k"})
	_, err := adapter.Complete(context.Background(), chatMessages())

	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOpenAIAdapter_RetriesTransientStatus(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeChoice(w, "finally")
	}))
	defer server.Close()

	adapter, _ := NewOpenAIAdapter(Options{
		BaseURL:              server.URL,
		APIKey:               "k",
		MaxRetries:           2,
		RetryInitialInterval: time.Millisecond,
	})
	resp, err := adapter.Complete(context.Background(), chatMessages())

	require.NoError(t, err)
	assert.Equal(t, "finally", resp)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestOpenAIAdapter_DoesNotRetryClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	adapter, _ := NewOpenAIAdapter(Options{
		BaseURL:              server.URL,
		APIKey:               "k",
		MaxRetries:           2,
		RetryInitialInterval: time.Millisecond,
	})
	_, err := adapter.Complete(context.Background(), chatMessages())

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOpenAIAdapter_DefaultValues(t *testing.T) {
	adapter, err := NewOpenAIAdapter(Options{APIKey: "k"})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, adapter.baseURL)
	assert.Equal(t, DefaultModel, adapter.model)
	assert.Equal(t, 0, adapter.maxRetries)
	assert.True(t, adapter.Configured())
}

func TestNewOpenAIAdapter_MissingKey(t *testing.T) {
	_, err := NewOpenAIAdapter(Options{})
	assert.ErrorIs(t, err, entities.ErrMissingCredential)
}

func TestNew_ReturnsUnconfiguredWithoutKey(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	svc, err := New(Options{BaseURL: server.URL})
	require.NoError(t, err)
	assert.False(t, svc.Configured())

	_, err = svc.Complete(context.Background(), chatMessages())
	assert.Equal(t, entities.KindConfiguration, entities.KindOf(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestNew_ReturnsAdapterWithKey(t *testing.T) {
	svc, err := New(Options{APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIAdapter{}, svc)
}
