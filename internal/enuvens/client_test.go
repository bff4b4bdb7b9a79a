// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enuvens

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

	"github.com/dfcamara/enuvex/pkg/types"
)

func testClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	c, err := New(types.APIConfig{
		BaseURL:   ts.URL,
		GroupsURL: ts.URL + "/groups",
		Token:     "secret-token",
	}, types.FetchConfig{MaxAttempts: 3, RetryBaseDelay: time.Millisecond})
	require.NoError(t, err)
	c.http = ts.Client()
	return c
}

func TestNew_MissingConfig(t *testing.T) {
	cases := []types.APIConfig{
		{GroupsURL: "g", Token: "t"},
		{BaseURL: "b", Token: "t"},
		{BaseURL: "b", GroupsURL: "g"},
	}
	for _, api := range cases {
		_, err := New(api, types.FetchConfig{})
		assert.ErrorIs(t, err, ErrMissingConfig)
	}
}

func TestNew_NormalizesToken(t *testing.T) {
	c, err := New(types.APIConfig{BaseURL: "b", GroupsURL: "g", Token: "abc"}, types.FetchConfig{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", c.token)

	c, err = New(types.APIConfig{BaseURL: "b", GroupsURL: "g", Token: "Bearer abc"}, types.FetchConfig{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", c.token)
}

func TestListGroups(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{
			{"id": 1, "name": "Congregacao A"},
			{"id": 2, "name": "Congregacao B"},
		}})
	}))
	defer ts.Close()

	groups, err := testClient(t, ts).ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, types.GroupRef{ID: 1, Name: "Congregacao A"}, groups[0])
}

func TestListGroups_FailureWrapped(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := testClient(t, ts).ListGroups(context.Background())
	assert.ErrorIs(t, err, ErrGroupsUnavailable)
}

func TestGroupMembership_DecodesPeoplesString(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/groups/7", r.URL.Path)
		// The member list is a JSON array encoded inside a string.
		json.NewEncoder(w).Encode(map[string]any{"results": map[string]any{
			"peoples": "[101, 102, 103]",
		}})
	}))
	defer ts.Close()

	m, err := testClient(t, ts).GroupMembership(context.Background(), types.GroupRef{ID: 7, Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, []types.PersonID{101, 102, 103}, m.MemberIDs)
	assert.Equal(t, 7, m.Group.ID)
}

func TestGroupMembership_EmptyList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": map[string]any{"peoples": ""}})
	}))
	defer ts.Close()

	m, err := testClient(t, ts).GroupMembership(context.Background(), types.GroupRef{ID: 1})
	require.NoError(t, err)
	assert.Empty(t, m.MemberIDs)
}

func TestGroupMembership_MalformedList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": map[string]any{"peoples": "[1, 2"}})
	}))
	defer ts.Close()

	_, err := testClient(t, ts).GroupMembership(context.Background(), types.GroupRef{ID: 1})
	assert.Error(t, err)
}

func TestPerson(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/people/101", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"results": map[string]any{
			"id":          101,
			"full_name":   "zeca",
			"doc_1":       "11122233344",
			"birthydate":  "1990-01-02",
			"extrafields": `[{"id_ef": 15819, "value": "PAI"}]`,
		}})
	}))
	defer ts.Close()

	raw, err := testClient(t, ts).Person(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, types.PersonID(101), raw.ID)
	assert.Equal(t, "zeca", raw.FullName)
	assert.Equal(t, "1990-01-02", raw.BirthDate)
	assert.Contains(t, raw.Extrafields, "15819")
}

func TestPerson_RemoteError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("no such person"))
	}))
	defer ts.Close()

	_, err := testClient(t, ts).Person(context.Background(), 999)
	re, ok := IsRemote(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, re.Status)
	assert.Equal(t, "no such person", re.Body)
}

func TestPerson_EmptyResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results": null}`))
	}))
	defer ts.Close()

	_, err := testClient(t, ts).Person(context.Background(), 1)
	_, ok := IsRemote(err)
	assert.True(t, ok)
}

func TestGet_RetriesTransientFailures(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{{"id": 1, "name": "A"}}})
	}))
	defer ts.Close()

	groups, err := testClient(t, ts).ListGroups(context.Background())
	require.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCreatePerson(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/people", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload CreatePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Ana", payload.FirstName)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]int{"id": 555})
	}))
	defer ts.Close()

	id, err := testClient(t, ts).CreatePerson(context.Background(), CreatePayload{FirstName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, 555, id)
}

func TestCreatePerson_EmptyResponseBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	id, err := testClient(t, ts).CreatePerson(context.Background(), CreatePayload{FirstName: "Ana"})
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestCreatePerson_RemoteError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("cpf already registered"))
	}))
	defer ts.Close()

	_, err := testClient(t, ts).CreatePerson(context.Background(), CreatePayload{})
	re, ok := IsRemote(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, re.Status)
}
