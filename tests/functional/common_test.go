//go:build functional

package functional_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/Anaselll/TeachMeApp/pkg/infra/auth/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type participant struct {
	ID    uuid.UUID
	Email string
	Token string
}

func CreateUser(t *testing.T, role string) participant {
	t.Helper()
	id := uuid.New()
	email := fmt.Sprintf("%s-%s@teachme.test", role, id.String()[:8])
	_, err := testDB.Exec(
		`INSERT INTO users (id, email, full_name, role) VALUES ($1, $2, $3, $4)`,
		id, email, "Functional "+role, role,
	)
	require.NoError(t, err)

	token, err := jwt.NewJwtManager(&GlobalConfig.Server).CreateToken(id, email)
	require.NoError(t, err)

	t.Logf("✅ User created with ID: %s", id)
	return participant{ID: id, Email: email, Token: token}
}

// CreateOffer inserts an open offer owned by owner that starts at start.
func CreateOffer(t *testing.T, owner participant, start time.Time, hours int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := testDB.Exec(
		`INSERT INTO offers (id, owner_id, subject, description, price, date, dure, status)
		 VALUES ($1, $2, 'Algebra', 'functional test offer', 20, $3, $4, 'open')`,
		id, owner.ID, start, hours,
	)
	require.NoError(t, err)
	t.Logf("✅ Offer created with ID: %s", id)
	return id
}

func CreateSession(t *testing.T, caller, student, tutor participant, offerID uuid.UUID) string {
	t.Helper()
	status, resp := sendRequest(t, http.MethodPost, BaseUrl+"/api/sessions/create", caller.Token, map[string]interface{}{
		"offer_id":    offerID.String(),
		"student_id":  student.ID.String(),
		"tutor_id":    tutor.ID.String(),
		"accepted_by": caller.ID.String(),
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("❌ Failed to create session. Status: %d, Response: %v", status, resp)
	}
	sessionID, ok := resp["session_id"].(string)
	assert.True(t, ok)
	t.Logf("✅ Session created with ID: %s", sessionID)
	return sessionID
}

func SignalReady(t *testing.T, caller participant, sessionID, role string) (int, map[string]interface{}) {
	t.Helper()
	return sendRequest(t, http.MethodPost,
		fmt.Sprintf("%s/api/sessions/%s/room/ready", BaseUrl, sessionID),
		caller.Token, map[string]interface{}{"role": role}, nil)
}

func sendRequest(
	t *testing.T,
	method, url, token string,
	body interface{},
	headers map[string]string,
) (int, map[string]interface{}) {
	t.Helper()
	status, raw, _ := doRequest(t, method, url, token, body, headers)
	var respData map[string]interface{}
	if len(raw) > 0 {
		assert.NoError(t, json.Unmarshal(raw, &respData))
	}
	return status, respData
}

func sendListRequest(t *testing.T, url, token string) (int, []map[string]interface{}, http.Header) {
	t.Helper()
	status, raw, header := doRequest(t, http.MethodGet, url, token, nil, nil)
	var items []map[string]interface{}
	if status == http.StatusOK {
		require.NoError(t, json.Unmarshal(raw, &items))
	}
	return status, items, header
}

func doRequest(
	t *testing.T,
	method, url, token string,
	body interface{},
	headers map[string]string,
) (int, []byte, http.Header) {
	t.Helper()
	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes, resp.Header
}
