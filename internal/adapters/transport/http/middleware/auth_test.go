package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/response"
	authErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/jwt"
	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type verifierStub struct {
	calls  int
	tokens map[string]uuid.UUID
}

func (v *verifierStub) ValidateAccessToken(token string) (jwt.AccessClaims, error) {
	v.calls++
	id, ok := v.tokens[token]
	if !ok {
		return jwt.AccessClaims{}, authErrors.ErrInvalidToken
	}
	return jwt.AccessClaims{RegisteredClaims: jwtlib.RegisteredClaims{Subject: id.String()}}, nil
}

type checkerStub struct {
	exists bool
	err    error
}

func (c checkerStub) Exists(context.Context, uuid.UUID) (bool, error) {
	return c.exists, c.err
}

func newRouter(v TokenVerifier, checker SubjectChecker, reached *bool, rejected *[]string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var opts []AuthOption
	if rejected != nil {
		opts = append(opts, OnReject(func(code string) { *rejected = append(*rejected, code) }))
	}
	r.Use(Auth(v, checker, nil, opts...))
	r.GET("/protected", func(c *gin.Context) {
		*reached = true
		id, ok := UserID(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		ctxID, _ := SubjectFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "ctx": ctxID.String()})
	})
	return r
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env response.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Error.Code
}

func TestAuth_MissingHeaderSkipsVerifier(t *testing.T) {
	v := &verifierStub{}
	var reached bool
	var rejected []string
	r := newRouter(v, nil, &reached, &rejected)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, response.CodeUnauthorized, errorCode(t, w))
	require.Zero(t, v.calls)
	require.False(t, reached)
	require.Equal(t, []string{response.CodeUnauthorized}, rejected)
}

func TestAuth_ValidTokenAttachesSubject(t *testing.T) {
	id := uuid.New()
	v := &verifierStub{tokens: map[string]uuid.UUID{"good": id}}
	var reached bool
	r := newRouter(v, checkerStub{exists: true}, &reached, nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, "good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, reached)
	require.Equal(t, 1, v.calls)
	require.JSONEq(t, `{"id":"`+id.String()+`","ctx":"`+id.String()+`"}`, w.Body.String())
}

func TestAuth_BearerFallback(t *testing.T) {
	id := uuid.New()
	v := &verifierStub{tokens: map[string]uuid.UUID{"good": id}}
	var reached bool
	r := newRouter(v, nil, &reached, nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, reached)
}

func TestAuth_InvalidTokenDoesNotProceed(t *testing.T) {
	v := &verifierStub{tokens: map[string]uuid.UUID{}}
	var reached bool
	var rejected []string
	r := newRouter(v, nil, &reached, &rejected)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, "expired")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, response.CodeInvalidToken, errorCode(t, w))
	require.False(t, reached)
	require.Equal(t, []string{response.CodeInvalidToken}, rejected)
}

func TestAuth_UnknownSubject(t *testing.T) {
	v := &verifierStub{tokens: map[string]uuid.UUID{"good": uuid.New()}}
	var reached bool
	r := newRouter(v, checkerStub{exists: false}, &reached, nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, "good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, response.CodeInvalidToken, errorCode(t, w))
	require.False(t, reached)
}

func TestAuth_CheckerFailureIsInternal(t *testing.T) {
	v := &verifierStub{tokens: map[string]uuid.UUID{"good": uuid.New()}}
	var reached bool
	r := newRouter(v, checkerStub{err: authErrors.WrapInternal(errors.New("db"), "check")}, &reached, nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, "good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, response.CodeInternal, errorCode(t, w))
	require.False(t, reached)
}

func TestExtractToken(t *testing.T) {
	require.Equal(t, "a", ExtractToken("a", "Bearer b"))
	require.Equal(t, "b", ExtractToken("", "Bearer b"))
	require.Equal(t, "b", ExtractToken("  ", "bearer b"))
	require.Empty(t, ExtractToken("", "Basic xyz"))
	require.Empty(t, ExtractToken("", "Bearer "))
	require.Empty(t, ExtractToken("", ""))
}
