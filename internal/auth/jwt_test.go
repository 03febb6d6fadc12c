// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/etuitionbd/server/internal/config"
	"github.com/etuitionbd/server/internal/core"
)

func testManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	if err := GenerateKeyPair(privatePath, publicPath); err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
		TokenExpire:    expire,
		Issuer:         "etuitionbd",
		Audience:       "etuitionbd-api",
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	return manager
}

func TestCreateAndVerifyToken(t *testing.T) {
	manager := testManager(t, time.Hour)

	token, err := manager.CreateToken("user@example.com")
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	claims, err := manager.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "user@example.com")
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	manager := testManager(t, time.Hour)

	_, err := manager.VerifyToken(context.Background(), "not.a.token")
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("VerifyToken() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyTokenRejectsForeignSignature(t *testing.T) {
	signer := testManager(t, time.Hour)
	verifier := testManager(t, time.Hour)

	token, err := signer.CreateToken("user@example.com")
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	_, err = verifier.VerifyToken(context.Background(), token)
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("VerifyToken() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	manager := testManager(t, -time.Minute)

	token, err := manager.CreateToken("user@example.com")
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	_, err = manager.VerifyToken(context.Background(), token)
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Fatalf("VerifyToken() error = %v, want ErrTokenExpired", err)
	}
}
