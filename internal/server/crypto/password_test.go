package crypto_test

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	crypt "github.com/IvanChernomyrdin/go-fintracker/internal/server/crypto"
	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
)

func argonParams() crypt.Argon2Params {
	return crypt.Argon2Params{
		Time:      1,
		MemoryKiB: 32 * 1024,
		Threads:   1,
		KeyLen:    32,
		SaltLen:   16,
	}
}

func hashers() map[string]crypt.PasswordHasher {
	return map[string]crypt.PasswordHasher{
		"bcrypt":   crypt.NewBcryptHasher(bcrypt.MinCost),
		"argon2id": crypt.NewArgon2Hasher(argonParams()),
	}
}

// Хэширование и успешная проверка, соль каждый раз новая
func TestHasher_HashAndVerify(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			password := "super-secret-password"

			h1, err := h.Hash(password)
			if err != nil {
				t.Fatalf("Hash error: %v", err)
			}
			h2, err := h.Hash(password)
			if err != nil {
				t.Fatalf("Hash error: %v", err)
			}

			if h1 == password || h2 == password {
				t.Fatal("hash must not equal plaintext")
			}
			if h1 == h2 {
				t.Fatal("expected different hashes for same password")
			}
			if !h.Verify(password, h1) || !h.Verify(password, h2) {
				t.Fatal("expected password to be valid for both hashes")
			}
		})
	}
}

// Неверный пароль
func TestHasher_VerifyWrongPassword(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("correct-password")
			if err != nil {
				t.Fatalf("Hash error: %v", err)
			}
			if h.Verify("wrong-password", hash) {
				t.Fatal("expected password to be invalid")
			}
		})
	}
}

// Битый формат хэша
func TestHasher_VerifyMalformedHash(t *testing.T) {
	malformed := []string{
		"",
		"not-a-valid-hash",
		"argon2id$v=19$m=0,t=0,p=0$AAAA$AAAA",
		"$2a$10$short",
	}
	for name, h := range hashers() {
		for _, m := range malformed {
			if h.Verify("password", m) {
				t.Fatalf("%s: malformed hash %q must not verify", name, m)
			}
		}
	}
}

// Пустой пароль
func TestHasher_EmptyPassword(t *testing.T) {
	for name, h := range hashers() {
		_, err := h.Hash("   ")
		if !errors.Is(err, serr.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

// bcrypt не принимает пароли длиннее 72 байт
func TestBcryptHasher_TooLongPassword(t *testing.T) {
	h := crypt.NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("x", 100))
	if !errors.Is(err, serr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// Стоимость по умолчанию
func TestBcryptHasher_DefaultCost(t *testing.T) {
	h := crypt.NewBcryptHasher(0)
	if h.Cost() != crypt.DefaultBcryptCost {
		t.Fatalf("expected cost %d, got %d", crypt.DefaultBcryptCost, h.Cost())
	}

	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost error: %v", err)
	}
	if cost != 10 {
		t.Fatalf("expected embedded cost 10, got %d", cost)
	}
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := crypt.NewPasswordHasher("", 4, argonParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := h.(*crypt.BcryptHasher); !ok {
		t.Fatalf("expected bcrypt hasher by default, got %T", h)
	}

	h, err = crypt.NewPasswordHasher("ARGON2ID", 0, argonParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := h.(*crypt.Argon2Hasher); !ok {
		t.Fatalf("expected argon2 hasher, got %T", h)
	}

	if _, err := crypt.NewPasswordHasher("md5", 0, argonParams()); err == nil {
		t.Fatalf("%s, got nil", serr.ErrExpectedError.Error())
	}
}
