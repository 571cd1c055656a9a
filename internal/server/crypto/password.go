// Хэширование паролей
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
)

// Поддерживаемые алгоритмы (значение password.hasher в конфиге).
const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// DefaultBcryptCost — стоимость bcrypt по умолчанию (2^10 раундов).
const DefaultBcryptCost = 10

// PasswordHasher — односторонний хэш пароля с солью и проверка за постоянное время.
//
// Каждый вызов Hash с одним и тем же паролем даёт разную строку:
// свежая соль хранится внутри результата.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify не различает "неверный пароль" и "битый хэш" ни по результату, ни по времени.
	Verify(password, encoded string) bool
}

// NewPasswordHasher возвращает хэшер по имени алгоритма из конфига.
func NewPasswordHasher(name string, bcryptCost int, argon Argon2Params) (PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HasherBcrypt:
		return NewBcryptHasher(bcryptCost), nil
	case HasherArgon2id:
		return NewArgon2Hasher(argon), nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

// checkPassword общие проверки пароля перед хэшированием.
func checkPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: empty password", serr.ErrInvalidInput)
	}
	return nil
}

// BcryptHasher хэширует пароли через bcrypt.
type BcryptHasher struct {
	cost int
	// хэш для проверки битых значений, считается один раз при создании
	dummy []byte
}

// NewBcryptHasher создаёт хэшер; cost вне допустимого диапазона заменяется на DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("fintracker-dummy-password"), cost)
	return &BcryptHasher{cost: cost, dummy: dummy}
}

// Cost возвращает фактически используемую стоимость.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if err := checkPassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password too long", serr.ErrInvalidInput)
		}
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, encoded string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		// битый хэш: тратим столько же времени, сколько на настоящую проверку
		_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
	}
	return false
}

// Argon2Params параметры argon2id.
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   uint32
}

// Argon2Hasher хэширует пароли через argon2id.
type Argon2Hasher struct {
	p Argon2Params
}

func NewArgon2Hasher(p Argon2Params) *Argon2Hasher {
	if p.KeyLen == 0 {
		p.KeyLen = 32
	}
	if p.SaltLen == 0 {
		p.SaltLen = 16
	}
	if p.Threads == 0 {
		p.Threads = 1
	}
	if p.Time == 0 {
		p.Time = 1
	}
	if p.MemoryKiB == 0 {
		p.MemoryKiB = 64 * 1024
	}
	return &Argon2Hasher{p: p}
}

// Hash возвращает строку формата:
// argon2id$v=19$m=65536,t=3,p=2$<salt_b64>$<hash_b64>
func (h *Argon2Hasher) Hash(password string) (string, error) {
	if err := checkPassword(password); err != nil {
		return "", err
	}

	salt := make([]byte, h.p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, h.p.Time, h.p.MemoryKiB, h.p.Threads, h.p.KeyLen)

	return fmt.Sprintf(
		"argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.p.MemoryKiB, h.p.Time, h.p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func (h *Argon2Hasher) Verify(password, encoded string) bool {
	memory, time, threads, salt, want, err := parseArgon2(encoded)
	if err != nil {
		// битый хэш: считаем ключ с собственными параметрами и всё равно отвечаем false
		salt = make([]byte, h.p.SaltLen)
		want = make([]byte, h.p.KeyLen)
		got := argon2.IDKey([]byte(password), salt, h.p.Time, h.p.MemoryKiB, h.p.Threads, h.p.KeyLen)
		subtle.ConstantTimeCompare(got, want)
		return false
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func parseArgon2(encoded string) (memory, time uint32, threads uint8, salt, hash []byte, err error) {
	parts := strings.Split(encoded, "$")
	// parts[0] = argon2id, parts[1] = v=19, parts[2] = m=...,t=...,p=..., parts[3] = salt, parts[4] = hash
	if len(parts) != 5 || parts[0] != "argon2id" {
		return 0, 0, 0, nil, nil, errors.New("invalid hash format")
	}
	if _, err = fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return 0, 0, 0, nil, nil, errors.New("invalid params format")
	}
	if time == 0 || threads == 0 {
		return 0, 0, 0, nil, nil, errors.New("invalid params")
	}
	if salt, err = base64.RawStdEncoding.DecodeString(parts[3]); err != nil {
		return 0, 0, 0, nil, nil, errors.New("invalid salt")
	}
	if hash, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(hash) == 0 {
		return 0, 0, 0, nil, nil, errors.New("invalid hash")
	}
	return memory, time, threads, salt, hash, nil
}
