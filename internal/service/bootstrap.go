package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/MauroGaravito/emilio-cogs/internal/config"
	"github.com/MauroGaravito/emilio-cogs/internal/model"
	"github.com/MauroGaravito/emilio-cogs/internal/repository"
)

// passwordAlphabet deliberately omits look-alike characters (0/O, 1/l/I).
const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789!@#$%*-_=+"

// EnsureAdmin creates a default admin account when no active admin exists,
// so a fresh deployment is never locked out. The generated password is
// printed to the logs and — when ADMIN_CREDENTIALS_PATH is set — written
// once to that file (never overwritten).
func EnsureAdmin(ctx context.Context, repo repository.UserRepository, cfg *config.Config) error {
	n, err := repo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	password, err := generatePassword(22)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         "admin",
		Active:       true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}

	log.Warn().
		Str("email", cfg.AdminEmail).
		Str("password", password).
		Msg("default admin created — store these credentials and change the password after first login")

	if cfg.AdminCredentialsPath != "" {
		f, err := os.OpenFile(cfg.AdminCredentialsPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err != nil {
			log.Warn().Err(err).Msg("could not persist admin credentials")
			return nil
		}
		defer f.Close()
		if _, err := f.WriteString("email=" + cfg.AdminEmail + "\npassword=" + password + "\n"); err != nil {
			log.Warn().Err(err).Msg("could not persist admin credentials")
		}
	}
	return nil
}

func generatePassword(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
