package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt hash of plain at the given cost,
// which follows the BCRYPT_COST configuration.  Costs outside bcrypt's
// supported range are replaced with the library default so a bad
// configuration value cannot break registration.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
