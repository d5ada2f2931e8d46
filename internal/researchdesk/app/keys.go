package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/researchdesk/pkg/cryptox"
	"github.com/aussiebroadwan/researchdesk/pkg/jwtx"
)

// tokenLeeway absorbs clock skew between instances.
const tokenLeeway = 30 * time.Second

// TokenKeys signs and verifies bearer tokens with one key.
type TokenKeys interface {
	jwtx.Signer
	jwtx.Verifier
}

// InitTokenKeys builds the token signer for the configured algorithm.
//
// Algorithms:
//   - "HS256": JWT_SECRET is the shared key. Outside production an empty
//     secret is replaced by a random one, so tokens do not survive restarts.
//   - "EdDSA": the Ed25519 key in TOKEN_KEY_FILE signs tokens. The file is
//     generated on first start and must be kept across restarts.
func InitTokenKeys(cfg Config, logger *slog.Logger) (TokenKeys, error) {
	switch cfg.TokenAlgorithm {
	case "EdDSA":
		pem, err := cryptox.LoadOrCreateEd25519Key(cfg.TokenKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load token key: %w", err)
		}

		signer, err := jwtx.NewEdDSA(pem, cfg.TokenIssuer, tokenLeeway)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize EdDSA signer: %w", err)
		}

		logger.Info("token signer ready",
			"algorithm", signer.Alg(),
			"kid", signer.KID(),
			"issuer", cfg.TokenIssuer,
		)
		return signer, nil

	default:
		secret := cfg.JWTSecret
		if secret == "" {
			if cfg.IsProduction() {
				return nil, fmt.Errorf("JWT_SECRET is required in production")
			}

			generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
			if err != nil {
				return nil, err
			}
			secret = generated
			logger.Warn("JWT_SECRET not set, using a random secret; tokens will not survive restarts")
		}

		signer, err := jwtx.NewHS256([]byte(secret), cfg.TokenIssuer, tokenLeeway)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize HS256 signer: %w", err)
		}

		logger.Info("token signer ready", "algorithm", signer.Alg(), "issuer", cfg.TokenIssuer)
		return signer, nil
	}
}
