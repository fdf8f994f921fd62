package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/hdnotes/pkg/cryptox"
	"github.com/aussiebroadwan/hdnotes/pkg/jwtx"
)

// keyInfo binds derived keys to their purpose so the same secret could
// safely feed other derivations later.
const keyInfo = "hdnotes session token v1 "

// InitSessionKeys derives the HS256 signing key from the configured secret
// and builds the KeySet used for verification. Previous secrets are added
// for verification only, so tokens minted before a rotation stay valid
// until they expire.
//
// In dev with no secret configured an ephemeral one is generated; every
// session dies on restart.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.HS256Signer, *jwtx.KeySet, error) {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		if cfg.Env != "dev" {
			return nil, nil, fmt.Errorf("session secret is required in %s", cfg.Env)
		}
		secret = cryptox.MustGenerateSecret(cryptox.SecretSize)
		logger.Warn("AUTH_SESSION_SECRET not set, using an ephemeral secret; sessions will not survive a restart")
	}

	key, err := cryptox.DeriveKey(secret, keyInfo+cfg.SessionKeyID)
	if err != nil {
		return nil, nil, err
	}
	signer, err := jwtx.NewSignerHS256(cfg.SessionKeyID, key)
	if err != nil {
		return nil, nil, err
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, nil, err
	}

	previous, err := parsePreviousSecrets(cfg.SessionPreviousSecrets)
	if err != nil {
		return nil, nil, err
	}
	for kid, sec := range previous {
		if kid == cfg.SessionKeyID {
			return nil, nil, fmt.Errorf("previous secret reuses the active kid %q", kid)
		}
		k, err := cryptox.DeriveKey([]byte(sec), keyInfo+kid)
		if err != nil {
			return nil, nil, err
		}
		if err := keys.Add(kid, k); err != nil {
			return nil, nil, err
		}
	}

	logger.Info("session keys loaded", "active_kid", signer.KID(), "kids", keys.KIDs())
	return signer, keys, nil
}

// parsePreviousSecrets reads "kid=secret,kid2=secret2".
func parsePreviousSecrets(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kid, secret, ok := strings.Cut(part, "=")
		kid = strings.TrimSpace(kid)
		if !ok || kid == "" || secret == "" {
			return nil, fmt.Errorf("malformed AUTH_SESSION_PREVIOUS_SECRETS entry %q", kid)
		}
		if len(secret) < MinSecretLength {
			return nil, fmt.Errorf("previous secret for kid %q must be at least %d bytes", kid, MinSecretLength)
		}
		out[kid] = secret
	}
	return out, nil
}
